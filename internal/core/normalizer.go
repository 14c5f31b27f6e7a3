// ABOUTME: Text normalizer that flattens a profile into one embeddable text blob
// ABOUTME: Deterministic composition order so identical profiles embed identically
package core

import (
	"errors"
	"strings"

	"github.com/harper/profilesearch/internal/models"
)

// ErrNoUsableText indicates a profile with no text field worth embedding
var ErrNoUsableText = errors.New("profile has no usable text fields")

const (
	// maxExperiences caps how many work entries contribute to the text
	maxExperiences = 5
	// maxDescriptionLen caps each experience description
	maxDescriptionLen = 100
	// maxSkills caps how many skills contribute to the text
	maxSkills = 10
)

// ProfileText converts a profile into a single text string for embedding.
// Composition order is fixed: name, headline, industry, location, summary,
// experience, education, skills. Missing fields render as empty segments.
func ProfileText(p *models.Profile) (string, error) {
	var segments []string

	for _, field := range []string{p.FullName, p.Headline, p.Industry, p.Location, p.Summary} {
		if s := strings.TrimSpace(field); s != "" {
			segments = append(segments, s)
		}
	}

	if line := experienceText(p.Experiences); line != "" {
		segments = append(segments, line)
	}
	if line := educationText(p.Educations); line != "" {
		segments = append(segments, line)
	}
	if line := skillsText(p.Skills); line != "" {
		segments = append(segments, line)
	}

	text := strings.Join(segments, "\n")
	if text == "" {
		return "", ErrNoUsableText
	}
	return text, nil
}

// experienceText renders up to maxExperiences entries, most recent first.
// Experiences are assumed ordered most-recent-first as delivered by the
// source integration.
func experienceText(experiences []models.Experience) string {
	if len(experiences) > maxExperiences {
		experiences = experiences[:maxExperiences]
	}

	var lines []string
	for _, exp := range experiences {
		var parts []string
		if exp.Title != "" {
			parts = append(parts, exp.Title)
		}
		if exp.Company != "" {
			parts = append(parts, "at "+exp.Company)
		}
		line := strings.Join(parts, " ")
		if desc := truncateRunes(strings.TrimSpace(exp.Description), maxDescriptionLen); desc != "" {
			if line != "" {
				line += ": " + desc
			} else {
				line = desc
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// educationText renders every education entry as degree + school
func educationText(educations []models.Education) string {
	var lines []string
	for _, edu := range educations {
		var parts []string
		if edu.Degree != "" {
			parts = append(parts, edu.Degree)
		}
		if edu.School != "" {
			parts = append(parts, edu.School)
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, ", "))
		}
	}
	return strings.Join(lines, "\n")
}

// skillsText renders up to maxSkills skill names, comma-joined
func skillsText(skills []string) string {
	var names []string
	for _, skill := range skills {
		if s := strings.TrimSpace(skill); s != "" {
			names = append(names, s)
		}
		if len(names) == maxSkills {
			break
		}
	}
	if len(names) == 0 {
		return ""
	}
	return "Skills: " + strings.Join(names, ", ")
}

// truncateRunes shortens s to maxLen runes, adding "..." if truncated
func truncateRunes(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
