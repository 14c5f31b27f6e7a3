// ABOUTME: Profile model for professional profile records
// ABOUTME: Defines Profile with display fields, typed sections, and raw payload
package models

import "time"

// Profile represents a professional profile record owned by a user.
// ID is immutable once assigned. RawData carries the open-ended payload
// from the source integration and has no fixed shape. Display fields
// always serialize, empty strings included, so every result carries the
// same key set.
type Profile struct {
	ID                string                 `json:"id"`
	UserID            string                 `json:"user_id"`
	LinkedInID        string                 `json:"linkedin_id"`
	FullName          string                 `json:"full_name"`
	Headline          string                 `json:"headline"`
	Industry          string                 `json:"industry"`
	Location          string                 `json:"location"`
	Summary           string                 `json:"summary"`
	ProfileURL        string                 `json:"profile_url"`
	ProfilePictureURL string                 `json:"profile_picture_url"`
	Experiences       []Experience           `json:"experiences,omitempty"`
	Educations        []Education            `json:"educations,omitempty"`
	Skills            []string               `json:"skills,omitempty"`
	Certifications    []string               `json:"certifications,omitempty"`
	Languages         []string               `json:"languages,omitempty"`
	RawData           map[string]interface{} `json:"raw_profile_data,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// Experience is a single work history entry
type Experience struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// Education is a single education history entry
type Education struct {
	School string `json:"school,omitempty"`
	Degree string `json:"degree,omitempty"`
	Field  string `json:"field,omitempty"`
}
