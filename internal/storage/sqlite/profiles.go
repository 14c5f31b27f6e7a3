// ABOUTME: Profile CRUD operations for the SQLite store
// ABOUTME: Structured sections and the raw payload serialize to JSON columns
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/profilesearch/internal/models"
	"github.com/harper/profilesearch/internal/storage"
)

const profileColumns = `id, user_id, linkedin_id, full_name, headline, industry, location,
	summary, profile_url, profile_picture_url, experiences, educations, skills,
	certifications, languages, raw_profile_data, created_at, updated_at`

// InsertProfile stores a new profile, assigning a UUID when the caller
// left the id empty
func (s *Store) InsertProfile(ctx context.Context, p *models.Profile) (string, error) {
	if err := storage.ValidateProfile(p); err != nil {
		return "", err
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	cols, err := marshalProfileJSON(p)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (partition_name, `+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.partition, p.ID, p.UserID, nullString(p.LinkedInID), p.FullName,
		nullString(p.Headline), nullString(p.Industry), nullString(p.Location),
		nullString(p.Summary), nullString(p.ProfileURL), nullString(p.ProfilePictureURL),
		cols.experiences, cols.educations, cols.skills, cols.certifications,
		cols.languages, cols.rawData, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return "", mapConstraintErr(err)
	}

	return p.ID, nil
}

// UpdateProfile overwrites an existing profile, preserving id and
// creation time
func (s *Store) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if err := storage.ValidateProfile(p); err != nil {
		return err
	}
	if p.ID == "" {
		return fmt.Errorf("%w: id is required for update", storage.ErrValidation)
	}

	p.UpdatedAt = time.Now().UTC()

	cols, err := marshalProfileJSON(p)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET
			user_id = ?, linkedin_id = ?, full_name = ?, headline = ?,
			industry = ?, location = ?, summary = ?, profile_url = ?,
			profile_picture_url = ?, experiences = ?, educations = ?,
			skills = ?, certifications = ?, languages = ?,
			raw_profile_data = ?, updated_at = ?
		WHERE partition_name = ? AND id = ?
	`, p.UserID, nullString(p.LinkedInID), p.FullName, nullString(p.Headline),
		nullString(p.Industry), nullString(p.Location), nullString(p.Summary),
		nullString(p.ProfileURL), nullString(p.ProfilePictureURL),
		cols.experiences, cols.educations, cols.skills, cols.certifications,
		cols.languages, cols.rawData, p.UpdatedAt, s.partition, p.ID)
	if err != nil {
		return mapConstraintErr(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, p.ID)
	}
	return nil
}

// GetProfile retrieves a profile by id
func (s *Store) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE partition_name = ? AND id = ?
	`, s.partition, profileID)

	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, profileID)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProfiles returns profiles owned by a user, newest first
func (s *Store) ListProfiles(ctx context.Context, userID string, offset, limit int) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE partition_name = ? AND user_id = ?
		ORDER BY created_at DESC, id ASC
		LIMIT ? OFFSET ?
	`, s.partition, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// DeleteProfile removes a profile; the embedding cascades. Deleting an
// absent profile is a no-op.
func (s *Store) DeleteProfile(ctx context.Context, profileID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM profiles WHERE partition_name = ? AND id = ?
	`, s.partition, profileID)
	return err
}

// profileJSON holds the serialized JSON columns for a profile row
type profileJSON struct {
	experiences    sql.NullString
	educations     sql.NullString
	skills         sql.NullString
	certifications sql.NullString
	languages      sql.NullString
	rawData        sql.NullString
}

func marshalProfileJSON(p *models.Profile) (*profileJSON, error) {
	cols := &profileJSON{}
	for _, field := range []struct {
		value interface{}
		empty bool
		dest  *sql.NullString
	}{
		{p.Experiences, len(p.Experiences) == 0, &cols.experiences},
		{p.Educations, len(p.Educations) == 0, &cols.educations},
		{p.Skills, len(p.Skills) == 0, &cols.skills},
		{p.Certifications, len(p.Certifications) == 0, &cols.certifications},
		{p.Languages, len(p.Languages) == 0, &cols.languages},
		{p.RawData, len(p.RawData) == 0, &cols.rawData},
	} {
		if field.empty {
			continue
		}
		data, err := json.Marshal(field.value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal profile field: %w", err)
		}
		*field.dest = sql.NullString{String: string(data), Valid: true}
	}
	return cols, nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	var linkedinID, headline, industry, location, summary sql.NullString
	var profileURL, pictureURL sql.NullString
	var experiences, educations, skills, certifications, languages, rawData sql.NullString

	err := row.Scan(&p.ID, &p.UserID, &linkedinID, &p.FullName, &headline,
		&industry, &location, &summary, &profileURL, &pictureURL,
		&experiences, &educations, &skills, &certifications, &languages,
		&rawData, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.LinkedInID = linkedinID.String
	p.Headline = headline.String
	p.Industry = industry.String
	p.Location = location.String
	p.Summary = summary.String
	p.ProfileURL = profileURL.String
	p.ProfilePictureURL = pictureURL.String

	if err := unmarshalProfileJSON(&p, experiences, educations, skills, certifications, languages, rawData); err != nil {
		return nil, err
	}

	return &p, nil
}

// unmarshalProfileJSON decodes the JSON columns into the profile's
// structured sections
func unmarshalProfileJSON(p *models.Profile, experiences, educations, skills, certifications, languages, rawData sql.NullString) error {
	if experiences.Valid {
		if err := json.Unmarshal([]byte(experiences.String), &p.Experiences); err != nil {
			return fmt.Errorf("failed to unmarshal experiences: %w", err)
		}
	}
	if educations.Valid {
		if err := json.Unmarshal([]byte(educations.String), &p.Educations); err != nil {
			return fmt.Errorf("failed to unmarshal educations: %w", err)
		}
	}
	if skills.Valid {
		if err := json.Unmarshal([]byte(skills.String), &p.Skills); err != nil {
			return fmt.Errorf("failed to unmarshal skills: %w", err)
		}
	}
	if certifications.Valid {
		if err := json.Unmarshal([]byte(certifications.String), &p.Certifications); err != nil {
			return fmt.Errorf("failed to unmarshal certifications: %w", err)
		}
	}
	if languages.Valid {
		if err := json.Unmarshal([]byte(languages.String), &p.Languages); err != nil {
			return fmt.Errorf("failed to unmarshal languages: %w", err)
		}
	}
	if rawData.Valid {
		if err := json.Unmarshal([]byte(rawData.String), &p.RawData); err != nil {
			return fmt.Errorf("failed to unmarshal raw profile data: %w", err)
		}
	}
	return nil
}

// nullString converts an empty string to a NULL-able value
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
