// ABOUTME: Embedding storage and similarity search for the SQLite store
// ABOUTME: Vectors persist as little-endian float64 BLOBs, cosine computed in Go
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/harper/profilesearch/internal/models"
	"github.com/harper/profilesearch/internal/storage"
)

// InsertEmbedding stores the embedding for a profile, replacing any prior
// embedding for that profile id (delete-and-reinsert within one transaction)
func (s *Store) InsertEmbedding(ctx context.Context, profileID string, vector []float64, modelName string) (string, error) {
	if s.dimension > 0 && len(vector) != s.dimension {
		return "", fmt.Errorf("invalid embedding dimension: expected %d, got %d", s.dimension, len(vector))
	}

	embID := uuid.New().String()
	blob := vectorToBlob(vector)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM embeddings WHERE partition_name = ? AND profile_id = ?
	`, s.partition, profileID)
	if err != nil {
		return "", err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO embeddings (id, partition_name, profile_id, vector, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, embID, s.partition, profileID, blob, modelName, time.Now().UTC())
	if err != nil {
		return "", mapConstraintErr(err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	return embID, nil
}

// GetEmbedding retrieves the embedding for a profile, nil if absent
func (s *Store) GetEmbedding(ctx context.Context, profileID string) (*models.Embedding, error) {
	var emb models.Embedding
	var blob []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, vector, model, created_at
		FROM embeddings
		WHERE partition_name = ? AND profile_id = ?
	`, s.partition, profileID).Scan(&emb.ID, &emb.ProfileID, &blob, &emb.Model, &emb.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	emb.Vector = blobToVector(blob)
	return &emb, nil
}

// SimilaritySearch scores every embedded profile in the partition against
// the query vector and returns the ranked matches
func (s *Store) SimilaritySearch(ctx context.Context, queryVector []float64, matchCount int, matchThreshold float64) ([]models.SearchRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.vector, p.`+profileColumnList()+`
		FROM embeddings e
		JOIN profiles p ON p.partition_name = e.partition_name AND p.id = e.profile_id
		WHERE e.partition_name = ?
	`, s.partition)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []models.SearchRow
	for rows.Next() {
		var blob []byte
		p, err := scanProfileWithBlob(rows, &blob)
		if err != nil {
			return nil, err
		}

		results = append(results, models.SearchRow{
			Profile:    *p,
			Similarity: storage.CosineSimilarity(queryVector, blobToVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return storage.RankRows(results, matchCount, matchThreshold), nil
}

// profileColumnList qualifies the shared column list for joined queries
func profileColumnList() string {
	return `id, p.user_id, p.linkedin_id, p.full_name, p.headline, p.industry,
		p.location, p.summary, p.profile_url, p.profile_picture_url,
		p.experiences, p.educations, p.skills, p.certifications, p.languages,
		p.raw_profile_data, p.created_at, p.updated_at`
}

// scanProfileWithBlob scans a joined row of vector blob plus profile columns
func scanProfileWithBlob(rows *sql.Rows, blob *[]byte) (*models.Profile, error) {
	var p models.Profile
	var linkedinID, headline, industry, location, summary sql.NullString
	var profileURL, pictureURL sql.NullString
	var experiences, educations, skills, certifications, languages, rawData sql.NullString

	err := rows.Scan(blob, &p.ID, &p.UserID, &linkedinID, &p.FullName, &headline,
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

// vectorToBlob converts a float64 slice to a binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to a float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
