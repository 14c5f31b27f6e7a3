// ABOUTME: Vector store contract for profile and embedding persistence
// ABOUTME: Defines the VectorStore interface, error taxonomy, and shared ranking
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/harper/profilesearch/internal/models"
)

var (
	// ErrValidation indicates a profile missing required fields
	ErrValidation = errors.New("profile validation failed")
	// ErrDuplicateKey indicates an insert with an id that already exists
	ErrDuplicateKey = errors.New("duplicate profile id")
	// ErrForeignKey indicates an embedding insert for a missing profile
	ErrForeignKey = errors.New("profile does not exist")
	// ErrNotFound indicates a lookup for a missing profile
	ErrNotFound = errors.New("profile not found")
)

// VectorStore persists profiles and their embeddings and performs
// similarity search. Every implementation is scoped to a single named
// partition chosen at construction; cross-partition queries are never
// performed implicitly.
type VectorStore interface {
	// InsertProfile stores a new profile and returns its id
	InsertProfile(ctx context.Context, p *models.Profile) (string, error)

	// UpdateProfile overwrites an existing profile, preserving its id
	// and creation time
	UpdateProfile(ctx context.Context, p *models.Profile) error

	// GetProfile retrieves a profile by id
	GetProfile(ctx context.Context, profileID string) (*models.Profile, error)

	// ListProfiles returns profiles owned by a user, paginated
	ListProfiles(ctx context.Context, userID string, offset, limit int) ([]models.Profile, error)

	// DeleteProfile removes a profile and its embedding. Deleting an
	// absent profile is a no-op, not an error.
	DeleteProfile(ctx context.Context, profileID string) error

	// InsertEmbedding stores the embedding for a profile, replacing any
	// prior embedding for that profile id
	InsertEmbedding(ctx context.Context, profileID string, vector []float64, modelName string) (string, error)

	// GetEmbedding retrieves the embedding for a profile, nil if absent
	GetEmbedding(ctx context.Context, profileID string) (*models.Embedding, error)

	// SimilaritySearch returns at most matchCount rows whose cosine
	// similarity to queryVector is >= matchThreshold, ordered by score
	// descending with ties broken by ascending profile id
	SimilaritySearch(ctx context.Context, queryVector []float64, matchCount int, matchThreshold float64) ([]models.SearchRow, error)

	// Close releases the underlying storage resources
	Close() error
}

// ValidateProfile checks the fields every backend requires at write time
func ValidateProfile(p *models.Profile) error {
	if p == nil {
		return ErrValidation
	}
	if p.FullName == "" {
		return fmt.Errorf("%w: full_name is required", ErrValidation)
	}
	if p.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	return nil
}

// RankRows applies threshold filtering, descending-score ordering with
// ascending-id tie-break, and the matchCount cap. Both backends rank
// through here so ordering semantics cannot diverge.
func RankRows(rows []models.SearchRow, matchCount int, matchThreshold float64) []models.SearchRow {
	if matchCount <= 0 {
		return []models.SearchRow{}
	}

	filtered := make([]models.SearchRow, 0, len(rows))
	for _, row := range rows {
		if row.Similarity >= matchThreshold {
			filtered = append(filtered, row)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Similarity != filtered[j].Similarity {
			return filtered[i].Similarity > filtered[j].Similarity
		}
		return filtered[i].Profile.ID < filtered[j].Profile.ID
	})

	if len(filtered) > matchCount {
		filtered = filtered[:matchCount]
	}

	return filtered
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
