// ABOUTME: Charm KV backed implementation of the VectorStore contract
// ABOUTME: Full-scan cosine ranking over cloud-synced JSON records
package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harper/profilesearch/internal/charm"
	"github.com/harper/profilesearch/internal/models"
)

// KV is the key-value surface the charm-backed store needs. Get must
// return nil data with nil error for absent keys.
type KV interface {
	Get(key string) ([]byte, error)
	SetJSON(key string, value interface{}) error
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
	ListKeys(prefix string) ([]string, error)
	Close() error
}

// CharmStore implements VectorStore over charm KV. Similarity search
// scans every embedding in the partition; fine for personal-scale data,
// the same tradeoff the cloud-synced backend has always made.
type CharmStore struct {
	kv        KV
	partition string
	dimension int
}

// NewCharmStore creates a partition-scoped store over a charm KV client.
// dimension 0 disables vector length validation.
func NewCharmStore(kv KV, partition string, dimension int) (*CharmStore, error) {
	if partition == "" {
		return nil, fmt.Errorf("partition name is required")
	}
	return &CharmStore{
		kv:        kv,
		partition: partition,
		dimension: dimension,
	}, nil
}

// Close closes the underlying KV client
func (s *CharmStore) Close() error {
	return s.kv.Close()
}

// InsertProfile stores a new profile
func (s *CharmStore) InsertProfile(ctx context.Context, p *models.Profile) (string, error) {
	if err := ValidateProfile(p); err != nil {
		return "", err
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	key := charm.ProfileKey(s.partition, p.ID)
	existing, err := s.kv.Get(key)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", fmt.Errorf("%w: %s", ErrDuplicateKey, p.ID)
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := s.kv.SetJSON(key, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

// UpdateProfile overwrites an existing profile, preserving creation time
func (s *CharmStore) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if err := ValidateProfile(p); err != nil {
		return err
	}
	if p.ID == "" {
		return fmt.Errorf("%w: id is required for update", ErrValidation)
	}

	existing, err := s.GetProfile(ctx, p.ID)
	if err != nil {
		return err
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	return s.kv.SetJSON(charm.ProfileKey(s.partition, p.ID), p)
}

// GetProfile retrieves a profile by id
func (s *CharmStore) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	data, err := s.kv.Get(charm.ProfileKey(s.partition, profileID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, profileID)
	}

	var p models.Profile
	if err := s.kv.GetJSON(charm.ProfileKey(s.partition, profileID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProfiles returns profiles owned by a user, newest first
func (s *CharmStore) ListProfiles(ctx context.Context, userID string, offset, limit int) ([]models.Profile, error) {
	keys, err := s.kv.ListKeys(s.partition + ":" + charm.ProfilePrefix)
	if err != nil {
		return nil, err
	}

	var profiles []models.Profile
	for _, key := range keys {
		var p models.Profile
		if err := s.kv.GetJSON(key, &p); err != nil {
			continue
		}
		if p.UserID == userID {
			profiles = append(profiles, p)
		}
	}

	sort.Slice(profiles, func(i, j int) bool {
		if !profiles[i].CreatedAt.Equal(profiles[j].CreatedAt) {
			return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
		}
		return profiles[i].ID < profiles[j].ID
	})

	if offset >= len(profiles) {
		return []models.Profile{}, nil
	}
	profiles = profiles[offset:]
	if limit > 0 && len(profiles) > limit {
		profiles = profiles[:limit]
	}
	return profiles, nil
}

// DeleteProfile removes a profile and its embedding; no-op when absent
func (s *CharmStore) DeleteProfile(ctx context.Context, profileID string) error {
	if err := s.kv.Delete(charm.ProfileKey(s.partition, profileID)); err != nil {
		return err
	}
	return s.kv.Delete(charm.EmbeddingKey(s.partition, profileID))
}

// InsertEmbedding stores the embedding for a profile, replacing any prior one
func (s *CharmStore) InsertEmbedding(ctx context.Context, profileID string, vector []float64, modelName string) (string, error) {
	if s.dimension > 0 && len(vector) != s.dimension {
		return "", fmt.Errorf("invalid embedding dimension: expected %d, got %d", s.dimension, len(vector))
	}

	data, err := s.kv.Get(charm.ProfileKey(s.partition, profileID))
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", fmt.Errorf("%w: %s", ErrForeignKey, profileID)
	}

	emb := models.Embedding{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		Vector:    vector,
		Model:     modelName,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.kv.SetJSON(charm.EmbeddingKey(s.partition, profileID), emb); err != nil {
		return "", err
	}
	return emb.ID, nil
}

// GetEmbedding retrieves the embedding for a profile, nil if absent
func (s *CharmStore) GetEmbedding(ctx context.Context, profileID string) (*models.Embedding, error) {
	data, err := s.kv.Get(charm.EmbeddingKey(s.partition, profileID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var emb models.Embedding
	if err := s.kv.GetJSON(charm.EmbeddingKey(s.partition, profileID), &emb); err != nil {
		return nil, err
	}
	return &emb, nil
}

// SimilaritySearch scans all embeddings in the partition and ranks them
// against the query vector
func (s *CharmStore) SimilaritySearch(ctx context.Context, queryVector []float64, matchCount int, matchThreshold float64) ([]models.SearchRow, error) {
	keys, err := s.kv.ListKeys(s.partition + ":" + charm.EmbeddingPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list embedding keys: %w", err)
	}

	var rows []models.SearchRow
	for _, key := range keys {
		var emb models.Embedding
		if err := s.kv.GetJSON(key, &emb); err != nil {
			continue
		}

		profile, err := s.GetProfile(ctx, emb.ProfileID)
		if err != nil {
			continue
		}

		rows = append(rows, models.SearchRow{
			Profile:    *profile,
			Similarity: CosineSimilarity(queryVector, emb.Vector),
		})
	}

	return RankRows(rows, matchCount, matchThreshold), nil
}
