// ABOUTME: Indexing pipeline: normalize, embed, persist profile, persist embedding
// ABOUTME: One embedding per profile id; re-index replaces, delete cascades
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/profilesearch/internal/models"
	"github.com/harper/profilesearch/internal/storage"
)

// Embedder generates embedding vectors for text. The llm client
// implements it; tests substitute a deterministic fake.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float64, error)
	Model() string
}

// Indexer runs the profile indexing pipeline. It holds no mutable state;
// concurrent invocations for distinct profiles are independent, and
// concurrent updates for the same profile resolve last-write-wins at the
// store.
type Indexer struct {
	embedder Embedder
	store    storage.VectorStore
}

// NewIndexer creates an Indexer over the given embedder and store
func NewIndexer(embedder Embedder, store storage.VectorStore) *Indexer {
	return &Indexer{
		embedder: embedder,
		store:    store,
	}
}

// Index runs the full pipeline for a profile create or update. When the
// profile id already exists the write re-runs as an update and the new
// embedding replaces the prior one.
//
// If the embedding persist fails after the profile persisted, the profile
// stays readable with its embedding absent or stale. That partial-index
// window is accepted; the caller decides whether to retry.
func (ix *Indexer) Index(ctx context.Context, p *models.Profile) error {
	text, err := ProfileText(p)
	if err != nil {
		return fmt.Errorf("normalize stage: %w", err)
	}

	vector, err := ix.embedder.EmbedText(ctx, text)
	if err != nil {
		return fmt.Errorf("embed stage: %w", err)
	}

	profileID, err := ix.store.InsertProfile(ctx, p)
	if errors.Is(err, storage.ErrDuplicateKey) {
		if err := ix.store.UpdateProfile(ctx, p); err != nil {
			return fmt.Errorf("persist profile stage: %w", err)
		}
		profileID = p.ID
	} else if err != nil {
		return fmt.Errorf("persist profile stage: %w", err)
	}

	if _, err := ix.store.InsertEmbedding(ctx, profileID, vector, ix.embedder.Model()); err != nil {
		return fmt.Errorf("persist embedding stage: %w", err)
	}

	return nil
}

// Deindex removes a profile and its embedding. Idempotent: deindexing an
// absent profile succeeds.
func (ix *Indexer) Deindex(ctx context.Context, profileID string) error {
	return ix.store.DeleteProfile(ctx, profileID)
}
