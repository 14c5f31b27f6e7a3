// ABOUTME: Query pipeline: embed the query text, similarity search, assemble results
// ABOUTME: Validates parameters before any remote call; empty results are not errors
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/profilesearch/internal/models"
	"github.com/harper/profilesearch/internal/storage"
)

// ErrInvalidQuery indicates out-of-range search parameters, rejected
// before any remote call is made
var ErrInvalidQuery = errors.New("invalid search parameters")

const (
	// DefaultMatchCount is the default maximum number of results
	DefaultMatchCount = 10
	// DefaultMatchThreshold is the default minimum similarity score
	DefaultMatchThreshold = 0.5
)

// SearchOptions control result count and the similarity cutoff
type SearchOptions struct {
	MatchCount     int
	MatchThreshold float64
}

// DefaultSearchOptions returns the documented defaults
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MatchCount:     DefaultMatchCount,
		MatchThreshold: DefaultMatchThreshold,
	}
}

// Searcher runs the semantic search pipeline
type Searcher struct {
	embedder Embedder
	store    storage.VectorStore
}

// NewSearcher creates a Searcher over the given embedder and store
func NewSearcher(embedder Embedder, store storage.VectorStore) *Searcher {
	return &Searcher{
		embedder: embedder,
		store:    store,
	}
}

// Search embeds the query text and returns scored profiles ordered by
// descending similarity, ties broken by ascending profile id. No matches
// is a valid outcome and returns an empty slice.
func (s *Searcher) Search(ctx context.Context, query string, opts SearchOptions) ([]models.ScoredProfile, error) {
	if opts.MatchCount <= 0 {
		return nil, fmt.Errorf("%w: match count must be positive, got %d", ErrInvalidQuery, opts.MatchCount)
	}
	if opts.MatchThreshold < -1 || opts.MatchThreshold > 1 {
		return nil, fmt.Errorf("%w: match threshold must be -1 to 1, got %f", ErrInvalidQuery, opts.MatchThreshold)
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := s.store.SimilaritySearch(ctx, vector, opts.MatchCount, opts.MatchThreshold)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	// Ordering is inherited from the store; do not re-sort here.
	results := make([]models.ScoredProfile, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.ScoredProfile{
			Profile: row.Profile,
			Score:   row.Similarity,
		})
	}

	return results, nil
}

// SearchSuggestions returns example queries for an empty search box
func SearchSuggestions() []string {
	return []string{
		"Software Engineers with experience in AI",
		"Product Managers in fintech",
		"UX Designers who worked at Google",
		"Data Scientists with Python experience",
		"Marketing professionals in healthcare",
	}
}
