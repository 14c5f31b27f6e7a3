// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Store/pipeline construction and display helpers
package commands

import (
	"fmt"
	"time"

	"github.com/harper/profilesearch/internal/config"
	"github.com/harper/profilesearch/internal/core"
	"github.com/harper/profilesearch/internal/llm"
	"github.com/harper/profilesearch/internal/storage"
	"github.com/harper/profilesearch/internal/storage/sqlite"
)

// openStore opens the configured vector store backend
func openStore(cfg *config.Config) (storage.VectorStore, error) {
	switch cfg.Backend {
	case config.BackendCharm:
		client, err := newCharmClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("connecting to charm: %w", err)
		}
		store, err := storage.NewCharmStore(client, cfg.Partition, cfg.VectorDimension)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("initializing charm store: %w", err)
		}
		return store, nil
	default:
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		store, err := sqlite.NewStore(db, cfg.Partition, cfg.VectorDimension)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("initializing store: %w", err)
		}
		return store, nil
	}
}

// newEmbedder creates the embedding client from configuration
func newEmbedder(cfg *config.Config) (*llm.EmbeddingClient, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return llm.NewEmbeddingClientWithConfig(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		Model:      cfg.EmbeddingModel,
		Dimension:  cfg.VectorDimension,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
}

// newPipelines builds the indexer and searcher over a fresh store
func newPipelines(cfg *config.Config) (*core.Indexer, *core.Searcher, storage.VectorStore, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	embedder, err := newEmbedder(cfg)
	if err != nil {
		_ = store.Close()
		return nil, nil, nil, err
	}
	return core.NewIndexer(embedder, store), core.NewSearcher(embedder, store), store, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
