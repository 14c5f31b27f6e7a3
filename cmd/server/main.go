// ABOUTME: Main entry point for the profile search MCP server with stdio transport
// ABOUTME: Initializes storage, embedding client, and pipelines, then serves tools
package main

import (
	"fmt"
	"log"

	"github.com/harper/profilesearch/internal/charm"
	"github.com/harper/profilesearch/internal/config"
	"github.com/harper/profilesearch/internal/core"
	"github.com/harper/profilesearch/internal/llm"
	"github.com/harper/profilesearch/internal/mcp"
	"github.com/harper/profilesearch/internal/storage"
	"github.com/harper/profilesearch/internal/storage/sqlite"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - indexing and search will not work")
	}

	// Initialize the configured vector store backend
	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	// Initialize embedding client
	embedder, err := llm.NewEmbeddingClientWithConfig(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		Model:      cfg.EmbeddingModel,
		Dimension:  cfg.VectorDimension,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("Failed to initialize embedding client: %v", err)
	}

	indexer := core.NewIndexer(embedder, store)
	searcher := core.NewSearcher(embedder, store)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Profile Semantic Search",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, indexer, searcher, store)

	// Start server with stdio transport
	log.Println("Profile search MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// openStore opens the vector store backend named by the configuration
func openStore(cfg *config.Config) (storage.VectorStore, error) {
	switch cfg.Backend {
	case config.BackendCharm:
		client, err := charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to charm: %w", err)
		}
		store, err := storage.NewCharmStore(client, cfg.Partition, cfg.VectorDimension)
		if err != nil {
			_ = client.Close()
			return nil, err
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
			return nil, err
		}
		return store, nil
	}
}
