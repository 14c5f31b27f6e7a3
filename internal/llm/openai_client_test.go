// ABOUTME: Tests for the OpenAI embedding client
// ABOUTME: Covers construction, config defaults, and local input validation
package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harper/profilesearch/internal/core"
	"github.com/harper/profilesearch/internal/models"
)

func TestNewEmbeddingClient_Defaults(t *testing.T) {
	client, err := NewEmbeddingClient("test-key")
	if err != nil {
		t.Fatalf("NewEmbeddingClient() error = %v", err)
	}
	if client.Model() != DefaultEmbeddingModel {
		t.Errorf("Model() = %q, want %q", client.Model(), DefaultEmbeddingModel)
	}
	if client.Dimension() != DefaultDimension {
		t.Errorf("Dimension() = %d, want %d", client.Dimension(), DefaultDimension)
	}
}

func TestNewEmbeddingClientWithConfig_FillsDefaults(t *testing.T) {
	client, err := NewEmbeddingClientWithConfig(&ClientConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewEmbeddingClientWithConfig() error = %v", err)
	}
	if client.Model() != DefaultEmbeddingModel {
		t.Errorf("Model() = %q, want default", client.Model())
	}
	if client.Dimension() != DefaultDimension {
		t.Errorf("Dimension() = %d, want default", client.Dimension())
	}
}

func TestNewEmbeddingClientWithConfig_Custom(t *testing.T) {
	client, err := NewEmbeddingClientWithConfig(&ClientConfig{
		APIKey:    "test-key",
		Model:     "text-embedding-3-large",
		Dimension: 3072,
		Timeout:   10 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewEmbeddingClientWithConfig() error = %v", err)
	}
	if client.Model() != "text-embedding-3-large" {
		t.Errorf("Model() = %q", client.Model())
	}
	if client.Dimension() != 3072 {
		t.Errorf("Dimension() = %d, want 3072", client.Dimension())
	}
}

func TestEmbedText_EmptyInput(t *testing.T) {
	client, err := NewEmbeddingClient("test-key")
	if err != nil {
		t.Fatalf("NewEmbeddingClient() error = %v", err)
	}

	// Rejected locally, no network call is made
	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := client.EmbedText(context.Background(), input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("EmbedText(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestEmbedProfile_NoUsableText(t *testing.T) {
	client, err := NewEmbeddingClient("test-key")
	if err != nil {
		t.Fatalf("NewEmbeddingClient() error = %v", err)
	}

	_, err = client.EmbedProfile(context.Background(), &models.Profile{})
	if !errors.Is(err, core.ErrNoUsableText) {
		t.Errorf("EmbedProfile() error = %v, want ErrNoUsableText", err)
	}
}
