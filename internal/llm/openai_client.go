// ABOUTME: OpenAI client for embedding generation
// ABOUTME: Uses text-embedding-3-small by default with retry and dimension validation
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/profilesearch/internal/core"
	"github.com/harper/profilesearch/internal/models"
	"github.com/harper/profilesearch/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultEmbeddingModel is the default model for embeddings
const DefaultEmbeddingModel = string(openai.SmallEmbedding3)

// DefaultDimension is the vector dimension of the default embedding model
const DefaultDimension = 1536

var (
	// ErrEmptyInput indicates embed was called with empty text; no remote call is made
	ErrEmptyInput = errors.New("embedding input text is empty")
	// ErrService indicates a remote embedding failure (network, auth, quota)
	ErrService = errors.New("embedding service error")
)

// ClientConfig holds configuration for the embedding client
type ClientConfig struct {
	APIKey     string
	Model      string
	Dimension  int
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:     apiKey,
		Model:      DefaultEmbeddingModel,
		Dimension:  DefaultDimension,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Second * 2,
	}
}

// EmbeddingClient wraps the OpenAI embeddings API with retry logic.
// The underlying client is read-only after construction and safe for
// concurrent use.
type EmbeddingClient struct {
	client     *openai.Client
	model      string
	dimension  int
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewEmbeddingClient creates a new embedding client with default configuration
func NewEmbeddingClient(apiKey string) (*EmbeddingClient, error) {
	return NewEmbeddingClientWithConfig(DefaultConfig(apiKey))
}

// NewEmbeddingClientWithConfig creates a new embedding client with custom
// configuration. A missing API key is not rejected here; it surfaces as a
// service error on the first embed call.
func NewEmbeddingClientWithConfig(config *ClientConfig) (*EmbeddingClient, error) {
	if config.Model == "" {
		config.Model = DefaultEmbeddingModel
	}
	if config.Dimension <= 0 {
		config.Dimension = DefaultDimension
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &EmbeddingClient{
		client:     openai.NewClient(config.APIKey),
		model:      config.Model,
		dimension:  config.Dimension,
		timeout:    config.Timeout,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}, nil
}

// Model returns the configured embedding model name
func (c *EmbeddingClient) Model() string {
	return c.model
}

// Dimension returns the configured vector dimension
func (c *EmbeddingClient) Dimension() int {
	return c.dimension
}

// EmbedText generates an embedding vector for arbitrary text.
// The returned vector length always equals the configured dimension.
func (c *EmbeddingClient) EmbedText(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)

		resp, err := c.client.CreateEmbeddings(attemptCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: openai.EmbeddingModel(c.model),
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		embedding32 := resp.Data[0].Embedding
		if len(embedding32) != c.dimension {
			return nil, fmt.Errorf("%w: model %s returned %d dimensions, expected %d",
				ErrService, c.model, len(embedding32), c.dimension)
		}

		// Convert []float32 to []float64
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}

		return embedding64, nil
	}

	return nil, fmt.Errorf("%w: failed after %d attempts: %v", ErrService, c.maxRetries+1, lastErr)
}

// EmbedProfile generates an embedding for a profile by normalizing it to
// text first, then delegating to EmbedText
func (c *EmbeddingClient) EmbedProfile(ctx context.Context, p *models.Profile) ([]float64, error) {
	text, err := core.ProfileText(p)
	if err != nil {
		return nil, err
	}
	return c.EmbedText(ctx, text)
}
