// ABOUTME: Embedding models for vector storage and semantic search
// ABOUTME: Defines Embedding, SearchRow, and ScoredProfile structures
package models

import "time"

// Embedding represents a stored embedding vector derived from a profile.
// An embedding is never mutated in place; re-indexing replaces it.
type Embedding struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Vector    []float64 `json:"vector"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchRow is a raw similarity-search result row from the vector store
type SearchRow struct {
	Profile    Profile `json:"profile"`
	Similarity float64 `json:"similarity"`
}

// ScoredProfile pairs a fully-populated profile with its similarity score
type ScoredProfile struct {
	Profile Profile `json:"profile"`
	Score   float64 `json:"score"`
}
