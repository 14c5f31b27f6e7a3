// ABOUTME: Tests for embedding persistence and similarity search
// ABOUTME: Covers blob round-trips, replace semantics, and ranking
package sqlite

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/harper/profilesearch/internal/storage"
)

func TestVectorBlobRoundTrip(t *testing.T) {
	vector := []float64{0.1, -2.5, 0, 1e10, math.Pi}

	got := blobToVector(vectorToBlob(vector))
	if len(got) != len(vector) {
		t.Fatalf("round trip length = %d, want %d", len(got), len(vector))
	}
	for i := range vector {
		if got[i] != vector[i] {
			t.Errorf("round trip [%d] = %v, want %v", i, got[i], vector[i])
		}
	}
}

func TestStore_InsertAndGetEmbedding(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertProfile(ctx, sampleProfile("p1")); err != nil {
		t.Fatalf("InsertProfile() error = %v", err)
	}

	id, err := store.InsertEmbedding(ctx, "p1", []float64{0.5, 0.25, -1}, "test-model")
	if err != nil {
		t.Fatalf("InsertEmbedding() error = %v", err)
	}
	if id == "" {
		t.Error("InsertEmbedding() returned empty id")
	}

	emb, err := store.GetEmbedding(ctx, "p1")
	if err != nil {
		t.Fatalf("GetEmbedding() error = %v", err)
	}
	if emb == nil {
		t.Fatal("GetEmbedding() = nil")
	}
	if emb.ID != id {
		t.Errorf("GetEmbedding() ID = %q, want %q", emb.ID, id)
	}
	if emb.ProfileID != "p1" {
		t.Errorf("GetEmbedding() ProfileID = %q, want %q", emb.ProfileID, "p1")
	}
	if emb.Model != "test-model" {
		t.Errorf("GetEmbedding() Model = %q, want %q", emb.Model, "test-model")
	}
	want := []float64{0.5, 0.25, -1}
	for i := range want {
		if emb.Vector[i] != want[i] {
			t.Errorf("GetEmbedding() Vector[%d] = %v, want %v", i, emb.Vector[i], want[i])
		}
	}
}

func TestStore_GetEmbeddingAbsent(t *testing.T) {
	store := newTestStore(t)

	emb, err := store.GetEmbedding(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("GetEmbedding() error = %v", err)
	}
	if emb != nil {
		t.Error("GetEmbedding() != nil for absent embedding")
	}
}

func TestStore_InsertEmbeddingMissingProfile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.InsertEmbedding(context.Background(), "ghost", []float64{1, 0, 0}, "test-model")
	if !errors.Is(err, storage.ErrForeignKey) {
		t.Errorf("InsertEmbedding() error = %v, want ErrForeignKey", err)
	}
}

func TestStore_InsertEmbeddingWrongDimension(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertProfile(ctx, sampleProfile("p1")); err != nil {
		t.Fatalf("InsertProfile() error = %v", err)
	}
	if _, err := store.InsertEmbedding(ctx, "p1", []float64{1, 0}, "test-model"); err == nil {
		t.Error("InsertEmbedding() with wrong dimension error = nil, want error")
	}
}

func TestStore_InsertEmbeddingReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertProfile(ctx, sampleProfile("p1")); err != nil {
		t.Fatalf("InsertProfile() error = %v", err)
	}

	firstID, err := store.InsertEmbedding(ctx, "p1", []float64{1, 0, 0}, "test-model")
	if err != nil {
		t.Fatalf("InsertEmbedding() error = %v", err)
	}
	secondID, err := store.InsertEmbedding(ctx, "p1", []float64{0, 1, 0}, "test-model")
	if err != nil {
		t.Fatalf("InsertEmbedding() replace error = %v", err)
	}
	if firstID == secondID {
		t.Error("InsertEmbedding() replace reused the old embedding id")
	}

	emb, err := store.GetEmbedding(ctx, "p1")
	if err != nil {
		t.Fatalf("GetEmbedding() error = %v", err)
	}
	if emb == nil {
		t.Fatal("GetEmbedding() = nil")
	}
	if emb.ID != secondID {
		t.Errorf("GetEmbedding() ID = %q, want replacement %q", emb.ID, secondID)
	}
	if emb.Vector[0] != 0 || emb.Vector[1] != 1 {
		t.Errorf("GetEmbedding() Vector = %v, want replacement vector", emb.Vector)
	}
}

func TestStore_SimilaritySearchOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	vectors := map[string][]float64{
		"p1": {1, 0, 0},
		"p2": {0.9, 0.1, 0},
		"p3": {0, 1, 0},
	}
	for _, id := range []string{"p1", "p2", "p3"} {
		if _, err := store.InsertProfile(ctx, sampleProfile(id)); err != nil {
			t.Fatalf("InsertProfile(%s) error = %v", id, err)
		}
		if _, err := store.InsertEmbedding(ctx, id, vectors[id], "test-model"); err != nil {
			t.Fatalf("InsertEmbedding(%s) error = %v", id, err)
		}
	}

	rows, err := store.SimilaritySearch(ctx, []float64{1, 0, 0}, 10, 0.5)
	if err != nil {
		t.Fatalf("SimilaritySearch() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("SimilaritySearch() returned %d rows, want 2", len(rows))
	}
	if rows[0].Profile.ID != "p1" || rows[1].Profile.ID != "p2" {
		t.Errorf("SimilaritySearch() order = %q, %q, want p1, p2", rows[0].Profile.ID, rows[1].Profile.ID)
	}
	if rows[0].Similarity < rows[1].Similarity {
		t.Errorf("scores not descending: %f < %f", rows[0].Similarity, rows[1].Similarity)
	}
}

func TestStore_SimilaritySearchTieBreak(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Identical vectors, so scores tie and ids decide the order
	for _, id := range []string{"pb", "pa"} {
		if _, err := store.InsertProfile(ctx, sampleProfile(id)); err != nil {
			t.Fatalf("InsertProfile(%s) error = %v", id, err)
		}
		if _, err := store.InsertEmbedding(ctx, id, []float64{1, 0, 0}, "test-model"); err != nil {
			t.Fatalf("InsertEmbedding(%s) error = %v", id, err)
		}
	}

	rows, err := store.SimilaritySearch(ctx, []float64{1, 0, 0}, 10, 0.5)
	if err != nil {
		t.Fatalf("SimilaritySearch() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("SimilaritySearch() returned %d rows, want 2", len(rows))
	}
	if rows[0].Profile.ID != "pa" || rows[1].Profile.ID != "pb" {
		t.Errorf("tie-break order = %q, %q, want pa, pb", rows[0].Profile.ID, rows[1].Profile.ID)
	}
}

func TestStore_SimilaritySearchCountCap(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		if _, err := store.InsertProfile(ctx, sampleProfile(id)); err != nil {
			t.Fatalf("InsertProfile(%s) error = %v", id, err)
		}
		if _, err := store.InsertEmbedding(ctx, id, []float64{1, 0, 0}, "test-model"); err != nil {
			t.Fatalf("InsertEmbedding(%s) error = %v", id, err)
		}
	}

	rows, err := store.SimilaritySearch(ctx, []float64{1, 0, 0}, 2, 0.5)
	if err != nil {
		t.Fatalf("SimilaritySearch() error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("SimilaritySearch() returned %d rows, want 2", len(rows))
	}
}

func TestStore_SimilaritySearchSkipsUnembedded(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertProfile(ctx, sampleProfile("p1")); err != nil {
		t.Fatalf("InsertProfile() error = %v", err)
	}

	rows, err := store.SimilaritySearch(ctx, []float64{1, 0, 0}, 10, -1)
	if err != nil {
		t.Fatalf("SimilaritySearch() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("SimilaritySearch() returned %d rows for unembedded profile, want 0", len(rows))
	}
}
