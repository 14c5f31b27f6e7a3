// ABOUTME: Tests for the SQLite vector store
// ABOUTME: Runs against an in-memory database with the real schema
package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/profilesearch/internal/models"
	"github.com/harper/profilesearch/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	store, err := NewStore(db, "test_partition", 3)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleProfile(id string) *models.Profile {
	return &models.Profile{
		ID:       id,
		UserID:   "user-1",
		FullName: "Jane Doe",
		Headline: "Software Engineer",
		Location: "Chicago",
		Experiences: []models.Experience{
			{Title: "Staff Engineer", Company: "Acme", Description: "Platform work"},
		},
		Educations: []models.Education{
			{School: "UIUC", Degree: "BS", Field: "CS"},
		},
		Skills:         []string{"Go", "SQL"},
		Certifications: []string{"AWS SA"},
		Languages:      []string{"English", "Spanish"},
		RawData:        map[string]interface{}{"source": "import"},
	}
}

func TestStore_InsertAndGetProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.InsertProfile(ctx, sampleProfile("p1"))
	if err != nil {
		t.Fatalf("InsertProfile() error = %v", err)
	}
	if id != "p1" {
		t.Errorf("InsertProfile() id = %q, want %q", id, "p1")
	}

	got, err := store.GetProfile(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.FullName != "Jane Doe" {
		t.Errorf("FullName = %q, want %q", got.FullName, "Jane Doe")
	}
	if got.Headline != "Software Engineer" {
		t.Errorf("Headline = %q, want %q", got.Headline, "Software Engineer")
	}
	if len(got.Experiences) != 1 || got.Experiences[0].Company != "Acme" {
		t.Errorf("Experiences = %v, want single Acme entry", got.Experiences)
	}
	if len(got.Educations) != 1 || got.Educations[0].School != "UIUC" {
		t.Errorf("Educations = %v, want single UIUC entry", got.Educations)
	}
	if len(got.Skills) != 2 {
		t.Errorf("Skills = %v, want 2 entries", got.Skills)
	}
	if len(got.Certifications) != 1 || len(got.Languages) != 2 {
		t.Errorf("Certifications = %v, Languages = %v", got.Certifications, got.Languages)
	}
	if got.RawData["source"] != "import" {
		t.Errorf("RawData = %v, want source=import", got.RawData)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not set on insert")
	}
}

func TestStore_InsertGeneratesID(t *testing.T) {
	store := newTestStore(t)

	p := sampleProfile("")
	id, err := store.InsertProfile(context.Background(), p)
	if err != nil {
		t.Fatalf("InsertProfile() error = %v", err)
	}
	if id == "" {
		t.Error("InsertProfile() returned empty id")
	}
	if p.ID != id {
		t.Errorf("profile ID = %q, want returned id %q", p.ID, id)
	}
}

func TestStore_InsertDuplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertProfile(ctx, sampleProfile("p1")); err != nil {
		t.Fatalf("InsertProfile() error = %v", err)
	}
	_, err := store.InsertProfile(ctx, sampleProfile("p1"))
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("InsertProfile() duplicate error = %v, want ErrDuplicateKey", err)
	}
}

func TestStore_InsertInvalidProfile(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name    string
		profile *models.Profile
	}{
		{"missing full name", &models.Profile{UserID: "user-1"}},
		{"missing user id", &models.Profile{FullName: "Jane Doe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.InsertProfile(context.Background(), tt.profile)
			if !errors.Is(err, storage.ErrValidation) {
				t.Errorf("InsertProfile() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := sampleProfile("p1")
	if _, err := store.InsertProfile(ctx, p); err != nil {
		t.Fatalf("InsertProfile() error = %v", err)
	}
	created := p.CreatedAt

	updated := sampleProfile("p1")
	updated.Headline = "Engineering Manager"
	updated.Skills = []string{"Go", "SQL", "Leadership"}
	if err := store.UpdateProfile(ctx, updated); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	got, err := store.GetProfile(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.Headline != "Engineering Manager" {
		t.Errorf("Headline = %q, want updated value", got.Headline)
	}
	if len(got.Skills) != 3 {
		t.Errorf("Skills = %v, want 3 entries", got.Skills)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want original %v", got.CreatedAt, created)
	}
}

func TestStore_UpdateMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateProfile(context.Background(), sampleProfile("ghost"))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateProfile() error = %v, want ErrNotFound", err)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetProfile(context.Background(), "ghost")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetProfile() error = %v, want ErrNotFound", err)
	}
}

func TestStore_ListProfiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		if _, err := store.InsertProfile(ctx, sampleProfile(id)); err != nil {
			t.Fatalf("InsertProfile(%s) error = %v", id, err)
		}
	}
	other := sampleProfile("other")
	other.UserID = "user-2"
	if _, err := store.InsertProfile(ctx, other); err != nil {
		t.Fatalf("InsertProfile(other) error = %v", err)
	}

	profiles, err := store.ListProfiles(ctx, "user-1", 0, 10)
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("ListProfiles() returned %d profiles, want 3", len(profiles))
	}
	for _, p := range profiles {
		if p.UserID != "user-1" {
			t.Errorf("ListProfiles() returned profile for %q", p.UserID)
		}
	}

	page, err := store.ListProfiles(ctx, "user-1", 1, 1)
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(page) != 1 {
		t.Errorf("ListProfiles(offset=1, limit=1) returned %d profiles, want 1", len(page))
	}

	none, err := store.ListProfiles(ctx, "user-3", 0, 10)
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ListProfiles() for unknown user returned %d profiles", len(none))
	}
}

func TestStore_DeleteIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertProfile(ctx, sampleProfile("p1")); err != nil {
		t.Fatalf("InsertProfile() error = %v", err)
	}

	if err := store.DeleteProfile(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}
	if err := store.DeleteProfile(ctx, "p1"); err != nil {
		t.Errorf("DeleteProfile() second call error = %v, want nil", err)
	}
	if _, err := store.GetProfile(ctx, "p1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetProfile() error = %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteCascadesEmbedding(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertProfile(ctx, sampleProfile("p1")); err != nil {
		t.Fatalf("InsertProfile() error = %v", err)
	}
	if _, err := store.InsertEmbedding(ctx, "p1", []float64{1, 0, 0}, "test-model"); err != nil {
		t.Fatalf("InsertEmbedding() error = %v", err)
	}

	if err := store.DeleteProfile(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}

	emb, err := store.GetEmbedding(ctx, "p1")
	if err != nil {
		t.Fatalf("GetEmbedding() error = %v", err)
	}
	if emb != nil {
		t.Error("GetEmbedding() != nil after profile delete, cascade failed")
	}
}

func TestStore_PartitionIsolation(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	storeA, err := NewStore(db, "partition_a", 3)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	storeB, err := NewStore(db, "partition_b", 3)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	defer storeA.Close()
	ctx := context.Background()

	if _, err := storeA.InsertProfile(ctx, sampleProfile("p1")); err != nil {
		t.Fatalf("InsertProfile() error = %v", err)
	}
	if _, err := storeA.InsertEmbedding(ctx, "p1", []float64{1, 0, 0}, "test-model"); err != nil {
		t.Fatalf("InsertEmbedding() error = %v", err)
	}

	// Same id is free in the other partition
	if _, err := storeB.InsertProfile(ctx, sampleProfile("p1")); err != nil {
		t.Errorf("InsertProfile() in second partition error = %v", err)
	}

	if _, err := storeB.GetProfile(ctx, "p1"); err != nil {
		t.Fatalf("GetProfile() in second partition error = %v", err)
	}

	rows, err := storeB.SimilaritySearch(ctx, []float64{1, 0, 0}, 10, -1)
	if err != nil {
		t.Fatalf("SimilaritySearch() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("SimilaritySearch() leaked %d rows across partitions", len(rows))
	}

	profiles, err := storeB.ListProfiles(ctx, "user-1", 0, 10)
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(profiles) != 1 {
		t.Errorf("ListProfiles() returned %d profiles, want 1", len(profiles))
	}
}
