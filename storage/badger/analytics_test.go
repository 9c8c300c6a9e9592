package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
)

func TestAnalyticsSearchBasics(t *testing.T) {
	vocabRepo, langRepo, analyticsRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { analyticsRepo.Close(); langRepo.Close(); vocabRepo.Close(); backend.Close() }()

	ctx := context.Background()

	query := &core.SearchQuery{Term: "cold", LanguageCode: "en"}
	added, err := analyticsRepo.AddSearch(ctx, query)
	if err != nil {
		t.Fatalf("Failed to add search: %v", err)
	}

	if added.Id == 0 {
		t.Fatal("Expected non-zero search ID")
	}
	if added.CreatedAt.IsZero() {
		t.Fatal("Expected CreatedAt to be set")
	}

	retrieved, err := analyticsRepo.GetSearch(ctx, added.Id)
	if err != nil {
		t.Fatalf("Failed to get search: %v", err)
	}
	if retrieved.Term != "cold" {
		t.Fatalf("Expected 'cold', got '%s'", retrieved.Term)
	}
	if retrieved.LedToConceptLookup {
		t.Fatal("New search should not be flagged as concept lookup")
	}
}

func TestAnalyticsMarkConceptLookup(t *testing.T) {
	vocabRepo, langRepo, analyticsRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { analyticsRepo.Close(); langRepo.Close(); vocabRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := analyticsRepo.AddSearch(ctx, &core.SearchQuery{Term: "fever", LanguageCode: "en"})
	if err != nil {
		t.Fatalf("Failed to add search: %v", err)
	}

	if err := analyticsRepo.MarkConceptLookup(ctx, added.Id); err != nil {
		t.Fatalf("Failed to mark concept lookup: %v", err)
	}

	// Marking twice is a no-op
	if err := analyticsRepo.MarkConceptLookup(ctx, added.Id); err != nil {
		t.Fatalf("Failed to mark concept lookup twice: %v", err)
	}

	retrieved, err := analyticsRepo.GetSearch(ctx, added.Id)
	if err != nil {
		t.Fatalf("Failed to get search: %v", err)
	}
	if !retrieved.LedToConceptLookup {
		t.Fatal("Expected LedToConceptLookup to be true")
	}

	// Missing search
	if err := analyticsRepo.MarkConceptLookup(ctx, 99999); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestAnalyticsSelectionsAndViews(t *testing.T) {
	vocabRepo, langRepo, analyticsRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { analyticsRepo.Close(); langRepo.Close(); vocabRepo.Close(); backend.Close() }()

	ctx := context.Background()

	search1, err := analyticsRepo.AddSearch(ctx, &core.SearchQuery{Term: "cold", LanguageCode: "en"})
	if err != nil {
		t.Fatalf("Failed to add search: %v", err)
	}
	search2, err := analyticsRepo.AddSearch(ctx, &core.SearchQuery{Term: "fever", LanguageCode: "es"})
	if err != nil {
		t.Fatalf("Failed to add search: %v", err)
	}

	selections := []*core.SynonymSelection{
		{SearchId: search1.Id, Synonym: "head cold"},
		{SearchId: search1.Id, Synonym: "acute coryza"},
		{SearchId: search2.Id, Synonym: "pyrexia"},
	}
	for _, sel := range selections {
		if err := analyticsRepo.AddSelectedSynonym(ctx, sel); err != nil {
			t.Fatalf("Failed to add selection: %v", err)
		}
	}

	// Selections for one search, in insertion order
	got, err := analyticsRepo.SelectedSynonyms(ctx, search1.Id)
	if err != nil {
		t.Fatalf("Failed to get selections: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 selections, got %d", len(got))
	}
	if got[0].Synonym != "head cold" || got[1].Synonym != "acute coryza" {
		t.Fatalf("Selections out of order: %v, %v", got[0].Synonym, got[1].Synonym)
	}

	all, err := analyticsRepo.AllSelectedSynonyms(ctx)
	if err != nil {
		t.Fatalf("Failed to get all selections: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 selections total, got %d", len(all))
	}

	// Concept views
	views := []*core.ConceptView{
		{Name: "Common cold"},
		{Name: "Fever"},
	}
	for _, v := range views {
		if err := analyticsRepo.AddViewedConcept(ctx, v); err != nil {
			t.Fatalf("Failed to add view: %v", err)
		}
	}

	allViews, err := analyticsRepo.AllViewedConcepts(ctx)
	if err != nil {
		t.Fatalf("Failed to get views: %v", err)
	}
	if len(allViews) != 2 {
		t.Fatalf("Expected 2 views, got %d", len(allViews))
	}
}

func TestAllSearchesSinceFilter(t *testing.T) {
	vocabRepo, langRepo, analyticsRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { analyticsRepo.Close(); langRepo.Close(); vocabRepo.Close(); backend.Close() }()

	ctx := context.Background()

	old := &core.SearchQuery{Term: "old", LanguageCode: "en",
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour)}
	recent := &core.SearchQuery{Term: "recent", LanguageCode: "en"}

	if _, err := analyticsRepo.AddSearch(ctx, old); err != nil {
		t.Fatalf("Failed to add search: %v", err)
	}
	if _, err := analyticsRepo.AddSearch(ctx, recent); err != nil {
		t.Fatalf("Failed to add search: %v", err)
	}

	all, err := analyticsRepo.AllSearches(ctx, time.Time{})
	if err != nil {
		t.Fatalf("Failed to get all searches: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 searches, got %d", len(all))
	}

	// Ascending ID order
	if all[0].Id >= all[1].Id {
		t.Fatalf("Expected ascending ID order, got %d then %d", all[0].Id, all[1].Id)
	}

	filtered, err := analyticsRepo.AllSearches(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Failed to get filtered searches: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("Expected 1 search after filter, got %d", len(filtered))
	}
	if filtered[0].Term != "recent" {
		t.Fatalf("Expected 'recent', got '%s'", filtered[0].Term)
	}
}

func TestAnalyticsRejectsEmptyTerm(t *testing.T) {
	vocabRepo, langRepo, analyticsRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { analyticsRepo.Close(); langRepo.Close(); vocabRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = analyticsRepo.AddSearch(ctx, &core.SearchQuery{Term: "  ", LanguageCode: "en"})
	if !errors.Is(err, core.ErrEmptyInput) {
		t.Fatalf("Expected ErrEmptyInput, got %v", err)
	}
}
