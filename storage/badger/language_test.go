package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
)

func TestLanguageBasics(t *testing.T) {
	vocabRepo, langRepo, analyticsRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { analyticsRepo.Close(); langRepo.Close(); vocabRepo.Close(); backend.Close() }()

	ctx := context.Background()

	lang := &core.Language{Code: "pl", Label: "Polish", NativeName: "Polski"}
	added, err := langRepo.AddLanguage(ctx, lang)
	if err != nil {
		t.Fatalf("Failed to add language: %v", err)
	}
	if added.InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	retrieved, err := langRepo.GetLanguageByCode(ctx, "pl")
	if err != nil {
		t.Fatalf("Failed to get language: %v", err)
	}
	if retrieved.Label != "Polish" {
		t.Fatalf("Expected 'Polish', got '%s'", retrieved.Label)
	}

	// Lookup normalizes case
	retrieved, err = langRepo.GetLanguageByCode(ctx, "PL")
	if err != nil {
		t.Fatalf("Failed to get language with uppercase code: %v", err)
	}
	if retrieved.Code != "pl" {
		t.Fatalf("Expected code 'pl', got '%s'", retrieved.Code)
	}

	// Missing language
	_, err = langRepo.GetLanguageByCode(ctx, "xx")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestLanguageDuplicateCode(t *testing.T) {
	vocabRepo, langRepo, analyticsRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { analyticsRepo.Close(); langRepo.Close(); vocabRepo.Close(); backend.Close() }()

	ctx := context.Background()

	if _, err := langRepo.AddLanguage(ctx, &core.Language{Code: "en", Label: "English"}); err != nil {
		t.Fatalf("Failed to add language: %v", err)
	}

	_, err = langRepo.AddLanguage(ctx, &core.Language{Code: "en", Label: "Engleski"})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestLanguageUpdate(t *testing.T) {
	vocabRepo, langRepo, analyticsRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { analyticsRepo.Close(); langRepo.Close(); vocabRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := langRepo.AddLanguage(ctx, &core.Language{Code: "de", Label: "Deutsch"})
	if err != nil {
		t.Fatalf("Failed to add language: %v", err)
	}

	added.Label = "German"
	updated, err := langRepo.UpdateLanguage(ctx, added)
	if err != nil {
		t.Fatalf("Failed to update language: %v", err)
	}
	if updated.Label != "German" {
		t.Fatalf("Expected 'German', got '%s'", updated.Label)
	}
	if !updated.UpdatedAt.After(updated.InsertedAt) && !updated.UpdatedAt.Equal(updated.InsertedAt) {
		t.Fatal("Expected UpdatedAt >= InsertedAt")
	}

	// Updating an unregistered code fails
	_, err = langRepo.UpdateLanguage(ctx, &core.Language{Code: "fr", Label: "French"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestListLanguagesOrderedByCode(t *testing.T) {
	vocabRepo, langRepo, analyticsRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { analyticsRepo.Close(); langRepo.Close(); vocabRepo.Close(); backend.Close() }()

	ctx := context.Background()

	for _, lang := range []*core.Language{
		{Code: "pl", Label: "Polish"},
		{Code: "en", Label: "English"},
		{Code: "de", Label: "German"},
	} {
		if _, err := langRepo.AddLanguage(ctx, lang); err != nil {
			t.Fatalf("Failed to add language %s: %v", lang.Code, err)
		}
	}

	langs, err := langRepo.ListLanguages(ctx)
	if err != nil {
		t.Fatalf("Failed to list languages: %v", err)
	}
	if len(langs) != 3 {
		t.Fatalf("Expected 3 languages, got %d", len(langs))
	}

	want := []string{"de", "en", "pl"}
	for i, code := range want {
		if langs[i].Code != code {
			t.Fatalf("Expected code %s at position %d, got %s", code, i, langs[i].Code)
		}
	}
}
