package storage

import (
	"context"
	"time"

	"github.com/poiesic/medlex/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// VocabularyRepository provides read-mostly access to the concept vocabulary.
// Concepts and mappings are written only during ingestion; the resolution
// path never mutates the store.
type VocabularyRepository interface {
	Repository
	// AddConcepts adds one or more concept records to storage.
	// Records are keyed by their upstream concept ID, so re-adding a record
	// overwrites the previous version.
	AddConcepts(ctx context.Context, concepts ...*core.ConceptRecord) error

	// AddMappings adds "Maps to" edges between concepts.
	// Edges are idempotent; re-adding an existing edge is a no-op.
	AddMappings(ctx context.Context, mappings ...*core.ConceptMapping) error

	// GetConcept retrieves a single concept record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetConcept(ctx context.Context, id core.ID) (*core.ConceptRecord, error)

	// ScanConcepts iterates over every concept record in the vocabulary.
	// Iteration stops early when fn returns false or the context is done.
	ScanConcepts(ctx context.Context, fn func(record *core.ConceptRecord) bool) error

	// GetMappedConcepts retrieves the standard concepts the given concept
	// maps to. Returns an empty slice when the concept has no mappings.
	// Dangling edges (targets missing from the vocabulary) are skipped.
	GetMappedConcepts(ctx context.Context, id core.ID) ([]*core.ConceptRecord, error)

	// CountConcepts returns the number of concept records in the vocabulary.
	CountConcepts(ctx context.Context) (int, error)
}

// LanguageRepository provides operations for managing supported languages.
type LanguageRepository interface {
	Repository
	// AddLanguage adds a language keyed by its 2-letter code.
	// Sets InsertedAt and UpdatedAt timestamps if not already set.
	// Returns ErrDuplicateKey if the code is already registered.
	AddLanguage(ctx context.Context, lang *core.Language) (*core.Language, error)

	// GetLanguageByCode retrieves a language by its 2-letter code.
	// Returns ErrNotFound if the code isn't registered.
	GetLanguageByCode(ctx context.Context, code string) (*core.Language, error)

	// UpdateLanguage replaces the stored record for the language's code.
	// The code itself is immutable. Updates the UpdatedAt timestamp.
	// Returns ErrNotFound if the code isn't registered.
	UpdateLanguage(ctx context.Context, lang *core.Language) (*core.Language, error)

	// ListLanguages retrieves all registered languages, ordered by code.
	ListLanguages(ctx context.Context) ([]*core.Language, error)
}

// AnalyticsRepository provides append-oriented operations for search history.
// All writes are facts; nothing here is ever deleted.
type AnalyticsRepository interface {
	Repository
	// AddSearch appends a search query, generating its ID from sequence.
	// Sets CreatedAt if not already set. Returns the query with the
	// generated ID and timestamp populated.
	AddSearch(ctx context.Context, query *core.SearchQuery) (*core.SearchQuery, error)

	// MarkConceptLookup flags an existing search as having led to a concept
	// lookup. Returns ErrNotFound if the search doesn't exist.
	MarkConceptLookup(ctx context.Context, searchId core.ID) error

	// AddSelectedSynonym appends a synonym selection fact for a search.
	// Sets SelectedAt if not already set.
	AddSelectedSynonym(ctx context.Context, selection *core.SynonymSelection) error

	// AddViewedConcept appends a concept view fact.
	// Sets ViewedAt if not already set.
	AddViewedConcept(ctx context.Context, view *core.ConceptView) error

	// GetSearch retrieves a single search query by ID.
	// Returns ErrNotFound if the search doesn't exist.
	GetSearch(ctx context.Context, id core.ID) (*core.SearchQuery, error)

	// AllSearches retrieves searches in ascending ID order.
	// When since is non-zero, only searches created at or after it are
	// returned.
	AllSearches(ctx context.Context, since time.Time) ([]*core.SearchQuery, error)

	// SelectedSynonyms retrieves the synonym selections for a search,
	// in selection order.
	SelectedSynonyms(ctx context.Context, searchId core.ID) ([]*core.SynonymSelection, error)

	// AllSelectedSynonyms retrieves every synonym selection fact.
	AllSelectedSynonyms(ctx context.Context) ([]*core.SynonymSelection, error)

	// AllViewedConcepts retrieves every concept view fact.
	AllViewedConcepts(ctx context.Context) ([]*core.ConceptView, error)
}
