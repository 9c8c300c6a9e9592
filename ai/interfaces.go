package ai

import "context"

// Disambiguator resolves a raw medical term into distinct candidate senses.
// Implementations must be thread-safe for concurrent use.
type Disambiguator interface {
	// Disambiguate returns the possible meanings of a medical term,
	// localized to the given 2-letter language code. Malformed candidates in
	// the model output are repaired when trivially possible and discarded
	// otherwise; a partial list is preferable to an error. Returns an empty
	// slice (not an error) when no valid candidate survives filtering.
	Disambiguate(ctx context.Context, term, language string) ([]Sense, error)
}

// SynonymGenerator proposes synonyms for a selected sense of a term.
// Implementations must be thread-safe for concurrent use.
type SynonymGenerator interface {
	// GenerateSynonyms returns synonyms for term, guided by the context
	// sentence of the chosen sense. Synonyms may be cross-lingual; each
	// carries a relevance score between 0 and 1. The seed term itself is not
	// guaranteed to be present — callers enforce that invariant.
	GenerateSynonyms(ctx context.Context, term, context_, language string) ([]Synonym, error)
}

// LanguageInferrer turns free-text language names into canonical language
// information. Implementations must be thread-safe for concurrent use.
type LanguageInferrer interface {
	// InferLanguage infers the ISO 639-1 code, English label and native name
	// for a language named in free text (e.g. "Polish", "polski", "pl").
	InferLanguage(ctx context.Context, name string) (*LanguageInfo, error)
}

// Provider aggregates the inference services for convenient initialization
// and lifecycle management. All returned services are safe for concurrent use.
type Provider interface {
	// Disambiguator returns the term disambiguation service.
	Disambiguator() Disambiguator

	// SynonymGenerator returns the synonym generation service.
	SynonymGenerator() SynonymGenerator

	// LanguageInferrer returns the language inference service.
	LanguageInferrer() LanguageInferrer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
