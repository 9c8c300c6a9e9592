// Package mock provides test double implementations of inference service
// interfaces.
//
// This package contains mock implementations of ai.Disambiguator,
// ai.SynonymGenerator, ai.LanguageInferrer, and ai.Provider for use in unit
// tests. The mocks allow tests to run without external inference services and
// enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	senses, err := mockProvider.Disambiguator().Disambiguate(ctx, "cold", "en")
//
//	// Custom behavior injection
//	mockDis := mock.NewMockDisambiguator()
//	mockDis.DisambiguateFunc = func(ctx context.Context, term, language string) ([]ai.Sense, error) {
//	    return nil, core.ErrInferenceUnavailable
//	}
//
//	// Check call counts
//	count := mockDis.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockDisambiguator: Returns two deterministic senses derived from the term
//   - MockSynonymGenerator: Returns two scored variants of the term
//   - MockLanguageInferrer: Resolves common language names from a built-in table
//   - MockProvider: Aggregates the three mocks above
//
// All mocks are safe for concurrent use, so tests can exercise memoization
// and single-flight behavior against them.
package mock
