package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/medlex/ai"
)

// MockDisambiguator is a test double for ai.Disambiguator.
// It allows custom behavior injection via function fields.
type MockDisambiguator struct {
	// DisambiguateFunc is called by Disambiguate if set.
	// If nil, uses a deterministic default based on the input term.
	DisambiguateFunc func(ctx context.Context, term, language string) ([]ai.Sense, error)

	mu        sync.Mutex
	callCount int
}

// NewMockDisambiguator creates a mock disambiguator with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockDisambiguator().
func NewMockDisambiguator() *MockDisambiguator {
	return &MockDisambiguator{}
}

// Disambiguate returns deterministic mock senses for the term.
// Default behavior: two senses, a Diagnosis and a Symptom, derived from the
// input term.
func (m *MockDisambiguator) Disambiguate(ctx context.Context, term, language string) ([]ai.Sense, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.DisambiguateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, term, language)
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []ai.Sense{}, nil
	}

	return []ai.Sense{
		{
			Term:       term,
			Definition: "A condition known as " + term + ".",
			Category:   "Diagnosis",
			Usage:      "The patient was diagnosed with " + term + ".",
			Context:    "As an illness.",
			Relevance:  9,
		},
		{
			Term:       term + " sensation",
			Definition: "A reported feeling of " + term + ".",
			Category:   "Symptom",
			Usage:      "The patient reported " + term + ".",
			Context:    "As a subjective symptom.",
			Relevance:  5,
		},
	}, nil
}

// CallCount returns the number of times Disambiguate was called.
func (m *MockDisambiguator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockDisambiguator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.DisambiguateFunc = nil
}
