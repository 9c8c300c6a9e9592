package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/medlex/ai"
)

// MockSynonymGenerator is a test double for ai.SynonymGenerator.
// It allows custom behavior injection via function fields.
type MockSynonymGenerator struct {
	// GenerateSynonymsFunc is called by GenerateSynonyms if set.
	// If nil, uses a deterministic default based on the input term.
	GenerateSynonymsFunc func(ctx context.Context, term, context_, language string) ([]ai.Synonym, error)

	mu        sync.Mutex
	callCount int
}

// NewMockSynonymGenerator creates a mock synonym generator with default behavior.
func NewMockSynonymGenerator() *MockSynonymGenerator {
	return &MockSynonymGenerator{}
}

// GenerateSynonyms returns deterministic mock synonyms for the term.
// Default behavior: two scored variants derived from the input term. The
// input term itself is deliberately absent so tests can verify seed-term
// handling in callers.
func (m *MockSynonymGenerator) GenerateSynonyms(ctx context.Context, term, context_, language string) ([]ai.Synonym, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.GenerateSynonymsFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, term, context_, language)
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []ai.Synonym{}, nil
	}

	return []ai.Synonym{
		{Text: "acute " + term, Relevance: 0.9},
		{Text: term + " disorder", Relevance: 0.6},
	}, nil
}

// CallCount returns the number of times GenerateSynonyms was called.
func (m *MockSynonymGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSynonymGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.GenerateSynonymsFunc = nil
}
