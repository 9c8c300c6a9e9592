package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/medlex/ai"
)

// knownLanguages backs the default InferLanguage behavior. Keys are lowercase
// English names.
var knownLanguages = map[string]ai.LanguageInfo{
	"english":    {Code: "en", Name: "English", NativeName: "English"},
	"spanish":    {Code: "es", Name: "Spanish", NativeName: "Español"},
	"french":     {Code: "fr", Name: "French", NativeName: "Français"},
	"german":     {Code: "de", Name: "German", NativeName: "Deutsch"},
	"polish":     {Code: "pl", Name: "Polish", NativeName: "Polski"},
	"portuguese": {Code: "pt", Name: "Portuguese", NativeName: "Português"},
	"italian":    {Code: "it", Name: "Italian", NativeName: "Italiano"},
	"swedish":    {Code: "sv", Name: "Swedish", NativeName: "Svenska"},
}

// MockLanguageInferrer is a test double for ai.LanguageInferrer.
// It allows custom behavior injection via function fields.
type MockLanguageInferrer struct {
	// InferLanguageFunc is called by InferLanguage if set.
	// If nil, uses a small built-in table of common languages and falls back
	// to a code derived from the first two letters of the name.
	InferLanguageFunc func(ctx context.Context, name string) (*ai.LanguageInfo, error)

	mu        sync.Mutex
	callCount int
}

// NewMockLanguageInferrer creates a mock language inferrer with default behavior.
func NewMockLanguageInferrer() *MockLanguageInferrer {
	return &MockLanguageInferrer{}
}

// InferLanguage returns canonical language information for well-known language
// names, or a deterministic fallback for anything else.
func (m *MockLanguageInferrer) InferLanguage(ctx context.Context, name string) (*ai.LanguageInfo, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.InferLanguageFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, name)
	}

	key := strings.ToLower(strings.TrimSpace(name))
	if info, ok := knownLanguages[key]; ok {
		return &info, nil
	}

	// Fallback: derive a plausible code from the name
	code := key
	if len(code) > 2 {
		code = code[:2]
	}
	return &ai.LanguageInfo{
		Code:       code,
		Name:       strings.TrimSpace(name),
		NativeName: strings.TrimSpace(name),
	}, nil
}

// CallCount returns the number of times InferLanguage was called.
func (m *MockLanguageInferrer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockLanguageInferrer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.InferLanguageFunc = nil
}
