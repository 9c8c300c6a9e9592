// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/poiesic/medlex/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock disambiguator, synonym generator and language inferrer
// instances.
type MockProvider struct {
	disambiguator *MockDisambiguator
	synonyms      *MockSynonymGenerator
	language      *MockLanguageInferrer
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockDisambiguator() and friends to access concrete types for test
// assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		disambiguator: NewMockDisambiguator(),
		synonyms:      NewMockSynonymGenerator(),
		language:      NewMockLanguageInferrer(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(disambiguator *MockDisambiguator, synonyms *MockSynonymGenerator, language *MockLanguageInferrer) ai.Provider {
	return &MockProvider{
		disambiguator: disambiguator,
		synonyms:      synonyms,
		language:      language,
	}
}

// Disambiguator returns the mock disambiguator.
func (p *MockProvider) Disambiguator() ai.Disambiguator {
	return p.disambiguator
}

// SynonymGenerator returns the mock synonym generator.
func (p *MockProvider) SynonymGenerator() ai.SynonymGenerator {
	return p.synonyms
}

// LanguageInferrer returns the mock language inferrer.
func (p *MockProvider) LanguageInferrer() ai.LanguageInferrer {
	return p.language
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockDisambiguator returns the underlying mock disambiguator for test
// assertions. This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockDisambiguator() *MockDisambiguator {
	return p.disambiguator
}

// GetMockSynonymGenerator returns the underlying mock synonym generator for
// test assertions.
func (p *MockProvider) GetMockSynonymGenerator() *MockSynonymGenerator {
	return p.synonyms
}

// GetMockLanguageInferrer returns the underlying mock language inferrer for
// test assertions.
func (p *MockProvider) GetMockLanguageInferrer() *MockLanguageInferrer {
	return p.language
}
