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


// Package ai provides abstractions for inference services used in Medlex.
//
// This package defines interfaces for LLM-backed operations: medical term
// disambiguation, synonym generation, and language inference. It follows the
// dependency inversion principle, allowing the pipeline and registry to
// depend on abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Disambiguator: Resolves an ambiguous term into candidate senses
//   - SynonymGenerator: Proposes scored synonyms for a chosen sense
//   - LanguageInferrer: Canonicalizes free-text language names
//   - Provider: Aggregates inference services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// This package follows a mixed constructor pattern based on use case:
//
// Public constructors (openai.NewProvider, openai.NewDisambiguator, etc.)
// return INTERFACE types to enforce abstraction and prevent accidental
// coupling to concrete implementations. This is essential for dependency
// injection and supporting multiple implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockDisambiguator and friends) return
// CONCRETE types to enable test assertions and behavior injection via the
// mock's public methods (CallCount, function fields, Reset).
//
//	mockDis := mock.NewMockDisambiguator()  // returns *mock.MockDisambiguator
//	mockDis.DisambiguateFunc = ...          // needs concrete type
//	count := mockDis.CallCount()            // test assertion
//
// # Usage Example
//
//	// Production usage with OpenAI provider
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	senses, err := provider.Disambiguator().Disambiguate(ctx, "cold", "en")
//	synonyms, err := provider.SynonymGenerator().GenerateSynonyms(ctx, "common cold", "viral infection of the nose and throat", "en")
//
//	// Testing usage with mocks
//	mockProvider := mock.NewMockProvider()
//	senses, err := mockProvider.Disambiguator().Disambiguate(ctx, "cold", "en")
package ai
