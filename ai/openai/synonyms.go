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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/medlex/ai"
	"github.com/tmc/langchaingo/llms"
)

// SynonymGenerator implements ai.SynonymGenerator using OpenAI-compatible
// chat APIs.
type SynonymGenerator struct {
	client      llms.Model
	maxSynonyms int
	logger      *slog.Logger
}

// synonymResult is an internal type used for JSON unmarshaling.
type synonymResult struct {
	Synonym   string  `json:"synonym"`
	Relevance float64 `json:"relevance"`
}

// synonymAnalysis is the wrapper structure for the LLM's JSON response.
type synonymAnalysis struct {
	Synonyms []synonymResult `json:"synonyms"`
}

// newSynonymGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSynonymGenerator(config *ai.Config) (*SynonymGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(config.Host, config.Model)
	if err != nil {
		return nil, err
	}

	return &SynonymGenerator{
		client:      client,
		maxSynonyms: config.MaxSynonyms,
		logger:      slog.Default().With("component", "openai-synonyms"),
	}, nil
}

// NewSynonymGenerator creates a new synonym generator using the provided
// configuration.
//
// Returns ai.SynonymGenerator interface to enforce abstraction.
func NewSynonymGenerator(config *ai.Config) (ai.SynonymGenerator, error) {
	return newSynonymGenerator(config)
}

// GenerateSynonyms returns scored synonyms for term in the given language,
// guided by the usage context of the chosen sense.
func (g *SynonymGenerator) GenerateSynonyms(ctx context.Context, term, context_, language string) ([]ai.Synonym, error) {
	term = scrubTerm(term)

	systemPrompt := buildSynonymPrompt(language, g.maxSynonyms)
	userPrompt := fmt.Sprintf("Generate synonyms for the medical term '%s'.", term)
	if context_ = strings.TrimSpace(context_); context_ != "" {
		userPrompt = fmt.Sprintf("%s The intended meaning: %s", userPrompt, context_)
	}

	var result synonymAnalysis
	if err := completeJSON(ctx, g.client, g.logger, systemPrompt, userPrompt, &result); err != nil {
		return nil, err
	}

	// Discard blank synonyms; clamp relevance to 0-1
	synonyms := make([]ai.Synonym, 0, len(result.Synonyms))
	for _, s := range result.Synonyms {
		text := strings.TrimSpace(s.Synonym)
		if text == "" {
			continue
		}
		if s.Relevance < 0 {
			s.Relevance = 0
		}
		if s.Relevance > 1 {
			s.Relevance = 1
		}
		synonyms = append(synonyms, ai.Synonym{
			Text:      text,
			Relevance: s.Relevance,
		})
		if len(synonyms) >= g.maxSynonyms {
			break
		}
	}

	g.logger.Debug("generated synonyms",
		"term", term,
		"language", language,
		"count", len(synonyms))

	return synonyms, nil
}
