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

// Disambiguator implements ai.Disambiguator using OpenAI-compatible chat APIs.
type Disambiguator struct {
	client    llms.Model
	maxSenses int
	logger    *slog.Logger
}

// sense is an internal type used for JSON unmarshaling.
// It matches the structure expected by the LLM.
type sense struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Category   string `json:"category"`
	Usage      string `json:"usage"`
	Context    string `json:"context"`
	Relevance  int    `json:"relevance"`
}

// senseAnalysis is the wrapper structure for the LLM's JSON response.
type senseAnalysis struct {
	Senses []sense `json:"senses"`
}

// newDisambiguator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newDisambiguator(config *ai.Config) (*Disambiguator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(config.Host, config.Model)
	if err != nil {
		return nil, err
	}

	return &Disambiguator{
		client:    client,
		maxSenses: config.MaxSenses,
		logger:    slog.Default().With("component", "openai-disambiguator"),
	}, nil
}

// NewDisambiguator creates a new disambiguator using the provided configuration.
//
// Returns ai.Disambiguator interface to enforce abstraction.
func NewDisambiguator(config *ai.Config) (ai.Disambiguator, error) {
	return newDisambiguator(config)
}

// Disambiguate returns the candidate senses of a medical term in the given
// language. Malformed candidates are discarded rather than failing the batch.
func (d *Disambiguator) Disambiguate(ctx context.Context, term, language string) ([]ai.Sense, error) {
	term = scrubTerm(term)

	systemPrompt := buildDisambiguationPrompt(language, d.maxSenses)
	userPrompt := fmt.Sprintf("Disambiguate the following medical term: %s", term)

	var result senseAnalysis
	if err := completeJSON(ctx, d.client, d.logger, systemPrompt, userPrompt, &result); err != nil {
		return nil, err
	}

	// Discard candidates missing a term or definition; clamp relevance to 1-10
	senses := make([]ai.Sense, 0, len(result.Senses))
	for _, s := range result.Senses {
		s.Term = strings.TrimSpace(s.Term)
		s.Definition = strings.TrimSpace(s.Definition)
		if s.Term == "" || s.Definition == "" {
			d.logger.Debug("discarding malformed sense", "sense", s)
			continue
		}
		if s.Relevance < 1 {
			s.Relevance = 1
		}
		if s.Relevance > 10 {
			s.Relevance = 10
		}
		senses = append(senses, ai.Sense{
			Term:       s.Term,
			Definition: s.Definition,
			Category:   strings.TrimSpace(s.Category),
			Usage:      strings.TrimSpace(s.Usage),
			Context:    strings.TrimSpace(s.Context),
			Relevance:  s.Relevance,
		})
		if len(senses) >= d.maxSenses {
			break
		}
	}

	d.logger.Debug("disambiguated term",
		"term", term,
		"language", language,
		"total", len(result.Senses),
		"kept", len(senses))

	return senses, nil
}
