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
	"github.com/poiesic/medlex/core"
	"github.com/tmc/langchaingo/llms"
)

// LanguageInferrer implements ai.LanguageInferrer using OpenAI-compatible
// chat APIs.
type LanguageInferrer struct {
	client llms.Model
	logger *slog.Logger
}

// languageInfo is an internal type used for JSON unmarshaling.
type languageInfo struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

// newLanguageInferrer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newLanguageInferrer(config *ai.Config) (*LanguageInferrer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(config.Host, config.Model)
	if err != nil {
		return nil, err
	}

	return &LanguageInferrer{
		client: client,
		logger: slog.Default().With("component", "openai-language"),
	}, nil
}

// NewLanguageInferrer creates a new language inferrer using the provided
// configuration.
//
// Returns ai.LanguageInferrer interface to enforce abstraction.
func NewLanguageInferrer(config *ai.Config) (ai.LanguageInferrer, error) {
	return newLanguageInferrer(config)
}

// InferLanguage infers the ISO 639-1 code, English label and native name for
// a language named in free text.
func (l *LanguageInferrer) InferLanguage(ctx context.Context, name string) (*ai.LanguageInfo, error) {
	name = scrubTerm(name)

	systemPrompt := buildLanguagePrompt()
	userPrompt := fmt.Sprintf("Identify the language: %s", name)

	var result languageInfo
	if err := completeJSON(ctx, l.client, l.logger, systemPrompt, userPrompt, &result); err != nil {
		return nil, err
	}

	code := core.NormalizeLanguageCode(result.Code)
	if err := core.ValidateLanguageCode(code); err != nil {
		l.logger.Warn("model returned invalid language code", "code", result.Code, "name", name)
		return nil, fmt.Errorf("%w: invalid language code %q", core.ErrInferenceUnavailable, result.Code)
	}

	info := &ai.LanguageInfo{
		Code:       code,
		Name:       strings.TrimSpace(result.Name),
		NativeName: strings.TrimSpace(result.NativeName),
	}
	if info.Name == "" {
		info.Name = name
	}

	l.logger.Debug("inferred language", "input", name, "code", info.Code)

	return info, nil
}
