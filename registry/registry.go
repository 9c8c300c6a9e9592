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


package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/medlex/ai"
	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
)

// Registry manages the set of languages the system accepts searches in.
// Language codes are immutable once registered; only the label may change.
type Registry struct {
	languages storage.LanguageRepository
	inferrer  ai.LanguageInferrer
	logger    *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRegistry creates a new language registry.
func NewRegistry(languages storage.LanguageRepository, inferrer ai.LanguageInferrer, opts ...Option) (*Registry, error) {
	if languages == nil {
		return nil, ErrLanguageRepositoryRequired
	}
	if inferrer == nil {
		return nil, ErrLanguageInferrerRequired
	}

	r := &Registry{
		languages: languages,
		inferrer:  inferrer,
		logger:    slog.Default().With("component", "registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// List returns all registered languages ordered by English label.
func (r *Registry) List(ctx context.Context) ([]*core.Language, error) {
	languages, err := r.languages.ListLanguages(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(languages, func(i, j int) bool {
		return languages[i].Label < languages[j].Label
	})
	return languages, nil
}

// Get returns the language registered under code.
func (r *Registry) Get(ctx context.Context, code string) (*core.Language, error) {
	return r.languages.GetLanguageByCode(ctx, code)
}

// ResolveOrCreate registers the language named in free text (e.g. "Polish",
// "polski"). The canonical code, label and native name come from inference.
// Re-requesting a language that resolves to an already registered code is
// idempotent when the labels agree; a different label for a taken code is
// rejected with core.ErrDuplicateLanguageCode.
func (r *Registry) ResolveOrCreate(ctx context.Context, name string) (*core.Language, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, core.ErrEmptyInput
	}

	info, err := r.inferrer.InferLanguage(ctx, name)
	if err != nil {
		return nil, err
	}

	code := core.NormalizeLanguageCode(info.Code)
	if err := core.ValidateLanguageCode(code); err != nil {
		return nil, err
	}

	existing, err := r.languages.GetLanguageByCode(ctx, code)
	switch {
	case err == nil:
		return r.reconcile(existing, info)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}

	lang, err := r.languages.AddLanguage(ctx, &core.Language{
		Code:       code,
		Label:      info.Name,
		NativeName: info.NativeName,
	})
	if errors.Is(err, storage.ErrDuplicateKey) {
		// Lost a race; whoever won decides idempotence
		existing, getErr := r.languages.GetLanguageByCode(ctx, code)
		if getErr != nil {
			return nil, getErr
		}
		return r.reconcile(existing, info)
	}
	if err != nil {
		return nil, err
	}

	r.logger.Info("registered language", "code", lang.Code, "label", lang.Label)
	return lang, nil
}

// reconcile decides whether a request resolving to an occupied code is a
// repeat of the existing registration or a genuine conflict.
func (r *Registry) reconcile(existing *core.Language, info *ai.LanguageInfo) (*core.Language, error) {
	if strings.EqualFold(existing.Label, info.Name) {
		return existing, nil
	}
	return nil, fmt.Errorf("%w: %s is %s", core.ErrDuplicateLanguageCode, existing.Code, existing.Label)
}

// Relabel changes the display label of a registered language.
// The code and native name are left untouched.
func (r *Registry) Relabel(ctx context.Context, code, label string) (*core.Language, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, core.ErrEmptyInput
	}

	lang, err := r.languages.GetLanguageByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	lang.Label = label
	return r.languages.UpdateLanguage(ctx, lang)
}

// Seed registers the initial language set. Languages already present are
// left as they are, so Seed is safe to run on every start.
func (r *Registry) Seed(ctx context.Context) error {
	for i := range seedLanguages {
		lang := seedLanguages[i]
		_, err := r.languages.AddLanguage(ctx, &lang)
		if errors.Is(err, storage.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seeding language %s: %w", lang.Code, err)
		}
	}
	return nil
}
