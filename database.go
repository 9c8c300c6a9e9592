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


package medlex

import (
	"context"
	"log/slog"

	"github.com/poiesic/medlex/ai"
	"github.com/poiesic/medlex/ai/openai"
	"github.com/poiesic/medlex/analytics"
	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/ingestion"
	"github.com/poiesic/medlex/pipeline"
	"github.com/poiesic/medlex/registry"
	"github.com/poiesic/medlex/resolve"
	"github.com/poiesic/medlex/storage"
	"github.com/poiesic/medlex/storage/badger"
)

// Database bundles the storage backend, its repositories and the inference
// provider, and hands out the resolution components built on them.
type Database struct {
	backend       *badger.Backend
	vocabRepo     storage.VocabularyRepository
	languageRepo  storage.LanguageRepository
	analyticsRepo storage.AnalyticsRepository
	provider      ai.Provider
	logger        *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the inference backend configuration.
// Ignored when WithProvider is also given.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built inference provider instead of constructing
// one from configuration. The database takes ownership and closes it.
func WithProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all data in memory. Intended for tests and
// ephemeral setups; filePath is ignored.
func WithInMemoryStorage() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	vocabRepo, err := badger.NewVocabularyRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	languageRepo, err := badger.NewLanguageRepository(backend)
	if err != nil {
		vocabRepo.Close()
		backend.Close()
		return nil, err
	}

	analyticsRepo, err := badger.NewAnalyticsRepository(backend)
	if err != nil {
		languageRepo.Close()
		vocabRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			analyticsRepo.Close()
			languageRepo.Close()
			vocabRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:       backend,
		vocabRepo:     vocabRepo,
		languageRepo:  languageRepo,
		analyticsRepo: analyticsRepo,
		provider:      provider,
		logger:        slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.analyticsRepo.Close(); err != nil {
		db.logger.Error("error closing analytics repository", "err", err)
		return err
	}
	if err := db.languageRepo.Close(); err != nil {
		db.logger.Error("error closing language repository", "err", err)
		return err
	}
	if err := db.vocabRepo.Close(); err != nil {
		db.logger.Error("error closing vocabulary repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) VocabularyRepository() storage.VocabularyRepository {
	return db.vocabRepo
}

func (db *Database) LanguageRepository() storage.LanguageRepository {
	return db.languageRepo
}

func (db *Database) AnalyticsRepository() storage.AnalyticsRepository {
	return db.analyticsRepo
}

func (db *Database) NewResolver(opts ...resolve.Option) (*resolve.Resolver, error) {
	return resolve.NewResolver(db.vocabRepo, opts...)
}

func (db *Database) NewRecorder(opts ...analytics.RecorderOption) (*analytics.Recorder, error) {
	return analytics.NewRecorder(db.analyticsRepo, opts...)
}

func (db *Database) NewAggregator(opts ...analytics.AggregatorOption) (*analytics.Aggregator, error) {
	return analytics.NewAggregator(db.analyticsRepo, opts...)
}

func (db *Database) NewRegistry(opts ...registry.Option) (*registry.Registry, error) {
	return registry.NewRegistry(db.languageRepo, db.provider.LanguageInferrer(), opts...)
}

func (db *Database) NewLoader(opts ...ingestion.Option) (*ingestion.Loader, error) {
	return ingestion.NewLoader(db.vocabRepo, opts...)
}

func (db *Database) NewPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	resolver, err := db.NewResolver()
	if err != nil {
		return nil, err
	}
	recorder, err := db.NewRecorder()
	if err != nil {
		return nil, err
	}
	return pipeline.NewPipeline(db.provider, resolver, recorder, opts...)
}

// LookupConcepts is a convenience wrapper for callers that treat an empty
// resolution as a failure. It resolves text against the vocabulary and
// returns core.ErrNoConceptsFound when nothing matches; the pipeline API
// itself reports an empty result as success.
func (db *Database) LookupConcepts(ctx context.Context, text, language string) ([]*resolve.ConceptMatch, error) {
	resolver, err := db.NewResolver()
	if err != nil {
		return nil, err
	}
	matches, err := resolver.Resolve(ctx, text, language)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, core.ErrNoConceptsFound
	}
	return matches, nil
}
