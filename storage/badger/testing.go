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


package badger

import "github.com/poiesic/medlex/storage"

// NewMemoryRepositories creates in-memory vocabulary, language and analytics
// repositories for testing.
// Returns vocabRepo, langRepo, analyticsRepo, backend, and error.
// Caller must close the repos and backend when done.
func NewMemoryRepositories() (storage.VocabularyRepository, storage.LanguageRepository, storage.AnalyticsRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	vocabRepo, err := NewVocabularyRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	langRepo, err := NewLanguageRepository(backend)
	if err != nil {
		vocabRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	analyticsRepo, err := NewAnalyticsRepository(backend)
	if err != nil {
		langRepo.Close()
		vocabRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	return vocabRepo, langRepo, analyticsRepo, backend, nil
}
