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


package core

import "errors"

// Failure taxonomy shared by all pipeline stages.
var (
	// ErrEmptyInput indicates a blank term was rejected before any network call.
	ErrEmptyInput = errors.New("input term is empty")

	// ErrInferenceUnavailable indicates the generative-text service was
	// unreachable, timed out, or returned output that could not be repaired.
	// Callers may retry with backoff.
	ErrInferenceUnavailable = errors.New("inference service unavailable")

	// ErrNoCandidatesFound indicates disambiguation completed but produced
	// no valid candidate senses. This is a terminal state, not a transport failure.
	ErrNoCandidatesFound = errors.New("no candidate senses found")

	// ErrNoConceptsFound indicates concept resolution completed with no match
	// above the similarity threshold.
	ErrNoConceptsFound = errors.New("no concepts found")

	// ErrStoreUnavailable indicates the vocabulary store could not be read.
	// Fatal for the current request, retryable.
	ErrStoreUnavailable = errors.New("vocabulary store unavailable")

	// ErrDuplicateLanguageCode indicates a language code is already registered
	// under a different label. Recoverable: the caller may retry with
	// disambiguating input.
	ErrDuplicateLanguageCode = errors.New("language code already registered")
)

// Domain validation errors
var (
	// ErrInvalidSearchQuery indicates a SearchQuery failed validation.
	ErrInvalidSearchQuery = errors.New("invalid search query")

	// ErrInvalidLanguage indicates a Language failed validation.
	ErrInvalidLanguage = errors.New("invalid language")

	// ErrInvalidConceptRecord indicates a ConceptRecord failed validation.
	ErrInvalidConceptRecord = errors.New("invalid concept record")

	// ErrInvalidLanguageCode indicates a language code is not a 2-letter code.
	ErrInvalidLanguageCode = errors.New("language code must be two letters")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyConceptName indicates the concept Name field is empty.
	ErrEmptyConceptName = errors.New("concept name cannot be empty")

	// ErrInvalidStandardConcept indicates an invalid StandardConcept value.
	ErrInvalidStandardConcept = errors.New("invalid standard concept value")
)
