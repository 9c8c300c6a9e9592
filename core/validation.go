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

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ValidateSearchQuery validates a SearchQuery according to domain rules.
//
// Validation rules:
//   - Term must not be blank after trimming
//   - LanguageCode must be a 2-letter code
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - Id (0 is valid before the analytics store assigns a sequence ID)
func ValidateSearchQuery(query *SearchQuery) error {
	if query == nil {
		return fmt.Errorf("%w: query is nil", ErrInvalidSearchQuery)
	}

	if strings.TrimSpace(query.Term) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSearchQuery, ErrEmptyInput)
	}

	if err := ValidateLanguageCode(query.LanguageCode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSearchQuery, err)
	}

	if !query.CreatedAt.IsZero() && !IsValidTimestamp(query.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidSearchQuery, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateLanguage validates a Language according to domain rules.
//
// Validation rules:
//   - Code must be a 2-letter lowercase code
//   - Label must not be empty
//
// NOT validated:
//   - NativeName (some sources omit it; the label is used as a fallback)
func ValidateLanguage(lang *Language) error {
	if lang == nil {
		return fmt.Errorf("%w: language is nil", ErrInvalidLanguage)
	}

	if err := ValidateLanguageCode(lang.Code); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLanguage, err)
	}

	if lang.Label == "" {
		return fmt.Errorf("%w: label cannot be empty", ErrInvalidLanguage)
	}

	return nil
}

// ValidateConceptRecord validates a ConceptRecord according to domain rules.
//
// Validation rules:
//   - Id must be non-zero (vocabulary sources always assign concept IDs)
//   - Name must not be empty
//   - Standard must be a known StandardConcept value
func ValidateConceptRecord(concept *ConceptRecord) error {
	if concept == nil {
		return fmt.Errorf("%w: concept is nil", ErrInvalidConceptRecord)
	}

	if concept.Id == 0 {
		return fmt.Errorf("%w: concept id is zero", ErrInvalidConceptRecord)
	}

	if concept.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConceptRecord, ErrEmptyConceptName)
	}

	if err := ValidateStandardConcept(concept.Standard); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConceptRecord, err)
	}

	return nil
}

// ValidateStandardConcept validates that a StandardConcept has a known value.
func ValidateStandardConcept(s StandardConcept) error {
	switch s {
	case StandardConceptStandard, StandardConceptNonStandard, StandardConceptClassification:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidStandardConcept, s)
	}
}

// ValidateLanguageCode checks that a code is exactly two letters.
func ValidateLanguageCode(code string) error {
	if len(code) != 2 {
		return fmt.Errorf("%w: %q", ErrInvalidLanguageCode, code)
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("%w: %q", ErrInvalidLanguageCode, code)
		}
	}
	return nil
}

// NormalizeLanguageCode lowercases a language code for storage and lookup.
func NormalizeLanguageCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
