package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateSearchQuery(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		query   *SearchQuery
		wantErr error
	}{
		{
			name: "valid query",
			query: &SearchQuery{
				Id:           1,
				Term:         "cold",
				LanguageCode: "en",
				CreatedAt:    validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid query with zero ID",
			query: &SearchQuery{
				Term:         "fever",
				LanguageCode: "es",
				CreatedAt:    validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid query with zero timestamp",
			query: &SearchQuery{
				Term:         "fever",
				LanguageCode: "es",
			},
			wantErr: nil,
		},
		{
			name:    "nil query",
			query:   nil,
			wantErr: ErrInvalidSearchQuery,
		},
		{
			name: "blank term",
			query: &SearchQuery{
				Term:         "   ",
				LanguageCode: "en",
				CreatedAt:    validTime,
			},
			wantErr: ErrEmptyInput,
		},
		{
			name: "bad language code",
			query: &SearchQuery{
				Term:         "cold",
				LanguageCode: "eng",
				CreatedAt:    validTime,
			},
			wantErr: ErrInvalidLanguageCode,
		},
		{
			name: "future timestamp",
			query: &SearchQuery{
				Term:         "cold",
				LanguageCode: "en",
				CreatedAt:    futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSearchQuery(tt.query)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSearchQuery() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSearchQuery() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLanguage(t *testing.T) {
	tests := []struct {
		name    string
		lang    *Language
		wantErr error
	}{
		{
			name:    "valid language",
			lang:    &Language{Code: "pl", Label: "Polish", NativeName: "Polski"},
			wantErr: nil,
		},
		{
			name:    "valid language without native name",
			lang:    &Language{Code: "en", Label: "English"},
			wantErr: nil,
		},
		{
			name:    "nil language",
			lang:    nil,
			wantErr: ErrInvalidLanguage,
		},
		{
			name:    "three letter code",
			lang:    &Language{Code: "pol", Label: "Polish"},
			wantErr: ErrInvalidLanguageCode,
		},
		{
			name:    "numeric code",
			lang:    &Language{Code: "p1", Label: "Polish"},
			wantErr: ErrInvalidLanguageCode,
		},
		{
			name:    "empty label",
			lang:    &Language{Code: "pl"},
			wantErr: ErrInvalidLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLanguage(tt.lang)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateLanguage() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateLanguage() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateConceptRecord(t *testing.T) {
	tests := []struct {
		name    string
		concept *ConceptRecord
		wantErr error
	}{
		{
			name: "valid concept",
			concept: &ConceptRecord{
				Id:       254761,
				Name:     "Common cold",
				Standard: StandardConceptStandard,
			},
			wantErr: nil,
		},
		{
			name:    "nil concept",
			concept: nil,
			wantErr: ErrInvalidConceptRecord,
		},
		{
			name: "zero ID",
			concept: &ConceptRecord{
				Name:     "Common cold",
				Standard: StandardConceptStandard,
			},
			wantErr: ErrInvalidConceptRecord,
		},
		{
			name: "empty name",
			concept: &ConceptRecord{
				Id:       254761,
				Standard: StandardConceptStandard,
			},
			wantErr: ErrEmptyConceptName,
		},
		{
			name: "unknown standard concept value",
			concept: &ConceptRecord{
				Id:       254761,
				Name:     "Common cold",
				Standard: StandardConcept(42),
			},
			wantErr: ErrInvalidStandardConcept,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConceptRecord(tt.concept)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateConceptRecord() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateConceptRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeLanguageCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "PL", want: "pl"},
		{in: " en ", want: "en"},
		{in: "es", want: "es"},
	}

	for _, tt := range tests {
		if got := NormalizeLanguageCode(tt.in); got != tt.want {
			t.Errorf("NormalizeLanguageCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
