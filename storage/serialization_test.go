package storage

import (
	"testing"
	"time"

	"github.com/poiesic/medlex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalConceptRecord(t *testing.T) {
	tests := []struct {
		name   string
		record *core.ConceptRecord
	}{
		{
			name: "full record",
			record: &core.ConceptRecord{
				Id:            254761,
				Code:          "82272006",
				Name:          "Common cold",
				ClassName:     "Clinical Finding",
				Domain:        "Condition",
				Vocabulary:    "SNOMED",
				Standard:      core.StandardConceptStandard,
				InvalidReason: "",
				Synonyms:      []string{"Acute coryza", "Head cold"},
			},
		},
		{
			name: "minimal record",
			record: &core.ConceptRecord{
				Id:       1,
				Name:     "Fever",
				Standard: core.StandardConceptNonStandard,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalConceptRecord(tt.record)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalConceptRecord(data)
			require.NoError(t, err)
			assert.Equal(t, tt.record, decoded)
		})
	}
}

func TestMarshalUnmarshalLanguage(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	lang := &core.Language{
		Code:       "pl",
		Label:      "Polish",
		NativeName: "Polski",
		InsertedAt: now,
		UpdatedAt:  now,
	}

	data := MarshalLanguage(lang)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalLanguage(data)
	require.NoError(t, err)
	assert.Equal(t, lang, decoded)
}

func TestMarshalUnmarshalSearchQuery(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	query := &core.SearchQuery{
		Id:                 7,
		Term:               "przeziębienie",
		LanguageCode:       "pl",
		LedToConceptLookup: true,
		CreatedAt:          now,
	}

	data := MarshalSearchQuery(query)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalSearchQuery(data)
	require.NoError(t, err)
	assert.Equal(t, query, decoded)
}

func TestUnmarshalConceptRecord_Truncated(t *testing.T) {
	record := &core.ConceptRecord{Id: 1, Name: "Fever", Standard: core.StandardConceptStandard}
	data := MarshalConceptRecord(record)

	_, err := UnmarshalConceptRecord(data[:2])
	assert.Error(t, err)
}
