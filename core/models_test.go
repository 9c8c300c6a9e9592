package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "simple term", content: "cold|en"},
		{name: "empty string", content: ""},
		{name: "non-ascii content", content: "przeziębienie|pl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}

	if IDFromContent("cold|en") == IDFromContent("cold|es") {
		t.Error("IDFromContent() produced identical IDs for different content")
	}
}

func TestParseStandardConcept(t *testing.T) {
	tests := []struct {
		flag string
		want StandardConcept
	}{
		{flag: "S", want: StandardConceptStandard},
		{flag: "Standard", want: StandardConceptStandard},
		{flag: "C", want: StandardConceptClassification},
		{flag: "Classification", want: StandardConceptClassification},
		{flag: "", want: StandardConceptNonStandard},
		{flag: "N", want: StandardConceptNonStandard},
	}

	for _, tt := range tests {
		if got := ParseStandardConcept(tt.flag); got != tt.want {
			t.Errorf("ParseStandardConcept(%q) = %v, want %v", tt.flag, got, tt.want)
		}
	}
}

func TestStandardConceptString(t *testing.T) {
	tests := []struct {
		value StandardConcept
		want  string
	}{
		{value: StandardConceptStandard, want: "Standard"},
		{value: StandardConceptNonStandard, want: "Non-Standard"},
		{value: StandardConceptClassification, want: "Classification"},
		{value: StandardConcept(0), want: "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("StandardConcept(%d).String() = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestConceptRecordValid(t *testing.T) {
	valid := &ConceptRecord{Id: 1, Name: "Common cold", Standard: StandardConceptStandard}
	if !valid.Valid() {
		t.Error("concept without invalid reason should be valid")
	}

	superseded := &ConceptRecord{Id: 2, Name: "Old cold", Standard: StandardConceptNonStandard, InvalidReason: "D"}
	if superseded.Valid() {
		t.Error("concept with invalid reason should not be valid")
	}
}
