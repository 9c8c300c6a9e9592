package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// StandardConcept classifies a vocabulary entry's standardization status.
type StandardConcept int

const (
	// StandardConceptStandard is the canonical representation for a meaning.
	StandardConceptStandard StandardConcept = iota + 1
	// StandardConceptNonStandard must be mapped to a standard entry before use.
	StandardConceptNonStandard
	// StandardConceptClassification groups standard concepts hierarchically.
	StandardConceptClassification
)

// String returns the display form used by vocabulary sources.
func (s StandardConcept) String() string {
	switch s {
	case StandardConceptStandard:
		return "Standard"
	case StandardConceptNonStandard:
		return "Non-Standard"
	case StandardConceptClassification:
		return "Classification"
	default:
		return "Unknown"
	}
}

// ParseStandardConcept maps a vocabulary source flag to a StandardConcept.
// OMOP-style exports use "S" for standard, "C" for classification, and an
// empty flag for non-standard entries.
func ParseStandardConcept(flag string) StandardConcept {
	switch flag {
	case "S", "Standard":
		return StandardConceptStandard
	case "C", "Classification":
		return StandardConceptClassification
	default:
		return StandardConceptNonStandard
	}
}

// ConceptRecord is a vocabulary catalog entry. Records are read-only from
// the resolution pipeline's perspective; only the ingestion loader writes them.
type ConceptRecord struct {
	Id            ID     // Unique within a vocabulary source
	Code          string // Source-assigned concept code
	Name          string
	ClassName     string
	Domain        string
	Vocabulary    string
	Standard      StandardConcept
	InvalidReason string   // Empty for valid concepts; non-empty entries are superseded
	Synonyms      []string // Lexical variants from the vocabulary source
}

// Valid reports whether the concept carries no invalidation marker.
func (c *ConceptRecord) Valid() bool {
	return c.InvalidReason == ""
}

// ConceptMapping is a "Maps to" edge from a non-standard concept to its
// standard target.
type ConceptMapping struct {
	SourceId ID
	TargetId ID
}

// Language is a registry entry created on user request.
// Code is a 2-letter ISO 639-1 code, unique and immutable once created;
// only the label may change afterwards.
type Language struct {
	Code       string
	Label      string
	NativeName string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// SearchQuery records one user search. Immutable apart from the
// LedToConceptLookup flag, which flips when the journey reaches concept
// resolution. Id is the join key for all downstream analytics facts.
type SearchQuery struct {
	Id                 ID
	Term               string
	LanguageCode       string
	LedToConceptLookup bool
	CreatedAt          time.Time
}

// DisambiguationCandidate is one possible sense of an ambiguous term.
// Candidates live only for the session unless the user selects one.
type DisambiguationCandidate struct {
	Term       string
	Definition string
	Category   string // e.g. Symptom, Diagnosis, Procedure
	Usage      string
	Context    string
	Relevance  int // 1-10, higher is more relevant
}

// SynonymCandidate is one synonym proposed for a selected sense.
type SynonymCandidate struct {
	Text           string
	SourceLanguage string
	Relevance      float64 // 0-1, higher is more relevant
}

/// SynonymSelection is an append-only analytics fact: the user picked a
// synonym while on the journey identified by SearchId.
type SynonymSelection struct {
	SearchId   ID
	Synonym    string
	SelectedAt time.Time
}

/// ConceptView is an append-only analytics fact: a concept was shown to the
// user as a resolution result.
type ConceptView struct {
	Name     string
	ViewedAt time.Time
}

/// SearchPath is the analytics projection of one journey: the search plus the
// ordered synonyms selected along the way.
type SearchPath struct {
	SearchId         ID
	Term             string
	LanguageCode     string
	Timestamp        time.Time
	SelectedSynonyms []string
}

// TrendPoint is one day's search count in a metrics trend.
type TrendPoint struct {
	Day   string // YYYY-MM-DD, UTC
	Count int
}

// MetricsSnapshot is a derived, read-only rollup over the analytics history.
// It is recomputed on demand and is never the system of record.
type MetricsSnapshot struct {
	TotalSearches           int
	LanguageDistribution    map[string]int
	SearchTrend             []TrendPoint
	CommonSearchTerms       map[string]int
	ConceptLookupPercentage float64
	MostViewedConcepts      map[string]int
	MostSelectedSynonyms    map[string]int
}
