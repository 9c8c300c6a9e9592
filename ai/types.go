package ai

// Sense is one candidate meaning of an ambiguous medical term.
type Sense struct {
	// Term is the disambiguated form of the input (e.g. "common cold").
	Term string

	// Definition is a short definition in the requested language.
	Definition string

	// Category classifies the sense. Should match one of SenseCategories,
	// but model output is accepted as-is after trimming.
	Category string

	// Usage is an example sentence using the term in this sense.
	Usage string

	// Context describes when this sense applies.
	Context string

	// Relevance is a score from 1-10 indicating how likely this sense is the
	// one the user meant. Higher scores = more likely.
	Relevance int
}

// Synonym is one synonym proposal with its relevance score.
type Synonym struct {
	Text      string
	Relevance float64 // 0-1, higher is more relevant
}

// LanguageInfo is the canonical identity of a natural language.
type LanguageInfo struct {
	Code       string // ISO 639-1, 2 letters, lowercase
	Name       string // English label, e.g. "Polish"
	NativeName string // Endonym, e.g. "Polski"
}

// SenseCategories defines the expected categories for disambiguated senses.
var SenseCategories = []string{
	"Anatomy",
	"Device",
	"Diagnosis",
	"Measurement",
	"Medication",
	"Observation",
	"Procedure",
	"Symptom",
}
