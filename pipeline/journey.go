package pipeline

import (
	"fmt"
	"sync"
)

// JourneyState is one state of a user journey.
type JourneyState int

const (
	// StateSearching is the initial state: a term has been submitted.
	StateSearching JourneyState = iota

	// StateDisambiguated: candidate senses were produced and one was chosen.
	StateDisambiguated

	// StateSynonymsExpanded: synonyms were produced for the chosen sense.
	StateSynonymsExpanded

	// StateConceptsResolved is a terminal state: concepts were found.
	StateConceptsResolved

	// StateNoConceptsFound is a terminal state: resolution succeeded but
	// matched nothing.
	StateNoConceptsFound

	// StateFailed is a terminal state reachable from any stage on
	// unrecoverable error.
	StateFailed
)

// String returns the state name.
func (s JourneyState) String() string {
	switch s {
	case StateSearching:
		return "Searching"
	case StateDisambiguated:
		return "Disambiguated"
	case StateSynonymsExpanded:
		return "SynonymsExpanded"
	case StateConceptsResolved:
		return "ConceptsResolved"
	case StateNoConceptsFound:
		return "NoConceptsFound"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("JourneyState(%d)", int(s))
	}
}

// Terminal reports whether the state ends the journey.
func (s JourneyState) Terminal() bool {
	switch s {
	case StateConceptsResolved, StateNoConceptsFound, StateFailed:
		return true
	default:
		return false
	}
}

// Journey tracks one user journey through the resolution pipeline.
// Intermediate context (chosen sense, chosen synonym) is caller-held; the
// journey only validates ordering. A failed journey restarts from Searching,
// never mid-pipeline.
type Journey struct {
	mu     sync.Mutex
	state  JourneyState
	reason error
}

// NewJourney creates a journey in the Searching state.
func NewJourney() *Journey {
	return &Journey{state: StateSearching}
}

// State returns the current state.
func (j *Journey) State() JourneyState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// FailureReason returns the error passed to Fail, or nil.
func (j *Journey) FailureReason() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.reason
}

// Disambiguated moves Searching → Disambiguated.
func (j *Journey) Disambiguated() error {
	return j.transition(StateSearching, StateDisambiguated)
}

// SynonymsExpanded moves Disambiguated → SynonymsExpanded.
func (j *Journey) SynonymsExpanded() error {
	return j.transition(StateDisambiguated, StateSynonymsExpanded)
}

// ConceptsResolved ends the journey after resolution. found selects between
// the ConceptsResolved and NoConceptsFound terminals.
func (j *Journey) ConceptsResolved(found bool) error {
	target := StateConceptsResolved
	if !found {
		target = StateNoConceptsFound
	}
	return j.transition(StateSynonymsExpanded, target)
}

// Fail ends the journey from any non-terminal state.
func (j *Journey) Fail(reason error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.state.Terminal() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, j.state, StateFailed)
	}
	j.state = StateFailed
	j.reason = reason
	return nil
}

// Restart returns a terminal or in-flight journey to Searching.
// This is the only way out of Failed.
func (j *Journey) Restart() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = StateSearching
	j.reason = nil
}

func (j *Journey) transition(from, to JourneyState) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.state != from {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, j.state, to)
	}
	j.state = to
	return nil
}
