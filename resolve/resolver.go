package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
	"github.com/xrash/smetrics"
)

const (
	// DefaultThreshold is the minimum similarity score for a candidate to
	// count as a match.
	DefaultThreshold = 0.65

	// DefaultMaxHits caps the number of matches returned when no explicit
	// limit is configured.
	DefaultMaxHits = 20

	jaroWinklerBoost      = 0.7
	jaroWinklerPrefixSize = 4
)

// ConceptMatch is one scored hit against the vocabulary.
type ConceptMatch struct {
	// Record is the matched concept.
	Record *core.ConceptRecord

	// Score is the similarity score in [0,1]. Exact matches score 1.0.
	Score float64

	// ExactMatch reports whether the normalized query equaled the concept
	// name or one of its synonyms.
	ExactMatch bool

	// MappedFrom is set when this match was reached by traversing a
	// "Maps to" edge from a non-standard hit. The mapped target carries the
	// score of its source.
	MappedFrom *core.ConceptRecord
}

// Resolver matches free-text terms against the stored concept vocabulary.
type Resolver struct {
	vocabulary storage.VocabularyRepository
	threshold  float64
	maxHits    int
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithThreshold sets the minimum similarity score for matches.
func WithThreshold(threshold float64) Option {
	return func(r *Resolver) error {
		r.threshold = threshold
		return nil
	}
}

// WithMaxHits sets the maximum number of matches returned.
func WithMaxHits(maxHits int) Option {
	return func(r *Resolver) error {
		r.maxHits = maxHits
		return nil
	}
}

// NewResolver creates a new resolver.
func NewResolver(vocabulary storage.VocabularyRepository, opts ...Option) (*Resolver, error) {
	if vocabulary == nil {
		return nil, ErrVocabularyRepositoryRequired
	}

	r := &Resolver{
		vocabulary: vocabulary,
		threshold:  DefaultThreshold,
		maxHits:    DefaultMaxHits,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Resolve matches text against the vocabulary.
// Returns ranked matches; an empty result is success, not an error.
func (r *Resolver) Resolve(ctx context.Context, text, language string) ([]*ConceptMatch, error) {
	return r.ResolveWithMonitor(ctx, text, language, nil)
}

// ResolveWithMonitor matches text against the vocabulary with monitoring.
// The monitor receives callbacks at each stage of the resolution process.
//
// Ranking: exact Standard matches first, then Standard by score descending,
// then non-Standard by score descending. At equal rank, records without an
// InvalidReason come first; the final tie-break is ascending concept ID.
func (r *Resolver) ResolveWithMonitor(ctx context.Context, text, language string, monitor ResolveMonitor) ([]*ConceptMatch, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(text)

	query := normalizeTerm(text)
	monitor.Normalized(query)
	if query == "" {
		return []*ConceptMatch{}, nil
	}

	// 1. Scan the vocabulary and score every record
	byID := make(map[core.ID]*ConceptMatch)
	err := r.vocabulary.ScanConcepts(ctx, func(record *core.ConceptRecord) bool {
		score, exact := r.scoreRecord(record, query)
		if score < r.threshold {
			return true
		}

		monitor.CandidateHit(record, score)
		byID[record.Id] = &ConceptMatch{
			Record:     record,
			Score:      score,
			ExactMatch: exact,
		}
		return true
	})
	if err != nil {
		r.logger.Error("error scanning vocabulary", "query", query, "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrStoreUnavailable, err)
	}

	// 2. Traverse "Maps to" edges for every non-standard hit, surfacing the
	// standard targets at the same score
	for _, match := range sortedMatches(byID) {
		if match.Record.Standard == core.StandardConceptStandard {
			continue
		}

		targets, err := r.vocabulary.GetMappedConcepts(ctx, match.Record.Id)
		if err != nil {
			r.logger.Error("error traversing mappings", "conceptID", match.Record.Id, "err", err)
			return nil, fmt.Errorf("%w: %w", core.ErrStoreUnavailable, err)
		}
		if len(targets) == 0 {
			continue
		}
		monitor.MappedTo(match.Record, targets)

		for _, target := range targets {
			existing, ok := byID[target.Id]
			if ok {
				// Direct hit wins; keep the better score
				if match.Score > existing.Score {
					existing.Score = match.Score
				}
				continue
			}
			byID[target.Id] = &ConceptMatch{
				Record:     target,
				Score:      match.Score,
				ExactMatch: match.ExactMatch,
				MappedFrom: match.Record,
			}
		}
	}

	// 3. Rank
	matches := sortedMatches(byID)
	rankMatches(matches)

	if len(matches) > r.maxHits {
		matches = matches[:r.maxHits]
	}
	monitor.Finish(matches)

	r.logger.Debug("resolved concepts",
		"query", query,
		"language", language,
		"matches", len(matches))

	return matches, nil
}

// scoreRecord scores a record against the normalized query as the best
// Jaro-Winkler similarity over the concept name and its synonyms.
func (r *Resolver) scoreRecord(record *core.ConceptRecord, query string) (float64, bool) {
	name := normalizeTerm(record.Name)
	if name == query {
		return 1.0, true
	}

	best := smetrics.JaroWinkler(name, query, jaroWinklerBoost, jaroWinklerPrefixSize)
	for _, synonym := range record.Synonyms {
		s := normalizeTerm(synonym)
		if s == query {
			return 1.0, true
		}
		if score := smetrics.JaroWinkler(s, query, jaroWinklerBoost, jaroWinklerPrefixSize); score > best {
			best = score
		}
	}
	return best, false
}

// sortedMatches returns the map values in ascending ID order so that map
// iteration never affects result ordering.
func sortedMatches(byID map[core.ID]*ConceptMatch) []*ConceptMatch {
	matches := make([]*ConceptMatch, 0, len(byID))
	for _, m := range byID {
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Record.Id < matches[j].Record.Id
	})
	return matches
}

// rankMatches orders matches for presentation.
func rankMatches(matches []*ConceptMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]

		ra, rb := rankClass(a), rankClass(b)
		if ra != rb {
			return ra < rb
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}

		// Prefer records that haven't been invalidated
		aValid := a.Record.InvalidReason == ""
		bValid := b.Record.InvalidReason == ""
		if aValid != bValid {
			return aValid
		}

		return a.Record.Id < b.Record.Id
	})
}

// rankClass buckets a match: exact standard hits, standard hits, everything
// else.
func rankClass(m *ConceptMatch) int {
	standard := m.Record.Standard == core.StandardConceptStandard
	switch {
	case standard && m.ExactMatch:
		return 0
	case standard:
		return 1
	default:
		return 2
	}
}
