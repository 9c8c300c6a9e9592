package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/medlex/ai"
	"github.com/poiesic/medlex/analytics"
	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/resolve"
)

// Pipeline orchestrates one search journey: disambiguation, synonym
// expansion, and concept resolution, with best-effort analytics recording.
// All stages are stateless and safe for concurrent use across sessions.
type Pipeline struct {
	disambiguator ai.Disambiguator
	synonyms      ai.SynonymGenerator
	resolver      *resolve.Resolver
	recorder      *analytics.Recorder
	memo          *memoCache
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// WithMemoWindow sets how long inference results are memoized.
// Default is 5 minutes.
func WithMemoWindow(window time.Duration) Option {
	return func(p *Pipeline) {
		p.memo = newMemoCache(window)
	}
}

// NewPipeline creates a new pipeline.
func NewPipeline(provider ai.Provider, resolver *resolve.Resolver, recorder *analytics.Recorder, opts ...Option) (*Pipeline, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if recorder == nil {
		return nil, ErrRecorderRequired
	}

	p := &Pipeline{
		disambiguator: provider.Disambiguator(),
		synonyms:      provider.SynonymGenerator(),
		resolver:      resolver,
		recorder:      recorder,
		memo:          newMemoCache(DefaultMemoWindow),
		logger:        slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Search disambiguates a raw term. It rejects blank input before any network
// call, memoizes per (term, language) so concurrent identical searches share
// one inference, and records the query best-effort. The returned search ID is
// 0 when recording failed; follow-up facts for this journey are then dropped.
//
// An empty candidate list after filtering is reported as
// core.ErrNoCandidatesFound, distinct from core.ErrInferenceUnavailable.
func (p *Pipeline) Search(ctx context.Context, term, language string) (core.ID, []core.DisambiguationCandidate, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return 0, nil, stageErr(StageDisambiguation, core.ErrEmptyInput)
	}
	language = core.NormalizeLanguageCode(language)

	key := memoKey("disambiguate", term, language)
	value, err := p.memo.do(key, func() (any, error) {
		senses, err := p.disambiguator.Disambiguate(ctx, term, language)
		if err != nil {
			return nil, err
		}
		return candidatesFromSenses(senses), nil
	})
	if err != nil {
		return 0, nil, stageErr(StageDisambiguation, err)
	}
	candidates := value.([]core.DisambiguationCandidate)
	p.logger.Debug("disambiguated term", "term", term, "language", language, "candidates", len(candidates))

	// Record after the result is in hand; never on a cancelled context
	var searchId core.ID
	if ctx.Err() == nil {
		searchId = p.recorder.RecordQuery(ctx, term, language)
	}

	if len(candidates) == 0 {
		return searchId, nil, stageErr(StageDisambiguation, core.ErrNoCandidatesFound)
	}
	return searchId, candidates, nil
}

// ExpandSynonyms proposes synonyms for a chosen sense. Memoized per
// (term, context, language) so repeated calls within the window cannot
// produce divergent synonym sets mid-journey. The seed term is always the
// first element of the result.
func (p *Pipeline) ExpandSynonyms(ctx context.Context, term, context_, language string) ([]core.SynonymCandidate, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, stageErr(StageSynonymExpansion, core.ErrEmptyInput)
	}
	language = core.NormalizeLanguageCode(language)

	key := memoKey("synonyms", term, context_, language)
	value, err := p.memo.do(key, func() (any, error) {
		proposals, err := p.synonyms.GenerateSynonyms(ctx, term, context_, language)
		if err != nil {
			return nil, err
		}
		return candidatesFromSynonyms(term, language, proposals), nil
	})
	if err != nil {
		return nil, stageErr(StageSynonymExpansion, err)
	}
	return value.([]core.SynonymCandidate), nil
}

// SelectSynonym records that a synonym was chosen for a search. Best-effort:
// a zero search ID or a cancelled context drops the fact silently.
func (p *Pipeline) SelectSynonym(ctx context.Context, searchId core.ID, synonym string) {
	if ctx.Err() != nil {
		return
	}
	p.recorder.RecordSynonymSelection(ctx, searchId, synonym)
}

// ResolveConcepts matches text against the vocabulary. An empty result is a
// valid terminal state, not an error. On success the search is marked as
// having led to a concept lookup and every surfaced concept is recorded as
// viewed, both best-effort.
func (p *Pipeline) ResolveConcepts(ctx context.Context, searchId core.ID, text, language string) ([]*resolve.ConceptMatch, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, stageErr(StageConceptResolve, core.ErrEmptyInput)
	}
	language = core.NormalizeLanguageCode(language)

	matches, err := p.resolver.Resolve(ctx, text, language)
	if err != nil {
		return nil, stageErr(StageConceptResolve, err)
	}
	p.logger.Debug("resolved concepts", "text", text, "matches", len(matches))

	if ctx.Err() == nil {
		p.recorder.RecordConceptLookup(ctx, searchId)
		for _, match := range matches {
			p.recorder.RecordConceptView(ctx, match.Record.Name)
		}
	}

	return matches, nil
}

// candidatesFromSenses converts, dedupes and orders inference output.
// No two candidates share a (term, category) pair; ordering is relevance
// descending, then shorter definition, then term, so memoized results are
// reproducible.
func candidatesFromSenses(senses []ai.Sense) []core.DisambiguationCandidate {
	seen := make(map[string]bool, len(senses))
	candidates := make([]core.DisambiguationCandidate, 0, len(senses))
	for _, s := range senses {
		dedupKey := strings.ToLower(s.Term) + "\x00" + strings.ToLower(s.Category)
		if seen[dedupKey] {
			continue
		}
		seen[dedupKey] = true
		candidates = append(candidates, core.DisambiguationCandidate{
			Term:       s.Term,
			Definition: s.Definition,
			Category:   s.Category,
			Usage:      s.Usage,
			Context:    s.Context,
			Relevance:  s.Relevance,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Relevance != b.Relevance {
			return a.Relevance > b.Relevance
		}
		if len(a.Definition) != len(b.Definition) {
			return len(a.Definition) < len(b.Definition)
		}
		return a.Term < b.Term
	})
	return candidates
}

// candidatesFromSynonyms builds the synonym list: seed term first, then
// proposals by relevance descending, case-insensitively deduplicated.
func candidatesFromSynonyms(term, language string, proposals []ai.Synonym) []core.SynonymCandidate {
	candidates := make([]core.SynonymCandidate, 0, len(proposals)+1)
	candidates = append(candidates, core.SynonymCandidate{
		Text:           term,
		SourceLanguage: language,
		Relevance:      1.0,
	})
	seen := map[string]bool{strings.ToLower(term): true}

	sorted := make([]ai.Synonym, len(proposals))
	copy(sorted, proposals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Relevance != sorted[j].Relevance {
			return sorted[i].Relevance > sorted[j].Relevance
		}
		return sorted[i].Text < sorted[j].Text
	})

	for _, s := range sorted {
		lower := strings.ToLower(s.Text)
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true
		candidates = append(candidates, core.SynonymCandidate{
			Text:           s.Text,
			SourceLanguage: language,
			Relevance:      s.Relevance,
		})
	}
	return candidates
}
