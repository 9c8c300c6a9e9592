package analytics

import (
	"context"
	"log/slog"

	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
)

// Recorder writes search history facts. Every method is best-effort: a
// failing store must never fail the user-facing operation, so persistence
// errors are logged and swallowed.
type Recorder struct {
	repository storage.AnalyticsRepository
	logger     *slog.Logger
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithRecorderLogger sets a custom logger.
// Default is slog.Default().
func WithRecorderLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRecorder creates a new recorder.
func NewRecorder(repository storage.AnalyticsRepository, opts ...RecorderOption) (*Recorder, error) {
	if repository == nil {
		return nil, ErrAnalyticsRepositoryRequired
	}

	r := &Recorder{
		repository: repository,
		logger:     slog.Default().With("component", "analytics-recorder"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RecordQuery records a search. Returns the generated search ID, or 0 when
// the write failed. A zero ID disables follow-up facts for this search but
// never blocks the caller.
func (r *Recorder) RecordQuery(ctx context.Context, term, language string) core.ID {
	query := &core.SearchQuery{
		Term:         term,
		LanguageCode: core.NormalizeLanguageCode(language),
	}

	added, err := r.repository.AddSearch(ctx, query)
	if err != nil {
		r.logger.Warn("failed to record search query", "term", term, "err", err)
		return 0
	}
	return added.Id
}

// RecordConceptLookup flags a search as having led to a concept lookup.
// A zero searchId is ignored.
func (r *Recorder) RecordConceptLookup(ctx context.Context, searchId core.ID) {
	if searchId == 0 {
		return
	}
	if err := r.repository.MarkConceptLookup(ctx, searchId); err != nil {
		r.logger.Warn("failed to record concept lookup", "searchId", searchId, "err", err)
	}
}

// RecordSynonymSelection records that a synonym was chosen for a search.
// A zero searchId is ignored.
func (r *Recorder) RecordSynonymSelection(ctx context.Context, searchId core.ID, synonym string) {
	if searchId == 0 || synonym == "" {
		return
	}
	selection := &core.SynonymSelection{
		SearchId: searchId,
		Synonym:  synonym,
	}
	if err := r.repository.AddSelectedSynonym(ctx, selection); err != nil {
		r.logger.Warn("failed to record synonym selection",
			"searchId", searchId, "synonym", synonym, "err", err)
	}
}

// RecordConceptView records that a concept was shown as a resolution result.
func (r *Recorder) RecordConceptView(ctx context.Context, name string) {
	if name == "" {
		return
	}
	view := &core.ConceptView{Name: name}
	if err := r.repository.AddViewedConcept(ctx, view); err != nil {
		r.logger.Warn("failed to record concept view", "name", name, "err", err)
	}
}
