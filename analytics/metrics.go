package analytics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
)

const (
	// DefaultTrendWindow is how far back the search trend reaches.
	DefaultTrendWindow = 30 * 24 * time.Hour

	trendDayFormat = "2006-01-02"
)

// Aggregator computes derived metrics over the analytics history.
// Snapshots are recomputed on demand and may trail in-flight writes.
type Aggregator struct {
	repository  storage.AnalyticsRepository
	trendWindow time.Duration
	logger      *slog.Logger
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithTrendWindow sets how far back the search trend reaches.
// Default is 30 days.
func WithTrendWindow(window time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		a.trendWindow = window
	}
}

// WithAggregatorLogger sets a custom logger.
// Default is slog.Default().
func WithAggregatorLogger(logger *slog.Logger) AggregatorOption {
	return func(a *Aggregator) {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
	}
}

// NewAggregator creates a new aggregator.
func NewAggregator(repository storage.AnalyticsRepository, opts ...AggregatorOption) (*Aggregator, error) {
	if repository == nil {
		return nil, ErrAnalyticsRepositoryRequired
	}

	a := &Aggregator{
		repository:  repository,
		trendWindow: DefaultTrendWindow,
		logger:      slog.Default().With("component", "analytics-aggregator"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// ComputeMetrics derives a metrics snapshot from the full search history.
// An empty history yields zero totals and empty maps, not an error.
func (a *Aggregator) ComputeMetrics(ctx context.Context) (*core.MetricsSnapshot, error) {
	searches, err := a.repository.AllSearches(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	selections, err := a.repository.AllSelectedSynonyms(ctx)
	if err != nil {
		return nil, err
	}
	views, err := a.repository.AllViewedConcepts(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &core.MetricsSnapshot{
		TotalSearches:        len(searches),
		LanguageDistribution: make(map[string]int),
		CommonSearchTerms:    make(map[string]int),
		MostViewedConcepts:   make(map[string]int),
		MostSelectedSynonyms: make(map[string]int),
	}

	trendStart := time.Now().UTC().Add(-a.trendWindow)
	trendCounts := make(map[string]int)
	lookups := 0

	for _, search := range searches {
		snapshot.LanguageDistribution[search.LanguageCode]++

		if search.LedToConceptLookup {
			lookups++
		}

		for _, word := range tokenizeAndFilter(search.Term) {
			snapshot.CommonSearchTerms[word]++
		}

		if !search.CreatedAt.Before(trendStart) {
			day := search.CreatedAt.UTC().Format(trendDayFormat)
			trendCounts[day]++
		}
	}

	// Trend: one point per UTC calendar day over the window, ascending
	snapshot.SearchTrend = buildTrend(trendCounts)

	if len(searches) > 0 {
		snapshot.ConceptLookupPercentage = 100 * float64(lookups) / float64(len(searches))
	}

	for _, selection := range selections {
		snapshot.MostSelectedSynonyms[selection.Synonym]++
	}
	for _, view := range views {
		snapshot.MostViewedConcepts[view.Name]++
	}

	a.logger.Debug("computed metrics snapshot",
		"searches", snapshot.TotalSearches,
		"selections", len(selections),
		"views", len(views))

	return snapshot, nil
}

// SearchPaths assembles the per-search projection: each search joined with
// the synonyms selected for it, in selection order.
func (a *Aggregator) SearchPaths(ctx context.Context) ([]*core.SearchPath, error) {
	searches, err := a.repository.AllSearches(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	paths := make([]*core.SearchPath, 0, len(searches))
	for _, search := range searches {
		selections, err := a.repository.SelectedSynonyms(ctx, search.Id)
		if err != nil {
			return nil, err
		}

		synonyms := make([]string, 0, len(selections))
		for _, selection := range selections {
			synonyms = append(synonyms, selection.Synonym)
		}

		paths = append(paths, &core.SearchPath{
			SearchId:         search.Id,
			Term:             search.Term,
			LanguageCode:     search.LanguageCode,
			Timestamp:        search.CreatedAt,
			SelectedSynonyms: synonyms,
		})
	}

	return paths, nil
}

// buildTrend converts per-day counts into an ascending series.
func buildTrend(counts map[string]int) []core.TrendPoint {
	if len(counts) == 0 {
		return []core.TrendPoint{}
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	// Days are YYYY-MM-DD so lexicographic order is chronological
	sort.Strings(days)

	trend := make([]core.TrendPoint, 0, len(days))
	for _, day := range days {
		trend = append(trend, core.TrendPoint{Day: day, Count: counts[day]})
	}
	return trend
}
