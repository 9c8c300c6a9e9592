package resolve

import (
	"context"
	"log/slog"
	"testing"

	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
	"github.com/poiesic/medlex/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVocabulary(t *testing.T) storage.VocabularyRepository {
	t.Helper()

	vocabRepo, langRepo, analyticsRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		analyticsRepo.Close()
		langRepo.Close()
		vocabRepo.Close()
		backend.Close()
	})
	return vocabRepo
}

func seedColdVocabulary(t *testing.T, vocab storage.VocabularyRepository) {
	t.Helper()
	ctx := context.Background()

	concepts := []*core.ConceptRecord{
		{
			Id: 254761, Code: "82272006", Name: "Common cold",
			ClassName: "Clinical Finding", Domain: "Condition", Vocabulary: "SNOMED",
			Standard: core.StandardConceptStandard,
			Synonyms: []string{"Acute coryza", "Head cold"},
		},
		{
			Id: 444814, Code: "C0009443", Name: "Cold",
			ClassName: "Clinical Finding", Domain: "Condition", Vocabulary: "UMLS",
			Standard: core.StandardConceptNonStandard,
		},
		{
			Id: 4224149, Code: "36955009", Name: "Cold sensation",
			ClassName: "Clinical Finding", Domain: "Observation", Vocabulary: "SNOMED",
			Standard: core.StandardConceptStandard,
		},
		{
			Id: 9999, Code: "D003139", Name: "Common Cold",
			ClassName: "Disease", Domain: "Condition", Vocabulary: "MeSH",
			Standard: core.StandardConceptNonStandard, InvalidReason: "D",
		},
	}
	require.NoError(t, vocab.AddConcepts(ctx, concepts...))

	require.NoError(t, vocab.AddMappings(ctx, &core.ConceptMapping{SourceId: 444814, TargetId: 254761}))
}

func TestNewResolver(t *testing.T) {
	vocab := newTestVocabulary(t)

	t.Run("valid configuration", func(t *testing.T) {
		resolver, err := NewResolver(vocab)
		require.NoError(t, err)
		assert.NotNil(t, resolver)
	})

	t.Run("with custom logger", func(t *testing.T) {
		resolver, err := NewResolver(vocab, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, resolver)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		resolver, err := NewResolver(vocab, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, resolver)
	})

	t.Run("nil vocabulary repository", func(t *testing.T) {
		_, err := NewResolver(nil)
		assert.Equal(t, ErrVocabularyRepositoryRequired, err)
	})
}

func TestResolve_EmptyVocabulary(t *testing.T) {
	vocab := newTestVocabulary(t)
	resolver, err := NewResolver(vocab)
	require.NoError(t, err)

	matches, err := resolver.Resolve(context.Background(), "cold", "en")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestResolve_ColdScenario(t *testing.T) {
	vocab := newTestVocabulary(t)
	seedColdVocabulary(t, vocab)

	resolver, err := NewResolver(vocab)
	require.NoError(t, err)

	matches, err := resolver.Resolve(context.Background(), "common cold", "en")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	// Top hit must be the standard SNOMED condition, not the invalidated
	// MeSH record or the non-standard UMLS record
	top := matches[0]
	assert.Equal(t, core.ID(254761), top.Record.Id)
	assert.Equal(t, core.StandardConceptStandard, top.Record.Standard)
	assert.Equal(t, "Condition", top.Record.Domain)
	assert.True(t, top.ExactMatch)
	assert.Equal(t, 1.0, top.Score)
}

func TestResolve_SynonymExactMatch(t *testing.T) {
	vocab := newTestVocabulary(t)
	seedColdVocabulary(t, vocab)

	resolver, err := NewResolver(vocab)
	require.NoError(t, err)

	matches, err := resolver.Resolve(context.Background(), "head cold", "en")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	assert.Equal(t, core.ID(254761), matches[0].Record.Id)
	assert.True(t, matches[0].ExactMatch)
}

func TestResolve_MapsToTraversal(t *testing.T) {
	vocab := newTestVocabulary(t)
	ctx := context.Background()

	// Only a non-standard record matches the query directly; its standard
	// target has a dissimilar name
	require.NoError(t, vocab.AddConcepts(ctx,
		&core.ConceptRecord{
			Id: 100, Name: "Grippe", Vocabulary: "Read",
			Standard: core.StandardConceptNonStandard,
		},
		&core.ConceptRecord{
			Id: 200, Name: "Influenza", Vocabulary: "SNOMED",
			Standard: core.StandardConceptStandard,
		},
	))
	require.NoError(t, vocab.AddMappings(ctx, &core.ConceptMapping{SourceId: 100, TargetId: 200}))

	resolver, err := NewResolver(vocab)
	require.NoError(t, err)

	matches, err := resolver.Resolve(ctx, "grippe", "en")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// The mapped standard target outranks its non-standard source and
	// carries the source's score
	assert.Equal(t, core.ID(200), matches[0].Record.Id)
	require.NotNil(t, matches[0].MappedFrom)
	assert.Equal(t, core.ID(100), matches[0].MappedFrom.Id)
	assert.Equal(t, matches[1].Score, matches[0].Score)

	assert.Equal(t, core.ID(100), matches[1].Record.Id)
	assert.Nil(t, matches[1].MappedFrom)
}

func TestResolve_InvalidRecordNeverSoleTopHit(t *testing.T) {
	vocab := newTestVocabulary(t)
	ctx := context.Background()

	// An invalidated standard record and an equally good valid one
	require.NoError(t, vocab.AddConcepts(ctx,
		&core.ConceptRecord{
			Id: 2, Name: "Fever", Vocabulary: "SNOMED",
			Standard: core.StandardConceptStandard, InvalidReason: "U",
		},
		&core.ConceptRecord{
			Id: 1, Name: "Fever", Vocabulary: "SNOMED",
			Standard: core.StandardConceptStandard,
		},
	))

	resolver, err := NewResolver(vocab)
	require.NoError(t, err)

	matches, err := resolver.Resolve(ctx, "fever", "en")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Empty(t, matches[0].Record.InvalidReason)
	assert.Equal(t, "U", matches[1].Record.InvalidReason)
}

func TestResolve_NoMatchIsSuccess(t *testing.T) {
	vocab := newTestVocabulary(t)
	seedColdVocabulary(t, vocab)

	resolver, err := NewResolver(vocab)
	require.NoError(t, err)

	matches, err := resolver.Resolve(context.Background(), "xylophone", "en")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestResolve_DiacriticInsensitive(t *testing.T) {
	vocab := newTestVocabulary(t)
	ctx := context.Background()

	require.NoError(t, vocab.AddConcepts(ctx, &core.ConceptRecord{
		Id: 1, Name: "Przeziębienie", Vocabulary: "Custom",
		Standard: core.StandardConceptStandard,
	}))

	resolver, err := NewResolver(vocab)
	require.NoError(t, err)

	matches, err := resolver.Resolve(ctx, "przeziebienie", "pl")
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.True(t, matches[0].ExactMatch)
}

func TestResolve_MaxHits(t *testing.T) {
	vocab := newTestVocabulary(t)
	ctx := context.Background()

	require.NoError(t, vocab.AddConcepts(ctx,
		&core.ConceptRecord{Id: 1, Name: "Cough", Standard: core.StandardConceptStandard},
		&core.ConceptRecord{Id: 2, Name: "Coughing", Standard: core.StandardConceptStandard},
		&core.ConceptRecord{Id: 3, Name: "Cough symptom", Standard: core.StandardConceptStandard},
	))

	resolver, err := NewResolver(vocab, WithMaxHits(1))
	require.NoError(t, err)

	matches, err := resolver.Resolve(ctx, "cough", "en")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Equal(t, core.ID(1), matches[0].Record.Id)
}

type recordingMonitor struct {
	started    bool
	normalized string
	candidates int
	finished   int
}

func (m *recordingMonitor) Start(_ string)                                          { m.started = true }
func (m *recordingMonitor) Normalized(n string)                                     { m.normalized = n }
func (m *recordingMonitor) CandidateHit(_ *core.ConceptRecord, _ float64)           { m.candidates++ }
func (m *recordingMonitor) MappedTo(_ *core.ConceptRecord, _ []*core.ConceptRecord) {}
func (m *recordingMonitor) Finish(matches []*ConceptMatch)                          { m.finished = len(matches) }

func TestResolveWithMonitor(t *testing.T) {
	vocab := newTestVocabulary(t)
	seedColdVocabulary(t, vocab)

	resolver, err := NewResolver(vocab)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	matches, err := resolver.ResolveWithMonitor(context.Background(), "  Common   COLD ", "en", monitor)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	assert.Equal(t, "common cold", monitor.normalized)
	assert.Greater(t, monitor.candidates, 0)
	assert.Equal(t, len(matches), monitor.finished)
}
