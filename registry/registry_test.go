package registry

import (
	"context"
	"sync"
	"testing"

	"github.com/poiesic/medlex/ai"
	"github.com/poiesic/medlex/ai/mock"
	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
	"github.com/poiesic/medlex/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*Registry, *mock.MockLanguageInferrer) {
	t.Helper()

	vocabRepo, langRepo, analyticsRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		analyticsRepo.Close()
		langRepo.Close()
		vocabRepo.Close()
		backend.Close()
	})

	inferrer := mock.NewMockLanguageInferrer()
	registry, err := NewRegistry(langRepo, inferrer)
	require.NoError(t, err)
	return registry, inferrer
}

func TestNewRegistry(t *testing.T) {
	registry, _ := newTestRegistry(t)
	assert.NotNil(t, registry)

	_, err := NewRegistry(nil, mock.NewMockLanguageInferrer())
	assert.Equal(t, ErrLanguageRepositoryRequired, err)
}

func TestResolveOrCreate(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	lang, err := registry.ResolveOrCreate(ctx, "Polish")
	require.NoError(t, err)
	assert.Equal(t, "pl", lang.Code)
	assert.Equal(t, "Polish", lang.Label)
	assert.Equal(t, "Polski", lang.NativeName)
	assert.False(t, lang.InsertedAt.IsZero())

	_, err = registry.ResolveOrCreate(ctx, "   ")
	assert.ErrorIs(t, err, core.ErrEmptyInput)
}

func TestResolveOrCreate_Idempotent(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	first, err := registry.ResolveOrCreate(ctx, "Polish")
	require.NoError(t, err)
	second, err := registry.ResolveOrCreate(ctx, "Polish")
	require.NoError(t, err)
	assert.Equal(t, first.Code, second.Code)

	languages, err := registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, languages, 1)
	assert.Equal(t, "pl", languages[0].Code)
}

func TestResolveOrCreate_Concurrent(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lang, err := registry.ResolveOrCreate(ctx, "Polish")
			assert.NoError(t, err)
			assert.Equal(t, "pl", lang.Code)
		}()
	}
	wg.Wait()

	languages, err := registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, languages, 1)
}

func TestResolveOrCreate_CodeConflict(t *testing.T) {
	registry, inferrer := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.ResolveOrCreate(ctx, "Polish")
	require.NoError(t, err)

	// A different language claiming the same code is a conflict, not an update
	inferrer.InferLanguageFunc = func(ctx context.Context, name string) (*ai.LanguageInfo, error) {
		return &ai.LanguageInfo{Code: "pl", Name: "Pali", NativeName: "Pāli"}, nil
	}
	_, err = registry.ResolveOrCreate(ctx, "Pali")
	assert.ErrorIs(t, err, core.ErrDuplicateLanguageCode)
}

func TestResolveOrCreate_InvalidInferredCode(t *testing.T) {
	registry, inferrer := newTestRegistry(t)
	inferrer.InferLanguageFunc = func(ctx context.Context, name string) (*ai.LanguageInfo, error) {
		return &ai.LanguageInfo{Code: "xyz", Name: name}, nil
	}

	_, err := registry.ResolveOrCreate(context.Background(), "Klingon")
	assert.ErrorIs(t, err, core.ErrInvalidLanguageCode)
}

func TestRelabel(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.ResolveOrCreate(ctx, "Spanish")
	require.NoError(t, err)

	updated, err := registry.Relabel(ctx, "es", "Castilian Spanish")
	require.NoError(t, err)
	assert.Equal(t, "es", updated.Code)
	assert.Equal(t, "Castilian Spanish", updated.Label)
	assert.Equal(t, "Español", updated.NativeName)

	_, err = registry.Relabel(ctx, "xx", "Nowhere")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = registry.Relabel(ctx, "es", "  ")
	assert.ErrorIs(t, err, core.ErrEmptyInput)
}

func TestSeed(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, registry.Seed(ctx))

	languages, err := registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, languages, len(seedLanguages))

	// Ordered by English label
	assert.Equal(t, "Arabic", languages[0].Label)
	assert.Equal(t, "Turkish", languages[len(languages)-1].Label)

	// Re-seeding is a no-op, not an error
	require.NoError(t, registry.Seed(ctx))
	languages, err = registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, languages, len(seedLanguages))
}

func TestSeedThenResolveOrCreate(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, registry.Seed(ctx))

	// Seeded languages resolve idempotently
	lang, err := registry.ResolveOrCreate(ctx, "German")
	require.NoError(t, err)
	assert.Equal(t, "de", lang.Code)

	languages, err := registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, languages, len(seedLanguages))
}
