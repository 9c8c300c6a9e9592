package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/medlex"
	"github.com/poiesic/medlex/ai/mock"
	"github.com/poiesic/medlex/ingestion"
)

var (
	dbPath        = flag.String("db", "./vocabulary_db", "path to BadgerDB database directory")
	conceptFile   = flag.String("concepts", "", "CONCEPT export (tab-separated)")
	synonymFile   = flag.String("synonyms", "", "CONCEPT_SYNONYM export (tab-separated)")
	relationFile  = flag.String("relationships", "", "CONCEPT_RELATIONSHIP export (tab-separated)")
	seedLanguages = flag.Bool("seed-languages", true, "register the initial language set")
	batchSize     = flag.Int("batch-size", ingestion.DefaultBatchSize, "records per storage write")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// loadFile runs one loader pass over the named export file.
func loadFile(ctx context.Context, filename string, load func(ctx context.Context, r *os.File) (int, error)) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	count, err := load(ctx, f)
	if err != nil {
		return fmt.Errorf("loading %s: %w", filename, err)
	}
	fmt.Printf("%s: %d rows\n", filename, count)
	return nil
}

func main() {
	// Seeding never talks to the inference backend, except for language
	// seeding which uses the fixed initial set
	db, err := medlex.NewDatabase(*dbPath, medlex.WithProvider(mock.NewMockProvider()))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()

	if *seedLanguages {
		reg, err := db.NewRegistry()
		if err != nil {
			panic(err)
		}
		if err := reg.Seed(ctx); err != nil {
			panic(err)
		}
	}

	loader, err := db.NewLoader(ingestion.WithBatchSize(*batchSize))
	if err != nil {
		panic(err)
	}
	defer loader.Release()

	if *conceptFile != "" {
		if err := loadFile(ctx, *conceptFile, func(ctx context.Context, r *os.File) (int, error) {
			return loader.LoadConcepts(ctx, r)
		}); err != nil {
			panic(err)
		}
	}

	if *synonymFile != "" {
		if err := loadFile(ctx, *synonymFile, func(ctx context.Context, r *os.File) (int, error) {
			return loader.LoadSynonyms(ctx, r)
		}); err != nil {
			panic(err)
		}
	}

	if *relationFile != "" {
		if err := loadFile(ctx, *relationFile, func(ctx context.Context, r *os.File) (int, error) {
			return loader.LoadMappings(ctx, r)
		}); err != nil {
			panic(err)
		}
	}
}
