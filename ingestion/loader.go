package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
)

// DefaultBatchSize is the number of records written per storage call.
const DefaultBatchSize = 500

// Loader bulk-loads OMOP-style vocabulary exports into the concept store.
// Exports are tab-separated files with a header row: CONCEPT for the records
// themselves, CONCEPT_SYNONYM for lexical variants, and CONCEPT_RELATIONSHIP
// for "Maps to" edges. Loading happens before the resolution service starts;
// the resolution path never mutates the store.
type Loader struct {
	vocabulary storage.VocabularyRepository
	pool       *ants.Pool
	batchSize  int
	logger     *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the worker pool size for concurrent batch writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		if l.pool != nil {
			l.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithBatchSize sets how many records are written per storage call.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		l.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a new vocabulary loader.
func NewLoader(vocabulary storage.VocabularyRepository, opts ...Option) (*Loader, error) {
	if vocabulary == nil {
		return nil, ErrVocabularyRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		vocabulary: vocabulary,
		pool:       pool,
		batchSize:  DefaultBatchSize,
		logger:     slog.Default().With("component", "ingestion"),
	}
	for _, opt := range opts {
		if optErr := opt(l); optErr != nil {
			l.Release()
			return nil, optErr
		}
	}
	return l, nil
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}

// LoadConcepts reads a CONCEPT export and writes the records in pooled
// batches. Returns the number of records loaded.
func (l *Loader) LoadConcepts(ctx context.Context, r io.Reader) (int, error) {
	reader, header, err := newExportReader(r)
	if err != nil {
		return 0, err
	}

	cols, err := columnIndexes(header,
		"concept_id", "concept_name", "domain_id", "vocabulary_id",
		"concept_class_id", "standard_concept", "concept_code", "invalid_reason")
	if err != nil {
		return 0, err
	}

	writer := l.newBatchWriter()
	var batch []*core.ConceptRecord
	total := 0

	flush := func() {
		records := batch
		batch = nil
		writer.submit(func() error {
			return l.vocabulary.AddConcepts(ctx, records...)
		})
	}

	for {
		row, err := nextRow(ctx, reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			writer.wait()
			return total, err
		}

		id, err := strconv.ParseUint(row[cols["concept_id"]], 10, 64)
		if err != nil {
			writer.wait()
			return total, fmt.Errorf("%w: concept_id %q", ErrMalformedRow, row[cols["concept_id"]])
		}

		batch = append(batch, &core.ConceptRecord{
			Id:            core.ID(id),
			Code:          row[cols["concept_code"]],
			Name:          row[cols["concept_name"]],
			ClassName:     row[cols["concept_class_id"]],
			Domain:        row[cols["domain_id"]],
			Vocabulary:    row[cols["vocabulary_id"]],
			Standard:      core.ParseStandardConcept(row[cols["standard_concept"]]),
			InvalidReason: row[cols["invalid_reason"]],
		})
		total++

		if len(batch) >= l.batchSize {
			flush()
		}
	}
	if len(batch) > 0 {
		flush()
	}

	if err := writer.wait(); err != nil {
		return total, err
	}
	l.logger.Info("loaded concepts", "count", total)
	return total, nil
}

// LoadSynonyms reads a CONCEPT_SYNONYM export and attaches the synonyms to
// their concepts. Concepts must already be loaded; synonyms for unknown
// concept IDs are skipped. Returns the number of synonyms attached.
func (l *Loader) LoadSynonyms(ctx context.Context, r io.Reader) (int, error) {
	reader, header, err := newExportReader(r)
	if err != nil {
		return 0, err
	}

	cols, err := columnIndexes(header, "concept_id", "concept_synonym_name")
	if err != nil {
		return 0, err
	}

	// Synonyms arrive grouped arbitrarily; collect per concept before the
	// read-modify-write pass
	byConcept := make(map[core.ID][]string)
	for {
		row, err := nextRow(ctx, reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}

		id, err := strconv.ParseUint(row[cols["concept_id"]], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: concept_id %q", ErrMalformedRow, row[cols["concept_id"]])
		}
		synonym := strings.TrimSpace(row[cols["concept_synonym_name"]])
		if synonym == "" {
			continue
		}
		byConcept[core.ID(id)] = append(byConcept[core.ID(id)], synonym)
	}

	writer := l.newBatchWriter()
	var mu sync.Mutex
	attached := 0
	skipped := 0

	for id, synonyms := range byConcept {
		id, synonyms := id, synonyms
		writer.submit(func() error {
			record, err := l.vocabulary.GetConcept(ctx, id)
			if errors.Is(err, storage.ErrNotFound) {
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			if err != nil {
				return err
			}

			added := mergeSynonyms(record, synonyms)
			if added == 0 {
				return nil
			}
			if err := l.vocabulary.AddConcepts(ctx, record); err != nil {
				return err
			}

			mu.Lock()
			attached += added
			mu.Unlock()
			return nil
		})
	}

	if err := writer.wait(); err != nil {
		return attached, err
	}
	if skipped > 0 {
		l.logger.Warn("skipped synonyms for unknown concepts", "concepts", skipped)
	}
	l.logger.Info("attached synonyms", "count", attached)
	return attached, nil
}

// LoadMappings reads a CONCEPT_RELATIONSHIP export and writes its "Maps to"
// edges. All other relationship types are ignored. Returns the number of
// edges written.
func (l *Loader) LoadMappings(ctx context.Context, r io.Reader) (int, error) {
	reader, header, err := newExportReader(r)
	if err != nil {
		return 0, err
	}

	cols, err := columnIndexes(header, "concept_id_1", "concept_id_2", "relationship_id")
	if err != nil {
		return 0, err
	}

	writer := l.newBatchWriter()
	var batch []*core.ConceptMapping
	total := 0

	flush := func() {
		mappings := batch
		batch = nil
		writer.submit(func() error {
			return l.vocabulary.AddMappings(ctx, mappings...)
		})
	}

	for {
		row, err := nextRow(ctx, reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			writer.wait()
			return total, err
		}

		if row[cols["relationship_id"]] != "Maps to" {
			continue
		}

		source, err := strconv.ParseUint(row[cols["concept_id_1"]], 10, 64)
		if err != nil {
			writer.wait()
			return total, fmt.Errorf("%w: concept_id_1 %q", ErrMalformedRow, row[cols["concept_id_1"]])
		}
		target, err := strconv.ParseUint(row[cols["concept_id_2"]], 10, 64)
		if err != nil {
			writer.wait()
			return total, fmt.Errorf("%w: concept_id_2 %q", ErrMalformedRow, row[cols["concept_id_2"]])
		}

		// Self-mappings carry no information for resolution
		if source == target {
			continue
		}

		batch = append(batch, &core.ConceptMapping{
			SourceId: core.ID(source),
			TargetId: core.ID(target),
		})
		total++

		if len(batch) >= l.batchSize {
			flush()
		}
	}
	if len(batch) > 0 {
		flush()
	}

	if err := writer.wait(); err != nil {
		return total, err
	}
	l.logger.Info("loaded mappings", "count", total)
	return total, nil
}

// mergeSynonyms appends the synonyms not already on the record, skipping
// duplicates and the record's own name. Returns the number appended.
func mergeSynonyms(record *core.ConceptRecord, synonyms []string) int {
	seen := make(map[string]bool, len(record.Synonyms)+1)
	seen[strings.ToLower(record.Name)] = true
	for _, s := range record.Synonyms {
		seen[strings.ToLower(s)] = true
	}

	added := 0
	for _, s := range synonyms {
		lower := strings.ToLower(s)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		record.Synonyms = append(record.Synonyms, s)
		added++
	}
	return added
}

// newExportReader wraps r in a tab-separated reader and consumes the header.
func newExportReader(r io.Reader) (*csv.Reader, []string, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading export header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	return reader, header, nil
}

// columnIndexes resolves the named columns in the header.
func columnIndexes(header []string, names ...string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[name] = i
	}

	cols := make(map[string]int, len(names))
	for _, name := range names {
		idx, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[name] = idx
	}
	return cols, nil
}

// nextRow reads one data row, honoring cancellation between rows.
func nextRow(ctx context.Context, reader *csv.Reader) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reader.Read()
}

// batchWriter runs storage writes on the loader's pool and keeps the first
// error for the caller.
type batchWriter struct {
	pool *ants.Pool
	wg   sync.WaitGroup

	mu  sync.Mutex
	err error
}

func (l *Loader) newBatchWriter() *batchWriter {
	return &batchWriter{pool: l.pool}
}

func (w *batchWriter) submit(fn func() error) {
	w.wg.Add(1)
	if err := w.pool.Submit(func() {
		defer w.wg.Done()
		if err := fn(); err != nil {
			w.fail(err)
		}
	}); err != nil {
		w.wg.Done()
		w.fail(err)
	}
}

func (w *batchWriter) fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}

func (w *batchWriter) wait() error {
	w.wg.Wait()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
