package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
)

// AnalyticsRepository implements storage.AnalyticsRepository for BadgerDB.
// All writes are append-oriented facts; nothing is ever deleted.
type AnalyticsRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
	selSeq  *badger.Sequence
	viewSeq *badger.Sequence
}

var _ storage.AnalyticsRepository = (*AnalyticsRepository)(nil)

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(backend *Backend) (*AnalyticsRepository, error) {
	idSeq, err := backend.GetSequence(searchIDSeq)
	if err != nil {
		return nil, err
	}

	selSeq, err := backend.GetSequence(selectionIDSeq)
	if err != nil {
		idSeq.Release()
		return nil, err
	}

	viewSeq, err := backend.GetSequence(viewIDSeq)
	if err != nil {
		idSeq.Release()
		selSeq.Release()
		return nil, err
	}

	return &AnalyticsRepository{
		backend: backend,
		idSeq:   idSeq,
		selSeq:  selSeq,
		viewSeq: viewSeq,
	}, nil
}

// Close releases the ID sequences.
func (r *AnalyticsRepository) Close() error {
	err := r.idSeq.Release()
	if e := r.selSeq.Release(); err == nil {
		err = e
	}
	if e := r.viewSeq.Release(); err == nil {
		err = e
	}
	return err
}

// WithTransaction delegates to the backend.
func (r *AnalyticsRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// nextSeq returns the next non-zero value from a sequence.
// BadgerDB sequences can return 0 on first call, so we skip it.
func nextSeq(seq *badger.Sequence) (uint64, error) {
	next, err := seq.Next()
	if err != nil {
		return 0, err
	}
	if next == 0 {
		next, err = seq.Next()
		if err != nil {
			return 0, err
		}
	}
	return next, nil
}

// AddSearch appends a search query, generating its ID from sequence.
func (r *AnalyticsRepository) AddSearch(ctx context.Context, query *core.SearchQuery) (*core.SearchQuery, error) {
	if err := core.ValidateSearchQuery(query); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := nextSeq(r.idSeq)
		if err != nil {
			return err
		}
		query.Id = core.ID(nextID)

		if query.CreatedAt.IsZero() {
			query.CreatedAt = time.Now().UTC()
		}

		key := makeSearchKey(query.Id)
		value := storage.MarshalSearchQuery(query)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return query, nil
}

// MarkConceptLookup flags an existing search as having led to a concept lookup.
func (r *AnalyticsRepository) MarkConceptLookup(ctx context.Context, searchId core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSearchKey(searchId)
		query, err := readSearchQuery(tx, key)
		if err != nil {
			return err
		}
		if query == nil {
			return storage.ErrNotFound
		}

		if query.LedToConceptLookup {
			return nil
		}
		query.LedToConceptLookup = true

		value := storage.MarshalSearchQuery(query)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// AddSelectedSynonym appends a synonym selection fact for a search.
func (r *AnalyticsRepository) AddSelectedSynonym(ctx context.Context, selection *core.SynonymSelection) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		seq, err := nextSeq(r.selSeq)
		if err != nil {
			return err
		}

		if selection.SelectedAt.IsZero() {
			selection.SelectedAt = time.Now().UTC()
		}

		key := makeSelectionKey(selection.SearchId, seq)
		value := storage.MarshalSynonymSelection(selection)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// AddViewedConcept appends a concept view fact.
func (r *AnalyticsRepository) AddViewedConcept(ctx context.Context, view *core.ConceptView) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		seq, err := nextSeq(r.viewSeq)
		if err != nil {
			return err
		}

		if view.ViewedAt.IsZero() {
			view.ViewedAt = time.Now().UTC()
		}

		key := makeViewKey(seq)
		value := storage.MarshalConceptView(view)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetSearch retrieves a single search query by ID.
func (r *AnalyticsRepository) GetSearch(ctx context.Context, id core.ID) (*core.SearchQuery, error) {
	var result *core.SearchQuery
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSearchKey(id)
		var err error
		result, err = readSearchQuery(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// AllSearches retrieves searches in ascending ID order.
// When since is non-zero, only searches created at or after it are returned.
func (r *AnalyticsRepository) AllSearches(ctx context.Context, since time.Time) ([]*core.SearchQuery, error) {
	var results []*core.SearchQuery
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(searchPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !hasPrefix(item.Key(), prefix) {
				break
			}

			var query *core.SearchQuery
			err := item.Value(func(val []byte) error {
				var err error
				query, err = storage.UnmarshalSearchQuery(val)
				return err
			})
			if err != nil {
				return err
			}
			if query == nil {
				continue
			}
			if !since.IsZero() && query.CreatedAt.Before(since) {
				continue
			}
			results = append(results, query)
		}
		return nil
	}, false)

	return results, err
}

// SelectedSynonyms retrieves the synonym selections for a search, in
// selection order.
func (r *AnalyticsRepository) SelectedSynonyms(ctx context.Context, searchId core.ID) ([]*core.SynonymSelection, error) {
	return r.scanSelections(makePartialSelectionKey(searchId))
}

// AllSelectedSynonyms retrieves every synonym selection fact.
func (r *AnalyticsRepository) AllSelectedSynonyms(ctx context.Context) ([]*core.SynonymSelection, error) {
	return r.scanSelections([]byte(selectionPrefix + ":"))
}

func (r *AnalyticsRepository) scanSelections(prefix []byte) ([]*core.SynonymSelection, error) {
	var results []*core.SynonymSelection
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !hasPrefix(item.Key(), prefix) {
				break
			}

			var selection *core.SynonymSelection
			err := item.Value(func(val []byte) error {
				var err error
				selection, err = storage.UnmarshalSynonymSelection(val)
				return err
			})
			if err != nil {
				return err
			}
			if selection != nil {
				results = append(results, selection)
			}
		}
		return nil
	}, false)

	return results, err
}

// AllViewedConcepts retrieves every concept view fact.
func (r *AnalyticsRepository) AllViewedConcepts(ctx context.Context) ([]*core.ConceptView, error) {
	var results []*core.ConceptView
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(viewPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !hasPrefix(item.Key(), prefix) {
				break
			}

			var view *core.ConceptView
			err := item.Value(func(val []byte) error {
				var err error
				view, err = storage.UnmarshalConceptView(val)
				return err
			})
			if err != nil {
				return err
			}
			if view != nil {
				results = append(results, view)
			}
		}
		return nil
	}, false)

	return results, err
}

// readSearchQuery reads a search query from the transaction.
func readSearchQuery(tx *badger.Txn, key []byte) (*core.SearchQuery, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var query *core.SearchQuery
	err = item.Value(func(val []byte) error {
		var err error
		query, err = storage.UnmarshalSearchQuery(val)
		return err
	})
	return query, err
}
