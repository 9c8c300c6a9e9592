package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
)

// VocabularyRepository implements storage.VocabularyRepository for BadgerDB.
type VocabularyRepository struct {
	backend *Backend
}

var _ storage.VocabularyRepository = (*VocabularyRepository)(nil)

// NewVocabularyRepository creates a new VocabularyRepository.
func NewVocabularyRepository(backend *Backend) (*VocabularyRepository, error) {
	return &VocabularyRepository{
		backend: backend,
	}, nil
}

// Close releases resources. VocabularyRepository has no resources to release.
func (r *VocabularyRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *VocabularyRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddConcepts adds one or more concept records to storage.
// Records are keyed by their upstream concept ID; re-adding overwrites.
func (r *VocabularyRepository) AddConcepts(ctx context.Context, concepts ...*core.ConceptRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, concept := range concepts {
			if err := core.ValidateConceptRecord(concept); err != nil {
				return err
			}

			key := makeConceptKey(concept.Id)
			value := storage.MarshalConceptRecord(concept)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AddMappings adds "Maps to" edges between concepts.
func (r *VocabularyRepository) AddMappings(ctx context.Context, mappings ...*core.ConceptMapping) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, mapping := range mappings {
			key := makeMappingKey(mapping.SourceId, mapping.TargetId)
			if err := tx.Set(key, storage.MarshalID(mapping.TargetId)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetConcept retrieves a single concept record by ID.
func (r *VocabularyRepository) GetConcept(ctx context.Context, id core.ID) (*core.ConceptRecord, error) {
	var result *core.ConceptRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeConceptKey(id)
		var err error
		result, err = readConceptRecord(tx, key)
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

// ScanConcepts iterates over every concept record in the vocabulary.
func (r *VocabularyRepository) ScanConcepts(ctx context.Context, fn func(record *core.ConceptRecord) bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(conceptRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			key := item.Key()

			// Stop if we've moved past concept keys
			if !hasPrefix(key, prefix) {
				break
			}

			var record *core.ConceptRecord
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalConceptRecord(val)
				return err
			})
			if err != nil {
				return err
			}

			if record != nil && !fn(record) {
				break
			}
		}
		return nil
	}, false)
}

// GetMappedConcepts retrieves the standard concepts the given concept maps to.
// Dangling edges are skipped.
func (r *VocabularyRepository) GetMappedConcepts(ctx context.Context, id core.ID) ([]*core.ConceptRecord, error) {
	var results []*core.ConceptRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := makePartialMappingKey(id)
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			if !hasPrefix(key, prefix) {
				break
			}

			var targetID core.ID
			err := item.Value(func(val []byte) error {
				var err error
				targetID, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			target, err := readConceptRecord(tx, makeConceptKey(targetID))
			if err != nil {
				return err
			}
			if target != nil {
				results = append(results, target)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountConcepts returns the number of concept records in the vocabulary.
func (r *VocabularyRepository) CountConcepts(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(conceptRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			if !hasPrefix(iter.Item().Key(), prefix) {
				break
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// hasPrefix checks if a byte slice has a given prefix
func hasPrefix(s, prefix []byte) bool {
	return len(s) >= len(prefix) && string(s[:len(prefix)]) == string(prefix)
}

// readConceptRecord reads a concept record from the transaction.
func readConceptRecord(tx *badger.Txn, key []byte) (*core.ConceptRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ConceptRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalConceptRecord(val)
		return err
	})
	return record, err
}
