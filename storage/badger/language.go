package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/medlex/core"
	"github.com/poiesic/medlex/storage"
)

// LanguageRepository implements storage.LanguageRepository for BadgerDB.
type LanguageRepository struct {
	backend *Backend
}

var _ storage.LanguageRepository = (*LanguageRepository)(nil)

// NewLanguageRepository creates a new LanguageRepository.
func NewLanguageRepository(backend *Backend) (*LanguageRepository, error) {
	return &LanguageRepository{
		backend: backend,
	}, nil
}

// Close releases resources. LanguageRepository has no resources to release.
func (r *LanguageRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *LanguageRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddLanguage adds a language keyed by its 2-letter code.
// Returns storage.ErrDuplicateKey if the code is already registered.
func (r *LanguageRepository) AddLanguage(ctx context.Context, lang *core.Language) (*core.Language, error) {
	if err := core.ValidateLanguage(lang); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeLanguageKey(lang.Code)

		// Reject duplicate codes
		existing, err := readLanguage(tx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return storage.ErrDuplicateKey
		}

		if lang.InsertedAt.IsZero() {
			lang.InsertedAt = time.Now().UTC()
		}
		lang.UpdatedAt = lang.InsertedAt

		value := storage.MarshalLanguage(lang)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	// The transaction only touches this code's key, so a commit conflict
	// means a concurrent registration of the same code
	if errors.Is(err, badger.ErrConflict) {
		return nil, storage.ErrDuplicateKey
	}
	if err != nil {
		return nil, err
	}
	return lang, nil
}

// GetLanguageByCode retrieves a language by its 2-letter code.
func (r *LanguageRepository) GetLanguageByCode(ctx context.Context, code string) (*core.Language, error) {
	var result *core.Language
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeLanguageKey(core.NormalizeLanguageCode(code))
		var err error
		result, err = readLanguage(tx, key)
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

// UpdateLanguage replaces the stored record for the language's code.
// The code itself is immutable.
func (r *LanguageRepository) UpdateLanguage(ctx context.Context, lang *core.Language) (*core.Language, error) {
	if err := core.ValidateLanguage(lang); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeLanguageKey(lang.Code)

		old, err := readLanguage(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		lang.InsertedAt = old.InsertedAt
		lang.UpdatedAt = time.Now().UTC()

		value := storage.MarshalLanguage(lang)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return lang, nil
}

// ListLanguages retrieves all registered languages, ordered by code.
func (r *LanguageRepository) ListLanguages(ctx context.Context) ([]*core.Language, error) {
	var results []*core.Language
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(languagePrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !hasPrefix(item.Key(), prefix) {
				break
			}

			var lang *core.Language
			err := item.Value(func(val []byte) error {
				var err error
				lang, err = storage.UnmarshalLanguage(val)
				return err
			})
			if err != nil {
				return err
			}
			if lang != nil {
				results = append(results, lang)
			}
		}
		return nil
	}, false)

	return results, err
}

// readLanguage reads a language from the transaction.
func readLanguage(tx *badger.Txn, key []byte) (*core.Language, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var lang *core.Language
	err = item.Value(func(val []byte) error {
		var err error
		lang, err = storage.UnmarshalLanguage(val)
		return err
	})
	return lang, err
}
