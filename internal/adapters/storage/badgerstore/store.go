// Package badgerstore persists records in a BadgerDB key-value database.
//
// Keys are "rec:<entity>\x00<id>" and values are the JSON-encoded attribute
// map. Every commit runs inside a single read-write transaction, so a failed
// change discards the whole batch.
package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

const prefixRecord = "rec:"

func keyRecord(entity, id string) []byte {
	return []byte(prefixRecord + entity + "\x00" + id)
}

func prefixEntity(entity string) []byte {
	return []byte(prefixRecord + entity + "\x00")
}

// Store implements ports.Store on BadgerDB.
type Store struct {
	db   *badgerdb.DB
	desc ports.StoreDescription
}

// Open opens (or creates) the badger directory at desc.Path.
// An empty path opens an in-memory database.
func Open(_ context.Context, desc ports.StoreDescription, logger *slog.Logger) (*Store, error) {
	if desc.Type != ports.StoreTypeBadger {
		return nil, domain.NewValidationError("type", fmt.Sprintf("unsupported database type: %s", desc.Type))
	}

	opts := badgerdb.DefaultOptions(desc.Path)
	if desc.Path == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(newBadgerLogger(logger, desc.Name))

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	return &Store{db: db, desc: desc}, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return string(ports.StoreTypeBadger) + ":" + s.desc.Name
}

// Check implements ports.HealthChecker.
func (s *Store) Check(_ context.Context) error {
	if s.db.IsClosed() {
		return domain.NewUnavailableError(s.desc.Name, "closed")
	}

	return nil
}

// Description implements ports.Store.
func (s *Store) Description() ports.StoreDescription {
	return s.desc
}

// Fetch implements ports.Store.
func (s *Store) Fetch(ctx context.Context, entity, id string) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec *domain.Record

	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(keyRecord(entity, id))
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return domain.NewNotFoundError(entity, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			rec, err = decodeRecord(entity, id, val)
			return err
		})
	})
	if err != nil {
		return nil, s.mapErr(err)
	}

	return rec, nil
}

// List implements ports.Store.
func (s *Store) List(ctx context.Context, entity string) ([]*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := []*domain.Record{}

	err := s.db.View(func(txn *badgerdb.Txn) error {
		prefix := prefixEntity(entity)
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		// Badger iterates keys in byte order, which is ID order within a prefix.
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(prefix):])

			err := item.Value(func(val []byte) error {
				rec, err := decodeRecord(entity, id, val)
				if err != nil {
					return err
				}
				out = append(out, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, s.mapErr(err)
	}

	return out, nil
}

// Commit implements ports.Store.
func (s *Store) Commit(ctx context.Context, changes []domain.Change) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badgerdb.Txn) error {
		for _, ch := range changes {
			if err := apply(txn, ch); err != nil {
				return err
			}
		}
		return nil
	})

	return s.mapErr(err)
}

func apply(txn *badgerdb.Txn, ch domain.Change) error {
	rec := ch.Record
	key := keyRecord(rec.Entity, rec.ID)

	_, err := txn.Get(key)
	exists := err == nil
	if err != nil && !errors.Is(err, badgerdb.ErrKeyNotFound) {
		return err
	}

	switch ch.Op {
	case domain.OpInsert:
		if exists {
			return domain.NewDuplicateError(rec.Entity, rec.ID)
		}
	case domain.OpUpdate:
		if !exists {
			return domain.NewNotFoundError(rec.Entity, rec.ID)
		}
	case domain.OpDelete:
		if !exists {
			return domain.NewNotFoundError(rec.Entity, rec.ID)
		}
		return txn.Delete(key)
	default:
		return domain.NewValidationError("op", "unsupported operation "+string(ch.Op))
	}

	val, err := json.Marshal(rec.Attributes)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", rec.Key(), err)
	}

	return txn.Set(key, val)
}

func decodeRecord(entity, id string, val []byte) (*domain.Record, error) {
	rec := &domain.Record{Entity: entity, ID: id}
	if err := json.Unmarshal(val, &rec.Attributes); err != nil {
		return nil, fmt.Errorf("decoding %s/%s: %w", entity, id, err)
	}

	return rec, nil
}

func (s *Store) mapErr(err error) error {
	if errors.Is(err, badgerdb.ErrDBClosed) {
		return domain.NewUnavailableError(s.desc.Name, "closed")
	}
	if errors.Is(err, badgerdb.ErrConflict) {
		return domain.NewConflictError("record", "a concurrent commit touched the same records")
	}

	return err
}

// Close implements ports.Store.
func (s *Store) Close() error {
	if s.db.IsClosed() {
		return nil
	}

	return s.db.Close()
}

// Destroy removes the badger directory behind desc. The store must not be
// open.
func Destroy(desc ports.StoreDescription) error {
	if desc.Path == "" {
		return nil
	}

	if err := os.RemoveAll(desc.Path); err != nil {
		return fmt.Errorf("removing %s: %w", desc.Path, err)
	}

	return nil
}
