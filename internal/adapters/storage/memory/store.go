// Package memory provides an in-process record store.
// Commits are atomic: a batch is applied to an overlay first and merged only
// when every change succeeded.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// Store keeps records in a map guarded by a RWMutex.
type Store struct {
	desc ports.StoreDescription

	mu      sync.RWMutex
	records map[domain.RecordKey]*domain.Record
	closed  bool
}

// New creates an empty store for desc.
func New(desc ports.StoreDescription) *Store {
	return &Store{
		desc:    desc,
		records: make(map[domain.RecordKey]*domain.Record),
	}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "memory:" + s.desc.Name
}

// Check implements ports.HealthChecker.
func (s *Store) Check(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
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

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, domain.NewUnavailableError(s.desc.Name, "closed")
	}

	rec, ok := s.records[key(entity, id)]
	if !ok {
		return nil, domain.NewNotFoundError(entity, id)
	}

	return rec.Clone(), nil
}

// List implements ports.Store.
func (s *Store) List(ctx context.Context, entity string) ([]*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, domain.NewUnavailableError(s.desc.Name, "closed")
	}

	var out []*domain.Record
	for _, rec := range s.records {
		if rec.Entity == entity {
			out = append(out, rec.Clone())
		}
	}

	slices.SortFunc(out, func(a, b *domain.Record) int {
		return strings.Compare(a.ID, b.ID)
	})

	return out, nil
}

// Commit implements ports.Store.
func (s *Store) Commit(ctx context.Context, changes []domain.Change) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.NewUnavailableError(s.desc.Name, "closed")
	}

	// nil value in the overlay marks a deletion.
	overlay := make(map[domain.RecordKey]*domain.Record, len(changes))

	exists := func(k domain.RecordKey) bool {
		if rec, staged := overlay[k]; staged {
			return rec != nil
		}
		_, ok := s.records[k]
		return ok
	}

	for _, ch := range changes {
		rec := ch.Record
		k := key(rec.Entity, rec.ID)

		switch ch.Op {
		case domain.OpInsert:
			if exists(k) {
				return domain.NewDuplicateError(rec.Entity, rec.ID)
			}
			overlay[k] = rec.Clone()
		case domain.OpUpdate:
			if !exists(k) {
				return domain.NewNotFoundError(rec.Entity, rec.ID)
			}
			overlay[k] = rec.Clone()
		case domain.OpDelete:
			if !exists(k) {
				return domain.NewNotFoundError(rec.Entity, rec.ID)
			}
			overlay[k] = nil
		default:
			return domain.NewValidationError("op", "unsupported operation "+string(ch.Op))
		}
	}

	for k, rec := range overlay {
		if rec == nil {
			delete(s.records, k)
			continue
		}
		s.records[k] = rec
	}

	return nil
}

// Close implements ports.Store. Data is dropped with the store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.records = nil

	return nil
}

func key(entity, id string) domain.RecordKey {
	return domain.RecordKey{Entity: entity, ID: id}
}
