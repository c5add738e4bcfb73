// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter for anything that may block on I/O
//   - Return domain types, never driver types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/go-container-controller/internal/domain"
)

// StoreType selects the backing database for a store description.
type StoreType string

const (
	// StoreTypeMemory keeps records in process memory (tests, scratch data).
	StoreTypeMemory StoreType = "memory"

	// StoreTypeSQLite persists records in a SQLite file.
	StoreTypeSQLite StoreType = "sqlite"

	// StoreTypePostgres persists records in a PostgreSQL database.
	StoreTypePostgres StoreType = "postgres"

	// StoreTypeBadger persists records in a BadgerDB directory.
	StoreTypeBadger StoreType = "badger"
)

// StoreDescription describes one physical store managed by a StorageEngine.
type StoreDescription struct {
	// Name identifies the store within its engine.
	Name string

	// Type selects the backing database.
	Type StoreType

	// Path is the file (sqlite) or directory (badger) holding the data.
	Path string

	// DSN is the connection string for network databases.
	DSN string

	// Entities lists the entities hosted by this store.
	// An empty list makes the store the catch-all for unlisted entities.
	Entities []string
}

// Hosts reports whether the store is configured for the given entity.
func (d StoreDescription) Hosts(entity string) bool {
	for _, e := range d.Entities {
		if e == entity {
			return true
		}
	}

	return false
}

// Store is a single opened database that can commit a batch of changes
// atomically.
type Store interface {
	HealthChecker

	// Description returns the description the store was opened with.
	Description() StoreDescription

	// Fetch returns the record stored under (entity, id).
	// Returns domain.ErrNotFound if it does not exist.
	Fetch(ctx context.Context, entity, id string) (*domain.Record, error)

	// List returns every record of an entity ordered by ID.
	List(ctx context.Context, entity string) ([]*domain.Record, error)

	// Commit applies all changes in one transaction: either all of them
	// become durable or none do.
	// Returns domain.ErrConflict for an insert of an existing record and
	// domain.ErrNotFound for an update or delete of a missing one.
	Commit(ctx context.Context, changes []domain.Change) error

	// Close releases the underlying database handle.
	Close() error
}

// LoadFunc is called once per store as each finishes loading.
type LoadFunc func(desc StoreDescription, err error)

// EngineFactory builds the storage engine for a container named name. An
// empty descs selects the factory's default store.
type EngineFactory func(name string, descs []StoreDescription) (StorageEngine, error)

// StorageEngine owns the stores behind a container and routes record
// operations to the store hosting each entity.
type StorageEngine interface {
	HealthChecker

	// Descriptions returns the configured store descriptions in order.
	Descriptions() []StoreDescription

	// LoadStores opens every configured store concurrently and calls fn once
	// per store as it finishes. It returns after all callbacks have run.
	LoadStores(ctx context.Context, fn LoadFunc)

	// DestroyStore closes the store (if loaded) and removes its data.
	DestroyStore(ctx context.Context, desc StoreDescription) error

	// AddStore opens a store for desc asynchronously and reports the outcome
	// through fn.
	AddStore(ctx context.Context, desc StoreDescription, fn LoadFunc)

	// Fetch reads a committed record.
	Fetch(ctx context.Context, entity, id string) (*domain.Record, error)

	// List reads every committed record of an entity.
	List(ctx context.Context, entity string) ([]*domain.Record, error)

	// Commit routes changes to their stores and commits them.
	Commit(ctx context.Context, changes []domain.Change) error

	// Close closes every loaded store.
	Close() error
}
