// Package storage implements ports.StorageEngine over a set of record stores.
//
// Each configured store description names the entities it hosts. Record
// operations are routed to the first loaded store hosting the entity, falling
// back to the catch-all store (a description with no entities).
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// Opener opens the store behind a description.
type Opener func(ctx context.Context, desc ports.StoreDescription) (ports.Store, error)

// Destroyer removes the data behind a description.
type Destroyer func(ctx context.Context, desc ports.StoreDescription) error

// Engine routes record operations to the stores it has loaded.
type Engine struct {
	open    Opener
	destroy Destroyer
	logger  *slog.Logger

	mu     sync.RWMutex
	descs  []ports.StoreDescription
	stores map[string]ports.Store
	closed bool

	// callbackMu serializes LoadFunc invocations.
	callbackMu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithOpener replaces the default type-based opener.
func WithOpener(open Opener) Option {
	return func(e *Engine) {
		e.open = open
	}
}

// WithDestroyer replaces the default type-based destroyer.
func WithDestroyer(destroy Destroyer) Option {
	return func(e *Engine) {
		e.destroy = destroy
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine for descs. No store is opened until LoadStores.
// Descriptions must have unique, non-empty names.
func NewEngine(descs []ports.StoreDescription, opts ...Option) (*Engine, error) {
	if len(descs) == 0 {
		return nil, domain.NewValidationError("stores", "at least one store description is required")
	}

	seen := make(map[string]struct{}, len(descs))
	for _, d := range descs {
		if d.Name == "" {
			return nil, domain.NewValidationError("stores.name", "is required")
		}
		if _, dup := seen[d.Name]; dup {
			return nil, domain.NewValidationError("stores.name", fmt.Sprintf("duplicate store name %q", d.Name))
		}
		seen[d.Name] = struct{}{}
	}

	e := &Engine{
		descs:  slices.Clone(descs),
		stores: make(map[string]ports.Store, len(descs)),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.open == nil {
		e.open = func(ctx context.Context, desc ports.StoreDescription) (ports.Store, error) {
			return Open(ctx, desc, e.logger)
		}
	}
	if e.destroy == nil {
		e.destroy = Destroy
	}

	return e, nil
}

// NewFactory returns a ports.EngineFactory that builds engines with opts.
// A container configured without stores gets DefaultDescription.
func NewFactory(opts ...Option) ports.EngineFactory {
	return func(name string, descs []ports.StoreDescription) (ports.StorageEngine, error) {
		if len(descs) == 0 {
			desc, err := DefaultDescription(name)
			if err != nil {
				return nil, err
			}
			descs = []ports.StoreDescription{desc}
		}

		return NewEngine(descs, opts...)
	}
}

// DefaultDescription returns the store used when a container is configured
// without any: a catch-all SQLite file named after the container inside the
// user configuration directory.
func DefaultDescription(name string) (ports.StoreDescription, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ports.StoreDescription{}, fmt.Errorf("resolving user config dir: %w", err)
	}

	return ports.StoreDescription{
		Name: name,
		Type: ports.StoreTypeSQLite,
		Path: filepath.Join(dir, name, name+".sqlite"),
	}, nil
}

// Name implements ports.HealthChecker.
func (e *Engine) Name() string {
	return "storage"
}

// Check reports unhealthy while no store is loaded or any loaded store fails
// its own check.
func (e *Engine) Check(ctx context.Context) error {
	e.mu.RLock()
	stores := make([]ports.Store, 0, len(e.stores))
	for _, d := range e.descs {
		if s, ok := e.stores[d.Name]; ok {
			stores = append(stores, s)
		}
	}
	e.mu.RUnlock()

	if len(stores) == 0 {
		return domain.NewUnavailableError(e.Name(), "no store loaded")
	}

	var errs []error
	for _, s := range stores {
		if err := s.Check(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}

	return errors.Join(errs...)
}

// Descriptions implements ports.StorageEngine.
func (e *Engine) Descriptions() []ports.StoreDescription {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return slices.Clone(e.descs)
}

// LoadStores opens every description concurrently. fn runs once per store,
// never concurrently with itself. Failures are reported as *domain.LoadError.
func (e *Engine) LoadStores(ctx context.Context, fn ports.LoadFunc) {
	g, gctx := errgroup.WithContext(ctx)

	for _, desc := range e.Descriptions() {
		g.Go(func() error {
			err := e.load(gctx, desc)
			e.report(fn, desc, err)
			return nil
		})
	}

	_ = g.Wait()
}

// AddStore opens desc in the background and reports the outcome to fn. The
// description is appended to the engine's list if it is not already there.
// fn is not serialized with LoadStores callbacks, so a load callback may wait
// on it.
func (e *Engine) AddStore(ctx context.Context, desc ports.StoreDescription, fn ports.LoadFunc) {
	go func() {
		err := e.load(ctx, desc)
		if err == nil {
			e.mu.Lock()
			if !slices.ContainsFunc(e.descs, func(d ports.StoreDescription) bool { return d.Name == desc.Name }) {
				e.descs = append(e.descs, desc)
			}
			e.mu.Unlock()
		}
		if fn != nil {
			fn(desc, err)
		}
	}()
}

func (e *Engine) load(ctx context.Context, desc ports.StoreDescription) error {
	e.mu.RLock()
	_, loaded := e.stores[desc.Name]
	closed := e.closed
	e.mu.RUnlock()

	if closed {
		return domain.NewLoadError(desc.Name, domain.NewUnavailableError(e.Name(), "engine closed"))
	}
	if loaded {
		return domain.NewLoadError(desc.Name, domain.NewConflictError("store", "already loaded"))
	}

	store, err := e.open(ctx, desc)
	if err != nil {
		return domain.NewLoadError(desc.Name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		_ = store.Close()
		return domain.NewLoadError(desc.Name, domain.NewUnavailableError(e.Name(), "engine closed"))
	}
	e.stores[desc.Name] = store

	e.logger.DebugContext(ctx, "store loaded",
		slog.String("store", desc.Name),
		slog.String("type", string(desc.Type)),
	)

	return nil
}

func (e *Engine) report(fn ports.LoadFunc, desc ports.StoreDescription, err error) {
	if fn == nil {
		return
	}

	e.callbackMu.Lock()
	defer e.callbackMu.Unlock()

	fn(desc, err)
}

// DestroyStore unloads desc (closing it if loaded) and removes its data.
func (e *Engine) DestroyStore(ctx context.Context, desc ports.StoreDescription) error {
	e.mu.Lock()
	store, loaded := e.stores[desc.Name]
	delete(e.stores, desc.Name)
	e.mu.Unlock()

	if loaded {
		if err := store.Close(); err != nil {
			e.logger.WarnContext(ctx, "closing store before destroy failed",
				slog.String("store", desc.Name),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := e.destroy(ctx, desc); err != nil {
		return fmt.Errorf("destroying store %q: %w", desc.Name, err)
	}

	e.logger.InfoContext(ctx, "store destroyed", slog.String("store", desc.Name))

	return nil
}

// route resolves the store for entity. A configured but unloaded host yields
// ErrUnavailable rather than falling through to the catch-all.
func (e *Engine) route(entity string) (ports.Store, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return nil, domain.NewUnavailableError(e.Name(), "engine closed")
	}

	desc, ok := e.hostFor(entity)
	if !ok {
		return nil, domain.NewUnavailableError(e.Name(), "no store hosts entity "+entity)
	}

	store, loaded := e.stores[desc.Name]
	if !loaded {
		return nil, domain.NewUnavailableError(desc.Name, "not loaded")
	}

	return store, nil
}

func (e *Engine) hostFor(entity string) (ports.StoreDescription, bool) {
	for _, d := range e.descs {
		if d.Hosts(entity) {
			return d, true
		}
	}

	for _, d := range e.descs {
		if len(d.Entities) == 0 {
			return d, true
		}
	}

	return ports.StoreDescription{}, false
}

// Fetch implements ports.StorageEngine.
func (e *Engine) Fetch(ctx context.Context, entity, id string) (*domain.Record, error) {
	store, err := e.route(entity)
	if err != nil {
		return nil, err
	}

	return store.Fetch(ctx, entity, id)
}

// List implements ports.StorageEngine.
func (e *Engine) List(ctx context.Context, entity string) ([]*domain.Record, error) {
	store, err := e.route(entity)
	if err != nil {
		return nil, err
	}

	return store.List(ctx, entity)
}

type batch struct {
	store   ports.Store
	changes []domain.Change
	undo    []domain.Change
}

// Commit groups changes by hosting store and commits each group in
// description order. Each group is atomic in its store. When a later group
// fails, the groups already committed are reverted from the records they
// replaced; if a revert fails too, the error is a *domain.PartialCommitError
// listing what stayed durable. Routing errors abort before any store is
// touched.
func (e *Engine) Commit(ctx context.Context, changes []domain.Change) error {
	if len(changes) == 0 {
		return nil
	}

	batches, err := e.group(changes)
	if err != nil {
		return err
	}

	// The last group is never reverted.
	for _, b := range batches[:len(batches)-1] {
		if err := b.prepareUndo(ctx); err != nil {
			return err
		}
	}

	for i, b := range batches {
		if err := b.store.Commit(ctx, b.changes); err != nil {
			return e.revert(ctx, batches[:i], err)
		}
	}

	return nil
}

// group splits changes into per-store batches ordered like the descriptions.
func (e *Engine) group(changes []domain.Change) ([]*batch, error) {
	byStore := make(map[string]*batch)

	var batches []*batch
	for _, ch := range changes {
		store, err := e.route(ch.Record.Entity)
		if err != nil {
			return nil, err
		}

		name := store.Description().Name
		b, ok := byStore[name]
		if !ok {
			b = &batch{store: store}
			byStore[name] = b
			batches = append(batches, b)
		}
		b.changes = append(b.changes, ch)
	}

	e.mu.RLock()
	position := make(map[string]int, len(e.descs))
	for i, d := range e.descs {
		position[d.Name] = i
	}
	e.mu.RUnlock()

	slices.SortStableFunc(batches, func(a, b *batch) int {
		return position[a.store.Description().Name] - position[b.store.Description().Name]
	})

	return batches, nil
}

// prepareUndo reads the records b is about to replace and builds the changes
// that restore them. A record that is already missing makes the commit itself
// fail, so it needs no undo.
func (b *batch) prepareUndo(ctx context.Context) error {
	b.undo = make([]domain.Change, 0, len(b.changes))

	for _, ch := range b.changes {
		rec := ch.Record

		if ch.Op == domain.OpInsert {
			b.undo = append(b.undo, domain.Change{Op: domain.OpDelete, Record: &domain.Record{Entity: rec.Entity, ID: rec.ID}})
			continue
		}

		prev, err := b.store.Fetch(ctx, rec.Entity, rec.ID)
		if domain.IsNotFound(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s before commit: %w", rec.Key(), err)
		}

		op := domain.OpUpdate
		if ch.Op == domain.OpDelete {
			op = domain.OpInsert
		}
		b.undo = append(b.undo, domain.Change{Op: op, Record: prev})
	}

	return nil
}

// revert undoes committed batches newest first and returns cause, or a
// *domain.PartialCommitError when some of them could not be undone.
func (e *Engine) revert(ctx context.Context, committed []*batch, cause error) error {
	ctx = context.WithoutCancel(ctx)

	for i := len(committed) - 1; i >= 0; i-- {
		b := committed[i]
		if len(b.undo) == 0 {
			continue
		}

		if err := b.store.Commit(ctx, b.undo); err != nil {
			e.logger.ErrorContext(ctx, "reverting partial commit failed",
				slog.String("store", b.store.Name()),
				slog.String("error", err.Error()),
			)

			var durable []domain.Change
			for _, kept := range committed[:i+1] {
				durable = append(durable, kept.changes...)
			}

			return &domain.PartialCommitError{Committed: durable, Cause: cause}
		}

		e.logger.WarnContext(ctx, "reverted partial commit",
			slog.String("store", b.store.Name()),
			slog.Int("changes", len(b.changes)),
		)
	}

	return cause
}

// Close closes every loaded store. Later operations report ErrUnavailable.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	var errs []error
	for _, d := range e.descs {
		if s, ok := e.stores[d.Name]; ok {
			if err := s.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", s.Name(), err))
			}
		}
	}
	clear(e.stores)

	return errors.Join(errs...)
}

var _ ports.StorageEngine = (*Engine)(nil)
