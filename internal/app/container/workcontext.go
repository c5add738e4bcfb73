package container

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// MainContextName is the name of the controller's main context.
const MainContextName = "main"

type stagedChange struct {
	change domain.Change
	seq    uint64
}

// WorkContext is an isolated unit of work. Mutations are staged in memory
// and only reach the storage engine when the context is saved.
//
// Every context owns a serial queue. Work submitted through Perform,
// PerformAndWait or the controller's background tasks runs on that queue one
// job at a time. The staging methods are safe for concurrent use, but a save
// only sees a consistent batch when mutations and the save share the queue.
type WorkContext struct {
	id      string
	name    string
	engine  ports.StorageEngine
	queue   *serialQueue
	metrics *Metrics

	mu     sync.Mutex
	seq    uint64
	order  []domain.RecordKey
	staged map[domain.RecordKey]stagedChange
}

func newWorkContext(name string, engine ports.StorageEngine, metrics *Metrics) *WorkContext {
	return &WorkContext{
		id:      uuid.NewString(),
		name:    name,
		engine:  engine,
		queue:   &serialQueue{metrics: metrics},
		metrics: metrics,
		staged:  make(map[domain.RecordKey]stagedChange),
	}
}

// ID uniquely identifies this context instance.
func (wc *WorkContext) ID() string {
	return wc.id
}

// Name returns "main" for the main context, or the key a background context
// was created for.
func (wc *WorkContext) Name() string {
	return wc.name
}

// Perform runs fn on the context's queue and returns immediately.
func (wc *WorkContext) Perform(fn func(wc *WorkContext)) {
	wc.queue.submit(func() { fn(wc) })
}

// PerformAndWait runs fn on the context's queue and waits for it to return.
// It must not be called from a job already running on the same context.
func (wc *WorkContext) PerformAndWait(fn func(wc *WorkContext)) {
	done := make(chan struct{})
	wc.queue.submit(func() {
		defer close(done)
		fn(wc)
	})
	<-done
}

// Insert stages a new record under a generated ID and returns a copy of it.
func (wc *WorkContext) Insert(entity string, attributes map[string]any) *domain.Record {
	rec := &domain.Record{Entity: entity, ID: uuid.NewString(), Attributes: attributes}
	wc.InsertRecord(rec)

	return rec.Clone()
}

// InsertRecord stages rec as a new record. Inserting over a staged delete
// becomes an update of the stored record.
func (wc *WorkContext) InsertRecord(rec *domain.Record) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	op := domain.OpInsert
	if prev, ok := wc.staged[rec.Key()]; ok && prev.change.Op == domain.OpDelete {
		op = domain.OpUpdate
	}

	wc.stage(op, rec.Clone())
}

// Update stages new attributes for rec. Updating a staged insert keeps it an
// insert; updating over a staged delete replaces the delete.
func (wc *WorkContext) Update(rec *domain.Record) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	op := domain.OpUpdate
	if prev, ok := wc.staged[rec.Key()]; ok && prev.change.Op == domain.OpInsert {
		op = domain.OpInsert
	}

	wc.stage(op, rec.Clone())
}

// Delete stages removal of (entity, id). Deleting a staged insert simply
// drops it.
func (wc *WorkContext) Delete(entity, id string) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	rec := &domain.Record{Entity: entity, ID: id}
	if prev, ok := wc.staged[rec.Key()]; ok && prev.change.Op == domain.OpInsert {
		wc.unstage(rec.Key())
		return
	}

	wc.stage(domain.OpDelete, rec)
}

// stage must be called with wc.mu held.
func (wc *WorkContext) stage(op domain.ChangeOp, rec *domain.Record) {
	key := rec.Key()

	wc.seq++
	if _, ok := wc.staged[key]; ok {
		wc.order = slices.DeleteFunc(wc.order, func(k domain.RecordKey) bool { return k == key })
	}
	wc.order = append(wc.order, key)
	wc.staged[key] = stagedChange{change: domain.Change{Op: op, Record: rec}, seq: wc.seq}
}

// unstage must be called with wc.mu held.
func (wc *WorkContext) unstage(key domain.RecordKey) {
	wc.seq++
	delete(wc.staged, key)
	wc.order = slices.DeleteFunc(wc.order, func(k domain.RecordKey) bool { return k == key })
}

// Fetch returns the record as this context sees it: staged changes first,
// then the committed state in the engine.
func (wc *WorkContext) Fetch(ctx context.Context, entity, id string) (*domain.Record, error) {
	wc.mu.Lock()
	s, ok := wc.staged[domain.RecordKey{Entity: entity, ID: id}]
	wc.mu.Unlock()

	if ok {
		if s.change.Op == domain.OpDelete {
			return nil, domain.NewNotFoundError(entity, id)
		}
		return s.change.Record.Clone(), nil
	}

	return wc.engine.Fetch(ctx, entity, id)
}

// List returns every record of entity as this context sees it, ordered by ID.
func (wc *WorkContext) List(ctx context.Context, entity string) ([]*domain.Record, error) {
	committed, err := wc.engine.List(ctx, entity)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Record, len(committed))
	for _, rec := range committed {
		byID[rec.ID] = rec
	}

	wc.mu.Lock()
	for _, s := range wc.staged {
		rec := s.change.Record
		if rec.Entity != entity {
			continue
		}
		if s.change.Op == domain.OpDelete {
			delete(byID, rec.ID)
			continue
		}
		byID[rec.ID] = rec.Clone()
	}
	wc.mu.Unlock()

	out := slices.Collect(maps.Values(byID))
	slices.SortFunc(out, func(a, b *domain.Record) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return out, nil
}

// HasChanges reports whether any mutation is waiting to be saved.
func (wc *WorkContext) HasChanges() bool {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	return len(wc.staged) > 0
}

// Changes returns copies of the staged changes in staging order.
func (wc *WorkContext) Changes() []domain.Change {
	changes, _ := wc.snapshot()
	return changes
}

// Rollback discards every staged change, returning the context to the last
// saved state.
func (wc *WorkContext) Rollback() {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	wc.seq++
	clear(wc.staged)
	wc.order = nil
}

// snapshot returns the staged changes and the sequence number they reflect.
func (wc *WorkContext) snapshot() ([]domain.Change, uint64) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	changes := make([]domain.Change, 0, len(wc.order))
	for _, key := range wc.order {
		s := wc.staged[key]
		changes = append(changes, domain.Change{Op: s.change.Op, Record: s.change.Record.Clone()})
	}

	return changes, wc.seq
}

// markSaved drops the changes committed from a snapshot taken at seq. Changes
// staged after the snapshot are kept and rebased onto the new committed state.
func (wc *WorkContext) markSaved(saved []domain.Change, seq uint64) {
	wc.settle(saved, seq, true)
}

// markCommitted drops only the snapshot changes in committed, leaving the
// rest of a partly committed snapshot staged.
func (wc *WorkContext) markCommitted(committed []domain.Change, seq uint64) {
	wc.settle(committed, seq, false)
}

func (wc *WorkContext) settle(committed []domain.Change, seq uint64, whole bool) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	ops := make(map[domain.RecordKey]domain.ChangeOp, len(committed))
	for _, ch := range committed {
		ops[ch.Record.Key()] = ch.Op
	}

	for key, s := range wc.staged {
		op, ok := ops[key]

		if s.seq <= seq {
			if whole || ok {
				delete(wc.staged, key)
			}
			continue
		}

		if !ok {
			continue
		}

		switch {
		case op != domain.OpDelete && s.change.Op == domain.OpInsert:
			s.change.Op = domain.OpUpdate
		case op == domain.OpDelete && s.change.Op == domain.OpUpdate:
			s.change.Op = domain.OpInsert
		}
		wc.staged[key] = s
	}

	wc.order = slices.DeleteFunc(wc.order, func(k domain.RecordKey) bool {
		_, ok := wc.staged[k]
		return !ok
	})
}
