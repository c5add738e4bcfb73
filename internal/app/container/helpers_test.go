package container

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/go-container-controller/internal/adapters/storage"
	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/platform/lifecycle"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func memoryStore(name string, entities ...string) ports.StoreDescription {
	return ports.StoreDescription{Name: name, Type: ports.StoreTypeMemory, Entities: entities}
}

// recordingEngine wraps a real engine and records every commit batch.
type recordingEngine struct {
	ports.StorageEngine

	mu      sync.Mutex
	batches [][]domain.Change
}

func (e *recordingEngine) Commit(ctx context.Context, changes []domain.Change) error {
	e.mu.Lock()
	e.batches = append(e.batches, changes)
	e.mu.Unlock()

	return e.StorageEngine.Commit(ctx, changes)
}

func (e *recordingEngine) commits() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.batches)
}

func (e *recordingEngine) committedIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var ids []string
	for _, batch := range e.batches {
		for _, ch := range batch {
			ids = append(ids, ch.Record.ID)
		}
	}

	return ids
}

type testController struct {
	*Controller

	engine   *recordingEngine
	notifier *lifecycle.Notifier
}

// newTestController builds a controller over in-memory stores and waits until
// they are loaded. A load failure fails the test.
func newTestController(t *testing.T, opts ...Option) *testController {
	t.Helper()

	inner, err := storage.NewEngine([]ports.StoreDescription{memoryStore("Test")}, storage.WithLogger(quietLogger()))
	require.NoError(t, err)

	engine := &recordingEngine{StorageEngine: inner}
	notifier := lifecycle.NewNotifier()

	base := []Option{
		WithEngine(engine),
		WithLifecycleSource(notifier),
		WithLogger(quietLogger()),
		WithFatalHandler(func(err error) { t.Errorf("unexpected fatal load error: %v", err) }),
	}

	c, err := New("Test", append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	waitReady(t, c)

	return &testController{Controller: c, engine: engine, notifier: notifier}
}

func waitReady(t *testing.T, c *Controller) {
	t.Helper()

	select {
	case <-c.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("controller did not become ready")
	}
}

// runTask submits a background task and waits for its save result.
func runTask(t *testing.T, c *Controller, key string, task Task, opts ...TaskOption) SaveResult {
	t.Helper()

	done := make(chan SaveResult, 1)
	opts = append(opts, WithCompletion(func(r SaveResult) { done <- r }))
	c.PerformBackgroundTaskAndSave(t.Context(), key, task, opts...)

	select {
	case r := <-done:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("task did not complete")
		return nil
	}
}

func note(id, title string) *domain.Record {
	return &domain.Record{Entity: "note", ID: id, Attributes: map[string]any{"title": title}}
}
