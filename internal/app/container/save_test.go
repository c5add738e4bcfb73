package container

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/go-container-controller/internal/adapters/storage"
	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/mocks"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

func TestSave_NoChangesSkipsEngine(t *testing.T) {
	// The mock fails the test if any engine method is called.
	engine := mocks.NewMockStorageEngine(t)
	wc := newWorkContext("test", engine, nil)

	assert.Equal(t, SaveSuccess{}, Save(t.Context(), wc))
}

func TestSave_CommitsAndClearsChanges(t *testing.T) {
	engine := mocks.NewMockStorageEngine(t)
	wc := newWorkContext("test", engine, nil)
	wc.InsertRecord(note("1", "a"))

	engine.EXPECT().Commit(mock.Anything, mock.MatchedBy(func(changes []domain.Change) bool {
		return len(changes) == 1 && changes[0].Op == domain.OpInsert && changes[0].Record.ID == "1"
	})).Return(nil).Once()

	assert.Equal(t, SaveSuccess{}, Save(t.Context(), wc))
	assert.False(t, wc.HasChanges())
}

func TestSave_FailureKeepsChanges(t *testing.T) {
	boom := domain.NewDuplicateError("note", "1")
	engine := mocks.NewMockStorageEngine(t)
	wc := newWorkContext("test", engine, nil)
	wc.InsertRecord(note("1", "a"))

	engine.EXPECT().Commit(mock.Anything, mock.Anything).Return(boom).Once()

	result := Save(t.Context(), wc)

	var failed SaveError
	require.ErrorAs(t, result.(error), &failed)
	require.ErrorIs(t, failed, domain.ErrConflict)
	assert.True(t, wc.HasChanges())
}

func TestSave_InvalidRecordNeverReachesEngine(t *testing.T) {
	engine := mocks.NewMockStorageEngine(t)
	wc := newWorkContext("test", engine, nil)
	wc.InsertRecord(&domain.Record{Entity: "", ID: "1"})

	result := Save(t.Context(), wc)

	require.IsType(t, SaveError{}, result)
	assert.ErrorIs(t, result.(SaveError), domain.ErrValidation)
}

func TestPerformBackgroundTaskAndSave_Success(t *testing.T) {
	c := newTestController(t)

	result := runTask(t, c.Controller, "group1", func(_ context.Context, wc *WorkContext) {
		wc.InsertRecord(note("n1", "hello"))
	})

	assert.Equal(t, SaveSuccess{}, result)

	got, err := c.Engine().Fetch(t.Context(), "note", "n1")
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Attributes["title"])
}

func TestPerformBackgroundTaskAndSave_ErrorActions(t *testing.T) {
	tests := []struct {
		name        string
		opts        []TaskOption
		wantChanges bool
	}{
		{"default rolls back", nil, false},
		{"explicit rollback", []TaskOption{WithErrorAction(SaveErrorActionRollback)}, false},
		{"none keeps failed changes", []TaskOption{WithErrorAction(SaveErrorActionNone)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t)
			wc := c.BackgroundContext("group")

			require.Equal(t, SaveSuccess{}, runTask(t, c.Controller, "group", func(_ context.Context, wc *WorkContext) {
				wc.InsertRecord(note("dup", "first"))
			}))

			var staged bool
			completion := func(r SaveResult) {
				// Rollback, when requested, is applied before completion.
				staged = wc.HasChanges()
			}

			result := runTask(t, c.Controller, "group", func(_ context.Context, wc *WorkContext) {
				wc.InsertRecord(note("fresh", "ok"))
				wc.InsertRecord(note("dup", "second"))
			}, append(tt.opts, WithCompletion(completion))...)

			require.IsType(t, SaveError{}, result)
			assert.ErrorIs(t, result.(SaveError), domain.ErrConflict)
			assert.Equal(t, tt.wantChanges, wc.HasChanges())
			assert.Equal(t, tt.wantChanges, staged)

			// The failed batch was atomic.
			_, err := c.Engine().Fetch(t.Context(), "note", "fresh")
			assert.ErrorIs(t, err, domain.ErrNotFound)

			runtime.KeepAlive(wc)
		})
	}
}

func TestPerformBackgroundTaskAndSave_FailureAcrossStores(t *testing.T) {
	tests := []struct {
		name   string
		action SaveErrorAction
	}{
		{"rollback", SaveErrorActionRollback},
		{"none", SaveErrorActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := storage.NewEngine(
				[]ports.StoreDescription{memoryStore("a", "task"), memoryStore("b")},
				storage.WithLogger(quietLogger()),
			)
			require.NoError(t, err)

			c := newTestController(t, WithEngine(engine))
			ctx := t.Context()
			require.NoError(t, engine.Commit(ctx, []domain.Change{{Op: domain.OpInsert, Record: note("dup", "stored")}}))

			wc := c.BackgroundContext("group")
			result := runTask(t, c.Controller, "group", func(_ context.Context, wc *WorkContext) {
				wc.InsertRecord(&domain.Record{Entity: "task", ID: "t1"})
				wc.InsertRecord(note("dup", "again"))
			}, WithErrorAction(tt.action))

			require.IsType(t, SaveError{}, result)
			assert.ErrorIs(t, result.(SaveError), domain.ErrConflict)

			// The store that committed first was reverted.
			_, err = engine.Fetch(ctx, "task", "t1")
			require.ErrorIs(t, err, domain.ErrNotFound)

			if tt.action == SaveErrorActionRollback {
				assert.False(t, wc.HasChanges())
				return
			}

			assert.Len(t, wc.Changes(), 2)

			require.NoError(t, engine.Commit(ctx, []domain.Change{{Op: domain.OpDelete, Record: note("dup", "")}}))
			require.Equal(t, SaveSuccess{}, runTask(t, c.Controller, "group", func(context.Context, *WorkContext) {}))

			_, err = engine.Fetch(ctx, "task", "t1")
			require.NoError(t, err)
			runtime.KeepAlive(wc)
		})
	}
}

func TestSave_PartialCommitDropsDurableChanges(t *testing.T) {
	engine := mocks.NewMockStorageEngine(t)
	wc := newWorkContext("test", engine, nil)
	task := &domain.Record{Entity: "task", ID: "t1"}
	wc.InsertRecord(task)
	wc.InsertRecord(note("dup", "again"))

	engine.EXPECT().Commit(mock.Anything, mock.Anything).Return(&domain.PartialCommitError{
		Committed: []domain.Change{{Op: domain.OpInsert, Record: task}},
		Cause:     domain.NewDuplicateError("note", "dup"),
	}).Once()

	result := Save(t.Context(), wc)

	require.IsType(t, SaveError{}, result)
	assert.ErrorIs(t, result.(SaveError), domain.ErrConflict)

	changes := wc.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, domain.RecordKey{Entity: "note", ID: "dup"}, changes[0].Record.Key())
}

func TestPerformBackgroundTaskAndSave_CompletionCalledOnce(t *testing.T) {
	c := newTestController(t)

	var (
		mu    sync.Mutex
		calls int
	)
	done := make(chan struct{})

	c.PerformBackgroundTaskAndSave(t.Context(), "group", func(_ context.Context, wc *WorkContext) {
		wc.InsertRecord(note("1", "a"))
	}, WithCompletion(func(SaveResult) {
		mu.Lock()
		calls++
		mu.Unlock()
	}))
	// A second task on the same key runs after the first one's completion.
	c.PerformBackgroundTaskAndSave(t.Context(), "group", func(context.Context, *WorkContext) {}, WithCompletion(func(SaveResult) {
		close(done)
	}))
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestPerformBackgroundTaskAndSave_PanicIsReported(t *testing.T) {
	c := newTestController(t)
	wc := c.BackgroundContext("group")

	result := runTask(t, c.Controller, "group", func(_ context.Context, wc *WorkContext) {
		wc.InsertRecord(note("1", "a"))
		panic("boom")
	})

	require.IsType(t, SaveError{}, result)

	var panicErr *PanicError
	require.ErrorAs(t, result.(SaveError), &panicErr)
	assert.Equal(t, "boom", panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
	assert.False(t, wc.HasChanges(), "default rollback applies to panics")
	assert.Zero(t, c.engine.commits())

	// The queue keeps running.
	assert.Equal(t, SaveSuccess{}, runTask(t, c.Controller, "group", func(_ context.Context, wc *WorkContext) {
		wc.InsertRecord(note("2", "b"))
	}))

	runtime.KeepAlive(wc)
}

func TestPerformBackgroundTaskAndSave_IgnoresCallerCancellation(t *testing.T) {
	c := newTestController(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	done := make(chan error, 1)
	c.PerformBackgroundTaskAndSave(ctx, "group", func(ctx context.Context, wc *WorkContext) {
		done <- ctx.Err()
		wc.InsertRecord(note("1", "a"))
	}, WithCompletion(func(r SaveResult) {
		assert.Equal(t, SaveSuccess{}, r)
	}))

	assert.NoError(t, <-done)
}

func TestPerformBackgroundTaskAndSave_SavesInSubmissionOrder(t *testing.T) {
	c := newTestController(t)
	wc := c.BackgroundContext("ordered")

	const n = 50

	var wg sync.WaitGroup
	wg.Add(n)

	want := make([]string, 0, n)
	for i := range n {
		id := string(rune('A'+i/26)) + string(rune('a'+i%26))
		want = append(want, id)

		c.PerformBackgroundTaskAndSave(t.Context(), "ordered", func(_ context.Context, wc *WorkContext) {
			wc.InsertRecord(note(id, "x"))
		}, WithCompletion(func(r SaveResult) {
			assert.Equal(t, SaveSuccess{}, r)
			wg.Done()
		}))
	}
	wg.Wait()

	assert.Equal(t, want, c.engine.committedIDs())

	runtime.KeepAlive(wc)
}

func TestSaveErrorAction_String(t *testing.T) {
	assert.Equal(t, "rollback", SaveErrorActionRollback.String())
	assert.Equal(t, "none", SaveErrorActionNone.String())
	assert.Equal(t, "SaveErrorAction(7)", SaveErrorAction(7).String())
}

func TestSaveError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := SaveError{Cause: cause}

	assert.Equal(t, "save failed: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}
