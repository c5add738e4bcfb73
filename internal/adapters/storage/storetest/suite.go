// Package storetest provides a conformance suite that every ports.Store
// implementation must pass.
package storetest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// StoreFactory creates a fresh Store for each test. Factories use
// t.TempDir() for on-disk stores and t.Cleanup() for teardown.
type StoreFactory func(t *testing.T) ports.Store

// RunConformanceSuite runs every conformance test against stores built by
// factory. Each test gets its own store.
func RunConformanceSuite(t *testing.T, factory StoreFactory) {
	t.Helper()

	t.Run("InsertThenFetch", func(t *testing.T) { testInsertThenFetch(t, factory(t)) })
	t.Run("DuplicateInsertConflicts", func(t *testing.T) { testDuplicateInsert(t, factory(t)) })
	t.Run("ConcurrentDuplicateInsertsConflict", func(t *testing.T) { testConcurrentDuplicateInsert(t, factory(t)) })
	t.Run("FailedBatchIsAtomic", func(t *testing.T) { testAtomicBatch(t, factory(t)) })
	t.Run("SlashedKeysStayDistinct", func(t *testing.T) { testSlashedKeys(t, factory(t)) })
	t.Run("UpdateAndDelete", func(t *testing.T) { testUpdateAndDelete(t, factory(t)) })
	t.Run("MissingRecords", func(t *testing.T) { testMissing(t, factory(t)) })
	t.Run("ListOrdersByID", func(t *testing.T) { testList(t, factory(t)) })
	t.Run("HealthyUntilClosed", func(t *testing.T) { testHealth(t, factory(t)) })
}

func note(id, title string) *domain.Record {
	return &domain.Record{Entity: "note", ID: id, Attributes: map[string]any{"title": title}}
}

func insert(rec *domain.Record) domain.Change {
	return domain.Change{Op: domain.OpInsert, Record: rec}
}

func testInsertThenFetch(t *testing.T, store ports.Store) {
	ctx := t.Context()

	require.NoError(t, store.Commit(ctx, []domain.Change{insert(note("n1", "first"))}))

	got, err := store.Fetch(ctx, "note", "n1")
	require.NoError(t, err)
	assert.Equal(t, "note", got.Entity)
	assert.Equal(t, "n1", got.ID)
	assert.Equal(t, "first", got.Attributes["title"])
}

func testDuplicateInsert(t *testing.T, store ports.Store) {
	ctx := t.Context()

	require.NoError(t, store.Commit(ctx, []domain.Change{insert(note("n1", "first"))}))

	err := store.Commit(ctx, []domain.Change{insert(note("n1", "again"))})
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := store.Fetch(ctx, "note", "n1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Attributes["title"])
}

func testConcurrentDuplicateInsert(t *testing.T, store ports.Store) {
	const writers = 8

	var (
		wg   sync.WaitGroup
		errs = make([]error, writers)
	)
	for i := range writers {
		wg.Go(func() {
			errs[i] = store.Commit(t.Context(), []domain.Change{insert(note("n1", fmt.Sprintf("writer %d", i)))})
		})
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)
}

func testSlashedKeys(t *testing.T, store ports.Store) {
	ctx := t.Context()

	require.NoError(t, store.Commit(ctx, []domain.Change{
		insert(&domain.Record{Entity: "a/b", ID: "c", Attributes: map[string]any{"v": "nested"}}),
		insert(&domain.Record{Entity: "a", ID: "b/c", Attributes: map[string]any{"v": "flat"}}),
	}))

	nested, err := store.Fetch(ctx, "a/b", "c")
	require.NoError(t, err)
	assert.Equal(t, "nested", nested.Attributes["v"])

	flat, err := store.Fetch(ctx, "a", "b/c")
	require.NoError(t, err)
	assert.Equal(t, "flat", flat.Attributes["v"])

	list, err := store.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b/c", list[0].ID)
}

func testAtomicBatch(t *testing.T, store ports.Store) {
	ctx := t.Context()

	require.NoError(t, store.Commit(ctx, []domain.Change{insert(note("n1", "first"))}))

	err := store.Commit(ctx, []domain.Change{
		insert(note("n2", "second")),
		insert(note("n1", "duplicate")),
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = store.Fetch(ctx, "note", "n2")
	assert.ErrorIs(t, err, domain.ErrNotFound, "first change of a failed batch must not persist")
}

func testUpdateAndDelete(t *testing.T, store ports.Store) {
	ctx := t.Context()

	require.NoError(t, store.Commit(ctx, []domain.Change{
		insert(note("n1", "first")),
		insert(note("n2", "second")),
	}))

	require.NoError(t, store.Commit(ctx, []domain.Change{
		{Op: domain.OpUpdate, Record: note("n1", "edited")},
		{Op: domain.OpDelete, Record: &domain.Record{Entity: "note", ID: "n2"}},
	}))

	got, err := store.Fetch(ctx, "note", "n1")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Attributes["title"])

	_, err = store.Fetch(ctx, "note", "n2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testMissing(t *testing.T, store ports.Store) {
	ctx := t.Context()

	_, err := store.Fetch(ctx, "note", "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = store.Commit(ctx, []domain.Change{{Op: domain.OpUpdate, Record: note("nope", "x")}})
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = store.Commit(ctx, []domain.Change{{Op: domain.OpDelete, Record: note("nope", "")}})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func testList(t *testing.T, store ports.Store) {
	ctx := t.Context()

	require.NoError(t, store.Commit(ctx, []domain.Change{
		insert(note("b", "2")),
		insert(note("a", "1")),
		insert(&domain.Record{Entity: "tag", ID: "t1"}),
	}))

	notes, err := store.List(ctx, "note")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "a", notes[0].ID)
	assert.Equal(t, "b", notes[1].ID)

	empty, err := store.List(ctx, "user")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testHealth(t *testing.T, store ports.Store) {
	ctx := t.Context()

	assert.NotEmpty(t, store.Name())
	require.NoError(t, store.Check(ctx))
	require.NoError(t, store.Close())
	assert.Error(t, store.Check(ctx))
}
