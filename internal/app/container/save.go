package container

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/go-container-controller/internal/domain"
)

const instrumentationName = "github.com/jsamuelsen/go-container-controller/container"

// SaveResult is the outcome of a save: SaveSuccess or SaveError.
type SaveResult interface {
	saveResult()
}

// SaveSuccess reports that every staged change was committed, or that there
// was nothing to commit.
type SaveSuccess struct{}

func (SaveSuccess) saveResult() {}

// SaveError reports a failed save. The context's staged changes are left as
// they were before the save, except changes a store could not undo after a
// partial multi-store commit, which are no longer staged.
type SaveError struct {
	Cause error
}

func (SaveError) saveResult() {}

// Error implements the error interface.
func (e SaveError) Error() string {
	return "save failed: " + e.Cause.Error()
}

// Unwrap returns the underlying cause.
func (e SaveError) Unwrap() error {
	return e.Cause
}

// SaveErrorAction selects what happens to a context after a failed save.
type SaveErrorAction int

const (
	// SaveErrorActionRollback discards the context's staged changes.
	SaveErrorActionRollback SaveErrorAction = iota

	// SaveErrorActionNone leaves the staged changes in place.
	SaveErrorActionNone
)

// String returns the action name used in logs and metrics.
func (a SaveErrorAction) String() string {
	switch a {
	case SaveErrorActionRollback:
		return "rollback"
	case SaveErrorActionNone:
		return "none"
	default:
		return fmt.Sprintf("SaveErrorAction(%d)", int(a))
	}
}

// PanicError is the cause reported when a task panics.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Save commits the staged changes of wc. A context without changes succeeds
// without touching the engine. On failure the staged changes stay in place
// unless the engine reports some of them as durable anyway.
func Save(ctx context.Context, wc *WorkContext) SaveResult {
	changes, seq := wc.snapshot()
	if len(changes) == 0 {
		wc.metrics.saved(saveResultNoop, 0)
		return SaveSuccess{}
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "workcontext.save",
		trace.WithAttributes(
			attribute.String("workcontext.name", wc.name),
			attribute.String("workcontext.id", wc.id),
			attribute.Int("workcontext.changes", len(changes)),
		),
	)
	defer span.End()

	start := time.Now()

	err := domain.ValidateChanges(changes)
	if err == nil {
		err = wc.engine.Commit(ctx, changes)
	}

	if err != nil {
		var partial *domain.PartialCommitError
		if errors.As(err, &partial) {
			wc.markCommitted(partial.Committed, seq)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		wc.metrics.saved(saveResultError, time.Since(start))

		return SaveError{Cause: err}
	}

	wc.markSaved(changes, seq)
	wc.metrics.saved(saveResultSuccess, time.Since(start))

	return SaveSuccess{}
}

// Task mutates a context. It runs on the context's queue and is followed by a
// save.
type Task func(ctx context.Context, wc *WorkContext)

type taskConfig struct {
	action     SaveErrorAction
	completion func(SaveResult)
}

// TaskOption configures a background task.
type TaskOption func(*taskConfig)

// WithErrorAction sets what happens to staged changes when the save fails.
// The default is SaveErrorActionRollback.
func WithErrorAction(action SaveErrorAction) TaskOption {
	return func(c *taskConfig) {
		c.action = action
	}
}

// WithCompletion sets a callback invoked exactly once with the save result,
// after any rollback. It runs on the context's queue.
func WithCompletion(fn func(SaveResult)) TaskOption {
	return func(c *taskConfig) {
		c.completion = fn
	}
}

// performAndSave enqueues task followed by a save on wc's queue and returns
// immediately. The job ignores cancellation of ctx.
func performAndSave(ctx context.Context, wc *WorkContext, task Task, opts ...TaskOption) {
	cfg := taskConfig{action: SaveErrorActionRollback}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx = context.WithoutCancel(ctx)

	wc.queue.submit(func() {
		result := runAndSave(ctx, wc, task)

		if _, failed := result.(SaveError); failed && cfg.action == SaveErrorActionRollback {
			wc.Rollback()
			wc.metrics.rolledBack()
		}

		if cfg.completion != nil {
			cfg.completion(result)
		}
	})
}

func runAndSave(ctx context.Context, wc *WorkContext, task Task) (result SaveResult) {
	defer func() {
		if v := recover(); v != nil {
			result = SaveError{Cause: &PanicError{Value: v, Stack: debug.Stack()}}
		}
	}()

	task(ctx, wc)

	return Save(ctx, wc)
}
