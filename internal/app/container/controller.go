// Package container coordinates work contexts over a storage engine.
//
// A Controller owns the engine, one main context and a registry of background
// contexts keyed by group. Background tasks mutate a context and save it on
// that context's own queue; the main context is saved whenever the process
// enters the background or terminates.
package container

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"weak"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// LoadCompletion is called once per configured store when it finished
// loading. It runs on a loader goroutine.
type LoadCompletion func(engine ports.StorageEngine, desc ports.StoreDescription, err error)

// Controller is the entry point for application code.
type Controller struct {
	name    string
	engine  ports.StorageEngine
	logger  *slog.Logger
	metrics *Metrics
	main    *WorkContext

	mu       sync.Mutex
	contexts *registry

	hooks     *hooks
	ready     chan struct{}
	closeOnce sync.Once
	closeErr  error
}

type options struct {
	descs      []ports.StoreDescription
	completion LoadCompletion
	engine     ports.StorageEngine
	factory    ports.EngineFactory
	source     ports.LifecycleSource
	logger     *slog.Logger
	metrics    *Metrics
	fatal      func(error)
}

// Option configures a Controller.
type Option func(*options)

// WithStoreDescriptions sets the stores the engine factory builds the engine
// from. Without any, the factory picks its default store.
func WithStoreDescriptions(descs ...ports.StoreDescription) Option {
	return func(o *options) {
		o.descs = append(o.descs, descs...)
	}
}

// WithLoadCompletion handles store load results. Without it a failed load is
// fatal.
func WithLoadCompletion(fn LoadCompletion) Option {
	return func(o *options) {
		o.completion = fn
	}
}

// WithEngine uses an existing engine instead of building one from the store
// descriptions. It takes precedence over WithEngineFactory.
func WithEngine(engine ports.StorageEngine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithEngineFactory sets how the engine is built from the store descriptions.
func WithEngineFactory(factory ports.EngineFactory) Option {
	return func(o *options) {
		o.factory = factory
	}
}

// WithLifecycleSource sets where lifecycle events come from. Without one the
// main context is only saved explicitly.
//
// The main context is flushed synchronously on the goroutine delivering the
// event, so an event must never be posted from a job running on the main
// context: the flush would wait on the job that is posting it.
func WithLifecycleSource(source ports.LifecycleSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithFatalHandler replaces the handler for unrecoverable load failures. The
// default logs the error and exits the process.
func WithFatalHandler(fn func(error)) Option {
	return func(o *options) {
		o.fatal = fn
	}
}

// New creates a controller named name, subscribes its lifecycle hooks and
// starts loading every store in the background. Use Ready to wait for the
// loads to finish.
func New(name string, opts ...Option) (*Controller, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	logger := o.logger.With(slog.String("container", name))

	if o.fatal == nil {
		o.fatal = func(err error) {
			logger.Error("unrecoverable store load failure", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	engine := o.engine
	if engine == nil {
		if o.factory == nil {
			return nil, domain.NewValidationError("engine", "an engine or engine factory is required")
		}

		var err error
		if engine, err = o.factory(name, o.descs); err != nil {
			return nil, err
		}
	}

	c := &Controller{
		name:    name,
		engine:  engine,
		logger:  logger,
		metrics: o.metrics,
		main:    newWorkContext(MainContextName, engine, o.metrics),
		ready:   make(chan struct{}),
	}
	c.contexts = newRegistry(c.newBackgroundContext, c.forget)
	c.hooks = subscribeHooks(o.source, c.flushMain)

	go c.load(o.completion, o.fatal)

	return c, nil
}

func (c *Controller) load(completion LoadCompletion, fatal func(error)) {
	defer close(c.ready)

	c.engine.LoadStores(context.Background(), func(desc ports.StoreDescription, err error) {
		c.metrics.storeLoaded(err)

		if err != nil {
			c.logger.Warn("store failed to load",
				slog.String("store", desc.Name),
				slog.String("error", err.Error()),
			)
		} else {
			c.logger.Info("store loaded",
				slog.String("store", desc.Name),
				slog.String("type", string(desc.Type)),
			)
		}

		if completion != nil {
			completion(c.engine, desc, err)
			return
		}

		if err != nil {
			fatal(err)
		}
	})
}

// Name returns the controller name.
func (c *Controller) Name() string {
	return c.name
}

// Ready is closed once every configured store finished loading and its
// completion returned.
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

// Engine returns the storage engine owned by the controller.
func (c *Controller) Engine() ports.StorageEngine {
	return c.engine
}

// MainContext returns the main context. It is the same instance for the
// controller's lifetime.
func (c *Controller) MainContext() *WorkContext {
	return c.main
}

// BackgroundContext returns the live context for key, creating one if there
// is none. Two calls return the same context as long as the caller keeps the
// first one reachable. It is safe for concurrent use.
func (c *Controller) BackgroundContext(key string) *WorkContext {
	c.mu.Lock()
	wc, created := c.contexts.contextFor(key)
	c.mu.Unlock()

	if created {
		c.metrics.contextCreated()
		c.logger.Debug("background context created",
			slog.String("key", key),
			slog.String("context_id", wc.ID()),
		)
	}

	return wc
}

func (c *Controller) newBackgroundContext(key string) *WorkContext {
	return newWorkContext(key, c.engine, c.metrics)
}

func (c *Controller) forget(key string, ptr weak.Pointer[WorkContext]) {
	c.metrics.contextReclaimed()

	c.mu.Lock()
	dropped := c.contexts.drop(key, ptr)
	c.mu.Unlock()

	if dropped {
		c.logger.Debug("background context reclaimed", slog.String("key", key))
	}
}

// PerformBackgroundTaskAndSave runs task on the background context for key,
// then saves it. It returns immediately; tasks for the same key run in
// submission order. On a failed save the staged changes are rolled back
// unless WithErrorAction says otherwise.
func (c *Controller) PerformBackgroundTaskAndSave(ctx context.Context, key string, task Task, opts ...TaskOption) {
	performAndSave(ctx, c.BackgroundContext(key), task, opts...)
}

// flushMain saves the main context on its queue in response to a lifecycle
// event and waits for the save. The result is logged and counted, never
// returned. It must not run from a job on the main context.
func (c *Controller) flushMain(event ports.LifecycleEvent) {
	ctx, span := otel.Tracer(instrumentationName).Start(context.Background(), "container.lifecycle_flush",
		trace.WithAttributes(
			attribute.String("container.name", c.name),
			attribute.String("lifecycle.event", string(event)),
		),
	)
	defer span.End()

	var result SaveResult
	c.main.PerformAndWait(func(wc *WorkContext) {
		result = Save(ctx, wc)
	})

	c.metrics.lifecycleFlushed(event, resultLabel(result))

	if failed, ok := result.(SaveError); ok {
		c.logger.Warn("main context flush failed",
			slog.String("event", string(event)),
			slog.String("error", failed.Cause.Error()),
		)
		return
	}

	c.logger.Debug("main context flushed", slog.String("event", string(event)))
}

// Close unsubscribes the lifecycle hooks and closes the engine once the
// initial store loads have finished. It does not save any context.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.hooks.release()
		<-c.ready
		c.closeErr = c.engine.Close()
	})

	return c.closeErr
}
