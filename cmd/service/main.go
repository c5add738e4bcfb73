// Package main is the entry point for the container controller service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jsamuelsen/go-container-controller/internal/adapters/http"
	"github.com/jsamuelsen/go-container-controller/internal/adapters/http/handlers"
	"github.com/jsamuelsen/go-container-controller/internal/adapters/storage"
	"github.com/jsamuelsen/go-container-controller/internal/app/container"
	"github.com/jsamuelsen/go-container-controller/internal/platform/config"
	"github.com/jsamuelsen/go-container-controller/internal/platform/lifecycle"
	"github.com/jsamuelsen/go-container-controller/internal/platform/logging"
	"github.com/jsamuelsen/go-container-controller/internal/platform/telemetry"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("container", cfg.Container.Name),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		Insecure:     cfg.Telemetry.Insecure,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// A store that cannot be recreated leaves the service without storage.
	fatal := make(chan error, 1)

	controller, err := container.New(cfg.Container.Name, controllerOptions(ctx, cfg, logger, reg, fatal)...)
	if err != nil {
		return fmt.Errorf("creating controller: %w", err)
	}

	defer func() {
		if closeErr := controller.Close(); closeErr != nil {
			logger.Error("controller close error", slog.Any("error", closeErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(controller.Engine()); err != nil {
		return fmt.Errorf("registering storage health check: %w", err)
	}

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:         logger,
		ServiceName:    cfg.Telemetry.ServiceName,
		HealthHandler:  handlers.NewHealthHandler(healthRegistry, reg, buildInfo),
		RecordsHandler: handlers.NewRecordsHandler(controller),
		Timeout:        http.DefaultRequestTimeout,
	})

	serverErr, err := server.Start()
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	logger.Info("server listening", slog.String("addr", server.Addr()))

	terminated := watchTermination(ctx, cfg.Container.Lifecycle.Signals, logger)

	var (
		runErr error
		posted bool
	)

	select {
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	case err := <-fatal:
		runErr = fmt.Errorf("store load: %w", err)
	case <-terminated:
		// WatchSignals already posted the terminating event.
		posted = cfg.Container.Lifecycle.Signals
	}

	return errors.Join(runErr, shutdown(server, logger, cfg.Server.ShutdownTimeout, !posted))
}

func controllerOptions(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	reg prometheus.Registerer,
	fatal chan<- error,
) []container.Option {
	onFatal := func(err error) {
		select {
		case fatal <- err:
		default:
		}
	}

	opts := []container.Option{
		container.WithStoreDescriptions(storeDescriptions(cfg.Container.Stores)...),
		container.WithEngineFactory(storage.NewFactory(
			storage.WithLogger(logger.With(slog.String("container", cfg.Container.Name))),
		)),
		container.WithLogger(logger),
		container.WithMetrics(container.NewMetrics(reg)),
		container.WithLifecycleSource(lifecycle.Default()),
		container.WithFatalHandler(onFatal),
	}

	if cfg.Container.RecreateOnFailure {
		opts = append(opts, container.WithLoadCompletion(storage.RecreateOnFailure(ctx, logger, onFatal)))
	}

	return opts
}

func storeDescriptions(stores []config.StoreConfig) []ports.StoreDescription {
	descs := make([]ports.StoreDescription, 0, len(stores))
	for _, s := range stores {
		descs = append(descs, ports.StoreDescription{
			Name:     s.Name,
			Type:     ports.StoreType(s.Type),
			Path:     s.Path,
			DSN:      s.DSN,
			Entities: s.Entities,
		})
	}

	return descs
}

// watchTermination returns a channel closed once the process is asked to
// stop. With signals enabled, OS signals also drive the lifecycle notifier so
// SIGUSR1 flushes the main context.
func watchTermination(ctx context.Context, signals bool, logger *slog.Logger) <-chan struct{} {
	done := make(chan struct{})

	if signals {
		go func() {
			defer close(done)
			lifecycle.WatchSignals(ctx, lifecycle.Default(), logger)
		}()

		return done
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer stop()
		<-sigCtx.Done()
		logger.Info("received shutdown signal")
		close(done)
	}()

	return done
}

// shutdown drains the HTTP server, then optionally posts the terminating
// event so the main context is flushed before the deferred Close.
func shutdown(server *http.Server, logger *slog.Logger, timeout time.Duration, postTerminating bool) error {
	logger.Info("initiating graceful shutdown", slog.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		err = fmt.Errorf("server shutdown: %w", err)
	}

	if postTerminating {
		lifecycle.Default().Post(ports.EventTerminating)
	}

	logger.Info("shutdown complete")

	return err
}
