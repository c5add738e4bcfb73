package storage

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// RecreateOnFailure returns a load completion that recovers from a store that
// failed to open by destroying its data and adding it again. If the store
// still cannot be opened, fatal is called with the second error.
//
// The returned function blocks until the re-add finished, so a controller
// only reports ready once recovery has run.
func RecreateOnFailure(
	ctx context.Context,
	logger *slog.Logger,
	fatal func(error),
) func(ports.StorageEngine, ports.StoreDescription, error) {
	return func(engine ports.StorageEngine, desc ports.StoreDescription, err error) {
		if err == nil {
			return
		}

		logger.WarnContext(ctx, "store failed to load, recreating",
			slog.String("store", desc.Name),
			slog.String("error", err.Error()),
		)

		if err := engine.DestroyStore(ctx, desc); err != nil {
			fatal(err)
			return
		}

		done := make(chan error, 1)
		engine.AddStore(ctx, desc, func(_ ports.StoreDescription, err error) {
			done <- err
		})

		if err := <-done; err != nil {
			fatal(err)
			return
		}

		logger.InfoContext(ctx, "store recreated", slog.String("store", desc.Name))
	}
}
