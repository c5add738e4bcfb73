package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/go-container-controller/internal/adapters/storage/badgerstore"
	"github.com/jsamuelsen/go-container-controller/internal/adapters/storage/gormstore"
	"github.com/jsamuelsen/go-container-controller/internal/adapters/storage/memory"
	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// Open opens the store for desc according to its type.
func Open(ctx context.Context, desc ports.StoreDescription, logger *slog.Logger) (ports.Store, error) {
	switch desc.Type {
	case ports.StoreTypeMemory:
		return memory.New(desc), nil
	case ports.StoreTypeSQLite, ports.StoreTypePostgres:
		return gormstore.Open(ctx, desc)
	case ports.StoreTypeBadger:
		return badgerstore.Open(ctx, desc, logger)
	default:
		return nil, domain.NewValidationError("type", fmt.Sprintf("unsupported store type: %q", desc.Type))
	}
}

// Destroy removes the data behind desc according to its type. Memory stores
// hold nothing outside the process and are a no-op.
func Destroy(ctx context.Context, desc ports.StoreDescription) error {
	switch desc.Type {
	case ports.StoreTypeMemory:
		return nil
	case ports.StoreTypeSQLite, ports.StoreTypePostgres:
		return gormstore.Destroy(ctx, desc)
	case ports.StoreTypeBadger:
		return badgerstore.Destroy(desc)
	default:
		return domain.NewValidationError("type", fmt.Sprintf("unsupported store type: %q", desc.Type))
	}
}
