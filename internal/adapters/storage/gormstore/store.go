// Package gormstore persists records through GORM.
// It supports both SQLite and PostgreSQL backends via the same codebase.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// recordModel is the single table every GORM-backed store uses.
type recordModel struct {
	Entity     string         `gorm:"primaryKey;size:128"`
	ID         string         `gorm:"primaryKey;size:256"`
	Attributes map[string]any `gorm:"serializer:json;type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName pins the table name regardless of naming strategy.
func (recordModel) TableName() string {
	return "records"
}

func toModel(rec *domain.Record) *recordModel {
	return &recordModel{Entity: rec.Entity, ID: rec.ID, Attributes: rec.Attributes}
}

func (m *recordModel) toRecord() *domain.Record {
	return &domain.Record{Entity: m.Entity, ID: m.ID, Attributes: m.Attributes}
}

// Store implements ports.Store on a GORM connection.
type Store struct {
	db   *gorm.DB
	desc ports.StoreDescription
}

// Open connects to the database described by desc and migrates the records
// table. desc.Type must be sqlite or postgres.
func Open(ctx context.Context, desc ports.StoreDescription) (*Store, error) {
	dialector, err := dialectorFor(desc)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if desc.Type == ports.StoreTypeSQLite {
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY
		// between concurrent commits from different work contexts.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying database: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.WithContext(ctx).AutoMigrate(&recordModel{}); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to run database migration: %w", err)
	}

	return &Store{db: db, desc: desc}, nil
}

func dialectorFor(desc ports.StoreDescription) (gorm.Dialector, error) {
	switch desc.Type {
	case ports.StoreTypeSQLite:
		if desc.Path == "" {
			return nil, domain.NewValidationError("path", "sqlite path is required")
		}
		if err := os.MkdirAll(filepath.Dir(desc.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		// - journal_mode(WAL): concurrent readers with a single writer
		// - busy_timeout(5000): wait up to 5 seconds when the database is locked
		dsn := desc.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		return sqlite.Open(dsn), nil

	case ports.StoreTypePostgres:
		if desc.DSN == "" {
			return nil, domain.NewValidationError("dsn", "postgres dsn is required")
		}
		return postgres.Open(desc.DSN), nil

	default:
		return nil, domain.NewValidationError("type", fmt.Sprintf("unsupported database type: %s", desc.Type))
	}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return string(s.desc.Type) + ":" + s.desc.Name
}

// Check pings the database.
func (s *Store) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// Description implements ports.Store.
func (s *Store) Description() ports.StoreDescription {
	return s.desc
}

// Fetch implements ports.Store.
func (s *Store) Fetch(ctx context.Context, entity, id string) (*domain.Record, error) {
	var m recordModel

	err := s.db.WithContext(ctx).Where("entity = ? AND id = ?", entity, id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError(entity, id)
	}
	if err != nil {
		return nil, err
	}

	return m.toRecord(), nil
}

// List implements ports.Store.
func (s *Store) List(ctx context.Context, entity string) ([]*domain.Record, error) {
	var models []recordModel

	if err := s.db.WithContext(ctx).Where("entity = ?", entity).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.Record, 0, len(models))
	for i := range models {
		out = append(out, models[i].toRecord())
	}

	return out, nil
}

// Commit applies all changes inside one database transaction.
func (s *Store) Commit(ctx context.Context, changes []domain.Change) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ch := range changes {
			if err := apply(tx, ch); err != nil {
				return err
			}
		}
		return nil
	})
}

func apply(tx *gorm.DB, ch domain.Change) error {
	rec := ch.Record
	where := tx.Where("entity = ? AND id = ?", rec.Entity, rec.ID)

	switch ch.Op {
	case domain.OpInsert:
		err := tx.Create(toModel(rec)).Error
		if isDuplicateKey(err) {
			return domain.NewDuplicateError(rec.Entity, rec.ID)
		}
		return err

	case domain.OpUpdate:
		var existing recordModel
		err := where.Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError(rec.Entity, rec.ID)
		}
		if err != nil {
			return err
		}
		existing.Attributes = rec.Attributes
		return tx.Save(&existing).Error

	case domain.OpDelete:
		res := where.Delete(&recordModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFoundError(rec.Entity, rec.ID)
		}
		return nil

	default:
		return domain.NewValidationError("op", "unsupported operation "+string(ch.Op))
	}
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Destroy removes the data behind desc. SQLite files (with their WAL and
// shared-memory side files) are deleted; on PostgreSQL the records table is
// dropped. The store must not be open.
func Destroy(ctx context.Context, desc ports.StoreDescription) error {
	switch desc.Type {
	case ports.StoreTypeSQLite:
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(desc.Path + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("removing %s: %w", desc.Path+suffix, err)
			}
		}
		return nil

	case ports.StoreTypePostgres:
		db, err := gorm.Open(postgres.Open(desc.DSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer closeDB(db)

		return db.WithContext(ctx).Migrator().DropTable(&recordModel{})

	default:
		return domain.NewValidationError("type", fmt.Sprintf("unsupported database type: %s", desc.Type))
	}
}

// isDuplicateKey reports a primary key violation. Dialects that translate
// errors return gorm.ErrDuplicatedKey; the rest are matched on the driver
// message.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
