// Package store persists clients and payments through gorm. It holds no
// business rules: balance arithmetic lives in the payments package.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clientbook/clientbook/internal/config"
	"github.com/clientbook/clientbook/internal/model"
)

// ErrNotFound is returned when a referenced client or payment does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps a gorm handle. Inside Transaction it wraps the transaction.
type Store struct {
	db *gorm.DB
}

// New wraps an existing gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to the database selected by cfg.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.Driver, err)
	}
	return New(db), nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "sqlite":
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite database path is empty")
		}
		return sqlite.Open(cfg.Path + "?_foreign_keys=on"), nil
	case "postgres":
		return postgres.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Migrate creates or updates the clients and versement tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&model.Client{}, &model.Payment{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn against a Store bound to one database transaction.
// The transaction commits when fn returns nil and rolls back when fn returns
// an error or panics.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
