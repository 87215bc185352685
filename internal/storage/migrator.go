package storage

import (
	"context"
	"database/sql"
	"fmt"

	"vanilla-bot/internal/storage/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator applies the embedded journal migrations to a Postgres database.
type Migrator struct {
	provider *goose.Provider
	logger   *zap.Logger
}

func NewMigrator(db *sql.DB, logger *zap.Logger) (*Migrator, error) {
	const operation = "storage.NewMigrator"

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create provider: %w", operation, err)
	}

	return &Migrator{provider: provider, logger: logger}, nil
}

// Sources lists the embedded migrations in version order.
func (m *Migrator) Sources() []*goose.Source {
	return m.provider.ListSources()
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	const operation = "storage.Migrator.Up"

	m.logger.Info("Running database migrations...")

	results, err := m.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", operation, err)
	}

	for _, r := range results {
		m.logger.Info("Migration applied",
			zap.Int64("version", r.Source.Version),
			zap.String("path", r.Source.Path),
			zap.Duration("duration", r.Duration))
	}

	m.logger.Info("Database migrations completed successfully", zap.Int("applied", len(results)))
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	const operation = "storage.Migrator.Down"

	m.logger.Info("Rolling back last migration...")

	result, err := m.provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to rollback migration: %w", operation, err)
	}

	m.logger.Info("Migration rollback completed",
		zap.Int64("version", result.Source.Version),
		zap.String("path", result.Source.Path))
	return nil
}

func (m *Migrator) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	const operation = "storage.Migrator.Status"

	status, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to check migration status: %w", operation, err)
	}
	return status, nil
}

// RunMigrations brings db up to the latest journal schema.
func RunMigrations(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	m, err := NewMigrator(db, logger)
	if err != nil {
		return err
	}
	return m.Up(ctx)
}
