// Package migration versions the SQL schema with goose.
package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"remotcyberhelp/internal/shared/logger"
)

// Status describes one known migration.
type Status struct {
	Version   int64
	Applied   bool
	AppliedAt time.Time
}

// Manager applies and rolls back the schema versions.
type Manager struct {
	provider *goose.Provider
	logger   logger.Interface
}

// NewManager builds a goose provider over the gorm connection. Only the Go
// migrations in this package are considered.
func NewManager(db *gorm.DB, log logger.Interface) (*Manager, error) {
	dialect, err := dialectFor(db.Dialector.Name())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, nil,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(goMigrations(db)...),
		goose.WithSlog(logger.WithComponent("migration.goose")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	return &Manager{
		provider: provider,
		logger:   log.With("component", "migration.manager"),
	}, nil
}

func dialectFor(name string) (goose.Dialect, error) {
	switch name {
	case "postgres":
		return goose.DialectPostgres, nil
	case "mysql":
		return goose.DialectMySQL, nil
	case "sqlite":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("no migration dialect for %q", name)
	}
}

// Up applies all pending versions and returns how many ran.
func (m *Manager) Up(ctx context.Context) (int, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		m.logger.Errorw("migration up failed", "error", err)
		return len(results), fmt.Errorf("migration up failed: %w", err)
	}
	for _, r := range results {
		m.logger.Infow("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return len(results), nil
}

// Down rolls back the most recent version.
func (m *Manager) Down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if err != nil {
		m.logger.Errorw("migration down failed", "error", err)
		return fmt.Errorf("migration down failed: %w", err)
	}
	m.logger.Infow("migration rolled back", "version", result.Source.Version)
	return nil
}

// Reset rolls every version back and reapplies them, leaving empty tables.
func (m *Manager) Reset(ctx context.Context) error {
	if _, err := m.provider.DownTo(ctx, 0); err != nil {
		return fmt.Errorf("migration reset failed: %w", err)
	}
	_, err := m.Up(ctx)
	return err
}

func (m *Manager) Status(ctx context.Context) ([]Status, error) {
	list, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}
	out := make([]Status, 0, len(list))
	for _, s := range list {
		out = append(out, Status{
			Version:   s.Source.Version,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}

func (m *Manager) Version(ctx context.Context) (int64, error) {
	return m.provider.GetDBVersion(ctx)
}

// Close closes the underlying database connection as well.
func (m *Manager) Close() error {
	return m.provider.Close()
}
