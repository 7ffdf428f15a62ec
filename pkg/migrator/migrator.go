package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/ghuser/itemboard/pkg/logger"
)

// Dialect maps a database/sql driver name to its goose dialect.
func Dialect(driver string) (goose.Dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return goose.DialectPostgres, nil
	case "mysql":
		return goose.DialectMySQL, nil
	case "sqlite3", "sqlite":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported migration driver %q", driver)
	}
}

// RunMigrations applies all pending goose migrations in files against db.
// It uses a goose Provider rather than the package-level goose state, so
// concurrent callers with different databases do not interfere.
func RunMigrations(ctx context.Context, db *sql.DB, driver string, files fs.FS, log logger.Logger) error {
	dialect, err := Dialect(driver)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, db, files)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", "source", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

// MigrationStatus is one migration's applied state.
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

// Status reports every known migration in files and whether it is applied.
func Status(ctx context.Context, db *sql.DB, driver string, files fs.FS) ([]MigrationStatus, error) {
	dialect, err := Dialect(driver)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(dialect, db, files)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}
	out := make([]MigrationStatus, len(statuses))
	for i, s := range statuses {
		out[i] = MigrationStatus{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		}
	}
	return out, nil
}
