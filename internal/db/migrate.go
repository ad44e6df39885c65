package db

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// dialects maps database/sql driver names to goose dialects.
var dialects = map[string]string{
	"sqlite": "sqlite3",
	"pgx":    "postgres",
}

func getDialect(driver string) string {
	if dialect, ok := dialects[driver]; ok {
		return dialect
	}
	return driver
}

// withGoose configures goose for driver and the embedded migrations, then
// runs fn. goose keeps this configuration globally.
func withGoose(driver string, fn func() error) error {
	if err := goose.SetDialect(getDialect(driver)); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to get migrations directory: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	return fn()
}

// RunMigrations applies every pending migration.
func RunMigrations(db *sql.DB, driver string) error {
	return withGoose(driver, func() error {
		if err := goose.Up(db, "."); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		if version, err := goose.GetDBVersion(db); err == nil {
			slog.Debug("migrations completed", "version", version)
		}
		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(db *sql.DB, driver string) error {
	return withGoose(driver, func() error {
		if err := goose.Down(db, "."); err != nil {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}
		slog.Info("rolled back one migration")
		return nil
	})
}

// Version reports the applied schema version and the newest one embedded
// in the binary.
func Version(db *sql.DB, driver string) (current, latest int64, err error) {
	err = withGoose(driver, func() error {
		migrations, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
		if err != nil {
			return fmt.Errorf("failed to read migrations: %w", err)
		}
		if last, err := migrations.Last(); err == nil {
			latest = last.Version
		}

		current, err = goose.GetDBVersion(db)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		return nil
	})
	return current, latest, err
}
