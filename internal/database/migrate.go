package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"

	"github.com/jmoiron/sqlx"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version VARCHAR(255) NOT NULL PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// MigrationFiles returns the migration files of a driver in fsys, in the order they apply.
func MigrationFiles(fsys fs.FS, driver string) ([]string, error) {
	files, err := fs.Glob(fsys, path.Join("migrations", driver, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("fs.Glob() > %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migrations found for driver %q", driver)
	}
	sort.Strings(files)
	return files, nil
}

// Migrate applies the migrations of the connection's driver that have not been
// applied yet, each in its own transaction, and returns the applied versions.
func Migrate(ctx context.Context, db *sqlx.DB, fsys fs.FS) ([]string, error) {
	files, err := MigrationFiles(fsys, db.DriverName())
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("db.ExecContext(create schema_migrations) > %w", err)
	}
	var versions []string
	if err := db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(schema_migrations) > %w", err)
	}
	done := make(map[string]struct{}, len(versions))
	for _, v := range versions {
		done[v] = struct{}{}
	}

	var applied []string
	for _, file := range files {
		version := path.Base(file)
		if _, ok := done[version]; ok {
			slog.DebugContext(ctx, "skip applied migration", "version", version)
			continue
		}

		body, err := fs.ReadFile(fsys, file)
		if err != nil {
			return applied, fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}
		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, string(body)); err != nil {
				return fmt.Errorf("tx.ExecContext(%s) > %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), version); err != nil {
				return fmt.Errorf("tx.ExecContext(insert schema_migrations) > %w", err)
			}
			return nil
		}); err != nil {
			return applied, err
		}
		slog.InfoContext(ctx, "applied migration", "version", version)
		applied = append(applied, version)
	}
	return applied, nil
}
