package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/neimd2025/web-ndrop-sub000/core/logger"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var MigrationsFS embed.FS

// Migrate applies every not yet recorded migrations/*.sql file in name order,
// all inside one transaction.
func (d *Database) Migrate(ctx context.Context, fsys fs.FS) error {
	matches, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return err
	}
	slices.Sort(matches)

	return d.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				name       VARCHAR PRIMARY KEY,
				applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`); err != nil {
			return fmt.Errorf("sql create schema_migrations: %w", err)
		}

		for _, match := range matches {
			name := strings.TrimSuffix(path.Base(match), ".sql")

			var exists bool
			if err := tx.GetContext(ctx, &exists,
				`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name); err != nil {
				return fmt.Errorf("sql check migration %s: %w", name, err)
			}
			if exists {
				continue
			}

			b, err := fs.ReadFile(fsys, match)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, string(b)); err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
				return fmt.Errorf("sql record migration %s: %w", name, err)
			}
			logger.Info("Database:Migrate:Applied", "name", name)
		}
		return nil
	})
}
