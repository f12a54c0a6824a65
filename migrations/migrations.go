package migrations

import (
	"context"
	"embed"
	"log/slog"
	"sort"
	"strings"

	"court-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql
var files embed.FS

// Apply runs every embedded .sql file not yet recorded in schema_migrations, in name order.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := files.ReadDir(".")
	if err != nil {
		return errs.Wrap(err, "read embedded migrations")
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now())`); err != nil {
		return errs.Wrap(err, "create schema_migrations")
	}

	for _, name := range names {
		var applied bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, name).Scan(&applied); err != nil {
			return errs.Wrapf(err, "check %s", name)
		}
		if applied {
			continue
		}

		body, err := files.ReadFile(name)
		if err != nil {
			return errs.Wrapf(err, "read %s", name)
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return errs.Wrap(err, "begin migration")
		}
		if _, err := tx.Exec(ctx, string(body)); err != nil {
			_ = tx.Rollback(ctx)
			return errs.Wrapf(err, "apply %s", name)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
			_ = tx.Rollback(ctx)
			return errs.Wrapf(err, "record %s", name)
		}
		if err := tx.Commit(ctx); err != nil {
			return errs.Wrapf(err, "commit %s", name)
		}
		slog.Info("migration applied", "file", name)
	}

	return nil
}
