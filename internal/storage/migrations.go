package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// migration is one versioned schema step. Statements run in order inside a
// single transaction.
type migration struct {
	Version    int
	Name       string
	Statements []string
}

// schemaMigrations records which versions have been applied.
const schemaMigrations = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

// MigrationRunner brings a SQLite database up to the latest kv schema.
type MigrationRunner struct {
	db         *sql.DB
	migrations []migration
}

// NewMigrationRunner creates a MigrationRunner with all registered migrations.
func NewMigrationRunner(db *sql.DB) *MigrationRunner {
	ms := []migration{v001KVAndAuditLog, v002AuditLogCap}
	sort.Slice(ms, func(i, j int) bool { return ms[i].Version < ms[j].Version })
	return &MigrationRunner{db: db, migrations: ms}
}

// Latest is the version the runner migrates to.
func (r *MigrationRunner) Latest() int {
	if len(r.migrations) == 0 {
		return 0
	}
	return r.migrations[len(r.migrations)-1].Version
}

// Run applies every pending migration in version order.
func (r *MigrationRunner) Run(ctx context.Context) error {
	// WAL lets the API server read while a CLI invocation writes.
	if _, err := r.db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, schemaMigrations); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := r.pending(ctx)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if err := r.apply(ctx, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// pending lists the migrations not yet recorded. The tracking table must
// exist.
func (r *MigrationRunner) pending(ctx context.Context) ([]migration, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var pending []migration
	for _, m := range r.migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

func (r *MigrationRunner) apply(ctx context.Context, m migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for i, stmt := range m.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	return tx.Commit()
}

// Version returns the highest applied migration version, or 0 before the
// first Run.
func (r *MigrationRunner) Version(ctx context.Context) (int, error) {
	var v sql.NullInt64
	err := r.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&v)
	if err != nil {
		return 0, err
	}
	return int(v.Int64), nil
}
