package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteKV implements KeyValue and Updater backed by a SQLite database.
type SQLiteKV struct {
	db   *sql.DB
	path string
	owns bool

	// Prepared statements
	getValue    *sql.Stmt
	upsertValue *sql.Stmt
	deleteValue *sql.Stmt
	insertAudit *sql.Stmt
}

// OpenSQLite opens (creating if needed) the database at path, applies
// migrations and returns a KV that closes the database on Close.
func OpenSQLite(path string) (*SQLiteKV, error) {
	dsn := path + "?_txlock=immediate&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection keeps :memory: databases coherent and serializes
	// writers inside the process.
	db.SetMaxOpenConns(1)

	if err := NewMigrationRunner(db).Run(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	kv, err := NewSQLiteKV(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	kv.path = path
	kv.owns = true
	return kv, nil
}

// NewSQLiteKV creates a SQLiteKV from an already-opened and migrated database.
func NewSQLiteKV(db *sql.DB) (*SQLiteKV, error) {
	s := &SQLiteKV{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteKV) prepareStatements() error {
	var err error

	s.getValue, err = s.db.Prepare(`SELECT value FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	s.upsertValue, err = s.db.Prepare(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}

	s.deleteValue, err = s.db.Prepare(`DELETE FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	s.insertAudit, err = s.db.Prepare(`
		INSERT INTO audit_log (action, key, byte_size, ts) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	return nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999999-07:00",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Get returns the value stored under key.
func (s *SQLiteKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.getValue.QueryRowContext(ctx, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key and records the write in the audit log.
func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := s.write(ctx, tx, key, value); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.StmtContext(ctx, s.deleteValue).ExecContext(ctx, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		if _, err := tx.StmtContext(ctx, s.insertAudit).ExecContext(ctx, "delete", key, 0, now()); err != nil {
			return fmt.Errorf("audit delete: %w", err)
		}
	}
	return tx.Commit()
}

// Update runs fn against the current value inside one transaction. The
// connection takes the write lock at BEGIN, so concurrent processes
// serialize on it.
func (s *SQLiteKV) Update(ctx context.Context, key string, fn UpdateFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var current string
	found := true
	err = tx.StmtContext(ctx, s.getValue).QueryRowContext(ctx, key).Scan(&current)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("get %s: %w", key, err)
		}
		found = false
	}

	next, err := fn(current, found)
	if err != nil {
		return err
	}

	if err := s.write(ctx, tx, key, next); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteKV) write(ctx context.Context, tx *sql.Tx, key, value string) error {
	ts := now()
	if _, err := tx.StmtContext(ctx, s.upsertValue).ExecContext(ctx, key, value, ts); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if _, err := tx.StmtContext(ctx, s.insertAudit).ExecContext(ctx, "set", key, len(value), ts); err != nil {
		return fmt.Errorf("audit set: %w", err)
	}
	return nil
}

// Stats returns aggregate statistics about the database.
func (s *SQLiteKV) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Backend: "sqlite", Location: s.path}

	var lastWrite sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(LENGTH(value)), 0), MAX(updated_at) FROM kv",
	).Scan(&stats.Keys, &stats.Bytes, &lastWrite)
	if err != nil {
		return nil, fmt.Errorf("kv stats: %w", err)
	}
	if lastWrite.Valid {
		stats.LastWrite, _ = parseTimestamp(lastWrite.String)
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_log").Scan(&stats.AuditEntries)
	if err != nil {
		return nil, fmt.Errorf("count audit entries: %w", err)
	}

	return stats, nil
}

// Close releases all prepared statements. The underlying *sql.DB is closed
// only when it was opened by OpenSQLite.
func (s *SQLiteKV) Close() error {
	stmts := []*sql.Stmt{
		s.getValue, s.upsertValue, s.deleteValue, s.insertAudit,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	if s.owns {
		return s.db.Close()
	}
	return nil
}
