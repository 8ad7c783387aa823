package storage

// v001KVAndAuditLog creates the key/value table and the write audit log.
var v001KVAndAuditLog = migration{
	Version: 1,
	Name:    "kv_and_audit_log",
	Statements: []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS audit_log (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			action    TEXT NOT NULL CHECK (action IN ('set', 'delete')),
			key       TEXT NOT NULL,
			byte_size INTEGER NOT NULL DEFAULT 0,
			ts        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_kv_updated_at ON kv(updated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_log_ts  ON audit_log(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_log_key ON audit_log(key)`,
	},
}
