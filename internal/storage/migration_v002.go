package storage

import "fmt"

// AuditLogCap is how many audit rows the database keeps.
const AuditLogCap = 1000

// v002AuditLogCap trims the audit log to the newest AuditLogCap rows on
// every insert.
var v002AuditLogCap = migration{
	Version: 2,
	Name:    "audit_log_cap",
	Statements: []string{
		fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS trg_audit_log_cap
			AFTER INSERT ON audit_log
			BEGIN
				DELETE FROM audit_log WHERE id <= NEW.id - %d;
			END`, AuditLogCap),
	},
}
