package dialects

import (
	"fmt"
	"strings"
)

// SQLiteDialect implements SQLite-specific SQL dialect.
type SQLiteDialect struct{}

func init() {
	Register("sqlite", &SQLiteDialect{})
	Register("sqlite3", &SQLiteDialect{})
}

// Name returns "sqlite".
func (d *SQLiteDialect) Name() string {
	return "sqlite"
}

// QuoteIdentifier quotes a SQLite identifier using double quotes.
func (d *SQLiteDialect) QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// UpsertSQL generates SQLite UPSERT syntax using ON CONFLICT.
func (d *SQLiteDialect) UpsertSQL(conflictColumns, updateCols []string) string {
	if len(updateCols) == 0 {
		// No assignable columns means DO NOTHING; a bare DO UPDATE SET
		// would be a syntax error.
		if len(conflictColumns) > 0 {
			return fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", strings.Join(conflictColumns, ", "))
		}
		return " ON CONFLICT DO NOTHING"
	}

	updates := make([]string, len(updateCols))
	for i, col := range updateCols {
		updates[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
	}

	return fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(conflictColumns, ", "),
		strings.Join(updates, ", "))
}

// DefaultKeyword returns NULL: SQLite has no DEFAULT keyword in VALUES rows,
// but NULL on an INTEGER PRIMARY KEY triggers rowid auto-generation.
func (d *SQLiteDialect) DefaultKeyword() string {
	return "NULL"
}

// SupportsReturning reports RETURNING support (SQLite 3.35+).
func (d *SQLiteDialect) SupportsReturning() bool {
	return true
}

// RewritePlaceholders is the identity: SQLite binds with "?".
func (d *SQLiteDialect) RewritePlaceholders(sql string) string {
	return sql
}
