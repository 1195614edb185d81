package dialects

import (
	"fmt"
	"strings"
)

// MySQLDialect implements MySQL-specific SQL dialect.
type MySQLDialect struct{}

func init() {
	Register("mysql", &MySQLDialect{})
}

// Name returns "mysql".
func (d *MySQLDialect) Name() string {
	return "mysql"
}

// QuoteIdentifier quotes a MySQL identifier using backticks.
func (d *MySQLDialect) QuoteIdentifier(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// UpsertSQL generates MySQL UPSERT syntax using ON DUPLICATE KEY UPDATE.
// MySQL determines the conflict from PRIMARY KEY and UNIQUE keys, so the
// conflict column list is not emitted.
func (d *MySQLDialect) UpsertSQL(_, updateCols []string) string {
	if len(updateCols) == 0 {
		// MySQL has no DO NOTHING form; a plain INSERT is returned and the
		// duplicate surfaces as a driver error. Callers wanting ignore
		// semantics should update a conflict column to itself.
		return ""
	}

	updates := make([]string, len(updateCols))
	for i, col := range updateCols {
		updates[i] = fmt.Sprintf("%s = VALUES(%s)", col, col)
	}

	return fmt.Sprintf(" ON DUPLICATE KEY UPDATE %s", strings.Join(updates, ", "))
}

// DefaultKeyword returns DEFAULT.
func (d *MySQLDialect) DefaultKeyword() string {
	return "DEFAULT"
}

// SupportsReturning reports that MySQL has no RETURNING clause.
func (d *MySQLDialect) SupportsReturning() bool {
	return false
}

// RewritePlaceholders is the identity: MySQL binds with "?".
func (d *MySQLDialect) RewritePlaceholders(sql string) string {
	return sql
}
