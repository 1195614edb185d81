package dialects

import (
	"fmt"
	"strconv"
	"strings"
)

// PostgresDialect implements PostgreSQL-specific SQL dialect.
type PostgresDialect struct{}

func init() {
	Register("postgres", &PostgresDialect{})
	Register("postgresql", &PostgresDialect{})
	Register("pgx", &PostgresDialect{})
}

// Name returns "postgres".
func (d *PostgresDialect) Name() string {
	return "postgres"
}

// QuoteIdentifier quotes a PostgreSQL identifier using double quotes.
func (d *PostgresDialect) QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// UpsertSQL generates PostgreSQL UPSERT syntax using ON CONFLICT.
func (d *PostgresDialect) UpsertSQL(conflictColumns, updateCols []string) string {
	if len(updateCols) == 0 {
		// No assignable columns means DO NOTHING; a bare DO UPDATE SET
		// would be a syntax error.
		if len(conflictColumns) > 0 {
			return fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", strings.Join(conflictColumns, ", "))
		}
		return " ON CONFLICT DO NOTHING"
	}

	return fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(conflictColumns, ", "),
		buildUpdateSet(updateCols),
	)
}

// buildUpdateSet builds the SET clause of the conflict tail.
func buildUpdateSet(cols []string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
	}
	return strings.Join(parts, ", ")
}

// DefaultKeyword returns DEFAULT.
func (d *PostgresDialect) DefaultKeyword() string {
	return "DEFAULT"
}

// SupportsReturning reports RETURNING support.
func (d *PostgresDialect) SupportsReturning() bool {
	return true
}

// RewritePlaceholders converts "?" placeholders to $1..$N, scanning the
// finalized statement left to right exactly once. Placeholders inside
// single-quoted string literals are left untouched.
func (d *PostgresDialect) RewritePlaceholders(sql string) string {
	var b strings.Builder
	b.Grow(len(sql) + 8)

	n := 0
	inString := false
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case c == '\'':
			inString = !inString
			b.WriteByte(c)
		case c == '?' && !inString:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
