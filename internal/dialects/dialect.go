// Package dialects provides database-specific SQL dialect implementations for
// PostgreSQL, MySQL, and SQLite. A dialect confines every database-specific
// decision to the leaves: identifier quoting, conflict-resolution (UPSERT)
// tails, the DEFAULT keyword for auto-generated columns, RETURNING support,
// and positional placeholder rewriting. The statement builders themselves
// are dialect-agnostic and always emit "?" placeholders.
package dialects

// Dialect defines database-specific behaviors.
type Dialect interface {
	// Name returns the canonical dialect name ("sqlite", "mysql", "postgres").
	Name() string
	// QuoteIdentifier quotes a single identifier for this dialect.
	QuoteIdentifier(string) string
	// UpsertSQL returns the conflict-resolution tail appended to an INSERT.
	// conflictColumns name the unique key; updateCols are the columns
	// rewritten on conflict. A nil updateCols means "do nothing".
	UpsertSQL(conflictColumns, updateCols []string) string
	// DefaultKeyword is emitted in a VALUES row in place of a bind when an
	// auto-generated column carries its default value.
	DefaultKeyword() string
	// SupportsReturning reports whether the dialect accepts a RETURNING clause.
	SupportsReturning() bool
	// RewritePlaceholders transforms "?" placeholders into the dialect's
	// positional format. For MySQL and SQLite it is the identity.
	RewritePlaceholders(sql string) string
}

var registry = make(map[string]Dialect)

// Register registers a dialect under a driver name.
func Register(name string, d Dialect) {
	registry[name] = d
}

// Get retrieves a registered dialect by driver name, panics if not found.
func Get(name string) Dialect {
	if d, ok := registry[name]; ok {
		return d
	}
	panic("unsupported dialect: " + name)
}
