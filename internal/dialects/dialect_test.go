package dialects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryAliases(t *testing.T) {
	assert.Equal(t, "sqlite", Get("sqlite").Name())
	assert.Equal(t, "sqlite", Get("sqlite3").Name())
	assert.Equal(t, "mysql", Get("mysql").Name())
	assert.Equal(t, "postgres", Get("postgres").Name())
	assert.Equal(t, "postgres", Get("postgresql").Name())
	assert.Equal(t, "postgres", Get("pgx").Name())

	assert.Panics(t, func() { Get("oracle") })
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"users"`, Get("sqlite").QuoteIdentifier("users"))
	assert.Equal(t, "`users`", Get("mysql").QuoteIdentifier("users"))
	assert.Equal(t, `"users"`, Get("postgres").QuoteIdentifier("users"))
	assert.Equal(t, `"we""ird"`, Get("postgres").QuoteIdentifier(`we"ird`))
	assert.Equal(t, "`we``ird`", Get("mysql").QuoteIdentifier("we`ird"))
}

func TestUpsertTails(t *testing.T) {
	conflict := []string{"id"}
	update := []string{"name", "age"}

	assert.Equal(t,
		" ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, age = EXCLUDED.age",
		Get("sqlite").UpsertSQL(conflict, update))
	assert.Equal(t,
		" ON DUPLICATE KEY UPDATE name = VALUES(name), age = VALUES(age)",
		Get("mysql").UpsertSQL(conflict, update))
	assert.Equal(t,
		" ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, age = EXCLUDED.age",
		Get("postgres").UpsertSQL(conflict, update))
}

func TestUpsertDoNothing(t *testing.T) {
	assert.Equal(t, " ON CONFLICT (id) DO NOTHING", Get("sqlite").UpsertSQL([]string{"id"}, nil))
	assert.Equal(t, " ON CONFLICT DO NOTHING", Get("postgres").UpsertSQL(nil, nil))
	assert.Equal(t, "", Get("mysql").UpsertSQL([]string{"id"}, nil))
}

func TestUpsertEmptyUpdateListMeansDoNothing(t *testing.T) {
	// A table whose columns are all key columns leaves nothing to update;
	// an empty list must never produce a dangling SET clause.
	empty := []string{}
	assert.Equal(t, " ON CONFLICT (a, b) DO NOTHING", Get("sqlite").UpsertSQL([]string{"a", "b"}, empty))
	assert.Equal(t, " ON CONFLICT (a, b) DO NOTHING", Get("postgres").UpsertSQL([]string{"a", "b"}, empty))
	assert.Equal(t, "", Get("mysql").UpsertSQL([]string{"a", "b"}, empty))
}

func TestDefaultKeywordAndReturning(t *testing.T) {
	assert.Equal(t, "NULL", Get("sqlite").DefaultKeyword())
	assert.Equal(t, "DEFAULT", Get("mysql").DefaultKeyword())
	assert.Equal(t, "DEFAULT", Get("postgres").DefaultKeyword())

	assert.True(t, Get("sqlite").SupportsReturning())
	assert.False(t, Get("mysql").SupportsReturning())
	assert.True(t, Get("postgres").SupportsReturning())
}

func TestPostgresPlaceholderRewrite(t *testing.T) {
	d := Get("postgres")

	assert.Equal(t,
		"SELECT * FROM t WHERE a = $1 AND b = $2",
		d.RewritePlaceholders("SELECT * FROM t WHERE a = ? AND b = ?"))

	// Placeholders inside string literals are untouched.
	assert.Equal(t,
		"SELECT * FROM t WHERE a = 'what?' AND b = $1",
		d.RewritePlaceholders("SELECT * FROM t WHERE a = 'what?' AND b = ?"))

	// No placeholders, no change.
	sql := "SELECT 1"
	assert.Equal(t, sql, d.RewritePlaceholders(sql))
}

func TestPostgresRewriteNumberingIsDense(t *testing.T) {
	in := "INSERT INTO t (a, b, c) VALUES (?, ?, ?), (?, ?, ?)"
	out := Get("postgres").RewritePlaceholders(in)

	assert.Equal(t, strings.Count(in, "?"), strings.Count(out, "$"))
	for i := 1; i <= 6; i++ {
		assert.Contains(t, out, "$"+string(rune('0'+i)))
	}
	assert.NotContains(t, out, "?")
}

func TestIdentityRewrites(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ?"
	assert.Equal(t, sql, Get("sqlite").RewritePlaceholders(sql))
	assert.Equal(t, sql, Get("mysql").RewritePlaceholders(sql))
}
