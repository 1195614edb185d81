package cache

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prepareStmt prepares a statement against a sqlmock pool so eviction can
// close it like a real one.
func prepareStmt(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock, sqlText string) *sql.Stmt {
	t.Helper()
	mock.ExpectPrepare(sqlText).WillBeClosed()
	stmt, err := db.Prepare(sqlText)
	require.NoError(t, err)
	return stmt
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestCacheGetSet(t *testing.T) {
	db, mock := newMockDB(t)
	c := NewWithCapacity(4)

	_, ok := c.Get("SELECT 1")
	assert.False(t, ok)

	stmt := prepareStmt(t, db, mock, "SELECT 1")
	c.Set("SELECT 1", stmt)

	got, ok := c.Get("SELECT 1")
	assert.True(t, ok)
	assert.Same(t, stmt, got)
	assert.Equal(t, 1, c.Len())

	hits, misses, evictions := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, uint64(0), evictions)
}

func TestCacheEvictsLRU(t *testing.T) {
	db, mock := newMockDB(t)
	c := NewWithCapacity(2)

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("SELECT %d", i)
		c.Set(key, prepareStmt(t, db, mock, key))
	}

	// The oldest entry was evicted and closed.
	_, ok := c.Get("SELECT 0")
	assert.False(t, ok)
	_, ok = c.Get("SELECT 2")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())

	_, _, evictions := c.Stats()
	assert.Equal(t, uint64(1), evictions)
}

func TestCacheGetRefreshesRecency(t *testing.T) {
	db, mock := newMockDB(t)
	c := NewWithCapacity(2)

	c.Set("SELECT 0", prepareStmt(t, db, mock, "SELECT 0"))
	c.Set("SELECT 1", prepareStmt(t, db, mock, "SELECT 1"))

	// Touch 0 so 1 becomes the eviction candidate.
	_, ok := c.Get("SELECT 0")
	require.True(t, ok)

	c.Set("SELECT 2", prepareStmt(t, db, mock, "SELECT 2"))

	_, ok = c.Get("SELECT 0")
	assert.True(t, ok)
	_, ok = c.Get("SELECT 1")
	assert.False(t, ok)
}

func TestCacheClear(t *testing.T) {
	db, mock := newMockDB(t)
	c := New()

	c.Set("SELECT 1", prepareStmt(t, db, mock, "SELECT 1"))
	c.Clear()
	assert.Equal(t, 0, c.Len())

	_, ok := c.Get("SELECT 1")
	assert.False(t, ok)
}

func TestCacheCapacityFallback(t *testing.T) {
	c := NewWithCapacity(0)
	assert.Equal(t, 0, c.Len())
	// Zero or negative capacities fall back to the default.
	db, mock := newMockDB(t)
	c.Set("SELECT 1", prepareStmt(t, db, mock, "SELECT 1"))
	assert.Equal(t, 1, c.Len())
}
