package core

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type audited struct {
	CreatedAt time.Time `db:"created_at"`
}

type document struct {
	audited
	ID      int64  `db:"id"`
	Title   string `db:"title"`
	private string
	Skipped string `db:"-"`
}

func TestScannerEmbeddedAndTaggedFields(t *testing.T) {
	exec, mock := newMockExecutor(t, "sqlite3")
	now := time.Now()

	mock.ExpectPrepare("SELECT * FROM documents").
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_at"}).
			AddRow(1, "readme", now))

	var docs []document
	require.NoError(t, exec.FetchAll(context.Background(), Select().From("documents"), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, int64(1), docs[0].ID)
	assert.Equal(t, "readme", docs[0].Title)
	assert.Equal(t, now, docs[0].CreatedAt)
	assert.Empty(t, docs[0].private)
	assert.Empty(t, docs[0].Skipped)
}

func TestScannerDiscardsUnmappedColumns(t *testing.T) {
	exec, mock := newMockExecutor(t, "sqlite3")

	mock.ExpectPrepare("SELECT * FROM documents").
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "mystery"}).
			AddRow(2, "notes", "???"))

	var doc document
	require.NoError(t, exec.FetchOne(context.Background(), Select().From("documents"), &doc))
	assert.Equal(t, int64(2), doc.ID)
}

func TestScannerSingleValueDest(t *testing.T) {
	exec, mock := newMockExecutor(t, "sqlite3")

	mock.ExpectPrepare("SELECT title FROM documents WHERE id = ?").
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"title"}).AddRow("readme"))

	var title string
	q := Select("title").From("documents").Where(Col("id").Eq(1))
	require.NoError(t, exec.FetchOne(context.Background(), q, &title))
	assert.Equal(t, "readme", title)
}

func TestScannerRejectsBadDest(t *testing.T) {
	exec, mock := newMockExecutor(t, "sqlite3")

	mock.ExpectPrepare("SELECT * FROM documents").
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	var doc document
	err := exec.FetchAll(context.Background(), Select().From("documents"), doc)
	assert.Error(t, err)
}
