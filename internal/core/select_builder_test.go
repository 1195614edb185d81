package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMixedFiltersAndOrdering(t *testing.T) {
	sql, params, err := Select("id", "name").
		From("users").
		AndWhere(Col("age").Eq(23)).
		AndWhere(Col("salary").Gt(45)).
		OrWhere(Col("status").In("A", "B")).
		OrderBy("name", Asc).
		OrderBy("age", Desc).
		Build()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, name FROM users WHERE age = ? AND salary > ? OR status IN (?, ?) ORDER BY name ASC, age DESC",
		sql)
	assert.Equal(t, []any{int64(23), int64(45), "A", "B"}, unwrapAll(params))
}

func TestSelectDefaultProjection(t *testing.T) {
	sql, _, err := Select().From("users").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users", sql)
}

func TestSelectDistinct(t *testing.T) {
	sql, _, err := Select("country").Distinct().From("users").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT DISTINCT country FROM users", sql)
}

func TestSelectClauseCanonicalOrder(t *testing.T) {
	// Clauses are set in scrambled order; the emitted SQL follows the
	// canonical order regardless.
	sq := Select("id").
		Limit(10).
		OrderBy("id", Asc).
		GroupBy("id").
		Where(Col("a").Eq(1)).
		From("t").
		Offset(5)
	sql, params, err := sq.Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t WHERE a = ? GROUP BY id ORDER BY id ASC LIMIT ? OFFSET ?", sql)
	assert.Equal(t, []any{int64(1), int64(10), int64(5)}, unwrapAll(params))
}

func TestSelectJoins(t *testing.T) {
	sql, params, err := Select("u.id", "o.total").
		From("users u").
		InnerJoin("orders o", Raw("o.user_id = u.id")).
		LeftJoin("payments p", Raw("p.order_id = o.id AND p.state = ?", "paid")).
		CrossJoin("currencies c").
		Build()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT u.id, o.total FROM users u"+
			" INNER JOIN orders o ON o.user_id = u.id"+
			" LEFT JOIN payments p ON p.order_id = o.id AND p.state = ?"+
			" CROSS JOIN currencies c",
		sql)
	assert.Equal(t, []any{"paid"}, unwrapAll(params))
}

func TestSelectJoinRequiresOn(t *testing.T) {
	_, _, err := Select("id").From("a").InnerJoin("b", Expr{}).Build()
	assert.ErrorIs(t, err, ErrOnExpressionRequired)
}

func TestSelectOrderByReplacesDirectionKeepsPosition(t *testing.T) {
	sql, _, err := Select("id").From("t").
		OrderBy("name", Asc).
		OrderBy("age", Desc).
		OrderBy("name", Desc).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t ORDER BY name DESC, age DESC", sql)
}

func TestSelectLastLimitOffsetWins(t *testing.T) {
	sql, params, err := Select("id").From("t").
		Limit(10).Offset(0).
		Limit(20).Offset(40).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t LIMIT ? OFFSET ?", sql)
	assert.Equal(t, []any{int64(20), int64(40)}, unwrapAll(params))
}

func TestSelectPage(t *testing.T) {
	sql, params, err := Select("id").From("t").Page(3, 25).Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t LIMIT ? OFFSET ?", sql)
	assert.Equal(t, []any{int64(25), int64(50)}, unwrapAll(params))

	_, _, err = Select("id").From("t").Page(0, 25).Build()
	assert.ErrorIs(t, err, ErrPageNumberInvalid)
	_, _, err = Select("id").From("t").Page(1, 0).Build()
	assert.ErrorIs(t, err, ErrPageNumberInvalid)
}

func TestSelectCursor(t *testing.T) {
	sql, params, err := Select("id").From("t").Cursor("id", int64(99), Asc, 10).Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t WHERE id > ? ORDER BY id ASC LIMIT ?", sql)
	assert.Equal(t, []any{int64(99), int64(10)}, unwrapAll(params))

	// Descending direction flips the comparison.
	sql, _, err = Select("id").From("t").Cursor("id", int64(99), Desc, 10).Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t WHERE id < ? ORDER BY id DESC LIMIT ?", sql)

	// Absent cursor drops the predicate but keeps ORDER BY and LIMIT.
	sql, _, err = Select("id").From("t").Cursor("id", nil, Asc, 10).Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t ORDER BY id ASC LIMIT ?", sql)

	_, _, err = Select("id").From("t").Cursor("id", nil, Asc, 0).Build()
	assert.ErrorIs(t, err, ErrLimitInvalid)
}

func TestSelectCursorTypedNil(t *testing.T) {
	// A typed nil pointer stored in an interface is still an absent cursor;
	// it must not bind a NULL comparison.
	var id *int64
	sql, params, err := Select("id").From("t").Cursor("id", id, Asc, 10).Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t ORDER BY id ASC LIMIT ?", sql)
	assert.Equal(t, []any{int64(10)}, unwrapAll(params))
}

func TestSelectAggregate(t *testing.T) {
	agg := NewAggregate().
		Count("*", "n").
		Avg("salary", "avg_salary").
		GroupBy("dept").
		Having(Col("n").Gt(5))
	sql, params, err := Select().From("employees").Aggregate(agg).Build()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT COUNT(*) AS n, AVG(salary) AS avg_salary FROM employees GROUP BY dept HAVING n > ?",
		sql)
	assert.Equal(t, []any{int64(5)}, unwrapAll(params))
}

func TestSelectHavingWithoutGroupByFails(t *testing.T) {
	_, _, err := Select("id").From("t").Having(Col("n").Gt(5)).Build()
	assert.ErrorIs(t, err, errHavingWithoutGroup)
}

func TestSelectCaseProjection(t *testing.T) {
	c := Case().
		When(Col("age").Lt(18), "minor").
		When(Col("age").Lt(65), "adult").
		Else("senior").
		As("age_group")
	sql, params, err := Select("id").From("users").Cases(c).Build()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, CASE WHEN age < ? THEN ? WHEN age < ? THEN ? ELSE ? END AS age_group FROM users",
		sql)
	assert.Equal(t, []any{int64(18), "minor", int64(65), "adult", "senior"}, unwrapAll(params))
}

func TestSelectWithCTE(t *testing.T) {
	body := NewSubquery("id", "name").From("users").Where(Col("age").Gt(18))
	sql, params, err := Select("id").From("adult_users").With(With("adult_users", body)).Build()
	require.NoError(t, err)
	assert.Equal(t,
		"WITH adult_users AS (SELECT id, name FROM users WHERE age > ?) SELECT id FROM adult_users",
		sql)
	assert.Equal(t, []any{int64(18)}, unwrapAll(params))
}

func TestSelectDuplicateCTENameFails(t *testing.T) {
	w := With("x", NewSubquery("1").From("a")).
		Append(NewCTE("x", NewSubquery("1").From("b")))
	_, _, err := Select("1").From("x").With(w).Build()
	assert.ErrorIs(t, err, ErrDuplicateCTEName)
}

func TestSelectPlaceholderCountMatchesParams(t *testing.T) {
	builders := []*SelectQuery{
		Select("id").From("t").Where(Col("a").Eq(1)),
		Select("id").From("t").Where(Col("a").In(1, 2, 3)).Limit(5).Offset(10),
		Select().From("t").Cursor("id", 7, Asc, 3),
	}
	for _, b := range builders {
		sql, params, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, len(params), CountPlaceholders(sql), sql)
	}
}

func TestSelectBuildMutDrains(t *testing.T) {
	sq := Select("id").From("t").Where(Col("a").Eq(1)).OrderBy("id", Asc).Limit(5)
	sql, params, err := sq.BuildMut()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t WHERE a = ? ORDER BY id ASC LIMIT ?", sql)
	assert.Len(t, params, 2)

	// Slots are drained; projection and table survive.
	sql, params, err = sq.BuildMut()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t", sql)
	assert.Empty(t, params)
}
