package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSetExpr(t *testing.T) {
	sql, params, err := Update("article").
		SetExpr("views", "views + 1").
		Where(Col("id").Eq(1)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE article SET views = views + 1 WHERE id = ?", sql)
	assert.Equal(t, []any{int64(1)}, unwrapAll(params))
}

func TestUpdateSetOrder(t *testing.T) {
	sql, params, err := Update("users").
		Set("name", "John").
		Set("age", 30).
		Where(Col("id").Eq(7)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET name = ?, age = ? WHERE id = ?", sql)
	assert.Equal(t, []any{"John", int64(30), int64(7)}, unwrapAll(params))
}

func TestUpdateSetCols(t *testing.T) {
	sql, params, err := Update("users").
		SetCols([]string{"name", "age"}, []any{"Jane", 25}).
		Where(Col("id").Eq(1)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET name = ?, age = ? WHERE id = ?", sql)
	assert.Len(t, params, 3)

	_, _, err = Update("users").SetCols([]string{"name"}, []any{"a", "b"}).Build()
	assert.ErrorIs(t, err, ErrColumnsListEmpty)
}

func TestUpdateNoSetFails(t *testing.T) {
	_, _, err := Update("users").Where(Col("id").Eq(1)).Build()
	assert.ErrorIs(t, err, ErrColumnsListEmpty)
}

func TestUpdateWithoutWhereIsPermitted(t *testing.T) {
	sql, _, err := Update("users").Set("active", false).Build()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET active = ?", sql)
}

func TestUpdateWithCTE(t *testing.T) {
	body := NewSubquery("id", "name").From("users").Where(Col("age").Gt(18))
	sql, params, err := Update("employees").
		With(With("adult_users", body)).
		Set("salary", 10000).
		Where(Col("id").InSubquery(NewSubquery("id").From("adult_users"))).
		Build()
	require.NoError(t, err)
	assert.Equal(t,
		"WITH adult_users AS (SELECT id, name FROM users WHERE age > ?)"+
			" UPDATE employees SET salary = ? WHERE id IN (SELECT id FROM adult_users)",
		sql)
	assert.Equal(t, []any{int64(18), int64(10000)}, unwrapAll(params))
	assert.Equal(t, len(params), CountPlaceholders(sql))
}

func TestUpdateBuildMutDrains(t *testing.T) {
	uq := Update("users").Set("name", "John").Where(Col("id").Eq(1))
	_, _, err := uq.BuildMut()
	require.NoError(t, err)
	_, _, err = uq.BuildMut()
	assert.ErrorIs(t, err, ErrColumnsListEmpty)
}
