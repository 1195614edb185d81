package core

import (
	"strings"

	"github.com/coregx/querykit/internal/value"
)

// DeleteQuery represents a DELETE statement being built.
//
// Soft-delete substitution is not this builder's concern: the table
// facades rewrite deletes into soft-delete updates before a DeleteQuery
// is ever constructed.
type DeleteQuery struct {
	table string
	where Expr
	err   error
}

// DeleteFrom starts a DELETE statement for the given table.
func DeleteFrom(table string) *DeleteQuery {
	return &DeleteQuery{table: table}
}

// Where sets the WHERE predicate, combining with AND when one is already
// present.
func (dq *DeleteQuery) Where(e Expr) *DeleteQuery {
	return dq.AndWhere(e)
}

// AndWhere combines the predicate into WHERE with AND.
func (dq *DeleteQuery) AndWhere(e Expr) *DeleteQuery {
	dq.where = dq.where.And(e)
	return dq
}

// ByPrimaryKey adds "k1 = ? AND k2 = ? ..." with values bound in
// primary-key declaration order.
func (dq *DeleteQuery) ByPrimaryKey(columns []string, values []any) *DeleteQuery {
	if len(columns) == 0 || len(columns) != len(values) {
		dq.err = ErrNoPrimaryKeyDefined
		return dq
	}
	for i, col := range columns {
		dq.AndWhere(Col(col).Eq(values[i]))
	}
	return dq
}

// assemble renders the statement.
func (dq *DeleteQuery) assemble() (string, []value.Value, error) {
	if dq.err != nil {
		return "", nil, dq.err
	}

	var b strings.Builder
	var args []value.Value

	b.WriteString("DELETE FROM " + dq.table)
	if !dq.where.IsZero() {
		frag, whereArgs, err := dq.where.Fragment()
		if err != nil {
			return "", nil, err
		}
		b.WriteString(" WHERE " + frag)
		args = append(args, whereArgs...)
	}
	return b.String(), args, nil
}

// Build finalizes the statement, returning the SQL text with "?"
// placeholders and the flat parameter list in placeholder order.
func (dq *DeleteQuery) Build() (string, []value.Value, error) {
	return dq.assemble()
}

// BuildMut finalizes the statement and drains the WHERE slot.
func (dq *DeleteQuery) BuildMut() (string, []value.Value, error) {
	sql, args, err := dq.assemble()
	dq.where = Expr{}
	return sql, args, err
}
