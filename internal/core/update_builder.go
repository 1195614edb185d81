package core

import (
	"strings"

	"github.com/coregx/querykit/internal/value"
)

// UpdateQuery represents an UPDATE statement being built. SET assignments
// emit in insertion order; the optional WITH prefix emits first, then
// UPDATE <table> SET ... WHERE ... with parameters flattened in that order.
//
// A builder that emits an UPDATE without WHERE is permitted; the table
// facades always inject at least a primary-key predicate or global filter.
type UpdateQuery struct {
	with  *WithCTE
	table string
	sets  []setClause
	where Expr
	err   error
}

type setClause struct {
	column string
	raw    string // non-empty for non-parameterized assignments
	val    value.Value
}

// Update starts an UPDATE statement for the given table.
func Update(table string) *UpdateQuery {
	return &UpdateQuery{table: table}
}

// With attaches a WITH prefix of common table expressions.
func (uq *UpdateQuery) With(w *WithCTE) *UpdateQuery {
	uq.with = w
	return uq
}

// Set appends "column = ?" binding the value.
func (uq *UpdateQuery) Set(column string, v any) *UpdateQuery {
	uq.sets = append(uq.sets, setClause{column: column, val: value.Convert(v)})
	return uq
}

// SetValue appends "column = ?" with a pre-converted value.
func (uq *UpdateQuery) SetValue(column string, v value.Value) *UpdateQuery {
	uq.sets = append(uq.sets, setClause{column: column, val: v})
	return uq
}

// SetCols appends parallel column/value assignments.
func (uq *UpdateQuery) SetCols(columns []string, values []any) *UpdateQuery {
	if len(columns) != len(values) {
		uq.err = WrapError(ErrColumnsListEmpty, "columns and values length mismatch")
		return uq
	}
	for i, col := range columns {
		uq.Set(col, values[i])
	}
	return uq
}

// SetExpr appends a non-parameterized assignment, e.g.
// SetExpr("views", "views + 1").
func (uq *UpdateQuery) SetExpr(column, sql string) *UpdateQuery {
	uq.sets = append(uq.sets, setClause{column: column, raw: sql})
	return uq
}

// Where sets the WHERE predicate, combining with AND when one is already
// present.
func (uq *UpdateQuery) Where(e Expr) *UpdateQuery {
	return uq.AndWhere(e)
}

// AndWhere combines the predicate into WHERE with AND.
func (uq *UpdateQuery) AndWhere(e Expr) *UpdateQuery {
	uq.where = uq.where.And(e)
	return uq
}

// assemble renders the statement.
func (uq *UpdateQuery) assemble() (string, []value.Value, error) {
	if uq.err != nil {
		return "", nil, uq.err
	}
	if len(uq.sets) == 0 {
		return "", nil, ErrColumnsListEmpty
	}

	var b strings.Builder
	var args []value.Value

	withPrefix, withArgs, err := uq.with.prefix()
	if err != nil {
		return "", nil, err
	}
	b.WriteString(withPrefix)
	args = append(args, withArgs...)

	b.WriteString("UPDATE " + uq.table + " SET ")
	for i, s := range uq.sets {
		if i > 0 {
			b.WriteString(", ")
		}
		if s.raw != "" {
			b.WriteString(s.column + " = " + s.raw)
			continue
		}
		b.WriteString(s.column + " = ?")
		args = append(args, s.val)
	}

	if !uq.where.IsZero() {
		frag, whereArgs, err := uq.where.Fragment()
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
func (uq *UpdateQuery) Build() (string, []value.Value, error) {
	return uq.assemble()
}

// BuildMut finalizes the statement and drains the SET and WHERE slots.
func (uq *UpdateQuery) BuildMut() (string, []value.Value, error) {
	sql, args, err := uq.assemble()
	uq.with = nil
	uq.sets = nil
	uq.where = Expr{}
	return sql, args, err
}
