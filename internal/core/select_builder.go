package core

import (
	"strings"

	"github.com/coregx/querykit/internal/value"
)

// SelectQuery represents a SELECT statement being built. Clause slots are
// emitted in canonical SQL order regardless of call order:
//
//	WITH -> SELECT <projection> -> FROM -> JOINs -> WHERE -> GROUP BY ->
//	HAVING -> ORDER BY -> LIMIT -> OFFSET
//
// The builder exclusively owns its internal slots; it is not safe for
// concurrent use during construction.
type SelectQuery struct {
	with     *WithCTE
	distinct bool
	columns  []string
	agg      *Aggregate
	cases    []*CaseExpr
	table    string
	joins    []Join
	where    Expr
	groupBy  []string
	having   Expr
	orderBy  []orderItem
	limit    *int64
	offset   *int64
	err      error
}

// orderItem is one ORDER BY entry. The order-by slot is an
// insertion-ordered map keyed by column: re-adding a column replaces its
// direction but keeps its position.
type orderItem struct {
	col string
	dir Direction
}

// Select starts a SELECT statement. With no columns the projection
// defaults to "*".
func Select(columns ...string) *SelectQuery {
	return &SelectQuery{columns: columns}
}

// With attaches a WITH prefix of common table expressions.
func (sq *SelectQuery) With(w *WithCTE) *SelectQuery {
	sq.with = w
	return sq
}

// Distinct marks the projection DISTINCT.
func (sq *SelectQuery) Distinct() *SelectQuery {
	sq.distinct = true
	return sq
}

// Columns replaces the projection column list.
func (sq *SelectQuery) Columns(columns ...string) *SelectQuery {
	sq.columns = columns
	return sq
}

// Aggregate attaches an aggregate projection. Its GROUP BY and HAVING
// merge into the statement's slots.
func (sq *SelectQuery) Aggregate(a *Aggregate) *SelectQuery {
	sq.agg = a
	if len(a.groupBy) > 0 {
		sq.groupBy = a.groupBy
	}
	if !a.having.IsZero() {
		sq.having = sq.having.And(a.having)
	}
	return sq
}

// Cases appends CASE/WHEN expressions to the projection list.
func (sq *SelectQuery) Cases(cases ...*CaseExpr) *SelectQuery {
	sq.cases = append(sq.cases, cases...)
	return sq
}

// From names the source table.
func (sq *SelectQuery) From(table string) *SelectQuery {
	sq.table = table
	return sq
}

// Join appends a join clause. Joins emit in insertion order after FROM.
func (sq *SelectQuery) Join(kind JoinKind, table string, on Expr) *SelectQuery {
	sq.joins = append(sq.joins, Join{Kind: kind, Table: table, On: on})
	return sq
}

// InnerJoin appends an INNER JOIN.
func (sq *SelectQuery) InnerJoin(table string, on Expr) *SelectQuery {
	return sq.Join(InnerJoin, table, on)
}

// LeftJoin appends a LEFT JOIN.
func (sq *SelectQuery) LeftJoin(table string, on Expr) *SelectQuery {
	return sq.Join(LeftJoin, table, on)
}

// RightJoin appends a RIGHT JOIN.
func (sq *SelectQuery) RightJoin(table string, on Expr) *SelectQuery {
	return sq.Join(RightJoin, table, on)
}

// CrossJoin appends a CROSS JOIN; no ON expression is emitted.
func (sq *SelectQuery) CrossJoin(table string) *SelectQuery {
	return sq.Join(CrossJoin, table, Expr{})
}

// Where sets the WHERE predicate, combining with AND when one is already
// present. Alias of AndWhere.
func (sq *SelectQuery) Where(e Expr) *SelectQuery {
	return sq.AndWhere(e)
}

// AndWhere combines the predicate into WHERE with AND. An uninitialized
// WHERE becomes the provided expression.
func (sq *SelectQuery) AndWhere(e Expr) *SelectQuery {
	sq.where = sq.where.And(e)
	return sq
}

// OrWhere appends the predicate to WHERE with a bare OR. Unlike Expr.Or,
// no parentheses are added; the accumulated clause reads left to right.
func (sq *SelectQuery) OrWhere(e Expr) *SelectQuery {
	frag, args, err := e.Fragment()
	if err != nil {
		sq.err = err
		return sq
	}
	if sq.where.IsZero() {
		sq.where = e
		return sq
	}
	if frag == "" {
		return sq
	}
	sq.where = Expr{
		frag: sq.where.frag + " OR " + frag,
		args: append(sq.where.args, args...),
		err:  sq.where.err,
	}
	return sq
}

// GroupBy sets the GROUP BY column list.
func (sq *SelectQuery) GroupBy(columns ...string) *SelectQuery {
	sq.groupBy = columns
	return sq
}

// Having combines the predicate into HAVING with AND.
func (sq *SelectQuery) Having(e Expr) *SelectQuery {
	sq.having = sq.having.And(e)
	return sq
}

// OrderBy adds an ORDER BY entry. Adding the same column twice replaces
// the direction but retains the original position; the last direction wins.
func (sq *SelectQuery) OrderBy(column string, dir Direction) *SelectQuery {
	for i := range sq.orderBy {
		if sq.orderBy[i].col == column {
			sq.orderBy[i].dir = dir
			return sq
		}
	}
	sq.orderBy = append(sq.orderBy, orderItem{col: column, dir: dir})
	return sq
}

// Limit sets the LIMIT slot, bound as a parameter. Later calls override.
func (sq *SelectQuery) Limit(n int64) *SelectQuery {
	sq.limit = &n
	return sq
}

// Offset sets the OFFSET slot, bound as a parameter. Later calls override.
func (sq *SelectQuery) Offset(n int64) *SelectQuery {
	sq.offset = &n
	return sq
}

// Page applies page-based pagination: offset = (page - 1) * size.
// A zero page number or page size is an error (ErrPageNumberInvalid),
// surfaced at Build.
func (sq *SelectQuery) Page(page, size int64) *SelectQuery {
	if page <= 0 || size <= 0 {
		sq.err = ErrPageNumberInvalid
		return sq
	}
	return sq.Limit(size).Offset((page - 1) * size)
}

// Cursor applies cursor pagination over a single key column: when cursor
// is present, WHERE <col> > ? (or < for Desc) is combined in; the ORDER BY
// and LIMIT stand either way. A nil cursor, including a typed nil pointer,
// starts from the beginning.
func (sq *SelectQuery) Cursor(column string, cursor any, dir Direction, limit int64) *SelectQuery {
	if limit <= 0 {
		sq.err = ErrLimitInvalid
		return sq
	}
	if !value.IsEmptyOrNone(cursor) {
		if dir == Desc {
			sq.AndWhere(Col(column).Lt(cursor))
		} else {
			sq.AndWhere(Col(column).Gt(cursor))
		}
	}
	return sq.OrderBy(column, dir).Limit(limit)
}

// projection assembles the SELECT column list.
func (sq *SelectQuery) projection() (string, []value.Value, error) {
	parts := make([]string, 0, len(sq.columns)+len(sq.cases)+1)
	var args []value.Value

	if len(sq.columns) > 0 {
		parts = append(parts, strings.Join(sq.columns, ", "))
	}
	if sq.agg != nil && len(sq.agg.funcs) > 0 {
		parts = append(parts, sq.agg.projection())
	}
	for _, c := range sq.cases {
		frag, caseArgs, err := c.fragment()
		if err != nil {
			return "", nil, err
		}
		if frag != "" {
			parts = append(parts, frag)
			args = append(args, caseArgs...)
		}
	}

	if len(parts) == 0 {
		return "*", nil, nil
	}
	return strings.Join(parts, ", "), args, nil
}

// assemble renders the statement in canonical clause order.
func (sq *SelectQuery) assemble() (string, []value.Value, error) {
	if sq.err != nil {
		return "", nil, sq.err
	}

	var b strings.Builder
	var args []value.Value

	withPrefix, withArgs, err := sq.with.prefix()
	if err != nil {
		return "", nil, err
	}
	b.WriteString(withPrefix)
	args = append(args, withArgs...)

	b.WriteString("SELECT ")
	if sq.distinct {
		b.WriteString("DISTINCT ")
	}
	proj, projArgs, err := sq.projection()
	if err != nil {
		return "", nil, err
	}
	b.WriteString(proj)
	args = append(args, projArgs...)

	if sq.table != "" {
		b.WriteString(" FROM " + sq.table)
	}

	for _, j := range sq.joins {
		frag, joinArgs, err := j.fragment()
		if err != nil {
			return "", nil, err
		}
		b.WriteString(frag)
		args = append(args, joinArgs...)
	}

	if !sq.where.IsZero() {
		frag, whereArgs, err := sq.where.Fragment()
		if err != nil {
			return "", nil, err
		}
		b.WriteString(" WHERE " + frag)
		args = append(args, whereArgs...)
	}

	if len(sq.groupBy) > 0 {
		b.WriteString(" GROUP BY " + strings.Join(sq.groupBy, ", "))
	}

	if !sq.having.IsZero() {
		if len(sq.groupBy) == 0 && (sq.agg == nil || len(sq.agg.funcs) == 0) {
			return "", nil, errHavingWithoutGroup
		}
		frag, havingArgs, err := sq.having.Fragment()
		if err != nil {
			return "", nil, err
		}
		b.WriteString(" HAVING " + frag)
		args = append(args, havingArgs...)
	}

	if len(sq.orderBy) > 0 {
		parts := make([]string, len(sq.orderBy))
		for i, o := range sq.orderBy {
			parts[i] = o.col + " " + o.dir.String()
		}
		b.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}

	if sq.limit != nil {
		b.WriteString(" LIMIT ?")
		args = append(args, value.Int(*sq.limit))
	}
	if sq.offset != nil {
		b.WriteString(" OFFSET ?")
		args = append(args, value.Int(*sq.offset))
	}

	return b.String(), args, nil
}

// Build finalizes the statement, returning the SQL text with "?"
// placeholders and the flat parameter list in placeholder order.
// A builder is meant to be built exactly once; Build does not mutate
// slots, but reusing a built statement is unsupported.
func (sq *SelectQuery) Build() (string, []value.Value, error) {
	return sq.assemble()
}

// BuildMut finalizes the statement and drains every clause slot, leaving
// an empty builder (projection and table are retained). Used for staged
// emission in transactional batches.
func (sq *SelectQuery) BuildMut() (string, []value.Value, error) {
	sql, args, err := sq.assemble()
	sq.with = nil
	sq.agg = nil
	sq.cases = nil
	sq.joins = nil
	sq.where = Expr{}
	sq.groupBy = nil
	sq.having = Expr{}
	sq.orderBy = nil
	sq.limit = nil
	sq.offset = nil
	return sql, args, err
}

// Fragment allows a SelectQuery to serve as a CTE body or subquery.
func (sq *SelectQuery) Fragment() (string, []value.Value, error) {
	return sq.assemble()
}
