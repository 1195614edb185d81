package core

import (
	"errors"
	"strings"
)

// errHavingWithoutGroup is the shared HAVING guard for Aggregate and
// SelectQuery.
var errHavingWithoutGroup = errors.New("HAVING requires GROUP BY or an aggregate")

// Aggregate describes an aggregate projection with optional GROUP BY and
// HAVING. The HAVING predicate accumulates through the same And/Or algebra
// as WHERE, and requires at least one GROUP BY column or aggregate function.
type Aggregate struct {
	funcs   []aggFunc
	groupBy []string
	having  Expr
}

type aggFunc struct {
	fn    string
	col   string
	alias string
}

// NewAggregate starts an aggregate specification.
func NewAggregate() *Aggregate {
	return &Aggregate{}
}

// Func appends FUNC(col) with an optional alias. An empty alias omits AS.
func (a *Aggregate) Func(fn, col, alias string) *Aggregate {
	a.funcs = append(a.funcs, aggFunc{fn: strings.ToUpper(fn), col: col, alias: alias})
	return a
}

// Count appends COUNT(col) AS alias.
func (a *Aggregate) Count(col, alias string) *Aggregate { return a.Func("COUNT", col, alias) }

// Sum appends SUM(col) AS alias.
func (a *Aggregate) Sum(col, alias string) *Aggregate { return a.Func("SUM", col, alias) }

// Avg appends AVG(col) AS alias.
func (a *Aggregate) Avg(col, alias string) *Aggregate { return a.Func("AVG", col, alias) }

// Min appends MIN(col) AS alias.
func (a *Aggregate) Min(col, alias string) *Aggregate { return a.Func("MIN", col, alias) }

// Max appends MAX(col) AS alias.
func (a *Aggregate) Max(col, alias string) *Aggregate { return a.Func("MAX", col, alias) }

// GroupBy sets the GROUP BY column list.
func (a *Aggregate) GroupBy(columns ...string) *Aggregate {
	a.groupBy = columns
	return a
}

// Having combines the given predicate into HAVING with AND.
func (a *Aggregate) Having(e Expr) *Aggregate {
	a.having = a.having.And(e)
	return a
}

// projection emits the aggregate column list for the SELECT projection slot.
func (a *Aggregate) projection() string {
	parts := make([]string, len(a.funcs))
	for i, f := range a.funcs {
		p := f.fn + "(" + f.col + ")"
		if f.alias != "" {
			p += " AS " + f.alias
		}
		parts[i] = p
	}
	return strings.Join(parts, ", ")
}
