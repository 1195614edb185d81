// Copyright (c) 2025 COREGX. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import (
	"strings"

	"github.com/coregx/querykit/internal/value"
)

// Expr is a composable predicate: a SQL fragment with "?" placeholders and
// the parallel list of bound values. Expressions are small immutable trees;
// combinators consume their operands and return a new Expr, so the
// placeholder count of the fragment always equals the length of the value
// list. The zero Expr is the absent predicate.
//
// Example:
//
//	core.Col("age").Gte(18).And(core.Col("status").In("A", "B"))
//
// Builds: age >= ? AND status IN (?, ?) with values [18, "A", "B"].
type Expr struct {
	frag string
	args []value.Value
	err  error
}

// Raw creates an expression from a verbatim SQL fragment with optional
// bound values. The fragment may contain "?" placeholders.
func Raw(sql string, args ...any) Expr {
	return Expr{frag: sql, args: value.ConvertAll(args)}
}

// IsZero reports whether the expression is absent.
func (e Expr) IsZero() bool {
	return e.frag == "" && e.err == nil
}

// Fragment returns the SQL fragment and bound values.
// The error is deferred from leaf construction (e.g. an empty IN list) and
// surfaces here and from any enclosing statement's Build.
func (e Expr) Fragment() (string, []value.Value, error) {
	return e.frag, e.args, e.err
}

// And combines two expressions with AND. An operand that is itself a bare
// OR chain is parenthesized to preserve precedence; combining with an
// absent expression returns the other operand unchanged.
func (e Expr) And(other Expr) Expr {
	return e.combine(other, "AND")
}

// Or combines two expressions with OR. The result is always parenthesized.
func (e Expr) Or(other Expr) Expr {
	combined := e.combine(other, "OR")
	if combined.err != nil || combined.IsZero() || e.IsZero() || other.IsZero() {
		return combined
	}
	combined.frag = "(" + combined.frag + ")"
	return combined
}

// Not negates the expression, emitting NOT (...).
func (e Expr) Not() Expr {
	if e.err != nil || e.IsZero() {
		return e
	}
	return Expr{frag: "NOT (" + e.frag + ")", args: e.args}
}

func (e Expr) combine(other Expr, op string) Expr {
	if e.err != nil {
		return e
	}
	if other.err != nil {
		return other
	}
	if e.IsZero() {
		return other
	}
	if other.IsZero() {
		return e
	}

	left := e.frag
	right := other.frag
	if op == "AND" {
		left = groupIfOr(e)
		right = groupIfOr(other)
	}

	args := make([]value.Value, 0, len(e.args)+len(other.args))
	args = append(args, e.args...)
	args = append(args, other.args...)
	return Expr{frag: left + " " + op + " " + right, args: args}
}

// groupIfOr parenthesizes a fragment whose top level is a bare OR chain.
// Or() already self-parenthesizes, so this only triggers for raw fragments.
func groupIfOr(e Expr) string {
	if containsTopLevelOr(e.frag) {
		return "(" + e.frag + ")"
	}
	return e.frag
}

// containsTopLevelOr scans for an OR keyword outside any parentheses.
func containsTopLevelOr(frag string) bool {
	depth := 0
	for i := 0; i+4 <= len(frag); i++ {
		switch frag[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ' ':
			if depth == 0 && strings.HasPrefix(frag[i:], " OR ") {
				return true
			}
		}
	}
	return false
}

// errExpr creates an expression carrying a deferred construction error.
func errExpr(err error) Expr {
	return Expr{err: err}
}

// Col names a column and is the entry point for building leaf predicates.
// An optional table qualifier may be attached with Table; the name is
// emitted verbatim.
type Col string

// Table prefixes the column with a table qualifier, dot-joined on emit.
func (c Col) Table(table string) Col {
	return Col(table + "." + string(c))
}

func (c Col) compare(op string, v any) Expr {
	return Expr{
		frag: string(c) + " " + op + " ?",
		args: []value.Value{value.Convert(v)},
	}
}

// Eq builds "col = ?".
func (c Col) Eq(v any) Expr { return c.compare("=", v) }

// Ne builds "col <> ?".
func (c Col) Ne(v any) Expr { return c.compare("<>", v) }

// Lt builds "col < ?".
func (c Col) Lt(v any) Expr { return c.compare("<", v) }

// Lte builds "col <= ?".
func (c Col) Lte(v any) Expr { return c.compare("<=", v) }

// Gt builds "col > ?".
func (c Col) Gt(v any) Expr { return c.compare(">", v) }

// Gte builds "col >= ?".
func (c Col) Gte(v any) Expr { return c.compare(">=", v) }

// Like builds "col LIKE ?". The pattern is bound as-is; callers supply
// their own wildcards.
func (c Col) Like(pattern string) Expr { return c.compare("LIKE", pattern) }

// IsNull builds "col IS NULL".
func (c Col) IsNull() Expr {
	return Expr{frag: string(c) + " IS NULL"}
}

// IsNotNull builds "col IS NOT NULL".
func (c Col) IsNotNull() Expr {
	return Expr{frag: string(c) + " IS NOT NULL"}
}

// In builds "col IN (?, ...)". An empty value list is a construction
// error (ErrEmptyInList), surfaced when the enclosing statement builds.
func (c Col) In(vs ...any) Expr {
	return c.inList(vs, false)
}

// NotIn builds "col NOT IN (?, ...)". An empty value list is a
// construction error.
func (c Col) NotIn(vs ...any) Expr {
	return c.inList(vs, true)
}

func (c Col) inList(vs []any, not bool) Expr {
	if len(vs) == 0 {
		return errExpr(ErrEmptyInList)
	}

	op := "IN"
	if not {
		op = "NOT IN"
	}

	placeholders := strings.Repeat("?, ", len(vs))
	placeholders = placeholders[:len(placeholders)-2]
	return Expr{
		frag: string(c) + " " + op + " (" + placeholders + ")",
		args: value.ConvertAll(vs),
	}
}

// Between builds "col BETWEEN ? AND ?".
func (c Col) Between(from, to any) Expr {
	return Expr{
		frag: string(c) + " BETWEEN ? AND ?",
		args: []value.Value{value.Convert(from), value.Convert(to)},
	}
}

// InSubquery builds "col IN (<subquery>)" with the subquery's bound values
// flattened in order after any values already accumulated to the left.
func (c Col) InSubquery(sub *Subquery) Expr {
	frag, args, err := sub.Fragment()
	if err != nil {
		return errExpr(err)
	}
	return Expr{frag: string(c) + " IN (" + frag + ")", args: args}
}

// Exists builds "EXISTS (<subquery>)".
func Exists(sub *Subquery) Expr {
	frag, args, err := sub.Fragment()
	if err != nil {
		return errExpr(err)
	}
	return Expr{frag: "EXISTS (" + frag + ")", args: args}
}

// NotExists builds "NOT EXISTS (<subquery>)".
func NotExists(sub *Subquery) Expr {
	frag, args, err := sub.Fragment()
	if err != nil {
		return errExpr(err)
	}
	return Expr{frag: "NOT EXISTS (" + frag + ")", args: args}
}

// All combines a list of expressions with AND, skipping absent ones.
func All(exprs ...Expr) Expr {
	var out Expr
	for _, e := range exprs {
		out = out.And(e)
	}
	return out
}

// Any combines a list of expressions with OR, skipping absent ones.
func Any(exprs ...Expr) Expr {
	var out Expr
	for _, e := range exprs {
		out = out.Or(e)
	}
	return out
}
