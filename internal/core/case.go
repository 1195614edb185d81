// Copyright (c) 2025 COREGX. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import (
	"strings"

	"github.com/coregx/querykit/internal/value"
)

// CaseExpr represents a searched SQL CASE expression: an ordered list of
// predicate-to-result arms plus an optional ELSE. Results are bound as
// parameters; use WhenRaw and ElseRaw for non-parameterized results.
//
// Example:
//
//	core.Case().
//	    When(core.Col("age").Lt(18), "minor").
//	    When(core.Col("age").Lt(65), "adult").
//	    Else("senior").
//	    As("age_group")
//
// Emits: CASE WHEN age < ? THEN ? WHEN age < ? THEN ? ELSE ? END AS age_group
type CaseExpr struct {
	whens    []whenArm
	elseSet  bool
	elseVal  value.Value
	elseRaw  string
	alias    string
	deferred error
}

type whenArm struct {
	predicate Expr
	raw       string // non-empty when the result is a raw fragment
	result    value.Value
}

// Case starts a CASE expression.
func Case() *CaseExpr {
	return &CaseExpr{}
}

// When appends a WHEN arm binding the result as a parameter.
func (c *CaseExpr) When(predicate Expr, result any) *CaseExpr {
	c.whens = append(c.whens, whenArm{predicate: predicate, result: value.Convert(result)})
	return c
}

// WhenRaw appends a WHEN arm whose result is a verbatim SQL fragment.
func (c *CaseExpr) WhenRaw(predicate Expr, result string) *CaseExpr {
	c.whens = append(c.whens, whenArm{predicate: predicate, raw: result})
	return c
}

// Else sets the ELSE result, bound as a parameter.
func (c *CaseExpr) Else(result any) *CaseExpr {
	c.elseSet = true
	c.elseVal = value.Convert(result)
	return c
}

// ElseRaw sets the ELSE result as a verbatim SQL fragment.
func (c *CaseExpr) ElseRaw(result string) *CaseExpr {
	c.elseSet = true
	c.elseRaw = result
	return c
}

// As sets the projection alias.
func (c *CaseExpr) As(alias string) *CaseExpr {
	c.alias = alias
	return c
}

// fragment assembles the CASE expression and its bound values.
func (c *CaseExpr) fragment() (string, []value.Value, error) {
	if c.deferred != nil {
		return "", nil, c.deferred
	}
	if len(c.whens) == 0 {
		return "", nil, nil
	}

	var b strings.Builder
	args := make([]value.Value, 0, len(c.whens)*2+1)

	b.WriteString("CASE")
	for _, arm := range c.whens {
		frag, predArgs, err := arm.predicate.Fragment()
		if err != nil {
			return "", nil, err
		}
		b.WriteString(" WHEN ")
		b.WriteString(frag)
		args = append(args, predArgs...)

		b.WriteString(" THEN ")
		if arm.raw != "" {
			b.WriteString(arm.raw)
		} else {
			b.WriteString("?")
			args = append(args, arm.result)
		}
	}

	if c.elseSet {
		b.WriteString(" ELSE ")
		if c.elseRaw != "" {
			b.WriteString(c.elseRaw)
		} else {
			b.WriteString("?")
			args = append(args, c.elseVal)
		}
	}

	b.WriteString(" END")
	if c.alias != "" {
		b.WriteString(" AS " + c.alias)
	}
	return b.String(), args, nil
}
