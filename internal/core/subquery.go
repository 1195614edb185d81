package core

import (
	"strconv"
	"strings"

	"github.com/coregx/querykit/internal/value"
)

// Subquery is a constrained SELECT-like builder designed to be embedded in
// a parent statement. It records an ordered sequence of text and bind
// fragments rather than a fully-rendered statement, so the parent's final
// placeholder numbering stays correct when the dialect rewrite runs once
// over the assembled text.
type Subquery struct {
	pieces []subqueryPiece
	err    error
}

type subqueryPiece struct {
	text string
	args []value.Value
}

// NewSubquery starts a subquery with an explicit column projection.
// With no columns the projection defaults to "*".
func NewSubquery(columns ...string) *Subquery {
	proj := "*"
	if len(columns) > 0 {
		proj = strings.Join(columns, ", ")
	}
	sub := &Subquery{}
	sub.push("SELECT "+proj, nil)
	return sub
}

func (s *Subquery) push(text string, args []value.Value) {
	s.pieces = append(s.pieces, subqueryPiece{text: text, args: args})
}

// From names the source table.
func (s *Subquery) From(table string) *Subquery {
	s.push(" FROM "+table, nil)
	return s
}

// Where appends the predicate. Successive calls combine with AND.
func (s *Subquery) Where(e Expr) *Subquery {
	frag, args, err := e.Fragment()
	if err != nil {
		s.err = err
		return s
	}
	if frag == "" {
		return s
	}

	kw := " WHERE "
	if s.hasWhere() {
		kw = " AND "
	}
	s.push(kw+frag, args)
	return s
}

func (s *Subquery) hasWhere() bool {
	for _, p := range s.pieces {
		if strings.HasPrefix(p.text, " WHERE ") {
			return true
		}
	}
	return false
}

// OrderBy appends an ORDER BY clause.
func (s *Subquery) OrderBy(column string, dir Direction) *Subquery {
	s.push(" ORDER BY "+column+" "+dir.String(), nil)
	return s
}

// Limit appends an inlined LIMIT clause.
func (s *Subquery) Limit(n int64) *Subquery {
	s.push(" LIMIT "+strconv.FormatInt(n, 10), nil)
	return s
}

// Fragment assembles the recorded pieces into a fragment and the bound
// values flattened in recording order.
func (s *Subquery) Fragment() (string, []value.Value, error) {
	if s.err != nil {
		return "", nil, s.err
	}

	var b strings.Builder
	var args []value.Value
	for _, p := range s.pieces {
		b.WriteString(p.text)
		args = append(args, p.args...)
	}
	return b.String(), args, nil
}
