package core

import (
	"strings"

	"github.com/coregx/querykit/internal/value"
)

// cteBody is anything that can serve as the SELECT body of a CTE.
// Both *SelectQuery and *Subquery satisfy it.
type cteBody interface {
	Fragment() (string, []value.Value, error)
}

// CTE is a single common table expression: a name, an optional explicit
// column list, and a SELECT body.
type CTE struct {
	name    string
	columns []string
	body    cteBody
}

// NewCTE creates a CTE definition.
func NewCTE(name string, body cteBody, columns ...string) CTE {
	return CTE{name: name, columns: columns, body: body}
}

// WithCTE collects one or more CTE definitions and emits a single
// "WITH c1 AS (...), c2 AS (...)" prefix with the bodies' bound values
// flattened in definition order. CTE names must be unique within the group.
type WithCTE struct {
	ctes []CTE
}

// With starts a WITH group with a first CTE.
func With(name string, body cteBody, columns ...string) *WithCTE {
	w := &WithCTE{}
	return w.Append(NewCTE(name, body, columns...))
}

// Append adds another CTE definition to the group.
func (w *WithCTE) Append(cte CTE) *WithCTE {
	w.ctes = append(w.ctes, cte)
	return w
}

// prefix assembles the WITH prefix, including the trailing space.
func (w *WithCTE) prefix() (string, []value.Value, error) {
	if w == nil || len(w.ctes) == 0 {
		return "", nil, nil
	}

	seen := make(map[string]bool, len(w.ctes))
	var b strings.Builder
	var args []value.Value

	b.WriteString("WITH ")
	for i, cte := range w.ctes {
		if seen[cte.name] {
			return "", nil, WrapError(ErrDuplicateCTEName, cte.name)
		}
		seen[cte.name] = true

		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(cte.name)
		if len(cte.columns) > 0 {
			b.WriteString(" (" + strings.Join(cte.columns, ", ") + ")")
		}

		frag, bodyArgs, err := cte.body.Fragment()
		if err != nil {
			return "", nil, err
		}
		b.WriteString(" AS (" + frag + ")")
		args = append(args, bodyArgs...)
	}
	b.WriteString(" ")
	return b.String(), args, nil
}
