package core

import "github.com/coregx/querykit/internal/value"

// Direction is a sort direction for ORDER BY clauses.
type Direction int

// Sort directions.
const (
	Asc Direction = iota
	Desc
)

// String returns the SQL keyword for the direction.
func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// JoinKind identifies one of the five supported join kinds.
type JoinKind int

// Join kinds.
const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

// String returns the SQL keyword for the join kind.
func (k JoinKind) String() string {
	switch k {
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullJoin:
		return "FULL JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	default:
		return "INNER JOIN"
	}
}

// Join is a single join clause: kind, target table (possibly aliased) and
// the ON expression. Every kind except CROSS requires an ON expression.
type Join struct {
	Kind  JoinKind
	Table string
	On    Expr
}

// fragment emits " <KIND> JOIN <table> ON <expr>".
func (j Join) fragment() (string, []value.Value, error) {
	if j.Kind == CrossJoin {
		return " " + j.Kind.String() + " " + j.Table, nil, nil
	}

	frag, args, err := j.On.Fragment()
	if err != nil {
		return "", nil, err
	}
	if frag == "" {
		return "", nil, ErrOnExpressionRequired
	}
	return " " + j.Kind.String() + " " + j.Table + " ON " + frag, args, nil
}
