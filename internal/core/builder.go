package core

import "github.com/coregx/querykit/internal/value"

// Builder is anything that can finalize into a SQL statement: the text
// with "?" placeholders and the parameter list in placeholder order. All
// five statement builders satisfy it; the executor accepts any Builder.
type Builder interface {
	Build() (sql string, params []value.Value, err error)
}

// CountPlaceholders counts "?" placeholders in a finalized statement,
// skipping single-quoted string literals. For every built statement the
// count equals the parameter list length.
func CountPlaceholders(sql string) int {
	n := 0
	inString := false
	for i := 0; i < len(sql); i++ {
		switch {
		case sql[i] == '\'':
			inString = !inString
		case sql[i] == '?' && !inString:
			n++
		}
	}
	return n
}
