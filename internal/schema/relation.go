package schema

import (
	"errors"
	"fmt"

	"github.com/coregx/querykit/internal/value"
)

// Cross-entity relation validation: every value row bound into one
// statement must carry the same number of values, and a relation with no
// rows at all is rejected outright.

// Sentinel errors for relation validation.
var (
	// ErrRelationValueMismatch is returned when a value row diverges from
	// the expected layout.
	ErrRelationValueMismatch = errors.New("relation value mismatch")
	// ErrRelationValueEmpty is returned when a relation carries no values.
	ErrRelationValueEmpty = errors.New("relation values are empty")
)

// RelationValueMismatchError reports the diverging row.
type RelationValueMismatchError struct {
	Index    int
	Expected int
	Actual   int
}

func (e *RelationValueMismatchError) Error() string {
	return fmt.Sprintf("relation value mismatch at index %d: expected %d values, got %d",
		e.Index, e.Expected, e.Actual)
}

// Is matches ErrRelationValueMismatch.
func (e *RelationValueMismatchError) Is(target error) bool {
	return target == ErrRelationValueMismatch
}

// RelationValueEmptyError reports an empty relation.
type RelationValueEmptyError struct {
	Count int
}

func (e *RelationValueEmptyError) Error() string {
	return fmt.Sprintf("relation values are empty: %d", e.Count)
}

// Is matches ErrRelationValueEmpty.
func (e *RelationValueEmptyError) Is(target error) bool {
	return target == ErrRelationValueEmpty
}

// ValidateRelationValues checks that every row carries exactly expected
// values and that the relation is non-empty.
func ValidateRelationValues(rows [][]value.Value, expected int) error {
	if len(rows) == 0 {
		return &RelationValueEmptyError{Count: expected}
	}
	for i, row := range rows {
		if len(row) != expected {
			return &RelationValueMismatchError{Index: i, Expected: expected, Actual: len(row)}
		}
	}
	return nil
}
