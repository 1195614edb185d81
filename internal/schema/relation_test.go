package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coregx/querykit/internal/value"
)

func TestValidateRelationValues(t *testing.T) {
	rows := [][]value.Value{
		{value.Int(1), value.Text("a")},
		{value.Int(2), value.Text("b")},
	}
	assert.NoError(t, ValidateRelationValues(rows, 2))
}

func TestValidateRelationValuesEmpty(t *testing.T) {
	err := ValidateRelationValues(nil, 3)
	assert.ErrorIs(t, err, ErrRelationValueEmpty)
}

func TestValidateRelationValuesMismatch(t *testing.T) {
	rows := [][]value.Value{
		{value.Int(1), value.Text("a")},
		{value.Int(2)},
	}
	err := ValidateRelationValues(rows, 2)
	assert.ErrorIs(t, err, ErrRelationValueMismatch)

	var mismatch *RelationValueMismatchError
	assert.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 1, mismatch.Index)
	assert.Equal(t, 2, mismatch.Expected)
	assert.Equal(t, 1, mismatch.Actual)
}
