package value

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "NULL", KindNull.String())
	assert.Equal(t, "INTEGER", KindInt.String())
	assert.Equal(t, "DEFAULT", KindDefault.String())
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}

func TestConstructorsAndKinds(t *testing.T) {
	now := time.Now()
	id := uuid.New()

	tests := []struct {
		name string
		v    Value
		kind Kind
		want any
	}{
		{"null", Null(), KindNull, nil},
		{"bool", Bool(true), KindBool, true},
		{"int", Int(42), KindInt, int64(42)},
		{"float", Float(1.5), KindFloat, 1.5},
		{"text", Text("hi"), KindText, "hi"},
		{"blob", Blob([]byte{1, 2}), KindBlob, []byte{1, 2}},
		{"time", Time(now), KindTime, now},
		{"uuid", UUID(id), KindUUID, id},
		{"json", JSON([]byte(`{"a":1}`)), KindJSON, []byte(`{"a":1}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.v.Kind())
			assert.Equal(t, tt.want, tt.v.Unwrap())
		})
	}
}

func TestDriverValuer(t *testing.T) {
	dv, err := Int(7).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(7), dv)

	dv, err = Null().Value()
	require.NoError(t, err)
	assert.Nil(t, dv)

	// UUIDs bind as their canonical string form.
	id := uuid.New()
	dv, err = UUID(id).Value()
	require.NoError(t, err)
	assert.Equal(t, id.String(), dv)

	// The DEFAULT marker must never reach the driver.
	_, err = Default().Value()
	assert.Error(t, err)
}

func TestIsDefault(t *testing.T) {
	assert.True(t, Null().IsDefault())
	assert.True(t, Default().IsDefault())
	assert.True(t, Int(0).IsDefault())
	assert.True(t, Text("").IsDefault())
	assert.True(t, Bool(false).IsDefault())
	assert.True(t, Time(time.Time{}).IsDefault())
	assert.True(t, UUID(uuid.Nil).IsDefault())

	assert.False(t, Int(1).IsDefault())
	assert.False(t, Text("x").IsDefault())
	assert.False(t, Bool(true).IsDefault())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "NULL", Null().String())
	assert.Equal(t, "DEFAULT", Default().String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "hi", Text("hi").String())
	assert.Equal(t, "<blob 3B>", Blob([]byte{1, 2, 3}).String())
	assert.Equal(t, `{"a":1}`, JSON([]byte(`{"a":1}`)).String())
}
