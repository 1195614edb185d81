// Package value provides the tagged scalar union used for SQL parameter
// binding. Every bindable value travels through a Value, which knows its
// kind, encodes itself through database/sql's driver.Valuer interface,
// and reports the SQL type name for each supported dialect.
package value

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind identifies which variant of the scalar union a Value holds.
// Exactly one variant is inhabited per Value; KindNull is a real variant,
// distinct from an absent value.
type Kind int

// Supported value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindBlob
	KindTime
	KindUUID
	KindJSON
	// KindDefault is a marker kind: the statement builders emit the DEFAULT
	// keyword (or NULL, per dialect) instead of binding a placeholder.
	KindDefault
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindBool:
		return "BOOL"
	case KindInt:
		return "INTEGER"
	case KindFloat:
		return "REAL"
	case KindText:
		return "TEXT"
	case KindBlob:
		return "BLOB"
	case KindTime:
		return "DATETIME"
	case KindUUID:
		return "UUID"
	case KindJSON:
		return "JSON"
	case KindDefault:
		return "DEFAULT"
	default:
		return "UNKNOWN"
	}
}

// Value is one bindable scalar. Immutable once constructed.
type Value struct {
	kind Kind

	b  bool
	i  int64
	f  float64
	s  string
	by []byte
	t  time.Time
	u  uuid.UUID
}

// Null returns the Null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Default returns the DEFAULT marker value. It is not bindable; builders
// substitute the dialect's DEFAULT keyword for it.
func Default() Value {
	return Value{kind: KindDefault}
}

// Bool wraps a bool.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Int wraps any integer as int64.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float wraps a float64.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// Text wraps a string.
func Text(v string) Value {
	return Value{kind: KindText, s: v}
}

// Blob wraps a byte slice. The slice is not copied; callers must not
// mutate it after handing it over.
func Blob(v []byte) Value {
	return Value{kind: KindBlob, by: v}
}

// Time wraps a time.Time.
func Time(v time.Time) Value {
	return Value{kind: KindTime, t: v}
}

// UUID wraps a uuid.UUID.
func UUID(v uuid.UUID) Value {
	return Value{kind: KindUUID, u: v}
}

// JSON wraps a pre-serialized JSON document.
func JSON(raw []byte) Value {
	return Value{kind: KindJSON, by: raw}
}

// Kind returns the inhabited variant.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is the Null variant.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsDefaultMarker reports whether the value is the DEFAULT marker.
func (v Value) IsDefaultMarker() bool {
	return v.kind == KindDefault
}

// IsDefault reports whether the value equals the scalar default for its
// variant: 0, 0.0, false, "", empty blob, zero time, zero UUID. Null and
// the DEFAULT marker are considered default. Used for auto-generated
// primary keys: a default PK value means "let the database generate it".
func (v Value) IsDefault() bool {
	switch v.kind {
	case KindNull, KindDefault:
		return true
	case KindBool:
		return !v.b
	case KindInt:
		return v.i == 0
	case KindFloat:
		return v.f == 0
	case KindText:
		return v.s == ""
	case KindBlob, KindJSON:
		return len(v.by) == 0
	case KindTime:
		return v.t.IsZero()
	case KindUUID:
		return v.u == uuid.Nil
	default:
		return false
	}
}

// Value implements driver.Valuer so a Value can be passed directly to
// database/sql as a bind parameter.
func (v Value) Value() (driver.Value, error) {
	switch v.kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.b, nil
	case KindInt:
		return v.i, nil
	case KindFloat:
		return v.f, nil
	case KindText:
		return v.s, nil
	case KindBlob, KindJSON:
		return v.by, nil
	case KindTime:
		return v.t, nil
	case KindUUID:
		return v.u.String(), nil
	case KindDefault:
		return nil, fmt.Errorf("value: DEFAULT marker is not bindable")
	default:
		return nil, fmt.Errorf("value: unknown kind %d", int(v.kind))
	}
}

// Unwrap returns the underlying Go scalar, or nil for Null.
func (v Value) Unwrap() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBlob, KindJSON:
		return v.by
	case KindTime:
		return v.t
	case KindUUID:
		return v.u
	default:
		return nil
	}
}

// String formats the value for logs and debug output.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindDefault:
		return "DEFAULT"
	case KindText:
		return v.s
	case KindBlob:
		return fmt.Sprintf("<blob %dB>", len(v.by))
	case KindJSON:
		return string(v.by)
	default:
		return fmt.Sprintf("%v", v.Unwrap())
	}
}
