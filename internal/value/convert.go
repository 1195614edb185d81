package value

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Convert converts an arbitrary runtime value into a Value. Pointer
// wrapping is unwrapped to unbounded depth (including pointer-to-pointer)
// before matching a concrete scalar type. Values with no matching variant
// convert to Null; Convert never panics.
func Convert(v any) Value {
	if v == nil {
		return Null()
	}

	switch t := v.(type) {
	case Value:
		return t
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Int(int64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return Int(int64(t))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case string:
		return Text(t)
	case []byte:
		return Blob(t)
	case time.Time:
		return Time(t)
	case uuid.UUID:
		return UUID(t)
	case json.RawMessage:
		return JSON(t)
	}

	// Unwrap pointers and interface indirection, then retry on the element.
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null()
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return Null()
	}
	if rv.CanInterface() {
		unwrapped := rv.Interface()
		if _, again := unwrapped.(Value); !again {
			if !sameDynamicType(v, unwrapped) {
				return Convert(unwrapped)
			}
		}
	}

	// Named types with a supported underlying kind (e.g. type Status int).
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return Text(rv.String())
	default:
		return Null()
	}
}

// sameDynamicType guards against infinite recursion when reflection
// unwrapping produced the identical dynamic type again.
func sameDynamicType(a, b any) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

// ConvertAll converts a slice of arbitrary values.
func ConvertAll(vs []any) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Convert(v)
	}
	return out
}

// IsEmptyOrNone reports whether a runtime value is Null-equivalent:
// nil at any pointer depth, an empty string, the literal string "null"
// (case-insensitive), or an empty byte buffer. Used by update/upsert
// paths to skip fields the caller did not populate.
func IsEmptyOrNone(v any) bool {
	if v == nil {
		return true
	}

	switch t := v.(type) {
	case Value:
		if t.IsNull() {
			return true
		}
		return IsEmptyOrNone(t.Unwrap())
	case string:
		return t == "" || strings.EqualFold(t, "null")
	case []byte:
		return len(t) == 0
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return true
	}

	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		return s == "" || strings.EqualFold(s, "null")
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Len() == 0
		}
	}

	if rv.CanInterface() {
		if unwrapped := rv.Interface(); !sameDynamicType(v, unwrapped) {
			return IsEmptyOrNone(unwrapped)
		}
	}
	return false
}
