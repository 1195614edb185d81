// Package schema bridges runtime-typed field access on entity records to
// the tagged value union used for parameter binding. An entity is any
// record that can enumerate its (column name, value) pairs: either by
// implementing Entity explicitly, or through the reflection fallback that
// reads `db` struct tags.
package schema

import (
	"errors"
	"reflect"
	"strings"
)

// Field is one named field of an entity, carrying the raw runtime value.
type Field struct {
	Name  string
	Value any
}

// Entity enumerates an entity's fields in declaration order.
// Implementing Entity avoids reflection on hot paths.
type Entity interface {
	Fields() []Field
}

// TableNamer provides a custom table name for an entity.
type TableNamer interface {
	TableName() string
}

// FieldsOf returns the entity's fields. Entities implementing Entity are
// used directly; otherwise the struct is walked by reflection using
// `db:"column"` tags (fields tagged "-" are skipped, untagged fields map
// to the snake_case field name, embedded structs are flattened).
func FieldsOf(entity any) ([]Field, error) {
	if e, ok := entity.(Entity); ok {
		return e.Fields(), nil
	}

	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, errors.New("schema: nil entity")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, errors.New("schema: entity must be a struct or implement Entity")
	}

	return structFields(v), nil
}

// structFields walks a struct value, flattening embedded structs.
func structFields(v reflect.Value) []Field {
	t := v.Type()
	fields := make([]Field, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			fields = append(fields, structFields(v.Field(i))...)
			continue
		}

		name := snakeCase(sf.Name)
		if tag, ok := sf.Tag.Lookup("db"); ok {
			column := strings.Split(tag, ",")[0]
			if column == "-" {
				continue
			}
			if column != "" {
				name = column
			}
		}

		fields = append(fields, Field{Name: name, Value: v.Field(i).Interface()})
	}
	return fields
}

// snakeCase converts a Go field name to a snake_case column name.
func snakeCase(field string) string {
	result := make([]rune, 0, len(field)+5)
	for i, r := range field {
		if i > 0 && 'A' <= r && r <= 'Z' {
			result = append(result, '_')
		}
		result = append(result, r)
	}
	return strings.ToLower(string(result))
}

// TableNameOf infers a table name: TableNamer when implemented, otherwise
// the snake_case struct name.
func TableNameOf(entity any) string {
	if tn, ok := entity.(TableNamer); ok {
		return tn.TableName()
	}

	t := reflect.TypeOf(entity)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return snakeCase(t.Name())
}
