package core

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// scanner handles reflection-based scanning of SQL rows into structs.
// Struct metadata is cached per type.
type scanner struct {
	mu    sync.RWMutex
	cache map[reflect.Type]*structInfo
}

// structInfo contains cached metadata about a struct type.
type structInfo struct {
	byColumn map[string]*fieldInfo
}

// fieldInfo describes how to scan into one struct field.
type fieldInfo struct {
	index []int // field index path for embedded structs
}

var globalScanner = &scanner{cache: make(map[reflect.Type]*structInfo)}

// getStructInfo returns cached struct metadata, building it on first use.
func (s *scanner) getStructInfo(typ reflect.Type) (*structInfo, error) {
	s.mu.RLock()
	info, ok := s.cache[typ]
	s.mu.RUnlock()
	if ok {
		return info, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if info, ok := s.cache[typ]; ok {
		return info, nil
	}

	info = &structInfo{byColumn: make(map[string]*fieldInfo)}
	if err := collectFields(typ, nil, info); err != nil {
		return nil, err
	}
	s.cache[typ] = info
	return info, nil
}

// collectFields walks a struct type, flattening embedded structs and
// mapping db tags (or lowercased field names) to index paths.
func collectFields(typ reflect.Type, index []int, info *structInfo) error {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("scanner: expected struct, got %s", typ.Kind())
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldIndex := append(append([]int{}, index...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := collectFields(field.Type, fieldIndex, info); err != nil {
				return err
			}
			continue
		}

		column := strings.ToLower(field.Name)
		if tag, ok := field.Tag.Lookup("db"); ok {
			name := strings.Split(tag, ",")[0]
			if name == "-" {
				continue
			}
			if name != "" {
				column = strings.ToLower(name)
			}
		}

		if _, exists := info.byColumn[column]; !exists {
			info.byColumn[column] = &fieldInfo{index: fieldIndex}
		}
	}
	return nil
}

// scanRow scans the current row into dest, which must be a non-nil
// pointer to a struct or to a single scannable value.
func (s *scanner) scanRow(rows *sql.Rows, dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("scanner: dest must be a non-nil pointer")
	}
	elem := v.Elem()

	// Single-value destinations (counts, exists probes) scan directly.
	if elem.Kind() != reflect.Struct || elem.Type() == timeType {
		return rows.Scan(dest)
	}

	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	info, err := s.getStructInfo(elem.Type())
	if err != nil {
		return err
	}

	targets := make([]any, len(columns))
	for i, col := range columns {
		fi, ok := info.byColumn[strings.ToLower(col)]
		if !ok {
			var discard any
			targets[i] = &discard
			continue
		}
		targets[i] = elem.FieldByIndex(fi.index).Addr().Interface()
	}
	return rows.Scan(targets...)
}

// scanRows scans all rows into dest, a pointer to a slice of structs or
// scannable values.
func (s *scanner) scanRows(rows *sql.Rows, dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("scanner: dest must be a non-nil pointer to a slice")
	}
	sliceVal := v.Elem()
	if sliceVal.Kind() != reflect.Slice {
		return fmt.Errorf("scanner: dest must point to a slice, got %s", sliceVal.Kind())
	}

	elemType := sliceVal.Type().Elem()
	for rows.Next() {
		elem := reflect.New(elemType)
		if err := s.scanRow(rows, elem.Interface()); err != nil {
			return err
		}
		sliceVal.Set(reflect.Append(sliceVal, elem.Elem()))
	}
	return rows.Err()
}

// time.Time is a struct but scans as a single driver value.
var timeType = reflect.TypeOf(time.Time{})
