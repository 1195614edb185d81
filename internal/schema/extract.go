package schema

import (
	"slices"

	"github.com/coregx/querykit/internal/value"
)

// The four extraction operations are pure in the values they emit: they
// never mutate entities, and each call converts afresh.

// ExtractAll converts every field into parallel (names, values) slices.
func ExtractAll(fields []Field) ([]string, []value.Value) {
	names := make([]string, 0, len(fields))
	values := make([]value.Value, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
		values = append(values, value.Convert(f.Value))
	}
	return names, values
}

// ExtractWithFilter converts fields, dropping excluded columns and, when
// skipNull is set, fields whose runtime value is empty-or-none. The
// returned names are disjoint from excludeCols.
func ExtractWithFilter(fields []Field, excludeCols []string, skipNull bool) ([]string, []value.Value) {
	names := make([]string, 0, len(fields))
	values := make([]value.Value, 0, len(fields))
	for _, f := range fields {
		if slices.Contains(excludeCols, f.Name) {
			continue
		}
		if skipNull && value.IsEmptyOrNone(f.Value) {
			continue
		}
		names = append(names, f.Name)
		values = append(values, value.Convert(f.Value))
	}
	return names, values
}

// ExtractWithBind filters like ExtractWithFilter but hands each retained
// (name, value) pair to the callback instead of collecting slices. Used
// by entity-driven UPDATE to interleave SET assignments with binding.
func ExtractWithBind(fields []Field, excludeCols []string, skipNull bool, bind func(name string, v value.Value)) {
	for _, f := range fields {
		if slices.Contains(excludeCols, f.Name) {
			continue
		}
		if skipNull && value.IsEmptyOrNone(f.Value) {
			continue
		}
		bind(f.Name, value.Convert(f.Value))
	}
}

// BatchExtract extracts a batch of entities into the column names taken
// from the first entity and one value row per entity. All entities must
// share the first entity's field layout; a diverging row is rejected by
// the relation validator before it can corrupt a bulk insert.
func BatchExtract(entities []any, excludeCols []string, skipNull bool) ([]string, [][]value.Value, error) {
	if len(entities) == 0 {
		return nil, nil, &RelationValueEmptyError{Count: 0}
	}

	firstFields, err := FieldsOf(entities[0])
	if err != nil {
		return nil, nil, err
	}
	names, firstRow := ExtractWithFilter(firstFields, excludeCols, skipNull)

	rows := make([][]value.Value, 0, len(entities))
	rows = append(rows, firstRow)

	for _, entity := range entities[1:] {
		fields, err := FieldsOf(entity)
		if err != nil {
			return nil, nil, err
		}
		_, row := ExtractWithFilter(fields, excludeCols, skipNull)
		rows = append(rows, row)
	}

	if err := ValidateRelationValues(rows, len(names)); err != nil {
		return nil, nil, err
	}
	return names, rows, nil
}
