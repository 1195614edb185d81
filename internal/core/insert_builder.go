package core

import (
	"strings"

	"github.com/coregx/querykit/internal/dialects"
	"github.com/coregx/querykit/internal/value"
)

// InsertQuery represents an INSERT statement being built, optionally with
// a dialect-specific conflict-resolution tail (UPSERT) and a RETURNING
// clause. Rows holding the DEFAULT marker value emit the dialect's
// DEFAULT keyword in place of a bind.
type InsertQuery struct {
	dialect   dialects.Dialect
	table     string
	columns   []string
	rows      [][]value.Value
	conflict  []string
	update    []string
	upsert    bool
	returning []string
	err       error
}

// InsertInto starts an INSERT statement. The dialect governs the upsert
// tail, the DEFAULT keyword, and RETURNING support; SQLite syntax is the
// default when none is set.
func InsertInto(table string) *InsertQuery {
	return &InsertQuery{
		dialect: dialects.Get("sqlite"),
		table:   table,
	}
}

// WithDialect overrides the statement's dialect.
func (iq *InsertQuery) WithDialect(d dialects.Dialect) *InsertQuery {
	iq.dialect = d
	return iq
}

// Columns sets the column list. Every row must match its length.
func (iq *InsertQuery) Columns(columns ...string) *InsertQuery {
	iq.columns = columns
	return iq
}

// Values appends one row of raw values, converted through the value layer.
func (iq *InsertQuery) Values(row ...any) *InsertQuery {
	return iq.ValueRow(value.ConvertAll(row))
}

// ValueRow appends one pre-converted row.
func (iq *InsertQuery) ValueRow(row []value.Value) *InsertQuery {
	if len(iq.columns) > 0 && len(row) != len(iq.columns) {
		iq.err = WrapError(ErrColumnsListEmpty, "row length does not match column list")
		return iq
	}
	iq.rows = append(iq.rows, row)
	return iq
}

// Rows appends multiple pre-converted rows.
func (iq *InsertQuery) Rows(rows [][]value.Value) *InsertQuery {
	for _, row := range rows {
		iq.ValueRow(row)
	}
	return iq
}

/// OnConflict adds the dialect upsert tail: conflictColumns name the unique
// key and updateCols are rewritten from the incoming row on conflict.
// An empty updateCols means "do nothing" where the dialect supports it.
func (iq *InsertQuery) OnConflict(conflictColumns, updateCols []string) *InsertQuery {
	iq.upsert = true
	iq.conflict = conflictColumns
	iq.update = updateCols
	return iq
}

// Returning adds a RETURNING clause. An error is deferred to Build when
// the dialect has no RETURNING support.
func (iq *InsertQuery) Returning(columns ...string) *InsertQuery {
	if !iq.dialect.SupportsReturning() {
		iq.err = ErrReturningNotSupported
		return iq
	}
	iq.returning = columns
	return iq
}

// assemble renders the statement.
func (iq *InsertQuery) assemble() (string, []value.Value, error) {
	if iq.err != nil {
		return "", nil, iq.err
	}
	if len(iq.rows) == 0 {
		return "", nil, ErrNoEntitiesProvided
	}
	if len(iq.columns) == 0 {
		return "", nil, ErrColumnsListEmpty
	}

	var b strings.Builder
	args := make([]value.Value, 0, len(iq.rows)*len(iq.columns))

	b.WriteString("INSERT INTO " + iq.table)
	b.WriteString(" (" + strings.Join(iq.columns, ", ") + ") VALUES ")

	for i, row := range iq.rows {
		if len(row) != len(iq.columns) {
			return "", nil, WrapError(ErrColumnsListEmpty, "row length does not match column list")
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			if v.IsDefaultMarker() {
				b.WriteString(iq.dialect.DefaultKeyword())
				continue
			}
			b.WriteString("?")
			args = append(args, v)
		}
		b.WriteString(")")
	}

	if iq.upsert {
		b.WriteString(iq.dialect.UpsertSQL(iq.conflict, iq.update))
	}

	if len(iq.returning) > 0 {
		b.WriteString(" RETURNING " + strings.Join(iq.returning, ", "))
	}

	return b.String(), args, nil
}

// Build finalizes the statement, returning the SQL text with "?"
// placeholders and the flat parameter list in placeholder order.
func (iq *InsertQuery) Build() (string, []value.Value, error) {
	return iq.assemble()
}

// BuildMut finalizes the statement and drains the accumulated rows and
// clause slots, leaving an empty builder for staged emission.
func (iq *InsertQuery) BuildMut() (string, []value.Value, error) {
	sql, args, err := iq.assemble()
	iq.rows = nil
	iq.upsert = false
	iq.conflict = nil
	iq.update = nil
	iq.returning = nil
	return sql, args, err
}
