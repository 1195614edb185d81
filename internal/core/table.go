package core

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/coregx/querykit/internal/schema"
	"github.com/coregx/querykit/internal/value"
)

// PrimaryKey describes a table's key: a single column (optionally
// auto-generated by the database) or a composite of two or more columns.
type PrimaryKey struct {
	columns []string
	auto    bool
	err     error
}

// SingleKey declares a single-column primary key. autoGenerate marks the
// column as database-assigned; upserts substitute the DEFAULT keyword when
// the entity carries no value for it.
func SingleKey(name string, autoGenerate bool) PrimaryKey {
	pk := PrimaryKey{columns: []string{name}, auto: autoGenerate}
	if name == "" {
		pk.err = ErrNoPrimaryKeyDefined
	}
	return pk
}

// CompositeKey declares a composite primary key of at least two non-empty
// column names.
func CompositeKey(names ...string) PrimaryKey {
	pk := PrimaryKey{columns: names}
	if len(names) < 2 {
		pk.err = WrapError(ErrNoPrimaryKeyDefined, "composite key requires at least two columns")
		return pk
	}
	for _, n := range names {
		if n == "" {
			pk.err = WrapError(ErrNoPrimaryKeyDefined, "composite key column name is empty")
			return pk
		}
	}
	return pk
}

// Columns returns the key's column names in declaration order.
func (pk PrimaryKey) Columns() []string { return pk.columns }

// IsComposite reports whether the key spans multiple columns.
func (pk PrimaryKey) IsComposite() bool { return len(pk.columns) > 1 }

// AutoGenerate reports whether a single key is database-assigned.
func (pk PrimaryKey) AutoGenerate() bool { return pk.auto }

// PageResult is one page of rows plus the total matching-row count.
type PageResult[T any] struct {
	Data       []T
	Total      int64
	PageNumber int64
	PageSize   int64
}

// CursorResult is one cursor page plus the cursor for the next page.
// NextCursor is nil when the page came back shorter than the limit.
type CursorResult[T any] struct {
	Data       []T
	NextCursor any
}

// tableBase carries the behavior the two facades share. All verbs check
// the construction error first, so a facade built with a mismatched key
// fails uniformly.
type tableBase struct {
	exec *Executor
	name string
	pk   PrimaryKey
	err  error
}

// Name returns the table name.
func (t *tableBase) Name() string { return t.name }

// readPredicate assembles the process-wide predicates that apply to reads
// on this table: the soft-delete flag filter and the global filter
// expression. Pure inserts never call this.
func (t *tableBase) readPredicate() Expr {
	var e Expr
	if sd := GlobalSoftDelete(); sd.AppliesTo(t.name) {
		e = e.And(Col(sd.Field).Eq(false))
	}
	return e.And(t.mutationPredicate())
}

// mutationPredicate assembles the predicates that apply to updates and
// deletes: only the global filter. The soft-delete flag filter is a read
// concern; a delete rewritten into a soft-delete UPDATE carries the
// caller's predicate unchanged.
func (t *tableBase) mutationPredicate() Expr {
	var e Expr
	if gf := GlobalFilter(); gf.AppliesTo(t.name) {
		e = e.And(gf.Filter)
	}
	return e
}

// pkPredicate builds "k1 = ? AND k2 = ? ..." in key declaration order.
func (t *tableBase) pkPredicate(keys []any) (Expr, error) {
	if len(keys) == 0 || len(keys) != len(t.pk.columns) {
		return Expr{}, ErrNoPrimaryKeyDefined
	}
	var e Expr
	for i, col := range t.pk.columns {
		e = e.And(Col(col).Eq(keys[i]))
	}
	return e, nil
}

// checkSoftDeleteColumn rejects entities whose declared soft-delete column
// carries a non-boolean value.
func (t *tableBase) checkSoftDeleteColumn(fields []schema.Field) error {
	sd := GlobalSoftDelete()
	if !sd.AppliesTo(t.name) {
		return nil
	}
	for _, f := range fields {
		if f.Name != sd.Field {
			continue
		}
		switch f.Value.(type) {
		case bool, *bool, nil:
			return nil
		default:
			return ErrSoftDeleteColumnTypeInvalid
		}
	}
	return nil
}

// insertMany extracts the batch and assembles a multi-row INSERT.
func (t *tableBase) insertMany(entities []any) (*InsertQuery, error) {
	if t.err != nil {
		return nil, t.err
	}
	if len(entities) == 0 {
		return nil, ErrNoEntitiesProvided
	}
	firstFields, err := schema.FieldsOf(entities[0])
	if err != nil {
		return nil, err
	}
	if err := t.checkSoftDeleteColumn(firstFields); err != nil {
		return nil, err
	}

	// An auto-generated key left at its default on every entity is omitted
	// from the column list so the database assigns it.
	var exclude []string
	if t.pk.auto && !t.pk.IsComposite() {
		omit := true
		for _, f := range firstFields {
			if f.Name == t.pk.columns[0] && !value.Convert(f.Value).IsDefault() {
				omit = false
			}
		}
		if omit {
			exclude = t.pk.columns
		}
	}

	names, rows, err := schema.BatchExtract(entities, exclude, true)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrColumnsListEmpty
	}
	return InsertInto(t.name).
		WithDialect(t.exec.Dialect()).
		Columns(names...).
		Rows(rows), nil
}

// upsertRow converts one entity for an upsert, substituting the DEFAULT
// marker for an absent auto-generated key value.
func (t *tableBase) upsertRow(entity any) ([]string, []value.Value, error) {
	fields, err := schema.FieldsOf(entity)
	if err != nil {
		return nil, nil, err
	}
	if err := t.checkSoftDeleteColumn(fields); err != nil {
		return nil, nil, err
	}

	names := make([]string, 0, len(fields))
	row := make([]value.Value, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
		v := value.Convert(f.Value)
		if t.pk.auto && !t.pk.IsComposite() && f.Name == t.pk.columns[0] && v.IsDefault() {
			v = value.Default()
		}
		row = append(row, v)
	}
	return names, row, nil
}

// upsertMany assembles a multi-row INSERT with the dialect's conflict tail
// keyed on the primary key. It also returns the full column list and the
// key column list, which callers composing their own conflict tails need.
func (t *tableBase) upsertMany(entities []any) (*InsertQuery, []string, []string, error) {
	if t.err != nil {
		return nil, nil, nil, t.err
	}
	if len(entities) == 0 {
		return nil, nil, nil, ErrNoEntitiesProvided
	}

	var names []string
	rows := make([][]value.Value, 0, len(entities))
	for _, entity := range entities {
		n, row, err := t.upsertRow(entity)
		if err != nil {
			return nil, nil, nil, err
		}
		if names == nil {
			names = n
		}
		rows = append(rows, row)
	}
	if len(names) == 0 {
		return nil, nil, nil, ErrColumnsListEmpty
	}
	if err := schema.ValidateRelationValues(rows, len(names)); err != nil {
		return nil, nil, nil, err
	}

	updateCols := make([]string, 0, len(names))
	for _, n := range names {
		if !contains(t.pk.columns, n) {
			updateCols = append(updateCols, n)
		}
	}

	iq := InsertInto(t.name).
		WithDialect(t.exec.Dialect()).
		Columns(names...).
		Rows(rows).
		OnConflict(t.pk.columns, updateCols)
	return iq, names, t.pk.columns, nil
}

// updateOne builds an UPDATE from the entity: key fields become the WHERE
// predicate, all remaining non-empty fields become SET assignments.
func (t *tableBase) updateOne(entity any) (*UpdateQuery, error) {
	if t.err != nil {
		return nil, t.err
	}
	fields, err := schema.FieldsOf(entity)
	if err != nil {
		return nil, err
	}

	keys := make([]any, len(t.pk.columns))
	found := make([]bool, len(t.pk.columns))
	for _, f := range fields {
		for i, col := range t.pk.columns {
			if f.Name == col {
				keys[i] = f.Value
				found[i] = true
			}
		}
	}
	for i, ok := range found {
		if !ok || value.Convert(keys[i]).IsDefault() {
			return nil, &PrimaryKeyNotFoundError{Column: t.pk.columns[i]}
		}
	}

	uq := Update(t.name)
	assigned := 0
	schema.ExtractWithBind(fields, t.pk.columns, true, func(name string, v value.Value) {
		uq.SetValue(name, v)
		assigned++
	})
	if assigned == 0 {
		return nil, ErrColumnsListEmpty
	}

	where, err := t.pkPredicate(keys)
	if err != nil {
		return nil, err
	}
	return uq.Where(where.And(t.mutationPredicate())), nil
}

// updateByCond builds an UPDATE over parallel column/value lists with the
// caller's predicate plus the global filter.
func (t *tableBase) updateByCond(columns []string, values []any, cond Expr) (*UpdateQuery, error) {
	if t.err != nil {
		return nil, t.err
	}
	uq := Update(t.name).SetCols(columns, values)
	return uq.Where(cond.And(t.mutationPredicate())), nil
}

// deleteWhere rewrites the delete into a soft-delete UPDATE when the
// convention covers this table, otherwise emits a plain DELETE.
func (t *tableBase) deleteWhere(cond Expr) (Builder, error) {
	if t.err != nil {
		return nil, t.err
	}
	where := cond.And(t.mutationPredicate())
	if sd := GlobalSoftDelete(); sd.AppliesTo(t.name) {
		return Update(t.name).Set(sd.Field, true).Where(where), nil
	}
	return DeleteFrom(t.name).Where(where), nil
}

// restoreWhere flips the soft-delete flag back to false. Only the global
// filter applies; the soft-delete predicate would exclude the very rows
// being restored.
func (t *tableBase) restoreWhere(cond Expr) (*UpdateQuery, error) {
	if t.err != nil {
		return nil, t.err
	}
	sd := GlobalSoftDelete()
	if sd == nil || sd.Field == "" {
		return nil, ErrSoftDeleteConfigNotSet
	}
	if !sd.AppliesTo(t.name) {
		return nil, ErrRestoreNotSupported
	}

	uq := Update(t.name).Set(sd.Field, false)
	return uq.Where(cond.And(t.mutationPredicate())), nil
}

// selectWhere starts a filtered SELECT over the table.
func (t *tableBase) selectWhere(cond Expr) *SelectQuery {
	return Select().From(t.name).Where(cond.And(t.readPredicate()))
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Table is the single-primary-key facade: high-level verbs over one
// logical table, combining entity extraction, global filter application,
// statement construction, and execution.
type Table[T any] struct {
	tableBase
}

// NewTable creates a single-key facade. A composite key descriptor is a
// construction error surfaced by every verb (ErrSingleKeyTypeInvalid).
func NewTable[T any](exec *Executor, name string, pk PrimaryKey) *Table[T] {
	t := &Table[T]{tableBase{exec: exec, name: name, pk: pk, err: pk.err}}
	if t.err == nil && pk.IsComposite() {
		t.err = ErrSingleKeyTypeInvalid
	}
	return t
}

// InsertOne builds an INSERT for one entity.
func (t *Table[T]) InsertOne(entity T) (*InsertQuery, error) {
	return t.insertMany([]any{entity})
}

// InsertMany builds a multi-row INSERT. All entities must share the first
// entity's field layout.
func (t *Table[T]) InsertMany(entities []T) (*InsertQuery, error) {
	return t.insertMany(anySlice(entities))
}

// UpsertOne builds an insert-or-update keyed on the primary key. The
// returned column and key-name lists mirror what the conflict tail uses.
func (t *Table[T]) UpsertOne(entity T) (*InsertQuery, []string, []string, error) {
	return t.upsertMany([]any{entity})
}

// UpsertMany builds a multi-row upsert keyed on the primary key.
func (t *Table[T]) UpsertMany(entities []T) (*InsertQuery, []string, []string, error) {
	return t.upsertMany(anySlice(entities))
}

// UpdateOne builds an UPDATE from the entity: the key field becomes the
// WHERE predicate, the remaining non-empty fields become SET assignments.
func (t *Table[T]) UpdateOne(entity T) (*UpdateQuery, error) {
	return t.updateOne(entity)
}

// UpdateByCond builds an UPDATE over parallel column/value lists with the
// caller's predicate.
func (t *Table[T]) UpdateByCond(columns []string, values []any, cond Expr) (*UpdateQuery, error) {
	return t.updateByCond(columns, values, cond)
}

// DeleteByPK builds a delete for one key value, rewritten as a soft-delete
// UPDATE when the convention covers this table.
func (t *Table[T]) DeleteByPK(key any) (Builder, error) {
	if t.err != nil {
		return nil, t.err
	}
	where, err := t.pkPredicate([]any{key})
	if err != nil {
		return nil, err
	}
	return t.deleteWhere(where)
}

// DeleteByCond builds a delete for a predicate, rewritten as a soft-delete
// UPDATE when the convention covers this table.
func (t *Table[T]) DeleteByCond(cond Expr) (Builder, error) {
	return t.deleteWhere(cond)
}

// RestoreByPK builds an UPDATE flipping the soft-delete flag back for one
// key value.
func (t *Table[T]) RestoreByPK(key any) (*UpdateQuery, error) {
	if t.err != nil {
		return nil, t.err
	}
	where, err := t.pkPredicate([]any{key})
	if err != nil {
		return nil, err
	}
	return t.restoreWhere(where)
}

// RestoreByCond builds an UPDATE flipping the soft-delete flag back for a
// predicate.
func (t *Table[T]) RestoreByCond(cond Expr) (*UpdateQuery, error) {
	return t.restoreWhere(cond)
}

// GetOneByPK fetches the row with the given key value.
func (t *Table[T]) GetOneByPK(ctx context.Context, key any) (*T, error) {
	if t.err != nil {
		return nil, t.err
	}
	where, err := t.pkPredicate([]any{key})
	if err != nil {
		return nil, err
	}
	var out T
	if err := t.exec.FetchOne(ctx, t.selectWhere(where).Limit(1), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOneByCond fetches the first row matching the predicate.
func (t *Table[T]) GetOneByCond(ctx context.Context, cond Expr) (*T, error) {
	if t.err != nil {
		return nil, t.err
	}
	var out T
	if err := t.exec.FetchOne(ctx, t.selectWhere(cond).Limit(1), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetListByCond fetches all rows matching the predicate.
func (t *Table[T]) GetListByCond(ctx context.Context, cond Expr) ([]T, error) {
	if t.err != nil {
		return nil, t.err
	}
	var out []T
	if err := t.exec.FetchAll(ctx, t.selectWhere(cond), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Paginate runs the page query and the matching-row count concurrently and
// returns both. The two queries share the caller's predicate and have no
// mutual ordering.
func (t *Table[T]) Paginate(ctx context.Context, page, size int64, cond Expr) (*PageResult[T], error) {
	if t.err != nil {
		return nil, t.err
	}
	if page <= 0 || size <= 0 {
		return nil, ErrPageNumberInvalid
	}

	dataQ := t.selectWhere(cond).OrderBy(t.pk.columns[0], Asc).Page(page, size)
	countQ := Select("COUNT(*)").From(t.name).Where(cond.And(t.readPredicate()))

	result := &PageResult[T]{PageNumber: page, PageSize: size}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return t.exec.FetchAll(gctx, dataQ, &result.Data)
	})
	g.Go(func() error {
		return t.exec.FetchOne(gctx, countQ, &result.Total)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetListByCursor fetches one cursor page ordered by the primary key. A nil
// cursor starts from the beginning. nextCursor extracts the cursor value
// from the last row of the page; it is not called on a short page.
func (t *Table[T]) GetListByCursor(ctx context.Context, cursor any, dir Direction, limit int64, cond Expr, nextCursor func(last T) any) (*CursorResult[T], error) {
	if t.err != nil {
		return nil, t.err
	}
	if limit <= 0 {
		return nil, ErrLimitInvalid
	}

	sq := t.selectWhere(cond).Cursor(t.pk.columns[0], cursor, dir, limit)
	var data []T
	if err := t.exec.FetchAll(ctx, sq, &data); err != nil {
		return nil, err
	}

	result := &CursorResult[T]{Data: data}
	if int64(len(data)) == limit && nextCursor != nil {
		result.NextCursor = nextCursor(data[len(data)-1])
	}
	return result, nil
}

// Exists reports whether any row matches the predicate.
func (t *Table[T]) Exists(ctx context.Context, cond Expr) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	sq := Select("1").From(t.name).Where(cond.And(t.readPredicate())).Limit(1)
	var probe int
	return t.exec.FetchOptional(ctx, sq, &probe)
}

// Count returns the number of rows matching the predicate.
func (t *Table[T]) Count(ctx context.Context, cond Expr) (int64, error) {
	if t.err != nil {
		return 0, t.err
	}
	countQ := Select("COUNT(*)").From(t.name).Where(cond.And(t.readPredicate()))
	var total int64
	if err := t.exec.FetchOne(ctx, countQ, &total); err != nil {
		return 0, err
	}
	return total, nil
}

// anySlice widens a typed entity slice for the shared extraction path.
func anySlice[T any](entities []T) []any {
	out := make([]any, len(entities))
	for i, e := range entities {
		out[i] = e
	}
	return out
}
