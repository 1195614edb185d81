package core

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CompositeTable is the composite-primary-key facade. It shares the verb
// matrix with Table; key-addressed verbs take one value per key column in
// declaration order, and cursor pagination requires an explicit column
// because no single key column orders the table.
type CompositeTable[T any] struct {
	tableBase
}

// NewCompositeTable creates a composite-key facade. A single-column key
// descriptor is a construction error surfaced by every verb
// (ErrSingleKeyTypeInvalid).
func NewCompositeTable[T any](exec *Executor, name string, pk PrimaryKey) *CompositeTable[T] {
	t := &CompositeTable[T]{tableBase{exec: exec, name: name, pk: pk, err: pk.err}}
	if t.err == nil && !pk.IsComposite() {
		t.err = ErrSingleKeyTypeInvalid
	}
	return t
}

// InsertOne builds an INSERT for one entity.
func (t *CompositeTable[T]) InsertOne(entity T) (*InsertQuery, error) {
	return t.insertMany([]any{entity})
}

// InsertMany builds a multi-row INSERT. All entities must share the first
// entity's field layout.
func (t *CompositeTable[T]) InsertMany(entities []T) (*InsertQuery, error) {
	return t.insertMany(anySlice(entities))
}

// UpsertOne builds an insert-or-update keyed on the composite key.
func (t *CompositeTable[T]) UpsertOne(entity T) (*InsertQuery, []string, []string, error) {
	return t.upsertMany([]any{entity})
}

// UpsertMany builds a multi-row upsert keyed on the composite key.
func (t *CompositeTable[T]) UpsertMany(entities []T) (*InsertQuery, []string, []string, error) {
	return t.upsertMany(anySlice(entities))
}

/// UpdateOne builds an UPDATE from the entity: all key fields become the
// WHERE predicate, the remaining non-empty fields become SET assignments.
func (t *CompositeTable[T]) UpdateOne(entity T) (*UpdateQuery, error) {
	return t.updateOne(entity)
}

// UpdateByCond builds an UPDATE over parallel column/value lists with the
// caller's predicate.
func (t *CompositeTable[T]) UpdateByCond(columns []string, values []any, cond Expr) (*UpdateQuery, error) {
	return t.updateByCond(columns, values, cond)
}

// DeleteByPK builds a delete for one composite key, one value per key
// column in declaration order. Rewritten as a soft-delete UPDATE when the
// convention covers this table.
func (t *CompositeTable[T]) DeleteByPK(keys ...any) (Builder, error) {
	if t.err != nil {
		return nil, t.err
	}
	where, err := t.pkPredicate(keys)
	if err != nil {
		return nil, err
	}
	return t.deleteWhere(where)
}

// DeleteByCond builds a delete for a predicate.
func (t *CompositeTable[T]) DeleteByCond(cond Expr) (Builder, error) {
	return t.deleteWhere(cond)
}

// RestoreByPK builds an UPDATE flipping the soft-delete flag back for one
// composite key.
func (t *CompositeTable[T]) RestoreByPK(keys ...any) (*UpdateQuery, error) {
	if t.err != nil {
		return nil, t.err
	}
	where, err := t.pkPredicate(keys)
	if err != nil {
		return nil, err
	}
	return t.restoreWhere(where)
}

// RestoreByCond builds an UPDATE flipping the soft-delete flag back for a
// predicate.
func (t *CompositeTable[T]) RestoreByCond(cond Expr) (*UpdateQuery, error) {
	return t.restoreWhere(cond)
}

// GetOneByPK fetches the row with the given composite key.
func (t *CompositeTable[T]) GetOneByPK(ctx context.Context, keys ...any) (*T, error) {
	if t.err != nil {
		return nil, t.err
	}
	where, err := t.pkPredicate(keys)
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
func (t *CompositeTable[T]) GetOneByCond(ctx context.Context, cond Expr) (*T, error) {
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
func (t *CompositeTable[T]) GetListByCond(ctx context.Context, cond Expr) ([]T, error) {
	if t.err != nil {
		return nil, t.err
	}
	var out []T
	if err := t.exec.FetchAll(ctx, t.selectWhere(cond), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Paginate runs the page query and the matching-row count concurrently.
// Rows are ordered by the key columns in declaration order.
func (t *CompositeTable[T]) Paginate(ctx context.Context, page, size int64, cond Expr) (*PageResult[T], error) {
	if t.err != nil {
		return nil, t.err
	}
	if page <= 0 || size <= 0 {
		return nil, ErrPageNumberInvalid
	}

	dataQ := t.selectWhere(cond)
	for _, col := range t.pk.columns {
		dataQ.OrderBy(col, Asc)
	}
	dataQ.Page(page, size)
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

// GetListByCursor fetches one cursor page ordered by the given column. The
// facade does not pick a cursor column for composite-key tables; callers
// supply it along with the extractor for the next cursor value.
func (t *CompositeTable[T]) GetListByCursor(ctx context.Context, column string, cursor any, dir Direction, limit int64, cond Expr, nextCursor func(last T) any) (*CursorResult[T], error) {
	if t.err != nil {
		return nil, t.err
	}
	if limit <= 0 {
		return nil, ErrLimitInvalid
	}

	sq := t.selectWhere(cond).Cursor(column, cursor, dir, limit)
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
func (t *CompositeTable[T]) Exists(ctx context.Context, cond Expr) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	sq := Select("1").From(t.name).Where(cond.And(t.readPredicate())).Limit(1)
	var probe int
	return t.exec.FetchOptional(ctx, sq, &probe)
}

// Count returns the number of rows matching the predicate.
func (t *CompositeTable[T]) Count(ctx context.Context, cond Expr) (int64, error) {
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
