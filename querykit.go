// Package querykit is a typed, composable SQL query construction and
// execution library for SQLite, MySQL, and PostgreSQL.
//
// Statements are assembled from an expression algebra and fluent clause
// builders, finalize into SQL text with "?" placeholders plus a parallel
// parameter list, and run through an Executor that owns the dialect's
// placeholder rewriting, prepared-statement caching, logging, and tracing.
//
//	exec, err := querykit.Open("sqlite3", "app.db")
//	...
//	q := querykit.Select("id", "name").
//	    From("users").
//	    Where(querykit.C("age").Gte(18)).
//	    OrderBy("name", querykit.Asc)
//	var users []User
//	err = exec.FetchAll(ctx, q, &users)
//
// Higher-level access goes through the table facades, which extract
// columns and values from entity structs, apply the process-wide
// soft-delete and filter conventions, and execute:
//
//	users := querykit.NewTable[User](exec, "users", querykit.SingleKey("id", true))
//	page, err := users.Paginate(ctx, 1, 20, querykit.C("status").Eq("active"))
package querykit

import (
	"github.com/coregx/querykit/internal/core"
	"github.com/coregx/querykit/internal/dialects"
	"github.com/coregx/querykit/internal/logger"
	"github.com/coregx/querykit/internal/schema"
	"github.com/coregx/querykit/internal/tracer"
	"github.com/coregx/querykit/internal/value"
)

// Expression algebra.
type (
	// Expr is a composable predicate: a SQL fragment plus bound values.
	Expr = core.Expr
	// Col names a column and builds leaf predicates.
	Col = core.Col
	// Subquery is an inline SELECT usable in IN/EXISTS predicates and CTEs.
	Subquery = core.Subquery
)

// C is shorthand for a column reference.
func C(name string) Col { return Col(name) }

// Raw creates an expression from a verbatim SQL fragment with bound values.
func Raw(sql string, args ...any) Expr { return core.Raw(sql, args...) }

// Exists builds "EXISTS (<subquery>)".
func Exists(sub *Subquery) Expr { return core.Exists(sub) }

// NotExists builds "NOT EXISTS (<subquery>)".
func NotExists(sub *Subquery) Expr { return core.NotExists(sub) }

// All combines expressions with AND, skipping absent ones.
func All(exprs ...Expr) Expr { return core.All(exprs...) }

// Any combines expressions with OR, skipping absent ones.
func Any(exprs ...Expr) Expr { return core.Any(exprs...) }

// NewSubquery starts a subquery with the given projection.
func NewSubquery(columns ...string) *Subquery { return core.NewSubquery(columns...) }

// Clause builders.
type (
	// Direction is a sort direction.
	Direction = core.Direction
	// JoinKind is a join variant.
	JoinKind = core.JoinKind
	// CaseExpr is a searched CASE expression for the projection list.
	CaseExpr = core.CaseExpr
	// Aggregate is an aggregate projection with GROUP BY and HAVING.
	Aggregate = core.Aggregate
	// CTE is one common table expression.
	CTE = core.CTE
	// WithCTE is a group of CTEs emitted as a single WITH prefix.
	WithCTE = core.WithCTE
)

// Sort directions.
const (
	Asc  = core.Asc
	Desc = core.Desc
)

// Join kinds.
const (
	InnerJoin = core.InnerJoin
	LeftJoin  = core.LeftJoin
	RightJoin = core.RightJoin
	FullJoin  = core.FullJoin
	CrossJoin = core.CrossJoin
)

// Case starts a CASE expression.
func Case() *CaseExpr { return core.Case() }

// NewAggregate starts an aggregate specification.
func NewAggregate() *Aggregate { return core.NewAggregate() }

// NewCTE creates a CTE definition.
func NewCTE(name string, body interface {
	Fragment() (string, []Value, error)
}, columns ...string) CTE {
	return core.NewCTE(name, body, columns...)
}

// With starts a WITH group with a first CTE.
func With(name string, body interface {
	Fragment() (string, []Value, error)
}, columns ...string) *WithCTE {
	return core.With(name, body, columns...)
}

// Statement builders.
type (
	// Builder is anything that finalizes into (sql, params, error).
	Builder = core.Builder
	// SelectQuery builds a SELECT statement.
	SelectQuery = core.SelectQuery
	// InsertQuery builds an INSERT statement, optionally with an upsert tail.
	InsertQuery = core.InsertQuery
	// UpdateQuery builds an UPDATE statement.
	UpdateQuery = core.UpdateQuery
	// DeleteQuery builds a DELETE statement.
	DeleteQuery = core.DeleteQuery
)

// Select starts a SELECT statement; with no columns the projection is "*".
func Select(columns ...string) *SelectQuery { return core.Select(columns...) }

// InsertInto starts an INSERT statement.
func InsertInto(table string) *InsertQuery { return core.InsertInto(table) }

// Update starts an UPDATE statement.
func Update(table string) *UpdateQuery { return core.Update(table) }

// DeleteFrom starts a DELETE statement.
func DeleteFrom(table string) *DeleteQuery { return core.DeleteFrom(table) }

// CountPlaceholders counts "?" placeholders outside string literals.
func CountPlaceholders(sql string) int { return core.CountPlaceholders(sql) }

// Execution.
type (
	// Executor runs finalized statements against a connection pool.
	Executor = core.Executor
	// Option configures an Executor.
	Option = core.Option
	// Batch collects statements and commits them in one transaction.
	Batch = core.Batch
)

// Open opens a connection pool for the given driver and DSN.
func Open(driverName, dsn string, opts ...Option) (*Executor, error) {
	return core.Open(driverName, dsn, opts...)
}

// WrapDB wraps an existing *sql.DB under the given driver's dialect.
var WrapDB = core.WrapDB

// Executor options.
var (
	WithMaxOpenConns      = core.WithMaxOpenConns
	WithMaxIdleConns      = core.WithMaxIdleConns
	WithStmtCacheCapacity = core.WithStmtCacheCapacity
	WithLogger            = core.WithLogger
	WithTracer            = core.WithTracer
)

// NewBatch creates a transactional batch bound to an executor.
func NewBatch(exec *Executor) *Batch { return core.NewBatch(exec) }

// IsNoRows reports whether the error indicates an empty result set.
func IsNoRows(err error) bool { return core.IsNoRows(err) }

// Table facades.
type (
	// PrimaryKey describes a table's key columns.
	PrimaryKey = core.PrimaryKey
	// Table is the single-primary-key facade.
	Table[T any] = core.Table[T]
	// CompositeTable is the composite-primary-key facade.
	CompositeTable[T any] = core.CompositeTable[T]
	// PageResult is one page of rows plus the total matching count.
	PageResult[T any] = core.PageResult[T]
	// CursorResult is one cursor page plus the next cursor value.
	CursorResult[T any] = core.CursorResult[T]
)

// SingleKey declares a single-column primary key.
func SingleKey(name string, autoGenerate bool) PrimaryKey {
	return core.SingleKey(name, autoGenerate)
}

// CompositeKey declares a composite primary key of at least two columns.
func CompositeKey(names ...string) PrimaryKey { return core.CompositeKey(names...) }

// NewTable creates a single-key table facade.
func NewTable[T any](exec *Executor, name string, pk PrimaryKey) *Table[T] {
	return core.NewTable[T](exec, name, pk)
}

// NewCompositeTable creates a composite-key table facade.
func NewCompositeTable[T any](exec *Executor, name string, pk PrimaryKey) *CompositeTable[T] {
	return core.NewCompositeTable[T](exec, name, pk)
}

// Process-wide conventions.

// SetGlobalSoftDeleteField installs the soft-delete column convention.
// Only the first call takes effect; it returns false when already set.
func SetGlobalSoftDeleteField(field string, excludeTables ...string) bool {
	return core.SetGlobalSoftDeleteField(field, excludeTables...)
}

// SetGlobalFilter installs the process-wide filter expression.
// Only the first call takes effect; it returns false when already set.
func SetGlobalFilter(filter Expr, excludeTables ...string) bool {
	return core.SetGlobalFilter(filter, excludeTables...)
}

// Values.
type (
	// Value is one bindable scalar with an explicit kind.
	Value = value.Value
	// ValueKind identifies a Value's variant.
	ValueKind = value.Kind
)

// Value kinds.
const (
	KindNull    = value.KindNull
	KindBool    = value.KindBool
	KindInt     = value.KindInt
	KindFloat   = value.KindFloat
	KindText    = value.KindText
	KindBlob    = value.KindBlob
	KindTime    = value.KindTime
	KindUUID    = value.KindUUID
	KindJSON    = value.KindJSON
	KindDefault = value.KindDefault
)

// Value constructors and conversion.
var (
	NullValue    = value.Null
	DefaultValue = value.Default
	BoolValue    = value.Bool
	IntValue     = value.Int
	FloatValue   = value.Float
	TextValue    = value.Text
	BlobValue    = value.Blob
	TimeValue    = value.Time
	UUIDValue    = value.UUID
	JSONValue    = value.JSON

	Convert       = value.Convert
	ConvertAll    = value.ConvertAll
	IsEmptyOrNone = value.IsEmptyOrNone
)

// Entities.
type (
	// Field is one named entity field.
	Field = schema.Field
	// Entity enumerates its own fields, bypassing reflection.
	Entity = schema.Entity
	// TableNamer provides a custom table name for an entity.
	TableNamer = schema.TableNamer
)

// Entity extraction.
var (
	FieldsOf          = schema.FieldsOf
	TableNameOf       = schema.TableNameOf
	ExtractAll        = schema.ExtractAll
	ExtractWithFilter = schema.ExtractWithFilter
	ExtractWithBind   = schema.ExtractWithBind
	BatchExtract      = schema.BatchExtract
)

// Dialects.
type (
	// Dialect captures per-database syntax differences.
	Dialect = dialects.Dialect
)

// Dialect registry.
var (
	GetDialect      = dialects.Get
	RegisterDialect = dialects.Register
)

// Observability.
type (
	// Logger receives structured execution logs.
	Logger = logger.Logger
	// SlogAdapter routes Logger calls to a *slog.Logger.
	SlogAdapter = logger.SlogAdapter
	// Tracer starts spans around statement execution.
	Tracer = tracer.Tracer
)

// NewSlogAdapter wraps a *slog.Logger for use with WithLogger.
var NewSlogAdapter = logger.NewSlogAdapter

// NewOtelTracer wraps an OpenTelemetry tracer for use with WithTracer.
var NewOtelTracer = tracer.NewOtelTracer

// Errors.
var (
	ErrNoEntitiesProvided          = core.ErrNoEntitiesProvided
	ErrColumnsListEmpty            = core.ErrColumnsListEmpty
	ErrPrimaryKeyNotFound          = core.ErrPrimaryKeyNotFound
	ErrNoPrimaryKeyDefined         = core.ErrNoPrimaryKeyDefined
	ErrValueInvalid                = core.ErrValueInvalid
	ErrSingleKeyTypeInvalid        = core.ErrSingleKeyTypeInvalid
	ErrPageNumberInvalid           = core.ErrPageNumberInvalid
	ErrLimitInvalid                = core.ErrLimitInvalid
	ErrSoftDeleteConfigNotSet      = core.ErrSoftDeleteConfigNotSet
	ErrSoftDeleteColumnTypeInvalid = core.ErrSoftDeleteColumnTypeInvalid
	ErrRestoreNotSupported         = core.ErrRestoreNotSupported
	ErrEmptyInList                 = core.ErrEmptyInList
	ErrOnExpressionRequired        = core.ErrOnExpressionRequired
	ErrDuplicateCTEName            = core.ErrDuplicateCTEName
	ErrReturningNotSupported       = core.ErrReturningNotSupported
	ErrNoRows                      = core.ErrNoRows
	ErrBatchNotStarted             = core.ErrBatchNotStarted
	ErrRelationValueMismatch       = schema.ErrRelationValueMismatch
	ErrRelationValueEmpty          = schema.ErrRelationValueEmpty
)
