package core

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/coregx/querykit/internal/cache"
	"github.com/coregx/querykit/internal/dialects"
	"github.com/coregx/querykit/internal/logger"
	"github.com/coregx/querykit/internal/tracer"
)

// Executor runs finalized statements against a shared connection pool.
// It owns the driver-side concerns the builders stay free of: placeholder
// rewriting for the dialect, prepared-statement caching, structured query
// logging with parameter masking, and tracing spans.
//
// The pool is internally synchronized; an Executor is safe for concurrent
// use.
type Executor struct {
	sqlDB      *sql.DB
	driverName string
	dialect    dialects.Dialect
	stmts      *cache.StmtCache
	log        logger.Logger
	sanitizer  *logger.Sanitizer
	trace      tracer.Tracer
}

// Option is a functional option for configuring an Executor.
type Option func(*Executor)

// WithMaxOpenConns sets the maximum number of open connections.
func WithMaxOpenConns(n int) Option {
	return func(e *Executor) {
		e.sqlDB.SetMaxOpenConns(n)
	}
}

// WithMaxIdleConns sets the maximum number of idle connections.
func WithMaxIdleConns(n int) Option {
	return func(e *Executor) {
		e.sqlDB.SetMaxIdleConns(n)
	}
}

// WithStmtCacheCapacity sets the prepared statement cache capacity.
func WithStmtCacheCapacity(capacity int) Option {
	return func(e *Executor) {
		e.stmts = cache.NewWithCapacity(capacity)
	}
}

// WithLogger sets the structured logger for statement execution.
func WithLogger(l logger.Logger) Option {
	return func(e *Executor) {
		e.log = l
	}
}

// WithTracer sets the tracer for statement execution.
func WithTracer(t tracer.Tracer) Option {
	return func(e *Executor) {
		e.trace = t
	}
}

// Open opens a connection pool for the given driver and DSN.
func Open(driverName, dsn string, opts ...Option) (*Executor, error) {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	return WrapDB(driverName, sqlDB, opts...), nil
}

// WrapDB wraps an existing *sql.DB. The driver name selects the dialect.
func WrapDB(driverName string, sqlDB *sql.DB, opts ...Option) *Executor {
	e := &Executor{
		sqlDB:      sqlDB,
		driverName: driverName,
		dialect:    dialects.Get(driverName),
		stmts:      cache.New(),
		log:        &logger.NoopLogger{},
		sanitizer:  logger.NewSanitizer(),
		trace:      &tracer.NoopTracer{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Close releases the statement cache and the connection pool.
func (e *Executor) Close() error {
	e.stmts.Clear()
	return e.sqlDB.Close()
}

// Dialect returns the executor's dialect.
func (e *Executor) Dialect() dialects.Dialect {
	return e.dialect
}

// Pool exposes the underlying connection pool.
func (e *Executor) Pool() *sql.DB {
	return e.sqlDB
}

// Ping verifies the connection to the database is alive.
func (e *Executor) Ping(ctx context.Context) error {
	return e.sqlDB.PingContext(ctx)
}

// finalize builds the statement, rewrites placeholders for the dialect,
// and converts the value list for the driver.
func (e *Executor) finalize(b Builder) (string, []any, error) {
	sqlText, params, err := b.Build()
	if err != nil {
		return "", nil, err
	}
	sqlText = e.dialect.RewritePlaceholders(sqlText)

	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p
	}
	return sqlText, args, nil
}

// prepare returns a prepared statement, from cache when possible. Cached
// statements are owned by the cache: eviction closes them, callers do not.
func (e *Executor) prepare(ctx context.Context, sqlText string) (*sql.Stmt, error) {
	if stmt, ok := e.stmts.Get(sqlText); ok {
		return stmt, nil
	}
	stmt, err := e.sqlDB.PrepareContext(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	e.stmts.Set(sqlText, stmt)
	return stmt, nil
}

// logResult logs one executed statement with masked parameters.
func (e *Executor) logResult(sqlText string, args []any, elapsed time.Duration, rows int64, err error) {
	masked := e.sanitizer.FormatParams(sqlText, args)
	if err != nil {
		e.log.Error("statement execution failed",
			"sql", sqlText,
			"params", masked,
			"duration_ms", elapsed.Milliseconds(),
			"database", e.driverName,
			"error", err,
		)
		return
	}
	e.log.Info("statement executed",
		"sql", sqlText,
		"params", masked,
		"duration_ms", elapsed.Milliseconds(),
		"rows", rows,
		"database", e.driverName,
	)
}

// traceResult attaches query metadata to a span.
func (e *Executor) traceResult(span tracer.Span, sqlText string, elapsed time.Duration, rows int64, err error) {
	tracer.AddQueryAttributes(span, &tracer.QueryMetadata{
		SQL:          sqlText,
		Duration:     elapsed,
		RowsAffected: rows,
		Error:        err,
		Database:     e.driverName,
		Operation:    tracer.DetectOperation(sqlText),
	})
}

// Execute runs a mutation statement and returns the driver result.
func (e *Executor) Execute(ctx context.Context, b Builder) (sql.Result, error) {
	sqlText, args, err := e.finalize(b)
	if err != nil {
		return nil, err
	}

	ctx, span := e.trace.StartSpan(ctx, "querykit.execute")
	defer span.End()

	start := time.Now()
	stmt, err := e.prepare(ctx, sqlText)
	if err != nil {
		e.logResult(sqlText, args, time.Since(start), 0, err)
		return nil, err
	}

	result, err := stmt.ExecContext(ctx, args...)
	elapsed := time.Since(start)

	var rows int64
	if result != nil {
		rows, _ = result.RowsAffected()
	}
	e.logResult(sqlText, args, elapsed, rows, err)
	e.traceResult(span, sqlText, elapsed, rows, err)
	return result, err
}

// FetchOne runs a query and scans the first row into dest.
// Returns ErrNoRows when the result set is empty.
func (e *Executor) FetchOne(ctx context.Context, b Builder, dest any) error {
	found, err := e.FetchOptional(ctx, b, dest)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoRows
	}
	return nil
}

// FetchOptional runs a query and scans the first row into dest, reporting
// whether a row was present.
func (e *Executor) FetchOptional(ctx context.Context, b Builder, dest any) (bool, error) {
	sqlText, args, err := e.finalize(b)
	if err != nil {
		return false, err
	}

	ctx, span := e.trace.StartSpan(ctx, "querykit.fetch_one")
	defer span.End()

	start := time.Now()
	rows, err := e.query(ctx, sqlText, args)
	if err != nil {
		e.logResult(sqlText, args, time.Since(start), 0, err)
		e.traceResult(span, sqlText, time.Since(start), 0, err)
		return false, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		elapsed := time.Since(start)
		e.logResult(sqlText, args, elapsed, 0, rows.Err())
		e.traceResult(span, sqlText, elapsed, 0, rows.Err())
		return false, rows.Err()
	}

	err = globalScanner.scanRow(rows, dest)
	elapsed := time.Since(start)
	e.logResult(sqlText, args, elapsed, 1, err)
	e.traceResult(span, sqlText, elapsed, 1, err)
	return err == nil, err
}

// FetchAll runs a query and scans all rows into dest, a pointer to a slice.
func (e *Executor) FetchAll(ctx context.Context, b Builder, dest any) error {
	sqlText, args, err := e.finalize(b)
	if err != nil {
		return err
	}

	ctx, span := e.trace.StartSpan(ctx, "querykit.fetch_all")
	defer span.End()

	start := time.Now()
	rows, err := e.query(ctx, sqlText, args)
	if err != nil {
		e.logResult(sqlText, args, time.Since(start), 0, err)
		e.traceResult(span, sqlText, time.Since(start), 0, err)
		return err
	}
	defer func() { _ = rows.Close() }()

	err = globalScanner.scanRows(rows, dest)
	elapsed := time.Since(start)
	e.logResult(sqlText, args, elapsed, 0, err)
	e.traceResult(span, sqlText, elapsed, 0, err)
	return err
}

// query runs through the statement cache.
func (e *Executor) query(ctx context.Context, sqlText string, args []any) (*sql.Rows, error) {
	stmt, err := e.prepare(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	return stmt.QueryContext(ctx, args...)
}

// IsNoRows reports whether the error indicates an empty result set, from
// either this package or database/sql.
func IsNoRows(err error) bool {
	return errors.Is(err, ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
