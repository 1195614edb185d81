package core

import (
	"errors"
	"fmt"
)

// Predefined errors returned by statement builders and table facades.
var (
	// ErrNoEntitiesProvided is returned when an empty batch is passed to a
	// many-entity operation (InsertMany, UpsertMany).
	ErrNoEntitiesProvided = errors.New("no entities provided")
	// ErrColumnsListEmpty is returned when, after filtering, zero columns
	// remain to project or set.
	ErrColumnsListEmpty = errors.New("columns list is empty")
	// ErrPrimaryKeyNotFound is returned when an entity lacks the declared
	// primary key field. Use PrimaryKeyNotFoundError to report the column.
	ErrPrimaryKeyNotFound = errors.New("primary key not found")
	// ErrNoPrimaryKeyDefined is returned by PK-keyed operations invoked with
	// an empty key-values list.
	ErrNoPrimaryKeyDefined = errors.New("no primary key defined")
	// ErrValueInvalid is returned when a field the caller asked to bind is
	// empty or none. Use ValueInvalidError to report the column.
	ErrValueInvalid = errors.New("value is invalid")
	// ErrSingleKeyTypeInvalid is returned when a composite key is passed to
	// a single-key facade or vice versa.
	ErrSingleKeyTypeInvalid = errors.New("single key type is invalid")
	// ErrPageNumberInvalid is returned when page number or page size is zero.
	ErrPageNumberInvalid = errors.New("page number or page size is invalid")
	// ErrLimitInvalid is returned when a cursor limit is zero.
	ErrLimitInvalid = errors.New("limit is invalid")
	// ErrSoftDeleteConfigNotSet is returned when a restore operation is
	// invoked without a soft-delete configuration.
	ErrSoftDeleteConfigNotSet = errors.New("soft delete config is not set")
	// ErrSoftDeleteColumnTypeInvalid is returned when the declared
	// soft-delete column exists on the entity but is not boolean-typed.
	ErrSoftDeleteColumnTypeInvalid = errors.New("soft delete column is not boolean")
	// ErrRestoreNotSupported is returned when restore is invoked on a table
	// in the soft-delete exclusion list.
	ErrRestoreNotSupported = errors.New("restore operation is not supported")
	// ErrEmptyInList is returned when an IN predicate is constructed with an
	// empty value list.
	ErrEmptyInList = errors.New("IN predicate requires at least one value")
	// ErrOnExpressionRequired is returned when a non-CROSS join has no ON
	// expression.
	ErrOnExpressionRequired = errors.New("join requires an ON expression")
	// ErrDuplicateCTEName is returned when two CTEs in the same WITH group
	// share a name.
	ErrDuplicateCTEName = errors.New("duplicate CTE name")
	// ErrReturningNotSupported is returned when a RETURNING clause is used
	// on a dialect without RETURNING support.
	ErrReturningNotSupported = errors.New("dialect does not support RETURNING")
	// ErrNoRows is returned when a query that expects a row returns none.
	ErrNoRows = errors.New("no rows in result set")
	// ErrBatchNotStarted is returned when committing a batch that was never
	// begun.
	ErrBatchNotStarted = errors.New("transaction batch is not started")
)

// PrimaryKeyNotFoundError reports which primary key column was missing.
type PrimaryKeyNotFoundError struct {
	Column string
}

func (e *PrimaryKeyNotFoundError) Error() string {
	return fmt.Sprintf("primary key not found: %s", e.Column)
}

// Is matches ErrPrimaryKeyNotFound.
func (e *PrimaryKeyNotFoundError) Is(target error) bool {
	return target == ErrPrimaryKeyNotFound
}

// ValueInvalidError reports which column carried an empty-or-none value.
type ValueInvalidError struct {
	Column string
}

func (e *ValueInvalidError) Error() string {
	return fmt.Sprintf("value is invalid: %s", e.Column)
}

// Is matches ErrValueInvalid.
func (e *ValueInvalidError) Is(target error) bool {
	return target == ErrValueInvalid
}

// WrapError wraps an error with additional context message.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
