package core

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

// Batch collects statements and executes them in one transaction.
// Enqueueing is safe from multiple goroutines; Commit drains the pending
// list under the lock, then runs the statements outside it so a slow
// transaction never blocks concurrent enqueuers of a new batch.
type Batch struct {
	exec *Executor

	mu      sync.Mutex
	inTx    bool
	pending []Builder
}

// NewBatch creates a batch bound to an executor.
func NewBatch(exec *Executor) *Batch {
	return &Batch{exec: exec}
}

// Begin opens the batch for enqueueing. Calling Begin on an open batch is
// a no-op.
func (b *Batch) Begin() *Batch {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inTx = true
	return b
}

// Enqueue appends a statement to the batch. Returns ErrBatchNotStarted
// when Begin has not been called.
func (b *Batch) Enqueue(builder Builder) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inTx {
		return ErrBatchNotStarted
	}
	b.pending = append(b.pending, builder)
	return nil
}

// Len reports the number of pending statements.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Rollback discards pending statements and closes the batch.
func (b *Batch) Rollback() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
	b.inTx = false
}

// Commit executes all pending statements in a single transaction. The
// transaction is rolled back on the first failing statement. The batch is
// reset either way and can be reused with another Begin.
func (b *Batch) Commit(ctx context.Context) error {
	b.mu.Lock()
	if !b.inTx {
		b.mu.Unlock()
		return ErrBatchNotStarted
	}
	drained := b.pending
	b.pending = nil
	b.inTx = false
	b.mu.Unlock()

	if len(drained) == 0 {
		return nil
	}

	ctx, span := b.exec.trace.StartSpan(ctx, "querykit.batch")
	defer span.End()

	tx, err := b.exec.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, builder := range drained {
		if err := b.execInTx(ctx, tx, builder); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// execInTx finalizes and runs one statement inside the transaction.
func (b *Batch) execInTx(ctx context.Context, tx *sql.Tx, builder Builder) error {
	sqlText, args, err := b.exec.finalize(builder)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := tx.ExecContext(ctx, sqlText, args...)

	var rows int64
	if result != nil {
		rows, _ = result.RowsAffected()
	}
	b.exec.logResult(sqlText, args, time.Since(start), rows, err)
	return err
}
