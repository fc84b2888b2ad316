package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// WithTx runs fn inside a database transaction, committing on success and
// rolling back on error or panic. Callers that need to both mutate an
// aggregate and append an audit record in one atomic step use this instead
// of issuing the statements against the bare pool.
func (c *Client) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := c.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(tx)
	return err
}
