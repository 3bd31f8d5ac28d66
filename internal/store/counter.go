package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// completionCounter counts finished assessments across runs. The count
// doubles as the sequence number of each stored result, so results can be
// ordered even when two share a timestamp.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type completionCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newCompletionCounter creates a counter and seeds its row.
func newCompletionCounter(db *sql.DB) (*completionCounter, error) {
	_, err := db.Exec(`INSERT OR IGNORE INTO completion_counter (id, total) VALUES (1, 0)`)
	if err != nil {
		return nil, fmt.Errorf("seed completion counter: %w", err)
	}
	return &completionCounter{db: db}, nil
}

// Increment atomically bumps the counter and returns the new total.
func (c *completionCounter) Increment(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.incrementWith(ctx, c.db)
}

func (c *completionCounter) incrementWith(ctx context.Context, q queryRower) (int64, error) {
	var n int64
	err := q.QueryRowContext(ctx,
		`UPDATE completion_counter SET total = total + 1 WHERE id = 1 RETURNING total`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("increment completion counter: %w", err)
	}
	return n, nil
}

// Count returns the current total.
func (c *completionCounter) Count(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.QueryRowContext(ctx, `SELECT total FROM completion_counter WHERE id = 1`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("read completion counter: %w", err)
	}
	return n, nil
}
