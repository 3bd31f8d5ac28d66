package store

import (
	"context"
	"time"

	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/scoring"
)

// QueryOpts configures result queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	Level string    // level name filter ("" = any)
	From  time.Time // completed_at >= From
	To    time.Time // completed_at <= To
}

// Result is one finished assessment.
type Result struct {
	// Sequence is the completion count at the time the result was saved.
	Sequence     int64
	SessionID    string
	CompletedAt  time.Time
	Scores       scoring.Scores
	Level        string
	Answers      scoring.Answers
	Demographics demographic.Record
}

// CounterRepo tracks how many assessments have been completed.
type CounterRepo interface {
	// Increment bumps the counter and returns the new total.
	Increment(ctx context.Context) (int64, error)

	// Count returns the current total.
	Count(ctx context.Context) (int64, error)
}

// ResultRepo stores finished assessments.
type ResultRepo interface {
	// Record increments the completion counter and saves r in one
	// transaction, setting r.Sequence. Recording a session twice fails.
	Record(ctx context.Context, r *Result) error

	// Recent returns results newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]Result, error)

	// LevelDistribution returns the number of results per level name.
	LevelDistribution(ctx context.Context) (map[string]int, error)
}
