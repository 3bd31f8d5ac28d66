package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrDuplicateSession is returned when a session's result is recorded twice.
var ErrDuplicateSession = errors.New("session already recorded")

// resultRepo implements ResultRepo with raw SQL.
type resultRepo struct {
	db      *sql.DB
	counter *completionCounter
}

func (r *resultRepo) Record(ctx context.Context, res *Result) error {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	demo, err := json.Marshal(res.Demographics)
	if err != nil {
		return fmt.Errorf("marshal demographics: %w", err)
	}

	r.counter.mu.Lock()
	defer r.counter.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assessment_results WHERE session_id = ?`, res.SessionID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("record %s: %w", res.SessionID, ErrDuplicateSession)
	}

	seq, err := r.counter.incrementWith(ctx, tx)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO assessment_results
			(sequence, session_id, completed_at, exhaustion, disengagement, efficacy, level, answers, demographics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq,
		res.SessionID,
		res.CompletedAt.UTC().Format(timeLayout),
		res.Scores.Exhaustion,
		res.Scores.Disengagement,
		res.Scores.Efficacy,
		res.Level,
		string(answers),
		string(demo),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	res.Sequence = seq
	return nil
}

func (r *resultRepo) Recent(ctx context.Context, opts QueryOpts) ([]Result, error) {
	var (
		where []string
		args  []any
	)
	if opts.Level != "" {
		where = append(where, "level = ?")
		args = append(args, opts.Level)
	}
	if !opts.From.IsZero() {
		where = append(where, "completed_at >= ?")
		args = append(args, opts.From.UTC().Format(timeLayout))
	}
	if !opts.To.IsZero() {
		where = append(where, "completed_at <= ?")
		args = append(args, opts.To.UTC().Format(timeLayout))
	}

	q := `SELECT sequence, session_id, completed_at, exhaustion, disengagement, efficacy, level, answers, demographics
		FROM assessment_results`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			res              Result
			completedAt      string
			answers, demoRaw string
		)
		if err := rows.Scan(
			&res.Sequence, &res.SessionID, &completedAt,
			&res.Scores.Exhaustion, &res.Scores.Disengagement, &res.Scores.Efficacy,
			&res.Level, &answers, &demoRaw,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if res.CompletedAt, err = time.Parse(timeLayout, completedAt); err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &res.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		if err := json.Unmarshal([]byte(demoRaw), &res.Demographics); err != nil {
			return nil, fmt.Errorf("unmarshal demographics: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *resultRepo) LevelDistribution(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT level, COUNT(*) FROM assessment_results GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("query level distribution: %w", err)
	}
	defer rows.Close()

	dist := make(map[string]int)
	for rows.Next() {
		var (
			level string
			n     int
		)
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("scan level distribution: %w", err)
		}
		dist[level] = n
	}
	return dist, rows.Err()
}
