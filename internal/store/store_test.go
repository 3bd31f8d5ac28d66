package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/scoring"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testResult(id string, level string, at time.Time) *Result {
	return &Result{
		SessionID:    id,
		CompletedAt:  at,
		Scores:       scoring.Scores{Exhaustion: 3.14, Disengagement: 2.5, Efficacy: 4},
		Level:        level,
		Answers:      scoring.Answers{1: 3, 2: 4},
		Demographics: demographic.Record{AgeRange: "25-34"},
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWALOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbi.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"completion_counter", "assessment_results"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestCompletionCounter(t *testing.T) {
	s := openTestStore(t)
	repo := s.CounterRepo()
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("initial count = %d, want 0", n)
	}

	for i := 1; i <= 5; i++ {
		got, err := repo.Increment(ctx)
		if err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
		if got != int64(i) {
			t.Errorf("increment %d = %d, want %d", i, got, i)
		}
	}

	if n, _ := repo.Count(ctx); n != 5 {
		t.Errorf("count = %d, want 5", n)
	}
}

func TestCounterSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbi.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.CounterRepo().Increment(ctx)
	s.CounterRepo().Increment(ctx)
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if n, _ := s.CounterRepo().Count(ctx); n != 2 {
		t.Errorf("count after reopen = %d, want 2", n)
	}
}

func TestResultRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	first := testResult("a", "Burnout", base)
	if err := repo.Record(ctx, first); err != nil {
		t.Fatalf("record: %v", err)
	}
	if first.Sequence != 1 {
		t.Errorf("sequence = %d, want 1", first.Sequence)
	}
	second := testResult("b", "No Burnout", base.Add(time.Hour))
	if err := repo.Record(ctx, second); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := repo.Recent(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].SessionID != "b" || got[1].SessionID != "a" {
		t.Errorf("order = %s,%s, want b,a", got[0].SessionID, got[1].SessionID)
	}

	r := got[1]
	if !r.CompletedAt.Equal(base) {
		t.Errorf("CompletedAt = %v, want %v", r.CompletedAt, base)
	}
	if r.Scores.Exhaustion != 3.14 || r.Answers[2] != 4 || r.Demographics.AgeRange != "25-34" {
		t.Errorf("round trip mismatch: %+v", r)
	}

	if n, _ := s.CounterRepo().Count(ctx); n != 2 {
		t.Errorf("counter = %d, want 2", n)
	}
}

func TestResultRecordDuplicateSession(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	if err := repo.Record(ctx, testResult("dup", "Burnout", time.Now())); err != nil {
		t.Fatalf("record: %v", err)
	}
	err := repo.Record(ctx, testResult("dup", "Burnout", time.Now()))
	if !errors.Is(err, ErrDuplicateSession) {
		t.Fatalf("err = %v, want ErrDuplicateSession", err)
	}
	if n, _ := s.CounterRepo().Count(ctx); n != 1 {
		t.Errorf("counter = %d, want 1 after rejected duplicate", n)
	}
}

func TestResultRecentFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	levels := []string{"Burnout", "Moderate Burnout", "Burnout", "No Burnout"}
	for i, l := range levels {
		id := fmt.Sprintf("s%d", i)
		if err := repo.Record(ctx, testResult(id, l, base.Add(time.Duration(i)*24*time.Hour))); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []string
	}{
		{"limit", QueryOpts{Limit: 2}, []string{"s3", "s2"}},
		{"level", QueryOpts{Level: "Burnout"}, []string{"s2", "s0"}},
		{"from", QueryOpts{From: base.Add(48 * time.Hour)}, []string{"s3", "s2"}},
		{"to", QueryOpts{To: base.Add(24 * time.Hour)}, []string{"s1", "s0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Recent(ctx, tt.opts)
			if err != nil {
				t.Fatalf("recent: %v", err)
			}
			var ids []string
			for _, r := range got {
				ids = append(ids, r.SessionID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %v, want %v", ids, tt.want)
			}
		})
	}

	dist, err := repo.LevelDistribution(ctx)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if dist["Burnout"] != 2 || dist["Moderate Burnout"] != 1 || dist["No Burnout"] != 1 {
		t.Errorf("distribution = %v", dist)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("PBI_DB", p)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != p {
		t.Errorf("path = %q, want %q", got, p)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PBI_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "pbi", "pbi.db"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
