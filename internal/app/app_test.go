package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pbi/internal/assessment"
	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/export"
	"github.com/abhisek/pbi/internal/router"
	"github.com/abhisek/pbi/internal/screen"
	assessmentscreen "github.com/abhisek/pbi/internal/screens/assessment"
	"github.com/abhisek/pbi/internal/store"
)

type fakeCounter struct{ n int64 }

func (f *fakeCounter) Increment(context.Context) (int64, error) { f.n++; return f.n, nil }
func (f *fakeCounter) Count(context.Context) (int64, error)     { return f.n, nil }

type fakeResults struct {
	counter *fakeCounter
	saved   []store.Result
	err     error
}

func (f *fakeResults) Record(ctx context.Context, r *store.Result) error {
	if f.err != nil {
		return f.err
	}
	r.Sequence, _ = f.counter.Increment(ctx)
	f.saved = append(f.saved, *r)
	return nil
}

func (f *fakeResults) Recent(context.Context, store.QueryOpts) ([]store.Result, error) {
	return f.saved, nil
}

func (f *fakeResults) LevelDistribution(context.Context) (map[string]int, error) {
	return nil, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []export.Record
}

func (f *fakeSender) Send(_ context.Context, rec export.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, rec)
	return nil
}

func (f *fakeSender) Configured() bool { return true }

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func testOptions() (Options, *fakeResults, *fakeSender) {
	counter := &fakeCounter{n: 4}
	results := &fakeResults{counter: counter}
	sender := &fakeSender{}
	return Options{
		Counter:    counter,
		Results:    results,
		Dispatcher: export.NewDispatcher(catalog.Default(), sender, nil, 0),
	}, results, sender
}

// finish drives the session screen through every question.
func finish(t *testing.T, s screen.Screen) *assessment.State {
	t.Helper()
	as, ok := s.(*assessmentscreen.Screen)
	if !ok {
		t.Fatalf("expected assessment screen, got %T", s)
	}
	st := as.State()
	st.Start()
	st.SkipDemographics()
	for st.Step() == assessment.StepQuestion {
		st.Answer(3)
	}
	return st
}

func TestCompletionRecordsAndExports(t *testing.T) {
	opts, results, sender := testOptions()
	m := newAppModel(context.Background(), opts)
	if got := m.completions.Load(); got != 4 {
		t.Fatalf("completions = %d, want 4", got)
	}

	st := finish(t, m.sessions.newSession())
	opts.Dispatcher.Wait()

	if len(results.saved) != 1 {
		t.Fatalf("saved %d results, want 1", len(results.saved))
	}
	saved := results.saved[0]
	if saved.SessionID != st.SessionID() {
		t.Errorf("SessionID = %q, want %q", saved.SessionID, st.SessionID())
	}
	if saved.Level != "Moderate Burnout" {
		t.Errorf("Level = %q, want Moderate Burnout", saved.Level)
	}
	if got := m.completions.Load(); got != 5 {
		t.Errorf("completions = %d, want 5", got)
	}
	if len(sender.sent) != 1 {
		t.Errorf("exported %d records, want 1", len(sender.sent))
	}
}

func TestCompletionRecordFailureStillExports(t *testing.T) {
	opts, results, sender := testOptions()
	results.err = errors.New("disk full")
	m := newAppModel(context.Background(), opts)

	finish(t, m.sessions.newSession())
	opts.Dispatcher.Wait()

	if got := m.completions.Load(); got != 4 {
		t.Errorf("completions = %d, want unchanged 4", got)
	}
	if len(sender.sent) != 1 {
		t.Errorf("exported %d records, want 1", len(sender.sent))
	}
}

func TestCompletionCountsWithoutResultRepo(t *testing.T) {
	counter := &fakeCounter{n: 2}
	m := newAppModel(context.Background(), Options{Counter: counter})

	finish(t, m.sessions.newSession())

	if counter.n != 3 {
		t.Errorf("counter = %d, want 3", counter.n)
	}
	if got := m.completions.Load(); got != 3 {
		t.Errorf("completions = %d, want 3", got)
	}
}

func TestRecordedResultMatchesShownResult(t *testing.T) {
	opts, results, sender := testOptions()
	m := newAppModel(context.Background(), opts)

	as := m.sessions.newSession().(*assessmentscreen.Screen)
	st := as.State()
	st.Start()
	st.SkipDemographics()
	for st.Step() == assessment.StepQuestion {
		q, _ := st.Current()
		if q.Category == catalog.CategoryEfficacy {
			st.Answer(1)
		} else {
			st.Answer(5)
		}
	}
	opts.Dispatcher.Wait()

	for _, q := range st.Catalog().ByCategory(catalog.CategoryEfficacy) {
		if st.Revise(q.ID, 5) {
			t.Fatalf("Revise(%s) accepted after completion", q.Code)
		}
	}

	if len(results.saved) != 1 || len(sender.sent) != 1 {
		t.Fatalf("saved %d, exported %d; want 1 each", len(results.saved), len(sender.sent))
	}
	shown := st.Assessment().Level.Name
	if results.saved[0].Level != shown {
		t.Errorf("stored level = %q, shown level = %q", results.saved[0].Level, shown)
	}
	firstPE := st.Catalog().ByCategory(catalog.CategoryEfficacy)[0]
	if got := st.Answers()[firstPE.ID]; got != 1 {
		t.Errorf("shown %s = %d, want exported value 1", firstPE.Code, got)
	}
}

func TestNilCollaborators(t *testing.T) {
	m := newAppModel(context.Background(), Options{})
	st := finish(t, m.sessions.newSession())
	if !st.Completed() {
		t.Error("session should complete without store or export")
	}
}

func TestAppModel_Keys(t *testing.T) {
	m := newAppModel(context.Background(), Options{})

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}

	m.router.Push(&stubScreen{title: "pushed"})
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc on a pushed screen should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestAppModel_View(t *testing.T) {
	opts, _, _ := testOptions()
	updated, _ := newAppModel(context.Background(), opts).Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m := updated.(AppModel)
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected min size message")
	}

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(AppModel)
	if !strings.Contains(m.render(), "4 completed") {
		t.Error("header should show the completion count")
	}
}
