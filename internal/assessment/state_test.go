package assessment

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/scoring"
)

// atQuestions returns a session on the first question via the skip path.
func atQuestions(t *testing.T, opts ...Option) *State {
	t.Helper()
	s := New(nil, opts...)
	if !s.Start() || !s.SkipDemographics() {
		t.Fatal("could not reach the question step")
	}
	return s
}

// fillProfile walks every profile sub-step with the first option.
func fillProfile(t *testing.T, s *State) {
	t.Helper()
	for _, f := range demographic.Steps() {
		if !s.SelectDemographic(f.Options()[0].Value) {
			t.Fatalf("SelectDemographic(%s) rejected", f.Key())
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(nil)
	if s.Step() != StepIntro {
		t.Errorf("Step = %v, want intro", s.Step())
	}
	if s.SessionID() == "" {
		t.Error("SessionID should be generated")
	}
	if s.Catalog() != catalog.Default() {
		t.Error("nil catalog should select the default")
	}
	if s.Answered() != 0 || s.IsComplete() {
		t.Error("new session should have no answers")
	}

	other := New(nil)
	if other.SessionID() == s.SessionID() {
		t.Error("sessions should not share IDs")
	}

	fixed := New(nil, WithSessionID("abc"))
	if fixed.SessionID() != "abc" {
		t.Errorf("SessionID = %q, want abc", fixed.SessionID())
	}
}

func TestStartAndDecline(t *testing.T) {
	s := New(nil)
	if s.Decline() {
		t.Error("Decline at intro should be a no-op")
	}
	if !s.Start() || s.Step() != StepConsent {
		t.Fatalf("Start: step = %v, want consent", s.Step())
	}
	if s.Start() {
		t.Error("Start at consent should be a no-op")
	}
	if !s.Decline() || s.Step() != StepIntro {
		t.Errorf("Decline: step = %v, want intro", s.Step())
	}
}

func TestAnswer_FullFlowFiresOnce(t *testing.T) {
	fired := 0
	var got Completion
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	s := atQuestions(t,
		WithSessionID("s-1"),
		WithClock(func() time.Time { return now }),
		OnComplete(func(c Completion) {
			fired++
			got = c
		}),
	)
	n := s.Catalog().Len()
	if n != 18 {
		t.Fatalf("catalog size = %d, want 18", n)
	}

	for i := 0; i < n-1; i++ {
		if !s.Answer(3) {
			t.Fatalf("Answer %d rejected", i)
		}
		if s.Step() != StepQuestion || s.QuestionIndex() != i+1 {
			t.Fatalf("after answer %d: step=%v index=%d, want question %d", i, s.Step(), s.QuestionIndex(), i+1)
		}
		if fired != 0 {
			t.Fatalf("hook fired early at answer %d", i)
		}
	}

	if !s.Answer(3) {
		t.Fatal("last Answer rejected")
	}
	if s.Step() != StepResult {
		t.Fatalf("step = %v, want result", s.Step())
	}
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}

	// Re-entering the result step must not fire again.
	s.enterResult()
	s.enterResult()
	if fired != 1 {
		t.Errorf("fired after re-entry = %d, want 1", fired)
	}
	if s.Answer(4) {
		t.Error("Answer on result step should be a no-op")
	}

	if got.SessionID != "s-1" || !got.CompletedAt.Equal(now) {
		t.Errorf("completion = %+v", got)
	}
	if len(got.Answers) != n {
		t.Errorf("completion answers = %d, want %d", len(got.Answers), n)
	}
	if got.Assessment.Level.ID != scoring.LevelModerate {
		t.Errorf("level = %s, want Moderate Burnout", got.Assessment.Level.Name)
	}

	// The completion holds a copy.
	got.Answers[1] = 5
	if s.Answers()[1] != 3 {
		t.Error("completion answers alias session state")
	}
}

func TestAnswer_KeyedByCatalogID(t *testing.T) {
	s := atQuestions(t)
	s.Answer(5)
	s.Answer(2)
	a := s.Answers()
	if a[1] != 5 || a[2] != 2 {
		t.Errorf("answers = %v, want {1:5 2:2}", a)
	}
}

func TestAnswer_InvalidValueIsNoop(t *testing.T) {
	s := atQuestions(t)
	for _, v := range []int{0, -1, 6} {
		if s.Answer(v) {
			t.Errorf("Answer(%d) should be rejected", v)
		}
	}
	if s.QuestionIndex() != 0 || s.Answered() != 0 {
		t.Errorf("state changed: index=%d answered=%d", s.QuestionIndex(), s.Answered())
	}
}

func TestAnswer_LastWithGapsMovesToFirstOpen(t *testing.T) {
	fired := 0
	s := atQuestions(t, OnComplete(func(Completion) { fired++ }))
	n := s.Catalog().Len()

	s.Answer(2) // Q1
	s.Answer(2) // Q2
	if !s.JumpToQuestion(n) {
		t.Fatal("JumpToQuestion(n) rejected")
	}
	s.Answer(2)

	if s.Step() != StepQuestion || s.QuestionIndex() != 2 {
		t.Errorf("step=%v index=%d, want question 2", s.Step(), s.QuestionIndex())
	}
	if fired != 0 {
		t.Error("hook fired with gaps")
	}
	if len(s.Missing()) != n-3 {
		t.Errorf("Missing = %d, want %d", len(s.Missing()), n-3)
	}
}

func TestBack_FromFirstQuestion(t *testing.T) {
	t.Run("after profile", func(t *testing.T) {
		s := New(nil)
		s.Start()
		s.ChooseDemographics()
		fillProfile(t, s)
		if s.Step() != StepQuestion || s.QuestionIndex() != 0 {
			t.Fatalf("after profile: step=%v index=%d", s.Step(), s.QuestionIndex())
		}
		if !s.CameFromDemographics() {
			t.Error("CameFromDemographics = false")
		}

		s.Back()
		if s.Step() != StepDemographic {
			t.Fatalf("step = %v, want demographic", s.Step())
		}
		if s.DemographicStep() != demographic.LastStep {
			t.Errorf("DemographicStep = %d, want %d", s.DemographicStep(), demographic.LastStep)
		}
		if f, _ := s.CurrentField(); f != demographic.FieldFamilyStatus {
			t.Errorf("field = %s, want familyStatus", f.Key())
		}
		if s.SelectedDemographic() == "" {
			t.Error("family status should be pre-filled")
		}
	})

	t.Run("after skip", func(t *testing.T) {
		s := atQuestions(t)
		s.Back()
		if s.Step() != StepConsent {
			t.Errorf("step = %v, want consent", s.Step())
		}
	})
}

func TestBack_WithinQuestions(t *testing.T) {
	s := atQuestions(t)
	s.Answer(4)
	s.Answer(4)
	s.Back()
	if s.QuestionIndex() != 1 {
		t.Errorf("index = %d, want 1", s.QuestionIndex())
	}
	if s.Selected() != 4 {
		t.Errorf("Selected = %d, want pre-filled 4", s.Selected())
	}
}

func TestBack_NoopAtIntroAndResult(t *testing.T) {
	s := New(nil)
	if s.Back() {
		t.Error("Back at intro should be a no-op")
	}

	s = atQuestions(t)
	for i := 0; i < s.Catalog().Len(); i++ {
		s.Answer(1)
	}
	if s.Back() || s.Step() != StepResult {
		t.Errorf("Back at result changed step to %v", s.Step())
	}
}

func TestDemographics_SubSteps(t *testing.T) {
	s := New(nil)
	s.Start()
	s.ChooseDemographics()

	if s.SelectDemographic("not-an-option") {
		t.Error("invalid option accepted")
	}
	if s.SelectDemographic("") {
		t.Error("empty selection accepted")
	}
	if s.NextDemographic() {
		t.Error("Next on an unanswered field should be a no-op")
	}

	s.SelectDemographic("25-34")
	if s.DemographicStep() != 1 {
		t.Fatalf("DemographicStep = %d, want 1", s.DemographicStep())
	}

	// Back into an answered field, then Next past it.
	s.Back()
	if s.DemographicStep() != 0 || s.SelectedDemographic() != "25-34" {
		t.Fatalf("back: step=%d selected=%q", s.DemographicStep(), s.SelectedDemographic())
	}
	if !s.NextDemographic() || s.DemographicStep() != 1 {
		t.Errorf("NextDemographic: step = %d, want 1", s.DemographicStep())
	}

	s.Back()
	s.Back()
	if s.Step() != StepConsent {
		t.Errorf("Back from sub-step 0: step = %v, want consent", s.Step())
	}
	if got := s.Demographics().AgeRange; got != "25-34" {
		t.Errorf("profile lost on exit: AgeRange = %q", got)
	}
}

func TestDemographics_NextNotOnLastStep(t *testing.T) {
	s := New(nil)
	s.Start()
	s.ChooseDemographics()
	fillProfile(t, s)
	s.Back()
	if s.NextDemographic() {
		t.Error("NextDemographic on the last field should be a no-op")
	}
}

func TestSkipDemographics_ClearsPath(t *testing.T) {
	s := New(nil)
	s.Start()
	s.ChooseDemographics()
	s.Back() // to consent
	s.SkipDemographics()
	if s.CameFromDemographics() {
		t.Error("skip should clear the profile path")
	}
}

func TestRevise_KeepsCursor(t *testing.T) {
	s := atQuestions(t)
	for i := 0; i < 5; i++ {
		s.Answer(2)
	}
	before := s.QuestionIndex()

	if !s.Revise(3, 5) {
		t.Fatal("Revise rejected")
	}
	if s.Answers()[3] != 5 {
		t.Errorf("answers[3] = %d, want 5", s.Answers()[3])
	}
	if s.QuestionIndex() != before {
		t.Errorf("index = %d, want %d", s.QuestionIndex(), before)
	}

	if s.Revise(10, 4) {
		t.Error("Revise on an unanswered question should be a no-op")
	}
	if s.Revise(3, 0) {
		t.Error("Revise with an invalid value should be a no-op")
	}
}

func TestRevise_FrozenOnResult(t *testing.T) {
	fired := 0
	s := atQuestions(t, OnComplete(func(Completion) { fired++ }))
	for _, q := range s.Catalog().Questions() {
		if q.Category == catalog.CategoryEfficacy {
			s.Answer(1)
		} else {
			s.Answer(5)
		}
	}
	if s.Assessment().Level.ID != scoring.LevelExtreme {
		t.Fatalf("level = %s, want Extreme Burnout", s.Assessment().Level.Name)
	}

	for _, q := range s.Catalog().ByCategory(catalog.CategoryEfficacy) {
		if s.Revise(q.ID, 5) {
			t.Errorf("Revise(%s) accepted on the result step", q.Code)
		}
		if got := s.Answers()[q.ID]; got != 1 {
			t.Errorf("answers[%d] = %d, want 1", q.ID, got)
		}
	}
	if s.Assessment().Level.ID != scoring.LevelExtreme {
		t.Errorf("level after revise = %s, want Extreme Burnout", s.Assessment().Level.Name)
	}
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestJumpToQuestion_Bounds(t *testing.T) {
	s := atQuestions(t)
	n := s.Catalog().Len()
	tests := []struct {
		n    int
		want bool
	}{
		{0, false},
		{1, true},
		{n, true},
		{n + 1, false},
		{-3, false},
	}
	for _, tt := range tests {
		if got := s.JumpToQuestion(tt.n); got != tt.want {
			t.Errorf("JumpToQuestion(%d) = %v, want %v", tt.n, got, tt.want)
		}
		if s.QuestionIndex() < 0 || s.QuestionIndex() >= n {
			t.Fatalf("index %d out of range", s.QuestionIndex())
		}
	}

	if New(nil).JumpToQuestion(1) {
		t.Error("JumpToQuestion outside the question step should be a no-op")
	}
}

func TestProgress(t *testing.T) {
	s := atQuestions(t)
	n := float64(s.Catalog().Len())
	if got := s.Progress(); math.Abs(got-100/n) > 1e-9 {
		t.Errorf("Progress at Q1 = %v, want %v", got, 100/n)
	}
	s.JumpToQuestion(s.Catalog().Len())
	if got := s.Progress(); got != 100 {
		t.Errorf("Progress at last = %v, want 100", got)
	}
}

func TestCustomCatalog(t *testing.T) {
	cat, err := catalog.New([]catalog.Question{
		{ID: 1, Category: catalog.CategoryExhaustion, Code: "EE1", Prompt: "a"},
		{ID: 2, Category: catalog.CategoryDisengagement, Code: "DE1", Prompt: "b"},
		{ID: 3, Category: catalog.CategoryEfficacy, Code: "PE1", Prompt: "c"},
	})
	if err != nil {
		t.Fatal(err)
	}

	fired := 0
	s := New(cat, OnComplete(func(Completion) { fired++ }))
	s.Start()
	s.SkipDemographics()
	s.Answer(1)
	s.Answer(1)
	s.Answer(5)
	if s.Step() != StepResult || fired != 1 {
		t.Errorf("step=%v fired=%d, want result/1", s.Step(), fired)
	}
	if s.Assessment().Level.ID != scoring.LevelNone {
		t.Errorf("level = %s, want No Burnout", s.Assessment().Level.Name)
	}
}
