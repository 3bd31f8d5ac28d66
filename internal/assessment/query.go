package assessment

import (
	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/scoring"
)

// Current returns the question under the cursor while on the question step.
func (s *State) Current() (catalog.Question, bool) {
	if s.step != StepQuestion {
		return catalog.Question{}, false
	}
	return s.cat.At(s.questionIndex)
}

// CurrentField returns the profile field being asked while on the
// demographic step.
func (s *State) CurrentField() (demographic.Field, bool) {
	if s.step != StepDemographic {
		return 0, false
	}
	return demographic.FieldAt(s.demographicStep)
}

// Selected returns the recorded value for the current question, or 0.
// Screens use it to pre-fill a revisited question.
func (s *State) Selected() int {
	q, ok := s.Current()
	if !ok {
		return 0
	}
	return s.answers[q.ID]
}

// SelectedDemographic returns the recorded value for the current profile
// field, or "".
func (s *State) SelectedDemographic() string {
	f, ok := s.CurrentField()
	if !ok {
		return ""
	}
	return s.demographics.Get(f)
}

// Progress returns the cursor position as a percentage of the questions.
func (s *State) Progress() float64 {
	n := s.cat.Len()
	if n == 0 {
		return 0
	}
	if s.step == StepResult {
		return 100
	}
	return float64(s.questionIndex+1) / float64(n) * 100
}

// Answered returns the number of recorded answers.
func (s *State) Answered() int { return len(s.answers) }

// IsComplete reports whether every catalog question has an answer.
func (s *State) IsComplete() bool {
	_, open := s.firstUnanswered()
	return !open
}

// Missing returns the IDs of unanswered questions in catalog order.
func (s *State) Missing() []int {
	var ids []int
	for _, q := range s.cat.Questions() {
		if _, ok := s.answers[q.ID]; !ok {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// Assessment scores the current answers. Before completion the result is
// computed over whatever has been answered.
func (s *State) Assessment() scoring.Assessment {
	return scoring.Assess(s.answers, s.cat.Questions())
}
