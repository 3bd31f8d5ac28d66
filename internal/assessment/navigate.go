package assessment

import (
	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/demographic"
)

// Every transition returns true when it changed the state. A false return
// means the action does not apply at the current step and nothing happened.

// Start moves from the intro to the consent step.
func (s *State) Start() bool {
	if s.step != StepIntro {
		return false
	}
	s.step = StepConsent
	return true
}

// Decline leaves the consent step and returns to the intro.
func (s *State) Decline() bool {
	if s.step != StepConsent {
		return false
	}
	s.step = StepIntro
	return true
}

// ChooseDemographics opts into the profile, starting at its first sub-step.
func (s *State) ChooseDemographics() bool {
	if s.step != StepConsent {
		return false
	}
	s.step = StepDemographic
	s.demographicStep = 0
	s.demographicPath = true
	return true
}

// SkipDemographics goes straight from consent to the first question.
func (s *State) SkipDemographics() bool {
	if s.step != StepConsent {
		return false
	}
	s.step = StepQuestion
	s.questionIndex = 0
	s.demographicPath = false
	return true
}

// SelectDemographic records value for the current profile field and
// advances. The last field completes the profile and opens the first
// question. Values that are not option codes of the field are ignored.
func (s *State) SelectDemographic(value string) bool {
	if s.step != StepDemographic {
		return false
	}
	f, ok := demographic.FieldAt(s.demographicStep)
	if !ok || !f.Valid(value) {
		return false
	}
	s.demographics.Set(f, value)

	if s.demographicStep < demographic.LastStep {
		s.demographicStep++
		return true
	}
	s.step = StepQuestion
	s.questionIndex = 0
	return true
}

// NextDemographic advances past a profile field answered on an earlier
// visit. The last field only completes through SelectDemographic.
func (s *State) NextDemographic() bool {
	if s.step != StepDemographic || s.demographicStep >= demographic.LastStep {
		return false
	}
	f, _ := demographic.FieldAt(s.demographicStep)
	if s.demographics.Get(f) == "" {
		return false
	}
	s.demographicStep++
	return true
}

// Answer records value for the question under the cursor and advances.
// On the last question the session enters the result step, or, when an
// earlier question is still open, moves to the first open question.
// Values off the Likert scale are ignored.
func (s *State) Answer(value int) bool {
	if s.step != StepQuestion || !catalog.ValidLikert(value) {
		return false
	}
	q, ok := s.cat.At(s.questionIndex)
	if !ok {
		return false
	}
	s.answers[q.ID] = value

	if s.questionIndex < s.cat.Len()-1 {
		s.questionIndex++
		return true
	}
	if idx, open := s.firstUnanswered(); open {
		s.questionIndex = idx
		return true
	}
	s.enterResult()
	return true
}

// Revise overwrites an existing answer without moving the cursor. Answers
// are frozen once the result step is reached, since the completion hooks
// have already recorded them.
func (s *State) Revise(questionID, value int) bool {
	if s.step != StepQuestion {
		return false
	}
	if !catalog.ValidLikert(value) {
		return false
	}
	if _, answered := s.answers[questionID]; !answered {
		return false
	}
	s.answers[questionID] = value
	return true
}

// JumpToQuestion moves the cursor to question n, counted from 1.
func (s *State) JumpToQuestion(n int) bool {
	if s.step != StepQuestion || n < 1 || n > s.cat.Len() {
		return false
	}
	s.questionIndex = n - 1
	return true
}

// Back steps one position backwards. From the first question it returns to
// the last profile field when the profile was taken, otherwise to consent.
// Back is a no-op at the intro and result steps.
func (s *State) Back() bool {
	switch s.step {
	case StepConsent:
		s.step = StepIntro
		return true

	case StepDemographic:
		if s.demographicStep > 0 {
			s.demographicStep--
		} else {
			s.step = StepConsent
		}
		return true

	case StepQuestion:
		switch {
		case s.questionIndex > 0:
			s.questionIndex--
		case s.demographicPath:
			s.step = StepDemographic
			s.demographicStep = demographic.LastStep
		default:
			s.step = StepConsent
		}
		return true

	default:
		return false
	}
}

// enterResult moves to the result step and fires completion hooks the first
// time only.
func (s *State) enterResult() {
	s.step = StepResult
	if s.completed {
		return
	}
	s.completed = true

	c := Completion{
		SessionID:    s.sessionID,
		Answers:      s.answers.Clone(),
		Demographics: s.demographics,
		Assessment:   s.Assessment(),
		CompletedAt:  s.now(),
	}
	for _, h := range s.hooks {
		h(c)
	}
}

func (s *State) firstUnanswered() (int, bool) {
	for i, q := range s.cat.Questions() {
		if _, ok := s.answers[q.ID]; !ok {
			return i, true
		}
	}
	return 0, false
}
