// Package assessment is the interactive questionnaire screen. It renders
// whichever step the session is on and turns key presses into session
// transitions.
package assessment

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	asmt "github.com/abhisek/pbi/internal/assessment"
	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/router"
	"github.com/abhisek/pbi/internal/screen"
	"github.com/abhisek/pbi/internal/ui/components"
	"github.com/abhisek/pbi/internal/ui/layout"
)

// Choice values on the intro and consent steps.
const (
	choiceBegin   = "begin"
	choiceQuit    = "quit"
	choiceProfile = "profile"
	choiceSkip    = "skip"
	choiceDecline = "decline"
)

// ResultFactory builds the screen shown once the session reaches its result.
type ResultFactory func(*asmt.State) screen.Screen

// Screen drives one assessment session from intro to the last question.
type Screen struct {
	state       *asmt.State
	completions int64
	result      ResultFactory

	list components.ChoiceList
	// jump is non-nil while the go-to-question prompt is open.
	jump *components.NumberInput
	// shownStep and shownPos identify what list was built for, so it is
	// rebuilt only when the session moved.
	shownStep asmt.Step
	shownPos  int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the screen for state. completions is shown on the intro.
func New(state *asmt.State, completions int64, result ResultFactory) *Screen {
	s := &Screen{
		state:       state,
		completions: completions,
		result:      result,
	}
	s.rebuild()
	return s
}

// State returns the session the screen drives.
func (s *Screen) State() *asmt.State { return s.state }

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	switch s.state.Step() {
	case asmt.StepIntro:
		return "Welcome"
	case asmt.StepConsent:
		return "Before you begin"
	case asmt.StepDemographic:
		return "About you " + strconv.Itoa(s.state.DemographicStep()+1) + "/" + strconv.Itoa(demographic.StepCount)
	case asmt.StepQuestion:
		return "Question " + strconv.Itoa(s.state.QuestionIndex()+1) + "/" + strconv.Itoa(s.state.Catalog().Len())
	default:
		return "Results"
	}
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.jump != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	switch s.state.Step() {
	case asmt.StepIntro:
		return hints(keys.Move, keys.Pick, keys.Quit)
	case asmt.StepDemographic:
		next := keys.Next
		next.SetEnabled(s.canKeep())
		return hints(keys.Move, keys.Pick, next, keys.Back)
	case asmt.StepQuestion:
		return hints(keys.Pick, keys.Back, keys.Jump, keys.Quit)
	default:
		return hints(keys.Move, keys.Pick, keys.Back)
	}
}

// canKeep reports whether Next would skip over an already answered field.
func (s *Screen) canKeep() bool {
	return s.state.SelectedDemographic() != "" && s.state.DemographicStep() < demographic.LastStep
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.jump != nil {
			var cmd tea.Cmd
			*s.jump, cmd = s.jump.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.jump != nil {
		return s.updateJump(kmsg)
	}

	switch {
	case key.Matches(kmsg, keys.Back):
		s.state.Back()
		return s, s.sync()

	case key.Matches(kmsg, keys.Next) && s.state.Step() == asmt.StepDemographic:
		s.state.NextDemographic()
		return s, s.sync()

	case key.Matches(kmsg, keys.Jump) && s.state.Step() == asmt.StepQuestion:
		in := components.NewNumberInput("1-"+strconv.Itoa(s.state.Catalog().Len()), 1, s.state.Catalog().Len())
		s.jump = &in
		return s, in.Init()
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(kmsg)
	if !s.list.Submitted {
		return s, cmd
	}
	if quit := s.apply(s.list.Value()); quit {
		return s, tea.Quit
	}
	return s, tea.Batch(cmd, s.sync())
}

func (s *Screen) updateJump(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		s.jump = nil
		return s, nil
	case "enter":
		n, ok := s.jump.Value()
		if !ok {
			return s, nil
		}
		s.jump = nil
		s.state.JumpToQuestion(n)
		return s, s.sync()
	}

	var cmd tea.Cmd
	*s.jump, cmd = s.jump.Update(kmsg)
	return s, cmd
}

// apply maps a picked option onto the session. It reports whether the
// respondent chose to quit.
func (s *Screen) apply(value string) bool {
	switch s.state.Step() {
	case asmt.StepIntro:
		switch value {
		case choiceBegin:
			s.state.Start()
		case choiceQuit:
			return true
		}

	case asmt.StepConsent:
		switch value {
		case choiceProfile:
			s.state.ChooseDemographics()
		case choiceSkip:
			s.state.SkipDemographics()
		case choiceDecline:
			s.state.Decline()
		}

	case asmt.StepDemographic:
		s.state.SelectDemographic(value)

	case asmt.StepQuestion:
		v, err := strconv.Atoi(value)
		if err == nil {
			s.state.Answer(v)
		}
	}
	return false
}

// sync rebuilds the option list for the session's position and hands over
// to the result screen once the session is finished.
func (s *Screen) sync() tea.Cmd {
	if s.state.Step() == asmt.StepResult {
		if s.result == nil {
			return nil
		}
		next := s.result(s.state)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	s.rebuild()
	return nil
}

func (s *Screen) position() int {
	switch s.state.Step() {
	case asmt.StepDemographic:
		return s.state.DemographicStep()
	case asmt.StepQuestion:
		return s.state.QuestionIndex()
	default:
		return 0
	}
}

func (s *Screen) rebuild() {
	step, pos := s.state.Step(), s.position()
	// A list that was picked from always needs a fresh one.
	if s.list.Choices != nil && !s.list.Submitted && step == s.shownStep && pos == s.shownPos {
		return
	}
	s.shownStep, s.shownPos = step, pos

	switch step {
	case asmt.StepIntro:
		s.list = components.NewChoiceList("", []components.Choice{
			{Label: "Begin the assessment", Value: choiceBegin},
			{Label: "Quit", Value: choiceQuit},
		}, -1)

	case asmt.StepConsent:
		s.list = components.NewChoiceList("", []components.Choice{
			{Label: "Answer a few optional profile questions first", Value: choiceProfile},
			{Label: "Skip straight to the questions", Value: choiceSkip},
			{Label: "Not now", Value: choiceDecline},
		}, -1)

	case asmt.StepDemographic:
		f, _ := s.state.CurrentField()
		current := s.state.SelectedDemographic()
		opts := f.Options()
		choices := make([]components.Choice, len(opts))
		marked := -1
		for i, o := range opts {
			choices[i] = components.Choice{Label: o.Label, Value: o.Value}
			if o.Value == current {
				marked = i
			}
		}
		s.list = components.NewChoiceList(f.Title(), choices, marked)

	case asmt.StepQuestion:
		q, _ := s.state.Current()
		scale := catalog.LikertScale()
		choices := make([]components.Choice, len(scale))
		for i, o := range scale {
			choices[i] = components.Choice{Label: o.Label, Value: strconv.Itoa(o.Value)}
		}
		s.list = components.NewChoiceList(q.Prompt, choices, s.state.Selected()-catalog.LikertMin)
	}
}
