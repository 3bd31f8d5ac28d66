// Package assessment drives a single respondent through the questionnaire:
// intro, consent, the optional profile, the Likert questions and the result.
// A State is owned by one session and is not safe for concurrent use.
package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/scoring"
)

// Step is the top-level position in the flow.
type Step int

const (
	StepIntro       Step = iota // Landing page
	StepConsent                 // Consent and profile opt-in
	StepDemographic             // Optional profile sub-steps
	StepQuestion                // Likert questions
	StepResult                  // Scores and classification
)

func (s Step) String() string {
	switch s {
	case StepIntro:
		return "intro"
	case StepConsent:
		return "consent"
	case StepDemographic:
		return "demographic"
	case StepQuestion:
		return "question"
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}

// Completion is handed to completion hooks when the session first reaches
// the result step with every question answered.
type Completion struct {
	SessionID    string
	Answers      scoring.Answers
	Demographics demographic.Record
	Assessment   scoring.Assessment
	CompletedAt  time.Time
}

// CompletionHook receives a finished session. Hooks run synchronously inside
// the transition that completes the session; slow work belongs in a goroutine.
type CompletionHook func(Completion)

// Option configures a State.
type Option func(*State)

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(s *State) { s.sessionID = id }
}

// OnComplete registers a completion hook. Hooks fire in registration order.
func OnComplete(h CompletionHook) Option {
	return func(s *State) {
		if h != nil {
			s.hooks = append(s.hooks, h)
		}
	}
}

// WithClock sets the time source used for CompletedAt.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// State tracks the runtime state of one assessment session.
type State struct {
	cat *catalog.Catalog

	// sessionID identifies the session in completion records.
	sessionID string

	step Step

	// questionIndex is the cursor into the catalog, always in [0, N-1].
	questionIndex int

	// demographicStep is the profile sub-step, always in [0, LastStep].
	demographicStep int

	answers      scoring.Answers
	demographics demographic.Record

	// demographicPath is set when the respondent opted into the profile, so
	// Back from the first question returns there instead of to consent.
	demographicPath bool

	// completed latches the first entry into the result step. Hooks fire
	// only when it flips.
	completed bool

	hooks []CompletionHook
	now   func() time.Time
}

// New creates a session at the intro step. A nil catalog selects the
// embedded default.
func New(cat *catalog.Catalog, opts ...Option) *State {
	if cat == nil {
		cat = catalog.Default()
	}
	s := &State{
		cat:     cat,
		step:    StepIntro,
		answers: make(scoring.Answers, cat.Len()),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessionID == "" {
		s.sessionID = uuid.NewString()
	}
	return s
}

// SessionID returns the session identifier.
func (s *State) SessionID() string { return s.sessionID }

// Catalog returns the question catalog the session runs against.
func (s *State) Catalog() *catalog.Catalog { return s.cat }

// Step returns the current top-level step.
func (s *State) Step() Step { return s.step }

// QuestionIndex returns the zero-based question cursor.
func (s *State) QuestionIndex() int { return s.questionIndex }

// DemographicStep returns the zero-based profile sub-step.
func (s *State) DemographicStep() int { return s.demographicStep }

// Answers returns a copy of the recorded answers.
func (s *State) Answers() scoring.Answers { return s.answers.Clone() }

// Demographics returns the recorded profile.
func (s *State) Demographics() demographic.Record { return s.demographics }

// CameFromDemographics reports whether the respondent took the profile path.
func (s *State) CameFromDemographics() bool { return s.demographicPath }

// Completed reports whether completion hooks have fired.
func (s *State) Completed() bool { return s.completed }
