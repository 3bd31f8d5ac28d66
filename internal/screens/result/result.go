// Package result shows the scores and burnout level of a finished session
// and lets the respondent review their answers.
package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	asmt "github.com/abhisek/pbi/internal/assessment"
	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/router"
	"github.com/abhisek/pbi/internal/scoring"
	"github.com/abhisek/pbi/internal/screen"
	"github.com/abhisek/pbi/internal/ui/components"
	"github.com/abhisek/pbi/internal/ui/layout"
	"github.com/abhisek/pbi/internal/ui/theme"
)

const disclaimer = "This self-assessment is not a medical diagnosis. " +
	"If you are concerned about your wellbeing, please reach out to a healthcare professional."

// ResultScreen displays the assessment of a finished session.
type ResultScreen struct {
	state   *asmt.State
	restart func() screen.Screen
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen. restart builds the screen for a new session;
// nil hides that option.
func New(state *asmt.State, restart func() screen.Screen) *ResultScreen {
	return &ResultScreen{state: state, restart: restart}
}

func (r *ResultScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultScreen) Title() string {
	return "Your Results"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	h := []layout.KeyHint{{Key: "R", Description: "Review answers"}}
	if r.restart != nil {
		h = append(h, layout.KeyHint{Key: "N", Description: "New assessment"})
	}
	return append(h, layout.KeyHint{Key: "Q", Description: "Quit"})
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "r":
		review := NewReview(r.state)
		return r, func() tea.Msg { return router.PushScreenMsg{Screen: review} }
	case "n":
		if r.restart == nil {
			return r, nil
		}
		next := r.restart()
		return r, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "q":
		return r, tea.Quit
	}
	return r, nil
}

func (r *ResultScreen) View(width, height int) string {
	a := r.state.Assessment()
	cw := min(width-4, 76)

	var b strings.Builder

	b.WriteString(theme.Tagged(a.Level.StyleTag).Width(cw).Align(lipgloss.Center).Render(a.Level.Name))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(a.Level.Description))
	b.WriteString("\n\n")

	for _, c := range catalog.AllCategories() {
		b.WriteString(renderScore(c, a.Scores.For(c), cw))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rec := theme.Card.Width(cw).Render(
		theme.Selected.Render("Recommendation") + "\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Render(a.Level.Recommendation))
	b.WriteString(rec)
	b.WriteString("\n\n")

	if missing := len(r.state.Missing()); missing > 0 {
		b.WriteString(theme.Tagged("warning").Render(
			fmt.Sprintf("%d questions unanswered; scores cover answered questions only.", missing)))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Hint.Width(cw).Render(disclaimer))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// renderScore renders one category row: name, a bar scaled to the Likert
// maximum, the mean and its band.
func renderScore(c catalog.Category, score float64, width int) string {
	band := scoring.Interpret(c, score)

	name := lipgloss.NewStyle().Foreground(theme.Text).Width(24).Render(c.DisplayName())
	label := theme.Tagged(band.StyleTag).Render(band.Label)

	bar := components.NewProgressBar("", score/catalog.LikertMax, width-24-16)
	bar.Suffix = fmt.Sprintf("%.2f", score)
	bar.Fill = theme.TagColor(band.StyleTag)

	return name + bar.View() + "  " + label
}
