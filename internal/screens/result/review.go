package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	asmt "github.com/abhisek/pbi/internal/assessment"
	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/router"
	"github.com/abhisek/pbi/internal/screen"
	"github.com/abhisek/pbi/internal/ui/layout"
	"github.com/abhisek/pbi/internal/ui/theme"
)

// ReviewScreen lists every recorded answer grouped by category. It is
// read-only; the answers were saved when the result was reached.
type ReviewScreen struct {
	state     *asmt.State
	questions []catalog.Question
	cursor    int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// NewReview creates a ReviewScreen over state's answers.
func NewReview(state *asmt.State) *ReviewScreen {
	var qs []catalog.Question
	for _, c := range catalog.AllCategories() {
		qs = append(qs, state.Catalog().ByCategory(c)...)
	}
	return &ReviewScreen{state: state, questions: qs}
}

func (v *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (v *ReviewScreen) Title() string {
	return "Review Answers"
}

func (v *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Esc", Description: "Back"},
	}
}

func (v *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.questions)-1 {
			v.cursor++
		}
	case "q", "backspace":
		return v, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return v, nil
}

func (v *ReviewScreen) View(width, height int) string {
	answers := v.state.Answers()
	cw := min(width-4, 90)

	// One line per question plus a heading per category.
	lines := make([]string, 0, len(v.questions)+len(catalog.AllCategories()))
	cursorLine := 0
	var last catalog.Category
	for i, q := range v.questions {
		if q.Category != last {
			last = q.Category
			lines = append(lines, theme.Selected.Render(q.Category.DisplayName()))
		}

		value := answers[q.ID]
		answer := catalog.LikertLabel(value)
		if value != 0 {
			answer = fmt.Sprintf("%d %s", value, answer)
		}
		prompt := truncate(q.Prompt, cw-28)
		line := fmt.Sprintf("%-4s %-*s %s", q.Code, cw-28, prompt, answer)

		style := theme.Unselected
		if i == v.cursor {
			style = theme.Chosen
			line = "▸" + line
			cursorLine = len(lines)
		} else {
			line = " " + line
		}
		lines = append(lines, style.Render(line))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(window(lines, cursorLine, height-2), "\n"))
}

// window returns at most height lines around the cursor line.
func window(lines []string, cursor, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := cursor - height/2
	start = max(0, min(start, len(lines)-height))
	return lines[start : start+height]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
