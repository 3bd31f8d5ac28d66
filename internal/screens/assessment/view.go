package assessment

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	asmt "github.com/abhisek/pbi/internal/assessment"
	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/ui/components"
	"github.com/abhisek/pbi/internal/ui/layout"
	"github.com/abhisek/pbi/internal/ui/theme"
)

// contentWidth keeps text readable on wide terminals.
func contentWidth(width int) int {
	return min(width-4, 72)
}

func (s *Screen) View(width, height int) string {
	cw := contentWidth(width)

	var body string
	switch s.state.Step() {
	case asmt.StepIntro:
		body = s.renderIntro(cw, height)
	case asmt.StepConsent:
		body = s.renderConsent(cw)
	case asmt.StepDemographic:
		body = s.renderDemographic(cw)
	case asmt.StepQuestion:
		body = s.renderQuestion(cw)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func paragraph(width int, text string) string {
	return lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(text)
}

func (s *Screen) renderIntro(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Professional Burnout Inventory"))
	b.WriteString("\n\n")
	b.WriteString(paragraph(width, fmt.Sprintf(
		"%d short statements about how you feel at work. Rate how much you agree with each one. "+
			"It takes about five minutes and your answers stay anonymous.",
		s.state.Catalog().Len())))
	b.WriteString("\n\n")

	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		for _, c := range catalog.AllCategories() {
			b.WriteString(theme.Selected.Render("• " + c.DisplayName()))
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("  " + c.Description()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if s.completions > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Completed %d times so far.", s.completions)))
		b.WriteString("\n\n")
	}

	b.WriteString(s.list.View())
	return b.String()
}

func (s *Screen) renderConsent(width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Your privacy"))
	b.WriteString("\n\n")
	b.WriteString(paragraph(width,
		"Your answers are saved without your name and may be shared in anonymous form for research. "+
			"You can also tell us a little about yourself. Every profile question is optional."))
	b.WriteString("\n\n")
	b.WriteString(paragraph(width,
		"This is a self-assessment, not a diagnosis. If you are struggling, please talk to a professional."))
	b.WriteString("\n\n")
	b.WriteString(s.list.View())
	return b.String()
}

func (s *Screen) renderDemographic(width int) string {
	f, _ := s.state.CurrentField()

	var b strings.Builder
	step := s.state.DemographicStep() + 1
	bar := components.NewProgressBar("About you", float64(step)/float64(demographic.StepCount), width)
	bar.Suffix = fmt.Sprintf("%d/%d", step, demographic.StepCount)
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(f.Subtitle()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(s.list.View()))
	return b.String()
}

func (s *Screen) renderQuestion(width int) string {
	q, _ := s.state.Current()

	var b strings.Builder
	bar := components.NewProgressBar("", s.state.Progress()/100, width)
	bar.Suffix = fmt.Sprintf("%d/%d", s.state.QuestionIndex()+1, s.state.Catalog().Len())
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%s · %d answered", q.Category.DisplayName(), s.state.Answered())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(s.list.View()))

	if s.jump != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("Go to question: "))
		b.WriteString(s.jump.View())
	}
	return b.String()
}
