package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pbi/internal/router"
	"github.com/abhisek/pbi/internal/screen"
	"github.com/abhisek/pbi/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// Battery cells fill one per tick during phase 2, then pulse.
const batteryCells = 8

const tagline = "How are you really doing at work?"

type tickMsg time.Time

// WelcomeScreen shows a short splash before handing over to the next screen.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with the screen produced
// by next on the first key press.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// filledCells returns how many battery cells are lit at the current time.
func (w *WelcomeScreen) filledCells() int {
	if w.elapsed < phase1End {
		return 0
	}
	n := int((w.elapsed - phase1End) / tickInterval)
	if n < batteryCells {
		return n
	}
	// Pulse the top cell once full.
	if w.tickCount%2 == 0 {
		return batteryCells - 1
	}
	return batteryCells
}

func renderBattery(filled int) string {
	cell := lipgloss.NewStyle().Foreground(theme.Success).Render("█")
	empty := lipgloss.NewStyle().Foreground(theme.Border).Render("░")
	frame := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(frame.Render("╭" + strings.Repeat("─", batteryCells*2) + "╮"))
	b.WriteString("\n")
	b.WriteString(frame.Render("│"))
	for i := 0; i < batteryCells; i++ {
		if i < filled {
			b.WriteString(cell + cell)
		} else {
			b.WriteString(empty + empty)
		}
	}
	b.WriteString(frame.Render("│▌"))
	b.WriteString("\n")
	b.WriteString(frame.Render("╰" + strings.Repeat("─", batteryCells*2) + "╯"))
	return b.String()
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{renderBattery(w.filledCells())}

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
