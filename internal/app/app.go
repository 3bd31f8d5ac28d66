package app

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/export"
	"github.com/abhisek/pbi/internal/router"
	"github.com/abhisek/pbi/internal/screen"
	"github.com/abhisek/pbi/internal/screens/welcome"
	"github.com/abhisek/pbi/internal/store"
	"github.com/abhisek/pbi/internal/ui/layout"
)

// Options holds the collaborators of the interactive app. Every field may
// be nil: a nil catalog selects the embedded one, and a nil repo or
// dispatcher disables that side effect. Results, when set, also advances
// the counter; Counter alone only counts.
type Options struct {
	Catalog    *catalog.Catalog
	Counter    store.CounterRepo
	Results    store.ResultRepo
	Dispatcher *export.Dispatcher
	Logger     *log.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int

	// completions is shared with the completion hook, which updates it from
	// inside a screen's Update.
	completions *atomic.Int64
	sessions    *sessionFactory
}

// newAppModel creates a new AppModel starting at the welcome splash.
func newAppModel(ctx context.Context, opts Options) AppModel {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	completions := &atomic.Int64{}
	if opts.Counter != nil {
		n, err := opts.Counter.Count(ctx)
		if err != nil {
			opts.Logger.Warn("read completion count", "err", err)
		}
		completions.Store(n)
	}

	sessions := &sessionFactory{
		ctx:         ctx,
		opts:        opts,
		completions: completions,
	}

	return AppModel{
		router:      router.New(welcome.New(sessions.newSession)),
		completions: completions,
		sessions:    sessions,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Pushed screens close on Esc; the base screen handles it itself.
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if n := m.completions.Load(); n > 0 {
		status = fmt.Sprintf("✓ %d completed", n)
	}
	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if h := hp.KeyHints(); h != nil {
			footerHints = h
		}
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits. In-flight
// exports are drained before returning.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if opts.Dispatcher != nil {
		opts.Dispatcher.Wait()
	}
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
