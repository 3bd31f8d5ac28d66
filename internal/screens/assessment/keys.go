package assessment

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/pbi/internal/ui/layout"
)

type keyMap struct {
	Move key.Binding
	Pick key.Binding
	Back key.Binding
	Next key.Binding
	Jump key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Move: key.NewBinding(
		key.WithKeys("up", "down", "k", "j"),
		key.WithHelp("↑↓", "Move"),
	),
	Pick: key.NewBinding(
		key.WithKeys("enter", "space", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("Enter/1-9", "Select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "left", "h"),
		key.WithHelp("Esc", "Back"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("Tab", "Keep answer"),
	),
	Jump: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "Go to question"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+C", "Quit"),
	),
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
