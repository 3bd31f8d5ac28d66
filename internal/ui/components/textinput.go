package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pbi/internal/ui/theme"
)

// NumberInput wraps bubbles/textinput for entering a number in [Min, Max].
// Non-digit keystrokes are dropped.
type NumberInput struct {
	Model    textinput.Model
	Min, Max int
	rejected bool
}

// NewNumberInput creates a focused input accepting Min..Max.
func NewNumberInput(placeholder string, lo, hi int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = len(strconv.Itoa(hi))
	ti.Focus()

	return NumberInput{Model: ti, Min: lo, Max: hi}
}

// Init returns the initial command.
func (n NumberInput) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update handles messages.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return n, nil
		}
		n.rejected = false
	}

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// View renders the input, flagging the last rejected entry.
func (n NumberInput) View() string {
	view := n.Model.View()
	if n.rejected {
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

// Value parses the entry. ok is false when it is empty, not a number, or
// out of range; the input is then marked as rejected.
func (n *NumberInput) Value() (int, bool) {
	v, err := strconv.Atoi(n.Model.Value())
	if err != nil || v < n.Min || v > n.Max {
		n.rejected = true
		return 0, false
	}
	return v, true
}
