package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pbi/internal/ui/theme"
)

// Choice is one selectable option.
type Choice struct {
	Label string
	Value string
}

// ChoiceList is a single-select list. Arrow keys move the cursor, enter
// picks it, and the digits 1-9 pick an option directly. Marked is the
// option already on record (-1 for none) and starts under the cursor.
type ChoiceList struct {
	Prompt    string
	Choices   []Choice
	Cursor    int
	Marked    int
	Submitted bool
	Picked    int
}

// NewChoiceList creates a list with the cursor on marked, or on the first
// option when marked is out of range.
func NewChoiceList(prompt string, choices []Choice, marked int) ChoiceList {
	if marked < 0 || marked >= len(choices) {
		marked = -1
	}
	return ChoiceList{
		Prompt:  prompt,
		Choices: choices,
		Cursor:  max(marked, 0),
		Marked:  marked,
		Picked:  -1,
	}
}

// Update handles keyboard navigation and selection. It does nothing once
// an option has been picked.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Choices)-1 {
			c.Cursor++
		}
	case "enter", "space":
		c.pick(c.Cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			c.pick(int(key[0] - '1'))
		}
	}

	return c, nil
}

func (c *ChoiceList) pick(i int) {
	if i < 0 || i >= len(c.Choices) {
		return
	}
	c.Cursor = i
	c.Submitted = true
	c.Picked = i
}

// Value returns the picked option's value, or "" before a pick.
func (c ChoiceList) Value() string {
	if !c.Submitted {
		return ""
	}
	return c.Choices[c.Picked].Value
}

// View renders the prompt and options.
func (c ChoiceList) View() string {
	var b strings.Builder
	if c.Prompt != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
		b.WriteString("\n\n")
	}

	for i, opt := range c.Choices {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		mark := " "
		if i == c.Marked {
			mark = "●"
		}
		line := fmt.Sprintf("%s%d) %s %s", prefix, i+1, mark, opt.Label)

		switch {
		case i == c.Cursor:
			b.WriteString(theme.Selected.Render(line))
		case i == c.Marked:
			b.WriteString(theme.Chosen.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
