package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/userdesk/internal/tui/theme"
)

const labelWidth = 15

func (m Model) View() string {
	var b strings.Builder

	title := "New User"
	if m.Mode() == ModeEdit {
		title = "Edit User"
	}
	b.WriteString(theme.Title.Render(title))
	b.WriteString("\n\n")

	if m.target != nil {
		b.WriteString(row("User ID", theme.Muted.Render(m.target.IDString()+" (read-only)"), false))
	}
	for i, in := range m.inputs {
		b.WriteString(row(fieldLabels[i], in.View(), m.focused && field(i) == m.focus))
	}

	if m.errVisible {
		b.WriteString("\n")
		b.WriteString(theme.ErrorBox.Render("× " + m.errText + "  " + theme.Muted.Render("(ctrl+x)")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderButtons())
	return b.String()
}

func (m Model) renderButtons() string {
	var primary, secondary string
	switch m.Mode() {
	case ModeEdit:
		primary, secondary = "Update User", "Cancel"
		if m.submitting {
			primary = "Updating…"
		}
	default:
		primary, secondary = "Create User", "Reset"
		if m.submitting {
			primary = "Creating…"
		}
	}
	if m.submitting {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			theme.DisabledButton.Render(primary), " ", theme.DisabledButton.Render(secondary))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.PrimaryButton.Render(primary), " ", theme.Button.Render(secondary))
}

func row(label, value string, active bool) string {
	marker := "  "
	style := theme.Label
	if active {
		marker = theme.Title.Render("> ")
		style = theme.Title
	}
	return fmt.Sprintf("%s%s %s\n", marker, style.Width(labelWidth).Render(label), value)
}
