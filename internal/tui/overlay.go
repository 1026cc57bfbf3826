package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/userdesk/internal/tui/theme"
)

// placeDialog draws dialog in a bordered card centred over base. Rows the
// card does not cover keep the base content. With no known terminal size the
// card is appended below base.
func placeDialog(base, dialog string, width, height int) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorError).
		Padding(1, 2).
		Render(dialog)
	if width <= 0 || height <= 0 {
		return base + "\n\n" + card
	}

	baseRows := canvasRows(base, width, height)
	cardRows := canvasRows(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card), width, height)
	for i, row := range cardRows {
		from, to, ok := inkSpan(row, width)
		if !ok {
			continue
		}
		left := ansi.Truncate(baseRows[i], from, "")
		mid := ansi.Truncate(ansi.TruncateLeft(row, from, ""), to-from, "")
		right := ansi.TruncateLeft(baseRows[i], to, "")
		baseRows[i] = padRight(left+mid+right, width)
	}
	return strings.Join(baseRows, "\n")
}

// inkSpan finds the first and last non-blank columns of a row.
func inkSpan(row string, width int) (from, to int, ok bool) {
	plain := ansi.Strip(ansi.Truncate(row, width, ""))
	trimmed := strings.TrimRight(plain, " ")
	if trimmed == "" {
		return 0, 0, false
	}
	lead := len(trimmed) - len(strings.TrimLeft(trimmed, " "))
	return lead, ansi.StringWidth(trimmed), true
}

func canvasRows(s string, width, height int) []string {
	rows := strings.Split(s, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i := range rows {
		rows[i] = padRight(rows[i], width)
	}
	return rows
}

func padRight(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
