package listview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/userdesk/internal/tui/theme"
	"github.com/jask/userdesk/internal/users"
)

const maxCellWidth = 22

var headers = []string{"ID", "Username", "Email", "Full Name", "DOB", "Phone", "Address"}

func (m Model) View() string {
	page := m.Visible()
	var b strings.Builder

	b.WriteString(theme.Title.Render("Users"))
	b.WriteString("  ")
	b.WriteString(theme.Muted.Render(fmt.Sprintf("per page: %d", m.pageSize)))
	b.WriteString("\n")

	switch {
	case m.searching:
		b.WriteString(m.search.View())
	case m.query != "":
		b.WriteString(theme.Muted.Render("/ ") + m.query)
	default:
		b.WriteString(theme.Muted.Render("/ to search"))
	}
	b.WriteString("\n")

	b.WriteString(m.renderTable(page.Rows))
	b.WriteString("\n")

	if len(page.Rows) == 0 {
		b.WriteString(theme.Muted.Render("No users found."))
		if s, ok := Suggest(m.all, m.query); ok {
			b.WriteString(" " + theme.Warn.Render(fmt.Sprintf("Did you mean %q?", s)))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Showing %d of %d", len(page.Rows), page.Matches))
	b.WriteString("    ")
	b.WriteString(renderPager(page))
	return b.String()
}

func (m Model) renderTable(rows []users.User) string {
	cells := make([][]string, 0, len(rows))
	for _, u := range rows {
		cells = append(cells, []string{
			u.IDString(), cell(u.Username), cell(u.Email), cell(u.FullName),
			cell(u.DOB), cell(u.Phone), cell(u.Address),
		})
	}
	cursor := m.cursor
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(theme.TableBorder).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.Header.Padding(0, 1)
			case row == cursor && !m.searching:
				return theme.SelectedRow.Padding(0, 1)
			default:
				return theme.Cell
			}
		})
	return t.Render()
}

func renderPager(p Page) string {
	first, prev, next, last := "«", "‹", "›", "»"
	if p.Number <= 1 {
		first, prev = theme.Muted.Render(first), theme.Muted.Render(prev)
	}
	if p.Number >= p.TotalPages {
		next, last = theme.Muted.Render(next), theme.Muted.Render(last)
	}
	return fmt.Sprintf("%s %s %d/%d %s %s", first, prev, p.Number, p.TotalPages, next, last)
}

func cell(s string) string {
	return ansi.Truncate(strings.ReplaceAll(s, "\n", " "), maxCellWidth, "…")
}
