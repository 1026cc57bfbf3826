package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/userdesk/internal/tui/theme"
)

// Below this width the panes stack instead of sitting side by side.
const sideBySideWidth = 150

const formPaneWidth = 58

func (a *App) View() string {
	sections := []string{a.renderHeader()}
	if banner := a.renderBanner(); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections, a.renderBody(), a.renderStatus(), a.renderFooter())
	view := strings.Join(sections, "\n")

	if a.session.Confirming() {
		return placeDialog(view, renderConfirm(), a.width, a.height)
	}
	return view
}

func (a *App) renderHeader() string {
	title := "userdesk"
	if a.source != "" {
		title += "  " + a.source
	}
	return renderBar(theme.HeaderBar, a.barWidth(), title)
}

func (a *App) renderBanner() string {
	switch {
	case a.session.Loading:
		return theme.Muted.Render("Loading users…")
	case a.session.LoadErr != "":
		return theme.ErrorBox.Render(a.session.LoadErr + "  " + theme.Muted.Render("r to retry"))
	}
	return ""
}

func (a *App) renderBody() string {
	listStyle, formStyle := theme.FocusedPane, theme.Pane
	if a.focus == paneForm {
		listStyle, formStyle = theme.Pane, theme.FocusedPane
	}
	formPane := formStyle.Render(a.form.View())
	listPane := listStyle.Render(a.list.View())
	if a.width >= sideBySideWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top, formPane, " ", listPane)
	}
	return lipgloss.JoinVertical(lipgloss.Left, formPane, listPane)
}

func (a *App) renderStatus() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	if a.statusErr {
		return renderBar(theme.StatusErrBar, a.barWidth(), msg)
	}
	return renderBar(theme.StatusBar, a.barWidth(), msg)
}

func (a *App) renderFooter() string {
	return a.help.View(a.bindings())
}

// bindings lists the keys that apply to whatever currently has focus.
func (a *App) bindings() helpKeys {
	if a.session.Confirming() {
		return helpKeys{a.keys.Confirm, a.keys.Decline}
	}
	if a.focus == paneForm {
		fk := a.form.Keys()
		return helpKeys{fk.Next, fk.Submit, fk.Reset, fk.Cancel, fk.Dismiss}
	}
	lk := a.list.Keys()
	return helpKeys{
		lk.Up, lk.Down, lk.PrevPage, lk.NextPage, lk.Search, lk.PageSize,
		lk.Edit, lk.Delete, a.keys.NewUser, a.keys.Refresh, a.keys.Quit,
	}
}

func renderConfirm() string {
	return theme.Title.Render("Delete this user?") + "\n\n" +
		theme.Muted.Render("y delete · n keep")
}

func (a *App) listWidth() int {
	if a.width >= sideBySideWidth {
		return a.width - formPaneWidth - 5
	}
	return a.width - 4
}

func (a *App) barWidth() int { return a.width }

// renderBar draws a single-line bar padded to width. Before the first
// WindowSizeMsg the width is unknown and the text is rendered as is.
func renderBar(style lipgloss.Style, width int, text string) string {
	if width <= 0 {
		return style.Render(strings.ReplaceAll(text, "\n", " "))
	}
	line := ansi.Truncate(strings.ReplaceAll(text, "\n", " "), width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimRight(line, "\r")
}
