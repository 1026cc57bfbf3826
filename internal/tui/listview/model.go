// Package listview is the record list: client-side search, pagination and the
// edit/delete intents raised from it. It never talks to the network.
package listview

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/userdesk/internal/users"
)

// DefaultPageSizes are the sizes cycled through by the page size key.
var DefaultPageSizes = []int{5, 10, 25}

// EditMsg asks for a record to be loaded into the form.
type EditMsg struct {
	User users.User
}

// DeleteRequestMsg asks for a record to be deleted. Nothing is deleted until
// the user confirms.
type DeleteRequestMsg struct {
	UserID int64
}

type Model struct {
	all      []users.User
	query    string
	page     int
	pageSize int
	sizes    []int
	cursor   int

	search    textinput.Model
	searching bool
	keys      KeyMap
	skeys     searchKeys
	width     int
}

func New(pageSize int, sizes []int) Model {
	if len(sizes) == 0 {
		sizes = DefaultPageSizes
	}
	if pageSize < 1 {
		pageSize = sizes[0]
	}
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "Search by username, email, name..."
	return Model{
		all:      []users.User{},
		page:     1,
		pageSize: pageSize,
		sizes:    slices.Clone(sizes),
		search:   in,
		keys:     DefaultKeyMap(),
		skeys:    defaultSearchKeys(),
	}
}

// SetUsers replaces the source list with a copy of list. The current page is
// kept when still in range.
func (m Model) SetUsers(list []users.User) Model {
	m.all = slices.Clone(list)
	if m.all == nil {
		m.all = []users.User{}
	}
	m.page = m.Visible().Number
	m.cursor = clampCursor(m.cursor, len(m.Visible().Rows))
	return m
}

// Users returns the unfiltered source list.
func (m Model) Users() []users.User { return m.all }

func (m Model) Query() string { return m.query }

// SetQuery changes the search query and returns to page 1.
func (m Model) SetQuery(q string) Model {
	m.query = q
	m.page = 1
	m.cursor = 0
	return m
}

func (m Model) PageSize() int { return m.pageSize }

// SetPageSize changes the page size and returns to page 1.
func (m Model) SetPageSize(n int) Model {
	m.pageSize = max(1, n)
	m.page = 1
	m.cursor = 0
	return m
}

// CyclePageSize moves to the next configured size, wrapping around.
func (m Model) CyclePageSize() Model {
	next := m.sizes[0]
	for _, s := range m.sizes {
		if s > m.pageSize {
			next = s
			break
		}
	}
	return m.SetPageSize(next)
}

// GoToPage moves to page n, clamped into range.
func (m Model) GoToPage(n int) Model {
	total := TotalPages(len(Filter(m.all, m.query)), m.pageSize)
	m.page = ClampPage(n, total)
	m.cursor = 0
	return m
}

func (m Model) CurrentPage() int { return m.Visible().Number }

// Visible derives the page currently on screen.
func (m Model) Visible() Page {
	return Paginate(Filter(m.all, m.query), m.page, m.pageSize)
}

func (m Model) Cursor() int { return m.cursor }

// Selected returns the record under the cursor.
func (m Model) Selected() (users.User, bool) {
	rows := m.Visible().Rows
	if m.cursor < 0 || m.cursor >= len(rows) {
		return users.User{}, false
	}
	return rows[m.cursor], true
}

// Searching reports whether the search box has focus.
func (m Model) Searching() bool { return m.searching }

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) SetWidth(w int) Model {
	m.width = w
	m.search.Width = max(10, w-6)
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searching {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.searching {
		return m.updateSearch(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.Visible().Rows)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.PrevPage):
		m = m.GoToPage(m.CurrentPage() - 1)
	case key.Matches(keyMsg, m.keys.NextPage):
		m = m.GoToPage(m.CurrentPage() + 1)
	case key.Matches(keyMsg, m.keys.FirstPage):
		m = m.GoToPage(1)
	case key.Matches(keyMsg, m.keys.LastPage):
		m = m.GoToPage(m.Visible().TotalPages)
	case key.Matches(keyMsg, m.keys.PageSize):
		m = m.CyclePageSize()
	case key.Matches(keyMsg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(keyMsg, m.keys.Edit):
		if u, ok := m.Selected(); ok {
			return m, func() tea.Msg { return EditMsg{User: u} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if u, ok := m.Selected(); ok && u.HasID() {
			id := u.UserID
			return m, func() tea.Msg { return DeleteRequestMsg{UserID: id} }
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.skeys.Done):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.skeys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m.SetQuery(""), nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.query {
		m = m.SetQuery(v)
	}
	return m, cmd
}

func clampCursor(cursor, rows int) int {
	if rows == 0 {
		return 0
	}
	return max(0, min(cursor, rows-1))
}
