package listview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/userdesk/internal/users"
)

func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func manyUsers(n int) []users.User {
	out := make([]users.User, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, users.User{UserID: int64(i), Username: "user" + string(rune('a'+i%26)), Email: "u@x.io"})
	}
	return out
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func TestQueryChangeResetsPage(t *testing.T) {
	m := New(5, nil).SetUsers(manyUsers(23))
	m = m.GoToPage(4)
	if m.CurrentPage() != 4 {
		t.Fatalf("page = %d, want 4", m.CurrentPage())
	}
	m = m.SetQuery("user")
	if m.CurrentPage() != 1 {
		t.Fatalf("page after query change = %d, want 1", m.CurrentPage())
	}
}

func TestPageSizeChangeResetsPage(t *testing.T) {
	m := New(5, nil).SetUsers(manyUsers(23))
	m = m.GoToPage(3)
	m = m.SetPageSize(10)
	if m.CurrentPage() != 1 || m.PageSize() != 10 {
		t.Fatalf("page=%d size=%d, want page 1 size 10", m.CurrentPage(), m.PageSize())
	}
	m = m.GoToPage(2).CyclePageSize()
	if m.CurrentPage() != 1 || m.PageSize() != 25 {
		t.Fatalf("page=%d size=%d after cycle, want page 1 size 25", m.CurrentPage(), m.PageSize())
	}
	if m = m.CyclePageSize(); m.PageSize() != 5 {
		t.Fatalf("cycle should wrap to 5, got %d", m.PageSize())
	}
}

func TestGoToPageClamps(t *testing.T) {
	m := New(5, nil).SetUsers(manyUsers(12))
	if got := m.GoToPage(0).CurrentPage(); got != 1 {
		t.Fatalf("GoToPage(0) = %d, want 1", got)
	}
	if got := m.GoToPage(10).CurrentPage(); got != 3 {
		t.Fatalf("GoToPage(10) = %d, want 3", got)
	}
	empty := New(5, nil)
	if got := empty.GoToPage(2).CurrentPage(); got != 1 {
		t.Fatalf("empty list GoToPage(2) = %d, want 1", got)
	}
}

func TestSetUsersKeepsSourceUnfiltered(t *testing.T) {
	src := manyUsers(8)
	m := New(5, nil).SetUsers(src).SetQuery("usere")
	if len(m.Users()) != 8 {
		t.Fatalf("source list len = %d, want 8", len(m.Users()))
	}
	src[0].Username = "changed"
	if m.Users()[0].Username == "changed" {
		t.Fatal("SetUsers must copy the list")
	}
}

func TestSetUsersClampsPageWhenListShrinks(t *testing.T) {
	m := New(5, nil).SetUsers(manyUsers(15)).GoToPage(3)
	m = m.SetUsers(manyUsers(6))
	if m.CurrentPage() != 2 {
		t.Fatalf("page = %d, want 2", m.CurrentPage())
	}
}

func TestKeyNavigation(t *testing.T) {
	m := New(5, nil).SetUsers(manyUsers(12))
	m = press(t, m, keyMsg("l"), keyMsg("l"), keyMsg("l"))
	if m.CurrentPage() != 3 {
		t.Fatalf("page = %d, want 3", m.CurrentPage())
	}
	m = press(t, m, keyMsg("h"))
	if m.CurrentPage() != 2 {
		t.Fatalf("page = %d, want 2", m.CurrentPage())
	}
	m = press(t, m, keyMsg("G"))
	if m.CurrentPage() != 3 {
		t.Fatalf("page = %d, want 3", m.CurrentPage())
	}
	m = press(t, m, keyMsg("g"), keyMsg("j"), keyMsg("j"), keyMsg("k"))
	if m.CurrentPage() != 1 || m.Cursor() != 1 {
		t.Fatalf("page=%d cursor=%d, want 1/1", m.CurrentPage(), m.Cursor())
	}
	m = press(t, m, keyMsg("j"), keyMsg("j"), keyMsg("j"), keyMsg("j"), keyMsg("j"))
	if m.Cursor() != 4 {
		t.Fatalf("cursor should stop at last row, got %d", m.Cursor())
	}
}

func TestEditAndDeleteIntents(t *testing.T) {
	m := New(5, nil).SetUsers(manyUsers(3))
	m = press(t, m, keyMsg("j"))

	_, cmd := m.Update(keyMsg("e"))
	if cmd == nil {
		t.Fatal("expected edit command")
	}
	edit, ok := cmd().(EditMsg)
	if !ok || edit.User.UserID != 2 {
		t.Fatalf("expected EditMsg for user 2, got %#v", cmd())
	}

	_, cmd = m.Update(keyMsg("d"))
	if cmd == nil {
		t.Fatal("expected delete request command")
	}
	del, ok := cmd().(DeleteRequestMsg)
	if !ok || del.UserID != 2 {
		t.Fatalf("expected DeleteRequestMsg for user 2, got %#v", cmd())
	}
}

func TestIntentsOnEmptyListDoNothing(t *testing.T) {
	m := New(5, nil)
	for _, k := range []string{"e", "d"} {
		if _, cmd := m.Update(keyMsg(k)); cmd != nil {
			t.Fatalf("key %q on empty list should not emit a command", k)
		}
	}
}

func TestSearchTypingFiltersLive(t *testing.T) {
	m := New(5, nil).SetUsers(testUsers()).GoToPage(1)
	m = press(t, m, keyMsg("/"))
	if !m.Searching() {
		t.Fatal("expected search focus")
	}
	m = press(t, m, keyMsg("c"), keyMsg("o"), keyMsg("r"), keyMsg("p"))
	if m.Query() != "corp" {
		t.Fatalf("query = %q, want corp", m.Query())
	}
	if got := ids(m.Visible().Rows); len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Searching() || m.Query() != "corp" {
		t.Fatalf("enter should keep query and leave search, searching=%v query=%q", m.Searching(), m.Query())
	}

	m = press(t, m, keyMsg("/"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.Searching() || m.Query() != "" {
		t.Fatalf("esc should clear the query, searching=%v query=%q", m.Searching(), m.Query())
	}
}

func TestViewShowsEmptyStateAndPager(t *testing.T) {
	m := New(5, nil).SetUsers(testUsers()).SetQuery("alcie")
	out := m.View()
	for _, want := range []string{"No users found.", "Showing 0 of 0", "1/1", `Did you mean "alice"?`} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}

	m = m.SetQuery("")
	out = m.View()
	if !strings.Contains(out, "Showing 5 of 5") || !strings.Contains(out, "alice@example.com") {
		t.Fatalf("unexpected view:\n%s", out)
	}
}
