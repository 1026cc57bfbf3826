package tui

import (
	"github.com/jask/userdesk/internal/tui/form"
	"github.com/jask/userdesk/internal/users"
)

// usersLoadedMsg carries the fetch sequence number it answers; only the
// latest fetch is applied.
type usersLoadedMsg struct {
	seq   uint64
	users []users.User
	err   error
}

type savedMsg struct {
	mode form.Mode
	id   int64
	err  error
}

type deletedMsg struct {
	id  int64
	err error
}
