package tui

import "github.com/jask/userdesk/internal/users"

// LoadFailedMessage is shown in the page banner when the list cannot be fetched.
const LoadFailedMessage = "Failed to load users."

// Session is the orchestrator state. Every transition returns a new value.
type Session struct {
	Users   []users.User
	Loading bool
	LoadErr string
	// Editing is the record bound to the form, nil in create mode.
	Editing *users.User
	// PendingDelete is the id awaiting confirmation, 0 when no dialog is open.
	PendingDelete int64
}

func (s Session) FetchStarted() Session {
	s.Loading = true
	s.LoadErr = ""
	return s
}

func (s Session) FetchSucceeded(list []users.User) Session {
	if list == nil {
		list = []users.User{}
	}
	s.Users = list
	s.Loading = false
	return s
}

func (s Session) FetchFailed() Session {
	s.Users = []users.User{}
	s.LoadErr = LoadFailedMessage
	s.Loading = false
	return s
}

func (s Session) EditRequested(u users.User) Session {
	s.Editing = &u
	return s
}

func (s Session) EditCleared() Session {
	s.Editing = nil
	return s
}

// EditingID is the id of the edit target, or 0.
func (s Session) EditingID() int64 {
	if s.Editing == nil {
		return 0
	}
	return s.Editing.UserID
}

func (s Session) DeleteRequested(id int64) Session {
	s.PendingDelete = id
	return s
}

// DeleteResolved closes the confirmation dialog and returns the id it held.
func (s Session) DeleteResolved() (Session, int64) {
	id := s.PendingDelete
	s.PendingDelete = 0
	return s, id
}

func (s Session) Confirming() bool { return s.PendingDelete != 0 }
