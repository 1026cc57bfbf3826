package form

import (
	"regexp"
	"strings"

	"github.com/jask/userdesk/internal/users"
)

// Mode is CREATE when no record is targeted and EDIT otherwise.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

const minPasswordLen = 6

const (
	MsgUsernameRequired = "Username is required"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Enter a valid email address"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 6 characters"
)

// Unicode spaces and the BOM count as whitespace too.
var emailPattern = regexp.MustCompile(`^[^@\s\p{Z}\x{FEFF}]+@[^@\s\p{Z}\x{FEFF}]+\.[^@\s\p{Z}\x{FEFF}]+$`)

// ValidationError is a client-side rejection of the draft. It never reaches
// the API client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Draft is the unsaved field values held by the form.
type Draft struct {
	UserID   int64
	Username string
	Email    string
	Password string
	FullName string
	DOB      string
	Phone    string
	Address  string
}

// DraftFrom seeds a draft from a record.
func DraftFrom(u users.User) Draft {
	return Draft{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
		FullName: u.FullName,
		DOB:      u.DOB,
		Phone:    u.Phone,
		Address:  u.Address,
	}
}

// Validate runs the ordered checks and stops at the first failure. The
// password is only checked in ModeCreate.
func (d Draft) Validate(mode Mode) error {
	email := strings.TrimSpace(d.Email)
	switch {
	case strings.TrimSpace(d.Username) == "":
		return &ValidationError{MsgUsernameRequired}
	case email == "":
		return &ValidationError{MsgEmailRequired}
	case !emailPattern.MatchString(email):
		return &ValidationError{MsgEmailInvalid}
	}
	if mode != ModeCreate {
		return nil
	}
	password := strings.TrimSpace(d.Password)
	switch {
	case password == "":
		return &ValidationError{MsgPasswordRequired}
	case len([]rune(password)) < minPasswordLen:
		return &ValidationError{MsgPasswordTooShort}
	}
	return nil
}

// Payload builds the request body. Every field is trimmed; the id is only
// included in ModeEdit.
func (d Draft) Payload(mode Mode) users.Payload {
	p := users.Payload{
		Username: strings.TrimSpace(d.Username),
		Email:    strings.TrimSpace(d.Email),
		Password: strings.TrimSpace(d.Password),
		FullName: strings.TrimSpace(d.FullName),
		DOB:      strings.TrimSpace(d.DOB),
		Phone:    strings.TrimSpace(d.Phone),
		Address:  strings.TrimSpace(d.Address),
	}
	if mode == ModeEdit {
		p.UserID = d.UserID
	}
	return p
}
