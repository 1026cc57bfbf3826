// Package users holds the user record exchanged with the user-service.
package users

import (
	"strconv"
	"strings"
)

// User is a record as returned by the backend. UserID is zero for a record
// that has not been persisted yet.
type User struct {
	UserID   int64  `json:"userId,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	FullName string `json:"fullName"`
	DOB      string `json:"dob"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Payload is the request body for create and update calls. Optional fields
// are always sent, empty or not.
type Payload struct {
	UserID   int64  `json:"userId,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	DOB      string `json:"dob"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// HasID reports whether the record has been persisted.
func (u User) HasID() bool { return u.UserID != 0 }

// IDString renders the identifier, or "" when the record has none.
func (u User) IDString() string {
	if !u.HasID() {
		return ""
	}
	return strconv.FormatInt(u.UserID, 10)
}

// SearchText is the space-joined text a list search query is matched against.
func (u User) SearchText() string {
	return strings.Join([]string{u.IDString(), u.Username, u.Email, u.FullName, u.Phone}, " ")
}
