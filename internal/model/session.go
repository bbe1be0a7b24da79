package model

import "time"

// Role distinguishes read-only users from administrators.
type Role string

const (
	// RoleUser can read and search the directory
	RoleUser Role = "user"

	// RoleAdmin can additionally add, edit and delete entries
	RoleAdmin Role = "admin"
)

// Session holds the caller's role for the lifetime of a UI or command run.
type Session struct {
	Role  Role      `json:"role"`
	Since time.Time `json:"since"`
}

// UserSession returns a read-only session.
func UserSession() Session {
	return Session{Role: RoleUser, Since: time.Now()}
}

// IsAdmin reports whether the session grants admin controls.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Label returns the badge text shown in the UI.
func (s Session) Label() string {
	if s.IsAdmin() {
		return "Admin"
	}

	return "User"
}
