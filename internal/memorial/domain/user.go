package domain

import "time"

// Role is the access level assigned to a user account. There are exactly two.
type Role string

const (
	RoleFamily Role = "family"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleFamily || r == RoleAdmin
}

// IsAdmin reports whether the role grants access to the admin surface.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // unique, stored lowercase
	PasswordHash string // argon2id encoded, empty on resolved sessions
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Redacted returns a copy of the user with secret fields cleared. Every user
// that leaves the service layer goes through this.
func (u User) Redacted() User {
	u.PasswordHash = ""
	return u
}
