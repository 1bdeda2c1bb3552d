package domain

import "time"

// Role determines which operations an account may invoke.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleSupport  Role = "support"
)

// ValidRole reports whether r is one of the three recognized roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleSupport:
		return true
	}
	return false
}

// Account is the domain model for anyone who signs in: employees filing
// tickets, support agents working them, and administrators.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountRef is the reduced projection of an account attached to tickets and
// comments on read. Credential material never leaves the store layer.
type AccountRef struct {
	ID    string
	Name  string
	Email string
}
