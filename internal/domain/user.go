package domain

import (
	"regexp"
	"time"
)

// Role represents the role of a user.
type Role string

// List of possible user roles
const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

var allowedRoles = [...]Role{RoleAdmin, RoleDriver}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// reEmail is a regex to validate email addresses
var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail validates the email address format
func ValidateEmail(s string) bool {
	return reEmail.MatchString(s)
}

// ValidateUsername validates the username length bounds (3..20).
func ValidateUsername(s string) bool {
	return len(s) >= 3 && len(s) <= 20
}

// ValidatePassword validates the plaintext password length bounds (3..20).
func ValidatePassword(s string) bool {
	return len(s) >= 3 && len(s) <= 20
}

// User represents an account in the fleet system. HashedPassword is opaque
// and must never be serialized to API responses.
type User struct {
	ID             int64
	CreatedAt      time.Time
	Username       string
	Email          string
	Role           Role
	HashedPassword string
}
