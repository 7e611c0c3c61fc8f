package domain

import (
	"strings"
	"time"
)

// UserID is a unique identifier for a user.
type UserID string

// String returns the string representation of the UserID.
func (id UserID) String() string {
	return string(id)
}

// User is a registered account.
type User struct {
	ID           UserID    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
