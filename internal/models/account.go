package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Store-level uniqueness violations reported by the account repository.
var (
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateUsername = errors.New("duplicate username")
)

// AccountDB represents a row of the users table.
type AccountDB struct {
	UserID       uuid.UUID  `db:"user_id"`       // Primary key
	Username     string     `db:"username"`      // Unique username
	Email        string     `db:"email"`         // Unique, normalized email
	PasswordHash string     `db:"password_hash"` // bcrypt hash, never serialized
	Fullname     string     `db:"fullname"`      // Display name
	Phone        *string    `db:"phone"`         // Optional phone number
	CreatedAt    time.Time  `db:"created_at"`    // Creation timestamp
	LastLogin    *time.Time `db:"last_login"`    // Last successful login, nil until first login
}

// Public returns the client-safe projection of the row.
func (a *AccountDB) Public() *Account {
	return &Account{
		UserID:    a.UserID,
		Username:  a.Username,
		Email:     a.Email,
		Fullname:  a.Fullname,
		Phone:     a.Phone,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLogin,
	}
}

// Account is the public projection of an account. It carries no credential.
// swagger:model Account
type Account struct {
	// User identifier
	// example: 3f0c7d1e-5b8a-4d0e-9a43-2f1d8c6b7a10
	UserID uuid.UUID `json:"user_id"`

	// Username
	// example: alice_01
	Username string `json:"username"`

	// Normalized email
	// example: alice@example.com
	Email string `json:"email"`

	// Full name
	// example: Alice A
	Fullname string `json:"fullname"`

	// Phone number
	// example: +1 (555) 010-0000
	Phone *string `json:"phone"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`

	// Last successful login
	LastLogin *time.Time `json:"last_login"`
}
