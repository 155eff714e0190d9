package models

import "github.com/google/uuid"

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: alice@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret1
	Password string `json:"password"`
}

// AuthenticatedAccount is the data returned after a successful login
// swagger:model AuthenticatedAccount
type AuthenticatedAccount struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Fullname string    `json:"fullname"`
	Phone    *string   `json:"phone"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// example: true
	Success bool `json:"success"`

	// example: Login successful
	Message string `json:"message"`

	Data AuthenticatedAccount `json:"data"`
}
