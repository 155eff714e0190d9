package models

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: alice_01
	Username string `json:"username"`

	// Email
	// required: true
	// example: alice@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret1
	Password string `json:"password"`

	// Full name
	// required: true
	// example: Alice A
	Fullname string `json:"fullname"`

	// Phone number
	// example: +1 (555) 010-0000
	Phone *string `json:"phone,omitempty"`

	// PhoneNull is set when the body carried "phone": null.
	PhoneNull bool `json:"-"`
}

// UnmarshalJSON tells an explicit null phone apart from an absent one.
func (r *RegisterRequest) UnmarshalJSON(data []byte) error {
	type plain RegisterRequest
	var aux struct {
		plain
		Phone json.RawMessage `json:"phone"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = RegisterRequest(aux.plain)
	switch {
	case aux.Phone == nil:
	case bytes.Equal(aux.Phone, []byte("null")):
		r.PhoneNull = true
	default:
		var phone string
		if err := json.Unmarshal(aux.Phone, &phone); err != nil {
			return err
		}
		r.Phone = &phone
	}
	return nil
}

// RegisteredAccount is the data returned after a successful registration
// swagger:model RegisteredAccount
type RegisteredAccount struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Fullname string    `json:"fullname"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// example: true
	Success bool `json:"success"`

	// example: User registered successfully
	Message string `json:"message"`

	Data RegisteredAccount `json:"data"`
}
