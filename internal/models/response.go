package models

// FieldError is a single validation failure as returned to the client
// swagger:model FieldError
type FieldError struct {
	// example: username
	Field string `json:"field"`

	// example: Username must be between 3 and 50 characters
	Message string `json:"message"`
}

// ErrorResponse represents a generic failure
// swagger:model ErrorResponse
type ErrorResponse struct {
	// example: false
	Success bool `json:"success"`

	// example: User not found
	Message string `json:"message"`
}

// ValidationErrorResponse represents a request rejected by input validation
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	// example: false
	Success bool `json:"success"`

	Errors []FieldError `json:"errors"`
}

// AccountListResponse represents the list of registered accounts
// swagger:model AccountListResponse
type AccountListResponse struct {
	// example: true
	Success bool `json:"success"`

	// example: 1
	Count int `json:"count"`

	Data []Account `json:"data"`
}

// AccountResponse represents a single account
// swagger:model AccountResponse
type AccountResponse struct {
	// example: true
	Success bool `json:"success"`

	Data Account `json:"data"`
}

// MessageResponse represents a success carrying only a message
// swagger:model MessageResponse
type MessageResponse struct {
	// example: true
	Success bool `json:"success"`

	// example: User deleted successfully
	Message string `json:"message"`
}
