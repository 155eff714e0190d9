package validation

import (
	"regexp"
	"strings"

	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	digitPattern    = regexp.MustCompile(`\d`)
	phonePattern    = regexp.MustCompile(`^[0-9+\-\s()]+$`)
)

const (
	msgUsernameLength   = "Username must be between 3 and 50 characters"
	msgUsernameFormat   = "Username can only contain letters, numbers, and underscores"
	msgEmailFormat      = "Please provide a valid email address"
	msgPasswordLength   = "Password must be at least 6 characters long"
	msgPasswordDigit    = "Password must contain at least one number"
	msgFullnameLength   = "Full name must be between 2 and 100 characters"
	msgPhoneFormat      = "Please provide a valid phone number"
	msgPasswordRequired = "Password is required"
)

func emailField(value *string) Field {
	return Field{
		Name:      "email",
		Value:     value,
		Prepare:   strings.TrimSpace,
		Rules:     []Rule{Email(msgEmailFormat)},
		Normalize: NormalizeEmail,
	}
}

// Registration validates a registration payload and returns it normalized.
// On failure the returned error is of type Errors.
func Registration(req models.RegisterRequest) (models.RegisterRequest, error) {
	if req.Phone != nil {
		phone := *req.Phone
		req.Phone = &phone
	}
	// an explicit null is checked like an empty string
	phone := req.Phone
	if phone == nil && req.PhoneNull {
		phone = new(string)
	}

	errs := Run(
		Field{
			Name:    "username",
			Value:   &req.Username,
			Prepare: strings.TrimSpace,
			Rules: []Rule{
				Length(3, 50, msgUsernameLength),
				Matches(usernamePattern, msgUsernameFormat),
			},
		},
		emailField(&req.Email),
		Field{
			Name:  "password",
			Value: &req.Password,
			Rules: []Rule{
				Length(6, 0, msgPasswordLength),
				Matches(digitPattern, msgPasswordDigit),
			},
		},
		Field{
			Name:    "fullname",
			Value:   &req.Fullname,
			Prepare: strings.TrimSpace,
			Rules:   []Rule{Length(2, 100, msgFullnameLength)},
		},
		Field{
			Name:    "phone",
			Value:   phone,
			Prepare: strings.TrimSpace,
			Rules:   []Rule{Matches(phonePattern, msgPhoneFormat)},
		},
	)
	if len(errs) > 0 {
		return req, errs
	}
	return req, nil
}

// Login validates a login payload and returns it normalized.
// On failure the returned error is of type Errors.
func Login(req models.LoginRequest) (models.LoginRequest, error) {
	errs := Run(
		emailField(&req.Email),
		Field{
			Name:  "password",
			Value: &req.Password,
			Rules: []Rule{Required(msgPasswordRequired)},
		},
	)
	if len(errs) > 0 {
		return req, errs
	}
	return req, nil
}
