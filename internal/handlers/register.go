package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
	"github.com/sbilibin2017/gw-user-accounts/internal/validation"
)

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.Account, error)
}

// NewRegisterHandler returns an HTTP handler for account registration.
// @Summary Register a new account
// @Description Validates and normalizes the payload, rejects a taken email or username and stores the account with a bcrypt password hash.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "Account registration request"
// @Success 201 {object} models.RegisterResponse "Account registered"
// @Failure 400 {object} models.ValidationErrorResponse "Validation failed"
// @Failure 400 {object} models.ErrorResponse "Email or username taken / invalid body"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		req, err := validation.Registration(req)
		if writeValidationError(w, err) {
			return
		}

		account, err := svc.Register(r.Context(), req)
		switch {
		case errors.Is(err, services.ErrEmailAlreadyRegistered):
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		case errors.Is(err, services.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "Username already taken")
			return
		case err != nil:
			logger.FromContext(r.Context()).Errorw("registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Server error during registration")
			return
		}

		writeJSON(w, http.StatusCreated, models.RegisterResponse{
			Success: true,
			Message: "User registered successfully",
			Data: models.RegisteredAccount{
				UserID:   account.UserID,
				Username: account.Username,
				Email:    account.Email,
				Fullname: account.Fullname,
			},
		})
	}
}
