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

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

// Loginer defines the interface that the service must implement.
type Loginer interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Account, error)
}

// NewLoginHandler returns an HTTP handler for login.
// @Summary Log in
// @Description Checks the email and password. Unknown emails and wrong passwords get the same answer.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login request"
// @Success 200 {object} models.LoginResponse "Login successful"
// @Failure 400 {object} models.ValidationErrorResponse "Validation failed"
// @Failure 401 {object} models.ErrorResponse "Invalid email or password"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		req, err := validation.Login(req)
		if writeValidationError(w, err) {
			return
		}

		account, err := svc.Login(r.Context(), req)
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		case err != nil:
			logger.FromContext(r.Context()).Errorw("login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Server error during login")
			return
		}

		writeJSON(w, http.StatusOK, models.LoginResponse{
			Success: true,
			Message: "Login successful",
			Data: models.AuthenticatedAccount{
				UserID:   account.UserID,
				Username: account.Username,
				Email:    account.Email,
				Fullname: account.Fullname,
				Phone:    account.Phone,
			},
		})
	}
}
