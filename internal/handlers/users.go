package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

// AccountLister lists accounts.
type AccountLister interface {
	List(ctx context.Context) ([]models.Account, error)
}

// AccountGetter fetches one account.
type AccountGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// AccountDeleter removes one account.
type AccountDeleter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewListUsersHandler returns an HTTP handler listing every account.
// @Summary List accounts
// @Description Returns every account, newest first.
// @Tags users
// @Produce json
// @Success 200 {object} models.AccountListResponse "Accounts"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users [get]
func NewListUsersHandler(svc AccountLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := svc.List(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Errorw("list accounts failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Server error while fetching users")
			return
		}

		writeJSON(w, http.StatusOK, models.AccountListResponse{
			Success: true,
			Count:   len(accounts),
			Data:    accounts,
		})
	}
}

// NewGetUserHandler returns an HTTP handler fetching one account.
// @Summary Get account
// @Tags users
// @Produce json
// @Param id path string true "Account ID" format(uuid)
// @Success 200 {object} models.AccountResponse "Account"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func NewGetUserHandler(svc AccountGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := accountID(r)
		if !ok {
			writeError(w, http.StatusNotFound, msgUserNotFound)
			return
		}

		account, err := svc.Get(r.Context(), id)
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, msgUserNotFound)
			return
		case err != nil:
			logger.FromContext(r.Context()).Errorw("get account failed", "user_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Server error while fetching user")
			return
		}

		writeJSON(w, http.StatusOK, models.AccountResponse{Success: true, Data: *account})
	}
}

// NewDeleteUserHandler returns an HTTP handler removing one account.
// @Summary Delete account
// @Tags users
// @Produce json
// @Param id path string true "Account ID" format(uuid)
// @Success 200 {object} models.MessageResponse "User deleted successfully"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func NewDeleteUserHandler(svc AccountDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := accountID(r)
		if !ok {
			writeError(w, http.StatusNotFound, msgUserNotFound)
			return
		}

		err := svc.Delete(r.Context(), id)
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, msgUserNotFound)
			return
		case err != nil:
			logger.FromContext(r.Context()).Errorw("delete account failed", "user_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Server error while deleting user")
			return
		}

		writeJSON(w, http.StatusOK, models.MessageResponse{Success: true, Message: "User deleted successfully"})
	}
}
