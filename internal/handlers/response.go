package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/validation"
)

const (
	msgInvalidBody  = "Invalid request body"
	msgUserNotFound = "User not found"
)

// maxBodyBytes caps request bodies read by the JSON decoders.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Success: false, Message: message})
}

// writeValidationError answers 400 with the field errors carried by err.
// It reports false when err is not a validation failure.
func writeValidationError(w http.ResponseWriter, err error) bool {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return false
	}

	fields := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, models.FieldError{Field: fe.Field, Message: fe.Message})
	}
	writeJSON(w, http.StatusBadRequest, models.ValidationErrorResponse{Success: false, Errors: fields})
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// accountID parses the {id} path parameter.
func accountID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}
