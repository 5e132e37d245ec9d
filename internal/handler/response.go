package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/researchpartner/api/internal/apperror"
)

// envelope is the standard response shape: {success, message?, count?, data?}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

// writeError maps domain errors to HTTP statuses. Unknown errors become an
// opaque 500 so internals never leak to the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrConflict),
			errors.Is(err, apperror.ErrNoCodeIssued),
			errors.Is(err, apperror.ErrExpired),
			errors.Is(err, apperror.ErrInvalidCode),
			errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrInvalidCredential):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrUnverified),
			errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		}

		writeJSON(w, status, envelope{Success: false, Message: appErr.Message})
		return
	}

	slog.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Message: "An internal error occurred"})
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return nil
}
