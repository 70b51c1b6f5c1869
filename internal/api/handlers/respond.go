package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"devsync-backend/internal/auth"
	"devsync-backend/internal/services"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto the HTTP status taxonomy and
// writes a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Server error"

	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
		message = "Not found"
	case errors.Is(err, auth.ErrForbidden):
		status = http.StatusForbidden
		message = "Not authorized"
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid credentials"
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrAlreadyConnected),
		errors.Is(err, services.ErrAlreadyLiked),
		errors.Is(err, services.ErrNotLiked):
		status = http.StatusConflict
		message = unwrapMessage(err)
	case errors.Is(err, services.ErrSelfConnection),
		errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
		message = unwrapMessage(err)
	}

	writeJSON(w, status, map[string]string{"error": message})
}

// unwrapMessage surfaces the sentinel's own text, without the
// service-side context wrapped around it.
func unwrapMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
