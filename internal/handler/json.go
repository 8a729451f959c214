package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/fitcoach/internal/domain"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMessage sends a 200 response carrying a short confirmation.
func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// readJSON decodes the request body into the given destination.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathID parses the named path wildcard as a positive integer id.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidInput, http.StatusUnprocessableEntity},
	{domain.ErrInvalidGoal, http.StatusUnprocessableEntity},
	{domain.ErrDuplicateUsername, http.StatusConflict},
	{domain.ErrDuplicateID, http.StatusConflict},
	{domain.ErrAlreadyRegistered, http.StatusConflict},
	{domain.ErrCoachInUse, http.StatusConflict},
	{domain.ErrStaleWrite, http.StatusConflict},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrClassNotFound, http.StatusNotFound},
	{domain.ErrCoachNotFound, http.StatusNotFound},
	{domain.ErrNoSuitableClass, http.StatusNotFound},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusForbidden},
	{domain.ErrAccountDisabled, http.StatusForbidden},
}

// statusFor maps a service error onto an HTTP status, or 500 when the
// error is not one of the domain errors.
func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError reports err to the client. Unexpected errors are
// logged with the action that failed and hidden behind a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), action, "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, status, "An unexpected error occurred. Please try again.")
		return
	}
	writeError(w, status, err.Error())
}
