package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"Hearth/internal/actions"
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: errorType, Message: message})
}

// WriteJSON writes v as the JSON response body
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

// Describe returns the caller-facing message for err. Action errors carry
// their own message; anything else gets fallback.
func Describe(err error, fallback string) string {
	if msg := actions.Message(err); msg != "" {
		return msg
	}
	return fallback
}

// Detail returns the text of the innermost cause of an action error, for
// input problems the caller can fix.
func Detail(err error) string {
	var actionErr *actions.Error
	if errors.As(err, &actionErr) && actionErr.Err != nil {
		return actionErr.Err.Error()
	}
	return err.Error()
}
