package user

import (
	"errors"
	"log/slog"
	"net/http"

	"Hearth/internal/api/handlers"
	"Hearth/internal/core/follows"
	"Hearth/internal/core/users"
)

func classify(err error) (int, string) {
	switch {
	case users.IsNotFound(err), errors.Is(err, follows.ErrTargetNotFound):
		return http.StatusNotFound, "UserNotFound"
	case errors.Is(err, follows.ErrCannotFollowSelf):
		return http.StatusBadRequest, "InvalidRequest"
	case users.IsValidationError(err):
		return http.StatusBadRequest, "InvalidRequest"
	default:
		return http.StatusInternalServerError, "InternalServerError"
	}
}

// handleServiceError maps action errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	status, errorType := classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("unexpected error in user handler", "error", err)
		handlers.WriteError(w, status, errorType, handlers.Describe(err, "An internal error occurred"))
		return
	}
	handlers.WriteError(w, status, errorType, handlers.Describe(err, err.Error()))
}
