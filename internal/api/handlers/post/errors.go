package post

import (
	"errors"
	"log/slog"
	"net/http"

	"Hearth/internal/api/handlers"
	"Hearth/internal/core/likes"
	"Hearth/internal/core/posts"
)

// classify maps action failures to a status code and error type
func classify(err error) (int, string) {
	switch {
	case posts.IsValidationError(err):
		return http.StatusBadRequest, "InvalidRequest"
	case posts.IsNotFound(err), errors.Is(err, likes.ErrPostNotFound):
		return http.StatusNotFound, "PostNotFound"
	case errors.Is(err, posts.ErrNotAuthorized):
		return http.StatusForbidden, "NotAuthorized"
	case errors.Is(err, posts.ErrAuthorNotFound):
		return http.StatusNotFound, "AuthorNotFound"
	default:
		return http.StatusInternalServerError, "InternalServerError"
	}
}

// handleServiceError maps action errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	status, errorType := classify(err)
	switch status {
	case http.StatusBadRequest:
		handlers.WriteError(w, status, errorType, handlers.Detail(err))
	case http.StatusInternalServerError:
		slog.Error("unexpected error in post handler", "error", err)
		handlers.WriteError(w, status, errorType, handlers.Describe(err, "An internal error occurred"))
	default:
		handlers.WriteError(w, status, errorType, handlers.Describe(err, err.Error()))
	}
}
