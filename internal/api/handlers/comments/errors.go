package comments

import (
	"log/slog"
	"net/http"

	"Hearth/internal/api/handlers"
	"Hearth/internal/core/comments"
)

// handleServiceError maps action errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case comments.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", handlers.Detail(err))

	case comments.IsNotFound(err):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", handlers.Describe(err, err.Error()))

	default:
		slog.Error("unexpected error in comments handler", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			handlers.Describe(err, "An internal error occurred"))
	}
}
