package post

import (
	"net/http"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	actions Actions
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(a Actions) *DeleteHandler {
	return &DeleteHandler{actions: a}
}

// HandleDelete handles DELETE /api/posts/{postID}
// Only the author may delete a post.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	result, err := h.actions.DeletePost(r.Context(), middleware.GetSession(r), chi.URLParam(r, "postID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
