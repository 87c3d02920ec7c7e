package post

import (
	"net/http"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

// LikeHandler toggles the caller's like on a post
type LikeHandler struct {
	actions Actions
}

func NewLikeHandler(a Actions) *LikeHandler {
	return &LikeHandler{actions: a}
}

// HandleToggle handles POST /api/posts/{postID}/like
func (h *LikeHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	result, err := h.actions.ToggleLike(r.Context(), middleware.GetSession(r), chi.URLParam(r, "postID"))
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
