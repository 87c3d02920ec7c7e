package post

import (
	"net/http"
	"strconv"

	"Hearth/internal/api/handlers"
	"Hearth/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// ListHandler serves the feed
type ListHandler struct {
	actions Actions
}

func NewListHandler(a Actions) *ListHandler {
	return &ListHandler{actions: a}
}

// HandleList handles GET /api/posts?limit=&cursor=
// Without limit the whole feed is returned.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := posts.ListParams{Cursor: r.URL.Query().Get("cursor")}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "limit must be an integer")
			return
		}
		params.Limit = limit
	}

	page, err := h.actions.GetPosts(r.Context(), params)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, page)
}

// HandleGet handles GET /api/posts/{postID}
func (h *ListHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.actions.GetPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, post)
}
