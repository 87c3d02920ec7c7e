package comments

import (
	"context"
	"encoding/json"
	"net/http"

	"Hearth/internal/actions"
	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/identity"

	"github.com/go-chi/chi/v5"
)

// Commenter is the action the handler calls
type Commenter interface {
	CreateComment(ctx context.Context, session *identity.Session, postID, content string) (*actions.CreateCommentResult, error)
}

// CreateCommentHandler handles comment creation requests
type CreateCommentHandler struct {
	actions Commenter
}

// NewCreateCommentHandler creates a new handler for creating comments
func NewCreateCommentHandler(a Commenter) *CreateCommentHandler {
	return &CreateCommentHandler{actions: a}
}

type CreateCommentInput struct {
	Content string `json:"content"`
}

// HandleCreate handles POST /api/posts/{postID}/comments
//
// Request body: { "content": "..." }
// Response: { "success": true, "comment": {...} }
func (h *CreateCommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 32*1024)

	var input CreateCommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	result, err := h.actions.CreateComment(r.Context(), middleware.GetSession(r), chi.URLParam(r, "postID"), input.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, result)
}
