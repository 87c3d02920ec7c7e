package post

import (
	"encoding/json"
	"errors"
	"net/http"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	actions Actions
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(a Actions) *CreateHandler {
	return &CreateHandler{actions: a}
}

// CreatePostInput is the request body. Image is a URL returned by the media
// upload endpoint.
type CreatePostInput struct {
	Image   *string `json:"image,omitempty"`
	Content string  `json:"content"`
}

// HandleCreate handles POST /api/posts
// Anonymous callers get 204 with no body.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var input CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large")
			return
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if input.Image != nil && *input.Image == "" {
		input.Image = nil
	}

	result, err := h.actions.CreatePost(r.Context(), middleware.GetSession(r), input.Content, input.Image)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if !result.Success {
		status, _ := classify(result.Cause())
		handlers.WriteJSON(w, status, result)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, result)
}
