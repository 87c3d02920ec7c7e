package user

import (
	"context"
	"net/http"

	"Hearth/internal/actions"
	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/identity"
	"Hearth/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// Actions is the subset of actions the user handlers call
type Actions interface {
	SyncUser(ctx context.Context, session *identity.Session) (*users.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*users.Profile, error)
	GetUserByUsername(ctx context.Context, username string) (*users.Profile, error)
	GetRandomUsers(ctx context.Context, session *identity.Session) []users.Suggestion
	ToggleFollow(ctx context.Context, session *identity.Session, targetID string) (*actions.ToggleFollowResult, error)
	IsFollowing(ctx context.Context, session *identity.Session, targetID string) (bool, error)
}

// Handler serves the user endpoints
type Handler struct {
	actions Actions
}

// NewHandler creates a new user handler
func NewHandler(a Actions) *Handler {
	return &Handler{actions: a}
}

// HandleSync handles POST /api/users/sync
// Creates the local user for the session on first sight and returns it.
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	user, err := h.actions.SyncUser(r.Context(), middleware.GetSession(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if user == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, user)
}

// HandleGetByExternalID handles GET /api/users/{externalID}
func (h *Handler) HandleGetByExternalID(w http.ResponseWriter, r *http.Request) {
	profile, err := h.actions.GetUserByExternalID(r.Context(), chi.URLParam(r, "externalID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, profile)
}

// HandleGetByUsername handles GET /api/users/by-username/{username}
func (h *Handler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	profile, err := h.actions.GetUserByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, profile)
}

// HandleSuggestions handles GET /api/users/suggestions
func (h *Handler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, map[string]any{
		"users": h.actions.GetRandomUsers(r.Context(), middleware.GetSession(r)),
	})
}

// HandleToggleFollow handles POST /api/users/{userID}/follow
// Following returns {success:true}; unfollowing returns 204.
func (h *Handler) HandleToggleFollow(w http.ResponseWriter, r *http.Request) {
	result, err := h.actions.ToggleFollow(r.Context(), middleware.GetSession(r), chi.URLParam(r, "userID"))
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

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleIsFollowing handles GET /api/users/{userID}/follow
func (h *Handler) HandleIsFollowing(w http.ResponseWriter, r *http.Request) {
	following, err := h.actions.IsFollowing(r.Context(), middleware.GetSession(r), chi.URLParam(r, "userID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]bool{"following": following})
}
