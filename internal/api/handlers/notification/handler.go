package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"Hearth/internal/actions"
	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/identity"
	"Hearth/internal/core/notifications"
)

// Actions is the subset of actions the notification handlers call
type Actions interface {
	GetNotifications(ctx context.Context, session *identity.Session) ([]notifications.View, error)
	CountUnread(ctx context.Context, session *identity.Session) (int64, error)
	MarkNotificationsRead(ctx context.Context, session *identity.Session, ids []string) (*actions.MarkReadResult, error)
}

type Handler struct {
	actions Actions
}

func NewHandler(a Actions) *Handler {
	return &Handler{actions: a}
}

type MarkReadInput struct {
	IDs []string `json:"ids"`
}

// HandleList handles GET /api/notifications
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.actions.GetNotifications(r.Context(), middleware.GetSession(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if views == nil {
		views = []notifications.View{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{"notifications": views})
}

// HandleUnreadCount handles GET /api/notifications/unread-count
func (h *Handler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.actions.CountUnread(r.Context(), middleware.GetSession(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// HandleMarkRead handles POST /api/notifications/read
//
// Request body: { "ids": ["..."] }
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var input MarkReadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	result, err := h.actions.MarkNotificationsRead(r.Context(), middleware.GetSession(r), input.IDs)
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

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case notifications.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", handlers.Detail(err))
	default:
		slog.Error("unexpected error in notification handler", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			handlers.Describe(err, "An internal error occurred"))
	}
}
