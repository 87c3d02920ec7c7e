package routes

import (
	"Hearth/internal/api/handlers/notification"
	"Hearth/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterNotificationRoutes registers the caller's notification endpoints
func RegisterNotificationRoutes(r chi.Router, a notification.Actions, auth *middleware.SessionAuthMiddleware) {
	h := notification.NewHandler(a)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/api/notifications", h.HandleList)
		r.Get("/api/notifications/unread-count", h.HandleUnreadCount)
		r.Post("/api/notifications/read", h.HandleMarkRead)
	})
}
