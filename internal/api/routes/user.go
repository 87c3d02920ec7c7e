package routes

import (
	"Hearth/internal/api/handlers/user"
	"Hearth/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterUserRoutes registers profile, suggestion and follow endpoints
func RegisterUserRoutes(r chi.Router, a user.Actions, auth *middleware.SessionAuthMiddleware) {
	h := user.NewHandler(a)

	r.With(auth.RequireAuth).Post("/api/users/sync", h.HandleSync)
	r.With(auth.RequireAuth).Get("/api/users/suggestions", h.HandleSuggestions)
	r.Get("/api/users/by-username/{username}", h.HandleGetByUsername)
	r.Get("/api/users/{externalID}", h.HandleGetByExternalID)

	r.With(auth.OptionalAuth).Get("/api/users/{userID}/follow", h.HandleIsFollowing)
	r.With(auth.RequireAuth).Post("/api/users/{userID}/follow", h.HandleToggleFollow)
}
