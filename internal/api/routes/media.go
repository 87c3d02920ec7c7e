package routes

import (
	"Hearth/internal/api/handlers/media"
	"Hearth/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterMediaRoutes registers image upload with its own, stricter limiter
func RegisterMediaRoutes(r chi.Router, a media.Uploader, auth *middleware.SessionAuthMiddleware, limiter middleware.Limiter) {
	h := media.NewUploadHandler(a)

	chain := r.With(auth.RequireAuth)
	if limiter != nil {
		chain = chain.With(middleware.RateLimit(limiter, nil))
	}
	chain.Post("/api/media", h.HandleUpload)
}
