package routes

import (
	"Hearth/internal/api/handlers/comments"
	"Hearth/internal/api/handlers/post"
	"Hearth/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

// PostActions is what the post and comment routes need
type PostActions interface {
	post.Actions
	comments.Commenter
}

// RegisterPostRoutes registers feed, post, like and comment endpoints
func RegisterPostRoutes(r chi.Router, a PostActions, auth *middleware.SessionAuthMiddleware) {
	listHandler := post.NewListHandler(a)
	createHandler := post.NewCreateHandler(a)
	deleteHandler := post.NewDeleteHandler(a)
	likeHandler := post.NewLikeHandler(a)
	commentHandler := comments.NewCreateCommentHandler(a)

	r.Get("/api/posts", listHandler.HandleList)
	r.Get("/api/posts/{postID}", listHandler.HandleGet)

	// Anonymous creates are a silent no-op, so this route only attaches the
	// session when there is one.
	r.With(auth.OptionalAuth).Post("/api/posts", createHandler.HandleCreate)

	r.With(auth.RequireAuth).Delete("/api/posts/{postID}", deleteHandler.HandleDelete)
	r.With(auth.RequireAuth).Post("/api/posts/{postID}/like", likeHandler.HandleToggle)
	r.With(auth.RequireAuth).Post("/api/posts/{postID}/comments", commentHandler.HandleCreate)
}
