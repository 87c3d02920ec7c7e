package likes

import (
	"context"

	"Hearth/internal/core/posts"
)

// Repository defines the interface for like lookups. Writes go through
// mutation plans.
type Repository interface {
	// Get returns ErrLikeNotFound when the user has not liked the post.
	Get(ctx context.Context, userID, postID string) (*Like, error)
}

// PostGetter loads the post being liked.
type PostGetter interface {
	GetByID(ctx context.Context, id string) (*posts.Post, error)
}

// Service defines the interface for like business logic
type Service interface {
	ToggleLike(ctx context.Context, actorID, postID string) (*ToggleResult, error)
}
