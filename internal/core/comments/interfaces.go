package comments

import (
	"context"

	"Hearth/internal/core/posts"
)

// PostGetter loads the post being commented on.
type PostGetter interface {
	GetByID(ctx context.Context, id string) (*posts.Post, error)
}

// Service defines the interface for comment business logic
type Service interface {
	CreateComment(ctx context.Context, actorID, postID, content string) (*Comment, error)
}
