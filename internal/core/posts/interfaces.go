package posts

import "context"

// Repository defines the interface for post persistence
type Repository interface {
	Create(ctx context.Context, post *Post) error

	// GetByID returns ErrNotFound when no post has the id.
	GetByID(ctx context.Context, id string) (*Post, error)

	// Delete removes the post. Comments, likes and notifications referencing
	// it are removed by the schema's cascading foreign keys.
	Delete(ctx context.Context, id string) error

	// List returns posts newest first with authors, comments and likes
	// attached. An invalid cursor is a ValidationError.
	List(ctx context.Context, params ListParams) (*Page, error)
}

// Service defines the interface for post business logic
type Service interface {
	CreatePost(ctx context.Context, authorID string, req CreateRequest) (*Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	ListPosts(ctx context.Context, params ListParams) (*Page, error)
	DeletePost(ctx context.Context, actorID, postID string) error
}
