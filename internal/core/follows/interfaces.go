package follows

import (
	"context"

	"Hearth/internal/core/users"
)

// Repository defines the interface for follow lookups. Writes go through
// mutation plans.
type Repository interface {
	// Get returns ErrFollowNotFound when the edge does not exist.
	Get(ctx context.Context, followerID, followingID string) (*Follow, error)

	// IsFollowing reports whether the edge exists.
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
}

// UserGetter loads the user being followed.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
}

// Service defines the interface for follow business logic
type Service interface {
	ToggleFollow(ctx context.Context, actorID, targetID string) (*ToggleResult, error)
	IsFollowing(ctx context.Context, actorID, targetID string) (bool, error)
}
