package users

import (
	"context"

	"Hearth/internal/core/identity"
)

// Repository defines the interface for user data persistence
type Repository interface {
	// Create inserts a user. Returns ErrUserAlreadyExists on a unique
	// constraint violation; callers must not check-then-create.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByExternalID(ctx context.Context, externalID string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetCounts returns follower, following and post totals for a user.
	GetCounts(ctx context.Context, userID string) (*Counts, error)

	// ListSuggestions returns up to limit users who are neither the viewer
	// nor already followed by the viewer, in random order.
	ListSuggestions(ctx context.Context, viewerID string, limit int) ([]Suggestion, error)
}

// Service defines the interface for user business logic
type Service interface {
	// ResolveLocalUser maps a session to its local user, creating the user on
	// first sight. A nil session yields (nil, nil).
	ResolveLocalUser(ctx context.Context, session *identity.Session) (*User, error)

	// LocalUserID returns only the id. Fails with identity.ErrNoSession or
	// ErrUserNotFound.
	LocalUserID(ctx context.Context, session *identity.Session) (string, error)

	GetUser(ctx context.Context, id string) (*User, error)
	GetProfileByExternalID(ctx context.Context, externalID string) (*Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*Profile, error)
	SuggestUsers(ctx context.Context, viewerID string, limit int) ([]Suggestion, error)
}
