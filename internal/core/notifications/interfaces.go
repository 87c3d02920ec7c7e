package notifications

import "context"

// Repository defines the interface for notification persistence. Rows are
// written by mutation plans; the repository only reads and flips Read.
type Repository interface {
	ListForUser(ctx context.Context, userID string, limit int) ([]View, error)

	// MarkRead sets read=true on the given ids owned by userID and returns
	// how many rows changed.
	MarkRead(ctx context.Context, userID string, ids []string) (int64, error)

	CountUnread(ctx context.Context, userID string) (int64, error)
}

// Service defines the interface for notification business logic
type Service interface {
	List(ctx context.Context, userID string) ([]View, error)
	MarkRead(ctx context.Context, userID string, ids []string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}
