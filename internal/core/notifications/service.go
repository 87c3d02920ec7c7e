package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

const (
	// ListLimit caps how many notifications are returned at once.
	ListLimit = 100

	// MaxMarkReadBatch caps ids per mark-read call.
	MaxMarkReadBatch = 500
)

type notificationService struct {
	repo   Repository
	logger *slog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]View, error) {
	if userID == "" {
		return nil, NewValidationError("userId", "user id is required")
	}

	views, err := s.repo.ListForUser(ctx, userID, ListLimit)
	if err != nil {
		s.logger.Error("failed to list notifications", "error", err, "user", userID)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return views, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	if userID == "" {
		return 0, NewValidationError("userId", "user id is required")
	}

	ids = lo.Uniq(lo.Compact(ids))
	if len(ids) == 0 {
		return 0, nil
	}
	if len(ids) > MaxMarkReadBatch {
		return 0, fmt.Errorf("%w: %d > %d", ErrTooManyIDs, len(ids), MaxMarkReadBatch)
	}

	n, err := s.repo.MarkRead(ctx, userID, ids)
	if err != nil {
		s.logger.Error("failed to mark notifications read", "error", err, "user", userID, "count", len(ids))
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return n, nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, NewValidationError("userId", "user id is required")
	}
	return s.repo.CountUnread(ctx, userID)
}
