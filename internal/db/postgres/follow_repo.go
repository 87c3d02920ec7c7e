package postgres

import (
	"context"
	"errors"
	"fmt"

	"Hearth/internal/core/follows"

	"gorm.io/gorm"
)

type gormFollowRepo struct {
	db *gorm.DB
}

// NewFollowRepository creates a new gorm-backed follow repository
func NewFollowRepository(db *gorm.DB) follows.Repository {
	return &gormFollowRepo{db: db}
}

func (r *gormFollowRepo) Get(ctx context.Context, followerID, followingID string) (*follows.Follow, error) {
	var follow follows.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Take(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, follows.ErrFollowNotFound
		}
		return nil, fmt.Errorf("failed to get follow: %w", err)
	}
	return &follow, nil
}

func (r *gormFollowRepo) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&follows.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return count > 0, nil
}
