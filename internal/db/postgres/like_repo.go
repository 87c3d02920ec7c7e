package postgres

import (
	"context"
	"errors"
	"fmt"

	"Hearth/internal/core/likes"

	"gorm.io/gorm"
)

type gormLikeRepo struct {
	db *gorm.DB
}

// NewLikeRepository creates a new gorm-backed like repository
func NewLikeRepository(db *gorm.DB) likes.Repository {
	return &gormLikeRepo{db: db}
}

func (r *gormLikeRepo) Get(ctx context.Context, userID, postID string) (*likes.Like, error) {
	var like likes.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Take(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, likes.ErrLikeNotFound
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	return &like, nil
}
