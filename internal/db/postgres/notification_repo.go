package postgres

import (
	"context"
	"fmt"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/notifications"
	"Hearth/internal/core/posts"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type gormNotificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new gorm-backed notification repository
func NewNotificationRepository(db *gorm.DB) notifications.Repository {
	return &gormNotificationRepo{db: db}
}

func (r *gormNotificationRepo) ListForUser(ctx context.Context, userID string, limit int) ([]notifications.View, error) {
	db := r.db.WithContext(ctx)

	var rows []notifications.Notification
	query := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if len(rows) == 0 {
		return []notifications.View{}, nil
	}

	creators, err := loadUserSummaries(db, lo.Uniq(lo.Map(rows, func(n notifications.Notification, _ int) string {
		return n.CreatorID
	})))
	if err != nil {
		return nil, err
	}

	postIDs := lo.Uniq(lo.FilterMap(rows, func(n notifications.Notification, _ int) (string, bool) {
		return lo.FromPtr(n.PostID), n.PostID != nil
	}))
	commentIDs := lo.Uniq(lo.FilterMap(rows, func(n notifications.Notification, _ int) (string, bool) {
		return lo.FromPtr(n.CommentID), n.CommentID != nil
	}))

	postsByID := map[string]posts.Post{}
	if len(postIDs) > 0 {
		var found []posts.Post
		if err := db.Select("id", "content", "image").Where("id IN ?", postIDs).Find(&found).Error; err != nil {
			return nil, fmt.Errorf("failed to load notification posts: %w", err)
		}
		postsByID = lo.KeyBy(found, func(p posts.Post) string { return p.ID })
	}

	commentsByID := map[string]comments.Comment{}
	if len(commentIDs) > 0 {
		var found []comments.Comment
		if err := db.Select("id", "content", "created_at").Where("id IN ?", commentIDs).Find(&found).Error; err != nil {
			return nil, fmt.Errorf("failed to load notification comments: %w", err)
		}
		commentsByID = lo.KeyBy(found, func(c comments.Comment) string { return c.ID })
	}

	return lo.Map(rows, func(n notifications.Notification, _ int) notifications.View {
		view := notifications.View{
			Notification: n,
			Creator:      creators[n.CreatorID],
		}
		if n.PostID != nil {
			if p, ok := postsByID[*n.PostID]; ok {
				view.Post = &notifications.PostSummary{ID: p.ID, Content: p.Content, Image: p.Image}
			}
		}
		if n.CommentID != nil {
			if c, ok := commentsByID[*n.CommentID]; ok {
				view.Comment = &notifications.CommentSummary{ID: c.ID, Content: c.Content, CreatedAt: c.CreatedAt}
			}
		}
		return view
	}), nil
}

// MarkRead only touches unread rows owned by userID, so the count is the
// number of notifications that changed state.
func (r *gormNotificationRepo) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&notifications.Notification{}).
		Where("user_id = ? AND id IN ? AND read = ?", userID, ids, false).
		Update("read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notifications.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
