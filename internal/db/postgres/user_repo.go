package postgres

import (
	"context"
	"errors"
	"fmt"

	"Hearth/internal/core/follows"
	"Hearth/internal/core/posts"
	"Hearth/internal/core/users"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type gormUserRepo struct {
	db *gorm.DB
}

// NewUserRepository creates a new gorm-backed user repository
func NewUserRepository(db *gorm.DB) users.Repository {
	return &gormUserRepo{db: db}
}

// Create inserts a new user. A unique violation on external_id, email or
// username maps to ErrUserAlreadyExists.
func (r *gormUserRepo) Create(ctx context.Context, user *users.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return users.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *gormUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepo) GetByExternalID(ctx context.Context, externalID string) (*users.User, error) {
	return r.first(ctx, "external_id = ?", externalID)
}

func (r *gormUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *gormUserRepo) first(ctx context.Context, query string, arg any) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where(query, arg).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *gormUserRepo) GetCounts(ctx context.Context, userID string) (*users.Counts, error) {
	var counts users.Counts
	db := r.db.WithContext(ctx)

	if err := db.Model(&follows.Follow{}).Where("following_id = ?", userID).Count(&counts.Followers).Error; err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}
	if err := db.Model(&follows.Follow{}).Where("follower_id = ?", userID).Count(&counts.Following).Error; err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}
	if err := db.Model(&posts.Post{}).Where("author_id = ?", userID).Count(&counts.Posts).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	return &counts, nil
}

type suggestionRow struct {
	ID            string
	Name          string
	Username      string
	Image         string
	FollowerCount int64
}

func (r *gormUserRepo) ListSuggestions(ctx context.Context, viewerID string, limit int) ([]users.Suggestion, error) {
	var rows []suggestionRow
	err := r.db.WithContext(ctx).
		Table("users AS u").
		Select(`u.id, u.name, u.username, u.image,
			(SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id) AS follower_count`).
		Where("u.id <> ?", viewerID).
		Where("NOT EXISTS (SELECT 1 FROM follows mine WHERE mine.follower_id = ? AND mine.following_id = u.id)", viewerID).
		Order("RANDOM()").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}

	return lo.Map(rows, func(row suggestionRow, _ int) users.Suggestion {
		return users.Suggestion{
			Summary: users.Summary{
				ID:       row.ID,
				Name:     row.Name,
				Username: row.Username,
				Image:    row.Image,
			},
			FollowerCount: row.FollowerCount,
		}
	}), nil
}
