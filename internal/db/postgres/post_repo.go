package postgres

import (
	"context"
	"errors"
	"fmt"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/likes"
	"Hearth/internal/core/notifications"
	"Hearth/internal/core/posts"
	"Hearth/internal/core/users"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type gormPostRepo struct {
	db      *gorm.DB
	cursors *cursorCodec
}

// NewPostRepository creates a new gorm-backed post repository. The secret
// signs pagination cursors.
func NewPostRepository(db *gorm.DB, cursorSecret string) posts.Repository {
	return &gormPostRepo{
		db:      db,
		cursors: newCursorCodec(cursorSecret),
	}
}

func (r *gormPostRepo) Create(ctx context.Context, post *posts.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isForeignKeyViolation(err) {
			return posts.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (r *gormPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	var post posts.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, posts.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// Delete removes the post with its comments, likes and notifications in one
// transaction. Postgres cascades these through foreign keys as well; the
// sqlite schema built by AutoMigrate has none.
func (r *gormPostRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&comments.Comment{}).Select("id").Where("post_id = ?", id)
		if err := tx.Where("post_id = ? OR comment_id IN (?)", id, commentIDs).
			Delete(&notifications.Notification{}).Error; err != nil {
			return fmt.Errorf("failed to delete post notifications: %w", err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&likes.Like{}).Error; err != nil {
			return fmt.Errorf("failed to delete post likes: %w", err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&comments.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete post comments: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&posts.Post{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return posts.ErrNotFound
		}
		return nil
	})
	return err
}

// List pages through posts newest first using the keyset
// (created_at DESC, id DESC). Limit 0 returns the whole table.
func (r *gormPostRepo) List(ctx context.Context, params posts.ListParams) (*posts.Page, error) {
	query := r.db.WithContext(ctx).
		Model(&posts.Post{}).
		Order("created_at DESC").
		Order("id DESC")

	if params.Cursor != "" {
		cursor, err := r.cursors.decode(params.Cursor)
		if err != nil {
			return nil, posts.NewValidationError("cursor", err.Error())
		}
		query = query.Where("created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	if params.Limit > 0 {
		// One extra row tells us whether another page exists.
		query = query.Limit(params.Limit + 1)
	}

	var rows []posts.Post
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	page := &posts.Page{}
	if params.Limit > 0 && len(rows) > params.Limit {
		rows = rows[:params.Limit]
		page.NextCursor = r.cursors.encode(&rows[len(rows)-1])
	}

	views, err := r.hydrate(ctx, rows)
	if err != nil {
		return nil, err
	}
	page.Posts = views
	return page, nil
}

// hydrate attaches authors, comments and likes with one query per relation.
func (r *gormPostRepo) hydrate(ctx context.Context, rows []posts.Post) ([]posts.PostView, error) {
	if len(rows) == 0 {
		return []posts.PostView{}, nil
	}
	db := r.db.WithContext(ctx)
	postIDs := lo.Map(rows, func(p posts.Post, _ int) string { return p.ID })

	var postComments []comments.Comment
	if err := db.Where("post_id IN ?", postIDs).
		Order("created_at ASC").
		Order("id ASC").
		Find(&postComments).Error; err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	var postLikes []likes.Like
	if err := db.Select("user_id", "post_id").
		Where("post_id IN ?", postIDs).
		Order("created_at ASC").
		Find(&postLikes).Error; err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}

	authorIDs := lo.Uniq(append(
		lo.Map(rows, func(p posts.Post, _ int) string { return p.AuthorID }),
		lo.Map(postComments, func(c comments.Comment, _ int) string { return c.AuthorID })...,
	))
	authors, err := r.loadSummaries(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	commentsByPost := lo.GroupBy(postComments, func(c comments.Comment) string { return c.PostID })
	likesByPost := lo.GroupBy(postLikes, func(l likes.Like) string { return l.PostID })

	return lo.Map(rows, func(p posts.Post, _ int) posts.PostView {
		commentViews := lo.Map(commentsByPost[p.ID], func(c comments.Comment, _ int) posts.CommentView {
			return posts.CommentView{
				ID:        c.ID,
				Content:   c.Content,
				CreatedAt: c.CreatedAt,
				Author:    authors[c.AuthorID],
			}
		})
		likedBy := lo.Map(likesByPost[p.ID], func(l likes.Like, _ int) string { return l.UserID })

		return posts.PostView{
			ID:        p.ID,
			Content:   p.Content,
			Image:     p.Image,
			CreatedAt: p.CreatedAt,
			Author:    authors[p.AuthorID],
			Comments:  commentViews,
			LikedBy:   likedBy,
			Counts: posts.Counts{
				Comments: len(commentViews),
				Likes:    len(likedBy),
			},
		}
	}), nil
}

func (r *gormPostRepo) loadSummaries(ctx context.Context, ids []string) (map[string]users.Summary, error) {
	return loadUserSummaries(r.db.WithContext(ctx), ids)
}

// loadUserSummaries fetches the author projection for a set of user ids.
func loadUserSummaries(db *gorm.DB, ids []string) (map[string]users.Summary, error) {
	if len(ids) == 0 {
		return map[string]users.Summary{}, nil
	}

	var found []users.User
	if err := db.Select("id", "name", "username", "image").
		Where("id IN ?", ids).
		Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	return lo.Associate(found, func(u users.User) (string, users.Summary) {
		return u.ID, u.Summarize()
	}), nil
}
