package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Hearth/internal/core/mutation"
	"Hearth/internal/core/revalidate"

	"github.com/rivo/uniseg"
)

const (
	// MaxPageSize caps a paginated feed request.
	MaxPageSize = 100

	// MaxContentLength is the longest post body accepted, in graphemes.
	MaxContentLength = 5000
)

type postService struct {
	repo       Repository
	revalidate revalidate.Signaler
	env        mutation.Env
	logger     *slog.Logger
}

// NewPostService creates a new post service
func NewPostService(repo Repository, signaler revalidate.Signaler, logger *slog.Logger) Service {
	return NewPostServiceWithEnv(repo, signaler, mutation.DefaultEnv(), logger)
}

// NewPostServiceWithEnv creates a post service with injected id and clock
// sources.
func NewPostServiceWithEnv(repo Repository, signaler revalidate.Signaler, env mutation.Env, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if signaler == nil {
		signaler = revalidate.Nop{}
	}
	return &postService{
		repo:       repo,
		revalidate: signaler,
		env:        env,
		logger:     logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, authorID string, req CreateRequest) (*Post, error) {
	if authorID == "" {
		return nil, ErrAuthorNotFound
	}

	if uniseg.GraphemeClusterCount(req.Content) > MaxContentLength {
		return nil, NewValidationError("content", fmt.Sprintf("post exceeds %d characters", MaxContentLength))
	}

	now := s.env.Now()
	post := &Post{
		ID:        s.env.NewID(),
		AuthorID:  authorID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if image := strings.TrimSpace(req.Image); image != "" {
		post.Image = &image
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			"error", err,
			"author", authorID)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	revalidate.Notify(ctx, s.revalidate, s.logger, revalidate.PathHome)
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id string) (*Post, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewValidationError("postId", "post id is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *postService) ListPosts(ctx context.Context, params ListParams) (*Page, error) {
	if params.Limit < 0 {
		return nil, NewValidationError("limit", "limit must not be negative")
	}
	if params.Limit > MaxPageSize {
		params.Limit = MaxPageSize
	}
	if params.Limit == 0 && params.Cursor != "" {
		return nil, NewValidationError("cursor", "cursor requires a limit")
	}

	page, err := s.repo.List(ctx, params)
	if err != nil {
		if !IsValidationError(err) {
			s.logger.Error("failed to list posts", "error", err)
		}
		return nil, err
	}
	return page, nil
}

func (s *postService) DeletePost(ctx context.Context, actorID, postID string) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != actorID {
		s.logger.Warn("rejected post delete by non-author",
			"post", postID,
			"author", post.AuthorID,
			"actor", actorID)
		return ErrNotAuthorized
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete post",
			"error", err,
			"post", postID)
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", "post", postID, "actor", actorID)
	revalidate.Notify(ctx, s.revalidate, s.logger, revalidate.PathHome)
	return nil
}
