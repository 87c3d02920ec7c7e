package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Hearth/internal/core/mutation"
	"Hearth/internal/core/posts"
	"Hearth/internal/core/revalidate"
)

type commentService struct {
	posts      PostGetter
	applier    mutation.Applier
	revalidate revalidate.Signaler
	env        mutation.Env
	logger     *slog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(postGetter PostGetter, applier mutation.Applier, signaler revalidate.Signaler, logger *slog.Logger) Service {
	return NewCommentServiceWithEnv(postGetter, applier, signaler, mutation.DefaultEnv(), logger)
}

// NewCommentServiceWithEnv creates a comment service with injected id and
// clock sources.
func NewCommentServiceWithEnv(postGetter PostGetter, applier mutation.Applier, signaler revalidate.Signaler, env mutation.Env, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if signaler == nil {
		signaler = revalidate.Nop{}
	}
	return &commentService{
		posts:      postGetter,
		applier:    applier,
		revalidate: signaler,
		env:        env,
		logger:     logger,
	}
}

func (s *commentService) CreateComment(ctx context.Context, actorID, postID, content string) (*Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentEmpty
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to look up post: %w", err)
	}

	plan, comment, err := PlanCreate(s.env, actorID, post, content)
	if err != nil {
		return nil, err
	}

	if err := s.applier.Apply(ctx, plan); err != nil {
		s.logger.Error("failed to create comment",
			"error", err,
			"author", actorID,
			"post", postID)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("comment created",
		"comment", comment.ID,
		"post", postID,
		"author", actorID,
		"notified", plan.Len() > 1)

	revalidate.Notify(ctx, s.revalidate, s.logger, revalidate.PathHome)
	return comment, nil
}
