package likes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Hearth/internal/core/mutation"
	"Hearth/internal/core/posts"
	"Hearth/internal/core/revalidate"
)

type likeService struct {
	repo       Repository
	posts      PostGetter
	applier    mutation.Applier
	revalidate revalidate.Signaler
	env        mutation.Env
	logger     *slog.Logger
}

// NewLikeService creates a new like service
func NewLikeService(repo Repository, postGetter PostGetter, applier mutation.Applier, signaler revalidate.Signaler, logger *slog.Logger) Service {
	return NewLikeServiceWithEnv(repo, postGetter, applier, signaler, mutation.DefaultEnv(), logger)
}

// NewLikeServiceWithEnv creates a like service with injected id and clock
// sources.
func NewLikeServiceWithEnv(repo Repository, postGetter PostGetter, applier mutation.Applier, signaler revalidate.Signaler, env mutation.Env, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if signaler == nil {
		signaler = revalidate.Nop{}
	}
	return &likeService{
		repo:       repo,
		posts:      postGetter,
		applier:    applier,
		revalidate: signaler,
		env:        env,
		logger:     logger,
	}
}

// ToggleLike likes the post if the actor has not liked it, and unlikes it
// otherwise. Two concurrent toggles for the same pair race; the loser fails
// on the unique key and is not retried.
func (s *likeService) ToggleLike(ctx context.Context, actorID, postID string) (*ToggleResult, error) {
	existing, err := s.repo.Get(ctx, actorID, postID)
	if err != nil {
		if !errors.Is(err, ErrLikeNotFound) {
			s.logger.Error("failed to look up like",
				"error", err,
				"user", actorID,
				"post", postID)
			return nil, fmt.Errorf("failed to look up like: %w", err)
		}
		existing = nil
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to look up post: %w", err)
	}

	plan, result := PlanToggle(s.env, actorID, post, existing)
	if err := s.applier.Apply(ctx, plan); err != nil {
		s.logger.Error("failed to toggle like",
			"error", err,
			"user", actorID,
			"post", postID,
			"liked", result.Liked)
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	s.logger.Debug("like toggled",
		"user", actorID,
		"post", postID,
		"liked", result.Liked)

	revalidate.Notify(ctx, s.revalidate, s.logger, revalidate.PathHome)
	return &result, nil
}
