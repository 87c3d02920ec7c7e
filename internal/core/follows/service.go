package follows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Hearth/internal/core/mutation"
	"Hearth/internal/core/revalidate"
	"Hearth/internal/core/users"
)

type followService struct {
	repo       Repository
	users      UserGetter
	applier    mutation.Applier
	revalidate revalidate.Signaler
	env        mutation.Env
	logger     *slog.Logger
}

// NewFollowService creates a new follow service
func NewFollowService(repo Repository, userGetter UserGetter, applier mutation.Applier, signaler revalidate.Signaler, logger *slog.Logger) Service {
	return NewFollowServiceWithEnv(repo, userGetter, applier, signaler, mutation.DefaultEnv(), logger)
}

// NewFollowServiceWithEnv creates a follow service with injected id and
// clock sources.
func NewFollowServiceWithEnv(repo Repository, userGetter UserGetter, applier mutation.Applier, signaler revalidate.Signaler, env mutation.Env, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if signaler == nil {
		signaler = revalidate.Nop{}
	}
	return &followService{
		repo:       repo,
		users:      userGetter,
		applier:    applier,
		revalidate: signaler,
		env:        env,
		logger:     logger,
	}
}

// ToggleFollow follows the target if no edge exists and unfollows otherwise.
// Only the follow path sends a revalidate signal.
func (s *followService) ToggleFollow(ctx context.Context, actorID, targetID string) (*ToggleResult, error) {
	if actorID == targetID {
		return nil, ErrCannotFollowSelf
	}

	existing, err := s.repo.Get(ctx, actorID, targetID)
	if err != nil {
		if !errors.Is(err, ErrFollowNotFound) {
			s.logger.Error("failed to look up follow",
				"error", err,
				"follower", actorID,
				"following", targetID)
			return nil, fmt.Errorf("failed to look up follow: %w", err)
		}
		existing = nil
	}

	if existing == nil {
		if _, err := s.users.GetByID(ctx, targetID); err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				return nil, ErrTargetNotFound
			}
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
	}

	plan, result, err := PlanToggle(s.env, actorID, targetID, existing)
	if err != nil {
		return nil, err
	}

	if err := s.applier.Apply(ctx, plan); err != nil {
		s.logger.Error("failed to toggle follow",
			"error", err,
			"follower", actorID,
			"following", targetID,
			"follow", result.Following)
		return nil, fmt.Errorf("failed to toggle follow: %w", err)
	}

	s.logger.Debug("follow toggled",
		"follower", actorID,
		"following", targetID,
		"follow", result.Following)

	if result.Following {
		revalidate.Notify(ctx, s.revalidate, s.logger, revalidate.PathHome)
	}
	return &result, nil
}

func (s *followService) IsFollowing(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == "" || targetID == "" || actorID == targetID {
		return false, nil
	}
	return s.repo.IsFollowing(ctx, actorID, targetID)
}
