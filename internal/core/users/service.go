package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Hearth/internal/core/identity"
	"Hearth/internal/core/mutation"
)

// DefaultSuggestionLimit is how many users the sidebar suggests.
const DefaultSuggestionLimit = 3

type userService struct {
	repo     Repository
	profiles identity.ProfileProvider
	env      mutation.Env
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(repo Repository, profiles identity.ProfileProvider, logger *slog.Logger) Service {
	return NewUserServiceWithEnv(repo, profiles, mutation.DefaultEnv(), logger)
}

// NewUserServiceWithEnv creates a user service with injected id and clock
// sources. Used by tests.
func NewUserServiceWithEnv(repo Repository, profiles identity.ProfileProvider, env mutation.Env, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		repo:     repo,
		profiles: profiles,
		env:      env,
		logger:   logger,
	}
}

func (s *userService) ResolveLocalUser(ctx context.Context, session *identity.Session) (*User, error) {
	if session == nil || session.ExternalID == "" {
		return nil, nil
	}

	existing, err := s.repo.GetByExternalID(ctx, session.ExternalID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	profile, err := s.profiles.GetProfile(ctx, session.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch identity profile: %w", err)
	}

	user, err := s.newUserFromProfile(session.ExternalID, profile)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if !errors.Is(err, ErrUserAlreadyExists) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		// Lost a first-sight race: the winner's row is the answer. If the
		// conflict was on email or username instead, there is no winner.
		winner, lookupErr := s.repo.GetByExternalID(ctx, session.ExternalID)
		if lookupErr != nil {
			s.logger.Error("user create conflicted but no row for external id",
				"error", err,
				"external_id", session.ExternalID,
				"username", user.Username)
			return nil, err
		}
		return winner, nil
	}

	s.logger.Info("created local user",
		"user_id", user.ID,
		"external_id", user.ExternalID,
		"username", user.Username)

	return user, nil
}

func (s *userService) newUserFromProfile(externalID string, profile *identity.Profile) (*User, error) {
	if profile == nil {
		return nil, identity.ErrProfileNotFound
	}
	email := profile.PrimaryEmail()
	if email == "" {
		return nil, NewValidationError("email", "identity profile has no email address")
	}

	now := s.env.Now()
	return &User{
		ID:         s.env.NewID(),
		ExternalID: externalID,
		Email:      email,
		Name:       profile.DisplayName(),
		Username:   profile.PreferredUsername(),
		Image:      profile.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (s *userService) LocalUserID(ctx context.Context, session *identity.Session) (string, error) {
	if session == nil || session.ExternalID == "" {
		return "", identity.ErrNoSession
	}

	user, err := s.repo.GetByExternalID(ctx, session.ExternalID)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewValidationError("id", "user id is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetProfileByExternalID(ctx context.Context, externalID string) (*Profile, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, NewValidationError("externalId", "external id is required")
	}

	user, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, user)
}

func (s *userService) GetProfileByUsername(ctx context.Context, username string) (*Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, NewValidationError("username", "username is required")
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, user)
}

func (s *userService) withCounts(ctx context.Context, user *User) (*Profile, error) {
	counts, err := s.repo.GetCounts(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count profile relations: %w", err)
	}
	return &Profile{User: *user, Counts: *counts}, nil
}

func (s *userService) SuggestUsers(ctx context.Context, viewerID string, limit int) ([]Suggestion, error) {
	if viewerID == "" {
		return nil, NewValidationError("viewerId", "viewer id is required")
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	suggestions, err := s.repo.ListSuggestions(ctx, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggested users: %w", err)
	}
	return suggestions, nil
}
