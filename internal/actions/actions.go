// Package actions is the boundary between callers and the domain services.
// Every action takes the caller's session explicitly, resolves it to a local
// user, and shapes the result the way callers have always received it: an
// unauthenticated caller gets a soft no-op (nil result, nil error), and
// failures surface either as a {success:false} payload or as an *Error,
// depending on the action.
package actions

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/follows"
	"Hearth/internal/core/identity"
	"Hearth/internal/core/likes"
	"Hearth/internal/core/media"
	"Hearth/internal/core/notifications"
	"Hearth/internal/core/posts"
	"Hearth/internal/core/users"
	"Hearth/internal/metrics"

	"github.com/samber/lo"
)

// Services groups the domain services the actions call into.
type Services struct {
	Users         users.Service
	Posts         posts.Service
	Likes         likes.Service
	Comments      comments.Service
	Follows       follows.Service
	Notifications notifications.Service
	Media         media.Service
}

type Actions struct {
	svc    Services
	logger *slog.Logger
}

// New creates the action set
func New(svc Services, logger *slog.Logger) *Actions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Actions{svc: svc, logger: logger}
}

// actor resolves the session to a local user id. ok is false when the
// caller is not signed in or has not been synced yet.
func (a *Actions) actor(ctx context.Context, session *identity.Session) (id string, ok bool, err error) {
	id, err = a.svc.Users.LocalUserID(ctx, session)
	switch {
	case err == nil:
		return id, true, nil
	case errors.Is(err, identity.ErrNoSession), users.IsNotFound(err):
		return "", false, nil
	default:
		return "", false, err
	}
}

func observe(action string, start time.Time, skipped bool, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
	case skipped:
		outcome = metrics.OutcomeSkipped
	}
	metrics.ObserveAction(action, outcome, start)
}

// SyncUser maps the session to its local user, creating it on first sight.
// Failures are logged and reported as no user.
func (a *Actions) SyncUser(ctx context.Context, session *identity.Session) (user *users.User, err error) {
	defer func(start time.Time) { observe("sync_user", start, user == nil, err) }(time.Now())

	user, err = a.svc.Users.ResolveLocalUser(ctx, session)
	if err != nil {
		a.logger.Error("error in sync user", "error", err)
		return nil, nil
	}
	return user, nil
}

// CreatePost never returns an error. A failed write is reported in the
// payload.
func (a *Actions) CreatePost(ctx context.Context, session *identity.Session, content string, image *string) (res *CreatePostResult, err error) {
	defer func(start time.Time) { observe("create_post", start, res == nil, err) }(time.Now())

	failed := func(cause error) *CreatePostResult {
		a.logger.Error("failed to create post", "error", cause)
		return &CreatePostResult{Success: false, Message: msgCreatePostFailed, cause: cause}
	}

	actorID, ok, err := a.actor(ctx, session)
	if err != nil {
		return failed(err), nil
	}
	if !ok {
		return nil, nil
	}

	post, err := a.svc.Posts.CreatePost(ctx, actorID, posts.CreateRequest{Content: content, Image: lo.FromPtr(image)})
	if err != nil {
		return failed(err), nil
	}
	return &CreatePostResult{Success: true, Post: post}, nil
}

// GetPosts lists the feed. It needs no session.
func (a *Actions) GetPosts(ctx context.Context, params posts.ListParams) (page *posts.Page, err error) {
	defer func(start time.Time) { observe("get_posts", start, false, err) }(time.Now())

	page, err = a.svc.Posts.ListPosts(ctx, params)
	if err != nil {
		a.logger.Error("error fetching posts", "error", err)
		return nil, fail(msgFetchPostsFailed, err)
	}
	return page, nil
}

func (a *Actions) GetPost(ctx context.Context, postID string) (*posts.Post, error) {
	post, err := a.svc.Posts.GetPost(ctx, postID)
	if err != nil {
		if !posts.IsNotFound(err) {
			a.logger.Error("error fetching post", "error", err, "post_id", postID)
		}
		return nil, fail(msgFetchPostFailed, err)
	}
	return post, nil
}

func (a *Actions) ToggleLike(ctx context.Context, session *identity.Session, postID string) (res *Result, err error) {
	defer func(start time.Time) { observe("toggle_like", start, res == nil, err) }(time.Now())

	actorID, ok, err := a.actor(ctx, session)
	if err != nil {
		a.logger.Error("failed to toggle like", "error", err, "post_id", postID)
		return nil, fail(msgToggleLikeFailed, err)
	}
	if !ok {
		return nil, nil
	}

	if _, err := a.svc.Likes.ToggleLike(ctx, actorID, postID); err != nil {
		a.logger.Error("failed to toggle like", "error", err, "user_id", actorID, "post_id", postID)
		return nil, fail(msgToggleLikeFailed, err)
	}
	return &Result{Success: true}, nil
}

func (a *Actions) CreateComment(ctx context.Context, session *identity.Session, postID, content string) (res *CreateCommentResult, err error) {
	defer func(start time.Time) { observe("create_comment", start, res == nil, err) }(time.Now())

	actorID, ok, err := a.actor(ctx, session)
	if err != nil {
		a.logger.Error("failed to create comment", "error", err, "post_id", postID)
		return nil, fail(msgCreateCommentFailed, err)
	}
	if !ok {
		return nil, nil
	}

	comment, err := a.svc.Comments.CreateComment(ctx, actorID, postID, content)
	if err != nil {
		a.logger.Error("failed to create comment", "error", err, "user_id", actorID, "post_id", postID)
		return nil, fail(msgCreateCommentFailed, err)
	}
	return &CreateCommentResult{Success: true, Comment: comment}, nil
}

func (a *Actions) DeletePost(ctx context.Context, session *identity.Session, postID string) (res *Result, err error) {
	defer func(start time.Time) { observe("delete_post", start, res == nil, err) }(time.Now())

	actorID, ok, err := a.actor(ctx, session)
	if err != nil {
		a.logger.Error("failed to delete post", "error", err, "post_id", postID)
		return nil, fail(msgDeletePostFailed, err)
	}
	if !ok {
		return nil, nil
	}

	if err := a.svc.Posts.DeletePost(ctx, actorID, postID); err != nil {
		a.logger.Error("failed to delete post", "error", err, "user_id", actorID, "post_id", postID)
		return nil, fail(msgDeletePostFailed, err)
	}
	return &Result{Success: true}, nil
}

// ToggleFollow follows or unfollows targetID. Following yourself is an
// error. Unfollowing returns no payload.
func (a *Actions) ToggleFollow(ctx context.Context, session *identity.Session, targetID string) (res *ToggleFollowResult, err error) {
	defer func(start time.Time) { observe("toggle_follow", start, res == nil && err == nil, err) }(time.Now())

	failed := func(cause error) *ToggleFollowResult {
		a.logger.Error("error in toggle follow", "error", cause, "target_id", targetID)
		return &ToggleFollowResult{Success: false, Error: msgToggleFollowFailed, cause: cause}
	}

	actorID, ok, err := a.actor(ctx, session)
	if err != nil {
		return failed(err), nil
	}
	if !ok {
		return nil, nil
	}

	result, err := a.svc.Follows.ToggleFollow(ctx, actorID, targetID)
	switch {
	case errors.Is(err, follows.ErrCannotFollowSelf):
		return nil, fail(msgCannotFollowSelf, err)
	case err != nil:
		return failed(err), nil
	case !result.Following:
		return nil, nil
	}
	return &ToggleFollowResult{Success: true}, nil
}

// IsFollowing reports false for anonymous callers.
func (a *Actions) IsFollowing(ctx context.Context, session *identity.Session, targetID string) (bool, error) {
	actorID, ok, err := a.actor(ctx, session)
	if err != nil || !ok {
		return false, err
	}
	return a.svc.Follows.IsFollowing(ctx, actorID, targetID)
}

// GetRandomUsers suggests users to follow. Anonymous callers and failures
// get an empty list.
func (a *Actions) GetRandomUsers(ctx context.Context, session *identity.Session) []users.Suggestion {
	actorID, ok, err := a.actor(ctx, session)
	if err != nil {
		a.logger.Error("error in get random users", "error", err)
		return []users.Suggestion{}
	}
	if !ok {
		return []users.Suggestion{}
	}

	suggestions, err := a.svc.Users.SuggestUsers(ctx, actorID, users.DefaultSuggestionLimit)
	if err != nil {
		a.logger.Error("error in get random users", "error", err, "user_id", actorID)
		return []users.Suggestion{}
	}
	if suggestions == nil {
		return []users.Suggestion{}
	}
	return suggestions
}

func (a *Actions) GetUserByExternalID(ctx context.Context, externalID string) (*users.Profile, error) {
	profile, err := a.svc.Users.GetProfileByExternalID(ctx, externalID)
	if err != nil {
		if !users.IsNotFound(err) {
			a.logger.Error("error in get user by external id", "error", err)
		}
		return nil, fail(msgFetchUserFailed, err)
	}
	return profile, nil
}

func (a *Actions) GetUserByUsername(ctx context.Context, username string) (*users.Profile, error) {
	profile, err := a.svc.Users.GetProfileByUsername(ctx, username)
	if err != nil {
		if !users.IsNotFound(err) {
			a.logger.Error("error in get user by username", "error", err)
		}
		return nil, fail(msgFetchUserFailed, err)
	}
	return profile, nil
}

// GetNotifications returns the caller's notifications newest first.
func (a *Actions) GetNotifications(ctx context.Context, session *identity.Session) ([]notifications.View, error) {
	actorID, ok, err := a.actor(ctx, session)
	if err != nil {
		return nil, fail(msgNotificationsFailed, err)
	}
	if !ok {
		return nil, nil
	}

	views, err := a.svc.Notifications.List(ctx, actorID)
	if err != nil {
		a.logger.Error("error fetching notifications", "error", err, "user_id", actorID)
		return nil, fail(msgNotificationsFailed, err)
	}
	return views, nil
}

// CountUnread returns 0 for anonymous callers.
func (a *Actions) CountUnread(ctx context.Context, session *identity.Session) (int64, error) {
	actorID, ok, err := a.actor(ctx, session)
	if err != nil {
		return 0, fail(msgNotificationsFailed, err)
	}
	if !ok {
		return 0, nil
	}

	count, err := a.svc.Notifications.CountUnread(ctx, actorID)
	if err != nil {
		return 0, fail(msgNotificationsFailed, err)
	}
	return count, nil
}

func (a *Actions) MarkNotificationsRead(ctx context.Context, session *identity.Session, ids []string) (*MarkReadResult, error) {
	actorID, ok, err := a.actor(ctx, session)
	if err != nil {
		return nil, fail(msgMarkReadFailed, err)
	}
	if !ok {
		return nil, nil
	}

	updated, err := a.svc.Notifications.MarkRead(ctx, actorID, ids)
	if err != nil {
		a.logger.Error("error marking notifications read", "error", err, "user_id", actorID)
		return nil, fail(msgMarkReadFailed, err)
	}
	return &MarkReadResult{Success: true, Updated: updated}, nil
}

// UploadImage hosts an image on the media CDN and returns its URL, which
// callers then pass to CreatePost.
func (a *Actions) UploadImage(ctx context.Context, session *identity.Session, r io.Reader, filename, mimeType string) (upload *media.Upload, err error) {
	defer func(start time.Time) { observe("upload_image", start, upload == nil, err) }(time.Now())

	actorID, ok, err := a.actor(ctx, session)
	if err != nil {
		return nil, fail(msgUploadFailed, err)
	}
	if !ok {
		return nil, nil
	}

	upload, err = a.svc.Media.Upload(ctx, actorID, r, filename, mimeType)
	if err != nil {
		return nil, fail(msgUploadFailed, err)
	}
	return upload, nil
}
