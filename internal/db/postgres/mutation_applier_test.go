package postgres

import (
	"context"
	"testing"
	"time"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/follows"
	"Hearth/internal/core/likes"
	"Hearth/internal/core/mutation"
	"Hearth/internal/core/notifications"
	"Hearth/internal/core/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testEnv() mutation.Env {
	return mutation.Env{
		NewID: uuid.NewString,
		Now:   func() time.Time { return baseTime.Add(time.Hour) },
	}
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestApplier_EmptyPlan(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, NewMutationApplier(db).Apply(context.Background(), mutation.Plan{}))
}

func TestApplier_RollsBackOnConflict(t *testing.T) {
	db := setupTestDB(t)
	applier := NewMutationApplier(db)
	ctx := context.Background()

	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")
	createTestPost(t, db, "p1", "u2", 0)
	require.NoError(t, db.Create(&likes.Like{UserID: "u1", PostID: "p1", CreatedAt: baseTime}).Error)

	var plan mutation.Plan
	plan.Create(notifications.For("n1", notifications.TypeLike, "u2", "u1", baseTime).WithPost("p1"))
	plan.Create(&likes.Like{UserID: "u1", PostID: "p1", CreatedAt: baseTime})

	err := applier.Apply(ctx, plan)
	assert.ErrorIs(t, err, mutation.ErrConflict)
	assert.Zero(t, countRows(t, db, &notifications.Notification{}, "id = ?", "n1"), "notification rolled back with the like")
}

// A likes P (author B), then toggles again.
func TestLikeToggle_Scenario(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")
	createTestPost(t, db, "p1", "u2", 0)

	svc := likes.NewLikeServiceWithEnv(
		NewLikeRepository(db),
		NewPostRepository(db, "s"),
		NewMutationApplier(db),
		nil,
		testEnv(),
		nil,
	)

	result, err := svc.ToggleLike(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, result.Liked)

	assert.Equal(t, int64(1), countRows(t, db, &likes.Like{}, "user_id = ? AND post_id = ?", "u1", "p1"))
	var n notifications.Notification
	require.NoError(t, db.Where("type = ? AND user_id = ? AND creator_id = ?", notifications.TypeLike, "u2", "u1").Take(&n).Error)
	require.NotNil(t, n.PostID)
	assert.Equal(t, "p1", *n.PostID)
	assert.False(t, n.Read)

	result, err = svc.ToggleLike(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, result.Liked)

	assert.Zero(t, countRows(t, db, &likes.Like{}, "user_id = ? AND post_id = ?", "u1", "p1"))
	assert.Equal(t, int64(1), countRows(t, db, &notifications.Notification{}, "1 = 1"), "unlike adds no notification")
}

func TestLikeToggle_OwnPost(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "u1")
	createTestPost(t, db, "p1", "u1", 0)

	svc := likes.NewLikeServiceWithEnv(NewLikeRepository(db), NewPostRepository(db, "s"), NewMutationApplier(db), nil, testEnv(), nil)
	_, err := svc.ToggleLike(context.Background(), "u1", "p1")
	require.NoError(t, err)

	assert.Equal(t, int64(1), countRows(t, db, &likes.Like{}, "post_id = ?", "p1"))
	assert.Zero(t, countRows(t, db, &notifications.Notification{}, "1 = 1"))
}

func TestLikeToggle_MissingPost(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "u1")

	svc := likes.NewLikeServiceWithEnv(NewLikeRepository(db), NewPostRepository(db, "s"), NewMutationApplier(db), nil, testEnv(), nil)
	_, err := svc.ToggleLike(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, likes.ErrPostNotFound)
	assert.Zero(t, countRows(t, db, &likes.Like{}, "1 = 1"))
}

func TestFollowToggle_Scenario(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")

	svc := follows.NewFollowServiceWithEnv(
		NewFollowRepository(db),
		NewUserRepository(db),
		NewMutationApplier(db),
		nil,
		testEnv(),
		nil,
	)

	_, err := svc.ToggleFollow(ctx, "u1", "u1")
	assert.ErrorIs(t, err, follows.ErrCannotFollowSelf)

	result, err := svc.ToggleFollow(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, result.Following)
	assert.Equal(t, int64(1), countRows(t, db, &follows.Follow{}, "follower_id = ? AND following_id = ?", "u1", "u2"))
	assert.Equal(t, int64(1), countRows(t, db, &notifications.Notification{}, "type = ? AND user_id = ?", notifications.TypeFollow, "u2"))

	following, err := svc.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, following)

	result, err = svc.ToggleFollow(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, result.Following)
	assert.Zero(t, countRows(t, db, &follows.Follow{}, "1 = 1"))
	assert.Equal(t, int64(1), countRows(t, db, &notifications.Notification{}, "1 = 1"), "unfollow adds no notification")

	counts, err := NewUserRepository(db).GetCounts(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, users.Counts{}, *counts)
}

func TestCreateComment_Scenario(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")
	createTestPost(t, db, "p1", "u2", 0)

	svc := comments.NewCommentServiceWithEnv(NewPostRepository(db, "s"), NewMutationApplier(db), nil, testEnv(), nil)

	_, err := svc.CreateComment(ctx, "u1", "p1", "")
	assert.ErrorIs(t, err, comments.ErrContentEmpty)
	assert.Zero(t, countRows(t, db, &comments.Comment{}, "1 = 1"))

	comment, err := svc.CreateComment(ctx, "u1", "p1", "first!")
	require.NoError(t, err)

	var n notifications.Notification
	require.NoError(t, db.Where("type = ?", notifications.TypeComment).Take(&n).Error)
	require.NotNil(t, n.CommentID)
	assert.Equal(t, comment.ID, *n.CommentID)
	assert.Equal(t, "u2", n.UserID)

	_, err = svc.CreateComment(ctx, "u2", "p1", "thanks")
	require.NoError(t, err)
	assert.Equal(t, int64(2), countRows(t, db, &comments.Comment{}, "post_id = ?", "p1"))
	assert.Equal(t, int64(1), countRows(t, db, &notifications.Notification{}, "1 = 1"), "author replying to own post is not notified")
}
