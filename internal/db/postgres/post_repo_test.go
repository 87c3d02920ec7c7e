package postgres

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/likes"
	"Hearth/internal/core/notifications"
	"Hearth/internal/core/posts"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postIDs(page *posts.Page) []string {
	return lo.Map(page.Posts, func(p posts.PostView, _ int) string { return p.ID })
}

func TestPostRepo_ListAnnotatesPosts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db, "test-secret")
	ctx := context.Background()

	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")
	createTestPost(t, db, "p-old", "u1", 0)
	createTestPost(t, db, "p-new", "u2", time.Minute)

	createTestComment(t, db, "c2", "p-old", "u1", 3*time.Minute)
	createTestComment(t, db, "c1", "p-old", "u2", 2*time.Minute)
	require.NoError(t, db.Create(&likes.Like{UserID: "u2", PostID: "p-old", CreatedAt: baseTime}).Error)
	require.NoError(t, db.Create(&likes.Like{UserID: "u1", PostID: "p-old", CreatedAt: baseTime.Add(time.Second)}).Error)

	page, err := repo.List(ctx, posts.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, page.NextCursor)
	require.Equal(t, []string{"p-new", "p-old"}, postIDs(page))

	fresh := page.Posts[0]
	assert.Equal(t, "u2", fresh.Author.ID)
	assert.Empty(t, fresh.Comments)
	assert.Empty(t, fresh.LikedBy)
	assert.Equal(t, posts.Counts{}, fresh.Counts)

	old := page.Posts[1]
	assert.Equal(t, "User u1", old.Author.Name)
	assert.Equal(t, "u1", old.Author.Username)
	assert.Equal(t, "https://img.example.com/u1.png", old.Author.Image)

	require.Len(t, old.Comments, 2)
	assert.Equal(t, "c1", old.Comments[0].ID, "comments are oldest first")
	assert.Equal(t, "u2", old.Comments[0].Author.ID)
	assert.Equal(t, "c2", old.Comments[1].ID)

	assert.ElementsMatch(t, []string{"u1", "u2"}, old.LikedBy)
	assert.Equal(t, posts.Counts{Comments: 2, Likes: 2}, old.Counts)
}

func TestPostRepo_ListEmpty(t *testing.T) {
	db := setupTestDB(t)
	page, err := NewPostRepository(db, "s").List(context.Background(), posts.ListParams{Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, page.Posts)
	assert.Empty(t, page.Posts)
	assert.Empty(t, page.NextCursor)
}

func TestPostRepo_ListPaginates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db, "test-secret")
	ctx := context.Background()

	createTestUser(t, db, "u1")
	for i, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		createTestPost(t, db, id, "u1", time.Duration(i)*time.Minute)
	}
	// Same timestamp as p5; id breaks the tie.
	createTestPost(t, db, "p6", "u1", 4*time.Minute)

	first, err := repo.List(ctx, posts.ListParams{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"p6", "p5"}, postIDs(first))
	require.NotEmpty(t, first.NextCursor)

	second, err := repo.List(ctx, posts.ListParams{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p3"}, postIDs(second))
	require.NotEmpty(t, second.NextCursor)

	third, err := repo.List(ctx, posts.ListParams{Limit: 2, Cursor: second.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, postIDs(third))
	assert.Empty(t, third.NextCursor, "exact final page has no cursor")
}

func TestPostRepo_ListRejectsBadCursor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db, "test-secret")
	createTestUser(t, db, "u1")
	createTestPost(t, db, "p1", "u1", 0)
	createTestPost(t, db, "p2", "u1", time.Minute)

	page, err := repo.List(context.Background(), posts.ListParams{Limit: 1})
	require.NoError(t, err)

	otherSecret := NewPostRepository(db, "other-secret")
	_, err = otherSecret.List(context.Background(), posts.ListParams{Limit: 1, Cursor: page.NextCursor})
	assert.True(t, posts.IsValidationError(err))

	forged := base64.RawURLEncoding.EncodeToString([]byte("2030-01-01T00:00:00Z::zzz::deadbeef"))
	_, err = repo.List(context.Background(), posts.ListParams{Limit: 1, Cursor: forged})
	assert.True(t, posts.IsValidationError(err))

	_, err = repo.List(context.Background(), posts.ListParams{Limit: 1, Cursor: "%%%"})
	assert.True(t, posts.IsValidationError(err))
}

func TestPostRepo_GetAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db, "s")
	ctx := context.Background()

	createTestUser(t, db, "u1")
	image := "https://cdn.example.com/x.png"
	require.NoError(t, repo.Create(ctx, &posts.Post{
		ID: "p1", AuthorID: "u1", Content: "hi", Image: &image,
		CreatedAt: baseTime, UpdatedAt: baseTime,
	}))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got.Image)
	assert.Equal(t, image, *got.Image)

	require.NoError(t, repo.Delete(ctx, "p1"))
	_, err = repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, posts.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "p1"), posts.ErrNotFound)

	page, err := repo.List(ctx, posts.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}

func TestPostRepo_DeleteRemovesEngagement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db, "s")
	ctx := context.Background()

	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")
	createTestPost(t, db, "p1", "u1", 0)
	createTestPost(t, db, "p2", "u1", time.Minute)
	createTestComment(t, db, "c1", "p1", "u2", time.Second)
	createTestComment(t, db, "c2", "p2", "u2", time.Second)
	require.NoError(t, db.Create(&likes.Like{UserID: "u2", PostID: "p1", CreatedAt: baseTime}).Error)
	require.NoError(t, db.Create(&likes.Like{UserID: "u2", PostID: "p2", CreatedAt: baseTime}).Error)

	onComment := notifications.For("n1", notifications.TypeComment, "u1", "u2", baseTime).WithComment("c1")
	onPost := notifications.For("n2", notifications.TypeLike, "u1", "u2", baseTime).WithPost("p1")
	onOther := notifications.For("n3", notifications.TypeLike, "u1", "u2", baseTime).WithPost("p2")
	follow := notifications.For("n4", notifications.TypeFollow, "u1", "u2", baseTime)
	for _, n := range []*notifications.Notification{onComment, onPost, onOther, follow} {
		require.NoError(t, db.Create(n).Error)
	}

	require.NoError(t, repo.Delete(ctx, "p1"))

	var remainingComments []string
	require.NoError(t, db.Model(&comments.Comment{}).Pluck("id", &remainingComments).Error)
	assert.Equal(t, []string{"c2"}, remainingComments)

	var remainingLikes []string
	require.NoError(t, db.Model(&likes.Like{}).Pluck("post_id", &remainingLikes).Error)
	assert.Equal(t, []string{"p2"}, remainingLikes)

	var remainingNotifications []string
	require.NoError(t, db.Model(&notifications.Notification{}).Order("id").Pluck("id", &remainingNotifications).Error)
	assert.Equal(t, []string{"n3", "n4"}, remainingNotifications)
}

func TestPostRepo_DeleteMissingKeepsEngagement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db, "s")

	createTestUser(t, db, "u1")
	createTestPost(t, db, "p1", "u1", 0)
	createTestComment(t, db, "c1", "p1", "u1", time.Second)

	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), posts.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&comments.Comment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCursorCodec_RoundTrip(t *testing.T) {
	codec := newCursorCodec("secret")
	post := &posts.Post{ID: "abc", CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)}

	decoded, err := codec.decode(codec.encode(post))
	require.NoError(t, err)
	assert.Equal(t, "abc", decoded.ID)
	assert.True(t, post.CreatedAt.Equal(decoded.CreatedAt))
}
