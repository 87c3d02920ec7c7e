package postgres

import (
	"context"
	"testing"
	"time"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/posts"
	"Hearth/internal/core/users"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// setupTestDB opens a fresh in-memory SQLite database with the schema
// migrated from the gorm models.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(context.Background(), "sqlite::memory:", Options{Migrate: true})
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { _ = Close(db) })

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id string) *users.User {
	t.Helper()

	user := &users.User{
		ID:         id,
		ExternalID: "ext_" + id,
		Email:      id + "@example.com",
		Username:   id,
		Name:       "User " + id,
		Image:      "https://img.example.com/" + id + ".png",
		CreatedAt:  baseTime,
		UpdatedAt:  baseTime,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, id, authorID string, offset time.Duration) *posts.Post {
	t.Helper()

	post := &posts.Post{
		ID:        id,
		AuthorID:  authorID,
		Content:   "content of " + id,
		CreatedAt: baseTime.Add(offset),
		UpdatedAt: baseTime.Add(offset),
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, id, postID, authorID string, offset time.Duration) *comments.Comment {
	t.Helper()

	comment := &comments.Comment{
		ID:        id,
		PostID:    postID,
		AuthorID:  authorID,
		Content:   "comment " + id,
		CreatedAt: baseTime.Add(offset),
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
