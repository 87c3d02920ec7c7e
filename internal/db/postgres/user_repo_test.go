package postgres

import (
	"context"
	"testing"
	"time"

	"Hearth/internal/core/follows"
	"Hearth/internal/core/users"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &users.User{
		ID:         "u1",
		ExternalID: "ext_u1",
		Email:      "ada@example.com",
		Username:   "ada",
		Name:       "Ada Lovelace",
		CreatedAt:  baseTime,
		UpdatedAt:  baseTime,
	}
	require.NoError(t, repo.Create(ctx, user))

	byExternal, err := repo.GetByExternalID(ctx, "ext_u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", byExternal.ID)
	assert.Equal(t, "Ada Lovelace", byExternal.Name)

	byUsername, err := repo.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, "u1", byUsername.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestUserRepo_CreateDuplicateExternalID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "u1")

	dup := &users.User{
		ID:         "u1-dup",
		ExternalID: "ext_u1",
		Email:      "other@example.com",
		Username:   "other",
		CreatedAt:  baseTime,
		UpdatedAt:  baseTime,
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), users.ErrUserAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&users.User{}).Where("external_id = ?", "ext_u1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepo_GetCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	for _, id := range []string{"u1", "u2", "u3"} {
		createTestUser(t, db, id)
	}
	require.NoError(t, db.Create(&follows.Follow{FollowerID: "u2", FollowingID: "u1", CreatedAt: baseTime}).Error)
	require.NoError(t, db.Create(&follows.Follow{FollowerID: "u3", FollowingID: "u1", CreatedAt: baseTime}).Error)
	require.NoError(t, db.Create(&follows.Follow{FollowerID: "u1", FollowingID: "u3", CreatedAt: baseTime}).Error)
	createTestPost(t, db, "p1", "u1", 0)

	counts, err := repo.GetCounts(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, users.Counts{Followers: 2, Following: 1, Posts: 1}, *counts)
}

func TestUserRepo_ListSuggestions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	for _, id := range []string{"me", "followed", "a", "b", "c", "d"} {
		createTestUser(t, db, id)
	}
	require.NoError(t, db.Create(&follows.Follow{FollowerID: "me", FollowingID: "followed", CreatedAt: baseTime}).Error)
	require.NoError(t, db.Create(&follows.Follow{FollowerID: "followed", FollowingID: "a", CreatedAt: baseTime.Add(time.Second)}).Error)

	suggestions, err := repo.ListSuggestions(context.Background(), "me", 10)
	require.NoError(t, err)

	ids := lo.Map(suggestions, func(s users.Suggestion, _ int) string { return s.ID })
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, ids)

	a, ok := lo.Find(suggestions, func(s users.Suggestion) bool { return s.ID == "a" })
	require.True(t, ok)
	assert.Equal(t, int64(1), a.FollowerCount)
	assert.Equal(t, "User a", a.Name)

	limited, err := repo.ListSuggestions(context.Background(), "me", 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}
