package follows

import (
	"testing"
	"time"

	"Hearth/internal/core/mutation"
	"Hearth/internal/core/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedEnv() mutation.Env {
	return mutation.Env{
		NewID: func() string { return "n1" },
		Now:   func() time.Time { return fixedNow },
	}
}

func TestPlanToggle_Self(t *testing.T) {
	plan, _, err := PlanToggle(fixedEnv(), "u1", "u1", nil)
	assert.ErrorIs(t, err, ErrCannotFollowSelf)
	assert.True(t, plan.IsEmpty())
}

func TestPlanToggle_Follow(t *testing.T) {
	plan, result, err := PlanToggle(fixedEnv(), "u1", "u2", nil)
	require.NoError(t, err)
	assert.True(t, result.Following)

	require.Equal(t, 2, plan.Len())
	assert.Equal(t, &Follow{FollowerID: "u1", FollowingID: "u2", CreatedAt: fixedNow}, plan.Writes[0].Entity)

	n, ok := plan.Writes[1].Entity.(*notifications.Notification)
	require.True(t, ok)
	assert.Equal(t, &notifications.Notification{
		ID:        "n1",
		Type:      notifications.TypeFollow,
		UserID:    "u2",
		CreatorID: "u1",
		CreatedAt: fixedNow,
	}, n)
}

func TestPlanToggle_Unfollow(t *testing.T) {
	plan, result, err := PlanToggle(fixedEnv(), "u1", "u2", &Follow{FollowerID: "u1", FollowingID: "u2"})
	require.NoError(t, err)
	assert.False(t, result.Following)

	require.Equal(t, 1, plan.Len())
	assert.Equal(t, mutation.OpDelete, plan.Writes[0].Op)
}
