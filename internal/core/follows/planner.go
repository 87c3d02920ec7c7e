package follows

import (
	"Hearth/internal/core/mutation"
	"Hearth/internal/core/notifications"
)

// PlanToggle decides the writes for a follow toggle. An existing edge is
// deleted with no notification; otherwise the edge and a FOLLOW
// notification for the target are created together.
func PlanToggle(env mutation.Env, actorID, targetID string, existing *Follow) (mutation.Plan, ToggleResult, error) {
	var plan mutation.Plan

	if actorID == targetID {
		return plan, ToggleResult{}, ErrCannotFollowSelf
	}

	if existing != nil {
		plan.Delete(&Follow{FollowerID: existing.FollowerID, FollowingID: existing.FollowingID})
		return plan, ToggleResult{Following: false}, nil
	}

	now := env.Now()
	plan.Create(&Follow{FollowerID: actorID, FollowingID: targetID, CreatedAt: now})
	plan.Create(notifications.For(env.NewID(), notifications.TypeFollow, targetID, actorID, now))

	return plan, ToggleResult{Following: true}, nil
}
