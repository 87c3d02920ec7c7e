package likes

import (
	"Hearth/internal/core/mutation"
	"Hearth/internal/core/notifications"
	"Hearth/internal/core/posts"
)

// PlanToggle decides the writes for a like toggle.
//
// An existing like is deleted with no notification. Otherwise a like is
// created, followed by a LIKE notification to the post author unless the
// actor is the author.
func PlanToggle(env mutation.Env, actorID string, post *posts.Post, existing *Like) (mutation.Plan, ToggleResult) {
	var plan mutation.Plan

	if existing != nil {
		plan.Delete(&Like{UserID: existing.UserID, PostID: existing.PostID})
		return plan, ToggleResult{Liked: false}
	}

	now := env.Now()
	plan.Create(&Like{UserID: actorID, PostID: post.ID, CreatedAt: now})

	if n := notifications.For(env.NewID(), notifications.TypeLike, post.AuthorID, actorID, now); n != nil {
		plan.Create(n.WithPost(post.ID))
	}

	return plan, ToggleResult{Liked: true}
}
