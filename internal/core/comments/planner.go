package comments

import (
	"strings"

	"Hearth/internal/core/mutation"
	"Hearth/internal/core/notifications"
	"Hearth/internal/core/posts"

	"github.com/rivo/uniseg"
)

// MaxContentLength is the longest comment accepted, in graphemes.
const MaxContentLength = 2000

// PlanCreate validates content and decides the writes for a new comment:
// the comment, then a COMMENT notification to the post author referencing
// both post and comment unless the actor is the author.
func PlanCreate(env mutation.Env, actorID string, post *posts.Post, content string) (mutation.Plan, *Comment, error) {
	if strings.TrimSpace(content) == "" {
		return mutation.Plan{}, nil, ErrContentEmpty
	}
	if uniseg.GraphemeClusterCount(content) > MaxContentLength {
		return mutation.Plan{}, nil, ErrContentTooLong
	}

	now := env.Now()
	comment := &Comment{
		ID:        env.NewID(),
		Content:   content,
		PostID:    post.ID,
		AuthorID:  actorID,
		CreatedAt: now,
	}

	var plan mutation.Plan
	plan.Create(comment)

	if n := notifications.For(env.NewID(), notifications.TypeComment, post.AuthorID, actorID, now); n != nil {
		plan.Create(n.WithPost(post.ID).WithComment(comment.ID))
	}

	return plan, comment, nil
}
