package actions

import (
	"Hearth/internal/core/comments"
	"Hearth/internal/core/posts"
)

// Result is the bare success payload.
type Result struct {
	Success bool `json:"success"`
}

// CreatePostResult carries the new post, or a message when the write failed.
type CreatePostResult struct {
	cause   error
	Post    *posts.Post `json:"post,omitempty"`
	Message string      `json:"message,omitempty"`
	Success bool        `json:"success"`
}

// Cause is the underlying failure when Success is false.
func (r *CreatePostResult) Cause() error { return r.cause }

type CreateCommentResult struct {
	Comment *comments.Comment `json:"comment"`
	Success bool              `json:"success"`
}

// ToggleFollowResult is returned only on the follow path and on failure.
// Unfollowing yields no payload at all.
type ToggleFollowResult struct {
	cause   error
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

// Cause is the underlying failure when Success is false.
func (r *ToggleFollowResult) Cause() error { return r.cause }

type MarkReadResult struct {
	Updated int64 `json:"updated"`
	Success bool  `json:"success"`
}
