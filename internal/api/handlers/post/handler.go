package post

import (
	"context"

	"Hearth/internal/actions"
	"Hearth/internal/core/identity"
	"Hearth/internal/core/posts"
)

// Actions is the subset of actions the post handlers call
type Actions interface {
	CreatePost(ctx context.Context, session *identity.Session, content string, image *string) (*actions.CreatePostResult, error)
	GetPosts(ctx context.Context, params posts.ListParams) (*posts.Page, error)
	GetPost(ctx context.Context, postID string) (*posts.Post, error)
	DeletePost(ctx context.Context, session *identity.Session, postID string) (*actions.Result, error)
	ToggleLike(ctx context.Context, session *identity.Session, postID string) (*actions.Result, error)
}

const maxBodySize = 64 * 1024
