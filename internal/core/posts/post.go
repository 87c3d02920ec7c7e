package posts

import (
	"time"

	"Hearth/internal/core/users"
)

// Post is a single feed entry. Only its author may delete it.
type Post struct {
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index:idx_posts_created_at_id,priority:1,sort:desc"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
	Image     *string   `json:"image,omitempty" gorm:"type:text"`
	ID        string    `json:"id" gorm:"primaryKey;type:text;index:idx_posts_created_at_id,priority:2,sort:desc"`
	AuthorID  string    `json:"authorId" gorm:"column:author_id;type:text;not null;index"`
	Content   string    `json:"content" gorm:"type:text"`
}

func (Post) TableName() string {
	return "posts"
}

// CreateRequest is the input for a new post. Image is a CDN URL or empty.
type CreateRequest struct {
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

// CommentView is a comment as rendered under its post.
type CommentView struct {
	CreatedAt time.Time     `json:"createdAt"`
	Author    users.Summary `json:"author"`
	ID        string        `json:"id"`
	Content   string        `json:"content"`
}

// Counts are precomputed totals for a post.
type Counts struct {
	Comments int `json:"comments"`
	Likes    int `json:"likes"`
}

// PostView is a post annotated for the feed: author, comments oldest-first,
// the ids of users who liked it, and counts.
type PostView struct {
	CreatedAt time.Time     `json:"createdAt"`
	Image     *string       `json:"image,omitempty"`
	Author    users.Summary `json:"author"`
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Comments  []CommentView `json:"comments"`
	LikedBy   []string      `json:"likes"`
	Counts    Counts        `json:"_count"`
}

// ListParams controls feed pagination. Limit 0 returns every post.
type ListParams struct {
	Cursor string
	Limit  int
}

// Page is one slice of the feed. NextCursor is empty on the last page.
type Page struct {
	NextCursor string     `json:"cursor,omitempty"`
	Posts      []PostView `json:"posts"`
}
