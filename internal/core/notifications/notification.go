package notifications

import (
	"time"

	"Hearth/internal/core/users"
)

// Type identifies what the creator did to trigger a notification.
type Type string

const (
	TypeLike    Type = "LIKE"
	TypeComment Type = "COMMENT"
	TypeFollow  Type = "FOLLOW"
)

// Notification tells UserID that CreatorID acted on something of theirs.
// Rows are immutable except for Read.
type Notification struct {
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index"`
	PostID    *string   `json:"postId,omitempty" gorm:"column:post_id;type:text;index"`
	CommentID *string   `json:"commentId,omitempty" gorm:"column:comment_id;type:text"`
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:text;not null;index"`
	CreatorID string    `json:"creatorId" gorm:"column:creator_id;type:text;not null"`
	Type      Type      `json:"type" gorm:"type:text;not null"`
	Read      bool      `json:"read" gorm:"not null;default:false"`
}

func (Notification) TableName() string {
	return "notifications"
}

// For builds an unread notification, or returns nil when the recipient is
// the creator. Nobody is notified about their own actions.
func For(id string, typ Type, recipientID, creatorID string, now time.Time) *Notification {
	if recipientID == creatorID {
		return nil
	}
	return &Notification{
		ID:        id,
		Type:      typ,
		UserID:    recipientID,
		CreatorID: creatorID,
		Read:      false,
		CreatedAt: now,
	}
}

// WithPost sets the referenced post.
func (n *Notification) WithPost(postID string) *Notification {
	n.PostID = &postID
	return n
}

// WithComment sets the referenced comment.
func (n *Notification) WithComment(commentID string) *Notification {
	n.CommentID = &commentID
	return n
}

// PostSummary is the post preview shown next to a notification.
type PostSummary struct {
	Image   *string `json:"image,omitempty"`
	ID      string  `json:"id"`
	Content string  `json:"content"`
}

// CommentSummary is the comment preview shown next to a notification.
type CommentSummary struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	Content   string    `json:"content"`
}

// View is a notification with its creator, post and comment expanded.
type View struct {
	Notification
	Post    *PostSummary    `json:"post,omitempty"`
	Comment *CommentSummary `json:"comment,omitempty"`
	Creator users.Summary   `json:"creator"`
}
