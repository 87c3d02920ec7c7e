package comments

import "time"

// Comment is a reply under a post. Comments are shown oldest first.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index"`
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	PostID    string    `json:"postId" gorm:"column:post_id;type:text;not null;index"`
	AuthorID  string    `json:"authorId" gorm:"column:author_id;type:text;not null"`
}

func (Comment) TableName() string {
	return "comments"
}
