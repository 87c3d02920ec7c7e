package likes

import "time"

// Like records that a user liked a post. At most one row exists per
// (UserID, PostID) pair.
type Like struct {
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
	UserID    string    `json:"userId" gorm:"column:user_id;primaryKey;type:text"`
	PostID    string    `json:"postId" gorm:"column:post_id;primaryKey;type:text;index"`
}

func (Like) TableName() string {
	return "likes"
}

// ToggleResult reports the like state after a toggle.
type ToggleResult struct {
	Liked bool `json:"liked"`
}
