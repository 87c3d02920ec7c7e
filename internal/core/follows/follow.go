package follows

import "time"

// Follow is a directed edge: FollowerID follows FollowingID. At most one
// edge per ordered pair, and never from a user to themselves.
type Follow struct {
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
	FollowerID  string    `json:"followerId" gorm:"column:follower_id;primaryKey;type:text"`
	FollowingID string    `json:"followingId" gorm:"column:following_id;primaryKey;type:text;index"`
}

func (Follow) TableName() string {
	return "follows"
}

// ToggleResult reports the edge state after a toggle.
type ToggleResult struct {
	Following bool `json:"following"`
}
