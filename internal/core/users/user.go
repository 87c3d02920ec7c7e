package users

import (
	"time"
)

// User is the local record mirroring one identity-provider account.
// ExternalID is the provider subject and is unique; a local user is created
// at most once per external identity.
type User struct {
	CreatedAt  time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"not null"`
	ID         string    `json:"id" gorm:"primaryKey;type:text"`
	ExternalID string    `json:"externalId" gorm:"column:external_id;type:text;uniqueIndex;not null"`
	Email      string    `json:"email" gorm:"type:text;uniqueIndex;not null"`
	Username   string    `json:"username" gorm:"type:text;uniqueIndex;not null"`
	Name       string    `json:"name" gorm:"type:text"`
	Image      string    `json:"image" gorm:"type:text"`
}

func (User) TableName() string {
	return "users"
}

// Summary is the author projection embedded in posts, comments and
// notifications.
type Summary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

// Summarize projects a user down to its Summary.
func (u *User) Summarize() Summary {
	return Summary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Image:    u.Image,
	}
}

// Counts holds relationship and content totals for a profile.
type Counts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Posts     int64 `json:"posts"`
}

// Profile is a user with its counts.
type Profile struct {
	User
	Counts Counts `json:"_count"`
}

// Suggestion is a user the viewer does not follow yet.
type Suggestion struct {
	Summary
	FollowerCount int64 `json:"followerCount"`
}
