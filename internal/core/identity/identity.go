package identity

import (
	"strings"
	"time"
)

// Session is a verified principal handed to us by the identity provider.
// The provider owns authentication; we only consume the subject.
type Session struct {
	IssuedAt   time.Time `json:"issuedAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	ExternalID string    `json:"externalId"`
	SessionID  string    `json:"sessionId,omitempty"`
}

// Profile holds the provider-side profile fields used when a local user is
// first created.
type Profile struct {
	Username   *string  `json:"username,omitempty"`
	ExternalID string   `json:"externalId"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	ImageURL   string   `json:"imageUrl"`
	Emails     []string `json:"emails"`
}

// PrimaryEmail returns the first email address on the profile, or "" if the
// profile has none.
func (p *Profile) PrimaryEmail() string {
	if p == nil || len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0]
}

// DisplayName joins first and last name with a single space. Missing parts
// are kept as empty strings so the result matches what the web client shows.
func (p *Profile) DisplayName() string {
	return p.FirstName + " " + p.LastName
}

// PreferredUsername is the provider username, falling back to the local part
// of the primary email.
func (p *Profile) PreferredUsername() string {
	if p.Username != nil && *p.Username != "" {
		return *p.Username
	}
	email := p.PrimaryEmail()
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
