package identity

import "context"

// SessionVerifier turns a raw session token into a verified Session.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*Session, error)
}

// ProfileProvider fetches profile fields for an external subject.
type ProfileProvider interface {
	GetProfile(ctx context.Context, externalID string) (*Profile, error)
}
