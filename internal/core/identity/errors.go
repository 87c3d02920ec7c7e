package identity

import "errors"

var (
	// ErrNoSession is returned when a request carries no identity session
	ErrNoSession = errors.New("no identity session")

	// ErrInvalidToken is returned when a session token fails verification
	ErrInvalidToken = errors.New("invalid session token")

	// ErrProfileNotFound is returned when the provider has no profile for the subject
	ErrProfileNotFound = errors.New("identity profile not found")
)
