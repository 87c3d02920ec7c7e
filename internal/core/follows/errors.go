package follows

import "errors"

var (
	// ErrFollowNotFound is returned by the repository when no edge exists
	ErrFollowNotFound = errors.New("follow not found")

	// ErrCannotFollowSelf is returned when actor and target are the same user
	ErrCannotFollowSelf = errors.New("cannot follow yourself")

	// ErrTargetNotFound is returned when the user to follow does not exist
	ErrTargetNotFound = errors.New("user to follow not found")
)
