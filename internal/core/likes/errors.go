package likes

import "errors"

var (
	// ErrLikeNotFound is returned by the repository when no like exists for the pair
	ErrLikeNotFound = errors.New("like not found")

	// ErrPostNotFound is returned when the liked post does not exist
	ErrPostNotFound = errors.New("post not found")
)
