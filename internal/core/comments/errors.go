package comments

import "errors"

var (
	// ErrPostNotFound indicates the commented post doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrContentEmpty indicates comment content is empty
	ErrContentEmpty = errors.New("comment content is required")

	// ErrContentTooLong indicates comment content exceeds MaxContentLength graphemes
	ErrContentTooLong = errors.New("comment content is too long")
)

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrContentEmpty) ||
		errors.Is(err, ErrContentTooLong)
}
