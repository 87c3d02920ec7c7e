package actions

import "errors"

// Failure messages shown to callers. Causes stay in the logs.
const (
	msgCreatePostFailed    = "Failed to create post"
	msgFetchPostsFailed    = "Failed to fetch posts"
	msgFetchPostFailed     = "Failed to fetch post"
	msgToggleLikeFailed    = "Failed to toggle like"
	msgCreateCommentFailed = "Failed to create comment"
	msgDeletePostFailed    = "Failed to delete post"
	msgToggleFollowFailed  = "Error toggling follow"
	msgCannotFollowSelf    = "Cannot follow yourself"
	msgFetchUserFailed     = "Failed to fetch user"
	msgNotificationsFailed = "Failed to fetch notifications"
	msgMarkReadFailed      = "Failed to mark notifications as read"
	msgUploadFailed        = "Failed to upload image"
)

// Error is an opaque action failure. Message is safe to show; Err is the
// cause and stays reachable through errors.Is and errors.As.
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(message string, err error) error {
	return &Error{Message: message, Err: err}
}

// Message returns the caller-facing text of an action error, or "" when err
// is not one.
func Message(err error) string {
	var actionErr *Error
	if errors.As(err, &actionErr) {
		return actionErr.Message
	}
	return ""
}
