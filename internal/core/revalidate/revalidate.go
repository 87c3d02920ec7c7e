package revalidate

import (
	"context"
	"log/slog"
)

// PathHome is the feed view rendered at the site root.
const PathHome = "/"

// Signaler tells the presentation layer that cached output for a path is
// stale.
type Signaler interface {
	Revalidate(ctx context.Context, path string) error
}

// Nop discards every signal.
type Nop struct{}

func (Nop) Revalidate(context.Context, string) error { return nil }

// Notify sends a signal and logs a failure instead of returning it. A
// committed mutation is never reported as failed because the renderer could
// not be reached.
func Notify(ctx context.Context, s Signaler, logger *slog.Logger, path string) {
	if s == nil {
		return
	}
	if err := s.Revalidate(ctx, path); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("failed to send revalidate signal", "error", err, "path", path)
	}
}
