// Package signal delivers revalidate signals to the rendering tier over
// NATS or Redis pub/sub.
package signal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"Hearth/internal/core/revalidate"
)

// DefaultSubject is the channel renderers subscribe to.
const DefaultSubject = "hearth.revalidate"

// Message is the payload published for each signal.
type Message struct {
	At   time.Time `json:"at"`
	Path string    `json:"path"`
}

func encode(path string, now time.Time) ([]byte, error) {
	return json.Marshal(Message{Path: path, At: now.UTC()})
}

// Log records signals without delivering them anywhere. Used when no
// broker is configured.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Revalidate(_ context.Context, path string) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("revalidate", "path", path)
	return nil
}

// Multi fans a signal out to every signaler and joins their errors.
type Multi []revalidate.Signaler

func (m Multi) Revalidate(ctx context.Context, path string) error {
	var errs []error
	for _, s := range m {
		if err := s.Revalidate(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
