package signal

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis publishes signals on a Redis pub/sub channel.
type Redis struct {
	client  *redis.Client
	channel string
	now     func() time.Time
}

func NewRedis(client *redis.Client, channel string) *Redis {
	if channel == "" {
		channel = DefaultSubject
	}
	return &Redis{client: client, channel: channel, now: time.Now}
}

func (r *Redis) Revalidate(ctx context.Context, path string) error {
	data, err := encode(path, r.now())
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish revalidate signal: %w", err)
	}
	return nil
}
