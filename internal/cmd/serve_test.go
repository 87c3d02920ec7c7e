package cmd

import (
	"context"
	"testing"

	"Hearth/internal/api/middleware"
	"Hearth/internal/api/routes"
	"Hearth/internal/config"
	"Hearth/internal/metrics"
	revalidation "Hearth/internal/signal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablers(t *testing.T) {
	names := make([]string, 0)
	for _, tb := range tablers() {
		names = append(names, tb.TableName())
	}
	assert.Equal(t, []string{"users", "posts", "comments", "likes", "follows", "notifications"}, names)
}

func TestBuildLimiters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api, uploads := buildLimiters(ctx, &config.Config{}, nil)
	assert.Nil(t, api)
	assert.Nil(t, uploads)

	api, uploads = buildLimiters(ctx, &config.Config{RateLimitRPM: 100}, nil)
	require.IsType(t, &middleware.RateLimiter{}, api)
	require.IsType(t, &middleware.RateLimiter{}, uploads)

	for i := 0; i < uploadsPerMinute; i++ {
		allowed, err := uploads.Allow(ctx, "203.0.113.1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := uploads.Allow(ctx, "203.0.113.1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestBuildSignaler_FallsBackToLog(t *testing.T) {
	health := map[string]routes.HealthCheck{}
	a := &app{}

	s, err := buildSignaler(&config.Config{}, a, health, nil)
	require.NoError(t, err)

	counted, ok := s.(metrics.CountedSignaler)
	require.True(t, ok)
	assert.Equal(t, revalidation.Multi{revalidation.Log{}}, counted.Next)
	assert.Empty(t, health)
	assert.Empty(t, a.closers)
	assert.NoError(t, s.Revalidate(context.Background(), "/"))
}
