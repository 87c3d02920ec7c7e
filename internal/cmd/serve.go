package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"Hearth/internal/actions"
	"Hearth/internal/api/middleware"
	"Hearth/internal/api/routes"
	"Hearth/internal/cdn/cloudinary"
	"Hearth/internal/config"
	"Hearth/internal/core/comments"
	"Hearth/internal/core/follows"
	"Hearth/internal/core/likes"
	"Hearth/internal/core/media"
	"Hearth/internal/core/notifications"
	"Hearth/internal/core/posts"
	"Hearth/internal/core/revalidate"
	"Hearth/internal/core/users"
	"Hearth/internal/db/postgres"
	"Hearth/internal/identity/clerk"
	"Hearth/internal/metrics"
	revalidation "Hearth/internal/signal"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"resty.dev/v3"
)

const (
	jwksMinRefresh    = 15 * time.Minute
	uploadsPerMinute  = 10
	rateLimitWindow   = time.Minute
	metricsInterval   = 30 * time.Second
	readHeaderTimeout = 5 * time.Second
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Run the HTTP API",
	Flags: config.ServeFlags,
	Action: func(ctx context.Context, c *cli.Command) error {
		cfg, err := config.FromCommand(c)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, slog.Default())
	},
}

// app holds everything serve builds so it can be torn down in reverse.
type app struct {
	db      *gorm.DB
	handler http.Handler
	closers []io.Closer
	redis   *redis.Client
}

func (a *app) close(logger *slog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			logger.Warn("failed to close resource", "error", err)
		}
	}
	if a.db != nil {
		if err := postgres.Close(a.db); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	a, err := build(ctx, cfg, logger)
	if a != nil {
		defer a.close(logger)
	}
	if err != nil {
		return err
	}

	collector := &metrics.Collector{
		DB:       a.db,
		Logger:   logger,
		Tables:   tablers(),
		Interval: metricsInterval,
	}
	go func() {
		if err := collector.Run(ctx); err != nil {
			logger.Warn("metrics collector stopped", "error", err)
		}
	}()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("hearth listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{}

	db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.Options{
		Debug:   cfg.DBDebug,
		Migrate: cfg.MigrateOnStart,
	})
	if err != nil {
		return a, err
	}
	a.db = db
	logger.Info("connected to database", "migrated", cfg.MigrateOnStart)

	health := map[string]routes.HealthCheck{
		"database": func(ctx context.Context) error { return postgres.Ping(ctx, db) },
	}

	signaler, err := buildSignaler(cfg, a, health, logger)
	if err != nil {
		return a, err
	}

	keys, err := clerk.NewJWKSKeySource(ctx, cfg.IdentityJWKSURL, jwksMinRefresh)
	if err != nil {
		return a, err
	}
	verifier := clerk.NewVerifier(keys, clerk.VerifierConfig{
		Issuer:            cfg.IdentityIssuer,
		AuthorizedParties: cfg.IdentityAuthorizedParties,
		Logger:            logger,
	})

	profiles, err := clerk.NewProfileClient(clerk.ClientConfig{
		BaseURL:             cfg.IdentityAPIURL,
		SecretKey:           cfg.IdentitySecretKey,
		ResponseMiddlewares: []resty.ResponseMiddleware{metrics.UpstreamMiddleware("identity")},
		Timeout:             10 * time.Second,
	})
	if err != nil {
		return a, err
	}
	a.closers = append(a.closers, profiles)

	uploader, err := cloudinary.NewUploader(cloudinary.Config{
		APIURL:              cfg.CDNAPIURL,
		CloudName:           cfg.CDNCloudName,
		UploadPreset:        cfg.CDNUploadPreset,
		ResponseMiddlewares: []resty.ResponseMiddleware{metrics.UpstreamMiddleware("cdn")},
	})
	if err != nil {
		return a, err
	}
	a.closers = append(a.closers, uploader)

	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db, cfg.CursorSecret)
	applier := postgres.NewMutationApplier(db)

	acts := actions.New(actions.Services{
		Users:         users.NewUserService(userRepo, profiles, logger),
		Posts:         posts.NewPostService(postRepo, signaler, logger),
		Likes:         likes.NewLikeService(postgres.NewLikeRepository(db), postRepo, applier, signaler, logger),
		Comments:      comments.NewCommentService(postRepo, applier, signaler, logger),
		Follows:       follows.NewFollowService(postgres.NewFollowRepository(db), userRepo, applier, signaler, logger),
		Notifications: notifications.NewNotificationService(postgres.NewNotificationRepository(db), logger),
		Media:         media.NewMediaService(uploader, logger),
	}, logger)

	limiter, uploadLimiter := buildLimiters(ctx, cfg, a.redis)

	a.handler = routes.NewRouter(routes.Config{
		Actions:        acts,
		Auth:           middleware.NewSessionAuthMiddleware(verifier, logger),
		Limiter:        limiter,
		UploadLimiter:  uploadLimiter,
		Logger:         logger,
		Health:         health,
		AllowedOrigins: cfg.CORSOrigins,
	})

	return a, nil
}

// buildSignaler fans revalidate signals out to every configured broker,
// falling back to logging them when none is.
func buildSignaler(cfg *config.Config, a *app, health map[string]routes.HealthCheck, logger *slog.Logger) (revalidate.Signaler, error) {
	var targets revalidation.Multi

	if cfg.NATSURL != "" {
		nc, err := revalidation.ConnectNATS(cfg.NATSURL, cfg.RevalidateSubject)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, nc)
		health["nats"] = nc.HealthCheck
		targets = append(targets, nc)
		logger.Info("publishing revalidate signals to NATS", "subject", cfg.RevalidateSubject)
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)
		a.redis = client
		a.closers = append(a.closers, client)
		health["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		targets = append(targets, revalidation.NewRedis(client, cfg.RevalidateSubject))
		logger.Info("publishing revalidate signals to Redis", "channel", cfg.RevalidateSubject)
	}

	if len(targets) == 0 {
		targets = append(targets, revalidation.Log{Logger: logger})
	}

	return metrics.CountedSignaler{Next: targets}, nil
}

// buildLimiters shares counters through Redis when it is configured so every
// instance enforces the same budget.
func buildLimiters(ctx context.Context, cfg *config.Config, client *redis.Client) (middleware.Limiter, middleware.Limiter) {
	if cfg.RateLimitRPM == 0 {
		return nil, nil
	}
	uploads := min(uploadsPerMinute, cfg.RateLimitRPM)

	if client != nil {
		return middleware.NewRedisRateLimiter(client, cfg.RateLimitRPM, rateLimitWindow).WithPrefix("hearth:ratelimit:api:"),
			middleware.NewRedisRateLimiter(client, uploads, rateLimitWindow).WithPrefix("hearth:ratelimit:upload:")
	}
	return middleware.NewRateLimiter(ctx, cfg.RateLimitRPM, rateLimitWindow),
		middleware.NewRateLimiter(ctx, uploads, rateLimitWindow)
}

func tablers() []schema.Tabler {
	return lo.FilterMap(postgres.Models(), func(m any, _ int) (schema.Tabler, bool) {
		t, ok := m.(schema.Tabler)
		return t, ok
	})
}
