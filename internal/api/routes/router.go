package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"Hearth/internal/actions"
	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Config wires the router
type Config struct {
	Actions        *actions.Actions
	Auth           *middleware.SessionAuthMiddleware
	Limiter        middleware.Limiter
	UploadLimiter  middleware.Limiter
	Logger         *slog.Logger
	Health         map[string]HealthCheck
	AllowedOrigins []string
}

// NewRouter builds the HTTP API
func NewRouter(cfg Config) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware)

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(corsMiddleware(cfg.AllowedOrigins))
	}

	r.Get("/health", healthHandler(cfg.Health))
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(middleware.RateLimit(cfg.Limiter, cfg.Logger))
		}

		RegisterPostRoutes(r, cfg.Actions, cfg.Auth)
		RegisterUserRoutes(r, cfg.Actions, cfg.Auth)
		RegisterNotificationRoutes(r, cfg.Actions, cfg.Auth)
		RegisterMediaRoutes(r, cfg.Actions, cfg.Auth, cfg.UploadLimiter)
	})

	return r
}

func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", chiMiddleware.GetReqID(r.Context()))
		})
	}
}

// healthHandler runs every check with a short timeout. Any failure turns
// the response into 503.
func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		handlers.WriteJSON(w, status, map[string]any{
			"status": http.StatusText(status),
			"checks": results,
		})
	}
}
