package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}

var DatabaseURL = &cli.StringFlag{
	Name:    "database-url",
	Usage:   "Postgres connection string, or sqlite:<path> for local development",
	Sources: cli.EnvVars("DATABASE_URL"),
}

var DBDebug = &cli.BoolFlag{
	Name:    "db-debug",
	Usage:   "Log every SQL statement",
	Sources: cli.EnvVars("DB_DEBUG"),
}

var MigrateOnStart = &cli.BoolFlag{
	Name:    "migrate-on-start",
	Usage:   "Apply pending migrations before serving",
	Value:   true,
	Sources: cli.EnvVars("MIGRATE_ON_START"),
}

var Port = &cli.IntFlag{
	Name:    "port",
	Aliases: []string{"p"},
	Usage:   "HTTP listen port",
	Value:   8080,
	Sources: cli.EnvVars("PORT"),
}

var ShutdownTimeout = &cli.DurationFlag{
	Name:    "shutdown-timeout",
	Usage:   "How long to wait for in-flight requests on shutdown",
	Value:   10 * time.Second,
	Sources: cli.EnvVars("SHUTDOWN_TIMEOUT"),
}

var IdentityIssuer = &cli.StringFlag{
	Name:    "identity-issuer",
	Usage:   "Expected iss claim of session tokens",
	Sources: cli.EnvVars("IDENTITY_ISSUER"),
}

var IdentityJWKSURL = &cli.StringFlag{
	Name:    "identity-jwks-url",
	Usage:   "JWKS endpoint of the identity provider",
	Sources: cli.EnvVars("IDENTITY_JWKS_URL"),
}

var IdentityAPIURL = &cli.StringFlag{
	Name:    "identity-api-url",
	Usage:   "Backend API of the identity provider",
	Value:   "https://api.clerk.com",
	Sources: cli.EnvVars("IDENTITY_API_URL"),
}

var IdentitySecretKey = &cli.StringFlag{
	Name:    "identity-secret-key",
	Usage:   "Secret key for the identity provider's backend API",
	Sources: cli.EnvVars("IDENTITY_SECRET_KEY"),
}

var IdentityAuthorizedParties = &cli.StringSliceFlag{
	Name:    "identity-authorized-parties",
	Usage:   "Accepted azp claims; empty accepts any",
	Sources: cli.EnvVars("IDENTITY_AUTHORIZED_PARTIES"),
}

var CDNCloudName = &cli.StringFlag{
	Name:    "cdn-cloud-name",
	Usage:   "Media CDN cloud name",
	Sources: cli.EnvVars("CDN_CLOUD_NAME"),
}

var CDNUploadPreset = &cli.StringFlag{
	Name:    "cdn-upload-preset",
	Usage:   "Unsigned upload preset",
	Value:   "ml_default",
	Sources: cli.EnvVars("CDN_UPLOAD_PRESET"),
}

var CDNAPIURL = &cli.StringFlag{
	Name:    "cdn-api-url",
	Usage:   "Media CDN API base URL",
	Value:   "https://api.cloudinary.com",
	Sources: cli.EnvVars("CDN_API_URL"),
}

var NATSURL = &cli.StringFlag{
	Name:    "nats-url",
	Aliases: []string{"n"},
	Usage:   "The URL of the NATS server; revalidate signals are published there when set",
	Sources: cli.EnvVars("NATS_URL"),
}

var RedisURL = &cli.StringFlag{
	Name:    "redis-url",
	Usage:   "Redis URL; enables shared rate limiting and pub/sub revalidate signals",
	Sources: cli.EnvVars("REDIS_URL"),
}

var RevalidateSubject = &cli.StringFlag{
	Name:    "revalidate-subject",
	Usage:   "Subject and channel for revalidate signals",
	Value:   "hearth.revalidate",
	Sources: cli.EnvVars("REVALIDATE_SUBJECT"),
}

var CursorSecret = &cli.StringFlag{
	Name:    "cursor-secret",
	Usage:   "HMAC key for feed pagination cursors",
	Sources: cli.EnvVars("CURSOR_SECRET"),
}

var RateLimitRPM = &cli.IntFlag{
	Name:    "rate-limit-rpm",
	Usage:   "Requests per minute per client IP; 0 disables limiting",
	Value:   100,
	Sources: cli.EnvVars("RATE_LIMIT_RPM"),
}

var CORSOrigins = &cli.StringSliceFlag{
	Name:    "cors-origins",
	Usage:   "Origins allowed to call the API from a browser",
	Sources: cli.EnvVars("CORS_ORIGINS"),
}

// ServeFlags are the flags of the serve command.
var ServeFlags = []cli.Flag{
	DatabaseURL,
	DBDebug,
	MigrateOnStart,
	Port,
	ShutdownTimeout,
	IdentityIssuer,
	IdentityJWKSURL,
	IdentityAPIURL,
	IdentitySecretKey,
	IdentityAuthorizedParties,
	CDNCloudName,
	CDNUploadPreset,
	CDNAPIURL,
	NATSURL,
	RedisURL,
	RevalidateSubject,
	CursorSecret,
	RateLimitRPM,
	CORSOrigins,
}
