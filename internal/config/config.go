// Package config holds the process configuration, filled from command-line
// flags and their environment variables.
package config

import (
	"errors"
	"fmt"
	"time"
)

var ErrMissingSetting = errors.New("missing required setting")

type Config struct {
	DatabaseURL string `flag:"database-url"`
	LogLevel    string `flag:"log-level"`

	IdentityIssuer            string   `flag:"identity-issuer"`
	IdentityJWKSURL           string   `flag:"identity-jwks-url"`
	IdentityAPIURL            string   `flag:"identity-api-url"`
	IdentitySecretKey         string   `flag:"identity-secret-key"`
	IdentityAuthorizedParties []string `flag:"identity-authorized-parties"`

	CDNCloudName    string `flag:"cdn-cloud-name"`
	CDNUploadPreset string `flag:"cdn-upload-preset"`
	CDNAPIURL       string `flag:"cdn-api-url"`

	NATSURL           string `flag:"nats-url"`
	RedisURL          string `flag:"redis-url"`
	RevalidateSubject string `flag:"revalidate-subject"`

	CursorSecret string   `flag:"cursor-secret"`
	CORSOrigins  []string `flag:"cors-origins"`

	ShutdownTimeout time.Duration `flag:"shutdown-timeout"`
	Port            int           `flag:"port"`
	RateLimitRPM    int           `flag:"rate-limit-rpm"`
	MigrateOnStart  bool          `flag:"migrate-on-start"`
	DBDebug         bool          `flag:"db-debug"`
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_URL", c.DatabaseURL},
		{"IDENTITY_JWKS_URL", c.IdentityJWKSURL},
		{"IDENTITY_API_URL", c.IdentityAPIURL},
		{"IDENTITY_SECRET_KEY", c.IdentitySecretKey},
		{"CDN_CLOUD_NAME", c.CDNCloudName},
		{"CURSOR_SECRET", c.CursorSecret},
	}

	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingSetting, r.name))
		}
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.RateLimitRPM < 0 {
		errs = append(errs, fmt.Errorf("invalid rate limit: %d", c.RateLimitRPM))
	}
	return errors.Join(errs...)
}
