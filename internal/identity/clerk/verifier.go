// Package clerk adapts the hosted identity provider: session JWT
// verification against its JWKS and profile lookups against its backend API.
package clerk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"Hearth/internal/core/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	sessionCacheSize = 10000
	sessionCacheTTL  = time.Minute
	clockSkew        = 5 * time.Second
)

// KeySource resolves a JWT key id to a public key.
type KeySource interface {
	PublicKey(ctx context.Context, kid string) (interface{}, error)
}

// Claims are the session token claims. azp carries the frontend origin that
// minted the token; sid the provider session id.
type Claims struct {
	jwt.RegisteredClaims
	AuthorizedParty string `json:"azp,omitempty"`
	SessionID       string `json:"sid,omitempty"`
}

// VerifierConfig configures session verification.
type VerifierConfig struct {
	// Issuer must match the iss claim exactly.
	Issuer string
	// AuthorizedParties, when non-empty, restricts the azp claim.
	AuthorizedParties []string
	Logger            *slog.Logger
}

// Verifier checks session tokens and caches verified sessions until they
// expire or the cache TTL passes, whichever is sooner.
type Verifier struct {
	keys   KeySource
	cache  *expirable.LRU[string, *identity.Session]
	logger *slog.Logger
	parser *jwt.Parser
	cfg    VerifierConfig
}

// NewVerifier creates a session verifier
func NewVerifier(keys KeySource, cfg VerifierConfig) *Verifier {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256"}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(clockSkew),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &Verifier{
		keys:   keys,
		cache:  expirable.NewLRU[string, *identity.Session](sessionCacheSize, nil, sessionCacheTTL),
		logger: logger,
		parser: jwt.NewParser(opts...),
		cfg:    cfg,
	}
}

// VerifySession validates signature, expiry, issuer and authorized party.
func (v *Verifier) VerifySession(ctx context.Context, token string) (*identity.Session, error) {
	if token == "" {
		return nil, identity.ErrNoSession
	}

	if cached, ok := v.cache.Get(token); ok {
		if time.Now().Before(cached.ExpiresAt) {
			return cached, nil
		}
		v.cache.Remove(token)
	}

	claims := &Claims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no kid header")
		}
		return v.keys.PublicKey(ctx, kid)
	})
	if err != nil {
		v.logger.Debug("session token rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", identity.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, identity.ErrInvalidToken
	}

	if err := v.validateClaims(claims); err != nil {
		return nil, fmt.Errorf("%w: %w", identity.ErrInvalidToken, err)
	}

	session := &identity.Session{
		ExternalID: claims.Subject,
		SessionID:  claims.SessionID,
		ExpiresAt:  claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}

	v.cache.Add(token, session)
	return session, nil
}

func (v *Verifier) validateClaims(claims *Claims) error {
	if claims.Subject == "" {
		return errors.New("missing sub claim")
	}
	if len(v.cfg.AuthorizedParties) > 0 && claims.AuthorizedParty != "" &&
		!slices.Contains(v.cfg.AuthorizedParties, claims.AuthorizedParty) {
		return fmt.Errorf("unauthorized party %q", claims.AuthorizedParty)
	}
	return nil
}
