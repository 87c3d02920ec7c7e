package clerk

import (
	"context"
	"fmt"
	"time"

	"Hearth/internal/core/identity"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// JWKSKeySource serves public keys from an auto-refreshing JWKS cache.
type JWKSKeySource struct {
	cache *jwk.Cache
	url   string
}

// NewJWKSKeySource registers jwksURL with a background-refreshing cache and
// performs the first fetch. The cache lives as long as ctx.
func NewJWKSKeySource(ctx context.Context, jwksURL string, minRefresh time.Duration) (*JWKSKeySource, error) {
	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL, jwk.WithMinRefreshInterval(minRefresh)); err != nil {
		return nil, fmt.Errorf("failed to register JWKS url: %w", err)
	}
	if _, err := cache.Refresh(ctx, jwksURL); err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	return &JWKSKeySource{cache: cache, url: jwksURL}, nil
}

func (s *JWKSKeySource) PublicKey(ctx context.Context, kid string) (interface{}, error) {
	set, err := s.cache.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS: %w", err)
	}
	return lookupKey(set, kid)
}

// StaticKeySource serves keys from a fixed set, for tests and offline
// development.
type StaticKeySource struct {
	set jwk.Set
}

// NewStaticKeySource wraps raw public keys keyed by kid.
func NewStaticKeySource(keys map[string]interface{}) (*StaticKeySource, error) {
	set := jwk.NewSet()
	for kid, raw := range keys {
		key, err := jwk.FromRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to convert key %q: %w", kid, err)
		}
		if err := key.Set(jwk.KeyIDKey, kid); err != nil {
			return nil, err
		}
		if err := set.AddKey(key); err != nil {
			return nil, err
		}
	}
	return &StaticKeySource{set: set}, nil
}

func (s *StaticKeySource) PublicKey(_ context.Context, kid string) (interface{}, error) {
	return lookupKey(s.set, kid)
}

func lookupKey(set jwk.Set, kid string) (interface{}, error) {
	key, ok := set.LookupKeyID(kid)
	if !ok {
		return nil, fmt.Errorf("%w: unknown key id %q", identity.ErrInvalidToken, kid)
	}
	var raw interface{}
	if err := key.Raw(&raw); err != nil {
		return nil, fmt.Errorf("failed to extract public key: %w", err)
	}
	return raw, nil
}
