package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"Hearth/internal/core/identity"
)

// SessionCookie is the cookie the identity provider's frontend SDK sets.
const SessionCookie = "__session"

// Context keys for storing session information
type contextKey string

const (
	SessionKey contextKey = "identity_session"
)

// SessionAuthMiddleware verifies identity-provider session tokens taken from
// the Authorization header or the session cookie.
type SessionAuthMiddleware struct {
	verifier identity.SessionVerifier
	logger   *slog.Logger
}

// NewSessionAuthMiddleware creates a new session auth middleware
func NewSessionAuthMiddleware(verifier identity.SessionVerifier, logger *slog.Logger) *SessionAuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionAuthMiddleware{verifier: verifier, logger: logger}
}

// RequireAuth rejects requests without a valid session with 401.
func (m *SessionAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeAuthError(w, "Missing session token")
			return
		}

		session, err := m.verifier.VerifySession(r.Context(), token)
		if err != nil {
			m.logger.Info("auth failure",
				"type", "verification_failed",
				"ip", getClientIP(r),
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
			writeAuthError(w, "Invalid or expired session")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionKey, session)))
	})
}

// OptionalAuth attaches the session when one verifies and otherwise lets
// the request through anonymously.
func (m *SessionAuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.verifier.VerifySession(r.Context(), token)
		if err != nil {
			if !errors.Is(err, identity.ErrNoSession) {
				m.logger.Debug("optional auth failed", "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionKey, session)))
	})
}

// GetSession returns the verified session, or nil for anonymous requests.
func GetSession(r *http.Request) *identity.Session {
	session, _ := r.Context().Value(SessionKey).(*identity.Session)
	return session
}

// SetTestSession sets the session in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestSession(ctx context.Context, session *identity.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "AuthenticationRequired",
		"message": message,
	}); err != nil {
		slog.Warn("failed to write auth error response", "error", err)
	}
}
