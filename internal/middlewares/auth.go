package middlewares

import (
	"context"
	"net/http"

	"github.com/DuJao22/Senhas-Wani/internal/jwt"
	"github.com/DuJao22/Senhas-Wani/internal/logger"
	"github.com/DuJao22/Senhas-Wani/internal/models"
)

// Tokener defines the minimal token interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// SessionChecker reports whether a session id is still active.
type SessionChecker interface {
	Exists(ctx context.Context, sessionID string) (bool, error)
}

// AuthMiddleware validates the session token, checks that the session has not
// been revoked and stores the resolved identity in the request context.
func AuthMiddleware(tokener Tokener, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			active, err := sessions.Exists(ctx, claims.SessionID)
			if err != nil {
				logger.Log.Errorw("session lookup failed", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if !active {
				logger.Log.Infow("authorization failed, session revoked or expired", "session_id", claims.SessionID)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx = SetIdentityToContext(ctx, claims.Identity)
			ctx = SetSessionIDToContext(ctx, claims.SessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityContextKey is an unexported type for identity keys in context
type identityContextKey struct{}

var (
	identityKey  = identityContextKey{}
	sessionIDKey = struct{ s string }{"session_id"}
)

// SetIdentityToContext stores the authenticated identity in the context
func SetIdentityToContext(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the authenticated identity from the context.
// The second return value is false when no identity is present.
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

// SetSessionIDToContext stores the session id in the context
func SetSessionIDToContext(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionIDFromContext retrieves the session id from the context. Returns
// an empty string if not present.
func GetSessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionIDKey).(string)
	return sessionID
}
