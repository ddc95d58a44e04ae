package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rezkam/bucketlist/internal/application/auth"
	"github.com/rezkam/bucketlist/internal/domain"
	"github.com/rezkam/bucketlist/internal/http/response"
)

type contextKey string

const profileIDKey contextKey = "profile_id"

// ProfileID returns the authenticated profile id installed by the auth
// middleware, or "" for unauthenticated requests.
func ProfileID(ctx context.Context) string {
	profileID, _ := ctx.Value(profileIDKey).(string)
	return profileID
}

// WithProfileID installs a profile id in the context. Exported for
// handler tests that bypass the middleware.
func WithProfileID(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, profileIDKey, profileID)
}

// Auth is HTTP middleware for API key authentication. A validated key
// binds the request to its owning profile; handlers read the identity
// via ProfileID and never trust client-supplied profile ids.
type Auth struct {
	authenticator *auth.Authenticator
}

// NewAuth creates a new auth middleware.
func NewAuth(authenticator *auth.Authenticator) *Auth {
	return &Auth{
		authenticator: authenticator,
	}
}

// Validate is a Chi middleware that validates API keys from the
// Authorization header. Expects format: "Authorization: Bearer <api-key>"
func (a *Auth) Validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			slog.WarnContext(r.Context(), "authentication failed: missing Authorization header",
				"path", r.URL.Path,
				"method", r.Method)
			response.Unauthorized(w, "missing Authorization header")
			return
		}

		apiKey, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			slog.WarnContext(r.Context(), "authentication failed: invalid Authorization header format",
				"path", r.URL.Path,
				"method", r.Method)
			response.Unauthorized(w, "invalid Authorization header format, expected: Bearer <token>")
			return
		}

		validatedKey, err := a.authenticator.ValidateAPIKey(r.Context(), apiKey)
		if err != nil {
			if domain.IsAuthenticationError(err) {
				slog.WarnContext(r.Context(), "authentication failed: invalid or expired API key",
					"path", r.URL.Path,
					"method", r.Method)
			} else {
				slog.ErrorContext(r.Context(), "authentication failed: unexpected error",
					"path", r.URL.Path,
					"method", r.Method,
					"error", err)
			}
			response.Unauthorized(w, "invalid or expired API key")
			return
		}

		slog.DebugContext(r.Context(), "authentication successful",
			"path", r.URL.Path,
			"method", r.Method,
			"key_id", validatedKey.ID,
			"profile_id", validatedKey.ProfileID)

		next.ServeHTTP(w, r.WithContext(WithProfileID(r.Context(), validatedKey.ProfileID)))
	})
}
