package jwt

import (
	"context"
	"net/http"
	"strings"

	"github.com/Talibis/jug-classic/internal/pkg/errs"
	"github.com/Talibis/jug-classic/internal/pkg/resp"
)

// contextKey is a private type for context keys, preventing collisions with
// other packages.
type contextKey string

const (
	// ContextEmailKey stores the validated account email in the request context.
	ContextEmailKey contextKey = "auth_email"
)

// BearerToken extracts the raw token from the Authorization header.
// The second return reports whether a well-formed "Bearer <token>" header
// was present.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// RequireAuth returns an HTTP middleware that validates the bearer token and
// injects the account email into the request context. Requests without a
// valid token are rejected with 401 before reaching the handler.
func RequireAuth(tokens *TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := BearerToken(r)
			if !ok {
				resp.RespondError(w, r, errs.Authentication("Missing bearer token."))
				return
			}

			email, err := tokens.Validate(tokenString)
			if err != nil {
				resp.RespondError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextEmailKey, email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext returns the authenticated account email placed by
// RequireAuth, or "" when the request is anonymous.
func EmailFromContext(r *http.Request) string {
	email, ok := r.Context().Value(ContextEmailKey).(string)
	if !ok {
		return ""
	}
	return email
}
