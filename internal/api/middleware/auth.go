package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Harshitk-cp/notely/internal/domain"
)

type contextKey string

const (
	principalContextKey contextKey = "principal"
	captureContextKey   contextKey = "principal_capture"

	authFailureContextKey contextKey = "auth_failure"
)

// TokenVerifier validates a session token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

// PrincipalFromContext returns the identity attached by Authenticate.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(domain.Principal)
	return p, ok
}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// Authenticate returns a guard that requires a valid bearer token and, when
// roles is non-empty, one of the listed roles. Build one per route group with
// the roles that group admits.
func Authenticate(tokens TokenVerifier, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				reject(w, r, http.StatusUnauthorized, "no token provided")
				return
			}

			p, err := tokens.Verify(token)
			if err != nil {
				reject(w, r, http.StatusUnauthorized, "invalid token")
				return
			}

			if c, ok := r.Context().Value(captureContextKey).(*principalCapture); ok {
				c.userID = p.UserID.String()
				c.tenantID = p.TenantID.String()
				c.role = string(p.Role)
			}

			if !p.HasRole(roles...) {
				reject(w, r, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func withPrincipalCapture(ctx context.Context, c *principalCapture) context.Context {
	return context.WithValue(ctx, captureContextKey, c)
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func reject(w http.ResponseWriter, r *http.Request, status int, msg string) {
	markAuthFailure(r.Context())
	writeError(w, status, msg)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
