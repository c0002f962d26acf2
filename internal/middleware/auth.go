// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/carterperez-dev/leadtrack/internal/core"
)

const IdentityKey contextKey = "identity"

// Identity is the authenticated caller: the token's subject resolved
// against the user store, with permissions derived from the role.
type Identity struct {
	UserID      string
	Username    string
	Email       string
	Role        string
	Permissions map[string]bool
}

func (i *Identity) Allows(permission string) bool {
	return i != nil && i.Permissions[permission]
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == "admin"
}

// IdentityVerifier validates a bearer token and resolves it to a live,
// active account. Implementations reject tokens whose user is missing
// or deactivated.
type IdentityVerifier interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

func Authenticator(verifier IdentityVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			identity, err := verifier.Authenticate(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission gates a route on a derived permission flag
// (viewSubmissions, exportData, manageUsers, viewAnalytics).
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())

			if identity == nil {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if !identity.Allows(permission) {
				core.JSONError(
					w,
					core.ForbiddenError("permission required: "+permission),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())

		if identity == nil {
			core.JSONError(w, core.UnauthorizedError("authentication required"))
			return
		}

		if !identity.IsAdmin() {
			core.JSONError(w, core.ForbiddenError("admin access required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrUnauthorized):
		core.JSONError(w, core.UnauthorizedError("invalid or inactive user"))
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.UserID
	}
	return ""
}
