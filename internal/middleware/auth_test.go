// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carterperez-dev/leadtrack/internal/core"
)

type stubVerifier struct {
	identity *Identity
	err      error
}

func (s *stubVerifier) Authenticate(
	context.Context,
	string,
) (*Identity, error) {
	return s.identity, s.err
}

func analystIdentity() *Identity {
	return &Identity{
		UserID:   "u-1",
		Username: "analyst",
		Role:     "analyst",
		Permissions: map[string]bool{
			"viewSubmissions": true,
			"viewAnalytics":   true,
		},
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticator(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
	}{
		{
			name:       "missing header",
			header:     "",
			verifier:   &stubVerifier{identity: analystIdentity()},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			header:     "Token abc",
			verifier:   &stubVerifier{identity: analystIdentity()},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			header:     "Bearer good-token",
			verifier:   &stubVerifier{identity: analystIdentity()},
			wantStatus: http.StatusOK,
		},
		{
			name:   "expired token",
			header: "Bearer stale",
			verifier: &stubVerifier{
				err: fmt.Errorf("verify: %w", core.ErrTokenExpired),
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "deactivated user",
			header: "Bearer good-token",
			verifier: &stubVerifier{
				err: fmt.Errorf("disabled: %w", core.ErrUnauthorized),
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "garbage token",
			header: "Bearer nonsense",
			verifier: &stubVerifier{
				err: fmt.Errorf("verify: %w", core.ErrTokenInvalid),
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Authenticator(tt.verifier)(okHandler())

			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func withIdentity(r *http.Request, identity *Identity) *http.Request {
	ctx := context.WithValue(r.Context(), IdentityKey, identity)
	return r.WithContext(ctx)
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name       string
		identity   *Identity
		permission string
		wantStatus int
	}{
		{
			name:       "analyst can view submissions",
			identity:   analystIdentity(),
			permission: "viewSubmissions",
			wantStatus: http.StatusOK,
		},
		{
			name:       "analyst cannot export",
			identity:   analystIdentity(),
			permission: "exportData",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no identity is unauthorized",
			identity:   nil,
			permission: "viewSubmissions",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequirePermission(tt.permission)(okHandler())

			r := httptest.NewRequest("GET", "/", nil)
			if tt.identity != nil {
				r = withIdentity(r, tt.identity)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	admin := &Identity{UserID: "u-2", Role: "admin"}

	tests := []struct {
		name       string
		identity   *Identity
		wantStatus int
	}{
		{"admin passes", admin, http.StatusOK},
		{"analyst forbidden", analystIdentity(), http.StatusForbidden},
		{"anonymous unauthorized", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireAdmin(okHandler())

			r := httptest.NewRequest("GET", "/", nil)
			if tt.identity != nil {
				r = withIdentity(r, tt.identity)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
		{"", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := ExtractToken(r); got != tt.want {
			t.Errorf("ExtractToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
