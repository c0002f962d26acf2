// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestKeyByUser(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/analytics/export/csv", nil)
	ctx := context.WithValue(r.Context(), IdentityKey, &Identity{UserID: "u-42"})
	r = r.WithContext(ctx)

	if key := KeyByUser(r); key != "ratelimit:user:u-42" {
		t.Errorf("key = %q, want ratelimit:user:u-42", key)
	}
}

func TestKeyByUserFallsBackToIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/submissions/", nil)
	r.Header.Set("X-Real-IP", "203.0.113.9")

	if key := KeyByUser(r); key != "ratelimit:ip:203.0.113.9" {
		t.Errorf("key = %q, want ratelimit:ip:203.0.113.9", key)
	}
}
