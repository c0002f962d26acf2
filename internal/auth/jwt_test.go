// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJWKSPublishesVerificationKey(t *testing.T) {
	manager := newTestJWT(t)

	key := manager.GetPublicKey()
	if key == nil {
		t.Fatal("no public key loaded")
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil)
	manager.GetJWKSHandler()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Keys []json.RawMessage `json:"keys"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode jwks: %v", err)
	}
	if len(body.Keys) != 1 {
		t.Errorf("published %d keys, want 1", len(body.Keys))
	}
}
