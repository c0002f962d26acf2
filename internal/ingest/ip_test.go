// AngelaMos | 2026
// ip_test.go

package ingest

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		realIP     string
		remoteAddr string
		want       string
	}{
		{
			name:       "forwarded-for wins",
			xff:        "203.0.113.7, 10.0.0.1",
			realIP:     "198.51.100.2",
			remoteAddr: "10.0.0.1:34567",
			want:       "203.0.113.7",
		},
		{
			name:       "real-ip when no forwarded-for",
			realIP:     "198.51.100.2",
			remoteAddr: "10.0.0.1:34567",
			want:       "198.51.100.2",
		},
		{
			name:       "remote addr without port noise",
			remoteAddr: "192.0.2.9:51234",
			want:       "192.0.2.9",
		},
		{
			name:       "ipv6 mapped prefix stripped",
			xff:        "::ffff:203.0.113.7",
			remoteAddr: "10.0.0.1:80",
			want:       "203.0.113.7",
		},
		{
			name:       "nothing resolves falls back to loopback",
			remoteAddr: "",
			want:       loopbackIP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsLoopback(t *testing.T) {
	for _, ip := range []string{"", "127.0.0.1", "::1", "localhost"} {
		if !isLoopback(ip) {
			t.Errorf("isLoopback(%q) = false, want true", ip)
		}
	}
	if isLoopback("203.0.113.7") {
		t.Error("public address reported as loopback")
	}
}
