// AngelaMos | 2026
// ip.go

package ingest

import (
	"net"
	"net/http"
	"strings"
)

const loopbackIP = "127.0.0.1"

// ClientIP resolves the submitting client's address. Forwarded headers
// win over the raw connection address since the service normally sits
// behind a proxy.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := stripIPv6Prefix(strings.TrimSpace(first)); ip != "" {
			return ip
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		if ip := stripIPv6Prefix(strings.TrimSpace(realIP)); ip != "" {
			return ip
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if ip := stripIPv6Prefix(host); ip != "" {
		return ip
	}

	return loopbackIP
}

// stripIPv6Prefix handles "::ffff:1.2.3.4" mapped addresses and
// "host:port" remote addrs by taking everything after the last colon.
func stripIPv6Prefix(addr string) string {
	if idx := strings.LastIndex(addr, ":"); idx >= 0 {
		return addr[idx+1:]
	}
	return addr
}

func isLoopback(ip string) bool {
	return ip == "" || ip == loopbackIP || ip == "::1" || ip == "localhost"
}
