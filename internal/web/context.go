package web

import (
	"net"
	"net/http"

	"github.com/JonMunkholm/vtable/internal/core"
)

// withClientIP stores the client address on the request context so preset
// writes can log who made them.
func withClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := core.ContextWithClientIP(r.Context(), clientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP returns r.RemoteAddr without its port. TrustedRealIP has already
// replaced it with the forwarded address where appropriate.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
