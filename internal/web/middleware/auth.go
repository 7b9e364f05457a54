package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/vtable/internal/config"
	"github.com/JonMunkholm/vtable/internal/logging"
)

// authError is the JSON body written for rejected preset writes.
type authError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// APIKeyAuth returns middleware that checks the X-API-Key header against the
// configured keys. With RequireAPIKey off every request passes. With it on
// and no keys configured, every request is rejected.
func APIKeyAuth(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.RequireAPIKey {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := r.Header.Get("X-API-Key")
			switch {
			case apiKey == "":
				reject(w, r, http.StatusUnauthorized, "missing API key")
			case !isValidAPIKey(apiKey, cfg.APIKeys):
				reject(w, r, http.StatusForbidden, "invalid API key")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, status int, reason string) {
	logger := logging.FromContext(r.Context())
	logger.Warn("auth: "+reason,
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(authError{Error: reason, Code: "AUTH001"}); err != nil {
		logger.Error("auth: encode response", "error", err)
	}
}

// isValidAPIKey compares against every configured key in constant time so
// the response time does not reveal which key, if any, matched.
func isValidAPIKey(key string, validKeys []string) bool {
	valid := 0
	for _, validKey := range validKeys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(validKey))
	}
	return valid == 1
}
