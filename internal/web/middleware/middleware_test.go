package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JonMunkholm/vtable/internal/config"
	"github.com/JonMunkholm/vtable/internal/logging"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.RemoteAddr))
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		require    bool
		keys       []string
		header     string
		wantStatus int
	}{
		{"disabled", false, nil, "", http.StatusOK},
		{"missing key", true, []string{"secret"}, "", http.StatusUnauthorized},
		{"wrong key", true, []string{"secret"}, "nope", http.StatusForbidden},
		{"valid key", true, []string{"other", "secret"}, "secret", http.StatusOK},
		{"no keys configured", true, nil, "secret", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.SecurityConfig{RequireAPIKey: tt.require, APIKeys: tt.keys}
			h := APIKeyAuth(cfg)(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(http.MethodPost, "/api/presets", nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				var body authError
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if body.Code != "AUTH001" {
					t.Errorf("code = %q, want AUTH001", body.Code)
				}
			}
		})
	}
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		realIP  string
		xff     string
		want    string
	}{
		{"no proxies configured", nil, "10.0.0.1:1234", "1.2.3.4", "", "10.0.0.1:1234"},
		{"trusted cidr real ip", []string{"10.0.0.0/8"}, "10.0.0.1:1234", "1.2.3.4", "", "1.2.3.4"},
		{"trusted bare ip", []string{"10.0.0.1"}, "10.0.0.1:1234", "1.2.3.4", "", "1.2.3.4"},
		{"untrusted source", []string{"10.0.0.0/8"}, "192.168.1.5:1234", "1.2.3.4", "", "192.168.1.5:1234"},
		{"forwarded for first hop", []string{"10.0.0.0/8"}, "10.0.0.1:1234", "", "5.6.7.8, 10.0.0.2", "5.6.7.8"},
		{"invalid real ip kept", []string{"10.0.0.0/8"}, "10.0.0.1:1234", "not-an-ip", "", "10.0.0.1:1234"},
		{"invalid cidr skipped", []string{"bogus", "10.0.0.0/8"}, "10.0.0.1:1234", "1.2.3.4", "", "1.2.3.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogger_CapturesStatus(t *testing.T) {
	var seen *responseWriter
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK) // ignored
		w.Write([]byte("short"))
		seen = w.(*responseWriter)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("recorder status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if seen.status != http.StatusTeapot || seen.bytes != 5 {
		t.Errorf("captured status=%d bytes=%d, want 418 and 5", seen.status, seen.bytes)
	}
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	header http.Header
	status int
}

func (b *brokenWriter) Header() http.Header { return b.header }

func (b *brokenWriter) WriteHeader(status int) { b.status = status }

func (b *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestAPIKeyAuth_LogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, "debug", "text"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := &config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"secret"}}
	h := APIKeyAuth(cfg)(http.HandlerFunc(okHandler))

	w := &brokenWriter{header: http.Header{}}
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/presets", nil))

	if w.status != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.status, http.StatusUnauthorized)
	}
	out := buf.String()
	if !strings.Contains(out, "auth: encode response") {
		t.Fatalf("encode failure not logged:\n%s", out)
	}
	if !strings.Contains(out, "connection reset") {
		t.Errorf("log missing write error:\n%s", out)
	}
}
