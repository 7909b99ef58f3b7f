package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	mw := Security(DefaultSecurityConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/business", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	headers := map[string]string{
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"Content-Security-Policy":   apiCSP,
		"Cache-Control":             "no-store",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains; preload",
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("%s: expected %q, got %q", name, want, got)
		}
	}
}

func TestSecurityHeadersForPages(t *testing.T) {
	cfg := DefaultSecurityConfig()
	cfg.ServesHTML = true
	cfg.IsDevelopment = true
	mw := Security(cfg)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "img-src 'self' data:") {
		t.Fatalf("page CSP must allow data: images, got %q", csp)
	}
	if rec.Header().Get("Cache-Control") == "no-store" {
		t.Fatal("pages should not force no-store")
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS should be disabled in development")
	}
}

func TestMaxBodySize(t *testing.T) {
	mw := MaxBodySize(16)

	req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(strings.Repeat("a", 64)))
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader("short"))
	rec = httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
