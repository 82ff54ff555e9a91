package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newCORSEcho(cfg CORSConfig) *echo.Echo {
	e := echo.New()
	e.Use(CORS(cfg))
	e.GET("/api/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func TestCORSPreflightDefaults(t *testing.T) {
	e := newCORSEcho(CORSConfig{MaxAge: 600})

	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	req.Header.Set(echo.HeaderOrigin, "http://dashboard.local")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d, want 204", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "http://dashboard.local" {
		t.Fatalf("allow-origin %q", got)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowMethods); got != "GET, OPTIONS" {
		t.Fatalf("allow-methods %q, want read-only defaults", got)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlMaxAge); got != "600" {
		t.Fatalf("max-age %q", got)
	}
}

func TestCORSDisallowedOriginPassesThrough(t *testing.T) {
	e := newCORSEcho(CORSConfig{AllowOrigins: []string{"http://dashboard.local"}})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(echo.HeaderOrigin, "http://evil.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "" {
		t.Fatalf("unexpected allow-origin %q for a disallowed origin", got)
	}
}
