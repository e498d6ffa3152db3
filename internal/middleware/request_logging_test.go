package middleware

import (
	"net/http/httptest"
	"testing"
)

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/projects", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.2")
	if ip := getClientIP(r); ip != "203.0.113.9" {
		t.Errorf("X-Forwarded-For: got %q", ip)
	}

	r = httptest.NewRequest("GET", "/api/projects", nil)
	r.Header.Set("X-Real-IP", "198.51.100.4")
	if ip := getClientIP(r); ip != "198.51.100.4" {
		t.Errorf("X-Real-IP: got %q", ip)
	}

	r = httptest.NewRequest("GET", "/api/projects", nil)
	if ip := getClientIP(r); ip == "" {
		t.Error("RemoteAddr fallback returned empty string")
	}
}

func TestShouldSkipLogging(t *testing.T) {
	for _, p := range []string{"/health", "/metrics", "/favicon.ico", "/static/app.css"} {
		if !shouldSkipLogging(p) {
			t.Errorf("%s should be skipped", p)
		}
	}
	for _, p := range []string{"/api/projects", "/auth/login"} {
		if shouldSkipLogging(p) {
			t.Errorf("%s should be logged", p)
		}
	}
}
