package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_TTL", "CSRF_HEADER", "CSRF_COOKIE", "AUTH_COOKIE_SAMESITE", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.JWTTTL != "5m" {
		t.Fatalf("jwt ttl = %q, want 5m", cfg.Auth.JWTTTL)
	}
	if cfg.CSRF.HeaderName != "X-CSRF-Token" {
		t.Fatalf("csrf header = %q", cfg.CSRF.HeaderName)
	}
	if cfg.Auth.CookieSameSite != "none" {
		t.Fatalf("samesite = %q, want none", cfg.Auth.CookieSameSite)
	}
	if !reflect.DeepEqual(cfg.Server.AllowedOrigins, []string{"http://localhost:3000"}) {
		t.Fatalf("origins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_KEY", "jwt-secret")
	t.Setenv("CSRF_KEY", "csrf-secret")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()
	if cfg.Auth.JWTSecret != "jwt-secret" || cfg.CSRF.Secret != "csrf-secret" {
		t.Fatalf("secrets not loaded: %+v %+v", cfg.Auth, cfg.CSRF)
	}
	if cfg.Auth.JWTTTL != "30m" {
		t.Fatalf("jwt ttl = %q, want 30m", cfg.Auth.JWTTTL)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Server.AllowedOrigins, want) {
		t.Fatalf("origins = %v, want %v", cfg.Server.AllowedOrigins, want)
	}
}
