package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("BACKEND_URL", "")
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" || cfg.Backend.PublicURL != "http://localhost:8787" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if !cfg.Log.Development || cfg.Session.Secure {
		t.Fatalf("expected development defaults, got %+v", cfg)
	}
}

func TestFromEnv_NoDefaultAdminToken(t *testing.T) {
	t.Setenv("ADMIN_API_TOKEN", "")
	if got := FromEnv().DevBackend.AdminToken; got != "" {
		t.Fatalf("admin token must be configured explicitly, got %q", got)
	}
	t.Setenv("ADMIN_API_TOKEN", "s3cret")
	if got := FromEnv().DevBackend.AdminToken; got != "s3cret" {
		t.Fatalf("expected configured token, got %q", got)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ORIGINS", "https://shop.example, https://admin.example ,")
	t.Setenv("SESSION_SECURE", "false")
	cfg := FromEnv()
	if cfg.HTTPAddr != ":9000" || cfg.Backend.Timeout != 3*time.Second {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://admin.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.Log.Development || cfg.Session.Secure {
		t.Fatalf("unexpected env flags %+v", cfg)
	}
}

func TestFromEnv_BadDurationKeepsDefault(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "soon")
	if got := FromEnv().ShutdownTimeout; got != 10*time.Second {
		t.Fatalf("expected default timeout, got %s", got)
	}
}
