package config

import (
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("ACCESS_TOKEN_TTL", "2m")
	t.Setenv("REFRESH_TOKEN_TTL", "3h")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("PASSWORD_PEPPER", "pepper")
	t.Setenv("JWT_ISSUER", "my-svc")
	t.Setenv("JWT_AUDIENCE", "my-aud")
	t.Setenv("ALLOWED_ORIGINS", `["https://app.example.com"]`)
	t.Setenv("ALLOW_CREDENTIALS", "true")
	t.Setenv("MAIL_WORKERS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 2*time.Minute {
		t.Fatalf("AccessTokenTTL want 2m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 3*time.Hour {
		t.Fatalf("RefreshTokenTTL want 3h, got %v", cfg.RefreshTokenTTL)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Fatalf("AllowedOrigins: %v", cfg.AllowedOrigins)
	}
	if !cfg.AllowCredentials {
		t.Fatal("AllowCredentials want true")
	}
	if cfg.MailWorkers != 4 {
		t.Fatalf("MailWorkers want 4, got %d", cfg.MailWorkers)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("AccessTokenTTL default: %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 720*time.Hour {
		t.Fatalf("RefreshTokenTTL default: %v", cfg.RefreshTokenTTL)
	}
	if cfg.MailTimeout != 5*time.Second {
		t.Fatalf("MailTimeout default: %v", cfg.MailTimeout)
	}
	if cfg.MailQueue != "queue:mail" || cfg.HTTPAddress != ":8080" {
		t.Fatalf("defaults: %+v", cfg)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	// всё, кроме JWT_SECRET_KEY
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing JWT_SECRET_KEY, got nil")
	}
}

func TestLoad_AccessMustBeShorter(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("ACCESS_TOKEN_TTL", "2h")
	t.Setenv("REFRESH_TOKEN_TTL", "1h")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for access TTL >= refresh TTL")
	}
}

func TestParseOrigins_CommaList(t *testing.T) {
	got, err := parseOrigins("https://a.example, https://b.example ,")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1] != "https://b.example" {
		t.Fatalf("got %v", got)
	}
}

func TestLoadWorker_NoRequiredKeys(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("MAILGUN_DOMAIN", "mg.example.com")

	cfg, err := LoadWorker()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MailgunDomain != "mg.example.com" {
		t.Fatalf("MailgunDomain: %q", cfg.MailgunDomain)
	}
	if cfg.MetricsAddress != ":9091" || cfg.MailQueue != "queue:mail" {
		t.Fatalf("defaults: %+v", cfg)
	}
}
