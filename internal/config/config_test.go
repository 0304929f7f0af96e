package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTAccessTTL != "60m" {
		t.Errorf("JWTAccessTTL = %q, want %q", cfg.JWTAccessTTL, "60m")
	}
	if cfg.JWTRefreshTTL != "168h" {
		t.Errorf("JWTRefreshTTL = %q, want %q", cfg.JWTRefreshTTL, "168h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("BCRYPT_COST", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "test-secret")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("BCRYPT_COST", "99")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for BCRYPT_COST out of range")
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is empty in production")
	}
}

func TestConfig_TTLParsing(t *testing.T) {
	cfg := &Config{JWTAccessTTL: "30m", JWTRefreshTTL: "72h"}
	if got := cfg.AccessTTL(); got != 30*time.Minute {
		t.Errorf("AccessTTL = %v, want 30m", got)
	}
	if got := cfg.RefreshTTL(); got != 72*time.Hour {
		t.Errorf("RefreshTTL = %v, want 72h", got)
	}

	cfg = &Config{JWTAccessTTL: "garbage", JWTRefreshTTL: "-5m"}
	if got := cfg.AccessTTL(); got != 60*time.Minute {
		t.Errorf("AccessTTL fallback = %v, want 60m", got)
	}
	if got := cfg.RefreshTTL(); got != 168*time.Hour {
		t.Errorf("RefreshTTL fallback = %v, want 168h", got)
	}
}
