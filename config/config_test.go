package config

import (
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 || cfg.DBType != "sqlite" || cfg.AdminRole != "Admin" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.SessionTTLHours != 24 {
		t.Errorf("expected 24h session TTL default, got %d", cfg.SessionTTLHours)
	}
}

func TestLoadConfigReadsSecretsFromEnv(t *testing.T) {
	t.Setenv("BYPASS_SECRET", "deploy-secret")
	t.Setenv("SESSION_SECRET", "signing-key")
	t.Setenv("LOGIN_URL", "/login")
	t.Setenv("ADMIN_ROLE", "Operator")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BypassSecret != "deploy-secret" {
		t.Errorf("BYPASS_SECRET not loaded: got %q", cfg.BypassSecret)
	}
	if cfg.SessionSecret != "signing-key" {
		t.Errorf("SESSION_SECRET not loaded: got %q", cfg.SessionSecret)
	}
	if cfg.LoginURL != "/login" {
		t.Errorf("LOGIN_URL not loaded: got %q", cfg.LoginURL)
	}
	if cfg.AdminRole != "Operator" {
		t.Errorf("ADMIN_ROLE not loaded: got %q", cfg.AdminRole)
	}
}
