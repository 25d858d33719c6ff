package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Errorf("env = %q", cfg.Env)
	}
	if cfg.ObjectStoreType != "local" {
		t.Errorf("store type = %q", cfg.ObjectStoreType)
	}
	if cfg.ExportURLTTLSecs != 3600 {
		t.Errorf("export ttl = %d", cfg.ExportURLTTLSecs)
	}
	if len(cfg.CORSAllowOrigin) == 0 {
		t.Error("expected a default CORS origin")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ENV", "PRODUCTION")
	t.Setenv("OBJECT_STORE", "Spaces")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("EXPORT_URL_TTL_SECONDS", "120")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("env = %q", cfg.Env)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Errorf("store type = %q", cfg.ObjectStoreType)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.example" {
		t.Errorf("origins = %v", cfg.CORSAllowOrigin)
	}
	if cfg.ExportURLTTLSecs != 120 {
		t.Errorf("export ttl = %d", cfg.ExportURLTTLSecs)
	}
}

func TestLoadIgnoresBadTTL(t *testing.T) {
	t.Setenv("EXPORT_URL_TTL_SECONDS", "not-a-number")
	if cfg := Load(); cfg.ExportURLTTLSecs != 3600 {
		t.Errorf("export ttl = %d, want default", cfg.ExportURLTTLSecs)
	}
}
