package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("missing config must not be an error: %v", err)
	}
	if cfg.Port != 2335 {
		t.Errorf("port = %d, want 2335", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("default env must be development")
	}
	if cfg.RedisURL == "" {
		t.Error("redis url default missing")
	}
	if !strings.Contains(cfg.DSN, "groupmirror") {
		t.Errorf("default DSN should target the groupmirror database, got %q", cfg.DSN)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := `
port: 9000
env: production
jwt_secret: abc
admin_password: hunter2
database:
  host: db.internal
  user: mirror
  password: pw
  name: mirror_prod
allowed_origins:
  - https://admin.example.com
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Port)
	}
	if cfg.IsDev() {
		t.Error("production config must not report dev mode")
	}
	if cfg.AdminPassword != "hunter2" {
		t.Errorf("admin password = %q", cfg.AdminPassword)
	}
	if !strings.Contains(cfg.DSN, "mirror:pw@tcp(db.internal:3306)/mirror_prod") {
		t.Errorf("DSN not assembled from database block: %q", cfg.DSN)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://admin.example.com" {
		t.Errorf("allowed origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadExplicitDSNWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := `
dsn: "user:pass@tcp(127.0.0.1:3307)/other?parseTime=true"
database:
  name: ignored
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(cfg.DSN, "/other") {
		t.Errorf("explicit DSN must override the database block, got %q", cfg.DSN)
	}
}

func TestDSNValueDefaults(t *testing.T) {
	dsn := DatabaseRuntimeConfig{}.DSNValue()
	for _, want := range []string{"root:password@tcp(127.0.0.1:3306)/groupmirror", "charset=utf8mb4", "parseTime=true"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN %q missing %q", dsn, want)
		}
	}
}
