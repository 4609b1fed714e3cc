package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "myjob.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != DefaultBackendURL {
		t.Fatalf("BackendURL=%q, want %q", cfg.BackendURL, DefaultBackendURL)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Fatalf("RequestTimeout=%v, want %v", cfg.RequestTimeout, DefaultRequestTimeout)
	}
}

func TestYAMLFile(t *testing.T) {
	path := writeConfig(t, "backend_url: https://api.example.com\ntimeout_seconds: 5\ndb_path: /tmp/jobs.db\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != "https://api.example.com" {
		t.Fatalf("BackendURL=%q", cfg.BackendURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout=%v", cfg.RequestTimeout)
	}
	if cfg.DBPath != "/tmp/jobs.db" {
		t.Fatalf("DBPath=%q", cfg.DBPath)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "backend_url: https://file.example.com\n")
	t.Setenv("MYJOB_BACKEND_URL", "https://env.example.com")
	t.Setenv("MYJOB_TIMEOUT_SECONDS", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != "https://env.example.com" {
		t.Fatalf("BackendURL=%q, env must win", cfg.BackendURL)
	}
	if cfg.RequestTimeout != 7*time.Second {
		t.Fatalf("RequestTimeout=%v", cfg.RequestTimeout)
	}
}

func TestInvalidTimeoutEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	t.Setenv("MYJOB_TIMEOUT_SECONDS", "soon")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for non-numeric timeout")
	}
}
