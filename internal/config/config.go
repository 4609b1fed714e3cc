// Package config resolves CLI configuration from .env, an optional YAML
// file, environment variables, and defaults, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBackendURL     = "http://localhost:8000"
	DefaultRequestTimeout = 30 * time.Second
)

type Config struct {
	BackendURL     string        `yaml:"backend_url"`
	DBPath         string        `yaml:"db_path"`
	RequestTimeout time.Duration `yaml:"-"`

	// Raw seconds value from YAML; converted into RequestTimeout on load.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// DefaultConfigPath returns ~/.myjob.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".myjob.yaml"), nil
}

// Load reads configuration: .env, then the YAML file (if present), then
// environment variable overrides, then defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file is fine; env + defaults cover everything.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if v := os.Getenv("MYJOB_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("MYJOB_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("MYJOB_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MYJOB_TIMEOUT_SECONDS: %w", err)
		}
		cfg.TimeoutSeconds = n
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	if cfg.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	} else {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	return cfg, nil
}
