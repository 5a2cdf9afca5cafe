package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loglens.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("address = %q", cfg.Server.Address)
	}
	if cfg.Server.MetricsAddress != ":2112" {
		t.Errorf("metricsAddress = %q", cfg.Server.MetricsAddress)
	}
	if cfg.Limits.BatchMaxLines != 50 || cfg.Limits.IncidentMaxLines != 100 {
		t.Errorf("limits = %+v", cfg.Limits)
	}
	if cfg.Cache.Backend != "none" || cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.JSON {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":9090"
  gracefulTimeout: 30s
logging:
  level: debug
  json: true
limits:
  batchMaxLines: 10
cache:
  backend: memory
  ttl: 1m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("address = %q", cfg.Server.Address)
	}
	if cfg.Server.GracefulTimeout != 30*time.Second {
		t.Errorf("gracefulTimeout = %v", cfg.Server.GracefulTimeout)
	}
	if !cfg.Logging.JSON || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Limits.BatchMaxLines != 10 {
		t.Errorf("batchMaxLines = %d", cfg.Limits.BatchMaxLines)
	}
	// Values absent from the file keep their defaults.
	if cfg.Limits.IncidentMaxLines != 100 {
		t.Errorf("incidentMaxLines = %d", cfg.Limits.IncidentMaxLines)
	}
	if cfg.Cache.Backend != "memory" || cfg.Cache.TTL != time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LOGLENS_SERVER_ADDRESS", ":7070")
	t.Setenv("LOGLENS_LOG_FORMAT", "json")
	t.Setenv("LOGLENS_CACHE_BACKEND", "VALKEY")
	t.Setenv("LOGLENS_CACHE_ADDR", "valkey:6379")
	t.Setenv("LOGLENS_BATCH_MAX_LINES", "25")
	t.Setenv("LOGLENS_USAGE_ENDPOINT", "http://usage.internal/records")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":7070" {
		t.Errorf("address = %q", cfg.Server.Address)
	}
	if !cfg.Logging.JSON {
		t.Error("LOGLENS_LOG_FORMAT=json not applied")
	}
	if cfg.Cache.Backend != "valkey" {
		t.Errorf("backend = %q (must be lowercased)", cfg.Cache.Backend)
	}
	if cfg.Cache.Addr != "valkey:6379" {
		t.Errorf("addr = %q", cfg.Cache.Addr)
	}
	if cfg.Limits.BatchMaxLines != 25 {
		t.Errorf("batchMaxLines = %d", cfg.Limits.BatchMaxLines)
	}
	if cfg.Usage.Endpoint != "http://usage.internal/records" {
		t.Errorf("usage endpoint = %q", cfg.Usage.Endpoint)
	}
}

func TestLoadEnvOverridesBeatFile(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":9090"
`)
	t.Setenv("LOGLENS_SERVER_ADDRESS", ":6060")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":6060" {
		t.Errorf("address = %q, env must win", cfg.Server.Address)
	}
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: warn
`)
	t.Setenv("LOGLENS_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	if _, err := Load(writeConfig(t, "cache:\n  backend: memcached\n")); err == nil {
		t.Error("unknown cache backend must fail")
	}
	if _, err := Load(writeConfig(t, "limits:\n  batchMaxLines: -1\n")); err == nil {
		t.Error("negative batch limit must fail")
	}
}
