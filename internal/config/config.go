package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the settings required to boot the loglens service.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Rules   RulesConfig   `yaml:"rules"`
	Limits  LimitsConfig  `yaml:"limits"`
	Cache   CacheConfig   `yaml:"cache"`
	Usage   UsageConfig   `yaml:"usage"`
}

// ServerConfig controls HTTP listener behaviour.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	MetricsAddress  string        `yaml:"metricsAddress"`
	GracefulTimeout time.Duration `yaml:"gracefulTimeout"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// RulesConfig points at an optional supplemental YAML rule pack merged with
// the built-in library at startup.
type RulesConfig struct {
	Path string `yaml:"path"`
}

// LimitsConfig holds the request-size limits enforced at the API boundary,
// never inside the engine.
type LimitsConfig struct {
	BatchMaxLines    int `yaml:"batchMaxLines"`
	IncidentMaxLines int `yaml:"incidentMaxLines"`
}

// CacheConfig controls the optional result cache. The engine is
// deterministic, so identical lines may be served from cache safely.
type CacheConfig struct {
	// Backend selects "none", "memory", or "valkey".
	Backend      string        `yaml:"backend"`
	TTL          time.Duration `yaml:"ttl"`
	Addr         string        `yaml:"addr"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	DialTimeout  time.Duration `yaml:"dialTimeout"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	TLS          bool          `yaml:"tls"`
}

// UsageConfig configures the fire-and-forget usage-reporting collaborator.
// Disabled when Endpoint is empty.
type UsageConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Load initialises Config from a YAML file and environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("LOGLENS_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":8080",
			MetricsAddress:  ":2112",
			GracefulTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", JSON: false},
		Limits: LimitsConfig{
			BatchMaxLines:    50,
			IncidentMaxLines: 100,
		},
		Cache: CacheConfig{
			Backend:      "none",
			TTL:          5 * time.Minute,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		},
		Usage: UsageConfig{Timeout: 2 * time.Second},
	}
}

func validate(cfg *Config) error {
	switch cfg.Cache.Backend {
	case "", "none", "memory", "valkey":
	default:
		return fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
	if cfg.Limits.BatchMaxLines <= 0 {
		return fmt.Errorf("limits.batchMaxLines must be positive")
	}
	if cfg.Limits.IncidentMaxLines <= 0 {
		return fmt.Errorf("limits.incidentMaxLines must be positive")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOGLENS_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("LOGLENS_METRICS_ADDRESS"); v != "" {
		cfg.Server.MetricsAddress = v
	}
	if v := os.Getenv("LOGLENS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOGLENS_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
	if v := os.Getenv("LOGLENS_RULES_PATH"); v != "" {
		cfg.Rules.Path = v
	}
	if v := os.Getenv("LOGLENS_BATCH_MAX_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.BatchMaxLines = n
		}
	}
	if v := os.Getenv("LOGLENS_INCIDENT_MAX_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.IncidentMaxLines = n
		}
	}
	if v := os.Getenv("LOGLENS_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("LOGLENS_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = d
		}
	}
	if v := os.Getenv("LOGLENS_CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("LOGLENS_CACHE_USERNAME"); v != "" {
		cfg.Cache.Username = v
	}
	if v := os.Getenv("LOGLENS_CACHE_PASSWORD"); v != "" {
		cfg.Cache.Password = v
	}
	if v := os.Getenv("LOGLENS_CACHE_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Cache.DB = db
		}
	}
	if v := os.Getenv("LOGLENS_CACHE_TLS"); strings.EqualFold(v, "true") || v == "1" {
		cfg.Cache.TLS = true
	}
	if v := os.Getenv("LOGLENS_USAGE_ENDPOINT"); v != "" {
		cfg.Usage.Endpoint = v
	}
	if v := os.Getenv("LOGLENS_USAGE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Usage.Timeout = d
		}
	}
}
