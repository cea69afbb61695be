package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hamed0406/pinglight/internal/domain"
)

type Config struct {
	PingAddress            string `yaml:"ping_address" validate:"required,hostname_rfc1123|ip"`
	PollingIntervalSeconds int    `yaml:"polling_interval_seconds" validate:"min=1"`
	PingCount              int    `yaml:"ping_count" validate:"min=1,max=100"`
	ProbeTimeoutSeconds    int    `yaml:"probe_timeout_seconds" validate:"min=0"` // 0 derives from ping_count
	ProbeRetries           int    `yaml:"probe_retries" validate:"min=0,max=10"`
	RetryBackoffMS         int    `yaml:"retry_backoff_ms" validate:"min=0"`
	ListenAddr             string `yaml:"listen_addr"` // empty disables the HTTP API
	LogDir                 string `yaml:"log_dir" validate:"required"`
	LogLevel               string `yaml:"log_level" validate:"oneof=debug info warn error"`
	SlackWebhook           string `yaml:"slack_webhook" validate:"omitempty,url"`

	// HTTP API access; empty key lists leave the API open (local use)
	PublicAPIKeys  []string `yaml:"public_api_keys"`
	AdminAPIKeys   []string `yaml:"admin_api_keys"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RequestsPerMin int      `yaml:"requests_per_min" validate:"min=0"` // 0 disables rate limiting
	RequestBurst   int      `yaml:"request_burst" validate:"min=0"`
}

func Default() Config {
	return Config{
		PollingIntervalSeconds: 60,
		PingCount:              5,
		RetryBackoffMS:         300,
		ListenAddr:             "127.0.0.1:8080",
		LogDir:                 "logs",
		LogLevel:               "info",
		RequestsPerMin:         120,
		RequestBurst:           60,
	}
}

func (c Config) Interval() time.Duration {
	return time.Duration(c.PollingIntervalSeconds) * time.Second
}

func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

func (c Config) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMS) * time.Millisecond
}

// Load reads defaults, then the YAML file at path (a missing file is not an
// error), then environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that layer more overrides on
// top (command-line flags) before calling Validate.
func Read(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.PingAddress = strings.TrimSpace(cfg.PingAddress)
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PING_ADDRESS"); v != "" {
		cfg.PingAddress = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"POLLING_INTERVAL_SECONDS", &cfg.PollingIntervalSeconds},
		{"PING_COUNT", &cfg.PingCount},
		{"PROBE_TIMEOUT_SECONDS", &cfg.ProbeTimeoutSeconds},
		{"PROBE_RETRIES", &cfg.ProbeRetries},
		{"RETRY_BACKOFF_MS", &cfg.RetryBackoffMS},
		{"REQUESTS_PER_MIN", &cfg.RequestsPerMin},
		{"REQUEST_BURST", &cfg.RequestBurst},
	}
	for _, e := range ints {
		v := strings.TrimSpace(os.Getenv(e.key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", e.key, v)
		}
		*e.dst = n
	}

	// Bind address; "-" turns the API off
	if v := os.Getenv("API_ADDR"); v != "" {
		cfg.ListenAddr = v
		if v == "-" {
			cfg.ListenAddr = ""
		}
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.SlackWebhook = v
	}
	if v := splitList(os.Getenv("PUBLIC_API_KEYS")); v != nil {
		cfg.PublicAPIKeys = v
	}
	if v := splitList(os.Getenv("ADMIN_API_KEYS")); v != nil {
		cfg.AdminAPIKeys = v
	}
	if v := splitList(os.Getenv("ALLOWED_ORIGINS")); v != nil {
		cfg.AllowedOrigins = v
	}
	return nil
}

// splitList parses "a,b , c" into [a b c]; blank input is nil.
func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsMissingAddress reports whether err comes from an empty ping address.
func IsMissingAddress(err error) bool {
	return errors.Is(err, domain.ErrConfigMissing)
}
