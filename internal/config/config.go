// Package config loads and validates HydraKey configuration.
//
// Configuration is a YAML file whose path comes from the -config flag or
// HYDRAKEY_CONFIG. Missing fields fall back to defaults, and a few secrets
// and paths can be overridden from the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jroosing/hydrakey/internal/dns"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath = "HYDRAKEY_CONFIG"
	EnvAPIKey     = "HYDRAKEY_API_KEY"
	EnvDBPath     = "HYDRAKEY_DB_PATH"
)

// MaxResolverServers is the number of upstreams tried in strict order.
const MaxResolverServers = 3

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "json",
		},
		API: APIConfig{
			Enabled: true,
			Host:    "0.0.0.0",
			Port:    8080,
		},
		Database: DatabaseConfig{
			Path: "hydrakey.db",
		},
		Resolver: ResolverConfig{
			Servers:        []string{"8.8.8.8"},
			UDPTimeout:     "3s",
			TCPTimeout:     "5s",
			MaxRetries:     2,
			UDPPayloadSize: dns.EDNSDefaultUDPPayloadSize,
		},
	}
}

// ResolveConfigPath returns the flag value if set, otherwise HYDRAKEY_CONFIG.
func ResolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// decode rejects unknown keys so that typos surface at startup.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.API.APIKey = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Database.Path = v
	}
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)
	if cfg.Logging.Format != "json" && cfg.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be json or text, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	// Normalize management API
	if cfg.API.Host == "" {
		cfg.API.Host = "0.0.0.0"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	if strings.TrimSpace(cfg.Database.Path) == "" {
		return errors.New("database.path must be set")
	}

	return cfg.Resolver.validate()
}

func (r *ResolverConfig) validate() error {
	// Default upstream servers
	if len(r.Servers) == 0 {
		r.Servers = []string{"8.8.8.8"}
	}
	// Strict-order failover over at most three servers
	if len(r.Servers) > MaxResolverServers {
		r.Servers = r.Servers[:MaxResolverServers]
	}

	var err error
	if r.UDPTimeoutDuration, err = parseTimeout("resolver.udp_timeout", r.UDPTimeout, 3*time.Second); err != nil {
		return err
	}
	if r.TCPTimeoutDuration, err = parseTimeout("resolver.tcp_timeout", r.TCPTimeout, 5*time.Second); err != nil {
		return err
	}

	if r.MaxRetries < 0 {
		return errors.New("resolver.max_retries must be >= 0")
	}
	if r.UDPPayloadSize == 0 {
		r.UDPPayloadSize = dns.EDNSDefaultUDPPayloadSize
	}
	if r.UDPPayloadSize < dns.EDNSMinUDPPayloadSize || r.UDPPayloadSize > dns.EDNSMaxUDPPayloadSize {
		return fmt.Errorf("resolver.udp_payload_size must be %d..%d",
			dns.EDNSMinUDPPayloadSize, dns.EDNSMaxUDPPayloadSize)
	}
	return nil
}

func parseTimeout(field, raw string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", field)
	}
	return d, nil
}
