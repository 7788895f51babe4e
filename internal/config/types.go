package config

import "time"

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level       string            `yaml:"level" json:"level"`
	Format      string            `yaml:"format" json:"format"` // "json" or "text"
	IncludePID  bool              `yaml:"include_pid" json:"include_pid"`
	ExtraFields map[string]string `yaml:"extra_fields,omitempty" json:"extra_fields,omitempty"`
}

// APIConfig contains management API settings.
//
// Note: APIKey is treated as a secret and is never returned by API endpoints.
type APIConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	APIKey  string `yaml:"api_key,omitempty" json:"-"`
	UIDir   string `yaml:"ui_dir,omitempty" json:"ui_dir,omitempty"` // optional static web UI
}

// DatabaseConfig locates the key inventory.
type DatabaseConfig struct {
	Path string `yaml:"path" json:"path"`
}

// ResolverConfig contains settings for fetching DNSKEY RRsets from upstream servers.
type ResolverConfig struct {
	Servers        []string `yaml:"servers" json:"servers"`
	UDPTimeout     string   `yaml:"udp_timeout" json:"udp_timeout"` // e.g. "3s"
	TCPTimeout     string   `yaml:"tcp_timeout" json:"tcp_timeout"` // e.g. "5s"
	MaxRetries     int      `yaml:"max_retries" json:"max_retries"` // retries per server on timeout
	UDPPayloadSize int      `yaml:"udp_payload_size" json:"udp_payload_size"`

	// Parsed by Validate.
	UDPTimeoutDuration time.Duration `yaml:"-" json:"-"`
	TCPTimeoutDuration time.Duration `yaml:"-" json:"-"`
}

// Config is the root configuration structure.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	API      APIConfig      `yaml:"api" json:"api"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Resolver ResolverConfig `yaml:"resolver" json:"resolver"`
}
