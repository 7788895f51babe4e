package models

import "github.com/jroosing/hydrakey/internal/config"

// ConfigResponse is the running configuration with secrets removed.
type ConfigResponse struct {
	Logging  config.LoggingConfig  `json:"logging"`
	API      APIConfigResponse     `json:"api"`
	Database config.DatabaseConfig `json:"database"`
	Resolver config.ResolverConfig `json:"resolver"`
}

// APIConfigResponse is the API section of ConfigResponse.
type APIConfigResponse struct {
	Enabled      bool   `json:"enabled"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	AuthRequired bool   `json:"auth_required"`
	UIDir        string `json:"ui_dir,omitempty"`
}
