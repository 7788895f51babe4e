// Package handlers implements the REST API endpoint handlers for HydraKey.
//
// REST API Endpoints:
//
// System:
//   - GET /api/v1/health - Health check status
//   - GET /api/v1/stats - Runtime, host memory, inventory and cache statistics
//   - GET /api/v1/config - Current configuration (secrets removed)
//
// DNSKEY codec:
//   - POST /api/v1/dnskey/decode - Decode hex RDATA into its fields and key tag
//   - POST /api/v1/dnskey/encode - Encode key fields into hex RDATA
//
// Key inventory:
//   - GET /api/v1/keys - List stored keys, optionally filtered by ?zone=
//   - POST /api/v1/keys - Store a key from its hex RDATA
//   - GET /api/v1/keys/:id - Get one stored key
//   - DELETE /api/v1/keys/:id - Delete a stored key
//
// Zones:
//   - GET /api/v1/zones - Summarize the zones in the inventory
//   - POST /api/v1/zones/:zone/fetch - Fetch the zone's DNSKEY RRset and store it
//   - GET /api/v1/zones/:zone/live - Look up the zone's DNSKEY RRset without storing it
//
// The root zone is addressed as "@" in paths.
//
// Authentication:
//
// When an API key is configured every endpoint except /health requires the
// X-API-Key header.
//
// @title HydraKey Management API
// @version 1.0
// @description REST API for decoding, encoding and tracking DNSKEY records.
//
// @contact.name HydraKey Support
// @contact.url https://github.com/jroosing/hydrakey
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/jroosing/hydrakey/internal/config"
	"github.com/jroosing/hydrakey/internal/database"
	"github.com/jroosing/hydrakey/internal/dns"
	"github.com/jroosing/hydrakey/internal/resolvers"
)

// KeyStore is the key inventory used by the handlers.
type KeyStore interface {
	UpsertKey(ctx context.Context, zone string, key dns.DNSKey, source string, ttl uint32) (*database.StoredKey, error)
	GetKey(ctx context.Context, id int64) (*database.StoredKey, error)
	ListKeys(ctx context.Context, zone string) ([]database.StoredKey, error)
	DeleteKey(ctx context.Context, id int64) error
	SyncZone(ctx context.Context, zone, source string, keys []dns.DNSKey, ttl uint32) (database.SyncResult, error)
	Zones(ctx context.Context) ([]database.ZoneSummary, error)
	CountKeys(ctx context.Context) (int, error)
	SchemaVersion() uint
	Health(ctx context.Context) error
}

// KeySource answers DNSKEY queries from upstream servers.
type KeySource interface {
	FetchDNSKEYs(ctx context.Context, zone string) (resolvers.KeySet, error)
	LookupDNSKEYs(ctx context.Context, zone string) (resolvers.KeySet, error)
	CacheStats() resolvers.CacheStats
}

// Handler contains dependencies for API handlers.
// The store and the fetcher are optional; endpoints that need a missing one
// answer 503.
type Handler struct {
	cfg       *config.Config
	store     KeyStore
	fetcher   KeySource
	logger    *slog.Logger
	startTime time.Time
}

// New creates a new Handler.
func New(cfg *config.Config, store KeyStore, fetcher KeySource, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		store:     store,
		fetcher:   fetcher,
		logger:    logger,
		startTime: time.Now(),
	}
}
