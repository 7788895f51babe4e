package models

import "time"

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime        string                 `json:"uptime"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	StartTime     time.Time              `json:"start_time"`
	GoRoutines    int                    `json:"goroutines"`
	MemoryAllocMB float64                `json:"memory_alloc_mb"`
	NumCPU        int                    `json:"num_cpu"`
	Host          *HostStatsResponse     `json:"host,omitempty"`
	Inventory     InventoryStatsResponse `json:"inventory"`
	Cache         *CacheStatsResponse    `json:"cache,omitempty"`
}

// HostStatsResponse contains memory figures for the machine running the server.
type HostStatsResponse struct {
	TotalMemoryMB float64 `json:"total_memory_mb"`
	UsedMemoryMB  float64 `json:"used_memory_mb"`
	UsedPercent   float64 `json:"used_percent"`
}

// InventoryStatsResponse describes the key inventory.
type InventoryStatsResponse struct {
	Available     bool `json:"available"`
	Keys          int  `json:"keys"`
	SchemaVersion uint `json:"schema_version,omitempty"`
}

// CacheStatsResponse contains key set cache counters.
type CacheStatsResponse struct {
	Entries      int `json:"entries"`
	Hits         int `json:"hits"`
	Misses       int `json:"misses"`
	NegativeHits int `json:"negative_hits"`
}
