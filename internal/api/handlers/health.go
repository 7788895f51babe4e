package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/hydrakey/internal/api/models"
	"github.com/shirou/gopsutil/v3/mem"
)

const bytesPerMB = 1024 * 1024

// Health godoc
// @Summary Health check
// @Description Returns server health status. Reports "degraded" when the key inventory is unreachable.
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Failure 503 {object} models.StatusResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if h.store != nil {
		if err := h.store.Health(c.Request.Context()); err != nil {
			h.logger.Warn("key inventory health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, models.StatusResponse{Status: "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Stats godoc
// @Summary Server statistics
// @Description Returns runtime statistics, host memory, inventory size and key set cache counters
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / bytesPerMB,
		NumCPU:        runtime.NumCPU(),
	}

	if vm, err := mem.VirtualMemoryWithContext(c.Request.Context()); err == nil {
		resp.Host = &models.HostStatsResponse{
			TotalMemoryMB: float64(vm.Total) / bytesPerMB,
			UsedMemoryMB:  float64(vm.Used) / bytesPerMB,
			UsedPercent:   vm.UsedPercent,
		}
	} else {
		h.logger.Debug("host memory stats unavailable", "error", err)
	}

	if h.store != nil {
		n, err := h.store.CountKeys(c.Request.Context())
		if err != nil {
			h.logger.Warn("failed to count keys", "error", err)
		} else {
			resp.Inventory = models.InventoryStatsResponse{
				Available:     true,
				Keys:          n,
				SchemaVersion: h.store.SchemaVersion(),
			}
		}
	}

	if h.fetcher != nil {
		cs := h.fetcher.CacheStats()
		resp.Cache = &models.CacheStatsResponse{
			Entries:      cs.Entries,
			Hits:         cs.Hits,
			Misses:       cs.Misses,
			NegativeHits: cs.NegativeHits,
		}
	}

	c.JSON(http.StatusOK, resp)
}
