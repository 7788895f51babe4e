package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/hydrakey/internal/api/models"
	"github.com/jroosing/hydrakey/internal/database"
	"github.com/jroosing/hydrakey/internal/dns"
	"github.com/jroosing/hydrakey/internal/resolvers"
)

// ListZones godoc
// @Summary List zones
// @Description Summarizes every zone that has keys in the inventory
// @Tags zones
// @Produce json
// @Success 200 {object} models.ZoneListResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones [get]
func (h *Handler) ListZones(c *gin.Context) {
	if h.store == nil {
		unavailable(c, errNoStore)
		return
	}

	zones, err := h.store.Zones(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}

	summaries := make([]models.ZoneSummary, 0, len(zones))
	for _, z := range zones {
		summaries = append(summaries, models.ZoneSummary{
			Name:         z.Zone,
			KeyCount:     z.Keys,
			KSKCount:     z.KSKs,
			RevokedCount: z.Revoked,
			LastUpdated:  z.LastUpdated,
		})
	}

	c.JSON(http.StatusOK, models.ZoneListResponse{
		Zones: summaries,
		Count: len(summaries),
	})
}

// FetchZone godoc
// @Summary Fetch and store a zone's keys
// @Description Queries the upstream resolvers for the zone's DNSKEY RRset and reconciles the inventory with it
// @Tags zones
// @Produce json
// @Param zone path string true "Zone name, @ for the root"
// @Success 200 {object} models.ZoneFetchResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{zone}/fetch [post]
func (h *Handler) FetchZone(c *gin.Context) {
	if h.fetcher == nil {
		unavailable(c, errNoFetcher)
		return
	}
	if h.store == nil {
		unavailable(c, errNoStore)
		return
	}

	zone, err := zoneParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	ks, err := h.fetcher.FetchDNSKEYs(c.Request.Context(), zone)
	if err != nil {
		h.fetchError(c, err)
		return
	}

	keys := make([]dns.DNSKey, 0, len(ks.Keys))
	for _, k := range ks.Keys {
		keys = append(keys, k.DNSKey)
	}

	res, err := h.store.SyncZone(c.Request.Context(), ks.Zone, database.SourceDNS, keys, ks.TTL)
	if err != nil {
		h.storeError(c, err)
		return
	}

	h.logger.Info("zone keys synced",
		"zone", ks.Zone,
		"server", ks.Server,
		"keys", len(keys),
		"added", res.Added,
		"updated", res.Updated,
		"removed", res.Removed,
	)

	c.JSON(http.StatusOK, models.ZoneFetchResponse{
		KeySetResponse: keySetModel(ks),
		Added:          res.Added,
		Updated:        res.Updated,
		Removed:        res.Removed,
	})
}

// LiveZone godoc
// @Summary Look up a zone's keys
// @Description Returns the zone's DNSKEY RRset from the key set cache or the upstream resolvers without storing it
// @Tags zones
// @Produce json
// @Param zone path string true "Zone name, @ for the root"
// @Success 200 {object} models.KeySetResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{zone}/live [get]
func (h *Handler) LiveZone(c *gin.Context) {
	if h.fetcher == nil {
		unavailable(c, errNoFetcher)
		return
	}

	zone, err := zoneParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	ks, err := h.fetcher.LookupDNSKEYs(c.Request.Context(), zone)
	if err != nil {
		h.fetchError(c, err)
		return
	}

	c.JSON(http.StatusOK, keySetModel(ks))
}

func keySetModel(ks resolvers.KeySet) models.KeySetResponse {
	return models.KeySetResponse{
		Zone:          ks.Zone,
		Server:        ks.Server,
		Authenticated: ks.Authenticated,
		TTL:           ks.TTL,
		FetchedAt:     ks.FetchedAt,
		Cached:        ks.Cached,
		Keys:          keyModels(ks.Keys),
	}
}
