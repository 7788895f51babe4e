package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/hydrakey/internal/api/models"
	"github.com/jroosing/hydrakey/internal/database"
	"github.com/jroosing/hydrakey/internal/dns"
)

// ListKeys godoc
// @Summary List stored keys
// @Description Returns the keys in the inventory, optionally only those of one zone
// @Tags keys
// @Produce json
// @Param zone query string false "Zone name"
// @Success 200 {object} models.KeyListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /keys [get]
func (h *Handler) ListKeys(c *gin.Context) {
	if h.store == nil {
		unavailable(c, errNoStore)
		return
	}

	zone := c.Query("zone")
	if zone != "" {
		if _, err := dns.CanonicalName(zone); err != nil {
			badRequest(c, err)
			return
		}
	}

	keys, err := h.store.ListKeys(c.Request.Context(), zone)
	if err != nil {
		h.storeError(c, err)
		return
	}

	resp := models.KeyListResponse{Keys: make([]models.KeyResponse, 0, len(keys))}
	for i := range keys {
		resp.Keys = append(resp.Keys, storedKeyModel(&keys[i]))
	}
	resp.Count = len(resp.Keys)

	c.JSON(http.StatusOK, resp)
}

// GetKey godoc
// @Summary Get a stored key
// @Tags keys
// @Produce json
// @Param id path int true "Key ID"
// @Success 200 {object} models.KeyResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /keys/{id} [get]
func (h *Handler) GetKey(c *gin.Context) {
	if h.store == nil {
		unavailable(c, errNoStore)
		return
	}

	id, err := keyID(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	sk, err := h.store.GetKey(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, storedKeyModel(sk))
}

// CreateKey godoc
// @Summary Store a key
// @Description Decodes hex DNSKEY RDATA and stores it for the zone. Storing a key twice updates it.
// @Tags keys
// @Accept json
// @Produce json
// @Param key body models.KeyCreateRequest true "Key to store"
// @Success 201 {object} models.KeyResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /keys [post]
func (h *Handler) CreateKey(c *gin.Context) {
	if h.store == nil {
		unavailable(c, errNoStore)
		return
	}

	var req models.KeyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, err := dns.CanonicalName(req.Zone); err != nil {
		badRequest(c, err)
		return
	}

	rdata, err := parseHex(req.RData)
	if err != nil {
		badRequest(c, err)
		return
	}
	key, err := dns.ParseDNSKeyRData(rdata)
	if err != nil {
		badRequest(c, err)
		return
	}

	sk, err := h.store.UpsertKey(c.Request.Context(), req.Zone, key, database.SourceManual, req.TTL)
	if err != nil {
		h.storeError(c, err)
		return
	}

	h.logger.Info("key stored", "zone", sk.Zone, "key_tag", sk.Tag, "id", sk.ID)
	c.JSON(http.StatusCreated, storedKeyModel(sk))
}

// DeleteKey godoc
// @Summary Delete a stored key
// @Tags keys
// @Produce json
// @Param id path int true "Key ID"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /keys/{id} [delete]
func (h *Handler) DeleteKey(c *gin.Context) {
	if h.store == nil {
		unavailable(c, errNoStore)
		return
	}

	id, err := keyID(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := h.store.DeleteKey(c.Request.Context(), id); err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "deleted"})
}

func keyID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid key id")
	}
	return id, nil
}

func storedKeyModel(sk *database.StoredKey) models.KeyResponse {
	return models.KeyResponse{
		ID:        sk.ID,
		Zone:      sk.Zone,
		Source:    sk.Source,
		TTL:       sk.TTL,
		CreatedAt: sk.CreatedAt,
		UpdatedAt: sk.UpdatedAt,
		Key:       keyModel(sk.Key),
	}
}
