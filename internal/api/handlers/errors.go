package handlers

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/hydrakey/internal/api/models"
	"github.com/jroosing/hydrakey/internal/database"
	"github.com/jroosing/hydrakey/internal/dns"
	"github.com/jroosing/hydrakey/internal/resolvers"
)

var (
	errNoStore   = errors.New("key inventory unavailable")
	errNoFetcher = errors.New("resolver unavailable")
)

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
}

func unavailable(c *gin.Context, err error) {
	c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: err.Error()})
}

// storeError reports an inventory failure.
func (h *Handler) storeError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "key not found"})
		return
	}
	h.logger.Error("key inventory error", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
}

// fetchError reports a resolver failure. Upstream problems, including
// malformed answers, are gateway errors.
func (h *Handler) fetchError(c *gin.Context, err error) {
	var rcErr *resolvers.RCodeError
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, resolvers.ErrInvalidZone):
		status = http.StatusBadRequest
	case errors.Is(err, resolvers.ErrNoServers):
		status = http.StatusServiceUnavailable
	case errors.As(err, &rcErr) && rcErr.RCode == dns.RCodeNXDomain:
		status = http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status >= http.StatusInternalServerError {
		h.logger.Warn("DNSKEY fetch failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, models.ErrorResponse{Error: err.Error()})
}

// parseHex decodes hex text, ignoring whitespace and colon separators.
func parseHex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex rdata: %w", err)
	}
	return b, nil
}

// zoneParam reads the :zone path parameter. "@" names the root.
func zoneParam(c *gin.Context) (string, error) {
	zone := c.Param("zone")
	if zone == "@" {
		zone = "."
	}
	name, err := dns.CanonicalName(zone)
	if err != nil {
		return "", fmt.Errorf("invalid zone %q: %w", zone, err)
	}
	return name, nil
}
