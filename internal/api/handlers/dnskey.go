package handlers

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/hydrakey/internal/api/models"
	"github.com/jroosing/hydrakey/internal/dns"
)

// DecodeDNSKey godoc
// @Summary Decode DNSKEY RDATA
// @Description Decodes hex-encoded DNSKEY RDATA and reports its fields and key tag
// @Tags dnskey
// @Accept json
// @Produce json
// @Param request body models.DecodeRequest true "Hex RDATA"
// @Success 200 {object} models.DNSKey
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /dnskey/decode [post]
func (h *Handler) DecodeDNSKey(c *gin.Context) {
	var req models.DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

	c.JSON(http.StatusOK, keyModel(key))
}

// EncodeDNSKey godoc
// @Summary Encode DNSKEY RDATA
// @Description Encodes key fields into hex DNSKEY RDATA. Reserved flag bits are dropped.
// @Tags dnskey
// @Accept json
// @Produce json
// @Param request body models.EncodeRequest true "Key fields"
// @Success 200 {object} models.EncodeResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /dnskey/encode [post]
func (h *Handler) EncodeDNSKey(c *gin.Context) {
	var req models.EncodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	key, err := keyFromRequest(req)
	if err != nil {
		badRequest(c, err)
		return
	}

	rdata, err := key.MarshalRData()
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, models.EncodeResponse{
		RData:  hex.EncodeToString(rdata),
		Length: len(rdata),
		KeyTag: key.KeyTag(),
	})
}

func keyFromRequest(req models.EncodeRequest) (dns.DNSKey, error) {
	alg, err := dns.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return dns.DNSKey{}, err
	}
	pub, err := base64.StdEncoding.DecodeString(req.PublicKey)
	if err != nil {
		return dns.DNSKey{}, fmt.Errorf("invalid base64 public key: %w", err)
	}

	key := dns.DNSKey{
		ZoneKey:          req.ZoneKey,
		SecureEntryPoint: req.SecureEntryPoint,
		Revoke:           req.Revoke,
		Algorithm:        alg,
		PublicKey:        pub,
	}
	if req.Flags != nil {
		f := *req.Flags
		key.ZoneKey = f&dns.DNSKeyFlagZone != 0
		key.SecureEntryPoint = f&dns.DNSKeyFlagSEP != 0
		key.Revoke = f&dns.DNSKeyFlagRevoke != 0
	}
	return key, nil
}

func keyModel(k dns.DNSKey) models.DNSKey {
	return models.DNSKey{
		Flags:            k.Flags(),
		ZoneKey:          k.ZoneKey,
		SecureEntryPoint: k.SecureEntryPoint,
		Revoke:           k.Revoke,
		Protocol:         dns.DNSKeyProtocol,
		Algorithm:        uint8(k.Algorithm),
		AlgorithmName:    k.Algorithm.String(),
		Deprecated:       k.Algorithm.Deprecated(),
		PublicKey:        base64.StdEncoding.EncodeToString(k.PublicKey),
		KeyLength:        len(k.PublicKey),
		KeyTag:           k.KeyTag(),
		KSK:              k.IsKSK(),
	}
}

func keyModels(keys []*dns.DNSKeyRecord) []models.DNSKey {
	out := make([]models.DNSKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, keyModel(k.DNSKey))
	}
	return out
}
