// Package handlers_test provides behavior tests for the API handlers package.
package handlers_test

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/hydrakey/internal/api/handlers"
	"github.com/jroosing/hydrakey/internal/api/models"
	"github.com/jroosing/hydrakey/internal/config"
	"github.com/jroosing/hydrakey/internal/database"
	"github.com/jroosing/hydrakey/internal/dns"
	"github.com/jroosing/hydrakey/internal/resolvers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeFetcher answers from a fixed table of key sets.
type fakeFetcher struct {
	sets    map[string]resolvers.KeySet
	err     error
	fetches int
	lookups int
}

func (f *fakeFetcher) FetchDNSKEYs(_ context.Context, zone string) (resolvers.KeySet, error) {
	f.fetches++
	return f.answer(zone)
}

func (f *fakeFetcher) LookupDNSKEYs(_ context.Context, zone string) (resolvers.KeySet, error) {
	f.lookups++
	ks, err := f.answer(zone)
	ks.Cached = f.lookups > 1
	return ks, err
}

func (f *fakeFetcher) CacheStats() resolvers.CacheStats {
	return resolvers.CacheStats{Entries: len(f.sets), Hits: f.lookups}
}

func (f *fakeFetcher) answer(zone string) (resolvers.KeySet, error) {
	if f.err != nil {
		return resolvers.KeySet{}, f.err
	}
	ks, ok := f.sets[zone]
	if !ok {
		return resolvers.KeySet{}, &resolvers.RCodeError{Zone: zone, Server: "192.0.2.1:53", RCode: dns.RCodeNXDomain}
	}
	return ks, nil
}

func testKey(b byte, ksk bool) dns.DNSKey {
	pub := make([]byte, 32)
	for i := range pub {
		pub[i] = b ^ byte(i)
	}
	return dns.DNSKey{ZoneKey: true, SecureEntryPoint: ksk, Algorithm: dns.AlgED25519, PublicKey: pub}
}

func keySet(zone string, ttl uint32, keys ...dns.DNSKey) resolvers.KeySet {
	ks := resolvers.KeySet{Zone: zone, Server: "192.0.2.1:53", TTL: ttl, FetchedAt: time.Now()}
	h := dns.NewRRHeader(zone, dns.ClassIN, ttl)
	for _, k := range keys {
		ks.Keys = append(ks.Keys, dns.NewDNSKeyRecord(h, k))
	}
	return ks
}

func hexRData(t *testing.T, k dns.DNSKey) string {
	t.Helper()
	b, err := k.MarshalRData()
	require.NoError(t, err)
	return hex.EncodeToString(b)
}

func openStore(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "keys.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)
	api.POST("/dnskey/decode", h.DecodeDNSKey)
	api.POST("/dnskey/encode", h.EncodeDNSKey)
	api.GET("/keys", h.ListKeys)
	api.POST("/keys", h.CreateKey)
	api.GET("/keys/:id", h.GetKey)
	api.DELETE("/keys/:id", h.DeleteKey)
	api.GET("/zones", h.ListZones)
	api.POST("/zones/:zone/fetch", h.FetchZone)
	api.GET("/zones/:zone/live", h.LiveZone)
	return r
}

func performRequest(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// ============================================================================
// Health, Stats and Config Tests
// ============================================================================

func TestHealth_ReturnsOK(t *testing.T) {
	r := setupRouter(handlers.New(nil, openStore(t), nil, nil))

	w := performRequest(r, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody[models.StatusResponse](t, w).Status)
}

func TestHealth_DegradedWhenStoreClosed(t *testing.T) {
	db := openStore(t)
	require.NoError(t, db.Close())
	r := setupRouter(handlers.New(nil, db, nil, nil))

	w := performRequest(r, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decodeBody[models.StatusResponse](t, w).Status)
}

func TestStats_ReturnsServerStats(t *testing.T) {
	db := openStore(t)
	_, err := db.UpsertKey(context.Background(), "example.com", testKey(1, true), database.SourceManual, 0)
	require.NoError(t, err)

	r := setupRouter(handlers.New(nil, db, &fakeFetcher{}, nil))
	w := performRequest(r, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[models.ServerStatsResponse](t, w)
	assert.NotEmpty(t, resp.Uptime)
	assert.GreaterOrEqual(t, resp.GoRoutines, 1)
	assert.Positive(t, resp.NumCPU)
	assert.True(t, resp.Inventory.Available)
	assert.Equal(t, 1, resp.Inventory.Keys)
	assert.Equal(t, uint(2), resp.Inventory.SchemaVersion)
	require.NotNil(t, resp.Cache)
}

func TestStats_WithoutDependencies(t *testing.T) {
	r := setupRouter(handlers.New(nil, nil, nil, nil))
	w := performRequest(r, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[models.ServerStatsResponse](t, w)
	assert.False(t, resp.Inventory.Available)
	assert.Nil(t, resp.Cache)
}

func TestGetConfig_RedactsAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.API.APIKey = "top-secret"
	r := setupRouter(handlers.New(cfg, nil, nil, nil))

	w := performRequest(r, http.MethodGet, "/api/v1/config", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "top-secret")

	resp := decodeBody[models.ConfigResponse](t, w)
	assert.True(t, resp.API.AuthRequired)
	assert.Equal(t, cfg.Resolver.Servers, resp.Resolver.Servers)
}

func TestGetConfig_NilConfig(t *testing.T) {
	r := setupRouter(handlers.New(nil, nil, nil, nil))
	w := performRequest(r, http.MethodGet, "/api/v1/config", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ============================================================================
// DNSKEY Codec Endpoint Tests
// ============================================================================

func TestDecodeDNSKey(t *testing.T) {
	r := setupRouter(handlers.New(nil, nil, nil, nil))

	w := performRequest(r, http.MethodPost, "/api/v1/dnskey/decode", `{"rdata":"01 01 03 08 00:01:02:03:04:05:06:07"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	k := decodeBody[models.DNSKey](t, w)
	assert.Equal(t, uint16(257), k.Flags)
	assert.True(t, k.ZoneKey)
	assert.True(t, k.SecureEntryPoint)
	assert.False(t, k.Revoke)
	assert.True(t, k.KSK)
	assert.Equal(t, uint8(3), k.Protocol)
	assert.Equal(t, uint8(8), k.Algorithm)
	assert.Equal(t, "RSASHA256", k.AlgorithmName)
	assert.Equal(t, 8, k.KeyLength)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0, 1, 2, 3, 4, 5, 6, 7}), k.PublicKey)
	assert.Equal(t, uint16(0x1019), k.KeyTag)
}

func TestDecodeDNSKey_Errors(t *testing.T) {
	r := setupRouter(handlers.New(nil, nil, nil, nil))

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing rdata", `{}`, "RData"},
		{"bad json", `{`, ""},
		{"bad hex", `{"rdata":"zz"}`, "invalid hex"},
		{"bad protocol", `{"rdata":"01010208"}`, "protocol"},
		{"reserved algorithm", `{"rdata":"01010300"}`, "algorithm"},
		{"truncated", `{"rdata":"0101"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, http.MethodPost, "/api/v1/dnskey/decode", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeBody[models.ErrorResponse](t, w)
			assert.NotEmpty(t, resp.Error)
			if tt.message != "" {
				assert.Contains(t, resp.Error, tt.message)
			}
		})
	}
}

func TestEncodeDNSKey(t *testing.T) {
	r := setupRouter(handlers.New(nil, nil, nil, nil))
	pub := base64.StdEncoding.EncodeToString([]byte{0, 1, 2, 3, 4, 5, 6, 7})

	w := performRequest(r, http.MethodPost, "/api/v1/dnskey/encode",
		`{"zone_key":true,"secure_entry_point":true,"algorithm":"rsasha256","public_key":"`+pub+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[models.EncodeResponse](t, w)
	assert.Equal(t, "010103080001020304050607", resp.RData)
	assert.Equal(t, 12, resp.Length)
	assert.Equal(t, uint16(0x1019), resp.KeyTag)
}

func TestEncodeDNSKey_FlagsDropReservedBits(t *testing.T) {
	r := setupRouter(handlers.New(nil, nil, nil, nil))

	w := performRequest(r, http.MethodPost, "/api/v1/dnskey/encode", `{"flags":65535,"algorithm":"13","public_key":""}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[models.EncodeResponse](t, w)
	assert.Equal(t, "0181030d", resp.RData)
	assert.Equal(t, 4, resp.Length)
}

func TestEncodeDNSKey_Errors(t *testing.T) {
	r := setupRouter(handlers.New(nil, nil, nil, nil))

	for name, body := range map[string]string{
		"missing algorithm":  `{"public_key":"AQID"}`,
		"unknown algorithm":  `{"algorithm":"ROT13","public_key":"AQID"}`,
		"reserved algorithm": `{"algorithm":"255","public_key":"AQID"}`,
		"bad base64":         `{"algorithm":"ED25519","public_key":"!!"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := performRequest(r, http.MethodPost, "/api/v1/dnskey/encode", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestEncodeThenDecode(t *testing.T) {
	r := setupRouter(handlers.New(nil, nil, nil, nil))

	w := performRequest(r, http.MethodPost, "/api/v1/dnskey/encode", `{"zone_key":true,"revoke":true,"algorithm":"ED448","public_key":"3q2+7w=="}`)
	require.Equal(t, http.StatusOK, w.Code)
	enc := decodeBody[models.EncodeResponse](t, w)

	w = performRequest(r, http.MethodPost, "/api/v1/dnskey/decode", `{"rdata":"`+enc.RData+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	k := decodeBody[models.DNSKey](t, w)
	assert.True(t, k.Revoke)
	assert.Equal(t, "ED448", k.AlgorithmName)
	assert.Equal(t, "3q2+7w==", k.PublicKey)
	assert.Equal(t, enc.KeyTag, k.KeyTag)
}

// ============================================================================
// Key Inventory Endpoint Tests
// ============================================================================

func TestKeys_CRUD(t *testing.T) {
	r := setupRouter(handlers.New(nil, openStore(t), nil, nil))
	k := testKey(5, true)

	w := performRequest(r, http.MethodPost, "/api/v1/keys", `{"zone":"Example.COM.","rdata":"`+hexRData(t, k)+`","ttl":3600}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[models.KeyResponse](t, w)
	assert.Equal(t, "example.com", created.Zone)
	assert.Equal(t, database.SourceManual, created.Source)
	assert.Equal(t, uint32(3600), created.TTL)
	assert.Equal(t, k.KeyTag(), created.Key.KeyTag)

	w = performRequest(r, http.MethodGet, "/api/v1/keys/"+jsonID(created.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decodeBody[models.KeyResponse](t, w))

	w = performRequest(r, http.MethodGet, "/api/v1/keys?zone=example.com", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody[models.KeyListResponse](t, w)
	assert.Equal(t, 1, list.Count)

	w = performRequest(r, http.MethodGet, "/api/v1/keys?zone=example.org", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeBody[models.KeyListResponse](t, w).Count)

	w = performRequest(r, http.MethodDelete, "/api/v1/keys/"+jsonID(created.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodDelete, "/api/v1/keys/"+jsonID(created.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(r, http.MethodGet, "/api/v1/keys/"+jsonID(created.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestKeys_BadRequests(t *testing.T) {
	r := setupRouter(handlers.New(nil, openStore(t), nil, nil))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"bad id", http.MethodGet, "/api/v1/keys/abc", ""},
		{"zero id", http.MethodDelete, "/api/v1/keys/0", ""},
		{"bad zone filter", http.MethodGet, "/api/v1/keys?zone=a..b", ""},
		{"missing zone", http.MethodPost, "/api/v1/keys", `{"rdata":"01010308"}`},
		{"bad zone", http.MethodPost, "/api/v1/keys", `{"zone":"a..b","rdata":"01010308"}`},
		{"bad rdata", http.MethodPost, "/api/v1/keys", `{"zone":"example.com","rdata":"010104"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestKeys_NoStore(t *testing.T) {
	r := setupRouter(handlers.New(nil, nil, nil, nil))

	for _, path := range []string{"/api/v1/keys", "/api/v1/keys/1", "/api/v1/zones"} {
		w := performRequest(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

// ============================================================================
// Zone Endpoint Tests
// ============================================================================

func TestFetchZone_SyncsInventory(t *testing.T) {
	zsk, ksk, next := testKey(1, false), testKey(2, true), testKey(3, false)
	f := &fakeFetcher{sets: map[string]resolvers.KeySet{"example.com": keySet("example.com", 3600, zsk, ksk)}}
	r := setupRouter(handlers.New(nil, openStore(t), f, nil))

	w := performRequest(r, http.MethodPost, "/api/v1/zones/example.com/fetch", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[models.ZoneFetchResponse](t, w)
	assert.Equal(t, "example.com", resp.Zone)
	assert.Equal(t, 2, resp.Added)
	assert.Len(t, resp.Keys, 2)
	assert.Equal(t, uint32(3600), resp.TTL)

	// Rollover to a new ZSK
	f.sets["example.com"] = keySet("example.com", 3600, next, ksk)
	w = performRequest(r, http.MethodPost, "/api/v1/zones/example.com/fetch", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody[models.ZoneFetchResponse](t, w)
	assert.Equal(t, 1, resp.Added)
	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, 1, resp.Removed)

	w = performRequest(r, http.MethodGet, "/api/v1/zones", "")
	require.Equal(t, http.StatusOK, w.Code)
	zones := decodeBody[models.ZoneListResponse](t, w)
	require.Equal(t, 1, zones.Count)
	assert.Equal(t, models.ZoneSummary{
		Name:        "example.com",
		KeyCount:    2,
		KSKCount:    1,
		LastUpdated: zones.Zones[0].LastUpdated,
	}, zones.Zones[0])
	assert.Equal(t, 2, f.fetches)
}

func TestFetchZone_RootAlias(t *testing.T) {
	f := &fakeFetcher{sets: map[string]resolvers.KeySet{".": keySet(".", 172800, testKey(9, true))}}
	r := setupRouter(handlers.New(nil, openStore(t), f, nil))

	w := performRequest(r, http.MethodPost, "/api/v1/zones/@/fetch", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, ".", decodeBody[models.ZoneFetchResponse](t, w).Zone)
}

func TestFetchZone_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		zone   string
		status int
	}{
		{"nxdomain", nil, "missing.example", http.StatusNotFound},
		{"servfail", &resolvers.RCodeError{Zone: "example.com", RCode: dns.RCodeServFail}, "example.com", http.StatusBadGateway},
		{"malformed answer", &dns.ProtocolError{Value: 4}, "example.com", http.StatusBadGateway},
		{"no servers", resolvers.ErrNoServers, "example.com", http.StatusServiceUnavailable},
		{"timeout", context.DeadlineExceeded, "example.com", http.StatusGatewayTimeout},
		{"invalid zone", nil, "a..b", http.StatusBadRequest},
		{"wrapped invalid zone", errors.Join(resolvers.ErrInvalidZone), "example.com", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{sets: map[string]resolvers.KeySet{}, err: tt.err}
			r := setupRouter(handlers.New(nil, openStore(t), f, nil))

			w := performRequest(r, http.MethodPost, "/api/v1/zones/"+tt.zone+"/fetch", "")
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, decodeBody[models.ErrorResponse](t, w).Error)
		})
	}
}

func TestFetchZone_Unavailable(t *testing.T) {
	w := performRequest(setupRouter(handlers.New(nil, nil, &fakeFetcher{}, nil)), http.MethodPost, "/api/v1/zones/example.com/fetch", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = performRequest(setupRouter(handlers.New(nil, openStore(t), nil, nil)), http.MethodPost, "/api/v1/zones/example.com/fetch", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLiveZone_DoesNotStore(t *testing.T) {
	db := openStore(t)
	f := &fakeFetcher{sets: map[string]resolvers.KeySet{"example.com": keySet("example.com", 300, testKey(1, true))}}
	r := setupRouter(handlers.New(nil, db, f, nil))

	w := performRequest(r, http.MethodGet, "/api/v1/zones/example.com/live", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decodeBody[models.KeySetResponse](t, w)
	assert.False(t, first.Cached)
	require.Len(t, first.Keys, 1)
	assert.True(t, first.Keys[0].KSK)

	w = performRequest(r, http.MethodGet, "/api/v1/zones/example.com/live", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeBody[models.KeySetResponse](t, w).Cached)

	n, err := db.CountKeys(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, f.fetches)
}

func TestLiveZone_NoFetcher(t *testing.T) {
	w := performRequest(setupRouter(handlers.New(nil, nil, nil, nil)), http.MethodGet, "/api/v1/zones/example.com/live", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
