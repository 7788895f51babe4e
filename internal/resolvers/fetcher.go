package resolvers

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"strings"
	"time"

	"github.com/jroosing/hydrakey/internal/dns"
	"github.com/jroosing/hydrakey/internal/helpers"
	"github.com/jroosing/hydrakey/internal/pool"
)

// Fetcher configuration defaults.
const (
	maxUpstreams = 3

	DefaultUDPTimeout   = 3 * time.Second
	DefaultTCPTimeout   = 5 * time.Second
	DefaultMaxRetries   = 2
	DefaultCacheEntries = 1024
	DefaultNegativeTTL  = 5 * time.Minute // RFC 2308 default when no SOA is usable
)

// FetcherConfig configures a KeyFetcher.
type FetcherConfig struct {
	Servers        []string      // host or host:port; port defaults to 53
	UDPTimeout     time.Duration // per UDP attempt
	TCPTimeout     time.Duration // per TCP exchange
	MaxRetries     int           // extra UDP attempts per server after a timeout
	UDPPayloadSize int           // advertised EDNS payload size and receive buffer size
	CacheEntries   int
	Logger         *slog.Logger
}

// KeyFetcher queries upstream servers for DNSKEY RRsets.
// It is safe for concurrent use.
type KeyFetcher struct {
	servers     []string
	udpTimeout  time.Duration
	tcpTimeout  time.Duration
	maxRetries  int
	payloadSize int

	bufs   *pool.Buffers
	cache  *TTLCache[string, KeySet]
	logger *slog.Logger
}

// NewKeyFetcher creates a KeyFetcher; zero config fields take defaults.
func NewKeyFetcher(cfg FetcherConfig) *KeyFetcher {
	servers := make([]string, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		if s = strings.TrimSpace(s); s != "" {
			servers = append(servers, withDefaultPort(s))
		}
	}
	if len(servers) > maxUpstreams {
		servers = servers[:maxUpstreams]
	}
	if cfg.UDPTimeout <= 0 {
		cfg.UDPTimeout = DefaultUDPTimeout
	}
	if cfg.TCPTimeout <= 0 {
		cfg.TCPTimeout = DefaultTCPTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.UDPPayloadSize == 0 {
		cfg.UDPPayloadSize = dns.EDNSDefaultUDPPayloadSize
	}
	cfg.UDPPayloadSize = helpers.ClampInt(cfg.UDPPayloadSize, dns.EDNSMinUDPPayloadSize, dns.EDNSMaxUDPPayloadSize)
	if cfg.CacheEntries <= 0 {
		cfg.CacheEntries = DefaultCacheEntries
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &KeyFetcher{
		servers:     servers,
		udpTimeout:  cfg.UDPTimeout,
		tcpTimeout:  cfg.TCPTimeout,
		maxRetries:  cfg.MaxRetries,
		payloadSize: cfg.UDPPayloadSize,
		bufs:        pool.NewBuffers(cfg.UDPPayloadSize),
		cache:       NewTTLCache[string, KeySet](cfg.CacheEntries),
		logger:      cfg.Logger,
	}
}

// Servers returns the upstreams in the order they are tried.
func (f *KeyFetcher) Servers() []string {
	return append([]string(nil), f.servers...)
}

// CacheStats returns the key set cache counters.
func (f *KeyFetcher) CacheStats() CacheStats {
	return f.cache.Stats()
}

// LookupDNSKEYs returns the cached key set for zone if it is still fresh,
// otherwise fetches it. Cached NXDOMAIN answers are returned as *RCodeError.
func (f *KeyFetcher) LookupDNSKEYs(ctx context.Context, zone string) (KeySet, error) {
	name, err := normalizeZone(zone)
	if err != nil {
		return KeySet{}, err
	}
	if ks, _, ok, kind := f.cache.Get(name); ok {
		if kind == CacheNXDOMAIN {
			return KeySet{}, &RCodeError{Zone: name, RCode: dns.RCodeNXDomain}
		}
		ks.Cached = true
		return ks, nil
	}
	return f.FetchDNSKEYs(ctx, name)
}

// FetchDNSKEYs queries the upstreams for the DNSKEY RRset of zone.
//
// Servers are tried in order. A server that times out on every attempt,
// fails to answer, or answers with SERVFAIL/REFUSED passes the query to the
// next one. NXDOMAIN is authoritative and returned at once. A NOERROR answer
// with no DNSKEY records yields an empty KeySet.
func (f *KeyFetcher) FetchDNSKEYs(ctx context.Context, zone string) (KeySet, error) {
	name, err := normalizeZone(zone)
	if err != nil {
		return KeySet{}, err
	}
	if len(f.servers) == 0 {
		return KeySet{}, ErrNoServers
	}

	query := f.buildQuery(name)
	msg, err := query.Marshal()
	if err != nil {
		return KeySet{}, fmt.Errorf("failed to build DNSKEY query: %w", err)
	}

	var lastErr error
	for _, server := range f.servers {
		if ctx.Err() != nil {
			return KeySet{}, ctx.Err()
		}

		resp, err := f.exchange(ctx, server, msg, query)
		if err != nil {
			if ctx.Err() != nil {
				return KeySet{}, ctx.Err()
			}
			f.logger.Debug("upstream DNSKEY query failed", "zone", name, "server", server, "err", err)
			lastErr = err
			continue
		}

		switch rc := resp.Header.RCode(); rc {
		case dns.RCodeNoError:
			ks := collectKeys(name, server, resp)
			f.store(ks)
			return ks, nil
		case dns.RCodeNXDomain:
			f.cache.Set(name, KeySet{Zone: name, Server: server}, DefaultNegativeTTL, CacheNXDOMAIN)
			return KeySet{}, &RCodeError{Zone: name, Server: server, RCode: rc}
		default:
			lastErr = &RCodeError{Zone: name, Server: server, RCode: rc}
		}
	}
	return KeySet{}, lastErr
}

func (f *KeyFetcher) buildQuery(zone string) dns.Packet {
	q := dns.Packet{
		Header: dns.Header{ID: uint16(rand.UintN(math.MaxUint16 + 1)), Flags: dns.RDFlag},
		Questions: []dns.Question{{
			Name:  zone,
			Type:  uint16(dns.TypeDNSKEY),
			Class: uint16(dns.ClassIN),
		}},
	}
	q.Header.SetCD(true)
	opt := dns.CreateOPT(f.payloadSize)
	opt.DNSSECOk = true
	q.Additionals = []dns.Record{opt.Record()}
	return q
}

func (f *KeyFetcher) store(ks KeySet) {
	if len(ks.Keys) == 0 {
		f.cache.Set(ks.Zone, ks, DefaultNegativeTTL, CacheNODATA)
		return
	}
	f.cache.Set(ks.Zone, ks, time.Duration(ks.TTL)*time.Second, CachePositive)
}

// collectKeys keeps the DNSKEY answers owned by zone. RRSIGs and records
// for other owners are ignored.
func collectKeys(zone, server string, resp dns.Packet) KeySet {
	ks := KeySet{
		Zone:          zone,
		Server:        server,
		Authenticated: resp.Header.AuthenticData(),
		FetchedAt:     time.Now().UTC(),
	}
	minTTL := uint32(math.MaxUint32)
	for _, rec := range resp.Answers {
		kr, ok := rec.(*dns.DNSKeyRecord)
		if !ok || kr.Type() != dns.TypeDNSKEY || !dns.EqualNames(kr.Header().Name, zone) {
			continue
		}
		ks.Keys = append(ks.Keys, kr)
		minTTL = min(minTTL, kr.Header().TTL)
	}
	if len(ks.Keys) > 0 {
		ks.TTL = minTTL
	}
	return ks
}

// exchange sends msg to one server over UDP, retrying on timeout and
// falling back to TCP when the answer is truncated.
func (f *KeyFetcher) exchange(ctx context.Context, server string, msg []byte, query dns.Packet) (dns.Packet, error) {
	var (
		raw []byte
		err error
	)
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return dns.Packet{}, ctx.Err()
		}
		raw, err = f.queryUDP(ctx, server, msg)
		if err == nil || !isTimeoutError(err) {
			break
		}
		f.logger.Debug("upstream timeout, retrying", "server", server, "attempt", attempt+1)
	}
	if err != nil {
		return dns.Packet{}, err
	}

	if dns.IsTruncated(raw) {
		f.logger.Debug("truncated UDP answer, retrying over TCP", "server", server)
		if raw, err = queryTCP(ctx, server, msg, f.tcpTimeout); err != nil {
			return dns.Packet{}, fmt.Errorf("TCP fallback: %w", err)
		}
	}

	resp, err := dns.ParseResponse(raw, query)
	if err != nil {
		return dns.Packet{}, fmt.Errorf("invalid response from %s: %w", server, err)
	}
	return resp, nil
}

// queryUDP performs one UDP attempt. The receive buffer comes from the pool
// and the returned slice is a private copy.
func (f *KeyFetcher) queryUDP(ctx context.Context, server string, msg []byte) ([]byte, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "udp", server)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	// Set deadline from timeout or context, whichever is sooner
	deadline := time.Now().Add(f.udpTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)

	if _, err := conn.Write(msg); err != nil {
		return nil, err
	}

	buf := f.bufs.Get()
	defer f.bufs.Put(buf)

	n, err := conn.Read(*buf)
	if err != nil {
		return nil, err
	}
	return bytes.Clone((*buf)[:n]), nil
}

// queryTCP sends a DNS query over TCP with length-prefix framing.
//
// TCP DNS message format (RFC 1035 section 4.2.2):
//
//	+--+--+
//	|Length| 2 bytes, big-endian message length
//	+--+--+
//	|      |
//	| DNS  | Variable length DNS message
//	|      |
//	+------+
func queryTCP(ctx context.Context, server string, msg []byte, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", server)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	var prefix [2]byte
	binary.BigEndian.PutUint16(prefix[:], helpers.ClampIntToUint16(len(msg)))
	if _, err := conn.Write(append(prefix[:], msg...)); err != nil {
		return nil, err
	}

	if _, err := io.ReadFull(conn, prefix[:]); err != nil {
		return nil, err
	}
	respLen := int(binary.BigEndian.Uint16(prefix[:]))
	if respLen < dns.HeaderSize {
		return nil, fmt.Errorf("TCP response length invalid: %d", respLen)
	}

	resp := make([]byte, respLen)
	if _, err := io.ReadFull(conn, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// isTimeoutError reports network timeouts, the only errors worth retrying
// against the same server.
func isTimeoutError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// withDefaultPort appends :53 unless s already carries a port.
func withDefaultPort(s string) string {
	if _, _, err := net.SplitHostPort(s); err == nil {
		return s
	}
	return net.JoinHostPort(strings.Trim(s, "[]"), "53")
}

// normalizeZone lower-cases zone and checks that it encodes; "" and "."
// both mean the root.
func normalizeZone(zone string) (string, error) {
	name, err := dns.CanonicalName(zone)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidZone, zone, err)
	}
	return name, nil
}
