// Package resolvers fetches DNSKEY RRsets from upstream recursive servers.
//
// KeyFetcher sends a DNSKEY query with RD and CD set and an EDNS OPT record
// with the DO bit, so validating upstreams return the key set even when it
// does not validate. Upstreams are tried in strict order; each is retried on
// timeout, and truncated UDP answers are repeated over TCP.
//
// Fetched key sets are cached by zone for the smallest record TTL.
// FetchDNSKEYs always goes to the network and refreshes the cache;
// LookupDNSKEYs answers from the cache when it can.
package resolvers

import (
	"errors"
	"fmt"
	"time"

	"github.com/jroosing/hydrakey/internal/dns"
)

// KeySet is the DNSKEY RRset of one zone as returned by an upstream.
type KeySet struct {
	Zone          string              // Normalized zone name, "." for the root
	Keys          []*dns.DNSKeyRecord // DNSKEY answers owned by Zone
	Server        string              // host:port that answered
	Authenticated bool                // Upstream set AD
	TTL           uint32              // Smallest TTL among Keys
	FetchedAt     time.Time
	Cached        bool // Answered from the cache
}

var (
	// ErrNoServers is returned when the fetcher has no upstream configured.
	ErrNoServers = errors.New("no upstream servers configured")

	// ErrInvalidZone is returned for names that cannot be encoded.
	ErrInvalidZone = errors.New("invalid zone name")
)

// RCodeError reports an upstream answer with a non-NOERROR response code.
type RCodeError struct {
	Zone   string
	Server string
	RCode  dns.RCode
}

func (e *RCodeError) Error() string {
	if e.Server == "" {
		return fmt.Sprintf("DNSKEY query for %s: %s", e.Zone, e.RCode)
	}
	return fmt.Sprintf("DNSKEY query for %s at %s: %s", e.Zone, e.Server, e.RCode)
}
