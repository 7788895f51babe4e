package models

import "time"

// ZoneSummary is a brief description of a zone in the inventory.
type ZoneSummary struct {
	Name         string    `json:"name"`
	KeyCount     int       `json:"key_count"`
	KSKCount     int       `json:"ksk_count"`
	RevokedCount int       `json:"revoked_count"`
	LastUpdated  time.Time `json:"last_updated"`
}

// ZoneListResponse contains a list of zones.
type ZoneListResponse struct {
	Zones []ZoneSummary `json:"zones"`
	Count int           `json:"count"`
}

// KeySetResponse is a DNSKEY RRset as answered by an upstream server.
type KeySetResponse struct {
	Zone          string    `json:"zone"`
	Server        string    `json:"server,omitempty"`
	Authenticated bool      `json:"authenticated"`
	TTL           uint32    `json:"ttl"`
	FetchedAt     time.Time `json:"fetched_at"`
	Cached        bool      `json:"cached"`
	Keys          []DNSKey  `json:"keys"`
}

// ZoneFetchResponse reports a fetch that was stored in the inventory.
type ZoneFetchResponse struct {
	KeySetResponse
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
}
