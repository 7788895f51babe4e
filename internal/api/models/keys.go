package models

import "time"

// KeyResponse is a key stored in the inventory.
type KeyResponse struct {
	ID        int64     `json:"id"`
	Zone      string    `json:"zone"`
	Source    string    `json:"source"`
	TTL       uint32    `json:"ttl"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Key       DNSKey    `json:"key"`
}

// KeyListResponse contains a list of stored keys.
type KeyListResponse struct {
	Keys  []KeyResponse `json:"keys"`
	Count int           `json:"count"`
}

// KeyCreateRequest adds a key to the inventory from its hex RDATA.
type KeyCreateRequest struct {
	Zone  string `json:"zone" binding:"required" example:"example.com"`
	RData string `json:"rdata" binding:"required"`
	TTL   uint32 `json:"ttl"`
}
