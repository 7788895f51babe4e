package models

// DNSKey is the JSON form of a DNSKEY RDATA.
type DNSKey struct {
	Flags            uint16 `json:"flags"`
	ZoneKey          bool   `json:"zone_key"`
	SecureEntryPoint bool   `json:"secure_entry_point"`
	Revoke           bool   `json:"revoke"`
	Protocol         uint8  `json:"protocol"`
	Algorithm        uint8  `json:"algorithm"`
	AlgorithmName    string `json:"algorithm_name"`
	Deprecated       bool   `json:"deprecated,omitempty"`
	PublicKey        string `json:"public_key"` // base64
	KeyLength        int    `json:"key_length"`
	KeyTag           uint16 `json:"key_tag"`
	KSK              bool   `json:"ksk"`
}

// DecodeRequest carries hex-encoded DNSKEY RDATA.
type DecodeRequest struct {
	RData string `json:"rdata" binding:"required" example:"0101030803010001"`
}

// EncodeRequest describes a key to encode. Flags, when set, takes precedence
// over the individual flag fields. Algorithm accepts a mnemonic or a number.
type EncodeRequest struct {
	Flags            *uint16 `json:"flags,omitempty"`
	ZoneKey          bool    `json:"zone_key"`
	SecureEntryPoint bool    `json:"secure_entry_point"`
	Revoke           bool    `json:"revoke"`
	Algorithm        string  `json:"algorithm" binding:"required" example:"ECDSAP256SHA256"`
	PublicKey        string  `json:"public_key"` // base64
}

// EncodeResponse carries the encoded RDATA.
type EncodeResponse struct {
	RData  string `json:"rdata"` // hex
	Length int    `json:"length"`
	KeyTag uint16 `json:"key_tag"`
}
