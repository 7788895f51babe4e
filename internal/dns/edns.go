package dns

import "github.com/jroosing/hydrakey/internal/helpers"

// EDNS (Extension Mechanisms for DNS) constants per RFC 6891.
const (
	DefaultUDPPayloadSize     = 512  // Traditional DNS UDP limit (RFC 1035)
	EDNSDefaultUDPPayloadSize = 1232 // Safe EDNS size avoiding fragmentation
	EDNSMaxUDPPayloadSize     = 4096 // Maximum practical EDNS UDP size
	EDNSMinUDPPayloadSize     = 512  // Minimum EDNS UDP payload size
)

// EDNSOption represents an EDNS option in the OPT record's RDATA.
type EDNSOption struct {
	Code uint16 // Option code
	Data []byte // Option data
}

// OPTRecord represents an EDNS OPT pseudo-record (RFC 6891).
//
// The OPT record uses a non-standard encoding:
//   - NAME: Must be root (0x00)
//   - TYPE: 41 (OPT)
//   - CLASS: Sender's UDP payload size (not a class!)
//   - TTL: Extended RCODE, version, and flags (packed into 32 bits)
//   - RDATA: Zero or more EDNS options
//
// TTL field layout (32 bits):
//
//	+---+---+---+---+---+---+---+---+---+---+---+---+---+---+---+---+
//	|         EXTENDED-RCODE        |            VERSION            |
//	+---+---+---+---+---+---+---+---+---+---+---+---+---+---+---+---+
//	| DO|                    Z (reserved)                           |
//	+---+---+---+---+---+---+---+---+---+---+---+---+---+---+---+---+
type OPTRecord struct {
	UDPPayloadSize uint16       // Sender's maximum UDP payload size
	ExtendedRCode  uint8        // Upper 8 bits of RCODE
	Version        uint8        // EDNS version (must be 0)
	DNSSECOk       bool         // DO flag: sender wants DNSSEC records
	Options        []EDNSOption // EDNS options
}

const ednsDOBit = 1 << 15

// CreateOPT creates an OPT record advertising the given UDP payload size.
func CreateOPT(udpPayloadSize int) OPTRecord {
	sz := helpers.ClampInt(udpPayloadSize, EDNSMinUDPPayloadSize, 65535)
	return OPTRecord{UDPPayloadSize: helpers.ClampIntToUint16(sz)}
}

// Record converts the OPT record into a Record ready for the additional section.
func (o OPTRecord) Record() Record {
	w := NewRDataWriter()
	for _, opt := range o.Options {
		if w.reserve(4+len(opt.Data)) != nil {
			break
		}
		_ = w.WriteUint16(opt.Code)
		_ = w.WriteUint16(helpers.ClampIntToUint16(len(opt.Data)))
		_ = w.WriteBytes(opt.Data)
	}
	h := RRHeader{Name: ".", Class: o.UDPPayloadSize, TTL: o.packTTL()}
	return NewOpaqueRecord(h, TypeOPT, w.Bytes())
}

func (o OPTRecord) packTTL() uint32 {
	ttl := uint32(o.ExtendedRCode)<<24 | uint32(o.Version)<<16
	if o.DNSSECOk {
		ttl |= ednsDOBit
	}
	return ttl
}

// ExtractOPT finds and parses an OPT record from the additionals section.
// Returns nil if no OPT record is present.
func ExtractOPT(additionals []Record) *OPTRecord {
	for _, rec := range additionals {
		opaque, ok := rec.(*OpaqueRecord)
		if !ok || opaque.Type() != TypeOPT {
			continue
		}
		h := opaque.Header()
		return &OPTRecord{
			UDPPayloadSize: h.Class,
			ExtendedRCode:  helpers.ClampUint32ToUint8(h.TTL >> 24 & 0xFF),
			Version:        helpers.ClampUint32ToUint8(h.TTL >> 16 & 0xFF),
			DNSSECOk:       h.TTL&ednsDOBit != 0,
			Options:        parseEDNSOptions(opaque.Data),
		}
	}
	return nil
}

// parseEDNSOptions splits OPT RDATA into options. A truncated trailing
// option ends parsing.
func parseEDNSOptions(rdata []byte) []EDNSOption {
	var opts []EDNSOption
	r := NewReader(rdata)
	for r.Remaining() >= 4 {
		code, _ := r.ReadUint16()
		ln, _ := r.ReadUint16()
		data, err := r.ReadBytes(int(ln))
		if err != nil {
			break
		}
		opts = append(opts, EDNSOption{Code: code, Data: data})
	}
	return opts
}

// IsTruncated checks if a DNS response has the TC (Truncation) flag set.
// This indicates the message was truncated and should be retried over TCP.
func IsTruncated(responseBytes []byte) bool {
	h, err := ReadHeader(NewReader(responseBytes))
	if err != nil {
		return false
	}
	return h.Truncated()
}
