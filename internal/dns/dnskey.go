package dns

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DNSKEY RDATA layout (RFC 4034 Section 2.1):
//
//	                     1 1 1 1 1 1 1 1 1 1 2 2 2 2 2 2 2 2 2 2 3 3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|              Flags            |    Protocol   |   Algorithm   |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	/                                                               /
//	/                            Public Key                         /
//	/                                                               /
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//
// Flag bits are numbered from the most significant bit:
//   - Bit 7 (0x0100): Zone Key
//   - Bit 8 (0x0080): REVOKE (RFC 5011)
//   - Bit 15 (0x0001): Secure Entry Point
//
// All other bits are reserved: ignored on receipt, emitted as zero.
// The public key has no length prefix; its length is RDLENGTH minus the
// four fixed octets.
const (
	DNSKeyFlagZone   uint16 = 0x0100
	DNSKeyFlagRevoke uint16 = 0x0080
	DNSKeyFlagSEP    uint16 = 0x0001

	DNSKeyProtocol uint8 = 3 // Only defined value (RFC 4034 §2.1.2)
	DNSKeyFixedLen       = 4 // Flags(2) + Protocol(1) + Algorithm(1)
)

// DNSKey is the decoded RDATA of a DNSKEY or CDNSKEY record.
//
// The protocol octet is not kept: it is always 3 and is checked on decode.
// DNSKey is a plain value; compare with Equal because PublicKey is a slice.
type DNSKey struct {
	ZoneKey          bool      // Key may sign the zone's RRsets
	SecureEntryPoint bool      // Advisory KSK hint; no effect on validation
	Revoke           bool      // Key is revoked (RFC 5011)
	Algorithm        Algorithm // Public-key algorithm
	PublicKey        []byte    // Opaque, algorithm-specific key material
}

// Flags composes the 16-bit flags field. Reserved bits are always zero.
func (k DNSKey) Flags() uint16 {
	var f uint16
	if k.ZoneKey {
		f |= DNSKeyFlagZone
	}
	if k.SecureEntryPoint {
		f |= DNSKeyFlagSEP
	}
	if k.Revoke {
		f |= DNSKeyFlagRevoke
	}
	return f
}

// IsKSK reports whether the key is a zone key with the SEP bit set.
func (k DNSKey) IsKSK() bool {
	return k.ZoneKey && k.SecureEntryPoint
}

// Equal reports whether two keys have identical fields.
// A nil and an empty PublicKey compare equal.
func (k DNSKey) Equal(o DNSKey) bool {
	return k.ZoneKey == o.ZoneKey &&
		k.SecureEntryPoint == o.SecureEntryPoint &&
		k.Revoke == o.Revoke &&
		k.Algorithm == o.Algorithm &&
		bytes.Equal(k.PublicKey, o.PublicKey)
}

// DecodeDNSKey decodes DNSKEY RDATA at the cursor.
//
// rdlen is the RDLENGTH of the enclosing resource record; the public key is
// the rdlen-4 bytes after the fixed fields. Reserved flag bits are ignored.
// On error no key is returned.
func DecodeDNSKey(r *Reader, rdlen uint16) (DNSKey, error) {
	flags, err := r.ReadUint16()
	if err != nil {
		return DNSKey{}, fmt.Errorf("reading DNSKEY flags: %w", err)
	}

	proto, err := r.ReadUint8()
	if err != nil {
		return DNSKey{}, fmt.Errorf("reading DNSKEY protocol: %w", err)
	}
	if proto != DNSKeyProtocol {
		return DNSKey{}, &ProtocolError{Value: proto}
	}

	alg, err := ReadAlgorithm(r)
	if err != nil {
		return DNSKey{}, err
	}

	if rdlen < DNSKeyFixedLen {
		return DNSKey{}, fmt.Errorf("%w: DNSKEY rdata length %d, need at least %d",
			ErrRDataTooShort, rdlen, DNSKeyFixedLen)
	}
	key, err := r.ReadBytes(int(rdlen - DNSKeyFixedLen))
	if err != nil {
		return DNSKey{}, fmt.Errorf("reading DNSKEY public key: %w", err)
	}

	return DNSKey{
		ZoneKey:          flags&DNSKeyFlagZone != 0,
		SecureEntryPoint: flags&DNSKeyFlagSEP != 0,
		Revoke:           flags&DNSKeyFlagRevoke != 0,
		Algorithm:        alg,
		PublicKey:        key,
	}, nil
}

// EncodeDNSKey appends DNSKEY RDATA to the cursor.
//
// The key bytes are written verbatim with no length prefix; the caller sets
// RDLENGTH of the enclosing record. Key content is not validated. On error
// nothing is appended.
func EncodeDNSKey(w *Writer, k DNSKey) error {
	if k.Algorithm.Reserved() {
		return &AlgorithmError{Value: uint8(k.Algorithm)}
	}
	if err := w.reserve(DNSKeyFixedLen + len(k.PublicKey)); err != nil {
		return fmt.Errorf("writing DNSKEY: %w", err)
	}
	// reserve succeeded, so the writes below cannot fail.
	_ = w.WriteUint16(k.Flags())
	_ = w.WriteUint8(DNSKeyProtocol)
	_ = WriteAlgorithm(w, k.Algorithm)
	_ = w.WriteBytes(k.PublicKey)
	return nil
}

// MarshalRData encodes the key as standalone RDATA.
func (k DNSKey) MarshalRData() ([]byte, error) {
	w := NewRDataWriter()
	if err := EncodeDNSKey(w, k); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// ParseDNSKeyRData decodes standalone RDATA, taking RDLENGTH from len(rdata).
func ParseDNSKeyRData(rdata []byte) (DNSKey, error) {
	if len(rdata) > MaxRDataLength {
		return DNSKey{}, fmt.Errorf("%w: DNSKEY rdata is %d bytes", ErrRDataOverflow, len(rdata))
	}
	return DecodeDNSKey(NewReader(rdata), uint16(len(rdata)))
}

// KeyTag computes the key tag of RFC 4034 Appendix B, the 16-bit value RRSIG
// and DS records use to name the key.
//
// For RSAMD5 the tag is the most significant 16 of the least significant 24
// bits of the modulus (Appendix B.1); a key too short to hold them yields 0.
func (k DNSKey) KeyTag() uint16 {
	if k.Algorithm == AlgRSAMD5 {
		n := len(k.PublicKey)
		if n < 3 {
			return 0
		}
		return binary.BigEndian.Uint16(k.PublicKey[n-3 : n-1])
	}

	// One's-complement-style sum over the RDATA as 16-bit words. The fixed
	// part is two whole words, so the key starts on a word boundary.
	ac := uint32(k.Flags()) + uint32(DNSKeyProtocol)<<8 + uint32(k.Algorithm)
	for i, b := range k.PublicKey {
		if i&1 == 0 {
			ac += uint32(b) << 8
		} else {
			ac += uint32(b)
		}
	}
	ac += ac >> 16 & 0xFFFF
	return uint16(ac & 0xFFFF)
}

// DNSKeyRecord is a DNSKEY (RFC 4034) or CDNSKEY (RFC 7344) resource record.
// Both types share the same RDATA format.
type DNSKeyRecord struct {
	H RRHeader
	T RecordType // TypeDNSKEY or TypeCDNSKEY; zero means TypeDNSKEY
	DNSKey
}

// NewDNSKeyRecord creates a DNSKEY record.
func NewDNSKeyRecord(h RRHeader, k DNSKey) *DNSKeyRecord {
	return &DNSKeyRecord{H: h, T: TypeDNSKEY, DNSKey: k}
}

// NewCDNSKeyRecord creates a CDNSKEY record (child copy of a DNSKEY for the parent).
func NewCDNSKeyRecord(h RRHeader, k DNSKey) *DNSKeyRecord {
	return &DNSKeyRecord{H: h, T: TypeCDNSKEY, DNSKey: k}
}

// Type returns TypeDNSKEY or TypeCDNSKEY.
func (r *DNSKeyRecord) Type() RecordType {
	if r.T == 0 {
		return TypeDNSKEY
	}
	return r.T
}

// Header returns the record header.
func (r *DNSKeyRecord) Header() RRHeader { return r.H }

// SetHeader sets the record header.
func (r *DNSKeyRecord) SetHeader(h RRHeader) { r.H = h }

func decodeDNSKeyRData(r *Reader, rdlen uint16, rt RecordType) (Record, error) {
	k, err := DecodeDNSKey(r, rdlen)
	if err != nil {
		return nil, err
	}
	return &DNSKeyRecord{T: rt, DNSKey: k}, nil
}

// encodeDNSKeyRData is the dispatch entry for DNSKEY and CDNSKEY.
// Handing it any other record is a dispatch bug, so it panics rather than
// returning an error.
func encodeDNSKeyRData(w *Writer, rec Record) error {
	kr, ok := rec.(*DNSKeyRecord)
	if !ok {
		panic(fmt.Sprintf("dns: DNSKEY codec called with %T for type %s", rec, rec.Type()))
	}
	return EncodeDNSKey(w, kr.DNSKey)
}
