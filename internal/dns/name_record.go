package dns

import "fmt"

// NameRecord represents DNS records that contain a single domain name (CNAME, NS, PTR).
type NameRecord struct {
	H      RRHeader
	T      RecordType
	Target string
}

// NewNameRecord creates a new name-based record (CNAME, NS, or PTR).
func NewNameRecord(h RRHeader, rt RecordType, target string) *NameRecord {
	return &NameRecord{H: h, T: rt, Target: target}
}

// NewNSRecord creates a new NS record.
func NewNSRecord(h RRHeader, target string) *NameRecord {
	return NewNameRecord(h, TypeNS, target)
}

// Type returns the record type (CNAME, NS, or PTR).
func (r *NameRecord) Type() RecordType { return r.T }

// Header returns the record header.
func (r *NameRecord) Header() RRHeader { return r.H }

// SetHeader sets the record header.
func (r *NameRecord) SetHeader(h RRHeader) { r.H = h }

// MarshalRData marshals the target name to wire format.
func (r *NameRecord) MarshalRData() ([]byte, error) {
	return EncodeName(r.Target)
}

// ParseNameRData parses CNAME, NS, or PTR record RDATA at the cursor.
// The name may be compressed, so it can occupy fewer octets than it spells.
func ParseNameRData(r *Reader, rdlen uint16, rt RecordType) (*NameRecord, error) {
	start := r.Offset()
	n, err := ReadName(r)
	if err != nil {
		return nil, err
	}
	if r.Offset()-start != int(rdlen) {
		return nil, fmt.Errorf("%w: name record RDATA length mismatch (RFC 1035 §3.3)", ErrDNSError)
	}
	return &NameRecord{Target: n, T: rt}, nil
}
