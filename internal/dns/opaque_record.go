package dns

import "fmt"

// OpaqueRecord carries the raw RDATA of a record type this package does not
// interpret (MX, TXT, OPT, RRSIG, DS, ...). It is also the escape hatch for
// passing any record through untouched: encoding never routes an
// OpaqueRecord to a type codec.
type OpaqueRecord struct {
	H    RRHeader
	T    RecordType
	Data []byte
}

// NewOpaqueRecord creates a new opaque record for unknown/unsupported types.
func NewOpaqueRecord(h RRHeader, rt RecordType, data []byte) *OpaqueRecord {
	return &OpaqueRecord{H: h, T: rt, Data: data}
}

// Type returns the record type.
func (r *OpaqueRecord) Type() RecordType { return r.T }

// Header returns the record header.
func (r *OpaqueRecord) Header() RRHeader { return r.H }

// SetHeader sets the record header.
func (r *OpaqueRecord) SetHeader(h RRHeader) { r.H = h }

// MarshalRData returns the raw data.
func (r *OpaqueRecord) MarshalRData() ([]byte, error) {
	if len(r.Data) > MaxRDataLength {
		return nil, fmt.Errorf("%w: opaque rdata is %d bytes", ErrRDataOverflow, len(r.Data))
	}
	return r.Data, nil
}

// ParseOpaqueRData copies rdlen bytes of RDATA at the cursor.
func ParseOpaqueRData(r *Reader, rdlen uint16, rt RecordType) (*OpaqueRecord, error) {
	b, err := r.ReadBytes(int(rdlen))
	if err != nil {
		return nil, fmt.Errorf("reading %s rdata: %w", rt, err)
	}
	return &OpaqueRecord{T: rt, Data: b}, nil
}
