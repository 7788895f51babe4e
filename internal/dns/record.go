package dns

import "fmt"

// RRHeader contains common metadata for DNS resource records.
// This is distinct from Header which is the DNS message header.
type RRHeader struct {
	Name  string
	Class uint16
	TTL   uint32
}

// NewRRHeader creates a new resource record header.
func NewRRHeader(name string, class RecordClass, ttl uint32) RRHeader {
	return RRHeader{Name: name, Class: uint16(class), TTL: ttl}
}

// Record is the interface for DNS resource records.
// All DNS records implement this interface for type-safe handling.
type Record interface {
	// Type returns the DNS record type.
	Type() RecordType

	// Header returns the record's metadata.
	Header() RRHeader

	// SetHeader sets the record's metadata.
	SetHeader(h RRHeader)

	// MarshalRData marshals the record-specific data (RDATA) to wire format.
	MarshalRData() ([]byte, error)
}

// rdataCodec decodes and encodes RDATA for types that read directly from
// the cursor. decode receives the RDLENGTH of the enclosing record.
type rdataCodec struct {
	decode func(r *Reader, rdlen uint16, rt RecordType) (Record, error)
	encode func(w *Writer, rec Record) error
}

var keyCodec = rdataCodec{decode: decodeDNSKeyRData, encode: encodeDNSKeyRData}

// rdataCodecs routes record types to their codec. Types without an entry
// use the per-type Parse*RData functions or are kept opaque.
var rdataCodecs = map[RecordType]rdataCodec{
	TypeDNSKEY:  keyCodec,
	TypeCDNSKEY: keyCodec,
}

// ReadRecord reads one resource record at the cursor.
//
// Wire layout: NAME, TYPE(2), CLASS(2), TTL(4), RDLENGTH(2), RDATA. The
// RDATA codec for TYPE must consume exactly RDLENGTH bytes.
func ReadRecord(r *Reader) (Record, error) {
	name, err := ReadName(r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() < 10 {
		return nil, fmt.Errorf("reading DNS record: %w", ErrTruncated)
	}
	rrType, _ := r.ReadUint16()
	rrClass, _ := r.ReadUint16()
	ttl, _ := r.ReadUint32()
	rdlen, _ := r.ReadUint16()

	if int(rdlen) > r.Remaining() {
		return nil, fmt.Errorf("reading DNS record rdata: %w: rdlength %d, %d bytes left",
			ErrTruncated, rdlen, r.Remaining())
	}

	rt := RecordType(rrType)
	start := r.Offset()
	rec, err := parseRData(rt, r, rdlen)
	if err != nil {
		return nil, fmt.Errorf("parsing %s rdata: %w", rt, err)
	}
	if consumed := r.Offset() - start; consumed != int(rdlen) {
		return nil, fmt.Errorf("%w: %s rdata used %d of %d bytes", ErrDNSError, rt, consumed, rdlen)
	}
	rec.SetHeader(RRHeader{Name: name, Class: rrClass, TTL: ttl})

	return rec, nil
}

// parseRData parses RDATA into a Record based on record type.
//
// Parsed types:
//   - A, AAAA, CNAME, NS, PTR for building and inspecting answers
//   - DNSKEY, CDNSKEY via the key codec
//
// Everything else is an OpaqueRecord; its bytes pass through unchanged.
func parseRData(rt RecordType, r *Reader, rdlen uint16) (Record, error) {
	if c, ok := rdataCodecs[rt]; ok {
		return c.decode(r, rdlen, rt)
	}
	switch rt {
	case TypeA, TypeAAAA:
		return ParseIPRData(r, rdlen)
	case TypeCNAME, TypeNS, TypePTR:
		return ParseNameRData(r, rdlen, rt)
	default:
		return ParseOpaqueRData(r, rdlen, rt)
	}
}

// writeRData appends the RDATA of rec. Opaque records always pass through
// as raw bytes, whatever their type.
func writeRData(w *Writer, rec Record) error {
	if _, opaque := rec.(*OpaqueRecord); !opaque {
		if c, ok := rdataCodecs[rec.Type()]; ok {
			return c.encode(w, rec)
		}
	}
	b, err := rec.MarshalRData()
	if err != nil {
		return err
	}
	return w.WriteBytes(b)
}

// WriteRecord appends a full resource record and sets its RDLENGTH once the
// RDATA has been written.
func WriteRecord(w *Writer, rec Record) error {
	h := rec.Header()
	rt := rec.Type()

	// OPT always sits at the root name (RFC 6891 §6.1.2).
	if rt == TypeOPT {
		if err := w.WriteUint8(0); err != nil {
			return err
		}
	} else if err := WriteName(w, h.Name); err != nil {
		return err
	}

	if err := w.reserve(10); err != nil {
		return err
	}
	_ = w.WriteUint16(uint16(rt))
	_ = w.WriteUint16(h.Class)
	_ = w.WriteUint32(h.TTL)
	lenOff := w.Len()
	_ = w.WriteUint16(0)

	start := w.Len()
	if err := writeRData(w, rec); err != nil {
		return fmt.Errorf("encoding %s rdata: %w", rt, err)
	}
	rdlen := w.Len() - start
	if rdlen > MaxRDataLength {
		return fmt.Errorf("%w: %s rdata is %d bytes (max %d)", ErrRDataOverflow, rt, rdlen, MaxRDataLength)
	}
	return w.PutUint16At(lenOff, uint16(rdlen))
}

// MarshalRecord converts a Record to wire-format bytes.
func MarshalRecord(r Record) ([]byte, error) {
	w := NewWriter(MaxMessageSize)
	if err := WriteRecord(w, r); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
