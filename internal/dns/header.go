package dns

import "fmt"

// Header represents a DNS message header (RFC 1035 Section 4.1.1).
//
// The header is always 12 bytes and contains:
//   - ID: 16-bit identifier for matching requests to responses
//   - Flags: 16-bit field containing QR, Opcode, AA, TC, RD, RA, Z, AD, CD, RCODE
//   - QDCount, ANCount, NSCount, ARCount: section sizes
type Header struct {
	ID      uint16 // Transaction ID
	Flags   uint16 // See enums.go for flag definitions
	QDCount uint16 // Question count
	ANCount uint16 // Answer count
	NSCount uint16 // Authority (nameserver) count
	ARCount uint16 // Additional records count
}

// HeaderSize is the fixed size of a DNS header in bytes.
const HeaderSize = 12

// Marshal serializes the header to wire format (big-endian, 12 bytes).
func (h Header) Marshal() ([]byte, error) {
	w := NewWriter(HeaderSize)
	if err := h.write(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (h Header) write(w *Writer) error {
	if err := w.reserve(HeaderSize); err != nil {
		return err
	}
	for _, v := range [...]uint16{h.ID, h.Flags, h.QDCount, h.ANCount, h.NSCount, h.ARCount} {
		_ = w.WriteUint16(v)
	}
	return nil
}

// ReadHeader reads the 12-byte header at the cursor.
func ReadHeader(r *Reader) (Header, error) {
	if r.Remaining() < HeaderSize {
		return Header{}, fmt.Errorf("reading DNS header: %w: %d bytes", ErrTruncated, r.Remaining())
	}
	var f [6]uint16
	for i := range f {
		f[i], _ = r.ReadUint16()
	}
	return Header{ID: f[0], Flags: f[1], QDCount: f[2], ANCount: f[3], NSCount: f[4], ARCount: f[5]}, nil
}

// RCode returns the response code from the low 4 bits of the flags.
func (h Header) RCode() RCode {
	return RCodeFromFlags(h.Flags)
}

// AuthenticData returns true if the AD (Authenticated Data) flag is set.
// AD=1 indicates the resolver has cryptographically verified all RRSIGs in the answer.
func (h Header) AuthenticData() bool {
	return h.Flags&ADFlag != 0
}

// CheckingDisabled returns true if the CD (Checking Disabled) flag is set.
func (h Header) CheckingDisabled() bool {
	return h.Flags&CDFlag != 0
}

// SetCD sets or clears the CD (Checking Disabled) flag.
// Key inventory queries set CD=1 so that a validating upstream still returns
// a DNSKEY RRset it cannot validate.
func (h *Header) SetCD(enabled bool) {
	if enabled {
		h.Flags |= CDFlag
	} else {
		h.Flags &^= CDFlag
	}
}

// Truncated returns true if the TC (Truncated) flag is set.
func (h Header) Truncated() bool {
	return h.Flags&TCFlag != 0
}

// IsResponse returns true if this is a response (QR=1).
func (h Header) IsResponse() bool {
	return h.Flags&QRFlag != 0
}
