package dns

import (
	"fmt"
	"strings"
)

// Name limits (RFC 1035 Section 2.3.4).
const (
	maxLabelLen         = 63
	maxNameWireLen      = 255
	maxCompressionDepth = 20
)

// NormalizeName converts a domain name to lowercase without trailing dots.
// DNS names compare case-insensitively (RFC 4343).
func NormalizeName(name string) string {
	return strings.ToLower(trimDot(name))
}

// CanonicalName returns the lower-case form of name used as a lookup key,
// with "." for the root. It fails if the name cannot be encoded.
func CanonicalName(name string) (string, error) {
	n := NormalizeName(strings.TrimSpace(name))
	if n == "" {
		return ".", nil
	}
	if _, err := EncodeName(n); err != nil {
		return "", err
	}
	return n, nil
}

// EqualNames compares two domain names case-insensitively, ignoring trailing dots.
func EqualNames(a, b string) bool {
	return strings.EqualFold(trimDot(a), trimDot(b))
}

// EncodeName encodes a domain name to uncompressed DNS wire format
// (RFC 1035 Section 3.1).
//
// Each label is a length octet followed by the label bytes; the name ends
// with the zero-length root label:
//
//	"www.example.com" → [3]www[7]example[3]com[0]
//
// Labels are limited to 63 bytes, the whole name to 255, and only ASCII is
// accepted (no IDN handling). "." encodes as the root name.
func EncodeName(domain string) ([]byte, error) {
	w := NewWriter(maxNameWireLen)
	if err := WriteName(w, domain); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// WriteName appends an uncompressed domain name to w.
func WriteName(w *Writer, domain string) error {
	if domain == "" {
		return fmt.Errorf("%w: domain name must be non-empty", ErrDNSError)
	}
	domain = trimDot(domain)

	var labels []string
	if domain != "" {
		labels = strings.Split(domain, ".")
	}

	wire := 1 // root label
	for _, label := range labels {
		if label == "" {
			return fmt.Errorf("%w: invalid domain name (empty label): %q", ErrDNSError, domain)
		}
		if len(label) > maxLabelLen {
			return fmt.Errorf("%w: DNS label too long (%d > %d): %q", ErrDNSError, len(label), maxLabelLen, label)
		}
		if !isASCII(label) {
			return fmt.Errorf("%w: domain name must be ASCII", ErrDNSError)
		}
		wire += 1 + len(label)
	}
	if wire > maxNameWireLen {
		return fmt.Errorf("%w: encoded domain name too long (%d > %d)", ErrDNSError, wire, maxNameWireLen)
	}
	if err := w.reserve(wire); err != nil {
		return err
	}

	for _, label := range labels {
		_ = w.WriteUint8(uint8(len(label)))
		_ = w.WriteBytes([]byte(label))
	}
	return w.WriteUint8(0)
}

// DecodeName decodes a possibly-compressed domain name at msg[*off] and
// advances *off past it. See ReadName.
func DecodeName(msg []byte, off *int) (string, error) {
	r := NewReaderAt(msg, *off)
	name, err := ReadName(r)
	if err != nil {
		return "", err
	}
	*off = r.Offset()
	return name, nil
}

// ReadName decodes a possibly-compressed domain name (RFC 1035 Section 4.1.4).
//
// A length octet with the two high bits set starts a compression pointer:
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	| 1  1|                OFFSET                   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// OFFSET is relative to the start of the message. The cursor ends after the
// first pointer (or after the root label when there is none). Pointer loops,
// excessive indirection, reserved label types, non-ASCII labels and names
// longer than 255 octets are rejected.
//
// Returns a dot-separated name without a trailing dot; the root name is ".".
func ReadName(r *Reader) (string, error) {
	labels := make([]string, 0, 6)
	visited := map[int]struct{}{}
	cur := r
	wire := 0

	for {
		l, err := cur.ReadUint8()
		if err != nil {
			return "", fmt.Errorf("decoding DNS name: %w", err)
		}

		switch {
		case l == 0:
			if len(labels) == 0 {
				return ".", nil
			}
			return strings.Join(labels, "."), nil

		case isCompressionPointer(l):
			lo, err := cur.ReadUint8()
			if err != nil {
				return "", fmt.Errorf("decoding compression pointer: %w", err)
			}
			ptr := int(l&0x3F)<<8 | int(lo)
			if ptr >= len(r.msg) {
				return "", fmt.Errorf("%w: DNS compression pointer out of bounds", ErrDNSError)
			}
			if _, seen := visited[ptr]; seen {
				return "", fmt.Errorf("%w: DNS compression pointer loop detected", ErrDNSError)
			}
			if len(visited) >= maxCompressionDepth {
				return "", fmt.Errorf("%w: too many DNS compression pointer indirections", ErrDNSError)
			}
			visited[ptr] = struct{}{}
			// r stays just past the pointer; the rest is read from a detached cursor.
			cur = NewReaderAt(r.msg, ptr)

		case hasReservedBits(l):
			return "", fmt.Errorf("%w: invalid DNS label length (reserved high bits set)", ErrDNSError)

		default:
			b, err := cur.ReadBytes(int(l))
			if err != nil {
				return "", fmt.Errorf("reading DNS label: %w", err)
			}
			if !isASCII(string(b)) {
				return "", fmt.Errorf("%w: decoded DNS name was not ASCII", ErrDNSError)
			}
			wire += 1 + len(b)
			if wire+1 > maxNameWireLen {
				return "", fmt.Errorf("%w: decoded DNS name longer than %d octets", ErrDNSError, maxNameWireLen)
			}
			labels = append(labels, string(b))
		}
	}
}

// isCompressionPointer checks for the 11xxxxxx label type.
func isCompressionPointer(b byte) bool {
	return (b & 0xC0) == 0xC0
}

// hasReservedBits checks for the reserved 01xxxxxx and 10xxxxxx label types.
func hasReservedBits(b byte) bool {
	return (b & 0xC0) != 0
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

// trimDot removes all trailing dots from a string.
func trimDot(s string) string {
	return strings.TrimRight(s, ".")
}
