package dns

import (
	"errors"
	"fmt"
)

// Limits applied while parsing messages, to bound work done on untrusted input.
const (
	MaxQuestions    = 4   // Maximum questions per message
	MaxRRPerSection = 100 // Initial allocation cap per section
	MaxTotalRR      = 512 // Maximum total resource records in a response
)

// Response validation errors.
var (
	ErrNotResponse      = errors.New("dns: packet is not a response (QR flag clear)")
	ErrIDMismatch       = errors.New("dns: response transaction ID does not match query")
	ErrQuestionMismatch = errors.New("dns: response question does not match query")
)

// ParseResponse parses msg as the answer to query and checks that it belongs
// to it: QR set, same transaction ID, same question (QNAME compared
// case-insensitively). Matching the question mitigates spoofed or stale
// answers arriving on a reused socket.
func ParseResponse(msg []byte, query Packet) (Packet, error) {
	if len(msg) > MaxMessageSize {
		return Packet{}, fmt.Errorf("%w: message too large (%d bytes)", ErrDNSError, len(msg))
	}
	h, err := ReadHeader(NewReader(msg))
	if err != nil {
		return Packet{}, err
	}
	if err := validateSectionCounts(h); err != nil {
		return Packet{}, err
	}

	p, err := ParsePacket(msg)
	if err != nil {
		return Packet{}, err
	}
	if !p.Header.IsResponse() {
		return Packet{}, ErrNotResponse
	}
	if p.Header.ID != query.Header.ID {
		return Packet{}, fmt.Errorf("%w: got %d, want %d", ErrIDMismatch, p.Header.ID, query.Header.ID)
	}
	if len(query.Questions) > 0 {
		if len(p.Questions) == 0 {
			return Packet{}, fmt.Errorf("%w: response has no question section", ErrQuestionMismatch)
		}
		if want, got := query.Questions[0], p.Questions[0]; !want.Matches(got) {
			return Packet{}, fmt.Errorf("%w: expected %s/%s, got %s/%s", ErrQuestionMismatch,
				want.Name, RecordType(want.Type), got.Name, RecordType(got.Type))
		}
	}
	return p, nil
}

// validateSectionCounts checks header counts before any section is parsed.
func validateSectionCounts(h Header) error {
	if int(h.QDCount) > MaxQuestions {
		return fmt.Errorf("%w: too many questions (%d)", ErrDNSError, h.QDCount)
	}
	if total := int(h.ANCount) + int(h.NSCount) + int(h.ARCount); total > MaxTotalRR {
		return fmt.Errorf("%w: too many resource records (%d)", ErrDNSError, total)
	}
	return nil
}
