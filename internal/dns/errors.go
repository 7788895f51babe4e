// Package dns provides DNS protocol parsing, encoding, and packet manipulation.
//
// Standards Compliance:
//
// This package implements DNS protocol features from the following RFCs:
//
//   - RFC 1035: Domain Names - Implementation and Specification (core DNS protocol)
//   - RFC 3596: DNS Extensions to Support IPv6 (AAAA records)
//   - RFC 4034: DNSSEC Resource Records (DNSKEY wire format, key tags)
//   - RFC 4035: DNSSEC Protocol Extensions (AD, CD flags)
//   - RFC 5011: Automated Updates of DNSSEC Trust Anchors (REVOKE flag)
//   - RFC 6891: Extension Mechanisms for DNS (EDNS, OPT records, DO bit)
//   - RFC 7344: Automating DNSSEC Delegation Trust Maintenance (CDNSKEY)
//
// Type-Oriented Design:
//
// Each DNS record type is represented by an explicit type (IPRecord, NameRecord,
// DNSKeyRecord, etc.) rather than a generic struct. Wire access goes through the
// bounds-checked Reader and Writer cursors.
//
// Error Handling:
//
// Every wire violation wraps ErrDNSError. Short reads additionally wrap
// ErrTruncated, and typed errors (ProtocolError, AlgorithmError) carry the
// offending octet for errors.As.
package dns

import (
	"errors"
	"fmt"
)

var (
	// ErrDNSError is a sentinel error type for DNS protocol violations.
	// Wrap this with fmt.Errorf("context: %w", ErrDNSError) to add context.
	ErrDNSError = errors.New("dns wire error")

	// ErrTruncated reports fewer bytes available than a field requires.
	ErrTruncated = fmt.Errorf("%w: unexpected end of data", ErrDNSError)

	// ErrRDataTooShort reports a declared RDATA length that cannot hold the
	// fixed fields of its record type. It is a length-field inconsistency,
	// not a short read, and does not wrap ErrTruncated.
	ErrRDataTooShort = fmt.Errorf("%w: rdata length shorter than fixed fields", ErrDNSError)

	// ErrRDataOverflow reports output that would exceed the writer limit.
	ErrRDataOverflow = fmt.Errorf("%w: encoded data exceeds limit", ErrDNSError)
)

// ProtocolError is returned when a DNSKEY protocol octet is not 3.
type ProtocolError struct {
	Value uint8
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%v: DNSKEY protocol must be %d (RFC 4034 §2.1.2), got %d",
		ErrDNSError, DNSKeyProtocol, e.Value)
}

// Unwrap lets errors.Is(err, ErrDNSError) match.
func (e *ProtocolError) Unwrap() error { return ErrDNSError }

// AlgorithmError is returned for reserved DNSSEC algorithm numbers (0 and 255).
type AlgorithmError struct {
	Value uint8
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("%v: reserved DNSSEC algorithm number %d (RFC 4034 App. A.1)", ErrDNSError, e.Value)
}

// Unwrap lets errors.Is(err, ErrDNSError) match.
func (e *AlgorithmError) Unwrap() error { return ErrDNSError }
