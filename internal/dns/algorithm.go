package dns

import (
	"fmt"
	"strconv"
	"strings"
)

// Algorithm identifies a DNSSEC public-key algorithm (RFC 4034 Appendix A.1,
// IANA "DNS Security Algorithm Numbers" registry). It selects the format of
// the key material that follows it in a DNSKEY record.
type Algorithm uint8

const (
	AlgRSAMD5           Algorithm = 1   // RFC 2537, MUST NOT implement (RFC 8624)
	AlgDH               Algorithm = 2   // Diffie-Hellman (RFC 2539)
	AlgDSA              Algorithm = 3   // DSA/SHA-1 (RFC 2536)
	AlgRSASHA1          Algorithm = 5   // RFC 3110
	AlgDSANSEC3SHA1     Algorithm = 6   // RFC 5155
	AlgRSASHA1NSEC3SHA1 Algorithm = 7   // RFC 5155
	AlgRSASHA256        Algorithm = 8   // RFC 5702
	AlgRSASHA512        Algorithm = 10  // RFC 5702
	AlgECCGOST          Algorithm = 12  // RFC 5933
	AlgECDSAP256SHA256  Algorithm = 13  // RFC 6605
	AlgECDSAP384SHA384  Algorithm = 14  // RFC 6605
	AlgED25519          Algorithm = 15  // RFC 8080
	AlgED448            Algorithm = 16  // RFC 8080
	AlgIndirect         Algorithm = 252 // Reserved for indirect keys
	AlgPrivateDNS       Algorithm = 253 // Private algorithm, domain-name identified
	AlgPrivateOID       Algorithm = 254 // Private algorithm, OID identified
)

var algorithmNames = map[Algorithm]string{
	AlgRSAMD5:           "RSAMD5",
	AlgDH:               "DH",
	AlgDSA:              "DSA",
	AlgRSASHA1:          "RSASHA1",
	AlgDSANSEC3SHA1:     "DSA-NSEC3-SHA1",
	AlgRSASHA1NSEC3SHA1: "RSASHA1-NSEC3-SHA1",
	AlgRSASHA256:        "RSASHA256",
	AlgRSASHA512:        "RSASHA512",
	AlgECCGOST:          "ECC-GOST",
	AlgECDSAP256SHA256:  "ECDSAP256SHA256",
	AlgECDSAP384SHA384:  "ECDSAP384SHA384",
	AlgED25519:          "ED25519",
	AlgED448:            "ED448",
	AlgIndirect:         "INDIRECT",
	AlgPrivateDNS:       "PRIVATEDNS",
	AlgPrivateOID:       "PRIVATEOID",
}

// String returns the registry mnemonic, or ALG<n> for unassigned numbers.
func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return "ALG" + strconv.Itoa(int(a))
}

// Reserved reports the two numbers RFC 4034 reserves (0 and 255).
// They never appear in a valid DNSKEY.
func (a Algorithm) Reserved() bool {
	return a == 0 || a == 255
}

// Deprecated reports algorithms RFC 8624 says MUST NOT or NOT RECOMMENDED
// be used for DNSSEC signing.
func (a Algorithm) Deprecated() bool {
	switch a {
	case AlgRSAMD5, AlgDSA, AlgDSANSEC3SHA1, AlgECCGOST, AlgRSASHA1, AlgRSASHA1NSEC3SHA1:
		return true
	default:
		return false
	}
}

// ParseAlgorithm accepts a mnemonic (case-insensitive) or a decimal number.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.TrimSpace(s)
	for a, name := range algorithmNames {
		if strings.EqualFold(name, s) {
			return a, nil
		}
	}
	digits, _ := strings.CutPrefix(strings.ToUpper(s), "ALG")
	n, err := strconv.ParseUint(digits, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown DNSSEC algorithm %q", s)
	}
	a := Algorithm(n)
	if a.Reserved() {
		return 0, &AlgorithmError{Value: uint8(a)}
	}
	return a, nil
}

// MarshalText encodes the algorithm as its mnemonic.
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts anything ParseAlgorithm does.
func (a *Algorithm) UnmarshalText(b []byte) error {
	v, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ReadAlgorithm decodes the one-octet algorithm field.
// Unassigned numbers are accepted so that keys for future algorithms still
// decode; only the reserved numbers fail.
func ReadAlgorithm(r *Reader) (Algorithm, error) {
	v, err := r.ReadUint8()
	if err != nil {
		return 0, fmt.Errorf("reading algorithm: %w", err)
	}
	a := Algorithm(v)
	if a.Reserved() {
		return 0, &AlgorithmError{Value: v}
	}
	return a, nil
}

// WriteAlgorithm encodes the one-octet algorithm field.
func WriteAlgorithm(w *Writer, a Algorithm) error {
	if a.Reserved() {
		return &AlgorithmError{Value: uint8(a)}
	}
	if err := w.WriteUint8(uint8(a)); err != nil {
		return fmt.Errorf("writing algorithm: %w", err)
	}
	return nil
}
