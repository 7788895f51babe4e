package dns_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/jroosing/hydrakey/internal/dns"
	mdns "github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cross-checks the DNSKEY codec against github.com/miekg/dns.

func miekgKey(t *testing.T, flags uint16, alg uint8, pub []byte) *mdns.DNSKEY {
	t.Helper()
	return &mdns.DNSKEY{
		Hdr: mdns.RR_Header{
			Name:   "example.com.",
			Rrtype: mdns.TypeDNSKEY,
			Class:  mdns.ClassINET,
			Ttl:    3600,
		},
		Flags:     flags,
		Protocol:  3,
		Algorithm: alg,
		PublicKey: base64.StdEncoding.EncodeToString(pub),
	}
}

func packMiekg(t *testing.T, rr mdns.RR) []byte {
	t.Helper()
	buf := make([]byte, mdns.Len(rr))
	off, err := mdns.PackRR(rr, buf, 0, nil, false)
	require.NoError(t, err)
	return buf[:off]
}

func TestInterop_DecodeMiekgDNSKEY(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	for _, flags := range []uint16{256, 257, 385, 0} {
		mk := miekgKey(t, flags, mdns.ED25519, pub)
		wire := packMiekg(t, mk)

		rec, err := dns.ReadRecord(dns.NewReader(wire))
		require.NoError(t, err)
		kr, ok := rec.(*dns.DNSKeyRecord)
		require.True(t, ok)

		assert.Equal(t, mk.Flags, kr.Flags())
		assert.Equal(t, dns.AlgED25519, kr.Algorithm)
		assert.Equal(t, []byte(pub), kr.PublicKey)
		assert.Equal(t, mk.KeyTag(), kr.KeyTag(), "flags %d", flags)
	}
}

func TestInterop_MiekgDecodesOurEncoding(t *testing.T) {
	pub := make([]byte, 256)
	_, err := rand.Read(pub)
	require.NoError(t, err)

	k := dns.DNSKey{ZoneKey: true, SecureEntryPoint: true, Algorithm: dns.AlgRSASHA256, PublicKey: pub}
	b, err := dns.MarshalRecord(dns.NewDNSKeyRecord(dns.NewRRHeader("example.com", dns.ClassIN, 3600), k))
	require.NoError(t, err)

	rr, off, err := mdns.UnpackRR(b, 0)
	require.NoError(t, err)
	assert.Equal(t, len(b), off)

	mk, ok := rr.(*mdns.DNSKEY)
	require.True(t, ok, "got %T", rr)
	assert.Equal(t, uint16(257), mk.Flags)
	assert.Equal(t, uint8(3), mk.Protocol)
	assert.Equal(t, uint8(dns.AlgRSASHA256), mk.Algorithm)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pub), mk.PublicKey)
	assert.Equal(t, mk.KeyTag(), k.KeyTag())
}

func TestInterop_CDNSKEY(t *testing.T) {
	pub := []byte{0xAB, 0xCD, 0xEF, 0x01}
	ck := &mdns.CDNSKEY{DNSKEY: *miekgKey(t, 257, mdns.ECDSAP256SHA256, pub)}
	ck.Hdr.Rrtype = mdns.TypeCDNSKEY

	rec, err := dns.ReadRecord(dns.NewReader(packMiekg(t, ck)))
	require.NoError(t, err)
	assert.Equal(t, dns.TypeCDNSKEY, rec.Type())

	kr := rec.(*dns.DNSKeyRecord)
	assert.True(t, kr.IsKSK())
	assert.Equal(t, pub, kr.PublicKey)
}

func TestInterop_KeyTagOddLengthKeys(t *testing.T) {
	for _, n := range []int{1, 3, 33, 97} {
		pub := make([]byte, n)
		for i := range pub {
			pub[i] = byte(0xF0 + i)
		}
		mk := miekgKey(t, 256, mdns.ECDSAP384SHA384, pub)
		k := dns.DNSKey{ZoneKey: true, Algorithm: dns.AlgECDSAP384SHA384, PublicKey: pub}
		assert.Equal(t, mk.KeyTag(), k.KeyTag(), "key length %d", n)
	}
}

func TestInterop_ResponseMessage(t *testing.T) {
	m := new(mdns.Msg)
	m.SetQuestion("example.com.", mdns.TypeDNSKEY)
	m.Response = true
	m.RecursionAvailable = true
	m.CheckingDisabled = true
	m.Answer = []mdns.RR{
		miekgKey(t, 256, mdns.ECDSAP256SHA256, make([]byte, 64)),
		miekgKey(t, 257, mdns.ECDSAP256SHA256, append(make([]byte, 63), 1)),
	}
	m.SetEdns0(1232, true)
	m.Compress = true

	wire, err := m.Pack()
	require.NoError(t, err)

	query := keyQuery(m.Id, "example.com")
	p, err := dns.ParseResponse(wire, query)
	require.NoError(t, err)
	require.Len(t, p.Answers, 2)

	for i, rr := range m.Answer {
		kr, ok := p.Answers[i].(*dns.DNSKeyRecord)
		require.True(t, ok)
		assert.Equal(t, "example.com", kr.Header().Name, "compressed owner decoded")
		assert.Equal(t, rr.(*mdns.DNSKEY).KeyTag(), kr.KeyTag())
	}

	opt := dns.ExtractOPT(p.Additionals)
	require.NotNil(t, opt)
	assert.True(t, opt.DNSSECOk)
	assert.Equal(t, uint16(1232), opt.UDPPayloadSize)
}
