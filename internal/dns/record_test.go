package dns_test

import (
	"net"
	"testing"

	"github.com/jroosing/hydrakey/internal/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKeyRecord claims to be a DNSKEY without being a *DNSKeyRecord.
type fakeKeyRecord struct{ h dns.RRHeader }

func (f *fakeKeyRecord) Type() dns.RecordType          { return dns.TypeDNSKEY }
func (f *fakeKeyRecord) Header() dns.RRHeader          { return f.h }
func (f *fakeKeyRecord) SetHeader(h dns.RRHeader)      { f.h = h }
func (f *fakeKeyRecord) MarshalRData() ([]byte, error) { return []byte{1, 2, 3}, nil }

func keyRR(t *testing.T, rt dns.RecordType, rdata []byte) []byte {
	t.Helper()
	w := dns.NewWriter(0)
	require.NoError(t, dns.WriteName(w, "example.com"))
	require.NoError(t, w.WriteUint16(uint16(rt)))
	require.NoError(t, w.WriteUint16(uint16(dns.ClassIN)))
	require.NoError(t, w.WriteUint32(3600))
	require.NoError(t, w.WriteUint16(uint16(len(rdata))))
	require.NoError(t, w.WriteBytes(rdata))
	return w.Bytes()
}

func TestReadRecord_DNSKEY(t *testing.T) {
	rdata := encodeKey(t, sampleKey())
	msg := keyRR(t, dns.TypeDNSKEY, rdata)

	rec, err := dns.ReadRecord(dns.NewReader(msg))
	require.NoError(t, err)

	kr, ok := rec.(*dns.DNSKeyRecord)
	require.True(t, ok, "got %T", rec)
	assert.Equal(t, dns.TypeDNSKEY, kr.Type())
	assert.Equal(t, "example.com", kr.Header().Name)
	assert.Equal(t, uint32(3600), kr.Header().TTL)
	assert.True(t, kr.DNSKey.Equal(sampleKey()))
}

func TestReadRecord_CDNSKEY(t *testing.T) {
	msg := keyRR(t, dns.TypeCDNSKEY, encodeKey(t, sampleKey()))

	rec, err := dns.ReadRecord(dns.NewReader(msg))
	require.NoError(t, err)
	assert.Equal(t, dns.TypeCDNSKEY, rec.Type())
	assert.IsType(t, &dns.DNSKeyRecord{}, rec)
}

func TestReadRecord_DNSKEYErrorsAreWrapped(t *testing.T) {
	msg := keyRR(t, dns.TypeDNSKEY, []byte{0x01, 0x00, 0x02, 8, 0xAA})

	_, err := dns.ReadRecord(dns.NewReader(msg))
	var protoErr *dns.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Contains(t, err.Error(), "parsing DNSKEY rdata")
}

func TestReadRecord_DNSKEYTooShortRDLength(t *testing.T) {
	// RDLENGTH 2 but the fixed fields follow anyway. The decoder reads the
	// header octets, then rejects the length.
	w := dns.NewWriter(0)
	require.NoError(t, dns.WriteName(w, "."))
	require.NoError(t, w.WriteUint16(uint16(dns.TypeDNSKEY)))
	require.NoError(t, w.WriteUint16(1))
	require.NoError(t, w.WriteUint32(0))
	require.NoError(t, w.WriteUint16(2))
	require.NoError(t, w.WriteBytes([]byte{0x01, 0x01, 0x03, 8}))

	_, err := dns.ReadRecord(dns.NewReader(w.Bytes()))
	require.ErrorIs(t, err, dns.ErrRDataTooShort)
}

func TestReadRecord_RDLengthBeyondMessage(t *testing.T) {
	msg := keyRR(t, dns.TypeDNSKEY, encodeKey(t, sampleKey()))
	msg = msg[:len(msg)-1]

	_, err := dns.ReadRecord(dns.NewReader(msg))
	require.ErrorIs(t, err, dns.ErrTruncated)
}

func TestReadRecord_ConsumedLengthMismatch(t *testing.T) {
	// A CNAME whose RDLENGTH covers one byte more than the compressed name.
	w := dns.NewWriter(0)
	require.NoError(t, dns.WriteName(w, "a.example"))
	require.NoError(t, w.WriteUint16(uint16(dns.TypeCNAME)))
	require.NoError(t, w.WriteUint16(1))
	require.NoError(t, w.WriteUint32(60))
	require.NoError(t, w.WriteUint16(3))
	require.NoError(t, w.WriteBytes([]byte{0xC0, 0x00, 0x00}))

	_, err := dns.ReadRecord(dns.NewReader(w.Bytes()))
	require.ErrorIs(t, err, dns.ErrDNSError)
}

func TestReadRecord_TruncatedFixedFields(t *testing.T) {
	msg := keyRR(t, dns.TypeDNSKEY, nil)
	_, err := dns.ReadRecord(dns.NewReader(msg[:len(msg)-4]))
	require.ErrorIs(t, err, dns.ErrTruncated)
}

func TestWriteRecord_DNSKEY(t *testing.T) {
	rec := dns.NewDNSKeyRecord(dns.NewRRHeader("example.com", dns.ClassIN, 3600), sampleKey())

	b, err := dns.MarshalRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, keyRR(t, dns.TypeDNSKEY, encodeKey(t, sampleKey())), b)
}

func TestWriteRecord_RoundTrip(t *testing.T) {
	h := dns.NewRRHeader("example.com", dns.ClassIN, 300)
	records := []dns.Record{
		dns.NewDNSKeyRecord(h, sampleKey()),
		dns.NewCDNSKeyRecord(h, dns.DNSKey{ZoneKey: true, Revoke: true, Algorithm: dns.AlgED448, PublicKey: []byte{1}}),
		dns.NewIPRecord(h, net.ParseIP("192.0.2.1")),
		dns.NewIPRecord(h, net.ParseIP("2001:db8::1")),
		dns.NewNSRecord(h, "ns1.example.com"),
		dns.NewNameRecord(h, dns.TypeCNAME, "target.example.com"),
		dns.NewOpaqueRecord(h, dns.TypeTXT, []byte("\x05hello")),
	}

	for _, rec := range records {
		t.Run(rec.Type().String(), func(t *testing.T) {
			b, err := dns.MarshalRecord(rec)
			require.NoError(t, err)

			r := dns.NewReader(b)
			got, err := dns.ReadRecord(r)
			require.NoError(t, err)
			assert.Zero(t, r.Remaining())
			assert.Equal(t, rec.Type(), got.Type())
			assert.Equal(t, rec.Header(), got.Header())

			want, err := rec.MarshalRData()
			require.NoError(t, err)
			have, err := got.MarshalRData()
			require.NoError(t, err)
			assert.Equal(t, want, have)
		})
	}
}

func TestWriteRecord_VariantMismatchPanics(t *testing.T) {
	rec := &fakeKeyRecord{h: dns.NewRRHeader("example.com", dns.ClassIN, 60)}

	assert.PanicsWithValue(t,
		"dns: DNSKEY codec called with *dns_test.fakeKeyRecord for type DNSKEY",
		func() { _, _ = dns.MarshalRecord(rec) })
}

func TestWriteRecord_OpaqueBypassesCodecs(t *testing.T) {
	// Deliberately invalid DNSKEY RDATA survives because opaque records are
	// never routed to the key codec.
	raw := []byte{0xFF, 0xFF, 0x09}
	rec := dns.NewOpaqueRecord(dns.NewRRHeader("example.com", dns.ClassIN, 60), dns.TypeDNSKEY, raw)

	b, err := dns.MarshalRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x03}, b[len(b)-5:len(b)-3], "RDLENGTH")
	assert.Equal(t, raw, b[len(b)-3:])

	_, err = dns.ReadRecord(dns.NewReader(b))
	var protoErr *dns.ProtocolError
	require.ErrorAs(t, err, &protoErr, "decoding still validates")
}

func TestWriteRecord_ReservedAlgorithm(t *testing.T) {
	rec := dns.NewDNSKeyRecord(dns.NewRRHeader("example.com", dns.ClassIN, 60), dns.DNSKey{Algorithm: 0})

	_, err := dns.MarshalRecord(rec)
	var algErr *dns.AlgorithmError
	require.ErrorAs(t, err, &algErr)
	assert.Contains(t, err.Error(), "encoding DNSKEY rdata")
}

func TestWriteRecord_RDataTooLarge(t *testing.T) {
	rec := dns.NewDNSKeyRecord(dns.NewRRHeader("example.com", dns.ClassIN, 60),
		dns.DNSKey{Algorithm: dns.AlgRSASHA256, PublicKey: make([]byte, dns.MaxRDataLength)})

	_, err := dns.MarshalRecord(rec)
	require.ErrorIs(t, err, dns.ErrRDataOverflow)
}

func TestWriteRecord_OPTUsesRootName(t *testing.T) {
	opt := dns.CreateOPT(1232).Record()
	opt.SetHeader(dns.RRHeader{Name: "ignored.example", Class: 1232})

	b, err := dns.MarshalRecord(opt)
	require.NoError(t, err)
	assert.Equal(t, byte(0), b[0])
	assert.Len(t, b, 11)
}

func TestParseIPRData(t *testing.T) {
	rec, err := dns.ParseIPRData(dns.NewReader([]byte{192, 0, 2, 1}), 4)
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.1", rec.Addr.String())
	assert.Equal(t, dns.TypeA, rec.Type())

	_, err = dns.ParseIPRData(dns.NewReader([]byte{1, 2, 3}), 3)
	require.ErrorIs(t, err, dns.ErrDNSError)

	_, err = dns.ParseIPRData(dns.NewReader([]byte{1, 2}), 4)
	require.ErrorIs(t, err, dns.ErrTruncated)
}

func TestIPRecord_InvalidAddr(t *testing.T) {
	_, err := (&dns.IPRecord{Addr: net.IP{1, 2}}).MarshalRData()
	require.ErrorIs(t, err, dns.ErrDNSError)
}

func TestParseOpaqueRData(t *testing.T) {
	rec, err := dns.ParseOpaqueRData(dns.NewReader([]byte{9, 8, 7}), 3, dns.TypeDS)
	require.NoError(t, err)
	assert.Equal(t, dns.TypeDS, rec.Type())
	assert.Equal(t, []byte{9, 8, 7}, rec.Data)

	_, err = (&dns.OpaqueRecord{Data: make([]byte, dns.MaxRDataLength+1)}).MarshalRData()
	require.ErrorIs(t, err, dns.ErrRDataOverflow)
}
