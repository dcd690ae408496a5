package record

import (
	"net"
	"strings"
	"testing"

	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func marshalRecord(t *testing.T, r Record) string {
	b, err := json.Marshal(Encode(r))
	require.NoError(t, err)
	return string(b)
}

func TestEncodeA(t *testing.T) {
	s := marshalRecord(t, Record{
		Name: "example.com.",
		TTL:  300,
		Data: A{Address: net.ParseIP("192.0.2.1")},
	})
	assert.Equal(t, `{"name":"example.com.","ttl":300,"rdata":{"type":"A","address":"192.0.2.1"}}`, s)
}

func TestEncodeAAAA(t *testing.T) {
	s := marshalRecord(t, Record{
		Name: "example.com.",
		TTL:  300,
		Data: AAAA{Address: net.ParseIP("2001:db8::1")},
	})
	assert.Contains(t, s, `"type":"AAAA"`)
	assert.Contains(t, s, `"address":"2001:db8::1"`)
}

func TestEncodeSOA(t *testing.T) {
	s := marshalRecord(t, Record{
		Name: "example.com.",
		TTL:  3600,
		Data: SOA{
			MName:   "ns1.example.com.",
			RName:   "hostmaster.example.com.",
			Serial:  2024010101,
			Refresh: 7200,
			Retry:   3600,
			Expire:  1209600,
			Minimum: 300,
		},
	})
	assert.Equal(t, `{"name":"example.com.","ttl":3600,"rdata":{"type":"SOA",`+
		`"mname":"ns1.example.com.","rname":"hostmaster.example.com.",`+
		`"serial":2024010101,"refresh":7200,"retry":3600,"expire":1209600,"minimum":300}}`, s)
}

func TestEncodeTXT(t *testing.T) {
	s := marshalRecord(t, Record{
		Name: "_pubky.example.",
		TTL:  30,
		Data: TXT{Strings: []string{"foo=bar", "baz"}},
	})
	assert.Contains(t, s, `"txt_data":["foo=bar","baz"]`)
}

func TestEncodeCAA(t *testing.T) {
	s := marshalRecord(t, Record{
		Name: "example.com.",
		TTL:  60,
		Data: CAA{Flag: 0, Tag: "issue", Value: []byte("ca.example.net")},
	})
	assert.Contains(t, s, `"tag":"issue"`)
	assert.Contains(t, s, `"value":"Y2EuZXhhbXBsZS5uZXQ="`)
}

func TestEncodeSRV(t *testing.T) {
	s := marshalRecord(t, Record{
		Name: "_sip._tcp.example.com.",
		TTL:  120,
		Data: SRV{Priority: 10, Weight: 5, Port: 5060, Target: "sip.example.com."},
	})
	assert.Equal(t, `{"name":"_sip._tcp.example.com.","ttl":120,"rdata":{"type":"SRV",`+
		`"priority":10,"weight":5,"port":5060,"target":"sip.example.com."}}`, s)
}

func TestEncodeUnknownVariant(t *testing.T) {
	s := marshalRecord(t, Record{
		Name: "example.com.",
		TTL:  60,
		Data: Unknown{RRType: 999},
	})
	assert.Equal(t, `{"name":"example.com.","ttl":60,"rdata":{"type":"UNKNOWN"}}`, s)
}

func TestEncodeHTTPSParams(t *testing.T) {
	s := marshalRecord(t, Record{
		Name: "example.com.",
		TTL:  3600,
		Data: HTTPS{SVCB{
			Priority: 1,
			Target:   ".",
			Params: []Param{
				{Key: KeyECH, Value: []byte{0xde, 0xad}},
				{Key: KeyALPN, Value: []byte{2, 'h', '2', 2, 'h', '3'}},
				{Key: KeyPort, Value: []byte{0x1f, 0x90}},
			},
		}},
	})
	assert.Contains(t, s, `"type":"HTTPS"`)
	assert.Contains(t, s, `"alpn":["h2","h3"]`)
	assert.Contains(t, s, `"port":8080`)
	assert.Contains(t, s, `"ech":"3q0="`)

	// Params must come out in stored order, never re-sorted.
	assert.Less(t, strings.Index(s, `"ech"`), strings.Index(s, `"alpn"`))
	assert.Less(t, strings.Index(s, `"alpn"`), strings.Index(s, `"port"`))
}

func TestEncodeSVCBOddPortLength(t *testing.T) {
	s := marshalRecord(t, Record{
		Name: "example.com.",
		TTL:  3600,
		Data: SVCB{
			Priority: 16,
			Target:   "svc.example.com.",
			Params: []Param{
				{Key: KeyPort, Value: []byte{0x1f, 0x90, 0x00}},
			},
		},
	})
	// Not exactly 2 bytes: emitted as an opaque blob, not special-cased.
	assert.Contains(t, s, `"port":"H5AA"`)
}

func TestEncodeSVCBUnregisteredKey(t *testing.T) {
	s := marshalRecord(t, Record{
		Name: "example.com.",
		TTL:  3600,
		Data: SVCB{
			Priority: 1,
			Target:   ".",
			Params: []Param{
				{Key: SVCBKey(65280), Value: []byte{0x01, 0x02}},
			},
		},
	})
	assert.Contains(t, s, `"key65280":"AQI="`)
}

func TestDecodeALPN(t *testing.T) {
	assert.Equal(t, []string{"h2", "h3"}, DecodeALPN([]byte{2, 'h', '2', 2, 'h', '3'}))
	assert.Equal(t, []string{"http/1.1"}, DecodeALPN(EncodeALPN([]string{"http/1.1"})))
	assert.Empty(t, DecodeALPN(nil))
}

func TestDecodeALPNTruncated(t *testing.T) {
	// A length that overruns the buffer ends the walk silently.
	assert.Equal(t, []string{}, DecodeALPN([]byte{2, 'h'}))
	assert.Equal(t, []string{"h2"}, DecodeALPN([]byte{2, 'h', '2', 5, 'h'}))
}

func TestEncodeAll(t *testing.T) {
	recs := []Record{
		{Name: "a.example.", TTL: 30, Data: A{Address: net.ParseIP("192.0.2.1")}},
		{Name: "b.example.", TTL: 30, Data: TXT{Strings: []string{"k=v"}}},
		{Name: "c.example.", TTL: 30}, // no resource data at all
		{Name: "d.example.", TTL: 30, Data: Unknown{RRType: 999}},
	}
	out := EncodeAll(recs, zaptest.NewLogger(t))
	require.Len(t, out, 3)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), `"type":"UNKNOWN"`))
}
