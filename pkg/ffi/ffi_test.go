package ffi

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	stdjson "encoding/json"
	"testing"

	"github.com/pubky/pubkycore/pkg/auth"
	"github.com/pubky/pubkycore/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuthURL(t *testing.T) {
	res := ParseAuthURL("pubkyauth:///?caps=/pub/app/:rw&secret=S&relay=http://example/")
	require.Len(t, res, 2)
	assert.Equal(t, "false", res[0])
	assert.Equal(t, `{"relay":"http://example/","secret":"S",`+
		`"capabilities":[{"path":"/pub/app/","permission":"rw"}]}`, res[1])
}

func TestParseAuthURLFailure(t *testing.T) {
	res := ParseAuthURL("pubkyauth:///?relay=http://example/")
	require.Len(t, res, 2)
	assert.Equal(t, "true", res[0])
	assert.Equal(t, "missing secret", res[1])
}

func TestCreateAuthURL(t *testing.T) {
	res := CreateAuthURL("https://httprelay.pubky.app/link", []string{"/pub/app/:rw", "/pub/foo:r"})
	require.Len(t, res, 2)
	require.Equal(t, "false", res[0])

	var payload struct {
		URL    string `json:"url"`
		Secret string `json:"secret"`
	}
	require.NoError(t, stdjson.Unmarshal([]byte(res[1]), &payload))

	details, err := auth.Parse(payload.URL)
	require.NoError(t, err)
	assert.Equal(t, "https://httprelay.pubky.app/link", details.Relay)
	assert.Equal(t, payload.Secret, details.Secret)
	assert.Equal(t, []auth.Capability{
		{Path: "/pub/app/", Permission: "rw"},
		{Path: "/pub/foo", Permission: "r"},
	}, details.Capabilities)
}

func TestCreateAuthURLBadCapability(t *testing.T) {
	res := CreateAuthURL("https://example/", []string{"no-colon"})
	require.Len(t, res, 2)
	assert.Equal(t, "true", res[0])
	assert.Contains(t, res[1], "invalid capability format")
}

func TestCreateRecord(t *testing.T) {
	res := CreateRecord("_pubky.example", "hello", 30)
	require.Len(t, res, 2)
	require.Equal(t, "false", res[0])

	var payload struct {
		Records   []stdjson.RawMessage `json:"records"`
		DNSPacket string               `json:"dns_packet"`
	}
	require.NoError(t, stdjson.Unmarshal([]byte(res[1]), &payload))
	require.Len(t, payload.Records, 1)
	assert.Contains(t, string(payload.Records[0]), `"type":"TXT"`)

	wire, err := base64.StdEncoding.DecodeString(payload.DNSPacket)
	require.NoError(t, err)
	recs, err := record.ParseAnswers(wire)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, record.TXT{Strings: []string{"hello"}}, recs[0].Data)
}

func TestCreateRecordInvalidName(t *testing.T) {
	res := CreateRecord("", "hello", 30)
	require.Len(t, res, 2)
	assert.Equal(t, "true", res[0])
	assert.Contains(t, res[1], "invalid record name")
}

func TestCreateHTTPSRecord(t *testing.T) {
	res := CreateHTTPSRecord("example", "host.example.com", 3600)
	require.Len(t, res, 2)
	require.Equal(t, "false", res[0])
	assert.Contains(t, res[1], `"type":"HTTPS"`)
}

func TestDecodeSignedPacket(t *testing.T) {
	rec, err := record.NewTXT("_pubky.example", "foo=bar", 30)
	require.NoError(t, err)
	wire, err := record.PackAnswers([]record.Record{rec})
	require.NoError(t, err)

	raw := bytes.Repeat([]byte{0x01}, 32)
	raw = append(raw, bytes.Repeat([]byte{0x02}, 64)...)
	raw = binary.BigEndian.AppendUint64(raw, 1700000000000000)
	raw = append(raw, wire...)

	res := DecodeSignedPacket(base64.StdEncoding.EncodeToString(raw), 7)
	require.Len(t, res, 2)
	require.Equal(t, "false", res[0])
	assert.Contains(t, res[1], `"last_seen":7`)
	assert.Contains(t, res[1], `"type":"TXT"`)
}

func TestDecodeSignedPacketBadBase64(t *testing.T) {
	res := DecodeSignedPacket("%%%", 0)
	require.Len(t, res, 2)
	assert.Equal(t, "true", res[0])
}
