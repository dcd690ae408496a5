/*
Package ffi exposes the pure subset of the SDK surface in the result
shape the mobile bindings expect: every call returns a two-element
string vector, element 0 the failure flag ("true"/"false"), element 1
the payload (JSON on success, a human-readable message on failure).

Network, signing and session entry points are not here: those belong to
the delegated collaborators and only feed inputs to these functions.
*/
package ffi

import (
	"encoding/base64"
	"strconv"

	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/pubky/pubkycore/pkg/auth"
	"github.com/pubky/pubkycore/pkg/packet"
	"github.com/pubky/pubkycore/pkg/record"
)

// Ok wraps a success payload into the boundary vector.
func Ok(payload string) []string {
	return respond(false, payload)
}

// Fail wraps a failure message into the boundary vector.
func Fail(message string) []string {
	return respond(true, message)
}

func respond(failed bool, payload string) []string {
	return []string{strconv.FormatBool(failed), payload}
}

// ParseAuthURL parses a pubkyauth URL and returns the descriptor JSON.
func ParseAuthURL(rawURL string) []string {
	details, err := auth.Parse(rawURL)
	if err != nil {
		return Fail(err.Error())
	}
	s, err := details.ToJSON()
	if err != nil {
		return Fail(err.Error())
	}
	return Ok(s)
}

// CreateAuthURL builds a pubkyauth URL for the given relay and capability
// tokens, generating a fresh secret. The payload carries both the URL and
// the secret the caller needs to complete the flow.
func CreateAuthURL(relay string, capabilities []string) []string {
	caps := make([]auth.Capability, 0, len(capabilities))
	for _, token := range capabilities {
		c, err := auth.ParseCapability(token)
		if err != nil {
			return Fail(err.Error())
		}
		caps = append(caps, c)
	}
	secret, err := auth.NewSecret()
	if err != nil {
		return Fail(err.Error())
	}
	details := &auth.Details{Relay: relay, Secret: secret, Capabilities: caps}
	b, err := json.Marshal(json.OrderedObject{
		{Key: "url", Value: details.URL()},
		{Key: "secret", Value: secret},
	})
	if err != nil {
		return Fail(err.Error())
	}
	return Ok(string(b))
}

// DecodeSignedPacket decodes a base64 signed packet into its JSON
// envelope. lastSeen is resolver metadata passed through verbatim.
func DecodeSignedPacket(rawBase64 string, lastSeen uint64) []string {
	raw, err := base64.StdEncoding.DecodeString(rawBase64)
	if err != nil {
		return Fail("failed to decode signed packet: " + err.Error())
	}
	p, err := packet.Parse(raw)
	if err != nil {
		return Fail(err.Error())
	}
	s, err := p.EncodeJSON(lastSeen, nil)
	if err != nil {
		return Fail(err.Error())
	}
	return Ok(s)
}

// CreateRecord builds a one-record TXT answer set from free-form text
// and returns its JSON form together with the packed DNS message for the
// signer.
func CreateRecord(name, content string, ttl uint32) []string {
	rec, err := record.NewTXT(name, content, ttl)
	if err != nil {
		return Fail(err.Error())
	}
	return encodeAnswerSet(rec)
}

// CreateHTTPSRecord builds a one-record HTTPS answer set pointing at
// target, alias mode (priority 0).
func CreateHTTPSRecord(name, target string, ttl uint32) []string {
	rec, err := record.NewHTTPS(name, target, 0, ttl)
	if err != nil {
		return Fail(err.Error())
	}
	return encodeAnswerSet(rec)
}

func encodeAnswerSet(rec record.Record) []string {
	wire, err := record.PackAnswers([]record.Record{rec})
	if err != nil {
		return Fail(err.Error())
	}
	b, err := json.Marshal(json.OrderedObject{
		{Key: "records", Value: record.EncodeAll([]record.Record{rec}, nil)},
		{Key: "dns_packet", Value: base64.StdEncoding.EncodeToString(wire)},
	})
	if err != nil {
		return Fail(err.Error())
	}
	return Ok(string(b))
}
