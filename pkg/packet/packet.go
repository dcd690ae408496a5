/*
Package packet splits raw signed naming packets into their envelope
fields and renders the JSON form handed across the call boundary.

A signed packet is laid out as a 32-byte public key, a 64-byte signature,
an 8-byte big-endian timestamp and a packed DNS message holding the
record set. The packet is assumed to be already authenticated by the
resolving collaborator, no verification happens here.
*/
package packet

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/pubky/pubkycore/pkg/record"
	"go.uber.org/zap"
)

const (
	publicKeySize = 32
	signatureSize = 64
	timestampSize = 8
	headerSize    = publicKeySize + signatureSize + timestampSize
)

// ErrTooShort is returned for raw packets smaller than the fixed header.
var ErrTooShort = errors.New("signed packet too short")

// Packet is a parsed signed packet. PublicKey, Signature and Timestamp
// are opaque pass-through metadata.
type Packet struct {
	Raw       []byte
	PublicKey []byte
	Signature []byte
	Timestamp uint64
	Records   []record.Record
}

// Parse splits raw signed-packet bytes and decodes the embedded record
// set.
func Parse(raw []byte) (*Packet, error) {
	if len(raw) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooShort, len(raw))
	}
	recs, err := record.ParseAnswers(raw[headerSize:])
	if err != nil {
		return nil, err
	}
	return &Packet{
		Raw:       raw,
		PublicKey: raw[:publicKeySize],
		Signature: raw[publicKeySize : publicKeySize+signatureSize],
		Timestamp: binary.BigEndian.Uint64(raw[publicKeySize+signatureSize : headerSize]),
		Records:   recs,
	}, nil
}

// Encode renders the envelope JSON object: pass-through metadata wrapped
// around the decoded record array. lastSeen is supplied by the resolver.
func (p *Packet) Encode(lastSeen uint64, log *zap.Logger) json.OrderedObject {
	return json.OrderedObject{
		{Key: "signed_packet", Value: hex.EncodeToString(p.Raw)},
		{Key: "public_key", Value: base64.StdEncoding.EncodeToString(p.PublicKey)},
		{Key: "signature", Value: base64.StdEncoding.EncodeToString(p.Signature)},
		{Key: "timestamp", Value: p.Timestamp},
		{Key: "last_seen", Value: lastSeen},
		{Key: "dns_packet", Value: base64.StdEncoding.EncodeToString(p.Raw[headerSize:])},
		{Key: "records", Value: record.EncodeAll(p.Records, log)},
	}
}

// EncodeJSON is Encode marshaled to a string.
func (p *Packet) EncodeJSON(lastSeen uint64, log *zap.Logger) (string, error) {
	b, err := json.Marshal(p.Encode(lastSeen, log))
	if err != nil {
		return "", fmt.Errorf("serialize packet envelope: %w", err)
	}
	return string(b), nil
}
