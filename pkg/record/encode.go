package record

import (
	"encoding/base64"
	"encoding/binary"

	json "github.com/nspcc-dev/go-ordered-json"
	"go.uber.org/zap"
)

// Encode converts a record into its canonical JSON object. It is total
// over the variant set: unsupported resource data degrades to a bare
// {"type": "UNKNOWN"} object instead of failing.
func Encode(r Record) json.OrderedObject {
	return json.OrderedObject{
		{Key: "name", Value: r.Name},
		{Key: "ttl", Value: r.TTL},
		{Key: "rdata", Value: encodeRData(r.Data)},
	}
}

// EncodeAll converts a batch of records. A record that cannot be encoded
// (no resource data at all) is logged and skipped, the rest of the batch
// is unaffected.
func EncodeAll(recs []Record, log *zap.Logger) []interface{} {
	if log == nil {
		log = zap.NewNop()
	}
	out := make([]interface{}, 0, len(recs))
	for _, r := range recs {
		if r.Data == nil {
			log.Warn("skipping record without resource data", zap.String("name", r.Name))
			continue
		}
		out = append(out, Encode(r))
	}
	return out
}

func encodeRData(d RData) json.OrderedObject {
	switch d := d.(type) {
	case A:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "address", Value: d.Address.String()},
		}
	case AAAA:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "address", Value: d.Address.String()},
		}
	case AFSDB:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "subtype", Value: d.Subtype},
			{Key: "hostname", Value: d.Hostname},
		}
	case CAA:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "flag", Value: d.Flag},
			{Key: "tag", Value: d.Tag},
			{Key: "value", Value: base64.StdEncoding.EncodeToString(d.Value)},
		}
	case HINFO:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "cpu", Value: d.CPU},
			{Key: "os", Value: d.OS},
		}
	case HTTPS:
		return encodeSVCB(d.Type(), d.SVCB)
	case SVCB:
		return encodeSVCB(d.Type(), d)
	case MX:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "preference", Value: d.Preference},
			{Key: "exchange", Value: d.Exchange},
		}
	case NAPTR:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "order", Value: d.Order},
			{Key: "preference", Value: d.Preference},
			{Key: "flags", Value: d.Flags},
			{Key: "services", Value: d.Services},
			{Key: "regexp", Value: d.Regexp},
			{Key: "replacement", Value: d.Replacement},
		}
	case NS:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "nsdname", Value: d.Name},
		}
	case NULL:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "data", Value: base64.StdEncoding.EncodeToString(d.Data)},
		}
	case OPT:
		codes := make([]interface{}, 0, len(d.Options))
		for _, o := range d.Options {
			codes = append(codes, json.OrderedObject{
				{Key: "code", Value: o.Code},
				{Key: "data", Value: base64.StdEncoding.EncodeToString(o.Data)},
			})
		}
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "version", Value: d.Version},
			{Key: "opt_codes", Value: codes},
		}
	case PTR:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "ptrdname", Value: d.Name},
		}
	case SOA:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "mname", Value: d.MName},
			{Key: "rname", Value: d.RName},
			{Key: "serial", Value: d.Serial},
			{Key: "refresh", Value: d.Refresh},
			{Key: "retry", Value: d.Retry},
			{Key: "expire", Value: d.Expire},
			{Key: "minimum", Value: d.Minimum},
		}
	case SRV:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "priority", Value: d.Priority},
			{Key: "weight", Value: d.Weight},
			{Key: "port", Value: d.Port},
			{Key: "target", Value: d.Target},
		}
	case TXT:
		attrs := make([]string, 0, len(d.Strings))
		attrs = append(attrs, d.Strings...)
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "txt_data", Value: attrs},
		}
	case WKS:
		return json.OrderedObject{
			{Key: "type", Value: d.Type()},
			{Key: "address", Value: d.Address.String()},
			{Key: "protocol", Value: d.Protocol},
			{Key: "bit_map", Value: base64.StdEncoding.EncodeToString(d.BitMap)},
		}
	default:
		return json.OrderedObject{
			{Key: "type", Value: "UNKNOWN"},
		}
	}
}

// encodeSVCB renders SVCB/HTTPS resource data. Params are emitted in
// stored order. The ALPN and PORT keys get decoded representations, all
// other values stay opaque base64 blobs keyed by the textual parameter
// name.
func encodeSVCB(typ string, d SVCB) json.OrderedObject {
	params := make(json.OrderedObject, 0, len(d.Params))
	for _, p := range d.Params {
		switch {
		case p.Key == KeyALPN:
			params = append(params, json.Member{Key: p.Key.String(), Value: DecodeALPN(p.Value)})
		case p.Key == KeyPort && len(p.Value) == 2:
			params = append(params, json.Member{Key: p.Key.String(), Value: binary.BigEndian.Uint16(p.Value)})
		default:
			params = append(params, json.Member{Key: p.Key.String(), Value: base64.StdEncoding.EncodeToString(p.Value)})
		}
	}
	return json.OrderedObject{
		{Key: "type", Value: typ},
		{Key: "priority", Value: d.Priority},
		{Key: "target", Value: d.Target},
		{Key: "params", Value: params},
	}
}

// DecodeALPN walks an opaque ALPN parameter value as a sequence of
// length-prefixed protocol identifiers. A length that would overrun the
// buffer ends the walk: protocols decoded so far are kept, the malformed
// tail is dropped.
func DecodeALPN(b []byte) []string {
	protos := []string{}
	for i := 0; i < len(b); {
		n := int(b[i])
		i++
		if i+n > len(b) {
			break
		}
		protos = append(protos, string(b[i:i+n]))
		i += n
	}
	return protos
}

// EncodeALPN is the inverse of DecodeALPN.
func EncodeALPN(protos []string) []byte {
	var b []byte
	for _, p := range protos {
		b = append(b, byte(len(p)))
		b = append(b, p...)
	}
	return b
}
