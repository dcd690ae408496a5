package record

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"net"

	"github.com/miekg/dns"
)

// typeWKS is the WKS resource type code. The wire library has no typed
// representation for it, so it arrives as an RFC 3597 generic record.
const typeWKS = 11

// FromRR converts a wire-level resource record into the codec model.
// Types outside the supported set become Unknown.
func FromRR(rr dns.RR) Record {
	hdr := rr.Header()
	rec := Record{Name: hdr.Name, TTL: hdr.Ttl}
	switch rr := rr.(type) {
	case *dns.A:
		rec.Data = A{Address: rr.A}
	case *dns.AAAA:
		rec.Data = AAAA{Address: rr.AAAA}
	case *dns.AFSDB:
		rec.Data = AFSDB{Subtype: rr.Subtype, Hostname: rr.Hostname}
	case *dns.CAA:
		rec.Data = CAA{Flag: rr.Flag, Tag: rr.Tag, Value: []byte(rr.Value)}
	case *dns.HINFO:
		rec.Data = HINFO{CPU: rr.Cpu, OS: rr.Os}
	case *dns.HTTPS:
		rec.Data = HTTPS{SVCB{
			Priority: rr.Priority,
			Target:   rr.Target,
			Params:   fromSVCBValues(rr.Value),
		}}
	case *dns.SVCB:
		rec.Data = SVCB{
			Priority: rr.Priority,
			Target:   rr.Target,
			Params:   fromSVCBValues(rr.Value),
		}
	case *dns.MX:
		rec.Data = MX{Preference: rr.Preference, Exchange: rr.Mx}
	case *dns.NAPTR:
		rec.Data = NAPTR{
			Order:       rr.Order,
			Preference:  rr.Preference,
			Flags:       rr.Flags,
			Services:    rr.Service,
			Regexp:      rr.Regexp,
			Replacement: rr.Replacement,
		}
	case *dns.NS:
		rec.Data = NS{Name: rr.Ns}
	case *dns.NULL:
		rec.Data = NULL{Data: []byte(rr.Data)}
	case *dns.OPT:
		opts := make([]EDNSOption, 0, len(rr.Option))
		for _, o := range rr.Option {
			opt := EDNSOption{Code: o.Option()}
			if l, ok := o.(*dns.EDNS0_LOCAL); ok {
				opt.Data = l.Data
			}
			opts = append(opts, opt)
		}
		rec.Data = OPT{Version: rr.Version(), Options: opts}
	case *dns.PTR:
		rec.Data = PTR{Name: rr.Ptr}
	case *dns.SOA:
		rec.Data = SOA{
			MName:   rr.Ns,
			RName:   rr.Mbox,
			Serial:  rr.Serial,
			Refresh: rr.Refresh,
			Retry:   rr.Retry,
			Expire:  rr.Expire,
			Minimum: rr.Minttl,
		}
	case *dns.SRV:
		rec.Data = SRV{
			Priority: rr.Priority,
			Weight:   rr.Weight,
			Port:     rr.Port,
			Target:   rr.Target,
		}
	case *dns.TXT:
		rec.Data = TXT{Strings: rr.Txt}
	case *dns.RFC3597:
		if wks, ok := wksFromGeneric(rr); ok {
			rec.Data = wks
		} else {
			rec.Data = Unknown{RRType: hdr.Rrtype}
		}
	default:
		rec.Data = Unknown{RRType: hdr.Rrtype}
	}
	return rec
}

// ParseAnswers unpacks a DNS message (the record payload of a signed
// packet) and converts every resource record it carries.
func ParseAnswers(wire []byte) ([]Record, error) {
	var msg dns.Msg
	if err := msg.Unpack(wire); err != nil {
		return nil, fmt.Errorf("unpack DNS message: %w", err)
	}
	recs := make([]Record, 0, len(msg.Answer)+len(msg.Ns)+len(msg.Extra))
	for _, section := range [][]dns.RR{msg.Answer, msg.Ns, msg.Extra} {
		for _, rr := range section {
			recs = append(recs, FromRR(rr))
		}
	}
	return recs, nil
}

// ToRR converts a built record into its wire-level form for the signer.
// Only the publish-direction variants are supported.
func ToRR(r Record) (dns.RR, error) {
	hdr := dns.RR_Header{
		Name:  dns.Fqdn(r.Name),
		Class: dns.ClassINET,
		Ttl:   r.TTL,
	}
	switch d := r.Data.(type) {
	case TXT:
		hdr.Rrtype = dns.TypeTXT
		return &dns.TXT{Hdr: hdr, Txt: d.Strings}, nil
	case HTTPS:
		hdr.Rrtype = dns.TypeHTTPS
		return &dns.HTTPS{SVCB: dns.SVCB{
			Hdr:      hdr,
			Priority: d.Priority,
			Target:   dns.Fqdn(d.Target),
			Value:    toSVCBValues(d.Params),
		}}, nil
	case SVCB:
		hdr.Rrtype = dns.TypeSVCB
		return &dns.SVCB{
			Hdr:      hdr,
			Priority: d.Priority,
			Target:   dns.Fqdn(d.Target),
			Value:    toSVCBValues(d.Params),
		}, nil
	default:
		return nil, fmt.Errorf("%w: no wire form for %s records", ErrInvalidContent, r.Data.Type())
	}
}

// PackAnswers builds the DNS answer message handed to the signer.
func PackAnswers(recs []Record) ([]byte, error) {
	var msg dns.Msg
	msg.Response = true
	msg.Authoritative = true
	for _, r := range recs {
		rr, err := ToRR(r)
		if err != nil {
			return nil, err
		}
		msg.Answer = append(msg.Answer, rr)
	}
	wire, err := msg.Pack()
	if err != nil {
		return nil, fmt.Errorf("pack DNS message: %w", err)
	}
	return wire, nil
}

// fromSVCBValues re-encodes typed service-binding values back into their
// opaque wire bytes, in stored order, so the codec's own parameter
// handling stays authoritative regardless of the input source.
func fromSVCBValues(kvs []dns.SVCBKeyValue) []Param {
	params := make([]Param, 0, len(kvs))
	for _, kv := range kvs {
		params = append(params, Param{
			Key:   SVCBKey(kv.Key()),
			Value: svcbValueBytes(kv),
		})
	}
	return params
}

func svcbValueBytes(kv dns.SVCBKeyValue) []byte {
	switch v := kv.(type) {
	case *dns.SVCBMandatory:
		b := make([]byte, 0, 2*len(v.Code))
		for _, c := range v.Code {
			b = binary.BigEndian.AppendUint16(b, uint16(c))
		}
		return b
	case *dns.SVCBAlpn:
		return EncodeALPN(v.Alpn)
	case *dns.SVCBNoDefaultAlpn:
		return []byte{}
	case *dns.SVCBPort:
		return binary.BigEndian.AppendUint16(nil, v.Port)
	case *dns.SVCBIPv4Hint:
		b := make([]byte, 0, 4*len(v.Hint))
		for _, ip := range v.Hint {
			if ip4 := ip.To4(); ip4 != nil {
				b = append(b, ip4...)
			}
		}
		return b
	case *dns.SVCBECHConfig:
		return v.ECH
	case *dns.SVCBIPv6Hint:
		b := make([]byte, 0, 16*len(v.Hint))
		for _, ip := range v.Hint {
			b = append(b, ip.To16()...)
		}
		return b
	case *dns.SVCBDoHPath:
		return []byte(v.Template)
	case *dns.SVCBLocal:
		return v.Data
	default:
		return nil
	}
}

func toSVCBValues(params []Param) []dns.SVCBKeyValue {
	kvs := make([]dns.SVCBKeyValue, 0, len(params))
	for _, p := range params {
		switch {
		case p.Key == KeyALPN:
			kvs = append(kvs, &dns.SVCBAlpn{Alpn: DecodeALPN(p.Value)})
		case p.Key == KeyPort && len(p.Value) == 2:
			kvs = append(kvs, &dns.SVCBPort{Port: binary.BigEndian.Uint16(p.Value)})
		default:
			kvs = append(kvs, &dns.SVCBLocal{KeyCode: dns.SVCBKey(p.Key), Data: p.Value})
		}
	}
	return kvs
}

// wksFromGeneric recovers a WKS record from its RFC 3597 generic form:
// 4 address bytes, a protocol byte and the service bitmap.
func wksFromGeneric(rr *dns.RFC3597) (WKS, bool) {
	if rr.Hdr.Rrtype != typeWKS {
		return WKS{}, false
	}
	raw, err := hex.DecodeString(rr.Rdata)
	if err != nil || len(raw) < 5 {
		return WKS{}, false
	}
	return WKS{
		Address:  net.IP(raw[:4]),
		Protocol: raw[4],
		BitMap:   raw[5:],
	}, true
}
