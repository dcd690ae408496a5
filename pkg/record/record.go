/*
Package record implements the resource-record model carried inside signed
naming packets and its canonical JSON representation.

Records are plain value objects. A Record holds exactly one resource-data
variant out of a closed set; variants the network may produce but this
package does not understand are represented by Unknown so that decoding a
multi-record packet never fails on a single record.
*/
package record

import (
	"fmt"
	"net"
)

// Record is a single resource record extracted from a signed packet or
// built for publication.
type Record struct {
	Name string
	TTL  uint32
	Data RData
}

// RData is one variant of the closed resource-data set. Exactly one
// concrete type is active per record.
type RData interface {
	// Type returns the DNS type mnemonic used as the "type" JSON field.
	Type() string
}

// SVCBKey identifies a service-binding parameter of an SVCB or HTTPS
// record.
type SVCBKey uint16

// Well-known service-binding parameter keys.
const (
	KeyMandatory     SVCBKey = 0
	KeyALPN          SVCBKey = 1
	KeyNoDefaultALPN SVCBKey = 2
	KeyPort          SVCBKey = 3
	KeyIPv4Hint      SVCBKey = 4
	KeyECH           SVCBKey = 5
	KeyIPv6Hint      SVCBKey = 6
	KeyDoHPath       SVCBKey = 7
)

// String returns the textual parameter name registered for the key, or
// keyNNNNN for unregistered ones.
func (k SVCBKey) String() string {
	switch k {
	case KeyMandatory:
		return "mandatory"
	case KeyALPN:
		return "alpn"
	case KeyNoDefaultALPN:
		return "no-default-alpn"
	case KeyPort:
		return "port"
	case KeyIPv4Hint:
		return "ipv4hint"
	case KeyECH:
		return "ech"
	case KeyIPv6Hint:
		return "ipv6hint"
	case KeyDoHPath:
		return "dohpath"
	default:
		return fmt.Sprintf("key%d", uint16(k))
	}
}

// Param is a single service-binding parameter. Params are kept as an
// ordered slice, never a map: serialization must reproduce the order the
// signer embedded them in.
type Param struct {
	Key   SVCBKey
	Value []byte
}

// A is an IPv4 host address record.
type A struct {
	Address net.IP
}

// AAAA is an IPv6 host address record.
type AAAA struct {
	Address net.IP
}

// AFSDB is an AFS database location record.
type AFSDB struct {
	Subtype  uint16
	Hostname string
}

// CAA is a certification authority authorization record.
type CAA struct {
	Flag  uint8
	Tag   string
	Value []byte
}

// HINFO is a host information record.
type HINFO struct {
	CPU string
	OS  string
}

// SVCB is a general-purpose service binding record.
type SVCB struct {
	Priority uint16
	Target   string
	Params   []Param
}

// HTTPS is a service binding record for HTTPS endpoints. It shares the
// SVCB wire layout.
type HTTPS struct {
	SVCB
}

// MX is a mail exchange record.
type MX struct {
	Preference uint16
	Exchange   string
}

// NAPTR is a naming authority pointer record.
type NAPTR struct {
	Order       uint16
	Preference  uint16
	Flags       string
	Services    string
	Regexp      string
	Replacement string
}

// NS is an authoritative name server record.
type NS struct {
	Name string
}

// NULL is an opaque payload record.
type NULL struct {
	Data []byte
}

// EDNSOption is a single code/data pair of an OPT record.
type EDNSOption struct {
	Code uint16
	Data []byte
}

// OPT is an EDNS pseudo-record.
type OPT struct {
	Version uint8
	Options []EDNSOption
}

// PTR is a domain name pointer record.
type PTR struct {
	Name string
}

// SOA is a start-of-authority record.
type SOA struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// SRV is a service location record.
type SRV struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

// TXT is a text record holding a sequence of character-strings, each
// either a bare key or a key=value attribute.
type TXT struct {
	Strings []string
}

// WKS is a well-known services record.
type WKS struct {
	Address  net.IP
	Protocol uint8
	BitMap   []byte
}

// Unknown stands in for any resource type outside the supported set. It
// keeps the original type code for diagnostics.
type Unknown struct {
	RRType uint16
}

// Type implements RData.
func (A) Type() string { return "A" }

// Type implements RData.
func (AAAA) Type() string { return "AAAA" }

// Type implements RData.
func (AFSDB) Type() string { return "AFSDB" }

// Type implements RData.
func (CAA) Type() string { return "CAA" }

// Type implements RData.
func (HINFO) Type() string { return "HINFO" }

// Type implements RData.
func (SVCB) Type() string { return "SVCB" }

// Type implements RData.
func (HTTPS) Type() string { return "HTTPS" }

// Type implements RData.
func (MX) Type() string { return "MX" }

// Type implements RData.
func (NAPTR) Type() string { return "NAPTR" }

// Type implements RData.
func (NS) Type() string { return "NS" }

// Type implements RData.
func (NULL) Type() string { return "NULL" }

// Type implements RData.
func (OPT) Type() string { return "OPT" }

// Type implements RData.
func (PTR) Type() string { return "PTR" }

// Type implements RData.
func (SOA) Type() string { return "SOA" }

// Type implements RData.
func (SRV) Type() string { return "SRV" }

// Type implements RData.
func (TXT) Type() string { return "TXT" }

// Type implements RData.
func (WKS) Type() string { return "WKS" }

// Type implements RData.
func (Unknown) Type() string { return "UNKNOWN" }
