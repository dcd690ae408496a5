package record

import (
	"errors"
	"fmt"

	"github.com/miekg/dns"
)

// Publish-direction validation failures.
var (
	ErrInvalidName    = errors.New("invalid record name")
	ErrInvalidContent = errors.New("invalid record content")
)

// maxCharacterString is the DNS limit on a single TXT character-string.
const maxCharacterString = 255

// NewTXT builds a single TXT record carrying content under name, ready to
// be wrapped into an answer set for the signer.
func NewTXT(name, content string, ttl uint32) (Record, error) {
	if err := checkName(name); err != nil {
		return Record{}, err
	}
	if len(content) > maxCharacterString {
		return Record{}, fmt.Errorf("%w: TXT string exceeds %d bytes", ErrInvalidContent, maxCharacterString)
	}
	return Record{
		Name: name,
		TTL:  ttl,
		Data: TXT{Strings: []string{content}},
	}, nil
}

// NewHTTPS builds a single HTTPS service-binding record pointing at
// target. Priority 0 designates alias mode.
func NewHTTPS(name, target string, priority uint16, ttl uint32) (Record, error) {
	if err := checkName(name); err != nil {
		return Record{}, err
	}
	if _, ok := dns.IsDomainName(target); !ok {
		return Record{}, fmt.Errorf("%w: target %q is not a valid domain name", ErrInvalidContent, target)
	}
	return Record{
		Name: name,
		TTL:  ttl,
		Data: HTTPS{SVCB{Priority: priority, Target: target}},
	}, nil
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if _, ok := dns.IsDomainName(name); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
