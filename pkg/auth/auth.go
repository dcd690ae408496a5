/*
Package auth implements the pubkyauth:// URL protocol used to drive a
third-party authorization handshake.

A pubkyauth URL carries a relay endpoint, a one-time secret and an
ordered list of path-scoped permission grants:

	pubkyauth:///?relay=<url>&secret=<token>&capabilities=<path:perm>,<path:perm>

Parsing is pure and side-effect free, all failures are terminal.
*/
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Scheme is the URL scheme of authorization requests. The check against
// it is an exact match, no normalization is applied.
const Scheme = "pubkyauth"

// Parse failure kinds. All of them are terminal: the caller reports and
// does not retry.
var (
	ErrInvalidURL        = errors.New("invalid URL")
	ErrInvalidScheme     = errors.New("invalid scheme, expected '" + Scheme + "'")
	ErrMissingRelay      = errors.New("missing relay")
	ErrMissingSecret     = errors.New("missing secret")
	ErrInvalidCapability = errors.New("invalid capability format")
)

// Capability is a single path-scoped permission grant. The permission
// alphabet is not validated, anything after the first colon of a token is
// accepted verbatim.
type Capability struct {
	Path       string `json:"path"`
	Permission string `json:"permission"`
}

// String renders the capability back into its token form.
func (c Capability) String() string {
	return c.Path + ":" + c.Permission
}

// ParseCapability splits a capability token at the first colon into path
// and permission. Colonless and empty tokens are rejected.
func ParseCapability(token string) (Capability, error) {
	path, perm, ok := strings.Cut(token, ":")
	if !ok {
		return Capability{}, fmt.Errorf("%w in '%s'", ErrInvalidCapability, token)
	}
	return Capability{Path: path, Permission: perm}, nil
}

// Details is the authorization descriptor parsed out of a pubkyauth URL.
type Details struct {
	Relay        string       `json:"relay"`
	Secret       string       `json:"secret"`
	Capabilities []Capability `json:"capabilities"`
}

// Parse parses a pubkyauth URL into its descriptor.
func Parse(rawURL string) (*Details, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	// url.Parse lowercases the scheme, the protocol wants an exact match
	// on the literal with no normalization.
	if u.Scheme != Scheme || !strings.HasPrefix(rawURL, Scheme+":") {
		return nil, ErrInvalidScheme
	}

	query := u.Query()
	relay, ok := lastValue(query, "relay")
	if !ok {
		return nil, ErrMissingRelay
	}
	secret, ok := lastValue(query, "secret")
	if !ok {
		return nil, ErrMissingSecret
	}

	capsStr, ok := lastValue(query, "capabilities")
	if !ok {
		capsStr, _ = lastValue(query, "caps")
	}
	caps, err := parseCapabilities(capsStr)
	if err != nil {
		return nil, err
	}

	return &Details{
		Relay:        relay,
		Secret:       secret,
		Capabilities: caps,
	}, nil
}

// ToJSON serializes the descriptor for the caller on the other side of
// the boundary. Capability order is preserved.
func (d *Details) ToJSON() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", errors.New("error serializing to JSON")
	}
	return string(b), nil
}

// URL serializes the descriptor back into a pubkyauth URL, the structural
// inverse of Parse.
func (d *Details) URL() string {
	query := url.Values{}
	query.Set("relay", d.Relay)
	query.Set("secret", d.Secret)
	if len(d.Capabilities) > 0 {
		tokens := make([]string, 0, len(d.Capabilities))
		for _, c := range d.Capabilities {
			tokens = append(tokens, c.String())
		}
		query.Set("capabilities", strings.Join(tokens, ","))
	}
	return Scheme + ":///?" + query.Encode()
}

// NewSecret returns a fresh random URL-safe base64 secret binding an
// authorization flow to its relay channel.
func NewSecret() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}

// lastValue returns the final occurrence of a query key, matching
// standard query-string semantics where a later duplicate overrides an
// earlier one. Presence with an empty value is still presence.
func lastValue(query url.Values, key string) (string, bool) {
	vals, ok := query[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[len(vals)-1], true
}

func parseCapabilities(s string) ([]Capability, error) {
	caps := []Capability{}
	if s == "" {
		return caps, nil
	}
	for _, token := range strings.Split(s, ",") {
		c, err := ParseCapability(token)
		if err != nil {
			return nil, err
		}
		caps = append(caps, c)
	}
	return caps, nil
}
