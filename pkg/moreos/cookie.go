package moreos

import (
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SameSitePolicy enumerates the values of the SameSite cookie attribute.
// The zero value means the attribute was absent or unrecognized.
type SameSitePolicy int

const (
	SameSiteUnset SameSitePolicy = iota
	SameSiteLax
	SameSiteStrict
	SameSiteNone
)

// String returns the canonical attribute value, or "" when unset.
func (p SameSitePolicy) String() string {
	switch p {
	case SameSiteLax:
		return "Lax"
	case SameSiteStrict:
		return "Strict"
	case SameSiteNone:
		return "None"
	}
	return ""
}

// SameSitePolicyFromString converts an attribute value to its policy.
// Matching is case-insensitive; unrecognized values yield SameSiteUnset.
func SameSitePolicyFromString(value string) SameSitePolicy {
	switch strings.ToLower(value) {
	case "lax":
		return SameSiteLax
	case "strict":
		return SameSiteStrict
	case "none":
		return SameSiteNone
	}
	return SameSiteUnset
}

// CookieType records which header a cookie came from. It is retained for
// display and debugging only and plays no part in cookie equality.
type CookieType int

const (
	// FromServer marks cookies parsed from a Set-Cookie header.
	FromServer CookieType = iota + 1
	// FromClient marks cookies parsed from a client Cookie header.
	FromClient
)

// String returns the header name the type corresponds to.
func (t CookieType) String() string {
	switch t {
	case FromServer:
		return "Set-Cookie"
	case FromClient:
		return "Cookie"
	}
	return ""
}

// CookieTypeFromString converts a header name to its CookieType. Matching
// is case-insensitive; anything other than the two cookie headers yields
// the zero value.
func CookieTypeFromString(header string) CookieType {
	switch strings.ToLower(header) {
	case "set-cookie":
		return FromServer
	case "cookie":
		return FromClient
	}
	return 0
}

// Cookie is an immutable cookie record. Values are created by Parse or by
// New; every string-to-typed conversion happens once, at construction, and
// the fields never change afterwards.
//
// Equality (see Equal) covers the semantic fields only; the raw text, the
// originating header and the capture time are excluded so that a cookie
// built programmatically compares equal to one produced by the parser.
type Cookie struct {
	name       string
	value      string
	httpOnly   bool
	secure     bool
	domain     string
	path       string
	sameSite   SameSitePolicy
	expires    time.Time
	maxAge     time.Duration
	hasMaxAge  bool
	extensions map[string]string
	raw        string
	cookieType CookieType
	receivedAt time.Time
}

// Option configures a Cookie under construction.
type Option func(*Cookie) error

// WithHTTPOnly marks the cookie inaccessible to client-side scripts.
func WithHTTPOnly() Option {
	return func(c *Cookie) error {
		c.httpOnly = true
		return nil
	}
}

// WithSecure restricts the cookie to secure channels.
func WithSecure() Option {
	return func(c *Cookie) error {
		c.secure = true
		return nil
	}
}

// WithDomain sets the Domain attribute.
func WithDomain(domain string) Option {
	return func(c *Cookie) error {
		c.domain = domain
		return nil
	}
}

// WithPath sets the Path attribute.
func WithPath(path string) Option {
	return func(c *Cookie) error {
		c.path = path
		return nil
	}
}

// WithSameSite sets the SameSite attribute from an already-typed value.
func WithSameSite(policy SameSitePolicy) Option {
	return func(c *Cookie) error {
		c.sameSite = policy
		return nil
	}
}

// WithSameSiteString sets the SameSite attribute from header text.
// Unrecognized values leave the attribute unset rather than failing.
func WithSameSiteString(value string) Option {
	return func(c *Cookie) error {
		c.sameSite = SameSitePolicyFromString(value)
		return nil
	}
}

// WithMaxAge sets the Max-Age attribute from an already-typed duration.
func WithMaxAge(d time.Duration) Option {
	return func(c *Cookie) error {
		c.maxAge = d
		c.hasMaxAge = true
		return nil
	}
}

// WithMaxAgeString sets the Max-Age attribute from a signed base-10 count
// of seconds.
func WithMaxAgeString(value string) Option {
	return func(c *Cookie) error {
		seconds, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid Max-Age %q: %w", value, err)
		}
		c.maxAge = time.Duration(seconds) * time.Second
		c.hasMaxAge = true
		return nil
	}
}

// WithExpires sets the Expires attribute from an already-parsed instant.
func WithExpires(t time.Time) Option {
	return func(c *Cookie) error {
		c.expires = t.UTC()
		return nil
	}
}

// WithExpiresString sets the Expires attribute from a date string. The
// RFC 1123 form is canonical but any of the date layouts HTTP has
// historically used is accepted.
func WithExpiresString(value string) Option {
	return func(c *Cookie) error {
		t, err := parseDate(value)
		if err != nil {
			return err
		}
		c.expires = t
		return nil
	}
}

// WithExtensions records attributes not otherwise recognized. The mapping
// is copied.
func WithExtensions(extensions map[string]string) Option {
	return func(c *Cookie) error {
		if len(extensions) == 0 {
			return nil
		}
		c.extensions = maps.Clone(extensions)
		return nil
	}
}

// WithRaw records the exact text the cookie was parsed from.
func WithRaw(raw string) Option {
	return func(c *Cookie) error {
		c.raw = raw
		return nil
	}
}

// WithType records which header produced the cookie.
func WithType(t CookieType) Option {
	return func(c *Cookie) error {
		c.cookieType = t
		return nil
	}
}

// WithReceivedAt overrides the capture time. Max-Age is anchored to this
// instant.
func WithReceivedAt(t time.Time) Option {
	return func(c *Cookie) error {
		c.receivedAt = t.UTC()
		return nil
	}
}

// New builds a Cookie, applying every option before the value escapes.
// The name must be non-empty; option conversion failures abort
// construction, there is no partially-built cookie.
func New(name, value string, opts ...Option) (Cookie, error) {
	if name == "" {
		return Cookie{}, fmt.Errorf("moreos: cookie name must not be empty")
	}
	c := Cookie{
		name:       name,
		value:      value,
		receivedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return Cookie{}, err
		}
	}
	return c, nil
}

func (c Cookie) Name() string  { return c.name }
func (c Cookie) Value() string { return c.value }

// HTTPOnly reports whether client-side scripts are forbidden from reading
// the cookie.
func (c Cookie) HTTPOnly() bool { return c.httpOnly }

// Secure reports whether the cookie may only travel over secure channels.
func (c Cookie) Secure() bool { return c.secure }

// Domain returns the Domain attribute, or "" when none was provided.
func (c Cookie) Domain() string { return c.domain }

// Path returns the Path attribute, or "" when none was provided.
func (c Cookie) Path() string { return c.path }

// SameSite returns the SameSite attribute; SameSiteUnset when absent or
// unrecognized.
func (c Cookie) SameSite() SameSitePolicy { return c.sameSite }

// Expires returns the Expires instant; the zero time means the attribute
// was absent.
func (c Cookie) Expires() time.Time { return c.expires }

// MaxAge returns the Max-Age duration and whether the attribute was set.
func (c Cookie) MaxAge() (time.Duration, bool) { return c.maxAge, c.hasMaxAge }

// Extensions returns a copy of the unrecognized attributes.
func (c Cookie) Extensions() map[string]string {
	if c.extensions == nil {
		return nil
	}
	return maps.Clone(c.extensions)
}

// Raw returns the exact substring that produced this cookie, or "" for
// programmatically built cookies.
func (c Cookie) Raw() string { return c.raw }

// Type reports which header produced the cookie.
func (c Cookie) Type() CookieType { return c.cookieType }

// ReceivedAt returns the capture time the cookie was constructed with.
func (c Cookie) ReceivedAt() time.Time { return c.receivedAt }

// DomainProvided reports whether the cookie should behave as if a domain
// was provided. A domain ending in a dot (e.g. "example.com.") must be
// ignored per RFC 6265 section 4.1.2.3.
func (c Cookie) DomainProvided() bool {
	return c.domain != "" && !strings.HasSuffix(c.domain, ".")
}

// Expired reports whether the cookie has expired at the given instant.
// A zero now means the current UTC time. Max-Age, when present, takes
// precedence over Expires per RFC 6265 section 4.1.2.2; a cookie with
// neither is a session cookie and never expires by this check.
func (c Cookie) Expired(now time.Time) bool {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if c.hasMaxAge {
		return c.receivedAt.Add(c.maxAge).Before(now)
	}
	if !c.expires.IsZero() {
		return c.expires.Before(now)
	}
	return false
}

// Equal reports semantic equality: every field except raw, the originating
// header and the capture time.
func (c Cookie) Equal(o Cookie) bool {
	return c.name == o.name &&
		c.value == o.value &&
		c.httpOnly == o.httpOnly &&
		c.secure == o.secure &&
		c.domain == o.domain &&
		c.path == o.path &&
		c.sameSite == o.sameSite &&
		c.expires.Equal(o.expires) &&
		c.hasMaxAge == o.hasMaxAge &&
		c.maxAge == o.maxAge &&
		maps.Equal(c.extensions, o.extensions)
}

// String renders the cookie. Parsed cookies render as their original text;
// programmatically built ones as a Set-Cookie style serialization.
func (c Cookie) String() string {
	if c.raw != "" {
		return c.raw
	}
	var b strings.Builder
	b.WriteString(c.name)
	b.WriteByte('=')
	b.WriteString(c.value)
	if !c.expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.expires.UTC().Format("Mon, 02 Jan 2006 15:04:05") + " GMT")
	}
	if c.hasMaxAge {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.FormatInt(int64(c.maxAge/time.Second), 10))
	}
	if c.domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(c.domain)
	}
	if c.path != "" {
		b.WriteString("; Path=")
		b.WriteString(c.path)
	}
	if c.secure {
		b.WriteString("; Secure")
	}
	if c.httpOnly {
		b.WriteString("; HttpOnly")
	}
	if c.sameSite != SameSiteUnset {
		b.WriteString("; SameSite=")
		b.WriteString(c.sameSite.String())
	}
	if len(c.extensions) > 0 {
		names := make([]string, 0, len(c.extensions))
		for name := range c.extensions {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString("; ")
			b.WriteString(name)
			if v := c.extensions[name]; v != "" {
				b.WriteByte('=')
				b.WriteString(v)
			}
		}
	}
	return b.String()
}

// HeaderValue renders cookies as a client Cookie header value:
// "name1=value1; name2=value2".
func HeaderValue(cookies []Cookie) string {
	if len(cookies) == 0 {
		return ""
	}
	parts := make([]string, len(cookies))
	for i, c := range cookies {
		parts[i] = c.name + "=" + c.value
	}
	return strings.Join(parts, "; ")
}

// dateLayouts are tried in order when converting an Expires value. The
// RFC 1123 form is what the grammar produces; the rest are the layouts
// HTTP servers have historically emitted.
var dateLayouts = []string{
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.RFC3339,
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid cookie date %q", value)
}
