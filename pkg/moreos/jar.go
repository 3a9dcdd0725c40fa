package moreos

import (
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// ClientAdapter retrieves information from an HTTP client's request type.
// The only capability a client integration must provide is the absolute
// request URI; everything else is derived from it.
type ClientAdapter[R any] interface {
	// URI returns the absolute URI of the request being made.
	URI(request R) string
}

// HTTPAdapter adapts net/http requests.
type HTTPAdapter struct{}

// URI returns the request's URL.
func (HTTPAdapter) URI(request *http.Request) string {
	if request == nil || request.URL == nil {
		return ""
	}
	return request.URL.String()
}

var _ ClientAdapter[*http.Request] = HTTPAdapter{}

// Jar stores cookies received from servers and answers which of them
// accompany an outgoing request. It sequences the parser, the policy and
// the storage; it has no cookie logic of its own.
type Jar[R any] struct {
	storage *Storage
	adapter ClientAdapter[R]
	policy  Policy
}

// JarOption configures a Jar.
type JarOption[R any] func(*Jar[R])

// WithStorage replaces the default in-memory storage.
func WithStorage[R any](s *Storage) JarOption[R] {
	return func(j *Jar[R]) { j.storage = s }
}

// WithPolicy replaces the default policy.
func WithPolicy[R any](p Policy) JarOption[R] {
	return func(j *Jar[R]) { j.policy = p }
}

// NewJar builds a jar around the adapter. By default it stores cookies in
// memory under the default policy.
func NewJar[R any](adapter ClientAdapter[R], opts ...JarOption[R]) *Jar[R] {
	j := &Jar[R]{
		storage: NewStorage(NewInMemory()),
		adapter: adapter,
		policy:  DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Storage exposes the jar's storage.
func (j *Jar[R]) Storage() *Storage { return j.storage }

// Policy exposes the jar's policy.
func (j *Jar[R]) Policy() Policy { return j.policy }

// Hostname returns the canonical host of the request, or "" when the URI
// has none.
func (j *Jar[R]) Hostname(request R) string {
	u, err := url.Parse(j.adapter.URI(request))
	if err != nil {
		return ""
	}
	return canonicalHost(u.Hostname())
}

// EffectiveHostname returns the request host with ".local" appended when
// the host contains no dot, per RFC 2965.
func (j *Jar[R]) EffectiveHostname(request R) string {
	hostname := j.Hostname(request)
	if hostname == "" {
		return ""
	}
	if strings.Contains(hostname, ".") {
		return hostname
	}
	return hostname + ".local"
}

// RequestPath returns the path of the request URI.
func (j *Jar[R]) RequestPath(request R) string {
	u, err := url.Parse(j.adapter.URI(request))
	if err != nil {
		return ""
	}
	return u.Path
}

// CookiesFor finds the stored cookies to be sent with the request. When
// purgeFirst is true, expired cookies are swept before the lookup. The
// candidates found for the effective hostname are filtered through the
// policy.
func (j *Jar[R]) CookiesFor(request R, purgeFirst bool) ([]Cookie, error) {
	if purgeFirst {
		if err := j.storage.PurgeExpiredCookies(); err != nil {
			return nil, err
		}
	}
	hostname := j.EffectiveHostname(request)
	if hostname == "" {
		return nil, nil
	}
	candidates, err := j.storage.Find(hostname, "", "")
	if err != nil {
		return nil, err
	}
	cookies := make([]Cookie, 0, len(candidates))
	for _, c := range candidates {
		if j.policy.Permits(hostname, c) {
			cookies = append(cookies, c)
		}
	}
	return cookies, nil
}

// Store parses the given Set-Cookie header values and saves the cookies
// the policy permits for the request's effective hostname. Cookies
// without a provided domain are stored as host-only cookies under that
// hostname. Malformed header values abort the store with a *ParseError.
func (j *Jar[R]) Store(request R, setCookieValues ...string) error {
	hostname := j.EffectiveHostname(request)
	if hostname == "" {
		return nil
	}
	var accepted []Cookie
	for _, value := range setCookieValues {
		parsed, err := Parse("Set-Cookie", value)
		if err != nil {
			return err
		}
		for _, c := range parsed {
			if !j.policy.Permits(hostname, c) {
				continue
			}
			if !c.DomainProvided() {
				c = c.withDomain(hostname)
			}
			accepted = append(accepted, c)
		}
	}
	if len(accepted) == 0 {
		return nil
	}
	return j.storage.Save(accepted)
}

// withDomain returns a copy of the cookie bound to the given domain. Used
// for host-only cookies; the original value is left untouched.
func (c Cookie) withDomain(domain string) Cookie {
	c.domain = domain
	return c
}

// canonicalHost lower-cases the host and converts internationalized names
// to their ASCII form, the same canonicalization net/http's cookie jar
// performs. A trailing dot is dropped.
func canonicalHost(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" || isASCII(host) {
		return host
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return host
	}
	return ascii
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
