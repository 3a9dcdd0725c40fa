package moreos

import (
	"net"
	"strings"
)

// DomainMatching selects the algorithms applied during domain matching.
// The flags are independent and may be combined freely.
type DomainMatching uint8

const (
	// StrictEquality limits matching to exact equality of the
	// lower-cased domains; the suffix algorithm is skipped entirely.
	StrictEquality DomainMatching = 1 << iota
	// RejectIPAddress refuses to match when the request host, or the
	// effective cookie domain, is an IPv4 or IPv6 literal.
	RejectIPAddress
	// RejectWellKnownPublicSuffix refuses cookie domains that name a
	// registry-controlled suffix such as "com" or "co.uk" outright.
	RejectWellKnownPublicSuffix
)

// Has reports whether all flags in mask are set.
func (m DomainMatching) Has(mask DomainMatching) bool { return m&mask == mask }

// wellKnownPublicSuffixes is the read-only table of suffixes rejected by
// RejectWellKnownPublicSuffix. Loaded once, never mutated.
var wellKnownPublicSuffixes = map[string]struct{}{
	"com":   {},
	"org":   {},
	"edu":   {},
	"co":    {},
	"co.uk": {},
	"io":    {},
	"net":   {},
	"int":   {},
	"gov":   {},
	"mil":   {},
	"ly":    {},
}

// DomainPolicy configures the RFC 6265 section 5.1.3 domain-match
// algorithm. It is pure configuration: construct it and hand it to a
// Policy or call Match directly.
type DomainPolicy struct {
	// BlockList names domains whose cookies are never stored or sent.
	BlockList []string
	// AllowList, when non-empty, restricts cookies to the named domains.
	AllowList []string
	// Matching selects the matching algorithms.
	Matching DomainMatching
}

// DefaultDomainPolicy returns the default configuration: strict equality
// with IP-address and public-suffix rejection.
func DefaultDomainPolicy() DomainPolicy {
	return DomainPolicy{
		Matching: StrictEquality | RejectIPAddress | RejectWellKnownPublicSuffix,
	}
}

// Match decides whether cookieDomain covers requestHost. Both inputs are
// lower-cased before any comparison.
func (p DomainPolicy) Match(requestHost, cookieDomain string) bool {
	host := strings.ToLower(requestHost)
	domain := strings.ToLower(cookieDomain)

	if host == domain {
		return true
	}
	if p.Matching.Has(StrictEquality) {
		// Equality was the only acceptable outcome and it already
		// failed.
		return false
	}
	if p.Matching.Has(RejectWellKnownPublicSuffix) {
		if _, ok := wellKnownPublicSuffixes[domain]; ok {
			return false
		}
	}
	if host == "" || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return false
	}
	if p.Matching.Has(RejectIPAddress) && isIPAddress(host) {
		return false
	}
	// The domain must be a dotted proper suffix: the host ends in the
	// domain, at least one character of the host precedes it, and the
	// domain itself starts with a dot.
	if !strings.HasSuffix(host, domain) {
		return false
	}
	if len(host) == len(domain) || !strings.HasPrefix(domain, ".") {
		return false
	}
	rest := domain[1:]
	if rest == "" || strings.HasPrefix(rest, ".") || strings.HasSuffix(rest, ".") {
		return false
	}
	if p.Matching.Has(RejectIPAddress) && isIPAddress(rest) {
		return false
	}
	return true
}

// isIPAddress reports whether domain is an IPv4 or IPv6 literal. IPv6
// bracket notation ("[::1]") is accepted.
func isIPAddress(domain string) bool {
	domain = strings.Trim(domain, "[]")
	return net.ParseIP(domain) != nil
}

// Policy determines the behaviour of a cookie jar: whether a cookie sent
// by a server is stored, and whether a stored cookie is sent with a
// request.
type Policy struct {
	Domain DomainPolicy
}

// DefaultPolicy returns a Policy built on DefaultDomainPolicy.
func DefaultPolicy() Policy {
	return Policy{Domain: DefaultDomainPolicy()}
}

// Permits decides whether cookie c may be stored for, or sent to,
// requestHost. The block list is consulted first, then the allow list,
// then the domain-match algorithm. A cookie without a provided domain,
// including one whose domain ends in a dot, is host-only: it is permitted
// and the jar binds it to the request host at store time.
func (p Policy) Permits(requestHost string, c Cookie) bool {
	host := strings.ToLower(requestHost)
	effective := host
	if c.DomainProvided() {
		effective = strings.ToLower(c.Domain())
	}
	for _, blocked := range p.Domain.BlockList {
		if domainSuffixMatch(effective, blocked) {
			return false
		}
	}
	if len(p.Domain.AllowList) > 0 {
		allowed := false
		for _, entry := range p.Domain.AllowList {
			if domainSuffixMatch(effective, entry) {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}
	if c.DomainProvided() {
		return p.Domain.Match(host, c.Domain())
	}
	// Host-only: a trailing-dot domain behaves as if none were provided,
	// so the stored domain plays no further part.
	return true
}

// domainSuffixMatch reports whether domain equals entry or sits under it.
// A leading dot on either side is ignored for the comparison.
func domainSuffixMatch(domain, entry string) bool {
	domain = strings.TrimPrefix(strings.ToLower(domain), ".")
	entry = strings.TrimPrefix(strings.ToLower(entry), ".")
	if entry == "" {
		return false
	}
	return domain == entry || strings.HasSuffix(domain, "."+entry)
}
