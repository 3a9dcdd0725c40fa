// Package browser imports cookies from browser cookie stores into a
// moreos storage backend. It reads Firefox (moz_cookies SQLite), Chrome
// (cookies SQLite, unencrypted rows only) and Netscape text format
// stores. Stores are read in place; nothing is ever written back.
//
// Cookie values are sensitive and are never logged; only names, domains
// and paths may appear in log output.
package browser

import (
	"strings"
	"time"

	"github.com/sigmavirus24/moreos/pkg/moreos"
)

// Format identifies the on-disk format of a browser cookie store.
type Format int

const (
	// FormatUnknown means the store format could not be detected.
	FormatUnknown Format = iota
	// FormatFirefox is the Firefox moz_cookies SQLite schema.
	FormatFirefox
	// FormatChrome is the Chrome cookies SQLite schema.
	FormatChrome
	// FormatNetscape is the Netscape tab-separated text format.
	FormatNetscape
)

// Browser returns the browser name the format belongs to.
func (f Format) Browser() string {
	switch f {
	case FormatFirefox:
		return "Firefox"
	case FormatChrome:
		return "Chrome"
	case FormatNetscape:
		return "Netscape"
	}
	return "unknown"
}

// Source describes where cookies were imported from.
type Source struct {
	// Path is the filesystem path of the cookie store.
	Path string
	// Format is the detected store format.
	Format Format
}

// importMatching matches store rows against the import domain with the
// suffix algorithm enabled, so subdomain rows are kept.
var importMatching = moreos.DomainPolicy{Matching: moreos.RejectIPAddress}

// matchesDomain reports whether a store's cookie domain belongs to the
// import domain: exact, dot-prefixed, or subdomain of it.
func matchesDomain(cookieDomain, domain string) bool {
	host := strings.TrimPrefix(cookieDomain, ".")
	return host == domain || importMatching.Match(host, "."+domain)
}

// rowToCookie converts one cookie-store row into a moreos cookie. A zero
// expiry yields a session cookie.
func rowToCookie(name, value, domain, path string, expiry time.Time, secure, httpOnly bool) (moreos.Cookie, error) {
	opts := []moreos.Option{
		moreos.WithDomain(domain),
		moreos.WithPath(path),
		moreos.WithType(moreos.FromServer),
	}
	if !expiry.IsZero() {
		opts = append(opts, moreos.WithExpires(expiry))
	}
	if secure {
		opts = append(opts, moreos.WithSecure())
	}
	if httpOnly {
		opts = append(opts, moreos.WithHTTPOnly())
	}
	return moreos.New(name, value, opts...)
}
