// Package moreos parses, evaluates and stores HTTP cookies per RFC 6265.
//
// Raw Set-Cookie and Cookie header text is turned into immutable Cookie
// records by Parse, a configurable DomainPolicy decides whether a cookie
// covers a request host, and a Storage wrapped around a Backend indexes
// cookies and sweeps out expired ones. Jar ties the three together for a
// specific HTTP client through a one-method ClientAdapter.
package moreos
