package moreos

import "strings"

// Parse converts a cookie header value into zero or more cookies.
//
// The header kind is matched case-insensitively against "Set-Cookie" and
// "Cookie"; any other kind yields no cookies and no error. A Set-Cookie
// value produces exactly one cookie or a *ParseError when the text does
// not match the grammar, so callers can tell malformed input apart from an
// empty result. A Cookie value produces one attribute-free cookie per
// name=value pair.
func Parse(headerKind, text string) ([]Cookie, error) {
	switch CookieTypeFromString(headerKind) {
	case FromServer:
		return parseSetCookie(text)
	case FromClient:
		return parseClientCookies(text), nil
	}
	return nil, nil
}

func parseSetCookie(text string) ([]Cookie, error) {
	m := setCookieStringRe.FindStringSubmatch(text)
	if m == nil {
		return nil, &ParseError{Header: "Set-Cookie", Input: text}
	}
	groups := make(map[string]string)
	for i, name := range setCookieStringRe.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}

	opts := []Option{WithRaw(text), WithType(FromServer)}
	if groups["httponly"] == "HttpOnly" {
		opts = append(opts, WithHTTPOnly())
	}
	if groups["secure"] == "Secure" {
		opts = append(opts, WithSecure())
	}
	if domain := groups["domain"]; domain != "" {
		opts = append(opts, WithDomain(domain))
	}
	if path := groups["path"]; path != "" {
		opts = append(opts, WithPath(path))
	}
	if sameSite := groups["samesite"]; sameSite != "" {
		opts = append(opts, WithSameSiteString(sameSite))
	}
	if expires := groups["expires"]; expires != "" {
		opts = append(opts, WithExpiresString(expires))
	}
	if maxAge := groups["maxage"]; maxAge != "" {
		opts = append(opts, WithMaxAgeString(maxAge))
	}
	if extensions := extensionAttributes(text); len(extensions) > 0 {
		opts = append(opts, WithExtensions(extensions))
	}

	c, err := New(groups["name"], groups["value"], opts...)
	if err != nil {
		return nil, &ParseError{Header: "Set-Cookie", Input: text, Err: err}
	}
	return []Cookie{c}, nil
}

// extensionAttributes collects the "; "-separated attribute segments the
// grammar consumed as extensions, in input order. A segment without an
// "=" is recorded with an empty value.
func extensionAttributes(text string) map[string]string {
	segments := strings.Split(text, "; ")
	if len(segments) < 2 {
		return nil
	}
	var extensions map[string]string
	for _, segment := range segments[1:] {
		if recognizedAVRe.MatchString(segment) {
			continue
		}
		name, value, _ := strings.Cut(segment, "=")
		if extensions == nil {
			extensions = make(map[string]string)
		}
		extensions[name] = value
	}
	return extensions
}

func parseClientCookies(text string) []Cookie {
	matches := clientCookieStringRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	cookies := make([]Cookie, 0, len(matches))
	for _, m := range matches {
		raw := strings.TrimRight(m[0], "; ")
		c, err := New(m[1], m[2], WithRaw(raw), WithType(FromClient))
		if err != nil {
			continue
		}
		cookies = append(cookies, c)
	}
	return cookies
}
