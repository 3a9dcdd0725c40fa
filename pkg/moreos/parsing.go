package moreos

import "regexp"

// The grammar is assembled from raw fragments so each piece can be traced
// back to the RFC that defines it. Fragments compose by plain string
// concatenation and are compiled exactly once below.
const (
	// RFC 2616 section 2.2.
	ctl        = `\x00-\x1f\x7f`
	digit      = `0-9`
	separators = `()<>@,;:\\"/\[\]?={}\s`
	token      = `[^` + ctl + separators + `]+`

	// RFC 1123 date components. The composed form allows some nonsense
	// dates (Feb 31) but is a decent high-level check; the typed
	// conversion rejects what the regexp lets through.
	wkday       = `(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun)`
	month       = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`
	clock       = `[` + digit + `]{2}:[` + digit + `]{2}:[` + digit + `]{2}`
	date1       = `[` + digit + `]{1,2} ` + month + ` [` + digit + `]{4}`
	rfc1123Date = wkday + `, ` + date1 + ` ` + clock + ` GMT`

	// RFC 1034 section 3.5 subdomains, with the RFC 1123 section 2.1
	// update that lets a label start with a digit.
	letter    = `A-Za-z`
	letDig    = letter + digit
	letDigHyp = letDig + `-`
	ldhStr    = `[` + letDigHyp + `]+`
	label     = `[` + letDig + `](?:(?:` + ldhStr + `)?[` + letDig + `])?`
	subdomain = `\.?(?:` + label + `\.)*(?:` + label + `)`

	// RFC 6265 section 4.1.1. cookie-octet excludes CTLs, whitespace,
	// double quote, comma, semicolon and backslash.
	cookieOctet = `[\x21\x23-\x2b\x2d-\x3a\x3c-\x5b\x5d-\x7e]`
	cookieValue = `(?:` + cookieOctet + `*|"` + cookieOctet + `*")`
	cookieName  = token
	cookiePair  = `(?P<name>` + cookieName + `)=(?P<value>` + cookieValue + `)`

	anyCharExceptCTLOrSemicolon = `[^;` + ctl + `]+`
	extensionAV                 = anyCharExceptCTLOrSemicolon
	httpOnlyAV                  = `(?P<httponly>HttpOnly)`
	secureAV                    = `(?P<secure>Secure)`
	pathValue                   = anyCharExceptCTLOrSemicolon
	pathAV                      = `Path=(?P<path>` + pathValue + `)`
	domainValue                 = subdomain
	domainAV                    = `Domain=(?P<domain>` + domainValue + `)`
	nonZeroDigit                = `1-9`
	maxAgeAV                    = `Max-Age=(?P<maxage>[` + nonZeroDigit + `][` + digit + `]*)`
	saneCookieDate              = rfc1123Date
	expiresAV                   = `Expires=(?P<expires>` + saneCookieDate + `)`
	sameSiteValue               = `(?:Strict|Lax|None)`
	sameSiteAV                  = `SameSite=(?P<samesite>` + sameSiteValue + `)`
	cookieAV                    = `(?:` + expiresAV + `|` + maxAgeAV + `|` + domainAV + `|` + pathAV + `|` +
		secureAV + `|` + httpOnlyAV + `|` + sameSiteAV + `|` + extensionAV + `)`
	setCookieString = cookiePair + `(?:; ` + cookieAV + `)*`

	// Not specified in either RFC: the looser client-to-server form.
	clientCookieString = `(?:(` + cookieName + `)=(` + cookieValue + `))(?:; )?`
)

var (
	setCookieStringRe    = regexp.MustCompile(`\A` + setCookieString + `\z`)
	clientCookieStringRe = regexp.MustCompile(clientCookieString)

	// recognizedAVRe classifies a single "; "-separated attribute segment.
	// A segment that does not fully match one of the seven known
	// attribute-value forms was consumed as an extension by the composed
	// pattern above.
	recognizedAVRe = regexp.MustCompile(`\A(?:` + expiresAV + `|` + maxAgeAV + `|` + domainAV + `|` +
		pathAV + `|` + secureAV + `|` + httpOnlyAV + `|` + sameSiteAV + `)\z`)
)
