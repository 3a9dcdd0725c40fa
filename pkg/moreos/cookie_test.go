package moreos

import (
	"testing"
	"time"
)

func TestCookie_MaxAgeTakesPrecedenceOverExpires(t *testing.T) {
	received := time.Date(2021, time.June, 9, 10, 0, 0, 0, time.UTC)
	// Expires lies in the past relative to every probe below; Max-Age
	// must win regardless.
	c, err := New("SID", "1",
		WithReceivedAt(received),
		WithMaxAge(60*time.Second),
		WithExpires(received.Add(-24*time.Hour)),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Expired(received.Add(59 * time.Second)) {
		t.Error("expected not expired one second before received_at+max_age")
	}
	if !c.Expired(received.Add(61 * time.Second)) {
		t.Error("expected expired one second after received_at+max_age")
	}
}

func TestCookie_ExpiresAloneControlsExpiry(t *testing.T) {
	expires := time.Date(2021, time.June, 9, 10, 0, 0, 0, time.UTC)
	c, err := New("SID", "1", WithExpires(expires))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Expired(expires.Add(-time.Second)) {
		t.Error("expected not expired before the Expires instant")
	}
	if !c.Expired(expires.Add(time.Second)) {
		t.Error("expected expired after the Expires instant")
	}
}

func TestCookie_SessionCookieNeverExpires(t *testing.T) {
	c, err := New("SID", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Expired(time.Time{}) {
		t.Error("session cookie must not expire against the current time")
	}
	if c.Expired(time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("session cookie must not expire even far in the future")
	}
}

func TestCookie_NewRejectsEmptyName(t *testing.T) {
	if _, err := New("", "value"); err == nil {
		t.Fatal("expected an error for an empty name")
	}
}

func TestCookie_MaxAgeStringAcceptsSignedSeconds(t *testing.T) {
	c, err := New("SID", "1", WithMaxAgeString("-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	maxAge, ok := c.MaxAge()
	if !ok || maxAge != -10*time.Second {
		t.Errorf("expected -10s, got %v (set=%v)", maxAge, ok)
	}
	if _, err := New("SID", "1", WithMaxAgeString("ten")); err == nil {
		t.Error("expected an error for a non-numeric Max-Age")
	}
}

func TestCookie_ExpiresStringLayouts(t *testing.T) {
	want := time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)
	for _, value := range []string{
		"Sun, 06 Nov 1994 08:49:37 GMT",
		"Sun, 6 Nov 1994 08:49:37 GMT",
		"Sunday, 06-Nov-94 08:49:37 GMT",
		"Sun Nov  6 08:49:37 1994",
	} {
		c, err := New("SID", "1", WithExpiresString(value))
		if err != nil {
			t.Errorf("%q: unexpected error: %v", value, err)
			continue
		}
		if !c.Expires().Equal(want) {
			t.Errorf("%q: expected %v, got %v", value, want, c.Expires())
		}
	}
	if _, err := New("SID", "1", WithExpiresString("tomorrow")); err == nil {
		t.Error("expected an error for an unparseable date")
	}
}

func TestSameSitePolicyFromString_CaseInsensitive(t *testing.T) {
	cases := map[string]SameSitePolicy{
		"Lax":     SameSiteLax,
		"lax":     SameSiteLax,
		"STRICT":  SameSiteStrict,
		"none":    SameSiteNone,
		"":        SameSiteUnset,
		"unknown": SameSiteUnset,
	}
	for value, want := range cases {
		if got := SameSitePolicyFromString(value); got != want {
			t.Errorf("%q: expected %v, got %v", value, want, got)
		}
	}
}

func TestCookieTypeFromString(t *testing.T) {
	if got := CookieTypeFromString("Set-Cookie"); got != FromServer {
		t.Errorf("expected FromServer, got %v", got)
	}
	if got := CookieTypeFromString("cookie"); got != FromClient {
		t.Errorf("expected FromClient, got %v", got)
	}
	if got := CookieTypeFromString("X-Other"); got != 0 {
		t.Errorf("expected zero type, got %v", got)
	}
}

func TestCookie_EqualityExcludesRawTypeAndReceivedAt(t *testing.T) {
	parsed := mustParseOne(t, "Set-Cookie", "SID=1; Path=/; Secure")
	built, err := New("SID", "1",
		WithPath("/"),
		WithSecure(),
		WithReceivedAt(parsed.ReceivedAt().Add(time.Hour)),
		WithType(FromClient),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.Equal(built) {
		t.Error("cookies differing only in raw, type and received_at must be equal")
	}

	other, err := New("SID", "2", WithPath("/"), WithSecure())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Equal(other) {
		t.Error("cookies with different values must not be equal")
	}
}

func TestCookie_ExtensionsAreCopied(t *testing.T) {
	src := map[string]string{"Version": "1"}
	c, err := New("SID", "1", WithExtensions(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src["Version"] = "2"
	if c.Extensions()["Version"] != "1" {
		t.Error("constructor must copy the extensions map")
	}
	got := c.Extensions()
	got["Version"] = "3"
	if c.Extensions()["Version"] != "1" {
		t.Error("accessor must return a copy of the extensions map")
	}
}

func TestCookie_StringSerializesAttributes(t *testing.T) {
	c, err := New("SID", "1",
		WithDomain("example.com"),
		WithPath("/"),
		WithSecure(),
		WithHTTPOnly(),
		WithMaxAge(60*time.Second),
		WithSameSite(SameSiteStrict),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SID=1; Max-Age=60; Domain=example.com; Path=/; Secure; HttpOnly; SameSite=Strict"
	if got := c.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCookie_StringPrefersRaw(t *testing.T) {
	c := mustParseOne(t, "Set-Cookie", "SID=1; Path=/")
	if got := c.String(); got != "SID=1; Path=/" {
		t.Errorf("expected raw text, got %q", got)
	}
}

func TestHeaderValue(t *testing.T) {
	a, _ := New("SID", "31d4d96e407aad42")
	b, _ := New("lang", "en-US")
	if got := HeaderValue([]Cookie{a, b}); got != "SID=31d4d96e407aad42; lang=en-US" {
		t.Errorf("unexpected header value %q", got)
	}
	if got := HeaderValue(nil); got != "" {
		t.Errorf("expected empty header value, got %q", got)
	}
}
