package moreos

import (
	"errors"
	"testing"
	"time"
)

func mustSave(t *testing.T, b Backend, cookies ...Cookie) {
	t.Helper()
	if err := b.Save(cookies); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
}

func mustList(t *testing.T, b Backend, f Filter) []Cookie {
	t.Helper()
	cookies, err := b.List(f)
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	return cookies
}

func TestInMemory_SaveIsIdempotent(t *testing.T) {
	m := NewInMemory()
	c, _ := New("SID", "1", WithDomain("example.com"))
	mustSave(t, m, c)
	mustSave(t, m, c)
	if got := mustList(t, m, Filter{}); len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
}

func TestInMemory_SaveReplacesSameIdentity(t *testing.T) {
	m := NewInMemory()
	old, _ := New("SID", "old", WithDomain("example.com"), WithPath("/"))
	updated, _ := New("SID", "new", WithDomain("example.com"), WithPath("/"))
	mustSave(t, m, old)
	mustSave(t, m, updated)
	got := mustList(t, m, Filter{})
	if len(got) != 1 {
		t.Fatalf("expected the updated cookie to replace the old one, got %d entries", len(got))
	}
	if got[0].Value() != "new" {
		t.Errorf("expected value new, got %q", got[0].Value())
	}
}

func TestInMemory_DistinctPathsAreSeparateEntries(t *testing.T) {
	m := NewInMemory()
	root, _ := New("SID", "1", WithDomain("example.com"), WithPath("/"))
	api, _ := New("SID", "2", WithDomain("example.com"), WithPath("/api"))
	mustSave(t, m, root, api)
	if got := mustList(t, m, Filter{}); len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
}

func TestInMemory_ListFilters(t *testing.T) {
	m := NewInMemory()
	sid, _ := New("SID", "1", WithDomain("example.com"), WithPath("/"))
	lang, _ := New("lang", "en", WithDomain("example.com"))
	other, _ := New("SID", "2", WithDomain("other.org"))
	mustSave(t, m, sid, lang, other)

	if got := mustList(t, m, Filter{Domain: "example.com"}); len(got) != 2 {
		t.Errorf("domain filter: expected 2 cookies, got %d", len(got))
	}
	got := mustList(t, m, Filter{Domain: "example.com", Name: "lang"})
	if len(got) != 1 || got[0].Name() != "lang" {
		t.Errorf("name filter: unexpected result %v", got)
	}
	got = mustList(t, m, Filter{Domain: "example.com", Path: "/"})
	if len(got) != 1 || got[0].Name() != "SID" {
		t.Errorf("path filter: unexpected result %v", got)
	}
	if got := mustList(t, m, Filter{}); len(got) != 3 {
		t.Errorf("no filter: expected 3 cookies, got %d", len(got))
	}
}

func TestInMemory_PathFilterIsExact(t *testing.T) {
	m := NewInMemory()
	api, _ := New("SID", "1", WithDomain("example.com"), WithPath("/api"))
	mustSave(t, m, api)
	if got := mustList(t, m, Filter{Domain: "example.com", Path: "/"}); len(got) != 0 {
		t.Errorf("expected no path-prefix matching, got %d cookies", len(got))
	}
}

func TestInMemory_RemoveMatchesByEquality(t *testing.T) {
	m := NewInMemory()
	c, _ := New("SID", "1", WithDomain("example.com"))
	mustSave(t, m, c)

	// Same identity, different value: must not be removed.
	different, _ := New("SID", "2", WithDomain("example.com"))
	if err := m.Remove(different); err != nil {
		t.Fatalf("unexpected remove error: %v", err)
	}
	if got := mustList(t, m, Filter{}); len(got) != 1 {
		t.Fatalf("expected mismatched cookie to stay, got %d entries", len(got))
	}

	if err := m.Remove(c); err != nil {
		t.Fatalf("unexpected remove error: %v", err)
	}
	if got := mustList(t, m, Filter{}); len(got) != 0 {
		t.Fatalf("expected cookie removed, got %d entries", len(got))
	}
}

func TestInMemory_DropForRemovesAllMatchingKeys(t *testing.T) {
	m := NewInMemory()
	sid, _ := New("SID", "1", WithDomain("example.com"), WithPath("/"))
	lang, _ := New("lang", "en", WithDomain("example.com"), WithPath("/api"))
	keep, _ := New("SID", "3", WithDomain("other.org"))
	mustSave(t, m, sid, lang, keep)

	if err := m.DropFor("example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := mustList(t, m, Filter{})
	if len(got) != 1 {
		t.Fatalf("expected every example.com entry dropped, got %d entries", len(got))
	}
	if got[0].Domain() != "other.org" {
		t.Errorf("expected the other domain to survive, got %q", got[0].Domain())
	}
}

func TestStorage_PurgeExpiredCookies(t *testing.T) {
	m := NewInMemory()
	s := NewStorage(m)
	past := time.Now().UTC().Add(-time.Hour)
	expired, _ := New("old", "1", WithDomain("example.com"), WithReceivedAt(past), WithMaxAge(time.Second))
	fresh, _ := New("new", "2", WithDomain("example.com"), WithMaxAge(time.Hour))
	session, _ := New("sess", "3", WithDomain("example.com"))
	mustSave(t, m, expired, fresh, session)

	if err := s.PurgeExpiredCookies(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := mustList(t, m, Filter{})
	if len(got) != 2 {
		t.Fatalf("expected 2 cookies to survive the sweep, got %d", len(got))
	}
	for _, c := range got {
		if c.Name() == "old" {
			t.Error("expected the expired cookie to be purged")
		}
	}
}

func TestStorage_FindFiltersByDomain(t *testing.T) {
	s := NewStorage(NewInMemory())
	sid, _ := New("SID", "1", WithDomain("example.com"))
	other, _ := New("SID", "2", WithDomain("other.org"))
	if err := s.Save([]Cookie{sid, other}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.Find("example.com", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Domain() != "example.com" {
		t.Errorf("unexpected find result %v", got)
	}
}

// failingBackend returns a fixed error from every operation.
type failingBackend struct{ err error }

func (f failingBackend) Save([]Cookie) error          { return f.err }
func (f failingBackend) List(Filter) ([]Cookie, error) { return nil, f.err }
func (f failingBackend) Remove(Cookie) error          { return f.err }
func (f failingBackend) DropFor(string) error         { return f.err }

func TestStorage_WrapsBackendErrors(t *testing.T) {
	cause := errors.New("backend down")
	s := NewStorage(failingBackend{err: cause})

	err := s.PurgeExpiredCookies()
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected *StorageError, got %v", err)
	}
	if storageErr.Op != "purge" {
		t.Errorf("expected op purge, got %q", storageErr.Op)
	}
	if !errors.Is(err, cause) {
		t.Error("expected the backend error to be wrapped, not replaced")
	}

	if _, err := s.Find("example.com", "", ""); !errors.As(err, &storageErr) {
		t.Errorf("expected *StorageError from Find, got %v", err)
	}
	if err := s.Save(nil); !errors.As(err, &storageErr) {
		t.Errorf("expected *StorageError from Save, got %v", err)
	}
}

func TestInMemory_ConcurrentSaves(t *testing.T) {
	m := NewInMemory()
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			c, _ := New("SID", "1", WithDomain("example.com"))
			for j := 0; j < 100; j++ {
				_ = m.Save([]Cookie{c})
				_, _ = m.List(Filter{Domain: "example.com"})
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	if got := mustList(t, m, Filter{}); len(got) != 1 {
		t.Fatalf("expected 1 entry after concurrent saves, got %d", len(got))
	}
}
