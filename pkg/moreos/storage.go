package moreos

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Filter narrows a Backend.List call. Empty fields are unfiltered. Domain
// and Name narrow by the backend's composite key; Path filters results to
// cookies whose path equals it exactly.
type Filter struct {
	Domain string
	Name   string
	Path   string
}

// Backend is the capability set a cookie store must provide. Backends
// that cannot fail (like InMemory) return nil errors; ones that can (a
// networked store, say) must propagate failures to the caller untouched.
type Backend interface {
	// Save persists the cookies. Saving a cookie with the same
	// domain, name and path as a stored one replaces it, per
	// RFC 6265 section 5.3.
	Save(cookies []Cookie) error
	// List returns stored cookies matching the filter.
	List(f Filter) ([]Cookie, error)
	// Remove deletes the given cookie, matching by semantic equality.
	Remove(c Cookie) error
	// DropFor deletes every cookie stored for the domain.
	DropFor(domain string) error
}

// InMemory stores cookies in a mutex-guarded map so a single jar can be
// shared across goroutines. Cookies are keyed by domain, name and path.
type InMemory struct {
	mu      sync.Mutex
	cookies map[string]Cookie
}

// NewInMemory returns an empty in-memory backend.
func NewInMemory() *InMemory {
	return &InMemory{cookies: make(map[string]Cookie)}
}

func keyFor(c Cookie) string {
	return key(c.Domain(), c.Name(), c.Path())
}

func key(domain, name, path string) string {
	return domain + "::" + name + "::" + path
}

// Save stores the cookies, replacing any existing cookie with the same
// domain, name and path.
func (m *InMemory) Save(cookies []Cookie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range cookies {
		m.cookies[keyFor(c)] = c
	}
	return nil
}

// List returns stored cookies matching the filter, ordered by key so
// results are stable.
func (m *InMemory) List(f Filter) ([]Cookie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var prefix string
	if f.Domain != "" {
		prefix = f.Domain + "::" + f.Name
	}
	keys := make([]string, 0, len(m.cookies))
	for k, c := range m.cookies {
		if prefix != "" && !strings.HasPrefix(k, prefix) {
			continue
		}
		if f.Domain == "" && f.Name != "" && c.Name() != f.Name {
			continue
		}
		if f.Path != "" && c.Path() != f.Path {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cookies := make([]Cookie, 0, len(keys))
	for _, k := range keys {
		cookies = append(cookies, m.cookies[k])
	}
	return cookies, nil
}

// Remove deletes the stored cookie equal to c, if any.
func (m *InMemory) Remove(c Cookie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := keyFor(c)
	if stored, ok := m.cookies[k]; ok && stored.Equal(c) {
		delete(m.cookies, k)
	}
	return nil
}

// DropFor deletes every cookie stored for the domain.
func (m *InMemory) DropFor(domain string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := domain + "::"
	for k := range m.cookies {
		if strings.HasPrefix(k, prefix) {
			delete(m.cookies, k)
		}
	}
	return nil
}

var _ Backend = (*InMemory)(nil)

// Storage wraps a Backend with the expiry sweep and lookup operations the
// jar needs. The sweep is never automatic; it runs only when invoked.
type Storage struct {
	backend Backend
}

// NewStorage wraps the backend.
func NewStorage(b Backend) *Storage {
	return &Storage{backend: b}
}

// Backend exposes the wrapped backend.
func (s *Storage) Backend() Backend { return s.backend }

// Save persists the cookies through the backend.
func (s *Storage) Save(cookies []Cookie) error {
	if err := s.backend.Save(cookies); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

// PurgeExpiredCookies removes every stored cookie that has expired. The
// reference instant is captured once at the start of the sweep so all
// cookies are judged against the same snapshot.
func (s *Storage) PurgeExpiredCookies() error {
	now := time.Now().UTC()
	cookies, err := s.backend.List(Filter{})
	if err != nil {
		return &StorageError{Op: "purge", Err: err}
	}
	for _, c := range cookies {
		if !c.Expired(now) {
			continue
		}
		if err := s.backend.Remove(c); err != nil {
			return &StorageError{Op: "purge", Err: err}
		}
	}
	return nil
}

// Find returns stored cookies for the domain, optionally narrowed by name
// and path.
func (s *Storage) Find(domain, name, path string) ([]Cookie, error) {
	cookies, err := s.backend.List(Filter{Domain: domain, Name: name, Path: path})
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return cookies, nil
}
