package moreos

import (
	"errors"
	"fmt"
)

// ParseError reports a header value that could not be parsed as a cookie.
// Callers can use it to tell "no cookies present" apart from "malformed
// input", which both produce an empty cookie slice.
type ParseError struct {
	// Header is the header kind that was being parsed, e.g. "Set-Cookie".
	Header string
	// Input is the offending header text.
	Input string
	// Err holds the underlying conversion failure, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("moreos: cannot parse %s header %q: %v", e.Header, e.Input, e.Err)
	}
	return fmt.Sprintf("moreos: cannot parse %s header %q", e.Header, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError wraps a failure reported by a storage backend. Backend
// failures propagate to the caller without local recovery; the core never
// retries.
type StorageError struct {
	// Op is the backend operation that failed: "save", "list", "remove",
	// "drop_for" or "purge".
	Op string
	// Err is the backend's error.
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("moreos: storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ErrConflict is reserved for backends that can detect conflicting saves.
// The in-memory backend cannot conflict and never returns it.
var ErrConflict = errors.New("moreos: conflicting cookie save")
