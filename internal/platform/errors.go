package platform

import (
	"errors"
	"fmt"
)

// ErrorKind classifies playlist resolution failures
type ErrorKind int

const (
	// ErrorResolution covers network, parse and access failures reported by
	// the extraction library, and an empty identifier.
	ErrorResolution ErrorKind = iota
	// ErrorNotAPlaylist means extraction succeeded but returned no entries list.
	ErrorNotAPlaylist
)

// String returns the string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrorResolution:
		return "resolution_error"
	case ErrorNotAPlaylist:
		return "not_a_playlist"
	default:
		return "unknown"
	}
}

// ErrNotAPlaylist is matched by errors.Is for ResolveError of kind ErrorNotAPlaylist
var ErrNotAPlaylist = errors.New("not a playlist")

// ResolveError is returned by Resolver.Resolve. Both kinds are fatal for a run.
type ResolveError struct {
	Kind  ErrorKind
	URL   string
	Cause error
}

// Error implements the error interface
func (e *ResolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.URL, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.URL)
}

// Unwrap returns the underlying cause error
func (e *ResolveError) Unwrap() error {
	return e.Cause
}

// Is reports ErrNotAPlaylist equivalence for the not-a-playlist kind
func (e *ResolveError) Is(target error) bool {
	return target == ErrNotAPlaylist && e.Kind == ErrorNotAPlaylist
}

func newResolveError(kind ErrorKind, url string, cause error) *ResolveError {
	return &ResolveError{Kind: kind, URL: url, Cause: cause}
}
