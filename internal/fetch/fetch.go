// Package fetch retrieves raw document text from a local directory or an
// HTTP origin.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Fetcher retrieves the raw text stored at a document path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// NotFoundError reports that the source answered but had no document at Path.
type NotFoundError struct {
	Path   string
	Status int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %q not found (status %d)", e.Path, e.Status)
}

// NetworkError reports that the source could not be reached or read.
type NetworkError struct {
	Path string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetching %q: %v", e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsNetwork reports whether err is, or wraps, a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsRemote reports whether source names an HTTP origin rather than a directory.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// New returns an HTTPFetcher for http(s) sources and a DirFetcher otherwise.
func New(source string, opts ...Option) (Fetcher, error) {
	if IsRemote(source) {
		return NewHTTPFetcher(source, opts...)
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("opening source %s: %w", source, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", source)
	}
	return NewDirFetcher(source), nil
}

// AsDir returns the DirFetcher behind f, looking through decorators that
// implement Unwrap() Fetcher.
func AsDir(f Fetcher) (*DirFetcher, bool) {
	for f != nil {
		switch v := f.(type) {
		case *DirFetcher:
			return v, true
		case interface{ Unwrap() Fetcher }:
			f = v.Unwrap()
		default:
			return nil, false
		}
	}
	return nil, false
}
