package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	pathpkg "path"
	"strings"
	"time"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 10 * time.Second

var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher fetches documents relative to a base URL.
type HTTPFetcher struct {
	base      *url.URL
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout sets the per-request timeout. Ignored when WithClient is used.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.timeout = d
	}
}

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// NewHTTPFetcher creates a fetcher rooted at base. Paths passed to Fetch are
// resolved against it the way a browser resolves relative links.
func NewHTTPFetcher(base string, opts ...Option) (*HTTPFetcher, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base url %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", base)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	f := &HTTPFetcher{
		base:    u,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f, nil
}

// Base returns the resolved base URL.
func (f *HTTPFetcher) Base() string { return f.base.String() }

// Fetch retrieves the document at path. Any 2xx status is success. Paths
// that resolve outside the base URL are reported as not found.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", &NotFoundError{Path: path, Status: http.StatusNotFound}
	}
	target := f.base.ResolveReference(ref)
	if !f.contains(target) {
		return "", &NotFoundError{Path: path, Status: http.StatusNotFound}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", &NetworkError{Path: path, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &NetworkError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &NotFoundError{Path: path, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Path: path, Err: err}
	}
	return string(body), nil
}

// contains reports whether target lies under the base URL.
func (f *HTTPFetcher) contains(target *url.URL) bool {
	if target.Scheme != f.base.Scheme || target.Host != f.base.Host || target.User != nil {
		return false
	}
	// Decoded escapes such as %2e%2e survive ResolveReference.
	for _, seg := range strings.Split(target.Path, "/") {
		if seg == ".." || seg == "." {
			return false
		}
	}
	clean := pathpkg.Clean(target.Path)
	return strings.HasPrefix(clean, f.base.Path) && clean != pathpkg.Clean(f.base.Path)
}
