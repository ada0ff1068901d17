package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHTTPFetcher(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/docs/intro.md", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "docview-test", r.Header.Get("User-Agent"))
		w.Write([]byte("# Intro"))
	})
	mux.HandleFunc("/docs/created.md", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	})
	mux.HandleFunc("/docs/broken.md", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/root.md", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("root"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f, err := NewHTTPFetcher(srv.URL+"/docs", WithUserAgent("docview-test"), WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/docs/", f.Base())

	t.Run("ok", func(t *testing.T) {
		body, err := f.Fetch(context.Background(), "intro.md")
		require.NoError(t, err)
		assert.Equal(t, "# Intro", body)
	})

	t.Run("any 2xx is success", func(t *testing.T) {
		body, err := f.Fetch(context.Background(), "created.md")
		require.NoError(t, err)
		assert.Equal(t, "created", body)
	})

	t.Run("absolute path under base", func(t *testing.T) {
		body, err := f.Fetch(context.Background(), "/docs/intro.md")
		require.NoError(t, err)
		assert.Equal(t, "# Intro", body)
	})

	t.Run("missing is not found", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), "missing.md")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, http.StatusNotFound, nf.Status)
		assert.Equal(t, "missing.md", nf.Path)
		assert.True(t, IsNotFound(err))
		assert.False(t, IsNetwork(err))
	})

	t.Run("server error is not found", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), "broken.md")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, http.StatusInternalServerError, nf.Status)
	})
}

func TestHTTPFetcherStaysUnderBase(t *testing.T) {
	t.Parallel()

	var leaked atomic.Int32
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		leaked.Add(1)
		w.Write([]byte("INTERNAL-SECRET"))
	}))
	t.Cleanup(other.Close)

	docs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/docs/") {
			w.Write([]byte("doc"))
			return
		}
		leaked.Add(1)
		w.Write([]byte("INTERNAL-SECRET"))
	}))
	t.Cleanup(docs.Close)

	f, err := NewHTTPFetcher(docs.URL+"/docs", WithTimeout(time.Second))
	require.NoError(t, err)

	otherHost := strings.TrimPrefix(other.URL, "http://")
	rejected := []string{
		other.URL + "/admin",
		"//" + otherHost + "/admin",
		"https://" + strings.TrimPrefix(docs.URL, "http://") + "/docs/intro.md",
		"http://user@" + strings.TrimPrefix(docs.URL, "http://") + "/docs/intro.md",
		"/root.md",
		"../root.md",
		"guide/../../root.md",
		"%2e%2e/root.md",
		"/docs",
		"",
	}
	for _, p := range rejected {
		body, err := f.Fetch(context.Background(), p)
		assert.True(t, IsNotFound(err), "Fetch(%q) err = %v", p, err)
		assert.NotContains(t, body, "INTERNAL-SECRET")
	}
	assert.Zero(t, leaked.Load(), "no request may leave the base path")

	body, err := f.Fetch(context.Background(), "guide/../intro.md")
	require.NoError(t, err)
	assert.Equal(t, "doc", body)
}

func TestHTTPFetcherNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	f, err := NewHTTPFetcher(base)
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), "intro.md")
	assert.True(t, IsNetwork(err))
	assert.False(t, IsNotFound(err))
}

func TestHTTPFetcherCanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("never read"))
	}))
	t.Cleanup(srv.Close)

	f, err := NewHTTPFetcher(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Fetch(ctx, "intro.md")
	assert.True(t, IsNetwork(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPFetcherRejectsBadBase(t *testing.T) {
	t.Parallel()

	_, err := NewHTTPFetcher("ftp://example.com/docs")
	assert.Error(t, err)
}

func TestDirFetcher(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"intro.md":         {Data: []byte("# Intro")},
		"guide/install.md": {Data: []byte("# Install")},
	}
	f := NewFSFetcher(fsys)

	tests := []struct {
		path     string
		want     string
		notFound bool
	}{
		{path: "intro.md", want: "# Intro"},
		{path: "/intro.md", want: "# Intro"},
		{path: "guide/install.md", want: "# Install"},
		{path: "missing.md", notFound: true},
		{path: "guide", notFound: true},
		{path: "../etc/passwd", notFound: true},
		{path: "guide/../intro.md", notFound: true},
		{path: "", notFound: true},
	}
	for _, tt := range tests {
		body, err := f.Fetch(context.Background(), tt.path)
		if tt.notFound {
			assert.True(t, IsNotFound(err), "Fetch(%q) err = %v", tt.path, err)
			continue
		}
		require.NoError(t, err, "Fetch(%q)", tt.path)
		assert.Equal(t, tt.want, body)
	}
}

func TestDirFetcherCanceledContext(t *testing.T) {
	t.Parallel()

	f := NewFSFetcher(fstest.MapFS{"a.md": {Data: []byte("a")}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "a.md")
	assert.True(t, IsNetwork(err))
}

func TestNew(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "toc.yml"), []byte("- href: a.md\n"), 0o644))

	f, err := New(dir)
	require.NoError(t, err)
	dirFetcher, ok := f.(*DirFetcher)
	require.True(t, ok)
	assert.Equal(t, dir, dirFetcher.Root())

	body, err := f.Fetch(context.Background(), "toc.yml")
	require.NoError(t, err)
	assert.Equal(t, "- href: a.md\n", body)

	f, err = New("https://docs.example.com/v1")
	require.NoError(t, err)
	assert.IsType(t, &HTTPFetcher{}, f)

	_, err = New(filepath.Join(dir, "toc.yml"))
	assert.Error(t, err, "a file is not a valid source")

	_, err = New(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

type stubFetcher struct {
	body string
	err  error
}

func (s stubFetcher) Fetch(context.Context, string) (string, error) { return s.body, s.err }

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	t.Run("logs bytes and duration", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		f := NewLoggingFetcher(stubFetcher{body: "hello"}, zap.New(core))

		body, err := f.Fetch(context.Background(), "intro.md")
		require.NoError(t, err)
		assert.Equal(t, "hello", body)

		entries := logs.FilterMessage("fetch").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "intro.md", fields["path"])
		assert.EqualValues(t, 5, fields["bytes"])
		assert.Contains(t, fields, "duration")
	})

	t.Run("logs failures", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		f := NewLoggingFetcher(stubFetcher{err: errors.New("network down")}, zap.New(core))

		_, err := f.Fetch(context.Background(), "intro.md")
		require.Error(t, err)

		entries := logs.FilterMessage("fetch failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "network down", entries[0].ContextMap()["error"])
	})

	t.Run("nil logger", func(t *testing.T) {
		f := NewLoggingFetcher(stubFetcher{body: "x"}, nil)
		body, err := f.Fetch(context.Background(), "x.md")
		require.NoError(t, err)
		assert.Equal(t, "x", body)
	})
}

func TestAsDir(t *testing.T) {
	dir := NewFSFetcher(fstest.MapFS{})

	got, ok := AsDir(NewLoggingFetcher(dir, nil))
	require.True(t, ok)
	assert.Same(t, dir, got)

	h, err := NewHTTPFetcher("http://example.com/")
	require.NoError(t, err)
	_, ok = AsDir(NewLoggingFetcher(h, nil))
	assert.False(t, ok)

	_, ok = AsDir(nil)
	assert.False(t, ok)
}
