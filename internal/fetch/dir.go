package fetch

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

var _ Fetcher = (*DirFetcher)(nil)

// DirFetcher serves documents from a directory on disk.
type DirFetcher struct {
	root string
	fsys fs.FS
}

// NewDirFetcher creates a fetcher rooted at dir.
func NewDirFetcher(dir string) *DirFetcher {
	return &DirFetcher{root: dir, fsys: os.DirFS(dir)}
}

// NewFSFetcher creates a fetcher over an arbitrary filesystem.
func NewFSFetcher(fsys fs.FS) *DirFetcher {
	return &DirFetcher{fsys: fsys}
}

// Root returns the directory the fetcher reads from, or "" for NewFSFetcher.
func (d *DirFetcher) Root() string { return d.root }

// FS exposes the underlying filesystem.
func (d *DirFetcher) FS() fs.FS { return d.fsys }

// Fetch reads path relative to the root. Paths that leave the root, name a
// directory, or do not exist are reported as NotFoundError.
func (d *DirFetcher) Fetch(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &NetworkError{Path: path, Err: err}
	}

	name := strings.TrimPrefix(path, "/")
	if !fs.ValidPath(name) {
		return "", &NotFoundError{Path: path, Status: http.StatusNotFound}
	}

	info, err := fs.Stat(d.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Path: path, Status: http.StatusNotFound}
		}
		return "", &NetworkError{Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &NotFoundError{Path: path, Status: http.StatusNotFound}
	}

	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return "", &NetworkError{Path: path, Err: err}
	}
	return string(data), nil
}
