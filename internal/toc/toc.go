package toc

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the table of contents lives relative to the docs source.
const DefaultPath = "toc.yml"

// Entry is one node of the table of contents. An entry with an Href is a link,
// an entry with only a Title is a group label, and Topics are its children.
type Entry struct {
	Title  string  `yaml:"title,omitempty" json:"title,omitempty"`
	Href   string  `yaml:"href,omitempty" json:"href,omitempty"`
	Topics []Entry `yaml:"topics,omitempty" json:"topics,omitempty"`
}

// IsLink reports whether the entry can be opened as a document.
func (e Entry) IsLink() bool { return e.Href != "" }

// IsLabel reports whether the entry is a non-interactive group label.
func (e Entry) IsLabel() bool { return e.Title != "" && e.Href == "" }

// Label returns the display text for the entry: its title, or a title derived
// from the href when the title is missing.
func (e Entry) Label() string {
	if e.Title != "" {
		return e.Title
	}
	if e.Href != "" {
		return DeriveTitle(e.Href)
	}
	return ""
}

// Fetcher retrieves a raw text resource by path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// LoadError is returned when the table of contents cannot be fetched or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading table of contents %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load fetches the TOC resource at tocPath and parses it. On failure the
// returned tree is always nil.
func Load(ctx context.Context, f Fetcher, tocPath string) ([]Entry, error) {
	raw, err := f.Fetch(ctx, tocPath)
	if err != nil {
		return nil, &LoadError{Path: tocPath, Err: err}
	}
	tree, err := Parse([]byte(raw))
	if err != nil {
		return nil, &LoadError{Path: tocPath, Err: err}
	}
	return tree, nil
}

// Parse decodes a YAML sequence of entries. An empty document yields an empty tree.
func Parse(data []byte) ([]Entry, error) {
	var tree []Entry
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing toc: %w", err)
	}
	return tree, nil
}

// Marshal encodes a tree back to YAML with two-space indentation.
func Marshal(tree []Entry) ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("encoding toc: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding toc: %w", err)
	}
	return []byte(b.String()), nil
}

// DeriveTitle turns a document path into a display title.
// "guide/getting-started.md" becomes "Getting Started".
func DeriveTitle(href string) string {
	name := href[strings.LastIndex(href, "/")+1:]
	name = strings.TrimSuffix(name, ".md")
	if name == "" {
		return ""
	}

	words := strings.Split(name, "-")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
