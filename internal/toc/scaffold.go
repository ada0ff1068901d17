package toc

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultScaffoldExcludes are skipped when scaffolding unless overridden.
var DefaultScaffoldExcludes = []string{
	".git/**",
	"node_modules/**",
	"vendor/**",
	"_*/**",
}

// ScaffoldOptions controls which files end up in a scaffolded TOC.
type ScaffoldOptions struct {
	Include []string // Glob patterns; empty means every markdown file.
	Exclude []string // Glob patterns matched after Include.
}

// dirNode is an intermediate directory tree used while scaffolding.
type dirNode struct {
	name     string
	title    string
	href     string
	isDir    bool
	children []*dirNode
}

// Scaffold walks dir and produces a TOC tree for the markdown files it finds.
// Directories become group labels and files become links titled by their
// first H1 heading.
func Scaffold(dir string, opts ScaffoldOptions) ([]Entry, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("scaffold: resolve root: %w", err)
	}

	var paths []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if len(opts.Include) > 0 && !matchesAny(rel, opts.Include) {
			return nil
		}
		if matchesAny(rel, opts.Exclude) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scaffold: walking %s: %w", dir, err)
	}

	titles := make(map[string]string, len(paths))
	for _, rel := range paths {
		if title := headingTitle(filepath.Join(root, filepath.FromSlash(rel))); title != "" {
			titles[rel] = title
		}
	}

	return buildEntries(paths, titles), nil
}

// buildEntries groups slash-separated paths into a directory tree and
// converts it into TOC entries.
func buildEntries(paths []string, titles map[string]string) []Entry {
	root := &dirNode{isDir: true}

	for _, p := range paths {
		parts := strings.Split(p, "/")
		current := root
		for i, part := range parts {
			isLast := i == len(parts)-1
			var next *dirNode
			for _, child := range current.children {
				if child.name == part && child.isDir == !isLast {
					next = child
					break
				}
			}
			if next == nil {
				next = &dirNode{name: part, isDir: !isLast}
				if isLast {
					next.href = p
					next.title = titles[p]
				} else {
					next.title = formatDirName(part)
				}
				current.children = append(current.children, next)
			}
			current = next
		}
	}

	sortNodes(root)
	return toEntries(root.children)
}

// sortNodes orders directories before files, then by name.
func sortNodes(node *dirNode) {
	sort.Slice(node.children, func(i, j int) bool {
		if node.children[i].isDir != node.children[j].isDir {
			return node.children[i].isDir
		}
		return node.children[i].name < node.children[j].name
	})
	for _, child := range node.children {
		if child.isDir {
			sortNodes(child)
		}
	}
}

func toEntries(nodes []*dirNode) []Entry {
	entries := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		if n.isDir {
			entries = append(entries, Entry{Title: n.title, Topics: toEntries(n.children)})
			continue
		}
		entries = append(entries, Entry{Title: n.title, Href: n.href})
	}
	return entries
}

// formatDirName title-cases a directory slug: "getting_started" -> "Getting Started".
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// headingTitle returns the first "# " heading of a markdown file, or "".
func headingTitle(file string) string {
	f, err := os.Open(file)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	inFence := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if !inFence && strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// matchesAny checks relPath, and its base name, against doublestar patterns.
func matchesAny(relPath string, patterns []string) bool {
	base := filepath.Base(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, base); err == nil && ok {
				return true
			}
		}
	}
	return false
}
