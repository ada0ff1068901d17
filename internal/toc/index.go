package toc

import (
	"strings"
	"unicode/utf8"
)

// MinQueryLength is the shortest query that filters the index. Anything
// shorter shows the full tree instead.
const MinQueryLength = 2

// IndexEntry is one searchable link.
type IndexEntry struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// BuildIndex flattens the tree depth-first into one record per linked entry.
func BuildIndex(tree []Entry) []IndexEntry {
	index := make([]IndexEntry, 0, Count(tree))
	walk(tree, func(e Entry) {
		if e.Href != "" {
			index = append(index, IndexEntry{Title: e.Label(), Href: e.Href})
		}
	})
	return index
}

// ShouldFilter reports whether query is long enough to filter the index.
func ShouldFilter(query string) bool {
	return utf8.RuneCountInString(query) >= MinQueryLength
}

// Search returns the index entries whose title contains query, ignoring case.
// Index order is preserved.
func Search(index []IndexEntry, query string) []IndexEntry {
	q := strings.ToLower(query)
	results := make([]IndexEntry, 0)
	for _, entry := range index {
		if strings.Contains(strings.ToLower(entry.Title), q) {
			results = append(results, entry)
		}
	}
	return results
}

// Count returns the number of entries in the tree that carry an href.
func Count(tree []Entry) int {
	n := 0
	walk(tree, func(e Entry) {
		if e.Href != "" {
			n++
		}
	})
	return n
}

// Hrefs returns every distinct href in depth-first order.
func Hrefs(tree []Entry) []string {
	seen := make(map[string]bool)
	var hrefs []string
	walk(tree, func(e Entry) {
		if e.Href == "" || seen[e.Href] {
			return
		}
		seen[e.Href] = true
		hrefs = append(hrefs, e.Href)
	})
	return hrefs
}

func walk(entries []Entry, fn func(Entry)) {
	for _, e := range entries {
		fn(e)
		if len(e.Topics) > 0 {
			walk(e.Topics, fn)
		}
	}
}
