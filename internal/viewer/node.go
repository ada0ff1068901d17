package viewer

import (
	"fmt"

	"github.com/ziadkadry99/docview/internal/toc"
)

// NoResultsText is shown in place of an empty result list.
const NoResultsText = "No results found"

// NodeKind identifies what a display node draws.
type NodeKind int

const (
	// KindContainer wraps one TOC entry. It draws nothing by itself.
	KindContainer NodeKind = iota
	// KindLabel is a non-interactive group title.
	KindLabel
	// KindLink opens a document when activated.
	KindLink
	// KindGroup holds the nested children of an entry.
	KindGroup
	// KindPlaceholder is a static message such as "No results found".
	KindPlaceholder
)

func (k NodeKind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindLabel:
		return "label"
	case KindLink:
		return "link"
	case KindGroup:
		return "group"
	case KindPlaceholder:
		return "placeholder"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k NodeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Node is one element of the rendered sidebar.
type Node struct {
	Kind     NodeKind `json:"kind"`
	ID       string   `json:"id,omitempty"`
	Text     string   `json:"text,omitempty"`
	Href     string   `json:"href,omitempty"`
	Active   bool     `json:"active,omitempty"`
	Children []Node   `json:"children,omitempty"`
}

// RenderTree converts the TOC into display nodes, one container per entry.
// Link IDs encode the entry position, e.g. "toc-0-2".
func RenderTree(tree []toc.Entry) []Node {
	return renderEntries(tree, "toc")
}

func renderEntries(entries []toc.Entry, prefix string) []Node {
	nodes := make([]Node, 0, len(entries))
	for i, e := range entries {
		id := fmt.Sprintf("%s-%d", prefix, i)
		item := Node{Kind: KindContainer}

		switch {
		case e.IsLabel():
			item.Children = append(item.Children, Node{Kind: KindLabel, Text: e.Title})
		case e.IsLink():
			item.Children = append(item.Children, Node{Kind: KindLink, ID: id, Text: e.Label(), Href: e.Href})
		}

		if len(e.Topics) > 0 {
			item.Children = append(item.Children, Node{Kind: KindGroup, Children: renderEntries(e.Topics, id)})
		}
		nodes = append(nodes, item)
	}
	return nodes
}

// RenderResults renders search matches as a flat list of links, or a single
// placeholder when there are none.
func RenderResults(results []toc.IndexEntry) []Node {
	if len(results) == 0 {
		return []Node{{Kind: KindPlaceholder, Text: NoResultsText}}
	}
	nodes := make([]Node, 0, len(results))
	for i, r := range results {
		nodes = append(nodes, Node{
			Kind:     KindContainer,
			Children: []Node{{Kind: KindLink, ID: fmt.Sprintf("result-%d", i), Text: r.Title, Href: r.Href}},
		})
	}
	return nodes
}

// Walk visits every node depth-first. Returning false from fn stops the walk.
func Walk(nodes []Node, fn func(*Node) bool) bool {
	for i := range nodes {
		if !fn(&nodes[i]) {
			return false
		}
		if !Walk(nodes[i].Children, fn) {
			return false
		}
	}
	return true
}

// Links returns every link node in display order.
func Links(nodes []Node) []Node {
	var links []Node
	Walk(nodes, func(n *Node) bool {
		if n.Kind == KindLink {
			links = append(links, *n)
		}
		return true
	})
	return links
}

// FindLink returns the link with the given ID.
func FindLink(nodes []Node, id string) (Node, bool) {
	var found Node
	ok := false
	Walk(nodes, func(n *Node) bool {
		if n.Kind == KindLink && n.ID == id {
			found, ok = *n, true
			return false
		}
		return true
	})
	return found, ok
}

// SetActive clears the active marker from every link and sets it on id.
// It reports whether the link was found.
func SetActive(nodes []Node, id string) bool {
	found := false
	Walk(nodes, func(n *Node) bool {
		if n.Kind != KindLink {
			return true
		}
		n.Active = n.ID == id
		if n.Active {
			found = true
		}
		return true
	})
	return found
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		out[i].Children = cloneNodes(n.Children)
	}
	return out
}
