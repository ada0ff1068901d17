package viewer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/docview/internal/toc"
)

func TestRenderTreeGuideScenario(t *testing.T) {
	tree := []toc.Entry{
		{Title: "Guide", Topics: []toc.Entry{{Title: "Intro", Href: "intro.md"}}},
	}

	nodes := RenderTree(tree)
	want := []Node{{
		Kind: KindContainer,
		Children: []Node{
			{Kind: KindLabel, Text: "Guide"},
			{Kind: KindGroup, Children: []Node{{
				Kind:     KindContainer,
				Children: []Node{{Kind: KindLink, ID: "toc-0-0", Text: "Intro", Href: "intro.md"}},
			}}},
		},
	}}
	assert.Equal(t, want, nodes)
}

func TestRenderTreeEntryShapes(t *testing.T) {
	tree := []toc.Entry{
		{},
		{Topics: []toc.Entry{{Href: "getting-started.md"}}},
		{Title: "Both", Href: "both.md", Topics: []toc.Entry{{Title: "Child"}}},
	}
	nodes := RenderTree(tree)
	require.Len(t, nodes, 3)

	t.Run("empty entry is an empty container", func(t *testing.T) {
		assert.Equal(t, Node{Kind: KindContainer}, nodes[0])
	})

	t.Run("untitled group still nests children", func(t *testing.T) {
		require.Len(t, nodes[1].Children, 1)
		group := nodes[1].Children[0]
		assert.Equal(t, KindGroup, group.Kind)
		link := group.Children[0].Children[0]
		assert.Equal(t, KindLink, link.Kind)
		assert.Equal(t, "Getting Started", link.Text)
	})

	t.Run("link with topics", func(t *testing.T) {
		require.Len(t, nodes[2].Children, 2)
		assert.Equal(t, KindLink, nodes[2].Children[0].Kind)
		assert.Equal(t, "toc-2", nodes[2].Children[0].ID)
		assert.Equal(t, KindGroup, nodes[2].Children[1].Kind)
	})
}

func TestEntriesWithoutTitleOrHrefHaveNoLabel(t *testing.T) {
	nodes := RenderTree([]toc.Entry{{}, {Topics: []toc.Entry{{}}}})
	Walk(nodes, func(n *Node) bool {
		assert.NotEqual(t, KindLabel, n.Kind)
		assert.NotEqual(t, KindLink, n.Kind)
		return true
	})
	assert.NotContains(t, SidebarHTML(Sidebar{Nodes: nodes}), "toc-link")
	assert.NotContains(t, SidebarHTML(Sidebar{Nodes: nodes}), "toc-title")
}

func TestRenderResults(t *testing.T) {
	nodes := RenderResults([]toc.IndexEntry{{Title: "A", Href: "a.md"}, {Title: "B", Href: "b.md"}})
	links := Links(nodes)
	require.Len(t, links, 2)
	assert.Equal(t, "result-0", links[0].ID)
	assert.Equal(t, "result-1", links[1].ID)

	empty := RenderResults(nil)
	assert.Equal(t, []Node{{Kind: KindPlaceholder, Text: NoResultsText}}, empty)
}

func TestSetActive(t *testing.T) {
	nodes := RenderTree([]toc.Entry{
		{Href: "a.md", Topics: []toc.Entry{{Href: "b.md"}}},
		{Href: "c.md"},
	})

	require.True(t, SetActive(nodes, "toc-0-0"))
	require.True(t, SetActive(nodes, "toc-1"))

	var active []string
	for _, l := range Links(nodes) {
		if l.Active {
			active = append(active, l.ID)
		}
	}
	assert.Equal(t, []string{"toc-1"}, active)

	assert.False(t, SetActive(nodes, "nope"))
	assert.Empty(t, View{Sidebar: Sidebar{Nodes: nodes}}.ActiveLink())
}

func TestFindLink(t *testing.T) {
	nodes := RenderTree([]toc.Entry{{Title: "G", Topics: []toc.Entry{{Href: "x/y.md"}}}})

	link, ok := FindLink(nodes, "toc-0-0")
	require.True(t, ok)
	assert.Equal(t, "x/y.md", link.Href)

	_, ok = FindLink(nodes, "toc-0")
	assert.False(t, ok, "labels are not links")
}

func TestNodeKindJSON(t *testing.T) {
	data, err := json.Marshal(Node{Kind: KindLink, ID: "toc-0", Text: "A", Href: "a.md"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"link","id":"toc-0","text":"A","href":"a.md"}`, string(data))
	assert.True(t, strings.HasPrefix(NodeKind(42).String(), "NodeKind("))
}
