package viewer

import (
	"fmt"
	"html"
	"strings"
)

// SidebarHTML renders the navigation pane.
func SidebarHTML(s Sidebar) string {
	if s.Error != "" {
		return fmt.Sprintf(`<div class="error-message">%s</div>`, html.EscapeString(s.Error))
	}
	var b strings.Builder
	b.WriteString("<div>")
	writeNodes(&b, s.Nodes)
	b.WriteString("</div>")
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindContainer:
			b.WriteString(`<div class="toc-item">`)
			writeNodes(b, n.Children)
			b.WriteString("</div>")
		case KindLabel:
			fmt.Fprintf(b, `<div class="toc-title">%s</div>`, html.EscapeString(n.Text))
		case KindLink:
			class := "toc-link"
			if n.Active {
				class += " active"
			}
			fmt.Fprintf(b, `<a class="%s" href="#%s" data-id="%s">%s</a>`,
				class, html.EscapeString(n.Href), html.EscapeString(n.ID), html.EscapeString(n.Text))
		case KindGroup:
			b.WriteString(`<div class="toc-group">`)
			writeNodes(b, n.Children)
			b.WriteString("</div>")
		case KindPlaceholder:
			fmt.Fprintf(b, `<div class="loading">%s</div>`, html.EscapeString(n.Text))
		}
	}
}

// ContentHTML renders the document pane. Document HTML is trusted output of
// the converter and is inserted as is.
func ContentHTML(c Content) string {
	switch c.Kind {
	case ContentLoading:
		return `<div class="loading-spinner">Loading...</div>`
	case ContentDocument:
		return c.HTML
	case ContentError:
		return fmt.Sprintf(`<div class="error-message">
    <h2>Document Not Found</h2>
    <p>The requested document "%s" could not be loaded.</p>
    <p>Please select another topic from the sidebar.</p>
</div>`, html.EscapeString(c.Path))
	default:
		return ""
	}
}
