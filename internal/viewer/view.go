package viewer

// TOCErrorText replaces the sidebar when the table of contents cannot be loaded.
const TOCErrorText = "Failed to load table of contents."

// ContentKind describes what the content area shows.
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentLoading
	ContentDocument
	ContentError
)

func (k ContentKind) String() string {
	switch k {
	case ContentLoading:
		return "loading"
	case ContentDocument:
		return "document"
	case ContentError:
		return "error"
	default:
		return "empty"
	}
}

// MarshalText encodes the kind by name.
func (k ContentKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Content is the state of the document pane.
type Content struct {
	Kind ContentKind `json:"kind"`
	Path string      `json:"path,omitempty"`
	HTML string      `json:"html,omitempty"`
}

// Sidebar is the navigation pane: either nodes or a load error.
type Sidebar struct {
	Nodes []Node `json:"nodes"`
	Error string `json:"error,omitempty"`
}

// View is an immutable snapshot of everything the page displays.
type View struct {
	Sidebar     Sidebar `json:"sidebar"`
	Content     Content `json:"content"`
	Hash        string  `json:"hash"`
	Current     string  `json:"current"`
	Query       string  `json:"query"`
	SidebarOpen bool    `json:"sidebar_open"`
	// ScrollTop asks the page to scroll the content area to its origin.
	ScrollTop bool `json:"scroll_top"`
}

// ActiveLink returns the ID of the active link, or "".
func (v View) ActiveLink() string {
	id := ""
	Walk(v.Sidebar.Nodes, func(n *Node) bool {
		if n.Kind == KindLink && n.Active {
			id = n.ID
			return false
		}
		return true
	})
	return id
}
