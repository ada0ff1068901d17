// Package viewer holds the documentation browser's state machine: the TOC
// renderer, search controller, document loader and navigation state. All
// mutation goes through App.Update; I/O runs in Cmds.
package viewer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/markdown"
	"github.com/ziadkadry99/docview/internal/toc"
)

// DefaultNarrowWidth is the widest viewport treated as mobile.
const DefaultNarrowWidth = 768

// Options wires an App to its collaborators.
type Options struct {
	Fetcher     toc.Fetcher
	Converter   markdown.Converter
	Highlighter markdown.Highlighter
	Logger      *zap.Logger

	// TOCPath is fetched once by Init. Defaults to toc.DefaultPath.
	TOCPath string
	// InitialHash is the location hash the session started with.
	InitialHash string
	// Width is the initial viewport width; 0 means unknown.
	Width int
	// NarrowWidth is the widest viewport that closes the sidebar after a
	// load. Defaults to DefaultNarrowWidth.
	NarrowWidth int
}

// State is the application state owned by one App.
type State struct {
	Tree        []toc.Entry
	Index       []toc.IndexEntry
	Sidebar     Sidebar
	Content     Content
	Current     string
	Hash        string
	Query       string
	SidebarOpen bool
	Width       int
	ScrollTop   bool

	tocFailed bool
	started   bool
	seq     uint64
}

// App is the controller for one browsing session. It is not safe for
// concurrent use; Runtime serialises access to it.
type App struct {
	opts   Options
	logger *zap.Logger
	state  State
}

// New creates an App. Converter and Highlighter default to a goldmark
// converter and a no-op highlighter.
func New(opts Options) *App {
	if opts.TOCPath == "" {
		opts.TOCPath = toc.DefaultPath
	}
	if opts.NarrowWidth <= 0 {
		opts.NarrowWidth = DefaultNarrowWidth
	}
	if opts.Converter == nil {
		opts.Converter = markdown.NewConverter(markdown.ConverterOptions{})
	}
	if opts.Highlighter == nil {
		opts.Highlighter = markdown.NopHighlighter{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &App{
		opts:   opts,
		logger: logger,
		state: State{
			Hash:  strings.TrimPrefix(opts.InitialHash, "#"),
			Width: opts.Width,
		},
	}
}

// Init returns the command that loads the table of contents.
func (a *App) Init() Cmd {
	fetcher, tocPath := a.opts.Fetcher, a.opts.TOCPath
	return func(ctx context.Context) Msg {
		tree, err := toc.Load(ctx, fetcher, tocPath)
		return TOCLoadedMsg{Tree: tree, Err: err}
	}
}

// Update applies msg to the state and returns follow-up work, if any.
func (a *App) Update(msg Msg) Cmd {
	a.state.ScrollTop = false

	switch m := msg.(type) {
	case TOCLoadedMsg:
		return a.tocLoaded(m)
	case ActivateMsg:
		return a.activate(m.ID)
	case SearchMsg:
		a.search(m.Query)
	case HashChangeMsg:
		return a.hashChanged(m.Hash)
	case DocLoadedMsg:
		a.docLoaded(m)
	case ResizeMsg:
		a.state.Width = m.Width
	case ToggleSidebarMsg:
		a.state.SidebarOpen = !a.state.SidebarOpen
	case OutsideClickMsg:
		if a.narrow() {
			a.state.SidebarOpen = false
		}
	default:
		a.logger.Debug("ignoring unknown message", zap.String("type", fmt.Sprintf("%T", msg)))
	}
	return nil
}

// View returns a snapshot of the current display.
func (a *App) View() View {
	return View{
		Sidebar: Sidebar{
			Nodes: cloneNodes(a.state.Sidebar.Nodes),
			Error: a.state.Sidebar.Error,
		},
		Content:     a.state.Content,
		Hash:        a.state.Hash,
		Current:     a.state.Current,
		Query:       a.state.Query,
		SidebarOpen: a.state.SidebarOpen,
		ScrollTop:   a.state.ScrollTop,
	}
}

// Index returns the current search index.
func (a *App) Index() []toc.IndexEntry { return a.state.Index }

func (a *App) tocLoaded(m TOCLoadedMsg) Cmd {
	if m.Err != nil {
		a.logger.Error("loading table of contents", zap.Error(m.Err))
		a.state.Tree = nil
		a.state.Index = nil
		a.state.tocFailed = true
	} else {
		a.state.Tree = m.Tree
		a.state.Index = toc.BuildIndex(m.Tree)
		a.state.tocFailed = false
		a.logger.Debug("table of contents loaded", zap.Int("links", len(a.state.Index)))
	}
	a.renderTOC()

	if a.state.started {
		return nil
	}
	a.state.started = true
	if a.state.Hash != "" {
		return a.loadDocument(a.state.Hash)
	}
	return nil
}

// renderTOC rebuilds the sidebar from the tree, dropping any active marker.
// A failed TOC load keeps its error block.
func (a *App) renderTOC() {
	if a.state.tocFailed {
		a.state.Sidebar = Sidebar{Error: TOCErrorText}
		return
	}
	a.state.Sidebar = Sidebar{Nodes: RenderTree(a.state.Tree)}
}

func (a *App) search(query string) {
	a.state.Query = query
	if !toc.ShouldFilter(query) {
		a.renderTOC()
		return
	}
	results := toc.Search(a.state.Index, query)
	a.state.Sidebar = Sidebar{Nodes: RenderResults(results)}
}

func (a *App) activate(id string) Cmd {
	link, ok := FindLink(a.state.Sidebar.Nodes, id)
	if !ok {
		a.logger.Debug("activation of unknown link", zap.String("id", id))
		return nil
	}
	SetActive(a.state.Sidebar.Nodes, id)
	return a.loadDocument(link.Href)
}

func (a *App) hashChanged(hash string) Cmd {
	hash = strings.TrimPrefix(hash, "#")
	a.state.Hash = hash
	if !a.state.started {
		// The startup load picks this up once the TOC arrives.
		return nil
	}
	if hash == "" || hash == a.state.Current {
		return nil
	}
	return a.loadDocument(hash)
}

// loadDocument shows the loading placeholder and returns the fetch. Only the
// most recently issued load may update the state when it completes.
func (a *App) loadDocument(path string) Cmd {
	a.state.seq++
	seq := a.state.seq
	a.state.Content = Content{Kind: ContentLoading, Path: path}

	opts, logger := a.opts, a.logger
	return func(ctx context.Context) Msg {
		html, err := RenderDocument(ctx, opts.Fetcher, opts.Converter, opts.Highlighter, logger, path)
		return DocLoadedMsg{Seq: seq, Path: path, HTML: html, Err: err}
	}
}

// RenderDocument fetches the markdown at path and returns it as highlighted
// HTML. A highlighting failure is logged and the plain HTML returned.
func RenderDocument(ctx context.Context, f toc.Fetcher, c markdown.Converter, h markdown.Highlighter, logger *zap.Logger, path string) (string, error) {
	raw, err := f.Fetch(ctx, path)
	if err != nil {
		return "", err
	}
	html, err := c.Convert([]byte(raw))
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", path, err)
	}
	if h == nil {
		return html, nil
	}
	highlighted, err := h.Highlight(html)
	if err != nil {
		if logger != nil {
			logger.Warn("highlighting document", zap.String("path", path), zap.Error(err))
		}
		return html, nil
	}
	return highlighted, nil
}

func (a *App) docLoaded(m DocLoadedMsg) {
	if m.Seq != a.state.seq {
		a.logger.Debug("discarding stale document load",
			zap.String("path", m.Path),
			zap.Uint64("seq", m.Seq),
			zap.Uint64("latest", a.state.seq))
		return
	}

	if m.Err != nil {
		a.logger.Warn("loading document", zap.String("path", m.Path), zap.Error(m.Err))
		a.state.Content = Content{Kind: ContentError, Path: m.Path}
		return
	}

	a.state.Content = Content{Kind: ContentDocument, Path: m.Path, HTML: m.HTML}
	a.state.Hash = m.Path
	a.state.Current = m.Path
	a.state.ScrollTop = true
	if a.narrow() {
		a.state.SidebarOpen = false
	}
}

func (a *App) narrow() bool {
	return a.state.Width > 0 && a.state.Width <= a.opts.NarrowWidth
}
