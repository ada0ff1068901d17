package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/viewer"
)

const (
	helloTimeout = 10 * time.Second
	writeTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientFrame is the incoming WebSocket message format.
type clientFrame struct {
	Type  string `json:"type"` // hello, activate, search, hash, resize, toggle, outside
	ID    string `json:"id,omitempty"`
	Query string `json:"query,omitempty"`
	Hash  string `json:"hash,omitempty"`
	Width int    `json:"width,omitempty"`
}

// msg converts the frame into a viewer message. It returns nil for frames
// that carry no event.
func (f clientFrame) msg() viewer.Msg {
	switch f.Type {
	case "activate":
		return viewer.ActivateMsg{ID: f.ID}
	case "search":
		return viewer.SearchMsg{Query: f.Query}
	case "hash":
		return viewer.HashChangeMsg{Hash: f.Hash}
	case "resize":
		return viewer.ResizeMsg{Width: f.Width}
	case "toggle":
		return viewer.ToggleSidebarMsg{}
	case "outside":
		return viewer.OutsideClickMsg{}
	default:
		return nil
	}
}

// viewFrame is the outgoing WebSocket message format. It carries the
// rendered panes so the page only has to swap markup. A pane is omitted when
// it is unchanged since the previous frame of the session.
type viewFrame struct {
	Type        string  `json:"type"` // "view"
	SessionID   string  `json:"session_id"`
	Sidebar     *string `json:"sidebar,omitempty"`
	Content     *string `json:"content,omitempty"`
	ContentKind string  `json:"content_kind"`
	Hash        string  `json:"hash"`
	Current     string  `json:"current"`
	Query       string  `json:"query"`
	SidebarOpen bool    `json:"sidebar_open"`
	ScrollTop   bool    `json:"scroll_top"`
}

// paneCache remembers the markup last sent to one session.
type paneCache struct {
	sent    bool
	sidebar string
	content string
}

func (p *paneCache) frame(sessionID string, v viewer.View) viewFrame {
	f := viewFrame{
		Type:        "view",
		SessionID:   sessionID,
		ContentKind: v.Content.Kind.String(),
		Hash:        v.Hash,
		Current:     v.Current,
		Query:       v.Query,
		SidebarOpen: v.SidebarOpen,
		ScrollTop:   v.ScrollTop,
	}

	sidebar := viewer.SidebarHTML(v.Sidebar)
	if !p.sent || sidebar != p.sidebar {
		p.sidebar = sidebar
		f.Sidebar = &sidebar
	}
	content := viewer.ContentHTML(v.Content)
	if !p.sent || content != p.content {
		p.content = content
		f.Content = &content
	}
	p.sent = true
	return f
}

// handleWebSocket runs one browsing session. The first frame must be a
// hello carrying the page's location hash and viewport width.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	s.wg.Add(1)
	defer s.wg.Done()

	sessionID := uuid.NewString()
	logger := s.logger.With(zap.String("session", sessionID))

	hello, err := readHello(conn)
	if err != nil {
		logger.Debug("websocket hello", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(s.sessions)
	defer cancel()

	app := viewer.New(viewer.Options{
		Fetcher:     s.fetcher,
		Converter:   s.converter,
		Highlighter: s.highlighter,
		Logger:      logger,
		TOCPath:     s.cfg.TOCPath,
		InitialHash: hello.Hash,
		Width:       hello.Width,
		NarrowWidth: s.cfg.NarrowWidth,
	})

	// Only the runtime goroutine writes to conn and panes.
	var panes paneCache
	rt := viewer.NewRuntime(app, func(v viewer.View) {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(panes.frame(sessionID, v)); err != nil {
			logger.Debug("websocket write", zap.Error(err))
			cancel()
		}
	}, logger)

	done := make(chan struct{})
	go func() {
		defer close(done)
		rt.Run(ctx)
	}()

	go func() {
		<-ctx.Done()
		// Unblocks ReadMessage when the session ends from the server side.
		conn.SetReadDeadline(time.Now())
	}()

	logger.Info("session started", zap.String("hash", hello.Hash), zap.Int("width", hello.Width))
	s.readFrames(ctx, conn, rt, logger)
	cancel()
	<-done
	logger.Info("session ended")
}

func (s *Server) readFrames(ctx context.Context, conn *websocket.Conn, rt *viewer.Runtime, logger *zap.Logger) {
	for ctx.Err() == nil {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && ctx.Err() == nil {
				logger.Debug("websocket read", zap.Error(err))
			}
			return
		}

		var f clientFrame
		if err := json.Unmarshal(data, &f); err != nil {
			logger.Debug("invalid frame", zap.Error(err))
			continue
		}
		msg := f.msg()
		if msg == nil {
			logger.Debug("ignoring frame", zap.String("type", f.Type))
			continue
		}
		if !rt.Send(msg) {
			return
		}
	}
}

func readHello(conn *websocket.Conn) (clientFrame, error) {
	conn.SetReadDeadline(time.Now().Add(helloTimeout))
	defer conn.SetReadDeadline(time.Time{})

	var f clientFrame
	if err := conn.ReadJSON(&f); err != nil {
		return f, err
	}
	if f.Type != "hello" {
		return f, fmt.Errorf("expected hello frame, got %q", f.Type)
	}
	return f, nil
}
