package server

import (
	_ "embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	Title       string
	NarrowWidth int
}

// handleIndex serves the page shell. Both panes are filled in over the
// websocket.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{Title: s.cfg.Title, NarrowWidth: s.cfg.NarrowWidth}
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
	}
}
