package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/toc"
	"github.com/ziadkadry99/docview/internal/viewer"
)

type tocResponse struct {
	Topics []toc.Entry      `json:"topics"`
	Index  []toc.IndexEntry `json:"index"`
}

type searchResponse struct {
	Query    string           `json:"query"`
	Filtered bool             `json:"filtered"`
	Results  []toc.IndexEntry `json:"results"`
}

type docResponse struct {
	Path string `json:"path"`
	HTML string `json:"html"`
}

type errorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	tree, err := toc.Load(r.Context(), s.fetcher, s.cfg.TOCPath)
	if err != nil {
		s.writeFetchError(w, s.cfg.TOCPath, err)
		return
	}
	if tree == nil {
		tree = []toc.Entry{}
	}
	writeJSON(w, http.StatusOK, tocResponse{Topics: tree, Index: toc.BuildIndex(tree)})
}

// handleSearch filters titles like the sidebar does: queries shorter than
// toc.MinQueryLength return the whole index unfiltered.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	tree, err := toc.Load(r.Context(), s.fetcher, s.cfg.TOCPath)
	if err != nil {
		s.writeFetchError(w, s.cfg.TOCPath, err)
		return
	}
	index := toc.BuildIndex(tree)

	resp := searchResponse{Query: query, Results: index}
	if toc.ShouldFilter(query) {
		resp.Filtered = true
		resp.Results = toc.Search(index, query)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "path is required"})
		return
	}

	html, err := viewer.RenderDocument(r.Context(), s.fetcher, s.converter, s.highlighter, s.logger, path)
	if err != nil {
		s.writeFetchError(w, path, err)
		return
	}
	writeJSON(w, http.StatusOK, docResponse{Path: path, HTML: html})
}

// writeFetchError maps fetch failures to status codes: 404 for a missing
// document, 502 for an unreachable source, 500 for anything else.
func (s *Server) writeFetchError(w http.ResponseWriter, path string, err error) {
	status := http.StatusInternalServerError
	switch {
	case fetch.IsNotFound(err):
		status = http.StatusNotFound
	case fetch.IsNetwork(err):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("api request failed", zap.String("path", path), zap.Error(err))
	} else {
		s.logger.Debug("api request failed", zap.String("path", path), zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Path: path})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
