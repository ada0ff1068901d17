// Package mcp exposes the documentation tree to AI agents over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/toc"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes documentation browsing tools.
type Server struct {
	fetcher fetch.Fetcher
	tocPath string
	logger  *zap.Logger
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server reading the TOC at tocPath through
// fetcher.
func NewServer(fetcher fetch.Fetcher, tocPath string, logger *zap.Logger) *Server {
	if tocPath == "" {
		tocPath = toc.DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		fetcher: fetcher,
		tocPath: tocPath,
		logger:  logger.Named("mcp"),
	}

	s.mcp = server.NewMCPServer(
		"docview",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listTopicsTool, s.handleListTopics)
	s.mcp.AddTool(searchTopicsTool, s.handleSearchTopics)
	s.mcp.AddTool(getDocumentTool, s.handleGetDocument)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
