package mcp

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/toc"
)

// handleListTopics returns the table of contents as an outline.
func (s *Server) handleListTopics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tree, err := toc.Load(ctx, s.fetcher, s.tocPath)
	if err != nil {
		s.logger.Warn("list_topics", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to load table of contents: %v", err)), nil
	}
	if len(tree) == 0 {
		return mcp.NewToolResultText("The table of contents is empty."), nil
	}
	return mcp.NewToolResultText(formatOutline(tree)), nil
}

// handleSearchTopics matches the query against document titles.
func (s *Server) handleSearchTopics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	if !toc.ShouldFilter(query) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"query %q is too short: use at least %d characters", query, toc.MinQueryLength,
		)), nil
	}

	tree, err := toc.Load(ctx, s.fetcher, s.tocPath)
	if err != nil {
		s.logger.Warn("search_topics", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to load table of contents: %v", err)), nil
	}

	results := toc.Search(toc.BuildIndex(tree), query)
	if len(results) == 0 {
		return mcp.NewToolResultText("No results found"), nil
	}
	return mcp.NewToolResultText(formatResults(results)), nil
}

// handleGetDocument returns the raw markdown of one document.
func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	content, err := s.fetcher.Fetch(ctx, path)
	if err != nil {
		if fetch.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"No document found at %q. Use list_topics to see available paths.", path,
			)), nil
		}
		s.logger.Warn("get_document", zap.String("path", path), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch %q: %v", path, err)), nil
	}

	return mcp.NewToolResultText(content), nil
}

// formatOutline renders the tree with two spaces of indent per level. Links
// are written as "Title (href)".
func formatOutline(tree []toc.Entry) string {
	var sb strings.Builder
	var write func(entries []toc.Entry, depth int)
	write = func(entries []toc.Entry, depth int) {
		for _, e := range entries {
			indent := strings.Repeat("  ", depth)
			switch {
			case e.IsLink():
				fmt.Fprintf(&sb, "%s- %s (%s)\n", indent, e.Label(), e.Href)
			case e.IsLabel():
				fmt.Fprintf(&sb, "%s- %s\n", indent, e.Title)
			}
			write(e.Topics, depth+1)
		}
	}
	write(tree, 0)
	return sb.String()
}

// formatResults writes one "Title: href" line per match, titles padded to a
// common width.
func formatResults(results []toc.IndexEntry) string {
	width := 0
	for _, r := range results {
		if n := utf8.RuneCountInString(r.Title); n > width {
			width = n
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(results))
	for _, r := range results {
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(r.Title))
		fmt.Fprintf(&sb, "%s%s  %s\n", r.Title, pad, r.Href)
	}
	return sb.String()
}
