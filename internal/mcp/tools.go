package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/docview/internal/toc"
)

// listTopicsTool defines the list_topics MCP tool.
var listTopicsTool = mcp.NewTool("list_topics",
	mcp.WithDescription("List the documentation table of contents as an indented outline of titles and document paths."),
)

// searchTopicsTool defines the search_topics MCP tool.
var searchTopicsTool = mcp.NewTool("search_topics",
	mcp.WithDescription("Find documents whose title contains the query, case-insensitively. Returns one title and path per line."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Title fragment to search for"),
		mcp.MinLength(toc.MinQueryLength),
	),
)

// getDocumentTool defines the get_document MCP tool.
var getDocumentTool = mcp.NewTool("get_document",
	mcp.WithDescription("Get the raw markdown of a document by the path listed in the table of contents."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Document path relative to the documentation root, e.g. guide/intro.md"),
	),
)
