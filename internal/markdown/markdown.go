// Package markdown converts document text to HTML and decorates code blocks.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// Converter turns markdown source into an HTML fragment.
type Converter interface {
	Convert(src []byte) (string, error)
}

// ConverterOptions configures NewConverter.
type ConverterOptions struct {
	// InlineHighlight colours fenced code during conversion instead of
	// leaving it for a Highlighter pass.
	InlineHighlight bool
	Style           string
}

var _ Converter = (*GoldmarkConverter)(nil)

// GoldmarkConverter renders GitHub-flavoured markdown.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewConverter builds a goldmark pipeline with GFM and heading IDs.
func NewConverter(opts ConverterOptions) *GoldmarkConverter {
	style := opts.Style
	if style == "" {
		style = DefaultStyle
	}

	exts := []goldmark.Extender{extension.GFM}
	if opts.InlineHighlight {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// Convert renders src to HTML.
func (c *GoldmarkConverter) Convert(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}
