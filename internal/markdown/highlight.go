package markdown

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter decorates the code regions of a rendered HTML fragment.
type Highlighter interface {
	Highlight(fragment string) (string, error)
}

// NopHighlighter returns fragments unchanged.
type NopHighlighter struct{}

// Highlight implements Highlighter.
func (NopHighlighter) Highlight(fragment string) (string, error) { return fragment, nil }

var _ Highlighter = (*ChromaHighlighter)(nil)

// ChromaHighlighter replaces every pre > code region with chroma output
// using inline styles, so the page needs no extra stylesheet.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter uses the named chroma style, falling back to chroma's
// default for unknown names.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	if styleName == "" {
		styleName = DefaultStyle
	}
	return &ChromaHighlighter{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.TabWidth(4)),
	}
}

// Highlight implements Highlighter. A block whose language cannot be
// determined, or that fails to format, is left as it was.
func (h *ChromaHighlighter) Highlight(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parsing content: %w", err)
	}

	changed := false
	doc.Find("pre > code").Each(func(_ int, code *goquery.Selection) {
		text := code.Text()
		lexer := lexerFor(code, text)
		if lexer == nil {
			return
		}
		out, err := h.format(lexer, text)
		if err != nil {
			return
		}
		code.Parent().ReplaceWithHtml(out)
		changed = true
	})
	if !changed {
		return fragment, nil
	}
	return doc.Find("body").Html()
}

func (h *ChromaHighlighter) format(lexer chroma.Lexer, text string) (string, error) {
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", err
	}
	return b.String(), nil
}

// lexerFor picks a lexer from a "language-*" class. Unknown languages fall
// back to content analysis and then plain text; unlabelled blocks are only
// highlighted when analysis recognises them.
func lexerFor(code *goquery.Selection, text string) chroma.Lexer {
	lang := languageOf(code)
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	if lang != "" {
		return lexers.Fallback
	}
	return nil
}

func languageOf(code *goquery.Selection) string {
	for _, class := range strings.Fields(code.AttrOr("class", "")) {
		if lang, ok := strings.CutPrefix(class, "language-"); ok {
			return lang
		}
	}
	return ""
}
