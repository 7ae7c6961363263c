// Package markdown converts post bodies to HTML and exposes the result as a
// templ component.
package markdown

import (
	"bytes"
	"context"
	stdhtml "html"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		extension.Footnote,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithXHTML(),
	),
)

var strict = bluemonday.StrictPolicy()

// Render converts Markdown source to HTML. Raw HTML in the source is omitted.
func Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Markdown returns a templ.Component that writes already-rendered HTML.
func Markdown(rendered string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, rendered)
		return err
	})
}

// PlainText strips all markup from rendered HTML and collapses whitespace.
func PlainText(rendered string) string {
	text := strict.Sanitize(rendered)
	text = stdhtml.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt returns at most max runes of text, cut on a word boundary and
// suffixed with an ellipsis when truncated.
func Excerpt(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	cut := string(r[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// WordCount counts whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
