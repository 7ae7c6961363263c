package seo

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Component renders the head elements: <title>, the canonical link, then each
// meta tag in order.
func (h Head) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<title>")
		b.WriteString(templ.EscapeString(h.Title))
		b.WriteString("</title>\n")
		if h.Canonical != "" {
			b.WriteString(`<link rel="canonical" href="`)
			b.WriteString(templ.EscapeString(h.Canonical))
			b.WriteString("\">\n")
		}
		for _, t := range h.Tags {
			b.WriteString("<meta ")
			if t.Property != "" {
				b.WriteString(`property="`)
				b.WriteString(templ.EscapeString(t.Property))
			} else {
				b.WriteString(`name="`)
				b.WriteString(templ.EscapeString(t.Name))
			}
			b.WriteString(`" content="`)
			b.WriteString(templ.EscapeString(t.Content))
			b.WriteString("\">\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}
