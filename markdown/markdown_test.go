package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"~~gone~~", "<del>gone</del>"},
	}
	for _, tt := range tests {
		got, err := Render(tt.input)
		if err != nil {
			t.Fatalf("Render(%q) error: %v", tt.input, err)
		}
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	got, err := Render("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("missing language class: %q", got)
	}
	if !strings.Contains(got, "fmt.Println(&quot;hi&quot;)") {
		t.Errorf("code not escaped: %q", got)
	}
}

func TestRenderHeadingIDs(t *testing.T) {
	got, err := Render("## Getting Started")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `<h2 id="getting-started">`) {
		t.Errorf("heading id missing: %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	got, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>1</td>") {
		t.Errorf("table not rendered: %q", got)
	}
}

func TestRenderOmitsRawHTML(t *testing.T) {
	got, err := Render("<script>alert(1)</script>\n\ntext")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw html leaked: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("<p>hi</p>").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<p>hi</p>" {
		t.Errorf("component output = %q", buf.String())
	}
}

func TestPlainText(t *testing.T) {
	html, err := Render("# Title\n\nSome **bold** text & more.\n\n- one\n- two")
	if err != nil {
		t.Fatal(err)
	}
	got := PlainText(html)
	want := "Title Some bold text & more. one two"
	if got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"short text", 160, "short text"},
		{"one two three four", 10, "one two…"},
		{"héllo wörld again", 12, "héllo wörld…"},
	}
	for _, tt := range tests {
		if got := Excerpt(tt.input, tt.max); got != tt.want {
			t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
		}
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("  a b\n\tc  "); got != 3 {
		t.Errorf("WordCount = %d, want 3", got)
	}
}
