// Package content loads blog posts from Markdown files with YAML frontmatter.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/eringen/folio/markdown"
)

const (
	excerptLength  = 160
	wordsPerMinute = 200
)

var (
	// ErrMissingTitle is returned for a post whose frontmatter has no title.
	ErrMissingTitle = errors.New("content: frontmatter title is required")
	// ErrMissingDate is returned for a post whose frontmatter has no date.
	ErrMissingDate = errors.New("content: frontmatter date is required")
	// ErrNoFrontmatter is returned when a file does not start with a --- block.
	ErrNoFrontmatter = errors.New("content: missing frontmatter block")
	// ErrInvalidTag is returned for a tag that cannot name a tag page.
	ErrInvalidTag = errors.New("content: invalid tag")
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04"}

// Frontmatter is the YAML block at the top of each post.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
	Image       string   `yaml:"image"`
	Canonical   string   `yaml:"canonical"`
	NoIndex     bool     `yaml:"noindex"`
}

// Post is a parsed, rendered blog post.
type Post struct {
	Slug        string
	Title       string
	Date        time.Time
	Description string
	Tags        []string
	Draft       bool
	Image       string
	Canonical   string
	NoIndex     bool

	Body        string // raw Markdown
	HTML        string // rendered body
	Excerpt     string
	ReadingTime int // minutes
	Path        string
}

// Link returns the site-relative URL of the post.
func (p Post) Link() string {
	return "/blog/" + p.Slug + "/"
}

// DateString formats the post date as YYYY-MM-DD.
func (p Post) DateString() string {
	return p.Date.Format("2006-01-02")
}

// HasTag reports whether the post carries tag (case-insensitive).
func (p Post) HasTag(tag string) bool {
	tag = NormalizeTag(tag)
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Parse decodes one post file. path is used for error messages and stored on
// the post; the slug is left for the caller to set.
func Parse(path string, data []byte) (Post, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", path, err)
	}
	var meta Frontmatter
	if err := yaml.Unmarshal(fm, &meta); err != nil {
		return Post{}, fmt.Errorf("%s: decode frontmatter: %w", path, err)
	}
	meta.Title = strings.TrimSpace(meta.Title)
	if meta.Title == "" {
		return Post{}, fmt.Errorf("%s: %w", path, ErrMissingTitle)
	}
	for _, t := range meta.Tags {
		if n := NormalizeTag(t); n != "" && !ValidTag(n) {
			return Post{}, fmt.Errorf("%s: %w %q", path, ErrInvalidTag, t)
		}
	}
	date, err := parseDate(meta.Date)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", path, err)
	}

	rendered, err := markdown.Render(body)
	if err != nil {
		return Post{}, fmt.Errorf("%s: render markdown: %w", path, err)
	}
	text := markdown.PlainText(rendered)

	description := strings.TrimSpace(meta.Description)
	excerpt := description
	if excerpt == "" {
		excerpt = markdown.Excerpt(text, excerptLength)
	}

	return Post{
		Title:       meta.Title,
		Date:        date,
		Description: description,
		Tags:        NormalizeTags(meta.Tags),
		Draft:       meta.Draft,
		Image:       strings.TrimSpace(meta.Image),
		Canonical:   strings.TrimSpace(meta.Canonical),
		NoIndex:     meta.NoIndex,
		Body:        body,
		HTML:        rendered,
		Excerpt:     excerpt,
		ReadingTime: readingTime(text),
		Path:        path,
	}, nil
}

func splitFrontmatter(data []byte) ([]byte, string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return nil, "", ErrNoFrontmatter
	}
	rest := data[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		if bytes.HasPrefix(rest, []byte("---")) {
			return nil, strings.TrimPrefix(string(rest[3:]), "\n"), nil
		}
		return nil, "", ErrNoFrontmatter
	}
	fm := rest[:end]
	body := rest[end+len("\n---"):]
	body = bytes.TrimLeft(body, "-")
	return fm, strings.TrimPrefix(string(body), "\n"), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("content: invalid date %q, use YYYY-MM-DD", s)
}

func readingTime(text string) int {
	minutes := (markdown.WordCount(text) + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// NormalizeTag lowercases and trims a tag.
func NormalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// ValidTag reports whether a normalized tag can name a tag page: it must not
// be a relative path element or contain a separator.
func ValidTag(t string) bool {
	if t == "" || t == "." || t == ".." {
		return false
	}
	return !strings.ContainsAny(t, "/\\,") && !strings.ContainsFunc(t, unicode.IsControl)
}

// NormalizeTags normalizes tags, dropping invalid tags and duplicates while
// keeping first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, t := range tags {
		n := NormalizeTag(t)
		if !ValidTag(n) {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
