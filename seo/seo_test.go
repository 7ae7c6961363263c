package seo

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSite() Site {
	return Site{
		Title:       "Dev Notes",
		Description: "Notes on Go and distributed systems",
		SiteURL:     "https://example.com",
		AuthorName:  "Sam Doe",
	}
}

func keys(h Head) []string {
	out := make([]string, 0, len(h.Tags))
	for _, t := range h.Tags {
		out = append(out, t.Key())
	}
	return out
}

func TestBuildTitleOnly(t *testing.T) {
	site := testSite()
	site.AuthorName = ""

	h, err := Build(site, Props{Title: "Hello"})
	require.NoError(t, err)

	desc, ok := h.Lookup("description")
	require.True(t, ok)
	assert.Equal(t, site.Description, desc)

	ogTitle, _ := h.Lookup("og:title")
	assert.Equal(t, "Hello", ogTitle)
	ogType, _ := h.Lookup("og:type")
	assert.Equal(t, "website", ogType)

	for _, k := range []string{"og:image", "og:image:width", "og:image:height", "twitter:image", "author", "robots", "googlebot"} {
		assert.Zero(t, h.Count(k), "unexpected tag %s", k)
	}
}

func TestBuildTagOrder(t *testing.T) {
	h, err := Build(testSite(), Props{
		Title:   "Post",
		Image:   "/og/post.jpg",
		Article: true,
		NoIndex: true,
	})
	require.NoError(t, err)

	want := []string{
		"description",
		"og:title", "og:description", "og:type", "og:url", "og:site_name", "og:locale",
		"twitter:card", "twitter:title", "twitter:description",
		"twitter:creator",
		"og:image", "og:image:width", "og:image:height", "twitter:image",
		"author",
		"robots", "googlebot",
	}
	assert.Equal(t, want, keys(h))
}

func TestBuildDeterministic(t *testing.T) {
	p := Props{Title: "Post", Description: "d", Image: "https://cdn.example.com/a.png", Article: true}
	a, err := Build(testSite(), p)
	require.NoError(t, err)
	b, err := Build(testSite(), p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildArticleAuthor(t *testing.T) {
	h, err := Build(testSite(), Props{Title: "Post", Article: true})
	require.NoError(t, err)
	assert.Equal(t, 1, h.Count("author"))
	author, _ := h.Lookup("author")
	assert.Equal(t, "Sam Doe", author)
	ogType, _ := h.Lookup("og:type")
	assert.Equal(t, "article", ogType)

	site := testSite()
	site.AuthorName = ""
	h, err = Build(site, Props{Title: "Post", Article: true})
	require.NoError(t, err)
	assert.Zero(t, h.Count("author"))
	assert.Zero(t, h.Count("twitter:creator"))

	h, err = Build(testSite(), Props{Title: "Page"})
	require.NoError(t, err)
	assert.Zero(t, h.Count("author"))
}

func TestBuildNoIndex(t *testing.T) {
	h, err := Build(testSite(), Props{Title: "Draft", NoIndex: true})
	require.NoError(t, err)
	robots, ok := h.Lookup("robots")
	require.True(t, ok)
	assert.Equal(t, "noindex, nofollow", robots)
	googlebot, ok := h.Lookup("googlebot")
	require.True(t, ok)
	assert.Equal(t, "noindex, nofollow", googlebot)
}

func TestBuildTwitterCard(t *testing.T) {
	tests := []struct {
		name  string
		image string
		want  string
	}{
		{"absolute image", "https://cdn.example.com/card.jpg", "summary_large_image"},
		{"relative image", "/og/card.jpg", "summary_large_image"},
		{"no image", "", "summary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Build(testSite(), Props{Title: "Post", Image: tt.image})
			require.NoError(t, err)
			card, _ := h.Lookup("twitter:card")
			assert.Equal(t, tt.want, card)
		})
	}
}

func TestBuildImageDimensions(t *testing.T) {
	h, err := Build(testSite(), Props{Title: "Post", Image: "/og/card.jpg"})
	require.NoError(t, err)
	img, _ := h.Lookup("og:image")
	assert.Equal(t, "https://example.com/og/card.jpg", img)
	w, _ := h.Lookup("og:image:width")
	assert.Equal(t, "1200", w)
	ht, _ := h.Lookup("og:image:height")
	assert.Equal(t, "630", ht)
}

func TestBuildUnresolvableImage(t *testing.T) {
	site := testSite()
	site.SiteURL = ""
	h, err := Build(site, Props{Title: "Post", Image: "/og/card.jpg"})
	require.NoError(t, err)
	assert.Zero(t, h.Count("og:image"))
	card, _ := h.Lookup("twitter:card")
	assert.Equal(t, "summary", card)
}

func TestBuildCanonical(t *testing.T) {
	h, err := Build(testSite(), Props{Title: "Post"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", h.Canonical)
	ogURL, _ := h.Lookup("og:url")
	assert.Equal(t, h.Canonical, ogURL)

	h, err = Build(testSite(), Props{Title: "Post", CanonicalURL: "https://example.com/blog/post/"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/blog/post/", h.Canonical)
}

func TestBuildExtraMetaAppended(t *testing.T) {
	extra := []Tag{
		{Name: "keywords", Content: "go, seo"},
		{Property: "article:published_time", Content: "2024-01-15"},
		{Name: "theme-color", Content: "#000"},
	}
	h, err := Build(testSite(), Props{Title: "Post", NoIndex: true, Meta: extra})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(h.Tags), len(extra))
	assert.Equal(t, extra, h.Tags[len(h.Tags)-len(extra):])
}

func TestBuildMissingTitle(t *testing.T) {
	_, err := Build(testSite(), Props{Title: "   "})
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestBuildDescriptionFallback(t *testing.T) {
	site := testSite()
	site.Description = ""
	h, err := Build(site, Props{Title: "Post"})
	require.NoError(t, err)
	desc, ok := h.Lookup("description")
	assert.True(t, ok)
	assert.Equal(t, "", desc)

	h, err = Build(testSite(), Props{Title: "Post", Description: "own"})
	require.NoError(t, err)
	desc, _ = h.Lookup("og:description")
	assert.Equal(t, "own", desc)
}

func TestDocumentTitle(t *testing.T) {
	h, err := Build(testSite(), Props{Title: "Post"})
	require.NoError(t, err)
	assert.Equal(t, "Post | Dev Notes", h.Title)

	h, err = Build(testSite(), Props{Title: "Dev Notes"})
	require.NoError(t, err)
	assert.Equal(t, "Dev Notes", h.Title)
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"https://example.com", "/a.png", "https://example.com/a.png"},
		{"https://example.com/blog/", "a.png", "https://example.com/blog/a.png"},
		{"https://example.com", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"", "/a.png", ""},
		{"https://example.com", "", ""},
		{"https://example.com", "ftp://example.com/a.png", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveURL(tt.base, tt.ref), "ResolveURL(%q, %q)", tt.base, tt.ref)
	}
}

func TestHeadComponent(t *testing.T) {
	h, err := Build(testSite(), Props{Title: `Quotes "and" <tags>`, Image: "/og/x.jpg"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, h.Component().Render(context.Background(), &buf))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><head>" + buf.String() + "</head></html>"))
	require.NoError(t, err)

	assert.Equal(t, h.Title, doc.Find("title").Text())
	href, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://example.com", href)
	assert.Equal(t, len(h.Tags), doc.Find("meta").Length())
	ogTitle, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	assert.Equal(t, `Quotes "and" <tags>`, ogTitle)
	card, _ := doc.Find(`meta[name="twitter:card"]`).Attr("content")
	assert.Equal(t, "summary_large_image", card)
}
