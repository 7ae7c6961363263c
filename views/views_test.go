package views

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/seo"
)

func testConfig() SiteConfig {
	return SiteConfig{
		Title:       "Dev Notes",
		Description: "Notes on Go",
		URL:         "https://example.com",
		Image:       "/images/avatar.png",
		Author:      Author{Name: "Sam Doe", Summary: "builds backend systems."},
		Social:      Social{LinkedIn: "samdoe", GitHub: "samdoe"},
	}
}

func testPosts() []content.Post {
	return []content.Post{
		{Slug: "newest", Title: "Newest", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Excerpt: "n", Tags: []string{"go"}, ReadingTime: 2, HTML: "<p>newest</p>"},
		{Slug: "middle", Title: "Middle <b>", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Excerpt: "m", Tags: []string{"go", "web"}, ReadingTime: 1, HTML: "<p>middle body</p>"},
		{Slug: "oldest", Title: "Oldest", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Excerpt: "o", ReadingTime: 1},
	}
}

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestBio(t *testing.T) {
	doc := renderDoc(t, Bio(testConfig()))

	assert.Equal(t, "Sam Doe", doc.Find(".bio strong").Text())
	src, _ := doc.Find(".bio-avatar").Attr("src")
	assert.Equal(t, "https://example.com/images/avatar.png", src)

	var hrefs []string
	doc.Find(".bio-social a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
	})
	assert.Equal(t, []string{"https://www.linkedin.com/in/samdoe", "https://github.com/samdoe"}, hrefs)
}

func TestBioWithoutAuthor(t *testing.T) {
	cfg := testConfig()
	cfg.Author.Name = ""
	var buf bytes.Buffer
	require.NoError(t, Bio(cfg).Render(context.Background(), &buf))
	assert.Empty(t, buf.String())
}

func TestLandingPage(t *testing.T) {
	posts := testPosts()
	doc := renderDoc(t, LandingPage(testConfig(), posts, content.Tags(posts)))

	assert.Equal(t, 1, doc.Find(".bio").Length())
	items := doc.Find(".post-list .post-item")
	require.Equal(t, 3, items.Length())
	assert.Equal(t, "Middle <b>", items.Eq(1).Find("h2 a").Text())
	href, _ := items.Eq(0).Find("h2 a").Attr("href")
	assert.Equal(t, "/blog/newest/", href)
	assert.Equal(t, "2024-03-01", items.Eq(0).Find("time").Text())
}

func TestLandingPageEmpty(t *testing.T) {
	doc := renderDoc(t, LandingPage(testConfig(), nil, nil))
	assert.Equal(t, "No blog posts found.", doc.Find(".empty").Text())
}

func TestPostPage(t *testing.T) {
	posts := testPosts()
	newer, older := content.Adjacent(posts, "middle")
	related := content.Related(posts[1], posts, 3)
	doc := renderDoc(t, PostPage(testConfig(), posts[1], newer, older, related))

	assert.Equal(t, "Middle <b>", doc.Find("h1").Text())
	assert.Equal(t, "middle body", doc.Find("section p").Text())
	prev, _ := doc.Find(`a[rel="prev"]`).Attr("href")
	assert.Equal(t, "/blog/oldest/", prev)
	next, _ := doc.Find(`a[rel="next"]`).Attr("href")
	assert.Equal(t, "/blog/newest/", next)
	assert.Equal(t, 1, doc.Find(".related li").Length())
	assert.Equal(t, 1, doc.Find("article footer .bio").Length())
}

func TestTagPage(t *testing.T) {
	posts := content.FilterByTag(testPosts(), "go")
	doc := renderDoc(t, TagPage(testConfig(), "go", posts))
	assert.Equal(t, "2 posts tagged “go”", doc.Find("h1").Text())
	assert.Equal(t, 2, doc.Find(".post-item").Length())
}

func TestLayout(t *testing.T) {
	cfg := testConfig()
	head, err := seo.Build(cfg.SEO(), seo.Props{Title: "Hello", Article: true})
	require.NoError(t, err)

	doc := renderDoc(t, Layout(cfg, head, WebsiteJsonLD(cfg), NotFound(cfg)))

	lang, _ := doc.Find("html").Attr("lang")
	assert.Equal(t, "en", lang)
	assert.Equal(t, "Hello | Dev Notes", doc.Find("title").Text())
	author, _ := doc.Find(`meta[name="author"]`).Attr("content")
	assert.Equal(t, "Sam Doe", author)
	assert.Equal(t, "404: Not Found", doc.Find("main h1").Text())

	var ld map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(doc.Find(`script[type="application/ld+json"]`).Text()), &ld))
	assert.Equal(t, "WebSite", ld["@type"])
}

func TestBlogPostingJsonLD(t *testing.T) {
	post := testPosts()[1]
	post.Image = "/og/middle.jpg"
	var ld map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(BlogPostingJsonLD(testConfig(), post)), &ld))

	assert.Equal(t, "BlogPosting", ld["@type"])
	assert.Equal(t, "https://example.com/blog/middle/", ld["url"])
	assert.Equal(t, "https://example.com/og/middle.jpg", ld["image"])
	assert.Equal(t, "go, web", ld["keywords"])
	author := ld["author"].(map[string]interface{})
	assert.Len(t, author["sameAs"], 2)
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://example.com", BuildURL("https://example.com"))
	assert.Equal(t, "https://example.com/blog/a/", BuildURL("https://example.com", "blog", "a"))
	assert.Equal(t, "https://example.com/sub/tags/go/", BuildURL("https://example.com/sub/", "tags", "go"))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "1 post", PostCount(1))
	assert.Equal(t, "3 posts", PostCount(3))
	assert.Equal(t, "/tags/c%23/", TagURL("c#"))
	assert.True(t, strings.HasPrefix(ReadingTime(4), "4 min"))
}
