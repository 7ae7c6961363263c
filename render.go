package folio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/seo"
	"github.com/eringen/folio/views"
)

const relatedLimit = 3

// NotFoundPath is the URL path of the rendered 404 page.
const NotFoundPath = "/404.html"

// Renderer turns posts into full HTML pages. The site config is injected
// once; every page composes its head through seo.Build.
type Renderer struct {
	Site views.SiteConfig

	// cards maps a post slug to its generated social card path.
	cards map[string]string
}

// NewRenderer creates a Renderer for the given site.
func NewRenderer(site views.SiteConfig) *Renderer {
	return &Renderer{Site: site, cards: make(map[string]string)}
}

// SetCard records a generated social card for a post.
func (r *Renderer) SetCard(slug, cardPath string) {
	r.cards[slug] = cardPath
}

func (r *Renderer) page(ctx context.Context, urlPath string, props seo.Props, jsonLD string, body templ.Component) (Page, error) {
	head, err := seo.Build(r.Site.SEO(), props)
	if err != nil {
		return Page{}, fmt.Errorf("render %s: %w", urlPath, err)
	}
	var buf bytes.Buffer
	if err := views.Layout(r.Site, head, jsonLD, body).Render(ctx, &buf); err != nil {
		return Page{}, fmt.Errorf("render %s: %w", urlPath, err)
	}
	return Page{Path: urlPath, Body: buf.Bytes()}, nil
}

// Home renders the landing page.
func (r *Renderer) Home(ctx context.Context, posts []content.Post) (Page, error) {
	props := seo.Props{
		Title:        r.Site.Title,
		CanonicalURL: views.BuildURL(r.Site.URL),
	}
	return r.page(ctx, "/", props, views.WebsiteJsonLD(r.Site),
		views.LandingPage(r.Site, posts, content.Tags(posts)))
}

// Post renders one article. posts is the full newest-first list used for
// navigation and related links.
func (r *Renderer) Post(ctx context.Context, post content.Post, posts []content.Post) (Page, error) {
	canonical := post.Canonical
	if canonical == "" {
		canonical = views.BuildURL(r.Site.URL, "blog", post.Slug)
	}
	meta := []seo.Tag{{Property: "article:published_time", Content: post.Date.Format("2006-01-02T15:04:05Z07:00")}}
	for _, t := range post.Tags {
		meta = append(meta, seo.Tag{Property: "article:tag", Content: t})
	}
	props := seo.Props{
		Title:        post.Title,
		Description:  post.Excerpt,
		Image:        r.socialImage(post),
		CanonicalURL: canonical,
		Article:      true,
		NoIndex:      post.NoIndex || post.Draft,
		Meta:         meta,
	}
	newer, older := content.Adjacent(posts, post.Slug)
	related := content.Related(post, posts, relatedLimit)
	return r.page(ctx, post.Link(), props, views.BlogPostingJsonLD(r.Site, post),
		views.PostPage(r.Site, post, newer, older, related))
}

// Tag renders the listing for one tag.
func (r *Renderer) Tag(ctx context.Context, tag string, posts []content.Post) (Page, error) {
	props := seo.Props{
		Title:        fmt.Sprintf("Posts tagged %q", tag),
		Description:  fmt.Sprintf("%s tagged %s on %s.", views.PostCount(len(posts)), tag, r.Site.Title),
		CanonicalURL: views.BuildURL(r.Site.URL, "tags", tag),
	}
	return r.page(ctx, views.TagURL(tag), props, "", views.TagPage(r.Site, tag, posts))
}

// NotFound renders the 404 page. It is never indexed.
func (r *Renderer) NotFound(ctx context.Context) (Page, error) {
	props := seo.Props{Title: "404: Not Found", NoIndex: true}
	return r.page(ctx, NotFoundPath, props, "", views.NotFound(r.Site))
}

func (r *Renderer) socialImage(post content.Post) string {
	if card, ok := r.cards[post.Slug]; ok {
		return card
	}
	return post.Image
}

// RenderPage writes a pre-rendered page with the given status code.
func RenderPage(c echo.Context, code int, p Page) error {
	return c.HTMLBlob(code, p.Body)
}
