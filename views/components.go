package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/seo"
)

// htmlWriter accumulates the first write error so components read linearly.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) link(href, class, label string) {
	h.raw("<a")
	h.attr("href", href)
	if class != "" {
		h.attr("class", class)
	}
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// Layout is the document shell shared by every page.
func Layout(cfg SiteConfig, head seo.Head, jsonLD string, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html>\n<html")
		h.attr("lang", head.Lang)
		h.raw(">\n<head>\n<meta charset=\"utf-8\">\n")
		h.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		h.render(head.Component())
		h.raw("<link rel=\"stylesheet\" href=\"/style.css\">\n")
		h.raw("<link rel=\"alternate\" type=\"application/rss+xml\"")
		h.attr("title", cfg.Title)
		h.raw(" href=\"/feed.xml\">\n")
		if jsonLD != "" {
			h.raw("<script type=\"application/ld+json\">")
			h.raw(jsonLD)
			h.raw("</script>\n")
		}
		h.raw("</head>\n<body>\n<header class=\"site-header\">")
		h.link("/", "site-title", cfg.Title)
		h.raw("</header>\n<main class=\"site-main\">\n")
		h.render(body)
		h.raw("</main>\n<footer class=\"site-footer\">")
		if cfg.Author.Name != "" {
			h.raw("&copy; ")
			h.text(cfg.Author.Name)
			h.raw(" &middot; ")
		}
		h.link("/feed.xml", "", "RSS")
		h.raw("</footer>\n</body>\n</html>\n")
	})
}

// Bio renders the author card. It renders nothing without an author name.
func Bio(cfg SiteConfig) templ.Component {
	return component(func(h *htmlWriter) {
		if cfg.Author.Name == "" {
			return
		}
		h.raw("<div class=\"bio\">")
		if avatar := seo.ResolveURL(cfg.URL, cfg.Image); avatar != "" {
			h.raw("<img class=\"bio-avatar\"")
			h.attr("src", avatar)
			h.attr("alt", cfg.Author.Name)
			h.raw(" width=\"64\" height=\"64\">")
		}
		h.raw("<p>Written by <strong>")
		h.text(cfg.Author.Name)
		h.raw("</strong>")
		if cfg.Author.Summary != "" {
			h.raw(" ")
			h.text(cfg.Author.Summary)
		}
		h.raw("</p>")
		if links := SocialLinks(cfg.Social); len(links) > 0 {
			h.raw("<ul class=\"bio-social\">")
			for _, l := range links {
				h.raw("<li>")
				h.link(l.URL, "", l.Label)
				h.raw("</li>")
			}
			h.raw("</ul>")
		}
		h.raw("</div>\n")
	})
}

// TagList renders tag pills linking to tag pages. active is highlighted.
func TagList(tags []string, active string) templ.Component {
	return component(func(h *htmlWriter) {
		if len(tags) == 0 {
			return
		}
		h.raw("<ul class=\"tags\">")
		for _, t := range tags {
			class := "tag"
			if t == active {
				class = "tag tag-active"
			}
			h.raw("<li>")
			h.link(TagURL(t), class, t)
			h.raw("</li>")
		}
		h.raw("</ul>\n")
	})
}

// PostList renders the post summaries shown on the landing and tag pages.
func PostList(posts []content.Post) templ.Component {
	return component(func(h *htmlWriter) {
		if len(posts) == 0 {
			h.raw("<p class=\"empty\">No blog posts found.</p>\n")
			return
		}
		h.raw("<ol class=\"post-list\">\n")
		for _, p := range posts {
			h.raw("<li><article class=\"post-item\"><header><h2>")
			h.link(p.Link(), "", p.Title)
			h.raw("</h2><small><time")
			h.attr("datetime", p.DateString())
			h.raw(">")
			h.text(p.DateString())
			h.raw("</time> &middot; ")
			h.text(ReadingTime(p.ReadingTime))
			h.raw("</small></header><p>")
			h.text(p.Excerpt)
			h.raw("</p>")
			h.render(TagList(p.Tags, ""))
			h.raw("</article></li>\n")
		}
		h.raw("</ol>\n")
	})
}

// LandingPage is the home page: Bio, tag index, then every post.
func LandingPage(cfg SiteConfig, posts []content.Post, tags []string) templ.Component {
	return component(func(h *htmlWriter) {
		h.render(Bio(cfg))
		h.render(TagList(tags, ""))
		h.render(PostList(posts))
	})
}

// PostPage renders a single article with newer/older navigation.
func PostPage(cfg SiteConfig, post content.Post, newer, older *content.Post, related []content.Post) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<article class=\"post\" itemscope itemtype=\"http://schema.org/Article\">\n<header><h1 itemprop=\"headline\">")
		h.text(post.Title)
		h.raw("</h1><p class=\"post-meta\"><time")
		h.attr("datetime", post.DateString())
		h.raw(">")
		h.text(post.DateString())
		h.raw("</time> &middot; ")
		h.text(ReadingTime(post.ReadingTime))
		h.raw("</p></header>\n<section itemprop=\"articleBody\">\n")
		h.render(markdown.Markdown(post.HTML))
		h.raw("</section>\n")
		h.render(TagList(post.Tags, ""))
		h.raw("<hr>\n<footer>")
		h.render(Bio(cfg))
		h.raw("</footer>\n</article>\n")

		if len(related) > 0 {
			h.raw("<aside class=\"related\"><h2>Related posts</h2><ul>")
			for _, r := range related {
				h.raw("<li>")
				h.link(r.Link(), "", r.Title)
				h.raw("</li>")
			}
			h.raw("</ul></aside>\n")
		}

		if newer == nil && older == nil {
			return
		}
		h.raw("<nav class=\"post-nav\"><ul>")
		h.raw("<li>")
		if older != nil {
			h.raw("<a rel=\"prev\"")
			h.attr("href", older.Link())
			h.raw(">&larr; ")
			h.text(older.Title)
			h.raw("</a>")
		}
		h.raw("</li><li>")
		if newer != nil {
			h.raw("<a rel=\"next\"")
			h.attr("href", newer.Link())
			h.raw(">")
			h.text(newer.Title)
			h.raw(" &rarr;</a>")
		}
		h.raw("</li></ul></nav>\n")
	})
}

// TagPage lists the posts carrying tag.
func TagPage(cfg SiteConfig, tag string, posts []content.Post) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<h1>")
		h.text(PostCount(len(posts)))
		h.raw(" tagged &ldquo;")
		h.text(tag)
		h.raw("&rdquo;</h1>\n")
		h.render(PostList(posts))
		h.raw("<p>")
		h.link("/", "", "All posts")
		h.raw("</p>\n")
	})
}

// NotFound is the body of the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<h1>404: Not Found</h1>\n<p>You just hit a route that doesn&#39;t exist.</p>\n<p>")
		h.link("/", "", "Back to "+cfg.Title)
		h.raw("</p>\n")
	})
}
