package folio

import (
	"encoding/xml"
	"io"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// indexable reports whether a post belongs in the sitemap and feed.
func indexable(p content.Post) bool {
	return !p.Draft && !p.NoIndex
}

// writeSitemap writes the sitemap for the home page, every indexable post
// and every tag page.
func writeSitemap(w io.Writer, base string, posts []content.Post, tags []string) error {
	home := sitemapURL{Loc: views.BuildURL(base)}
	if len(posts) > 0 {
		home.LastMod = posts[0].DateString()
	}
	urls := []sitemapURL{home}
	for _, p := range posts {
		if !indexable(p) {
			continue
		}
		urls = append(urls, sitemapURL{
			Loc:     views.BuildURL(base, "blog", p.Slug),
			LastMod: p.DateString(),
		})
	}
	for _, t := range tags {
		urls = append(urls, sitemapURL{Loc: views.BuildURL(base, "tags", t)})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(sitemap)
}
