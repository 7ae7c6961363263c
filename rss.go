package folio

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// feedLimit caps the number of items in feed.xml.
const feedLimit = 20

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
}

// writeRSS writes an RSS 2.0 feed of the newest indexable posts.
func writeRSS(w io.Writer, site views.SiteConfig, posts []content.Post) error {
	base := site.URL
	items := make([]rssItem, 0, min(len(posts), feedLimit))
	for _, p := range posts {
		if !indexable(p) {
			continue
		}
		if len(items) == feedLimit {
			break
		}
		postURL := views.BuildURL(base, "blog", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			Categories:  p.Tags,
			PubDate:     p.Date.Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}
	channel := rssChannel{
		Title:       site.Title,
		Link:        views.BuildURL(base),
		Description: site.Description,
		Language:    site.Lang,
		Items:       items,
	}
	if len(posts) > 0 {
		channel.LastBuildDate = posts[0].Date.Format(time.RFC1123Z)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(rssXML{Version: "2.0", Channel: channel})
}
