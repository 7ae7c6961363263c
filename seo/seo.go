// Package seo builds the <head> metadata for every rendered page: document
// title, canonical link, and the ordered list of description, Open Graph,
// Twitter Card, author and robots meta tags.
//
// Build is a pure function. The same Site and Props always yield the same
// Head with the same tag order.
package seo

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Social card dimensions advertised for every resolvable image.
const (
	ImageWidth  = 1200
	ImageHeight = 630
)

const noIndexDirective = "noindex, nofollow"

// ErrMissingTitle is returned when a page has no title.
var ErrMissingTitle = errors.New("seo: page title is required")

// Site holds the site-wide defaults used when a page leaves a field unset.
type Site struct {
	Title       string
	Description string
	SiteURL     string
	AuthorName  string
	Locale      string // og:locale (default "en_US")
	Lang        string // <html lang> (default "en")
}

// Props carries the per-page overrides. Only Title is required.
type Props struct {
	Title        string
	Description  string
	Image        string // absolute, or relative to Site.SiteURL
	CanonicalURL string
	Article      bool
	NoIndex      bool
	Meta         []Tag // appended after the generated tags, in order
}

// Tag is one <meta> element. Exactly one of Name or Property is set.
type Tag struct {
	Name     string
	Property string
	Content  string
}

// Key returns the name or property attribute value of the tag.
func (t Tag) Key() string {
	if t.Property != "" {
		return t.Property
	}
	return t.Name
}

// Head is the composed result for one page.
type Head struct {
	Lang      string
	Title     string // document <title>
	Canonical string
	Tags      []Tag
}

// Lookup returns the content of the first tag whose name or property is key.
func (h Head) Lookup(key string) (string, bool) {
	for _, t := range h.Tags {
		if t.Key() == key {
			return t.Content, true
		}
	}
	return "", false
}

// Count returns how many tags carry the given name or property.
func (h Head) Count(key string) int {
	n := 0
	for _, t := range h.Tags {
		if t.Key() == key {
			n++
		}
	}
	return n
}

// Build composes the head metadata for a page.
func Build(site Site, p Props) (Head, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return Head{}, ErrMissingTitle
	}

	description := firstNonEmpty(p.Description, site.Description)
	canonical := firstNonEmpty(p.CanonicalURL, site.SiteURL)
	image := ResolveURL(site.SiteURL, p.Image)
	locale := firstNonEmpty(site.Locale, "en_US")

	ogType := "website"
	if p.Article {
		ogType = "article"
	}
	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}

	tags := []Tag{
		{Name: "description", Content: description},
		{Property: "og:title", Content: title},
		{Property: "og:description", Content: description},
		{Property: "og:type", Content: ogType},
		{Property: "og:url", Content: canonical},
		{Property: "og:site_name", Content: site.Title},
		{Property: "og:locale", Content: locale},
		{Name: "twitter:card", Content: card},
		{Name: "twitter:title", Content: title},
		{Name: "twitter:description", Content: description},
	}
	if site.AuthorName != "" {
		tags = append(tags, Tag{Name: "twitter:creator", Content: site.AuthorName})
	}
	if image != "" {
		tags = append(tags,
			Tag{Property: "og:image", Content: image},
			Tag{Property: "og:image:width", Content: strconv.Itoa(ImageWidth)},
			Tag{Property: "og:image:height", Content: strconv.Itoa(ImageHeight)},
			Tag{Name: "twitter:image", Content: image},
		)
	}
	if p.Article && site.AuthorName != "" {
		tags = append(tags, Tag{Name: "author", Content: site.AuthorName})
	}
	if p.NoIndex {
		tags = append(tags,
			Tag{Name: "robots", Content: noIndexDirective},
			Tag{Name: "googlebot", Content: noIndexDirective},
		)
	}
	tags = append(tags, p.Meta...)

	return Head{
		Lang:      firstNonEmpty(site.Lang, "en"),
		Title:     documentTitle(title, site.Title),
		Canonical: canonical,
		Tags:      tags,
	}, nil
}

func documentTitle(title, siteTitle string) string {
	if siteTitle == "" || siteTitle == title {
		return title
	}
	return title + " | " + siteTitle
}

// ResolveURL makes ref absolute against base. It returns "" when ref is empty
// or the result is not an absolute http(s) URL.
func ResolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if !u.IsAbs() {
		b, err := url.Parse(base)
		if err != nil || !b.IsAbs() {
			return ""
		}
		u = b.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host == "" {
		return ""
	}
	return u.String()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
