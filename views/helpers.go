package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/seo"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// TagURL returns the site-relative URL of a tag page.
func TagURL(tag string) string {
	return "/tags/" + url.PathEscape(tag) + "/"
}

// SocialLinks expands the configured handles into profile URLs, skipping
// empty ones. Order is fixed: LinkedIn, Stack Overflow, GitHub.
func SocialLinks(s Social) []SocialLink {
	var links []SocialLink
	if h := strings.TrimSpace(s.LinkedIn); h != "" {
		links = append(links, SocialLink{Label: "LinkedIn", URL: "https://www.linkedin.com/in/" + url.PathEscape(h)})
	}
	if h := strings.TrimSpace(s.StackOverflow); h != "" {
		links = append(links, SocialLink{Label: "Stack Overflow", URL: "https://stackoverflow.com/users/" + url.PathEscape(h)})
	}
	if h := strings.TrimSpace(s.GitHub); h != "" {
		links = append(links, SocialLink{Label: "GitHub", URL: "https://github.com/" + url.PathEscape(h)})
	}
	return links
}

// PostCount formats "1 post" / "N posts".
func PostCount(n int) string {
	if n == 1 {
		return "1 post"
	}
	return strconv.Itoa(n) + " posts"
}

// ReadingTime formats a minute count.
func ReadingTime(minutes int) string {
	return strconv.Itoa(minutes) + " min read"
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Title,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author.Name != "" {
		data["author"] = personLD(cfg)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, post content.Post) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Excerpt,
		"datePublished": post.DateString(),
		"url":           postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Title,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Author.Name != "" {
		data["author"] = personLD(cfg)
	}
	if img := seo.ResolveURL(cfg.URL, post.Image); img != "" {
		data["image"] = img
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func personLD(cfg SiteConfig) map[string]interface{} {
	person := map[string]interface{}{
		"@type": "Person",
		"name":  cfg.Author.Name,
	}
	var sameAs []string
	for _, l := range SocialLinks(cfg.Social) {
		sameAs = append(sameAs, l.URL)
	}
	if len(sameAs) > 0 {
		person["sameAs"] = sameAs
	}
	return person
}
