package folio

import (
	"net/url"
	"path"
	"strings"
	"time"
)

// Page is one rendered HTML document and the URL path it is served at.
type Page struct {
	Path string // URL path, e.g. "/" or "/blog/hello/"
	Body []byte
}

// File returns the output file path for the page relative to the output
// directory: "/blog/hello/" becomes "blog/hello/index.html".
func (p Page) File() string {
	return PageFile(p.Path)
}

// PageFile maps a URL path to its output file. Escaped segments are
// decoded so "/tags/c%23/" is written to "tags/c#/index.html".
func PageFile(urlPath string) string {
	if p, err := url.PathUnescape(urlPath); err == nil {
		urlPath = p
	}
	if strings.HasSuffix(urlPath, ".html") {
		return strings.TrimPrefix(urlPath, "/")
	}
	return strings.TrimPrefix(path.Join(urlPath, "index.html"), "/")
}

// BuildReport summarizes a completed build.
type BuildReport struct {
	Posts    int
	Tags     int
	Pages    int
	Images   int
	Cards    int
	Files    int
	Duration time.Duration
}
