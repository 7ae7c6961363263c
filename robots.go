package folio

import (
	"fmt"
	"io"
)

// writeRobots allows every crawler, hides the 404 page and points at the
// sitemap.
func writeRobots(w io.Writer, base string) error {
	_, err := fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: %s\n\nSitemap: %s/sitemap.xml\n",
		NotFoundPath, base)
	return err
}
