package folio

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// servePage answers from the page cache, rendering and caching on a miss.
func (a *App) servePage(c echo.Context, key string, render func() (Page, error)) error {
	if p, ok := a.Pages.Get(key); ok {
		return RenderPage(c, http.StatusOK, p)
	}
	gen := a.Pages.Generation()
	p, err := render()
	if err != nil {
		return err
	}
	a.Pages.Add(gen, p)
	return RenderPage(c, http.StatusOK, p)
}

func (a *App) handleHome(c echo.Context) error {
	return a.servePage(c, "/", func() (Page, error) {
		posts, err := a.Cache.ListPosts("")
		if err != nil {
			return Page{}, err
		}
		return a.Renderer.Home(c.Request().Context(), posts)
	})
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	return a.servePage(c, "/blog/"+slug+"/", func() (Page, error) {
		post, err := a.Cache.GetPost(slug)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return Page{}, echo.ErrNotFound
			}
			return Page{}, err
		}
		posts, err := a.Cache.ListPosts("")
		if err != nil {
			return Page{}, err
		}
		return a.Renderer.Post(c.Request().Context(), post, posts)
	})
}

func (a *App) handleTag(c echo.Context) error {
	tag := c.Param("tag")
	if t, err := url.PathUnescape(tag); err == nil {
		tag = t
	}
	tag = content.NormalizeTag(tag)
	if !content.ValidTag(tag) {
		return echo.ErrNotFound
	}
	return a.servePage(c, views.TagURL(tag), func() (Page, error) {
		posts, err := a.Cache.ListPosts(tag)
		if err != nil {
			return Page{}, err
		}
		if len(posts) == 0 {
			return Page{}, echo.ErrNotFound
		}
		return a.Renderer.Tag(c.Request().Context(), tag, posts)
	})
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	return writeBlob(c, "application/xml; charset=utf-8", func(w io.Writer) error {
		return writeSitemap(w, a.Config.Site.URL, posts, tags)
	})
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return writeBlob(c, "application/rss+xml; charset=utf-8", func(w io.Writer) error {
		return writeRSS(w, a.Config.Site, posts)
	})
}

func (a *App) handleRobots(c echo.Context) error {
	return writeBlob(c, echo.MIMETextPlainCharsetUTF8, func(w io.Writer) error {
		return writeRobots(w, a.Config.Site.URL)
	})
}

func handleStylesheet(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", Stylesheet)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func writeBlob(c echo.Context, contentType string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusNotFound {
		p, rerr := a.notFoundPage(c)
		if rerr == nil {
			_ = RenderPage(c, http.StatusNotFound, p)
			return
		}
		err = rerr
	}
	if he == nil || he.Code >= 500 {
		a.logger.Error("server error", "uri", c.Request().RequestURI, "error", err)
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func (a *App) notFoundPage(c echo.Context) (Page, error) {
	if p, ok := a.Pages.Get(NotFoundPath); ok {
		return p, nil
	}
	gen := a.Pages.Generation()
	p, err := a.Renderer.NotFound(c.Request().Context())
	if err != nil {
		return Page{}, err
	}
	a.Pages.Add(gen, p)
	return p, nil
}
