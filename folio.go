// Package folio is a static blog generator built with Go, templ and goldmark.
// It turns a directory of Markdown posts into a site with per-page SEO tags,
// tag pages, RSS, a sitemap and robots.txt, and serves the same pages from a
// development server that reloads on content changes.
package folio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/folio/content"
)

const shutdownTimeout = 10 * time.Second

// App is the development server. It wires together the store, caches,
// renderer, handlers and middleware.
type App struct {
	Config   *Config
	Echo     *echo.Echo
	Store    *Store
	Cache    *PostCache
	Pages    *PageCache
	Renderer *Renderer

	logger   *slog.Logger
	runtime  Runtime
	reloadMu sync.Mutex
}

// New creates an App for cfg. Call Init (or Start) before serving.
func New(cfg *Config, opts ...Option) *App {
	a := &App{
		Config:   cfg,
		Echo:     echo.New(),
		Renderer: NewRenderer(cfg.Site),
		logger:   slog.Default(),
		runtime: Runtime{
			Addr:          ":3000",
			LogLevel:      "info",
			PostCacheTTL:  5 * time.Minute,
			PageCacheSize: 256,
			Watch:         true,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	return a
}

// Init opens the post index, loads the content and registers middleware
// and routes. The Echo instance is ready to serve afterwards.
func (a *App) Init(ctx context.Context) error {
	store, err := NewStore(a.Config.IndexPath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.runtime.PostCacheTTL)

	pages, err := NewPageCache(a.runtime.PageCacheSize)
	if err != nil {
		return fmt.Errorf("folio: init page cache: %w", err)
	}
	a.Pages = pages

	if err := a.Reload(ctx); err != nil {
		return err
	}

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

// Start initializes the app and serves until ctx is canceled, then shuts
// the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(ctx); err != nil {
		return err
	}
	return a.Serve(ctx)
}

// Serve runs the HTTP server and, when enabled, the content watcher on an
// initialized app until ctx is canceled.
func (a *App) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("serving", "addr", a.runtime.Addr, "content", a.Config.ContentDir)
		if err := a.Echo.Start(a.runtime.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if a.runtime.Watch {
		g.Go(func() error {
			return a.watch(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down")
		return a.Echo.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Reload reparses the content directory, re-syncs the post index and
// drops every cached listing and page. On a content error the previous
// index stays in place.
func (a *App) Reload(ctx context.Context) error {
	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()

	posts, err := content.Load(a.Config.ContentDir, content.LoadOptions{IncludeDrafts: a.Config.IncludeDrafts})
	if err != nil {
		return fmt.Errorf("folio: load content: %w", err)
	}
	if err := a.Store.SyncPosts(ctx, posts); err != nil {
		return fmt.Errorf("folio: sync index: %w", err)
	}
	a.Cache.Invalidate()
	a.Pages.Purge()
	a.logger.Info("content loaded", "posts", len(posts))
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/static", a.Config.StaticDir)
	e.GET("/style.css", handleStylesheet)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/tags/:tag/", a.handleTag)
}

// Close releases the post index.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
