package folio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eringen/folio/content"
)

// Builder renders the whole site into Config.OutputDir.
type Builder struct {
	Config *Config
	logger *slog.Logger
}

// NewBuilder creates a Builder. A nil logger falls back to slog.Default().
func NewBuilder(cfg *Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{Config: cfg, logger: logger}
}

// Build loads the posts, refreshes the post index and writes every page,
// feed and asset. Any content or SEO error aborts the build.
func (b *Builder) Build(ctx context.Context) (BuildReport, error) {
	start := time.Now()
	cfg := b.Config
	var report BuildReport

	posts, err := content.Load(cfg.ContentDir, content.LoadOptions{IncludeDrafts: cfg.IncludeDrafts})
	if err != nil {
		return report, fmt.Errorf("load content: %w", err)
	}
	b.logger.Info("loaded posts", "count", len(posts), "dir", cfg.ContentDir)

	store, err := NewStore(cfg.IndexPath)
	if err != nil {
		return report, fmt.Errorf("open index: %w", err)
	}
	defer store.Close()
	if err := store.SyncPosts(ctx, posts); err != nil {
		return report, fmt.Errorf("sync index: %w", err)
	}
	tags, err := store.ListTags()
	if err != nil {
		return report, fmt.Errorf("list tags: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return report, err
	}

	stats, err := copyStatic(cfg.StaticDir, filepath.Join(cfg.OutputDir, "static"))
	if err != nil {
		return report, fmt.Errorf("copy static: %w", err)
	}
	report.Files = stats.Files
	report.Images = stats.Resized

	r := NewRenderer(cfg.Site)
	for _, p := range posts {
		src, ok := localImage(cfg.StaticDir, p.Image)
		if !ok {
			continue
		}
		card, err := writeCard(src, cfg.OutputDir, p.Slug)
		if err != nil {
			return report, err
		}
		r.SetCard(p.Slug, card)
		report.Cards++
	}

	var (
		pages   atomic.Int64
		claimed sync.Map // output file -> URL path
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	render := func(fn func(context.Context) (Page, error)) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := fn(gctx)
			if err != nil {
				return err
			}
			if prev, dup := claimed.LoadOrStore(p.File(), p.Path); dup {
				return fmt.Errorf("pages %s and %s both write %s", prev, p.Path, p.File())
			}
			if err := b.writeFile(p.File(), p.Body); err != nil {
				return err
			}
			pages.Add(1)
			b.logger.Debug("wrote page", "path", p.Path)
			return nil
		})
	}

	render(func(ctx context.Context) (Page, error) { return r.Home(ctx, posts) })
	render(r.NotFound)
	for _, p := range posts {
		render(func(ctx context.Context) (Page, error) { return r.Post(ctx, p, posts) })
	}
	for _, t := range tags {
		render(func(ctx context.Context) (Page, error) { return r.Tag(ctx, t, content.FilterByTag(posts, t)) })
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	if err := b.writeWith("sitemap.xml", func(w io.Writer) error {
		return writeSitemap(w, cfg.Site.URL, posts, tags)
	}); err != nil {
		return report, err
	}
	if err := b.writeWith("feed.xml", func(w io.Writer) error {
		return writeRSS(w, cfg.Site, posts)
	}); err != nil {
		return report, err
	}
	if err := b.writeWith("robots.txt", func(w io.Writer) error {
		return writeRobots(w, cfg.Site.URL)
	}); err != nil {
		return report, err
	}
	if err := b.writeFile("style.css", Stylesheet); err != nil {
		return report, err
	}

	report.Posts = len(posts)
	report.Tags = len(tags)
	report.Pages = int(pages.Load())
	report.Duration = time.Since(start)
	b.logger.Info("build complete",
		"posts", report.Posts,
		"pages", report.Pages,
		"tags", report.Tags,
		"images", report.Images,
		"cards", report.Cards,
		"duration", report.Duration,
	)
	return report, nil
}

func (b *Builder) writeFile(rel string, data []byte) error {
	out := filepath.Join(b.Config.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

func (b *Builder) writeWith(rel string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return b.writeFile(rel, buf.Bytes())
}
