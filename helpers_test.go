package folio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/eringen/folio/views"
)

const (
	helloPost = `---
title: Hello World
date: 2024-03-01
description: The first post.
tags: [Go, web]
---

Hello from **folio**.
`
	bundlePost = `---
title: Bundled
date: 2024-02-01
tags: [go]
image: /static/images/cover.png
---

A post that lives in its own directory and has a cover image.
`
	privatePost = `---
title: Private Notes
date: 2024-01-01
tags: [misc]
noindex: true
---

Not for search engines.
`
	draftPost = `---
title: Work in Progress
date: 2024-04-01
tags: [go]
draft: true
---

Unfinished.
`
)

// newTestSite lays out a small site in a temp dir and returns its config.
func newTestSite(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &Config{
		Site: views.SiteConfig{
			Title:       "Test Blog",
			Description: "A blog used in tests.",
			URL:         "https://example.com/",
			Author:      views.Author{Name: "Jane Doe", Summary: "Writes tests."},
			Social:      views.Social{GitHub: "janedoe"},
		},
		ContentDir: filepath.Join(dir, "content", "posts"),
		StaticDir:  filepath.Join(dir, "static"),
		OutputDir:  filepath.Join(dir, "public"),
		IndexPath:  filepath.Join(dir, "data", "index.db"),
		Workers:    2,
	}
	cfg.setDefaults()

	writeTestFile(t, filepath.Join(cfg.ContentDir, "hello.md"), helloPost)
	writeTestFile(t, filepath.Join(cfg.ContentDir, "bundle", "index.md"), bundlePost)
	writeTestFile(t, filepath.Join(cfg.ContentDir, "private.md"), privatePost)
	writeTestFile(t, filepath.Join(cfg.ContentDir, "draft.md"), draftPost)
	writeTestFile(t, filepath.Join(cfg.StaticDir, "favicon.svg"), `<svg xmlns="http://www.w3.org/2000/svg"/>`)
	writeTestPNG(t, filepath.Join(cfg.StaticDir, "images", "cover.png"), 2000, 1000)
	return cfg
}

func writeTestFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}
