package folio

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// serveWatching runs the app with the content watcher until the test ends.
func serveWatching(t *testing.T) *App {
	t.Helper()
	cfg := newTestSite(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rt := Runtime{Addr: "127.0.0.1:0", PostCacheTTL: time.Minute, PageCacheSize: 16, Watch: true}
	app := New(cfg, WithLogger(logger), WithRuntime(rt))
	require.NoError(t, app.Init(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
		app.Close()
	})
	return app
}

// waitForHome rewrites a post until the home page contains want. Rewriting
// covers events emitted before the watcher was listening.
func waitForHome(t *testing.T, app *App, path, post, want string) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	lastWrite := time.Time{}
	for time.Now().Before(deadline) {
		if time.Since(lastWrite) > 500*time.Millisecond {
			writeTestFile(t, path, post)
			lastWrite = time.Now()
		}
		rec := get(t, app, "/")
		if rec.Code == http.StatusOK && strings.Contains(rec.Body.String(), want) {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("home page never listed %q after writing %s", want, path)
}

func postSource(title string) string {
	return "---\ntitle: " + title + "\ndate: 2024-06-01\ntags: [news]\n---\n\nFrom the watcher.\n"
}

func TestWatchReloadsOnNewPost(t *testing.T) {
	app := serveWatching(t)
	require.Equal(t, http.StatusOK, get(t, app, "/").Code)

	waitForHome(t, app, filepath.Join(app.Config.ContentDir, "watched.md"), postSource("Watched Post"), "Watched Post")
	require.Equal(t, http.StatusOK, get(t, app, "/blog/watched/").Code)
	require.Equal(t, http.StatusOK, get(t, app, "/tags/news/").Code)
}

func TestWatchFollowsNewSubdirectory(t *testing.T) {
	app := serveWatching(t)

	// A top-level change first, so the watcher is known to be running
	// before the bundle directory is created.
	waitForHome(t, app, filepath.Join(app.Config.ContentDir, "ready.md"), postSource("Ready Post"), "Ready Post")

	bundle := filepath.Join(app.Config.ContentDir, "new-bundle", "index.md")
	waitForHome(t, app, bundle, postSource("Bundle Post"), "Bundle Post")

	// Edits inside the bundle only reach the watcher if the new directory
	// was added when it was created.
	waitForHome(t, app, bundle, postSource("Bundle Post Revised"), "Bundle Post Revised")
	rec := get(t, app, "/blog/new-bundle/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Bundle Post Revised")
}
