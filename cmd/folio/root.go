package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

// cli carries the global flags and the logger shared by subcommands.
type cli struct {
	cfgFile string
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "folio",
		Short: "Static blog generator",
		Long: `folio turns a directory of Markdown posts into a static blog with
per-page SEO tags, tag pages, an RSS feed, a sitemap and robots.txt.

Example usage:
  folio new myblog             # Scaffold a new site
  folio serve                  # Preview with live reload on :3000
  folio build                  # Render the site into ./public
  folio list --tag go          # List posts tagged "go"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.setupLogger(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./folio.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newBuildCmd(c),
		newServeCmd(c),
		newListCmd(c),
		newNewCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) setupLogger(w io.Writer) {
	level := folio.LogLevel(os.Getenv("FOLIO_LOG_LEVEL"))
	if c.verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(c.logger)
}

func (c *cli) loadConfig() (*folio.Config, error) {
	cfg, err := folio.LoadConfig(c.cfgFile)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("configuration loaded",
		"title", cfg.Site.Title,
		"url", cfg.Site.URL,
		"content_dir", cfg.ContentDir,
		"output_dir", cfg.OutputDir,
	)
	return cfg, nil
}

func success(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, "✓ "+format+"\n", args...)
}

func info(w io.Writer, format string, args ...any) {
	color.New(color.FgCyan).Fprintf(w, format+"\n", args...)
}

func header(w io.Writer, title string) {
	color.New(color.Bold).Fprintf(w, "\n%s\n", title)
	fmt.Fprintln(w)
}
