package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

func newBuildCmd(c *cli) *cobra.Command {
	var (
		drafts bool
		out    string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the site into the output directory",
		Long: `Render every post, tag page, the landing page and the 404 page, then
write sitemap.xml, feed.xml and robots.txt and copy static assets.

Examples:
  folio build                  # Build into ./public
  folio build --drafts         # Include posts marked draft
  folio build --out dist       # Build into ./dist`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if drafts {
				cfg.IncludeDrafts = true
			}
			if out != "" {
				cfg.OutputDir = out
			}

			report, err := folio.NewBuilder(cfg, c.logger).Build(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			success(w, "Built %d pages from %d posts into %s (%s)",
				report.Pages, report.Posts, cfg.OutputDir, report.Duration.Round(time.Millisecond))
			info(w, "  %d tags, %d static files, %d images resized, %d social cards",
				report.Tags, report.Files, report.Images, report.Cards)
			return nil
		},
	}
	cmd.Flags().BoolVar(&drafts, "drafts", false, "include draft posts")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (overrides output_dir)")
	return cmd
}
