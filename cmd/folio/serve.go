package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

func newServeCmd(c *cli) *cobra.Command {
	var (
		addr   string
		drafts bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site with live reload",
		Long: `Start a development server that renders pages on demand and reloads
posts when files under the content directory change.

Runtime settings come from the environment (or .env):
  FOLIO_ADDR, FOLIO_LOG_LEVEL, FOLIO_CACHE_TTL, FOLIO_PAGE_CACHE_SIZE, FOLIO_WATCH`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			rt, err := folio.LoadRuntime()
			if err != nil {
				return err
			}
			if addr != "" {
				rt.Addr = addr
			}
			if drafts {
				cfg.IncludeDrafts = true
			}

			app := folio.New(cfg, folio.WithLogger(c.logger), folio.WithRuntime(rt))
			defer app.Close()

			info(cmd.OutOrStdout(), "Serving %s on http://localhost%s", cfg.Site.Title, rt.Addr)
			return app.Start(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides FOLIO_ADDR)")
	cmd.Flags().BoolVar(&drafts, "drafts", false, "include draft posts")
	return cmd
}
