package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/eringen/folio/content"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		tag    string
		drafts bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List posts",
		Long: `List posts newest first with their date, slug, tags and reading time.

Examples:
  folio list                   # All published posts
  folio list --tag go          # Posts tagged "go"
  folio list --drafts          # Include drafts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			posts, err := content.Load(cfg.ContentDir, content.LoadOptions{IncludeDrafts: drafts || cfg.IncludeDrafts})
			if err != nil {
				return err
			}
			if tag != "" {
				posts = content.FilterByTag(posts, tag)
			}
			w := cmd.OutOrStdout()
			if len(posts) == 0 {
				info(w, "No posts found.")
				return nil
			}
			header(w, "Posts")
			renderPosts(w, posts)
			info(w, "\n%d posts", len(posts))
			return nil
		},
	}
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only posts with this tag")
	cmd.Flags().BoolVar(&drafts, "drafts", false, "include draft posts")
	return cmd
}

func renderPosts(w io.Writer, posts []content.Post) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header([]string{"Date", "Slug", "Title", "Tags", "Min"})

	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		title := p.Title
		if p.Draft {
			title = color.YellowString("[draft] ") + title
		}
		rows = append(rows, []string{
			p.DateString(),
			p.Slug,
			title,
			strings.Join(p.Tags, ", "),
			strconv.Itoa(p.ReadingTime),
		})
	}
	_ = table.Bulk(rows)
	_ = table.Render()
}
