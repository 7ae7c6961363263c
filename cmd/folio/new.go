package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	ProjectName string
	SiteName    string
	Date        string
	Year        int
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new folio site",
		Long: `Create a new site directory with a folio.yaml, a first post and an
empty static directory.

Examples:
  folio new myblog`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd.OutOrStdout(), args[0], time.Now())
		},
	}
}

func runNew(w io.Writer, name string, now time.Time) error {
	dirName := filepath.Base(filepath.Clean(name))
	if dirName == "." || dirName == string(filepath.Separator) {
		return fmt.Errorf("invalid project name %q", name)
	}
	target := filepath.Join(filepath.Dir(filepath.Clean(name)), dirName)

	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("directory %q already exists", target)
	}

	data := scaffoldData{
		ProjectName: dirName,
		SiteName:    toTitle(dirName),
		Date:        now.Format("2006-01-02"),
		Year:        now.Year(),
	}

	info(w, "Creating new folio site: %s\n", dirName)

	root := "templates"
	err := fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := strings.TrimSuffix(filepath.Join(target, relPath), ".tmpl")
		switch filepath.Base(outPath) {
		case "dotenv":
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		case "gitignore":
			outPath = filepath.Join(filepath.Dir(outPath), ".gitignore")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		raw, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if !strings.HasSuffix(path, ".tmpl") {
			return writeScaffoldFile(w, outPath, raw)
		}

		tmpl, err := template.New(filepath.Base(path)).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}
		var sb strings.Builder
		if err := tmpl.Execute(&sb, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		return writeScaffoldFile(w, outPath, []byte(sb.String()))
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	success(w, "Done! Next steps:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  cd %s\n", target)
	fmt.Fprintln(w, "  folio serve")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Set site.url in folio.yaml before running 'folio build'.")
	return nil
}

func writeScaffoldFile(w io.Writer, outPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	fmt.Fprintf(w, "  created %s\n", outPath)
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
