package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ujwalkandi/docweb/internal/config"
	"github.com/ujwalkandi/docweb/internal/document"
	"github.com/ujwalkandi/docweb/internal/ingest"
	"github.com/ujwalkandi/docweb/internal/markdown"
	"github.com/ujwalkandi/docweb/internal/render"
)

var (
	renderTitle   string
	renderAuthor  string
	renderDate    string
	renderNoFront bool
	renderOut     string
)

var renderCmd = &cobra.Command{
	Use:   "render <content.md|data.json>",
	Short: "Render a web page offline from markdown or extraction JSON",
	Long: `Render builds an index.html from a previously exported artifact
using the built-in renderer. No server or API credentials are needed.

The input is either a markdown file or a data.json extraction artifact.
JSON input is assembled into a single markdown document first, page
markdown preferred over raw text.

Examples:
  docweb render content.md
  docweb render data.json --title "My Book" -f out.html
  docweb render content.md --author "Jane" --date 2026-08-26`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		data, err := os.ReadFile(input)
		if err != nil {
			return err
		}

		var doc string
		if strings.EqualFold(filepath.Ext(input), ".json") {
			pages, err := document.ParsePages(data)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", input, err)
			}
			doc = markdown.Assemble(pages)
		} else {
			doc = string(data)
		}

		title := renderTitle
		if title == "" {
			title = ingest.TitleFromFilename(filepath.Base(input))
		}

		if !renderNoFront {
			doc = markdown.AddMetadata(doc, markdown.Metadata{
				Title:  title,
				Author: renderAuthor,
				Date:   renderDate,
			})
		}

		theme := render.DefaultTheme()
		if cfgMgr, err := config.NewManager(cfgFile); err == nil {
			theme = cfgMgr.Get().Theme
		}

		html := render.Document(render.Fragment(doc), title, theme)
		if err := os.WriteFile(renderOut, []byte(html), 0644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d bytes)\n", renderOut, len(html))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "Page title (default: input filename)")
	renderCmd.Flags().StringVar(&renderAuthor, "author", "", "Front matter author")
	renderCmd.Flags().StringVar(&renderDate, "date", "", "Front matter date (YYYY-MM-DD)")
	renderCmd.Flags().BoolVar(&renderNoFront, "no-front-matter", false, "Skip the front matter block")
	renderCmd.Flags().StringVarP(&renderOut, "file", "f", "index.html", "Output file path")

	rootCmd.AddCommand(renderCmd)
}
