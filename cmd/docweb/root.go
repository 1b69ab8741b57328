package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ujwalkandi/docweb/internal/api"
	"github.com/ujwalkandi/docweb/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "docweb",
	Short: "Turn scanned PDFs into clean web pages with OCR and LLM generation",
	Long: `DocWeb converts PDF documents into styled web pages.

The pipeline includes:
  - Layout-aware OCR extraction via PaddleOCR-VL
  - Markdown assembly with optional front matter
  - LLM-generated HTML via ERNIE, with a built-in fallback renderer
  - Downloadable artifacts (index.html, content.md, data.json)`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.docweb/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "docweb home directory (default: ~/.docweb)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Load .env and set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
