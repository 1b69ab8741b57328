package main

import (
	"github.com/spf13/cobra"

	"github.com/ujwalkandi/docweb/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running DocWeb server via HTTP.

These commands require a running server (docweb serve).
Use --server to specify a custom server URL.

Examples:
  docweb api health                      # Check server health
  docweb api documents upload book.pdf   # Upload a PDF
  docweb api documents list              # List uploaded documents`,
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Document pipeline commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	// Health endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))

	// Documents as subcommand group
	documentsCmd.AddCommand((&endpoints.UploadEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.ListDocumentsEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.GetDocumentEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.DeleteDocumentEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.ExtractEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.MarkdownEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.HTMLEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.DownloadEndpoint{}).Command(getServerURL))

	apiCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(apiCmd)
}
