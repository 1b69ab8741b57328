package endpoints

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ujwalkandi/docweb/internal/api"
	"github.com/ujwalkandi/docweb/internal/document"
	"github.com/ujwalkandi/docweb/internal/svcctx"
)

// Downloadable artifacts and their fixed filenames.
const (
	ArtifactHTML     = "html"
	ArtifactMarkdown = "markdown"
	ArtifactJSON     = "json"
)

// DownloadEndpoint handles GET /api/documents/{id}/download/{artifact},
// serving index.html, content.md, or data.json for a completed session.
type DownloadEndpoint struct{}

var _ api.Endpoint = (*DownloadEndpoint)(nil)

func (e *DownloadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/documents/{id}/download/{artifact}", e.handler
}

func (e *DownloadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var (
		body        []byte
		contentType string
		filename    string
	)

	switch r.PathValue("artifact") {
	case ArtifactHTML:
		if s.HTML == "" {
			writeError(w, http.StatusNotFound, "no HTML generated yet")
			return
		}
		body, contentType, filename = []byte(s.HTML), "text/html; charset=utf-8", "index.html"

	case ArtifactMarkdown:
		if s.Markdown == "" {
			writeError(w, http.StatusNotFound, "no markdown assembled yet")
			return
		}
		body, contentType, filename = []byte(s.Markdown), "text/markdown; charset=utf-8", "content.md"

	case ArtifactJSON:
		if len(s.Pages) == 0 {
			writeError(w, http.StatusNotFound, "no extracted pages yet")
			return
		}
		data, err := document.MarshalPages(s.Pages)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		body, contentType, filename = data, "application/json; charset=utf-8", "data.json"

	default:
		writeError(w, http.StatusNotFound, "unknown artifact: use html, markdown, or json")
		return
	}

	svcctx.LoggerFrom(r.Context()).Info("serving artifact",
		"session", s.ID, "artifact", filename, "bytes", len(body))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (e *DownloadEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "download <session-id> <html|markdown|json>",
		Short: "Download a generated artifact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			body, _, err := client.GetRaw(cmd.Context(),
				"/api/documents/"+args[0]+"/download/"+args[1])
			if err != nil {
				return err
			}

			var filename string
			switch args[1] {
			case ArtifactHTML:
				filename = "index.html"
			case ArtifactMarkdown:
				filename = "content.md"
			case ArtifactJSON:
				filename = "data.json"
			default:
				return fmt.Errorf("unknown artifact: %s", args[1])
			}

			dest := filepath.Join(outDir, filename)
			if err := os.WriteFile(dest, body, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d bytes)\n", dest, len(body))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}
