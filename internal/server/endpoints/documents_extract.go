package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ujwalkandi/docweb/internal/api"
	"github.com/ujwalkandi/docweb/internal/providers"
	"github.com/ujwalkandi/docweb/internal/session"
	"github.com/ujwalkandi/docweb/internal/svcctx"
)

// ExtractRequest selects the extractor. Empty means the configured default.
type ExtractRequest struct {
	Extractor string `json:"extractor,omitempty"`
}

// ExtractResponse reports the extraction outcome.
type ExtractResponse struct {
	Session    session.Summary `json:"session"`
	Extractor  string          `json:"extractor"`
	Pages      int             `json:"pages"`
	Characters int             `json:"characters"`
	PageErrors int             `json:"page_errors"`
}

// ExtractEndpoint handles POST /api/documents/{id}/extract. It runs the
// configured extraction service against the staged PDF. The call blocks for
// up to the provider timeout; on failure the step aborts with a descriptive
// error and the session keeps its previous pages.
type ExtractEndpoint struct{}

var _ api.Endpoint = (*ExtractEndpoint)(nil)

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents/{id}/extract", e.handler
}

func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req ExtractRequest
	if r.Body != nil {
		// Body is optional; ignore decode errors from an empty body.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	registry := svcctx.RegistryFrom(r.Context())
	if registry == nil {
		writeError(w, http.StatusServiceUnavailable, "provider registry not initialized")
		return
	}

	name := req.Extractor
	if name == "" {
		if mgr := svcctx.ConfigFrom(r.Context()); mgr != nil {
			name = mgr.Get().Defaults.Extractor
		}
	}

	extractor, err := registry.GetExtractor(name)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable,
			fmt.Sprintf("extraction service %q not configured: set PADDLEOCR_VL_API_URL and BAIDU_ACCESS_TOKEN", name))
		return
	}

	pdf, err := os.ReadFile(s.PDFPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read staged PDF: %v", err))
		return
	}

	logger := svcctx.LoggerFrom(r.Context())
	logger.Info("extracting PDF", "session", s.ID, "extractor", extractor.Name(), "bytes", len(pdf))

	pages, err := extractor.ExtractPDF(r.Context(), pdf)
	if err != nil {
		if errors.Is(err, providers.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "extraction service not configured")
			return
		}
		// No partial pages on a failed call.
		writeError(w, http.StatusBadGateway, fmt.Sprintf("extraction failed: %v", err))
		return
	}

	s = s.WithPages(pages)
	store := svcctx.SessionsFrom(r.Context())
	if err := store.Update(s); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := ExtractResponse{
		Session:   s.Summarize(),
		Extractor: extractor.Name(),
		Pages:     len(pages),
	}
	for _, p := range pages {
		resp.Characters += p.CharCount
		if p.Error != "" {
			resp.PageErrors++
		}
	}

	logger.Info("extraction complete", "session", s.ID,
		"pages", resp.Pages, "characters", resp.Characters, "page_errors", resp.PageErrors)

	writeJSON(w, http.StatusOK, resp)
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	var extractor string

	cmd := &cobra.Command{
		Use:   "extract <session-id>",
		Short: "Extract text from a session's PDF via the OCR service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ExtractResponse
			err := client.Post(cmd.Context(), "/api/documents/"+args[0]+"/extract",
				ExtractRequest{Extractor: extractor}, &resp)
			if err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&extractor, "extractor", "", "extractor name (default: configured default)")
	return cmd
}
