package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ujwalkandi/docweb/internal/api"
	"github.com/ujwalkandi/docweb/internal/generate"
	"github.com/ujwalkandi/docweb/internal/ingest"
	"github.com/ujwalkandi/docweb/internal/providers"
	"github.com/ujwalkandi/docweb/internal/render"
	"github.com/ujwalkandi/docweb/internal/session"
	"github.com/ujwalkandi/docweb/internal/svcctx"
)

// HTMLRequest controls the generation step. UseAPI defaults to true; when
// false the generation service is skipped even if configured.
type HTMLRequest struct {
	Title     string `json:"title,omitempty"`
	Generator string `json:"generator,omitempty"`
	UseAPI    *bool  `json:"use_api,omitempty"`
}

// HTMLResponse reports the generation outcome. Reason is set when the
// fallback renderer was used.
type HTMLResponse struct {
	Session session.Summary `json:"session"`
	Source  string          `json:"source"`
	Reason  string          `json:"reason,omitempty"`
}

// HTMLEndpoint handles POST /api/documents/{id}/html: one best-effort call
// to the generation service, with silent fallback to the deterministic
// renderer. This step never fails once a markdown document exists.
type HTMLEndpoint struct{}

var _ api.Endpoint = (*HTMLEndpoint)(nil)

func (e *HTMLEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents/{id}/html", e.handler
}

func (e *HTMLEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	if s.Markdown == "" {
		writeError(w, http.StatusConflict, "no markdown document: run markdown first")
		return
	}

	var req HTMLRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	title := req.Title
	if title == "" {
		title = ingest.TitleFromFilename(s.Filename)
	}

	theme := render.DefaultTheme()
	generatorName := req.Generator
	if mgr := svcctx.ConfigFrom(r.Context()); mgr != nil {
		cfg := mgr.Get()
		theme = cfg.Theme
		if generatorName == "" {
			generatorName = cfg.Defaults.Generator
		}
	}

	// A nil client sends the orchestrator straight to the fallback path.
	var client providers.Generator
	if req.UseAPI == nil || *req.UseAPI {
		if registry := svcctx.RegistryFrom(r.Context()); registry != nil {
			if g, err := registry.GetGenerator(generatorName); err == nil {
				client = g
			}
		}
	}

	gen := generate.New(client, theme, svcctx.LoggerFrom(r.Context()))
	result := gen.Generate(r.Context(), s.Markdown, title)

	s = s.WithHTML(result.HTML, result.Source)
	if err := svcctx.SessionsFrom(r.Context()).Update(s); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	svcctx.LoggerFrom(r.Context()).Info("generated HTML",
		"session", s.ID, "source", result.Source, "bytes", len(result.HTML))

	writeJSON(w, http.StatusOK, HTMLResponse{
		Session: s.Summarize(),
		Source:  result.Source,
		Reason:  result.Reason,
	})
}

func (e *HTMLEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		title     string
		generator string
		noAPI     bool
	)

	cmd := &cobra.Command{
		Use:   "html <session-id>",
		Short: "Generate the styled HTML page for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := HTMLRequest{Title: title, Generator: generator}
			if noAPI {
				f := false
				req.UseAPI = &f
			}

			client := api.NewClient(getServerURL())
			var resp HTMLResponse
			if err := client.Post(cmd.Context(), "/api/documents/"+args[0]+"/html", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "page title (default: filename)")
	cmd.Flags().StringVar(&generator, "generator", "", "generator name (default: configured default)")
	cmd.Flags().BoolVar(&noAPI, "no-api", false, "skip the generation service, render deterministically")
	return cmd
}
