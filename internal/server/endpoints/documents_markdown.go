package endpoints

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ujwalkandi/docweb/internal/api"
	"github.com/ujwalkandi/docweb/internal/ingest"
	"github.com/ujwalkandi/docweb/internal/markdown"
	"github.com/ujwalkandi/docweb/internal/session"
	"github.com/ujwalkandi/docweb/internal/svcctx"
)

// DefaultAuthor is written into front matter when none is provided.
const DefaultAuthor = "DocWeb"

// MarkdownRequest carries the front-matter fields. Empty fields get the
// historical defaults (filename stem, "DocWeb", today) unless FrontMatter
// is false, in which case no metadata block is emitted at all.
type MarkdownRequest struct {
	Title       string `json:"title,omitempty"`
	Author      string `json:"author,omitempty"`
	Date        string `json:"date,omitempty"`
	FrontMatter *bool  `json:"front_matter,omitempty"`
}

// MarkdownResponse reports the assembled document.
type MarkdownResponse struct {
	Session  session.Summary `json:"session"`
	Markdown string          `json:"markdown"`
}

// MarkdownEndpoint handles POST /api/documents/{id}/markdown: it assembles
// the extracted pages into one document and prepends front matter.
type MarkdownEndpoint struct{}

var _ api.Endpoint = (*MarkdownEndpoint)(nil)

func (e *MarkdownEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents/{id}/markdown", e.handler
}

func (e *MarkdownEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	if len(s.Pages) == 0 {
		writeError(w, http.StatusConflict, "no extracted pages: run extract first")
		return
	}

	var req MarkdownRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	doc := markdown.Assemble(s.Pages)

	if req.FrontMatter == nil || *req.FrontMatter {
		meta := markdown.Metadata{
			Title:  req.Title,
			Author: req.Author,
			Date:   req.Date,
		}
		if meta.Title == "" {
			meta.Title = ingest.TitleFromFilename(s.Filename)
		}
		if meta.Author == "" {
			meta.Author = DefaultAuthor
		}
		if meta.Date == "" {
			meta.Date = time.Now().UTC().Format("2006-01-02")
		}
		doc = markdown.AddMetadata(doc, meta)
	}

	s = s.WithMarkdown(doc)
	if err := svcctx.SessionsFrom(r.Context()).Update(s); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	svcctx.LoggerFrom(r.Context()).Info("assembled markdown",
		"session", s.ID, "bytes", len(doc))

	writeJSON(w, http.StatusOK, MarkdownResponse{Session: s.Summarize(), Markdown: doc})
}

func (e *MarkdownEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		title         string
		author        string
		date          string
		noFrontMatter bool
	)

	cmd := &cobra.Command{
		Use:   "markdown <session-id>",
		Short: "Assemble extracted pages into a markdown document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := MarkdownRequest{Title: title, Author: author, Date: date}
			if noFrontMatter {
				f := false
				req.FrontMatter = &f
			}

			client := api.NewClient(getServerURL())
			var resp MarkdownResponse
			if err := client.Post(cmd.Context(), "/api/documents/"+args[0]+"/markdown", req, &resp); err != nil {
				return err
			}
			return api.Output(resp.Session)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "front-matter title (default: filename)")
	cmd.Flags().StringVar(&author, "author", "", "front-matter author")
	cmd.Flags().StringVar(&date, "date", "", "front-matter date (default: today)")
	cmd.Flags().BoolVar(&noFrontMatter, "no-front-matter", false, "skip the metadata block")
	return cmd
}
