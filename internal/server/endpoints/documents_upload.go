package endpoints

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ujwalkandi/docweb/internal/api"
	"github.com/ujwalkandi/docweb/internal/ingest"
	"github.com/ujwalkandi/docweb/internal/session"
	"github.com/ujwalkandi/docweb/internal/svcctx"
)

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Session session.Summary `json:"session"`
}

// UploadEndpoint handles POST /api/documents with a multipart PDF upload.
type UploadEndpoint struct{}

var _ api.Endpoint = (*UploadEndpoint)(nil)

func (e *UploadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents", e.handler
}

func (e *UploadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(ingest.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, ingest.MaxUploadBytes+1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	homeDir := svcctx.HomeFrom(r.Context())
	store := svcctx.SessionsFrom(r.Context())
	if homeDir == nil || store == nil {
		writeError(w, http.StatusServiceUnavailable, "server not initialized")
		return
	}

	// Stage under a fresh ID so a failed ingest leaves no session behind.
	stagingID := uuid.New().String()
	res, err := ingest.Stage(homeDir, stagingID, header.Filename, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s := store.Create(res.Filename, res.Path, res.SizeBytes, res.PageCount)

	// Move the staging dir to the real session ID.
	finalDir := homeDir.SessionUploadDir(s.ID)
	if err := os.Rename(homeDir.SessionUploadDir(stagingID), finalDir); err != nil {
		store.Delete(s.ID)
		_ = ingest.Discard(homeDir, stagingID)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to stage upload: %v", err))
		return
	}
	s.PDFPath = filepath.Join(finalDir, res.Filename)
	if err := store.Update(s); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger := svcctx.LoggerFrom(r.Context())
	logger.Info("uploaded PDF", "session", s.ID, "file", s.Filename,
		"bytes", s.SizeBytes, "pdf_pages", s.PDFPages)

	writeJSON(w, http.StatusCreated, UploadResponse{Session: s.Summarize()})
}

func (e *UploadEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file.pdf>",
		Short: "Upload a PDF and create a document session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			client := api.NewClient(getServerURL())
			var resp UploadResponse
			if err := client.PostFile(cmd.Context(), "/api/documents", "file",
				filepath.Base(args[0]), data, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
