package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ujwalkandi/docweb/internal/document"
)

const (
	PPOCRName = "ppocr-v5"

	ppocrDefaultTimeout = 300 * time.Second
)

// PPOCRConfig holds configuration for the PP-OCRv5 client.
type PPOCRConfig struct {
	APIURL      string
	AccessToken string
	Timeout     time.Duration
	HTTPClient  *http.Client // Optional (tests)
}

// PPOCRClient implements Extractor using the PP-OCRv5 text-recognition API.
// Unlike layout parsing it returns recognized text lines only, no markdown
// structure, so pages come back as plain text. Useful as a secondary
// extractor when the layout-parsing service is unavailable.
type PPOCRClient struct {
	apiURL string
	token  string
	client *http.Client
}

// NewPPOCRClient creates a new PP-OCRv5 client.
func NewPPOCRClient(cfg PPOCRConfig) *PPOCRClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = ppocrDefaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &PPOCRClient{
		apiURL: cfg.APIURL,
		token:  cfg.AccessToken,
		client: client,
	}
}

// Name returns the provider identifier.
func (c *PPOCRClient) Name() string {
	return PPOCRName
}

type ppocrRequest struct {
	File                      string `json:"file"`
	FileType                  int    `json:"fileType"`
	UseDocOrientationClassify bool   `json:"useDocOrientationClassify"`
	UseDocUnwarping           bool   `json:"useDocUnwarping"`
	UseTextlineOrientation    bool   `json:"useTextlineOrientation"`
}

type ppocrResponse struct {
	Result struct {
		OCRResults []ppocrPageResult `json:"ocrResults"`
	} `json:"result"`
}

type ppocrPageResult struct {
	PrunedResult struct {
		RecTexts []string `json:"rec_texts"`
	} `json:"prunedResult"`
}

// ExtractPDF sends the PDF to the OCR endpoint and converts recognized text
// lines into page records. Records carry text only; the markdown field stays
// empty so the assembler falls back to the text field.
func (c *PPOCRClient) ExtractPDF(ctx context.Context, pdf []byte) ([]document.Page, error) {
	if c.apiURL == "" || c.token == "" {
		return nil, ErrNotConfigured
	}

	reqBody := ppocrRequest{
		File:     base64.StdEncoding.EncodeToString(pdf),
		FileType: 0,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "token "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr paddleOCRError
		msg := "unknown error"
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.ErrorMsg != "" {
			msg = apiErr.ErrorMsg
		}
		return nil, &APIError{Provider: PPOCRName, Status: resp.StatusCode, Message: msg}
	}

	var parsed ppocrResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := parsed.Result.OCRResults
	if len(results) == 0 {
		return nil, fmt.Errorf("%s: no results from API", PPOCRName)
	}

	pages := make([]document.Page, 0, len(results))
	for i, pr := range results {
		text := strings.Join(pr.PrunedResult.RecTexts, "\n")
		page := document.NewPage(i+1, text)
		page.Markdown = "" // recognition output is plain text, not markdown
		pages = append(pages, page)
	}
	return pages, nil
}
