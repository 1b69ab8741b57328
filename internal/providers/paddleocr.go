package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/ujwalkandi/docweb/internal/document"
)

const (
	PaddleOCRName = "paddleocr-vl"

	// Layout parsing is slow on long documents; the service itself allows
	// several minutes per request.
	paddleOCRDefaultTimeout = 300 * time.Second

	paddleOCRAttempts   = 2
	paddleOCRRetryDelay = 2 * time.Second
)

// PaddleOCRConfig holds configuration for the PaddleOCR-VL client.
type PaddleOCRConfig struct {
	APIURL      string
	AccessToken string
	Timeout     time.Duration
	HTTPClient  *http.Client // Optional (tests)
}

// PaddleOCRClient implements Extractor using the PaddleOCR-VL
// layout-parsing API. The service accepts a base64 PDF and returns one
// layout-parsing result per page, each carrying markdown text.
type PaddleOCRClient struct {
	apiURL string
	token  string
	client *http.Client
}

// NewPaddleOCRClient creates a new PaddleOCR-VL client.
func NewPaddleOCRClient(cfg PaddleOCRConfig) *PaddleOCRClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = paddleOCRDefaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &PaddleOCRClient{
		apiURL: cfg.APIURL,
		token:  cfg.AccessToken,
		client: client,
	}
}

// Name returns the provider identifier.
func (c *PaddleOCRClient) Name() string {
	return PaddleOCRName
}

// paddleOCRRequest is the layout-parsing request payload.
type paddleOCRRequest struct {
	File                      string `json:"file"`
	FileType                  int    `json:"fileType"` // 0 = PDF, 1 = image
	UseDocOrientationClassify bool   `json:"useDocOrientationClassify"`
	UseDocUnwarping           bool   `json:"useDocUnwarping"`
	UseChartRecognition       bool   `json:"useChartRecognition"`
}

type paddleOCRResponse struct {
	Result struct {
		// Raw messages so one malformed page record degrades to a per-page
		// error instead of failing the whole extraction.
		LayoutParsingResults []json.RawMessage `json:"layoutParsingResults"`
	} `json:"result"`
}

type paddleOCRPageResult struct {
	Markdown struct {
		Text   string                     `json:"text"`
		Images map[string]json.RawMessage `json:"images"`
	} `json:"markdown"`
}

type paddleOCRError struct {
	ErrorMsg string `json:"errorMsg"`
}

// ExtractPDF sends the PDF to the layout-parsing endpoint and converts the
// per-page results into page records. The call blocks for up to the
// configured timeout; on transport failure no partial pages are returned.
func (c *PaddleOCRClient) ExtractPDF(ctx context.Context, pdf []byte) ([]document.Page, error) {
	if c.apiURL == "" || c.token == "" {
		return nil, ErrNotConfigured
	}

	reqBody := paddleOCRRequest{
		File:                      base64.StdEncoding.EncodeToString(pdf),
		FileType:                  0,
		UseDocOrientationClassify: true,
		UseDocUnwarping:           true,
		UseChartRecognition:       true,
	}

	resp, err := c.doRequest(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	results := resp.Result.LayoutParsingResults
	if len(results) == 0 {
		return nil, fmt.Errorf("%s: no results from API", PaddleOCRName)
	}

	pages := make([]document.Page, 0, len(results))
	for i, raw := range results {
		var pr paddleOCRPageResult
		if err := json.Unmarshal(raw, &pr); err != nil {
			pages = append(pages, document.ErrorPage(i+1, fmt.Sprintf("failed to parse page result: %v", err)))
			continue
		}
		page := document.NewPage(i+1, pr.Markdown.Text)
		page.MarkdownImages = len(pr.Markdown.Images)
		pages = append(pages, page)
	}
	return pages, nil
}

// doRequest posts the payload, retrying once on connection-level failures.
// HTTP-level errors are not retried; the caller surfaces them as-is.
func (c *PaddleOCRClient) doRequest(ctx context.Context, body paddleOCRRequest) (*paddleOCRResponse, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return retry.DoWithData(
		func() (*paddleOCRResponse, error) {
			return c.post(ctx, bodyBytes)
		},
		retry.Context(ctx),
		retry.Attempts(paddleOCRAttempts),
		retry.Delay(paddleOCRRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var apiErr *APIError
			return !errors.As(err, &apiErr)
		}),
	)
}

func (c *PaddleOCRClient) post(ctx context.Context, body []byte) (*paddleOCRResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
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
		return nil, &APIError{Provider: PaddleOCRName, Status: resp.StatusCode, Message: msg}
	}

	var parsed paddleOCRResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &parsed, nil
}
