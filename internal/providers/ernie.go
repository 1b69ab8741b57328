package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	ERNIEName = "ernie"

	ernieDefaultTimeout = 60 * time.Second

	// DoctypeMarker is the literal prefix a usable generated document must
	// start with. Anything else falls back to the deterministic renderer.
	DoctypeMarker = "<!DOCTYPE"
)

// ERNIEConfig holds configuration for the ERNIE chat client.
type ERNIEConfig struct {
	APIURL      string
	AccessToken string
	Timeout     time.Duration
	HTTPClient  *http.Client // Optional (tests)
}

// ERNIEClient implements Generator using the ERNIE chat API. It makes
// exactly one attempt per invocation; there is no retry loop or backoff.
type ERNIEClient struct {
	apiURL string
	token  string
	client *http.Client
}

// NewERNIEClient creates a new ERNIE generation client.
func NewERNIEClient(cfg ERNIEConfig) *ERNIEClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = ernieDefaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &ERNIEClient{
		apiURL: cfg.APIURL,
		token:  cfg.AccessToken,
		client: client,
	}
}

// Name returns the provider identifier.
func (c *ERNIEClient) Name() string {
	return ERNIEName
}

type ernieMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ernieRequest struct {
	Messages     []ernieMessage `json:"messages"`
	Temperature  float64        `json:"temperature"`
	TopP         float64        `json:"top_p"`
	PenaltyScore float64        `json:"penalty_score"`
}

// ernieResponse covers both response shapes the service has been observed
// to return: a bare result object and an OpenAI-style choices array.
type ernieResponse struct {
	Result *struct {
		Response string `json:"response"`
	} `json:"result"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	ErrorMsg string `json:"errorMsg"`
}

// GenerateHTML asks the service to style the markdown document into a
// complete HTML page. The reply must begin with the DOCTYPE marker after
// code fences are stripped; otherwise ErrInvalidResponse is returned so the
// caller can fall back.
func (c *ERNIEClient) GenerateHTML(ctx context.Context, markdownDoc, title string) (string, error) {
	if c.apiURL == "" || c.token == "" {
		return "", ErrNotConfigured
	}

	reqBody := ernieRequest{
		Messages: []ernieMessage{
			{Role: "user", Content: BuildPrompt(markdownDoc)},
		},
		Temperature:  0.7,
		TopP:         0.9,
		PenaltyScore: 1.0,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "token "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed ernieResponse
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(respBody))
		if json.Unmarshal(respBody, &parsed) == nil && parsed.ErrorMsg != "" {
			msg = parsed.ErrorMsg
		}
		return "", &APIError{Provider: ERNIEName, Status: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	var content string
	switch {
	case parsed.Result != nil:
		content = parsed.Result.Response
	case len(parsed.Choices) > 0:
		content = parsed.Choices[0].Message.Content
	}

	html := CleanGeneratedHTML(content)
	if !strings.HasPrefix(html, DoctypeMarker) {
		return "", fmt.Errorf("%w: document does not start with %s", ErrInvalidResponse, DoctypeMarker)
	}
	return html, nil
}

// CleanGeneratedHTML strips markdown code fences a model may wrap the
// document in, then trims surrounding whitespace.
func CleanGeneratedHTML(s string) string {
	s = strings.ReplaceAll(s, "```html", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
