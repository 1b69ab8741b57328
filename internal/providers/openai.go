package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName         = "openai"
	openAIDefaultModel = "gpt-4o-mini"

	openAIDefaultTimeout = 60 * time.Second
)

// OpenAIConfig holds configuration for the OpenAI-compatible generator.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string // Optional: any OpenAI-compatible endpoint
	Timeout    time.Duration
	HTTPClient *http.Client // Optional (tests)
}

// OpenAIGenerator implements Generator through the official OpenAI SDK.
// It serves any OpenAI-compatible chat endpoint via BaseURL. Like the ERNIE
// client it makes a single attempt; SDK-level retries are disabled.
type OpenAIGenerator struct {
	model  string
	client openai.Client
}

// NewOpenAIGenerator creates a new OpenAI-compatible generation client.
func NewOpenAIGenerator(cfg OpenAIConfig) *OpenAIGenerator {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = openAIDefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIGenerator{
		model:  cfg.Model,
		client: openai.NewClient(opts...),
	}
}

// Name returns the provider identifier.
func (g *OpenAIGenerator) Name() string {
	return OpenAIName
}

// GenerateHTML sends the fixed prompt through the chat completions API and
// validates the reply the same way the ERNIE client does.
func (g *OpenAIGenerator) GenerateHTML(ctx context.Context, markdownDoc, title string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(BuildPrompt(markdownDoc)),
		},
		Temperature: openai.Float(0.7),
		TopP:        openai.Float(0.9),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrInvalidResponse)
	}

	html := CleanGeneratedHTML(resp.Choices[0].Message.Content)
	if !strings.HasPrefix(html, DoctypeMarker) {
		return "", fmt.Errorf("%w: document does not start with %s", ErrInvalidResponse, DoctypeMarker)
	}
	return html, nil
}
