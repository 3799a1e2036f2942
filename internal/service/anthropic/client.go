// Package anthropic generates narrative text with the Claude Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"SignalStories/internal/domain"
)

const (
	ProviderName = "anthropic"
	DefaultModel = "claude-3-haiku-20240307"
	// DefaultMaxTokens bounds every narrative.
	DefaultMaxTokens = 300
)

// Client implements repository.TextGenerator.
type Client struct {
	client    sdk.Client
	apiKey    string
	model     sdk.Model
	maxTokens int64
}

// Config holds the client settings. Empty values fall back to the defaults.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int64
}

// New builds a client on top of httpClient. The SDK retry loop is disabled so
// a failure surfaces once.
func New(httpClient *http.Client, cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &Client{
		client:    sdk.NewClient(opts...),
		apiKey:    cfg.APIKey,
		model:     sdk.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
	}
}

func (c *Client) Name() string { return ProviderName }

func (c *Client) Configured() bool { return c.apiKey != "" }

// Generate sends prompt as a single user message and returns the first text
// block. An empty string means the model returned no text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", &domain.ConfigurationError{Missing: []string{ProviderName}}
	}

	resp, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", toLLMError(err)
	}

	if len(resp.Content) == 0 {
		return "", nil
	}
	return resp.Content[0].Text, nil
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func toLLMError(err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		var env errorEnvelope
		_ = json.Unmarshal([]byte(apiErr.RawJSON()), &env)
		return &domain.LLMError{Message: env.Error.Message, Status: apiErr.StatusCode, Err: err}
	}
	return &domain.LLMError{Message: err.Error(), Err: err}
}
