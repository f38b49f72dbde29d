package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/wagiedev/mcp-apps-go/internal/errors"
)

const (
	providerName    = "openai"
	defaultEndpoint = "https://api.openai.com/v1"
	defaultTimeout  = 60 * time.Second
	maxResponseSize = 8 << 20
)

// Config configures an OpenAI client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// HTTPClient overrides the default client with a 60s timeout.
	HTTPClient *http.Client
}

// OpenAI implements ChatModel against /chat/completions.
type OpenAI struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

var _ ChatModel = (*OpenAI)(nil)

// NewOpenAI creates a client. It fails with ErrAPIKeyMissing when no key is
// set.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w for OpenAI", apperrors.ErrAPIKeyMissing)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultEndpoint
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &OpenAI{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
	}, nil
}

// Model returns the configured model name.
func (p *OpenAI) Model() string {
	return p.model
}

type chatRequest struct {
	Model      string    `json:"model"`
	Messages   []Message `json:"messages"`
	Tools      []Tool    `json:"tools,omitempty"`
	ToolChoice string    `json:"tool_choice,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// Complete implements ChatModel.
func (p *OpenAI) Complete(ctx context.Context, req *Request) (*Completion, error) {
	body := chatRequest{
		Model:    p.model,
		Messages: req.Messages,
		Tools:    req.Tools,
	}

	if len(req.Tools) > 0 {
		body.ToolChoice = "auto"
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &apperrors.ProviderError{
			Provider: providerName,
			Message:  "API request failed",
			Err:      err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(raw, &chatResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &apperrors.ProviderError{
				Provider:   providerName,
				StatusCode: resp.StatusCode,
				Message:    "API returned an error",
			}
		}

		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidResponse, err)
	}

	if chatResp.Error != nil {
		return nil, &apperrors.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    chatResp.Error.Message,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    "API returned an error",
		}
	}

	if len(chatResp.Choices) == 0 {
		return nil, apperrors.ErrInvalidResponse
	}

	choice := chatResp.Choices[0]

	return &Completion{
		Message:      choice.Message,
		FinishReason: choice.FinishReason,
	}, nil
}
