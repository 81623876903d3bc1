// Package anthropic
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/papercomputeco/thoughtstream/pkg/llm"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	messagesPath   = "/v1/messages"

	// apiVersion is the required anthropic-version header value.
	apiVersion = "2023-06-01"

	// defaultModel is the wire model used for internal model ids without a
	// mapping entry.
	defaultModel = "claude-3-sonnet-20240229"

	systemPrompt = "Provide a detailed analysis with your reasoning. Share your thought process as you work through the question."
)

// modelMapping translates internal model ids to Claude wire model ids.
var modelMapping = map[string]string{
	"claude-3-sonnet": "claude-3-sonnet-20240229",
	"claude-3-opus":   "claude-3-opus-20240229",
	"claude-3-haiku":  "claude-3-haiku-20240307",
}

// adapter implements the provider Adapter interface for Anthropic's
// messages API.
type adapter struct {
	baseURL string
}

// New returns an Anthropic adapter. An empty baseURL selects the production
// endpoint.
func New(baseURL string) *adapter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &adapter{baseURL: baseURL}
}

// Name
func (a *adapter) Name() string {
	return "anthropic"
}

func (a *adapter) ResolveModel(modelID string) string {
	if wire, ok := modelMapping[modelID]; ok {
		return wire
	}
	return defaultModel
}

func (a *adapter) BuildRequest(ctx context.Context, prompt, wireModel, apiKey string) (*http.Request, error) {
	body := messagesRequest{
		Model:  wireModel,
		System: systemPrompt,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
		Stream:      true,
		Temperature: llm.Temperature,
		MaxTokens:   llm.MaxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+messagesPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	return req, nil
}

// ExtractDelta pulls the incremental text out of one messages API stream
// event. Events without a text delta (message_start, content_block_start,
// ping, message_stop) yield an empty delta with no error.
func (a *adapter) ExtractDelta(data string) (string, error) {
	var ev streamEvent
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		return "", fmt.Errorf("parsing stream event: %w", err)
	}

	if ev.Delta == nil {
		return "", nil
	}

	return ev.Delta.Text, nil
}

func (a *adapter) TranslateError(statusCode int, body []byte) error {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != nil {
		switch {
		case resp.Error.Type == "authentication_error":
			return &llm.Error{
				Kind:    llm.ErrAuthentication,
				Message: "Authentication failed. Please check your Claude API key.",
			}

		case resp.Error.Type == "rate_limit_error":
			return &llm.Error{
				Kind:    llm.ErrQuotaExceeded,
				Message: "Claude API rate limit exceeded. Please check your plan and billing details.",
			}

		case resp.Error.Message != "":
			return &llm.Error{Message: resp.Error.Message}
		}
	}

	return &llm.Error{Message: fmt.Sprintf("API error: %d", statusCode)}
}
