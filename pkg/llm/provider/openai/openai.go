// Package openai
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/papercomputeco/thoughtstream/pkg/llm"
)

const (
	defaultBaseURL  = "https://api.openai.com"
	completionsPath = "/v1/chat/completions"

	// defaultModel is the wire model used for internal model ids without a
	// mapping entry.
	defaultModel = "gpt-4o-mini"

	systemPrompt = "You are an AI assistant that thinks step by step and shows your reasoning process. Break down your thoughts clearly."
)

// modelMapping translates internal model ids to OpenAI wire model ids.
// Non-OpenAI ids route here when their native backend is unavailable.
var modelMapping = map[string]string{
	"gpt-4-mini": "gpt-4o-mini",
	"gpt-4":      "gpt-4o",
	"claude-3":   "gpt-4o",
	"llama-3":    "gpt-4o-mini",
	"gemini-pro": "gpt-4o",
}

// adapter implements the provider Adapter interface for the OpenAI chat
// completions API.
type adapter struct {
	baseURL string
}

// New returns an OpenAI adapter. An empty baseURL selects the production
// endpoint.
func New(baseURL string) *adapter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &adapter{baseURL: baseURL}
}

// Name
func (a *adapter) Name() string {
	return "openai"
}

func (a *adapter) ResolveModel(modelID string) string {
	if wire, ok := modelMapping[modelID]; ok {
		return wire
	}
	return defaultModel
}

func (a *adapter) BuildRequest(ctx context.Context, prompt, wireModel, apiKey string) (*http.Request, error) {
	body := chatRequest{
		Model: wireModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
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

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	return req, nil
}

// ExtractDelta pulls the incremental text out of one chat completion chunk.
// Chunks without content (role-only deltas, finish notifications) yield an
// empty delta with no error.
func (a *adapter) ExtractDelta(data string) (string, error) {
	var chunk streamChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return "", fmt.Errorf("parsing stream chunk: %w", err)
	}

	if len(chunk.Choices) == 0 {
		return "", nil
	}

	return chunk.Choices[0].Delta.Content, nil
}

func (a *adapter) TranslateError(statusCode int, body []byte) error {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != nil {
		switch {
		case resp.Error.Code == "insufficient_quota" ||
			resp.Error.Type == "insufficient_quota" ||
			strings.Contains(string(body), "exceeded your current quota"):
			return &llm.Error{
				Kind:    llm.ErrQuotaExceeded,
				Message: "OpenAI API quota exceeded. Please check your billing details or upgrade your OpenAI plan.",
			}

		case resp.Error.Code == "invalid_api_key" || statusCode == http.StatusUnauthorized:
			return &llm.Error{
				Kind:    llm.ErrAuthentication,
				Message: "Authentication failed. Please check your OpenAI API key.",
			}

		case resp.Error.Message != "":
			return &llm.Error{Message: resp.Error.Message}
		}
	}

	return &llm.Error{Message: fmt.Sprintf("API error: %d", statusCode)}
}
