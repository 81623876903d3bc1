// Package provider defines the adapter contract for LLM streaming backends.
// Each adapter implementation knows how to build the outbound generation
// request for its API, extract incremental text deltas from decoded stream
// events, and translate provider error payloads into the shared taxonomy.
package provider

import (
	"context"
	"net/http"
)

// Adapter is the capability interface implemented once per backend. The
// session controller selects an adapter up front and never branches on
// provider identity itself.
type Adapter interface {
	// Name returns the canonical provider name (e.g., "openai", "anthropic").
	Name() string

	// ResolveModel translates an internal model id into the provider's wire
	// model id. Unknown ids fall back to the provider's documented default.
	ResolveModel(modelID string) string

	// BuildRequest constructs the outbound streaming generation request.
	// The prompt is wrapped with the provider's fixed reasoning system
	// instruction; streaming is enabled, temperature and max tokens are
	// fixed (see pkg/llm).
	BuildRequest(ctx context.Context, prompt, wireModel, apiKey string) (*http.Request, error)

	// ExtractDelta parses one decoded event payload and returns its
	// incremental text fragment. An empty string with a nil error means the
	// event carried no text (metadata-only); a non-nil error means the
	// payload was malformed and should be logged and skipped, never
	// surfaced.
	ExtractDelta(data string) (string, error)

	// TranslateError converts a non-2xx response into a user-facing error,
	// recognizing the provider's authentication-failure and quota/billing
	// signals. Unrecognized shapes fall back to "API error: <status>".
	TranslateError(statusCode int, body []byte) error
}
