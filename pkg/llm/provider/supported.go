package provider

import (
	"fmt"

	"github.com/papercomputeco/thoughtstream/pkg/llm/provider/anthropic"
	"github.com/papercomputeco/thoughtstream/pkg/llm/provider/openai"
)

// Supported provider type constants
const (
	OpenAI    = "openai"
	Anthropic = "anthropic"
)

// SupportedProviders returns the list of all supported provider type names.
func SupportedProviders() []string {
	return []string{OpenAI, Anthropic}
}

// New creates a new Adapter instance for the given provider type. An empty
// baseURL selects the provider's production endpoint; a non-empty baseURL
// overrides it (used by tests and self-hosted gateways).
// Returns an error if the provider type is not recognized.
func New(providerType, baseURL string) (Adapter, error) {
	switch providerType {
	case OpenAI:
		return openai.New(baseURL), nil
	case Anthropic:
		return anthropic.New(baseURL), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %q (supported: %v)", providerType, SupportedProviders())
	}
}
