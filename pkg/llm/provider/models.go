package provider

// ModelInfo identifies a selectable model and the adapter that serves it.
// Resolution happens once, before a session starts.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Provider    string `json:"provider"`
}

// predefinedModels is the built-in model catalog. Models without a native
// backend (e.g. gemini-pro) fall back to the OpenAI adapter.
var predefinedModels = []ModelInfo{
	{
		ID:          "gpt-4-mini",
		Name:        "GPT-4 Mini",
		Description: "Smaller version of GPT-4 with faster inference",
		Type:        "language",
		Provider:    OpenAI,
	},
	{
		ID:          "gpt-4",
		Name:        "GPT-4o",
		Description: "Advanced model with reasoning capabilities",
		Type:        "language",
		Provider:    OpenAI,
	},
	{
		ID:          "claude-3-sonnet",
		Name:        "Claude 3 Sonnet",
		Description: "Anthropic's balanced model for various tasks",
		Type:        "language",
		Provider:    Anthropic,
	},
	{
		ID:          "claude-3-opus",
		Name:        "Claude 3 Opus",
		Description: "Anthropic's most capable model for complex tasks",
		Type:        "language",
		Provider:    Anthropic,
	},
	{
		ID:          "claude-3-haiku",
		Name:        "Claude 3 Haiku",
		Description: "Anthropic's fastest model for quick responses",
		Type:        "language",
		Provider:    Anthropic,
	},
	{
		ID:          "gemini-pro",
		Name:        "Gemini Pro",
		Description: "Multimodal model by Google",
		Type:        "multimodal",
		Provider:    OpenAI,
	},
}

// PredefinedModels returns the built-in model catalog.
func PredefinedModels() []ModelInfo {
	models := make([]ModelInfo, len(predefinedModels))
	copy(models, predefinedModels)
	return models
}

// ForModel looks up a model id in the catalog. Unknown ids resolve to the
// OpenAI provider with the id passed through, so custom model ids still
// route; each adapter maps unknown ids to its documented default wire model.
func ForModel(modelID string) ModelInfo {
	for _, m := range predefinedModels {
		if m.ID == modelID {
			return m
		}
	}
	return ModelInfo{
		ID:       modelID,
		Name:     modelID,
		Type:     "language",
		Provider: OpenAI,
	}
}
