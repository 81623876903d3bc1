package llm

// Generation parameters fixed for every thought-streaming request,
// regardless of provider. The values mirror what the visualizer was tuned
// against; they are not user configuration.
const (
	// Temperature applied to every generation request.
	Temperature = 0.7

	// MaxTokens caps the response length per generation request.
	MaxTokens = 1000
)
