package config

const (
	defaultModel = "gpt-4-mini"

	defaultPlaySpeed = 1.0
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values. Provider base
// URLs default to empty, which selects each adapter's production endpoint.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Stream: StreamConfig{
			Model: defaultModel,
		},
		Play: PlayConfig{
			Speed: defaultPlaySpeed,
		},
	}
}
