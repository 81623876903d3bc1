package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent thoughtstream configuration stored as
// config.toml in the .thoughtstream/ directory. The TOML layout uses
// sections for logical grouping.
type Config struct {
	Version  int            `toml:"version"`
	Stream   StreamConfig   `toml:"stream"`
	Provider ProviderConfig `toml:"provider"`
	Play     PlayConfig     `toml:"play"`
}

// StreamConfig holds generation session settings.
type StreamConfig struct {
	// Model is the default internal model id for new sessions.
	Model string `toml:"model,omitempty"`

	// Provider overrides the provider derived from the model catalog.
	Provider string `toml:"provider,omitempty"`
}

// ProviderConfig holds per-provider endpoint overrides. Empty values select
// each adapter's production endpoint.
type ProviderConfig struct {
	OpenAIBaseURL    string `toml:"openai_base_url,omitempty"`
	AnthropicBaseURL string `toml:"anthropic_base_url,omitempty"`
}

// PlayConfig holds timeline playback settings.
type PlayConfig struct {
	// Speed is the default playback speed multiplier.
	Speed float64 `toml:"speed,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"stream.model": {
		get: func(c *Config) string { return c.Stream.Model },
		set: func(c *Config, v string) error { c.Stream.Model = v; return nil },
	},
	"stream.provider": {
		get: func(c *Config) string { return c.Stream.Provider },
		set: func(c *Config, v string) error { c.Stream.Provider = v; return nil },
	},
	"provider.openai_base_url": {
		get: func(c *Config) string { return c.Provider.OpenAIBaseURL },
		set: func(c *Config, v string) error { c.Provider.OpenAIBaseURL = v; return nil },
	},
	"provider.anthropic_base_url": {
		get: func(c *Config) string { return c.Provider.AnthropicBaseURL },
		set: func(c *Config, v string) error { c.Provider.AnthropicBaseURL = v; return nil },
	},
	"play.speed": {
		get: func(c *Config) string {
			return strconv.FormatFloat(c.Play.Speed, 'f', -1, 64)
		},
		set: func(c *Config, v string) error {
			speed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid speed %q: %w", v, err)
			}
			if speed <= 0 {
				return fmt.Errorf("speed must be positive, got %v", speed)
			}
			c.Play.Speed = speed
			return nil
		},
	},
}
