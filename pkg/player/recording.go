// Package player replays a recorded thought-node sequence against a virtual
// clock, for timeline scrubbing and animated playback.
package player

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/papercomputeco/thoughtstream/pkg/thought"
)

// Recording is a completed session's emitted node sequence plus the prompt
// and model that produced it, persisted as JSON for later playback.
type Recording struct {
	Prompt     string         `json:"prompt"`
	ModelID    string         `json:"model_id"`
	Provider   string         `json:"provider"`
	RecordedAt time.Time      `json:"recorded_at"`
	Nodes      []thought.Node `json:"nodes"`
}

// Save writes the recording to path as indented JSON.
func (r *Recording) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding recording: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing recording: %w", err)
	}

	return nil
}

// Load reads a recording from path.
func Load(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recording: %w", err)
	}

	rec := &Recording{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("parsing recording: %w", err)
	}

	return rec, nil
}
