package player

import (
	"time"

	"github.com/papercomputeco/thoughtstream/pkg/thought"
)

// Player replays a node sequence on a virtual clock. The clock only moves
// when the caller advances it, so playback speed and frame rate are owned
// by the caller (the TUI ticks it, tests advance it directly).
//
// Nodes are assumed to be in emission order with non-decreasing CreatedAt
// timestamps, which every completed session guarantees.
type Player struct {
	nodes   []thought.Node
	current time.Time
	playing bool
}

// New returns a Player positioned at the start of the sequence.
func New(nodes []thought.Node) *Player {
	p := &Player{nodes: nodes}
	p.current = p.Start()
	return p
}

// Start returns the timestamp of the first node, or the zero time for an
// empty sequence.
func (p *Player) Start() time.Time {
	if len(p.nodes) == 0 {
		return time.Time{}
	}
	return p.nodes[0].CreatedAt
}

// End returns the timestamp of the last node, or the zero time for an
// empty sequence.
func (p *Player) End() time.Time {
	if len(p.nodes) == 0 {
		return time.Time{}
	}
	return p.nodes[len(p.nodes)-1].CreatedAt
}

// Now returns the current virtual-clock position.
func (p *Player) Now() time.Time {
	return p.current
}

// Playing reports whether the player is in the playing state.
func (p *Player) Playing() bool {
	return p.playing
}

// Toggle flips play/pause. Playing from the end restarts from the
// beginning.
func (p *Player) Toggle() {
	if !p.playing && !p.current.Before(p.End()) {
		p.current = p.Start()
	}
	p.playing = !p.playing
}

// Advance moves the virtual clock forward by d while playing, clamped at
// the end of the sequence. Reaching the end pauses playback.
func (p *Player) Advance(d time.Duration) {
	if !p.playing {
		return
	}

	p.current = p.current.Add(d)
	if !p.current.Before(p.End()) {
		p.current = p.End()
		p.playing = false
	}
}

// Seek moves the virtual clock to t, clamped to the sequence bounds.
func (p *Player) Seek(t time.Time) {
	if t.Before(p.Start()) {
		t = p.Start()
	}
	if t.After(p.End()) {
		t = p.End()
	}
	p.current = t
}

// Reset pauses playback and rewinds to the start.
func (p *Player) Reset() {
	p.playing = false
	p.current = p.Start()
}

// Visible returns the prefix of nodes whose timestamps are at or before the
// current virtual-clock position.
func (p *Player) Visible() []thought.Node {
	count := 0
	for _, node := range p.nodes {
		if node.CreatedAt.After(p.current) {
			break
		}
		count++
	}
	return p.nodes[:count]
}

// Progress returns playback position as a fraction in [0, 1]. A sequence
// spanning zero duration reports 1.
func (p *Player) Progress() float64 {
	total := p.End().Sub(p.Start())
	if total <= 0 {
		return 1
	}
	return float64(p.current.Sub(p.Start())) / float64(total)
}

// Len returns the total number of nodes in the sequence.
func (p *Player) Len() int {
	return len(p.nodes)
}
