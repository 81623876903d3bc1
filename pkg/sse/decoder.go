package sse

import "strings"

// Decoder reassembles complete lines from text fragments that arrive at
// arbitrary boundaries, with no alignment to logical lines guaranteed.
//
// It maintains exactly one pending-partial-line buffer: each fragment is
// appended, the accumulated text is split on line feeds, and every element
// except the last is yielded — the last becomes the new buffer since it may
// still be incomplete. Decoding is therefore invariant to how the stream is
// chunked.
type Decoder struct {
	buf string
}

// NewDecoder returns a Decoder with an empty pending buffer.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends a raw fragment and returns the complete lines it unlocked,
// in stream order. A fragment that completes no line returns nil.
func (d *Decoder) Feed(fragment string) []string {
	d.buf += fragment

	lines := strings.Split(d.buf, "\n")
	d.buf = lines[len(lines)-1]

	return lines[:len(lines)-1]
}

// Flush terminates decoding. Any pending partial line is dropped as a
// malformed trailer rather than surfaced as a complete line — an incomplete
// residue at stream end is a tolerated edge condition, not an error. The
// returned sequence is always empty; flushing an already-drained decoder is
// a no-op.
func (d *Decoder) Flush() []string {
	d.buf = ""
	return nil
}

// Pending returns the current partial-line residue. Useful for diagnostics
// only; the residue is never yielded as a line.
func (d *Decoder) Pending() string {
	return d.buf
}
