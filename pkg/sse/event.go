// Package sse provides a minimal, purpose-built decoder for the
// newline-delimited "data: "-framed event streams returned by LLM provider
// APIs. It reassembles complete lines from raw fragments that arrive at
// arbitrary read boundaries and lifts the meaningful lines into events.
//
// This package intentionally does NOT provide SSE writer or server
// capabilities, nor full spec coverage (event:/id:/retry: fields); provider
// streaming responses only ever use data lines and the done sentinel.
//
// See the SSE specification:
// https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

import "strings"

const (
	// dataPrefix marks the protocol's meaningful event lines.
	dataPrefix = "data: "

	// doneSentinel is the payload of the line that closes the logical
	// event stream without itself carrying data.
	doneSentinel = "[DONE]"
)

// Event represents a single decoded data line from the stream.
type Event struct {
	// Data is the line payload with the "data: " prefix stripped.
	Data string
}

// Done reports whether this event is the stream-end sentinel. A done event
// closes the logical stream and must not be treated as a data event.
func (e Event) Done() bool {
	return e.Data == doneSentinel
}

// ParseLine lifts one complete line into an Event. It returns false for
// lines that do not carry the data prefix (blank lines, comments, unknown
// fields), which callers skip.
func ParseLine(line string) (Event, bool) {
	if !strings.HasPrefix(line, dataPrefix) {
		return Event{}, false
	}
	return Event{Data: strings.TrimPrefix(line, dataPrefix)}, true
}
