// Package thought provides the thought-node data model and the incremental
// classifier that compiles a streamed text response into a directed graph of
// discrete reasoning steps.
package thought

import "time"

// Category is the closed set of semantic node kinds.
type Category string

const (
	CategoryInput      Category = "input"
	CategoryProcessing Category = "processing"
	CategoryDecision   Category = "decision"
	CategoryOutput     Category = "output"
)

// Node is a single classified thought emitted during a streaming session.
//
// Connections may name node ids that have not been emitted yet. The sink is
// expected to hold such edges as pending and resolve them when the target id
// arrives (see pkg/graph).
type Node struct {
	// ID is unique within a session, formatted <category-prefix>-<counter>.
	ID string `json:"id"`

	// Text is the trimmed, non-empty delta attributed to this node.
	Text string `json:"text"`

	Category Category `json:"category"`

	// Connections is the ordered list of node ids this node points to.
	Connections []string `json:"connections"`

	// X, Y are layout coordinates assigned once at creation.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// CreatedAt is the emission timestamp. Values are non-decreasing in
	// emission order and are only used for timeline ordering.
	CreatedAt time.Time `json:"created_at"`
}
