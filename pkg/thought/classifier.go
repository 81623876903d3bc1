package thought

import (
	"fmt"
	"strings"
	"time"
)

const (
	// bootstrapText is the placeholder text of the synthetic input node.
	bootstrapText = "Processing request..."

	// finalText is the placeholder text of the synthetic terminal output
	// node appended when a stream produced no output node of its own.
	finalText = "Completed processing"

	originX = 50
	originY = 50

	stepX     = 150
	stepYDown = 70
	stepYUp   = 30
)

// decisionKeywords and outputKeywords drive the heuristic classification.
// Matching is a case-insensitive substring check, evaluated decision-first.
var (
	decisionKeywords = []string{"if", "consider", "decide"}
	outputKeywords   = []string{"result", "conclusion", "therefore"}
)

// Classifier is the incremental stream-to-graph compiler state for one
// session. It assigns each text delta a category, a stable id, forward
// connections, and a layout position.
//
// A Classifier is owned exclusively by its session and is not safe for
// concurrent use. Concurrent sessions each get their own Classifier.
type Classifier struct {
	processingID int
	decisionID   int
	outputID     int

	// thoughtID counts every non-input node and only alternates the
	// vertical layout direction.
	thoughtID int

	lastX float64
	lastY float64

	// Clock supplies node timestamps. Overridable in tests.
	Clock func() time.Time
}

// NewClassifier returns a Classifier with all counters at their session
// start values and the layout cursor at the origin.
func NewClassifier() *Classifier {
	return &Classifier{
		processingID: 1,
		decisionID:   1,
		outputID:     1,
		thoughtID:    1,
		lastX:        originX,
		lastY:        originY,
		Clock:        time.Now,
	}
}

// Bootstrap synthesizes the initial input node. It is emitted once, before
// any delta is processed, and is the only node of category input.
func (c *Classifier) Bootstrap() Node {
	return Node{
		ID:          "input-1",
		Text:        bootstrapText,
		Category:    CategoryInput,
		Connections: []string{fmt.Sprintf("proc-%d", c.processingID)},
		X:           originX,
		Y:           originY,
		CreatedAt:   c.Clock(),
	}
}

// Classify turns one text delta into a node. It returns false when the delta
// is empty after trimming, in which case no node is produced and no state
// advances.
//
// Classification priority: decision keywords win over output keywords, and
// everything else is processing. Connections may point forward to ids that
// do not exist yet; a processing node whose ordinal is divisible by three
// instead points at the current decision counter, which may name a decision
// node that is never created. Both behaviors are part of the sink contract
// (see pkg/graph).
func (c *Classifier) Classify(delta string) (Node, bool) {
	text := strings.TrimSpace(delta)
	if text == "" {
		return Node{}, false
	}

	lower := strings.ToLower(text)

	var (
		category    Category
		id          string
		connections []string
	)

	switch {
	case containsAny(lower, decisionKeywords):
		category = CategoryDecision
		id = fmt.Sprintf("dec-%d", c.decisionID)
		connections = []string{fmt.Sprintf("proc-%d", c.processingID+1)}
		c.decisionID++

	case containsAny(lower, outputKeywords):
		category = CategoryOutput
		id = fmt.Sprintf("output-%d", c.outputID)
		connections = []string{}
		c.outputID++

	default:
		category = CategoryProcessing
		id = fmt.Sprintf("proc-%d", c.processingID)
		if c.processingID%3 == 0 {
			connections = []string{fmt.Sprintf("dec-%d", c.decisionID)}
		} else {
			connections = []string{fmt.Sprintf("proc-%d", c.processingID+1)}
		}
		c.processingID++
	}

	// Horizontal position advances every step; vertical position zigzags
	// by the parity of the non-input emission ordinal.
	c.lastX += stepX
	if c.thoughtID%2 == 0 {
		c.lastY += stepYDown
	} else {
		c.lastY -= stepYUp
	}
	c.thoughtID++

	return Node{
		ID:          id,
		Text:        text,
		Category:    category,
		Connections: connections,
		X:           c.lastX,
		Y:           c.lastY,
		CreatedAt:   c.Clock(),
	}, true
}

// Finalize synthesizes the terminal output node when the stream completed
// without producing any output node. Returns false when an output node was
// already emitted, guaranteeing every completed session ends with at least
// one output node either way.
func (c *Classifier) Finalize() (Node, bool) {
	if c.outputID > 1 {
		return Node{}, false
	}

	node := Node{
		ID:          fmt.Sprintf("output-%d", c.outputID),
		Text:        finalText,
		Category:    CategoryOutput,
		Connections: []string{},
		X:           c.lastX + stepX,
		Y:           c.lastY,
		CreatedAt:   c.Clock(),
	}
	c.outputID++

	return node, true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
