// Package graph assembles emitted thought nodes into a directed graph on
// the sink side of a streaming session.
//
// The classifier deliberately emits nodes whose connections name ids that
// have not been produced yet — a consequence of low-latency emission with
// no look-ahead buffering. The graph therefore keeps a pending-edge list
// keyed by the unresolved target id and resolves entries opportunistically
// as matching ids arrive. Edges whose target never arrives (the known
// dangling decision back-reference case) stay pending and are reported by
// Unresolved.
package graph

import "github.com/papercomputeco/thoughtstream/pkg/thought"

// Edge is a directed connection between two nodes, by id.
type Edge struct {
	From string
	To   string
}

// Graph accumulates nodes and edges in emission order. It is not safe for
// concurrent use; a session's sink feeds it from a single goroutine.
type Graph struct {
	nodes map[string]thought.Node
	order []string

	edges []Edge

	// pending maps an unresolved target id to the source ids waiting on it.
	pending map[string][]string
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[string]thought.Node),
		pending: make(map[string][]string),
	}
}

// Add inserts an emitted node, resolving any edges that were pending on its
// id and registering its own connections, pending or resolved.
func (g *Graph) Add(node thought.Node) {
	if _, exists := g.nodes[node.ID]; exists {
		return
	}

	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)

	// Resolve edges that were waiting for this node to appear.
	for _, from := range g.pending[node.ID] {
		g.edges = append(g.edges, Edge{From: from, To: node.ID})
	}
	delete(g.pending, node.ID)

	for _, target := range node.Connections {
		if _, ok := g.nodes[target]; ok {
			g.edges = append(g.edges, Edge{From: node.ID, To: target})
			continue
		}
		g.pending[target] = append(g.pending[target], node.ID)
	}
}

// Node returns a node by id.
func (g *Graph) Node(id string) (thought.Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Nodes returns all nodes in emission order.
func (g *Graph) Nodes() []thought.Node {
	nodes := make([]thought.Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns the resolved edges, in resolution order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Unresolved returns the edges whose target id never arrived. Sources
// waiting on the same target are returned in arrival order.
func (g *Graph) Unresolved() []Edge {
	var edges []Edge
	for _, id := range g.order {
		node := g.nodes[id]
		for _, target := range node.Connections {
			if _, ok := g.nodes[target]; !ok {
				edges = append(edges, Edge{From: id, To: target})
			}
		}
	}
	return edges
}

// Len returns the number of nodes added.
func (g *Graph) Len() int {
	return len(g.order)
}
