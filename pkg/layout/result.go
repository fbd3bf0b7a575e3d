package layout

import (
	"math"

	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/values"
)

// Result is the output of one Layout call.
type Result struct {
	Kind       tree.Kind
	InputLen   int
	ShowAbsent bool

	// Nodes holds the visible nodes in placement (pre-)order.
	Nodes []Node
	// Edges holds one entry per attached child, in placement order.
	Edges  []Edge
	Cycles []tree.Cycle

	Width, Height float64

	cfg   Config
	index map[int]int
	tree  *tree.Tree
}

// Node returns the placed node with the given array index.
func (r *Result) Node(index int) (Node, bool) {
	i, ok := r.index[index]
	if !ok {
		return Node{}, false
	}
	return r.Nodes[i], true
}

// IsEmpty reports whether no node is visible.
func (r *Result) IsEmpty() bool { return len(r.Nodes) == 0 }

// Depth returns the number of occupied levels.
func (r *Result) Depth() int {
	if len(r.Nodes) == 0 {
		return 0
	}
	maxY := math.Inf(-1)
	for _, n := range r.Nodes {
		maxY = max(maxY, n.Y)
	}
	return int(math.Round((maxY-r.cfg.VerticalPadding)/r.cfg.LevelSpacing)) + 1
}

// Summary reports input length, visible nodes, depth and cycle count.
func (r *Result) Summary() graph.Summary {
	return graph.Summary{
		Kind:         string(r.Kind),
		InputLen:     r.InputLen,
		VisibleNodes: len(r.Nodes),
		Depth:        r.Depth(),
		Cycles:       len(r.Cycles),
	}
}

// NodeInfo returns the detail record for a placed node. Children are listed
// in attachment order, hidden ones included.
func (r *Result) NodeInfo(index int) (graph.NodeInfo, bool) {
	n, ok := r.Node(index)
	if !ok {
		return graph.NodeInfo{}, false
	}
	info := graph.NodeInfo{
		Index:    n.Index,
		Value:    n.Value,
		Children: make([]values.Value, len(n.Children)),
		X:        n.X,
		Y:        n.Y,
	}
	for i, c := range n.Children {
		if child, ok := r.tree.Node(c); ok {
			info.Children[i] = child.Value
		}
	}
	return info, true
}

// Export converts r to the serialization format consumed by renderers.
func (r *Result) Export(style string) graph.Layout {
	out := graph.Layout{
		Kind:       string(r.Kind),
		Width:      r.Width,
		Height:     r.Height,
		Style:      style,
		ShowAbsent: r.ShowAbsent,
		NodeRadius: r.cfg.NodeRadius,
		Nodes:      make([]graph.Node, len(r.Nodes)),
		Edges:      make([]graph.Edge, len(r.Edges)),
		Summary:    r.Summary(),
	}
	for i, n := range r.Nodes {
		out.Nodes[i] = graph.Node{
			Index:    n.Index,
			Value:    n.Value,
			Children: append([]int(nil), n.Children...),
			Label:    n.Label,
			X:        n.X,
			Y:        n.Y,
			Radius:   n.Radius,
			Depth:    n.Depth,
		}
	}
	for i, e := range r.Edges {
		out.Edges[i] = graph.Edge{From: e.From, To: e.To, BackEdge: e.BackEdge, Hidden: e.Hidden}
	}
	for _, c := range r.Cycles {
		out.Cycles = append(out.Cycles, graph.Cycle{From: c.From, To: c.To})
	}
	return out
}
