package graph

import (
	"strconv"
	"strings"

	"github.com/matzehuels/treeviz/pkg/values"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visual styles for rendering.
const (
	StyleSimple = "simple"
	StyleDark   = "dark"
)

// =============================================================================
// Graph - Structure Serialization
// =============================================================================

// Graph is the serialization format for a built structure before layout.
// It records every materialized node, including absent ones, so that a
// structure can be laid out later with either visibility policy.
type Graph struct {
	Kind     string  `json:"kind"`
	InputLen int     `json:"input_len"`
	Nodes    []Node  `json:"nodes"`
	Cycles   []Cycle `json:"cycles,omitempty"`
}

// =============================================================================
// Node - Unified Node Type
// =============================================================================

// Node is the unified node type for all serialization contexts.
// Position fields are only populated inside a Layout.
type Node struct {
	Index    int          `json:"index"`
	Value    values.Value `json:"value"`
	Children []int        `json:"children,omitempty"`

	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Depth  int     `json:"depth,omitempty"`
}

// IsAbsent reports whether the node stands for a null slot.
func (n *Node) IsAbsent() bool { return n.Value.IsAbsent() }

// IsPair reports whether the node carries a two-part label.
func (n *Node) IsPair() bool { return n.Value.IsPair() }

// DisplayLabel returns the label if set, otherwise the compact value.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.Value.Display()
}

// =============================================================================
// Edge, Cycle - Links
// =============================================================================

// Edge is one parent→child link of a laid-out structure.
type Edge struct {
	From     int  `json:"from"`
	To       int  `json:"to"`
	BackEdge bool `json:"back_edge,omitempty"` // target existed when attached
	Hidden   bool `json:"hidden,omitempty"`    // target suppressed by visibility
}

// Visible reports whether a renderer should draw the edge.
func (e Edge) Visible() bool { return !e.Hidden }

// Cycle records a back edge found while building a graph.
type Cycle struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// =============================================================================
// Summary, NodeInfo - Derived Views
// =============================================================================

// Summary describes a laid-out structure in a few numbers.
type Summary struct {
	Kind         string `json:"kind"`
	InputLen     int    `json:"input_len"`
	VisibleNodes int    `json:"visible_nodes"`
	Depth        int    `json:"depth"`
	Cycles       int    `json:"cycles,omitempty"`
}

// NodeInfo is the detail record shown for a single node.
type NodeInfo struct {
	Index    int            `json:"index"`
	Value    values.Value   `json:"value"`
	Children []values.Value `json:"children"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
}

// String formats the record as
//
//	Node Value: [a, b]
//	Index: 0
//	Children: 2, null
//	Position: (150, 80)
func (i NodeInfo) String() string {
	children := "None"
	if len(i.Children) > 0 {
		parts := make([]string, len(i.Children))
		for j, c := range i.Children {
			parts[j] = c.Full()
		}
		children = strings.Join(parts, ", ")
	}
	var b strings.Builder
	b.WriteString("Node Value: " + i.Value.Full() + "\n")
	b.WriteString("Index: " + strconv.Itoa(i.Index) + "\n")
	b.WriteString("Children: " + children + "\n")
	b.WriteString("Position: (" + FormatCoord(i.X) + ", " + FormatCoord(i.Y) + ")")
	return b.String()
}

// FormatCoord formats a coordinate with the fewest digits that round-trip.
func FormatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
