package graph

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/values"
)

// =============================================================================
// Layout - Positioned Structure
// =============================================================================

// Layout is the serialization format for a laid-out structure. It is what
// every renderer consumes.
//
// Nodes holds only the visible nodes, in placement order. Edges holds one
// entry per attached child; edges whose target was suppressed carry
// Hidden=true and have no matching node. Coordinates are already normalized
// so that Width and Height frame every node.
//
// The internal representation (pkg/layout.Result) converts to this format
// with its Export method.
type Layout struct {
	Kind       string  `json:"kind"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Style      string  `json:"style,omitempty"`
	ShowAbsent bool    `json:"show_absent"`
	NodeRadius float64 `json:"node_radius"`

	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges,omitempty"`
	Cycles []Cycle `json:"cycles,omitempty"`

	Summary Summary `json:"summary"`
}

// IsEmpty reports whether no node is visible.
func (l *Layout) IsEmpty() bool { return len(l.Nodes) == 0 }

// Index returns the visible nodes keyed by array index.
func (l *Layout) Index() map[int]*Node {
	idx := make(map[int]*Node, len(l.Nodes))
	for i := range l.Nodes {
		idx[l.Nodes[i].Index] = &l.Nodes[i]
	}
	return idx
}

// Node returns the visible node with the given array index.
func (l *Layout) Node(index int) (*Node, bool) {
	for i := range l.Nodes {
		if l.Nodes[i].Index == index {
			return &l.Nodes[i], true
		}
	}
	return nil, false
}

// NodeInfo returns the detail record for a visible node. Children that are
// not visible were suppressed absent slots and are reported as null.
func (l *Layout) NodeInfo(index int) (NodeInfo, bool) {
	idx := l.Index()
	n, ok := idx[index]
	if !ok {
		return NodeInfo{}, false
	}
	return infoOf(idx, n), true
}

// NodeInfos returns the detail record of every visible node, in Nodes order.
func (l *Layout) NodeInfos() []NodeInfo {
	idx := l.Index()
	out := make([]NodeInfo, len(l.Nodes))
	for i := range l.Nodes {
		out[i] = infoOf(idx, &l.Nodes[i])
	}
	return out
}

func infoOf(idx map[int]*Node, n *Node) NodeInfo {
	info := NodeInfo{
		Index:    n.Index,
		Value:    n.Value,
		Children: make([]values.Value, len(n.Children)),
		X:        n.X,
		Y:        n.Y,
	}
	for i, c := range n.Children {
		if child, ok := idx[c]; ok {
			info.Children[i] = child.Value
		} else {
			info.Children[i] = values.Null()
		}
	}
	return info
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that the kind is set and that every drawn edge connects
// visible nodes.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal layout")
	}
	if err := l.validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

func (l *Layout) validate() error {
	if l.Kind == "" {
		return errors.New(errors.ErrCodeInvalidInput, "layout must declare a kind")
	}
	if l.Width < 0 || l.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout dimensions must be non-negative")
	}
	idx := make(map[int]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if idx[n.Index] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate node index %d", n.Index)
		}
		idx[n.Index] = true
	}
	// Drawn tree edges give every node at most one parent and the root none,
	// so walking them from the root always ends.
	parents := make(map[int]int, len(l.Nodes))
	for _, e := range l.Edges {
		if !idx[e.From] {
			return errors.New(errors.ErrCodeInvalidInput, "edge %d→%d: unknown source", e.From, e.To)
		}
		if e.Hidden {
			continue
		}
		if !idx[e.To] {
			return errors.New(errors.ErrCodeInvalidInput, "edge %d→%d: unknown target", e.From, e.To)
		}
		if e.BackEdge {
			continue
		}
		if e.To == l.Nodes[0].Index {
			return errors.New(errors.ErrCodeInvalidInput, "edge %d→%d: tree edge into the root must be a back edge", e.From, e.To)
		}
		if p, seen := parents[e.To]; seen {
			return errors.New(errors.ErrCodeInvalidInput, "node %d has tree parents %d and %d", e.To, p, e.From)
		}
		parents[e.To] = e.From
	}
	return nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
