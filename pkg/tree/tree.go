package tree

import (
	"strings"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/values"
)

// Kind selects how a value array is turned into a structure.
type Kind string

const (
	KindBinary Kind = "binary"
	KindNary   Kind = "nary"
	KindGraph  Kind = "graph"
)

// DefaultMaxChildren is the n-ary branching bound used when none is configured.
const DefaultMaxChildren = 3

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindBinary, KindNary, KindGraph}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", errors.New(errors.ErrCodeInvalidKind, "Invalid tree type: %q (must be one of: binary, nary, graph)", s)
	}
	return k, nil
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindBinary, KindNary, KindGraph:
		return true
	}
	return false
}

// Title returns the human-readable name used in summaries.
func (k Kind) Title() string {
	switch k {
	case KindBinary:
		return "Binary Tree"
	case KindNary:
		return "N-ary Tree"
	case KindGraph:
		return "Graph"
	default:
		return string(k)
	}
}

// Options tunes construction.
type Options struct {
	// MaxChildren bounds the child count in n-ary mode.
	// Values <= 0 fall back to DefaultMaxChildren.
	MaxChildren int
}

func (o Options) maxChildren() int {
	if o.MaxChildren <= 0 {
		return DefaultMaxChildren
	}
	return o.MaxChildren
}

// Node is one materialized array slot.
type Node struct {
	// Index is the position in the input array. It identifies the node.
	Index int
	// Value is the element found at Index.
	Value values.Value
	// Children holds child indices in attachment order.
	Children []int
}

// IsAbsent reports whether the node stands for a null slot.
func (n *Node) IsAbsent() bool { return n.Value.IsAbsent() }

// IsPair reports whether the node carries a two-part label.
func (n *Node) IsPair() bool { return n.Value.IsPair() }

// Cycle records that the graph builder attached an existing node, turning the
// parent→child link into a back edge.
type Cycle struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Tree is the arena produced by Build.
type Tree struct {
	kind   Kind
	length int
	nodes  []*Node // indexed by array position; nil for slots never materialized
	count  int
	cycles []Cycle
	back   map[Cycle]bool
}

func newTree(kind Kind, length int) *Tree {
	return &Tree{
		kind:   kind,
		length: length,
		nodes:  make([]*Node, length),
		back:   make(map[Cycle]bool),
	}
}

// Kind returns the construction mode used for t.
func (t *Tree) Kind() Kind { return t.kind }

// InputLen returns the length of the value array t was built from.
func (t *Tree) InputLen() int { return t.length }

// Root returns the node at index 0.
func (t *Tree) Root() *Node { return t.nodes[0] }

// Node returns the node materialized at index i.
func (t *Tree) Node(i int) (*Node, bool) {
	if i < 0 || i >= len(t.nodes) || t.nodes[i] == nil {
		return nil, false
	}
	return t.nodes[i], true
}

// NodeCount returns how many nodes were materialized.
func (t *Tree) NodeCount() int { return t.count }

// Nodes returns all materialized nodes ordered by index.
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, 0, t.count)
	for _, n := range t.nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Children returns the child nodes of n in attachment order.
func (t *Tree) Children(n *Node) []*Node {
	out := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		out[i] = t.nodes[c]
	}
	return out
}

// Cycles returns the back edges recorded during construction.
func (t *Tree) Cycles() []Cycle {
	return append([]Cycle(nil), t.cycles...)
}

// IsBackEdge reports whether the from→to link was recorded as a cycle.
func (t *Tree) IsBackEdge(from, to int) bool {
	return t.back[Cycle{From: from, To: to}]
}

// EdgeCount returns the number of parent→child links, back edges included.
func (t *Tree) EdgeCount() int {
	total := 0
	for _, n := range t.nodes {
		if n != nil {
			total += len(n.Children)
		}
	}
	return total
}

func (t *Tree) create(i int, v values.Value) *Node {
	n := &Node{Index: i, Value: v}
	t.nodes[i] = n
	t.count++
	return n
}

func (t *Tree) attach(parent, child *Node) {
	parent.Children = append(parent.Children, child.Index)
}

func (t *Tree) recordCycle(from, to int) {
	c := Cycle{From: from, To: to}
	t.cycles = append(t.cycles, c)
	t.back[c] = true
}
