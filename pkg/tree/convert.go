package tree

import (
	"slices"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/graph"
)

// Export converts t to its serialization format.
// Nodes are ordered by index and absent nodes are included.
func (t *Tree) Export() graph.Graph {
	out := graph.Graph{
		Kind:     string(t.kind),
		InputLen: t.length,
		Nodes:    make([]graph.Node, 0, t.count),
	}
	for _, n := range t.Nodes() {
		out.Nodes = append(out.Nodes, graph.Node{
			Index:    n.Index,
			Value:    n.Value,
			Children: append([]int(nil), n.Children...),
		})
	}
	for _, c := range t.cycles {
		out.Cycles = append(out.Cycles, graph.Cycle{From: c.From, To: c.To})
	}
	return out
}

// Parse rebuilds a Tree from its serialization format.
//
// The serialized form is checked for the properties Build guarantees: node
// indices are unique and inside [0, InputLen), index 0 is present, every child
// exists, every cycle names an existing link, and apart from cycle links each
// node has at most one parent and the root has none. The last property keeps
// traversals that skip cycle links finite.
func Parse(g graph.Graph) (*Tree, error) {
	kind, err := ParseKind(g.Kind)
	if err != nil {
		return nil, err
	}
	if g.InputLen <= 0 || len(g.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "Empty tree")
	}
	if len(g.Nodes) > g.InputLen {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph has %d nodes but input_len %d", len(g.Nodes), g.InputLen)
	}

	t := newTree(kind, g.InputLen)
	for _, gn := range g.Nodes {
		if gn.Index < 0 || gn.Index >= g.InputLen {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node index %d out of range", gn.Index)
		}
		if t.nodes[gn.Index] != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node index %d", gn.Index)
		}
		if gn.Value.IsAbsent() && len(gn.Children) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "absent node %d has children", gn.Index)
		}
		n := t.create(gn.Index, gn.Value)
		n.Children = append([]int(nil), gn.Children...)
	}
	if t.nodes[0] == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph has no root node")
	}

	for _, c := range g.Cycles {
		t.recordCycle(c.From, c.To)
	}

	parents := make(map[int]int, t.count)
	for _, n := range t.Nodes() {
		for _, c := range n.Children {
			if _, ok := t.Node(c); !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "node %d: unknown child %d", n.Index, c)
			}
			if t.IsBackEdge(n.Index, c) {
				continue
			}
			if c == 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "node %d: root attached without a cycle", n.Index)
			}
			if p, seen := parents[c]; seen {
				return nil, errors.New(errors.ErrCodeInvalidInput, "node %d has parents %d and %d without a cycle", c, p, n.Index)
			}
			parents[c] = n.Index
		}
	}
	for _, c := range t.cycles {
		from, ok := t.Node(c.From)
		if !ok || !slices.Contains(from.Children, c.To) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cycle %d→%d has no matching link", c.From, c.To)
		}
	}
	return t, nil
}
