package text

import (
	"strconv"
	"strings"

	"github.com/matzehuels/treeviz/pkg/graph"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	indentMid  = "│   "
	indentLast = "    "
	backMarker = "↺ "
)

// ASCII renders l as an indented outline rooted at the first placed node.
// Back edges print the target prefixed with ↺ and are not followed.
//
//	1
//	├── 2
//	│   └── ↺ 1 #0
//	└── 3
func ASCII(l graph.Layout) string {
	if l.IsEmpty() {
		return ""
	}
	r := asciiRenderer{
		idx:      l.Index(),
		children: childEdges(l),
		seen:     make(map[int]bool, len(l.Nodes)),
	}
	root := l.Nodes[0]
	r.sb.WriteString(label(&root) + "\n")
	r.walk(root.Index, "")
	return r.sb.String()
}

type asciiRenderer struct {
	sb       strings.Builder
	idx      map[int]*graph.Node
	children map[int][]graph.Edge
	seen     map[int]bool
}

// walk prints the children of index. A node reached a second time is printed
// like a back edge and not expanded again.
func (r *asciiRenderer) walk(index int, prefix string) {
	r.seen[index] = true
	var edges []graph.Edge
	for _, e := range r.children[index] {
		if _, ok := r.idx[e.To]; ok {
			edges = append(edges, e)
		}
	}
	for i, e := range edges {
		last := i == len(edges)-1
		branch, indent := branchMid, indentMid
		if last {
			branch, indent = branchLast, indentLast
		}

		child := r.idx[e.To]
		r.sb.WriteString(prefix + branch)
		if e.BackEdge || r.seen[e.To] {
			r.sb.WriteString(backMarker + label(child) + " #" + strconv.Itoa(child.Index) + "\n")
			continue
		}
		r.sb.WriteString(label(child) + "\n")
		r.walk(e.To, prefix+indent)
	}
}

// childEdges groups the visible edges by source, keeping placement order.
func childEdges(l graph.Layout) map[int][]graph.Edge {
	out := make(map[int][]graph.Edge, len(l.Nodes))
	for _, e := range l.Edges {
		if e.Visible() {
			out[e.From] = append(out[e.From], e)
		}
	}
	return out
}

// label returns a one-line label; pairs use their bracketed form.
func label(n *graph.Node) string {
	if n.IsPair() {
		return n.Value.Full()
	}
	return n.DisplayLabel()
}
