package text

import (
	"fmt"
	"strings"

	"github.com/matzehuels/treeviz/pkg/graph"
)

// Mermaid renders l as a top-down Mermaid flowchart. Nodes are circles keyed
// n<index>; absent nodes get the absent class and back edges are dotted.
func Mermaid(l graph.Layout) string {
	if l.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("flowchart TD\n")

	hasAbsent := false
	for i := range l.Nodes {
		n := &l.Nodes[i]
		fmt.Fprintf(&sb, "    n%d((\"%s\"))", n.Index, escapeLabel(mermaidLabel(n)))
		if n.IsAbsent() {
			sb.WriteString(":::absent")
			hasAbsent = true
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for _, e := range l.Edges {
		if !e.Visible() {
			continue
		}
		arrow := "-->"
		if e.BackEdge {
			arrow = "-.->"
		}
		fmt.Fprintf(&sb, "    n%d %s n%d\n", e.From, arrow, e.To)
	}

	if hasAbsent {
		sb.WriteString("\n    classDef absent stroke-dasharray: 4 3,fill:#f1f3f5\n")
	}
	return sb.String()
}

func mermaidLabel(n *graph.Node) string {
	if a, b, ok := n.Value.Pair(); ok {
		return a.String() + "<br/>" + b.String()
	}
	return n.DisplayLabel()
}

// escapeLabel escapes characters that end a quoted Mermaid label.
func escapeLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "#quot;")
}
