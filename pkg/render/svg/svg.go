package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/treeviz/pkg/graph"
)

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	style  Style
	titles bool
}

// WithStyle selects the visual style. The default is Simple.
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithoutTitles omits the per-node <title> tooltips.
func WithoutTitles() Option { return func(r *renderer) { r.titles = false } }

// Render draws a layout as a standalone SVG document.
//
// Visible edges are drawn first so circles sit on top of them. Edges recorded
// as back edges get the cycle-edge class; all others get tree-edge. Pair
// values are drawn as two lines of text.
func Render(l graph.Layout, opts ...Option) []byte {
	r := renderer{style: Simple{}, titles: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		coord(l.Width), coord(l.Height), coord(l.Width), coord(l.Height))
	r.style.RenderDefs(&buf, l.Width, l.Height)

	idx := l.Index()
	for _, e := range l.Edges {
		if !e.Visible() {
			continue
		}
		from, okF := idx[e.From]
		to, okT := idx[e.To]
		if !okF || !okT {
			continue
		}
		r.style.RenderEdge(&buf, Edge{
			From: e.From, To: e.To,
			X1: from.X, Y1: from.Y,
			X2: to.X, Y2: to.Y,
			BackEdge: e.BackEdge,
		})
	}

	var infos []graph.NodeInfo
	if r.titles {
		infos = l.NodeInfos()
	}
	for i, n := range l.Nodes {
		node := Node{
			Index:  n.Index,
			X:      n.X,
			Y:      n.Y,
			Radius: n.Radius,
			Lines:  lines(n),
			Absent: n.IsAbsent(),
		}
		if node.Radius <= 0 {
			node.Radius = l.NodeRadius
		}
		if infos != nil {
			node.Title = infos[i].String()
		}
		r.style.RenderNode(&buf, node)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func lines(n graph.Node) []string {
	if a, b, ok := n.Value.Pair(); ok {
		return []string{a.String(), b.String()}
	}
	return []string{n.DisplayLabel()}
}
