package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/graph"
)

// Style defines the visual appearance of a rendered structure.
// Implementations control the stylesheet and how nodes and edges are drawn.
type Style interface {
	// Name returns the identifier accepted by StyleFor.
	Name() string
	// RenderDefs writes the SVG <style> block and background.
	RenderDefs(buf *bytes.Buffer, width, height float64)
	// RenderEdge writes the SVG for one visible edge.
	RenderEdge(buf *bytes.Buffer, e Edge)
	// RenderNode writes the SVG for one visible node and its label.
	RenderNode(buf *bytes.Buffer, n Node)
}

// Node contains all data needed to draw a single node.
type Node struct {
	Index  int
	X, Y   float64
	Radius float64
	Lines  []string // one line, or two for pair values
	Absent bool
	Title  string // tooltip text, empty to omit
}

// Edge contains positioning data for drawing one link.
type Edge struct {
	From, To       int
	X1, Y1, X2, Y2 float64
	BackEdge       bool
}

// StyleFor returns the style registered under name. The empty name selects
// the simple style.
func StyleFor(name string) (Style, error) {
	switch name {
	case "", graph.StyleSimple:
		return Simple{}, nil
	case graph.StyleDark:
		return Dark{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (must be one of: %s, %s)", name, graph.StyleSimple, graph.StyleDark)
	}
}

// palette holds the colors a style injects into the shared stylesheet.
type palette struct {
	background string
	nodeFill   string
	nodeStroke string
	nullFill   string
	nullStroke string
	text       string
	edge       string
	cycle      string
}

const stylesheet = `  <style>
    .tree-node { fill: %s; stroke: %s; stroke-width: 2; }
    .null-node { fill: %s; stroke: %s; stroke-dasharray: 4 3; }
    .node-text { fill: %s; font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; font-size: %.0fpx; text-anchor: middle; dominant-baseline: central; }
    .node-text-small { font-size: %.0fpx; }
    .tree-edge { stroke: %s; stroke-width: 2; }
    .cycle-edge { stroke: %s; stroke-width: 2; stroke-dasharray: 6 4; fill: none; }
  </style>
`

func (p palette) renderDefs(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, stylesheet,
		p.nodeFill, p.nodeStroke, p.nullFill, p.nullStroke,
		p.text, fontSizeLarge, fontSizeSmall,
		p.edge, p.cycle)
	if p.background != "" {
		fmt.Fprintf(buf, `  <rect width="%s" height="%s" fill="%s"/>`+"\n", coord(width), coord(height), p.background)
	}
}

// Simple draws light nodes on a transparent background.
type Simple struct{}

var simplePalette = palette{
	nodeFill:   "#ffffff",
	nodeStroke: "#4a6fa5",
	nullFill:   "#f1f3f5",
	nullStroke: "#adb5bd",
	text:       "#212529",
	edge:       "#6c757d",
	cycle:      "#dc3545",
}

func (Simple) Name() string { return graph.StyleSimple }

func (Simple) RenderDefs(buf *bytes.Buffer, width, height float64) {
	simplePalette.renderDefs(buf, width, height)
}

func (Simple) RenderEdge(buf *bytes.Buffer, e Edge) { drawEdge(buf, e) }
func (Simple) RenderNode(buf *bytes.Buffer, n Node) { drawNode(buf, n) }

// Dark draws light-on-dark with a filled background.
type Dark struct{}

var darkPalette = palette{
	background: "#1e1e2e",
	nodeFill:   "#313244",
	nodeStroke: "#89b4fa",
	nullFill:   "#181825",
	nullStroke: "#585b70",
	text:       "#cdd6f4",
	edge:       "#9399b2",
	cycle:      "#f38ba8",
}

func (Dark) Name() string { return graph.StyleDark }

func (Dark) RenderDefs(buf *bytes.Buffer, width, height float64) {
	darkPalette.renderDefs(buf, width, height)
}

func (Dark) RenderEdge(buf *bytes.Buffer, e Edge) { drawEdge(buf, e) }
func (Dark) RenderNode(buf *bytes.Buffer, n Node) { drawNode(buf, n) }
