package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treeviz/pkg/graph"
)

// pointsPerInch converts layout units (treated as points) to Graphviz inches.
const pointsPerInch = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the array index under each node label.
	Detailed bool
	// Free drops pinned positions and lets Graphviz rank the tree itself.
	Free bool
}

// ToDOT converts a layout to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Unless opts.Free is set every node carries a pinned pos attribute taken
// from the layout, so Graphviz reproduces the computed positions. Absent
// nodes are drawn dashed and grey; back edges are dashed red and do not
// constrain ranking.
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Free {
		buf.WriteString("  rankdir=TB;\n")
	} else {
		buf.WriteString("  layout=neato;\n")
		buf.WriteString("  splines=true;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, fixedsize=true];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		attrs := fmtAttrs(n, l, opts)
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(n.Index), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		if !e.Visible() {
			continue
		}
		if e.BackEdge {
			fmt.Fprintf(&buf, "  %s -> %s [style=dashed, color=red, constraint=false];\n", nodeID(e.From), nodeID(e.To))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(e.From), nodeID(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(index int) string { return "n" + strconv.Itoa(index) }

func fmtLabel(n graph.Node, detailed bool) string {
	label := n.DisplayLabel()
	if a, b, ok := n.Value.Pair(); ok {
		label = a.String() + "\n" + b.String()
	}
	if detailed {
		label += fmt.Sprintf("\n#%d", n.Index)
	}
	return label
}

func fmtAttrs(n graph.Node, l graph.Layout, opts Options) []string {
	radius := n.Radius
	if radius <= 0 {
		radius = l.NodeRadius
	}
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
		fmt.Sprintf("width=%.3f", 2*radius/pointsPerInch),
	}
	if !opts.Free {
		// Graphviz puts the origin bottom-left.
		attrs = append(attrs, fmt.Sprintf("pos=\"%.3f,%.3f!\"", n.X/pointsPerInch, (l.Height-n.Y)/pointsPerInch))
	}
	if n.IsAbsent() {
		attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey", "fontcolor=grey40")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion to PDF or PNG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	if strings.Contains(dot, "layout=neato") {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
