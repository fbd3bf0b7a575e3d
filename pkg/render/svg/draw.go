package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
)

const (
	fontSizeLarge  = 14.0
	fontSizeSmall  = 11.0
	fontWidthRatio = 0.85
	fontCharWidth  = 0.55
	pairLineOffset = 7.0
	minLabelChars  = 3
)

func drawEdge(buf *bytes.Buffer, e Edge) {
	class := "tree-edge"
	if e.BackEdge {
		class = "cycle-edge"
	}
	if e.From == e.To {
		drawSelfLoop(buf, e, class)
		return
	}
	fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" class="%s" data-from="%d" data-to="%d"/>`+"\n",
		coord(e.X1), coord(e.Y1), coord(e.X2), coord(e.Y2), class, e.From, e.To)
}

// drawSelfLoop draws a node linked to itself as a loop above its circle.
func drawSelfLoop(buf *bytes.Buffer, e Edge, class string) {
	const span, lift = 18.0, 60.0
	fmt.Fprintf(buf, `  <path d="M %s %s C %s %s, %s %s, %s %s" class="%s" data-from="%d" data-to="%d"/>`+"\n",
		coord(e.X1-span), coord(e.Y1),
		coord(e.X1-span*2), coord(e.Y1-lift),
		coord(e.X1+span*2), coord(e.Y1-lift),
		coord(e.X1+span), coord(e.Y1),
		class, e.From, e.To)
}

func drawNode(buf *bytes.Buffer, n Node) {
	class := "tree-node"
	if n.Absent {
		class = "tree-node null-node"
	}
	fmt.Fprintf(buf, `  <g class="node" data-index="%d">`+"\n", n.Index)
	if n.Title != "" {
		fmt.Fprintf(buf, "    <title>%s</title>\n", EscapeXML(n.Title))
	}
	fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" class="%s"/>`+"\n",
		coord(n.X), coord(n.Y), coord(n.Radius), class)

	if len(n.Lines) == 2 {
		writeText(buf, n.X, n.Y-pairLineOffset, "node-text", truncate(n.Lines[0], n.Radius, fontSizeLarge))
		writeText(buf, n.X, n.Y+pairLineOffset, "node-text node-text-small", truncate(n.Lines[1], n.Radius, fontSizeSmall))
	} else if len(n.Lines) == 1 {
		writeText(buf, n.X, n.Y, "node-text", truncate(n.Lines[0], n.Radius, fontSizeLarge))
	}
	buf.WriteString("  </g>\n")
}

func writeText(buf *bytes.Buffer, x, y float64, class, text string) {
	fmt.Fprintf(buf, `    <text x="%s" y="%s" class="%s">%s</text>`+"\n", coord(x), coord(y), class, EscapeXML(text))
}

// truncate shortens label so it fits inside a circle of the given radius.
func truncate(label string, radius, fontSize float64) string {
	maxChars := max(minLabelChars, int(2*radius*fontWidthRatio/(fontSize*fontCharWidth)))
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// coord formats a coordinate with at most two decimals and no trailing zeros.
func coord(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
