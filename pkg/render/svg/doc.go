// Package svg draws laid-out structures as standalone SVG documents.
//
// Each visible node becomes a circle with its label centered inside; pair
// values get a larger circle and two lines of text. Each visible edge becomes
// a line classed tree-edge, or cycle-edge when it is a back edge. A node
// linked to itself is drawn as a loop above its circle.
//
// Hovering a node shows its detail record (value, index, children,
// position) through an SVG <title> element.
//
// # Styles
//
// A [Style] supplies the stylesheet and draws nodes and edges:
//
//   - [Simple]: light nodes on a transparent background
//   - [Dark]: light-on-dark with a filled background
//
// Select one by name with [StyleFor]:
//
//	style, err := svg.StyleFor("dark")
//	out := svg.Render(layout, svg.WithStyle(style))
package svg
