// Package nodelink renders laid-out structures through Graphviz.
//
// # Overview
//
// This package is an alternative to the native SVG renderer for cases where
// Graphviz output is wanted: the DOT source can be post-processed with
// external tools, and Graphviz's own SVG has a different look.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the array index
//   - Free: positions are left to Graphviz's dot ranking instead of pinned
//
// # Positions
//
// By default every node is pinned (pos="x,y!") to the coordinates computed
// by pkg/layout and the graph is laid out with neato, which honors pinned
// positions. Coordinates are converted from points to inches and flipped
// vertically, since Graphviz puts the origin at the bottom-left.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
