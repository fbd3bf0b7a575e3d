// Package text renders laid-out structures as plain text.
//
// Two formats are provided:
//
//   - [ASCII]: an indented outline drawn with box-drawing characters, for
//     terminals and logs
//   - [Mermaid]: a Mermaid flowchart, for embedding in Markdown
//
// Both walk the edges of a [graph.Layout] in placement order, skip hidden
// edges, and mark back edges instead of following them.
//
// [graph.Layout]: github.com/matzehuels/treeviz/pkg/graph.Layout
package text
