// Package pkg provides the core libraries for treeviz.
//
// # Overview
//
// Treeviz turns a level-order value array such as [1, 2, 3, null, 4] into a
// binary tree, an n-ary tree, or a graph with back-references, computes a
// layout for it, and renders that layout. The pkg directory is organized
// into these areas:
//
//  1. [values] - Parsing the bracketed input text
//  2. [tree] - Reconstructing structures (binary, nary, graph with cycles)
//  3. [layout] - Subtree-width positioning and normalization
//  4. [graph] - Serialization types for structures and layouts
//  5. [render] - SVG, Graphviz, Mermaid, ASCII, PDF and PNG output
//  6. [pipeline] - Orchestration (build → layout → render) with caching
//  7. [cache], [config], [observability], [errors] - Supporting infrastructure
//
// # Architecture
//
// The data flow through treeviz:
//
//	"[1, 2, 3, null, 4]"
//	         ↓
//	    [values] package (parse into a value array)
//	         ↓
//	    [tree] package (build the structure, record cycles)
//	         ↓
//	    [layout] package (assign coordinates)
//	         ↓
//	    [render] packages (draw)
//	         ↓
//	    SVG/PNG/PDF/DOT/Mermaid/ASCII/JSON output
//
// # Quick Start
//
//	vals, _ := values.Parse("[1, 2, 3, null, 4]")
//	t, _ := tree.Build(vals, tree.KindBinary, tree.Options{})
//	res, _ := layout.New(layout.DefaultConfig()).Layout(t, layout.Policy{})
//	out := svg.Render(res.Export(graph.StyleSimple))
//
// Most callers use [pipeline.Runner], which adds validation and caching.
//
// [values]: github.com/matzehuels/treeviz/pkg/values
// [tree]: github.com/matzehuels/treeviz/pkg/tree
// [layout]: github.com/matzehuels/treeviz/pkg/layout
// [graph]: github.com/matzehuels/treeviz/pkg/graph
// [render]: github.com/matzehuels/treeviz/pkg/render
// [pipeline]: github.com/matzehuels/treeviz/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/treeviz/pkg/pipeline.Runner
// [cache]: github.com/matzehuels/treeviz/pkg/cache
// [config]: github.com/matzehuels/treeviz/pkg/config
// [observability]: github.com/matzehuels/treeviz/pkg/observability
// [errors]: github.com/matzehuels/treeviz/pkg/errors
package pkg
