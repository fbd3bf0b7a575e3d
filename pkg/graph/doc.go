// Package graph provides serialization types for built structures and layouts.
//
// This package defines the canonical wire format for treeviz data, used for
// JSON files, API responses, caching, and every renderer.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [Layout]: Serialization types (this package)
//   - pkg/tree.Tree: Internal structure (arena of nodes keyed by array index)
//   - pkg/layout.Result: Internal layout (positions, edges, cycles)
//
// Use the Export methods and Parse functions of those packages to convert
// between them.
//
// # Core Types
//
//   - [Graph]: A built structure before layout, absent nodes included
//   - [Layout]: A positioned structure, visible nodes only
//   - [Node], [Edge], [Cycle]: Shared structural types
//   - [Summary], [NodeInfo]: Derived views shown by the CLI and API
//
// # Graph Serialization
//
// Nodes are identified by their index in the input array:
//
//	{
//	  "kind": "graph",
//	  "input_len": 4,
//	  "nodes": [
//	    {"index": 0, "value": 1, "children": [1, 2]},
//	    {"index": 1, "value": 2, "children": [0]},
//	    {"index": 2, "value": 3}
//	  ],
//	  "cycles": [{"from": 1, "to": 0}]
//	}
//
// # Layout Serialization
//
//	layout, err := graph.ReadLayoutFile("layout.json")
//	if err != nil {
//	    return err
//	}
//	for _, e := range layout.Edges {
//	    if e.Visible() {
//	        // draw e.From → e.To, dashed when e.BackEdge
//	    }
//	}
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
