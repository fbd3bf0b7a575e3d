// Package layout computes 2D coordinates for a built structure.
//
// The algorithm is the classic subtree-width layout:
//
//  1. Width pass: a node's width is the number of leaf slots beneath it.
//     Leaves count 1, suppressed absent nodes count 0, and an inner node
//     counts the sum of its children with a floor of 1.
//  2. Placement pass: each node receives a horizontal range [left, right)
//     and sits at its midpoint. The range is split among the children left
//     to right in proportion to their widths. Depth fixes the y coordinate.
//  3. Normalization: everything is shifted so the leftmost node sits
//     HorizontalPadding from the origin, and the frame is sized to leave the
//     same padding on the right and VerticalPadding below the deepest level.
//
// Back edges recorded by the graph builder are emitted as edges but never
// descended, so layout terminates on cyclic input and a re-attached node is
// positioned only once.
//
// An [Engine] carries configuration only. All per-run state lives in a walker
// created by each [Engine.Layout] call, so one engine can serve concurrent
// callers and repeated runs over the same input give identical results.
//
// # Example
//
//	t, _ := tree.Build(values.MustParse("[1,2,3]"), tree.KindBinary, tree.Options{})
//	res, err := layout.New(layout.DefaultConfig()).Layout(t, layout.Policy{})
//	if err != nil {
//	    return err
//	}
//	l := res.Export(graph.StyleSimple)
//	_ = graph.WriteLayoutFile(l, "layout.json")
package layout
