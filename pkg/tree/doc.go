// Package tree reconstructs rooted structures from level-order value arrays.
//
// A level-order array addresses nodes implicitly by position: index 0 is the
// root and the children of each expanded node are read from a cursor that only
// moves forward. [Build] replays that addressing with an explicit breadth-first
// queue and produces a [Tree]: an arena of [Node] records keyed by their
// originating array index.
//
// # Kinds
//
// Three kinds of structure are supported:
//
//   - [KindBinary]: each expanded node takes the next two slots (left, right).
//     Absent slots still produce a child record so that a renderer can show
//     them, but absent nodes are never expanded.
//   - [KindNary]: each expanded node takes consecutive non-absent slots up to
//     [Options.MaxChildren]; an absent slot terminates the child list and is
//     consumed.
//   - [KindGraph]: binary addressing, but a slot that resolves to an index
//     already in the tree re-attaches the existing node and records a [Cycle].
//     A slot holding a back-reference token ("@2") resolves to that index.
//
// # Ownership
//
// The builder creates every node and owns the index→node table. Consumers such
// as the layout engine only read a Tree; nothing in this package mutates a Tree
// after Build returns. Each Build call starts from an empty arena and an empty
// cycle list.
//
// # Example
//
//	vals := values.MustParse("[1, 2, 3, null, 4]")
//	t, err := tree.Build(vals, tree.KindBinary, tree.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, child := range t.Children(t.Root()) {
//	    fmt.Println(child.Index, child.Value)
//	}
package tree
