package tree

import (
	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/values"
)

// builder holds the mutable state of one Build call.
type builder struct {
	vals   values.Array
	tree   *Tree
	queue  []*Node
	cursor int
	max    int
}

// Build reconstructs a structure of the given kind from a level-order array.
//
// Construction is breadth-first. The root is vals[0]; a cursor starting at 1
// hands out the remaining slots in order and never moves backwards. Absent
// nodes are dequeued without consuming any slots. Construction stops when the
// queue is empty or the cursor reaches len(vals); trailing slots that no node
// claimed are ignored.
//
// Build returns an error with code errors.ErrCodeEmptyInput when vals is empty
// and errors.ErrCodeInvalidKind when kind is not supported.
func Build(vals values.Array, kind Kind, opts Options) (*Tree, error) {
	if len(vals) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "Empty tree")
	}
	if !kind.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidKind, "Invalid tree type: %q", string(kind))
	}

	b := &builder{
		vals:   vals,
		tree:   newTree(kind, len(vals)),
		cursor: 1,
		max:    opts.maxChildren(),
	}
	b.enqueue(b.tree.create(0, vals[0]))

	var expand func(*Node)
	switch kind {
	case KindBinary:
		expand = b.expandBinary
	case KindNary:
		expand = b.expandNary
	case KindGraph:
		expand = b.expandGraph
	}

	for len(b.queue) > 0 && b.cursor < len(vals) {
		n := b.dequeue()
		if n.IsAbsent() {
			continue
		}
		expand(n)
	}
	return b.tree, nil
}

func (b *builder) enqueue(n *Node) { b.queue = append(b.queue, n) }

func (b *builder) dequeue() *Node {
	n := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	return n
}

func (b *builder) done() bool { return b.cursor >= len(b.vals) }

// expandBinary attaches the next two slots as left and right children.
func (b *builder) expandBinary(n *Node) {
	for range 2 {
		if b.done() {
			return
		}
		child := b.tree.create(b.cursor, b.vals[b.cursor])
		b.tree.attach(n, child)
		b.enqueue(child)
		b.cursor++
	}
}

// expandNary attaches consecutive non-absent slots until the branching bound
// or an absent terminator. A terminator directly at the cursor is consumed
// whether the loop stopped on it or on the bound.
func (b *builder) expandNary(n *Node) {
	for !b.done() && !b.vals[b.cursor].IsAbsent() {
		child := b.tree.create(b.cursor, b.vals[b.cursor])
		b.tree.attach(n, child)
		b.enqueue(child)
		b.cursor++
		if len(n.Children) >= b.max {
			break
		}
	}
	if !b.done() && b.vals[b.cursor].IsAbsent() {
		b.cursor++
	}
}

// expandGraph attaches the next two slots, resolving each through the
// index→node table.
func (b *builder) expandGraph(n *Node) {
	for range 2 {
		if b.done() {
			return
		}
		b.graphChild(n, b.cursor)
		b.cursor++
	}
}

func (b *builder) graphChild(parent *Node, slot int) {
	target := slot
	if ref, ok := b.vals[slot].Ref(); ok {
		if _, exists := b.tree.Node(ref); exists {
			target = ref
		}
	}

	if existing, ok := b.tree.Node(target); ok {
		b.tree.attach(parent, existing)
		b.tree.recordCycle(parent.Index, existing.Index)
		return
	}

	child := b.tree.create(slot, b.vals[slot])
	b.tree.attach(parent, child)
	b.enqueue(child)
}
