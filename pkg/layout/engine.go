package layout

import (
	"math"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/values"
)

// Policy controls which nodes are visible.
type Policy struct {
	// ShowAbsent places absent nodes like any other leaf. When false they
	// take no width and their incoming edges are marked Hidden.
	ShowAbsent bool
}

// Node is a positioned, read-only projection of a tree node.
type Node struct {
	Index    int
	Value    values.Value
	Label    string
	X, Y     float64
	Radius   float64
	Depth    int
	Children []int
}

// Edge is one parent→child link.
type Edge struct {
	From, To int
	BackEdge bool
	Hidden   bool
}

// Engine lays out trees with a fixed geometry.
type Engine struct {
	cfg Config
}

// New returns an engine using cfg. Zero spacings and radius fall back to the
// defaults.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Config returns the geometry in effect.
func (e *Engine) Config() Config { return e.cfg }

// Layout positions every visible node of t.
//
// The tree is only read. If no node is visible (an absent root with
// ShowAbsent off) the result has no nodes and zero dimensions.
func (e *Engine) Layout(t *tree.Tree, p Policy) (*Result, error) {
	if t == nil || t.NodeCount() == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "Empty tree")
	}

	w := &walker{
		cfg:    e.cfg,
		tree:   t,
		show:   p.ShowAbsent,
		widths: make(map[int]int, t.NodeCount()),
	}
	res := &Result{
		Kind:       t.Kind(),
		InputLen:   t.InputLen(),
		ShowAbsent: p.ShowAbsent,
		Cycles:     t.Cycles(),
		cfg:        e.cfg,
		index:      make(map[int]int, t.NodeCount()),
		tree:       t,
	}
	w.res = res

	root := t.Root()
	w.place(root, 0, 0, w.width(root))
	w.hideUnplaced()
	w.normalize()
	return res, nil
}

// walker holds the state of one Layout call.
type walker struct {
	cfg    Config
	tree   *tree.Tree
	show   bool
	widths map[int]int
	res    *Result
}

func (w *walker) visible(n *tree.Node) bool {
	return n != nil && (w.show || !n.IsAbsent())
}

// width returns the number of leaf slots under n. Links recorded as cycles
// are skipped, which leaves a proper tree, so memoizing by index is sound.
func (w *walker) width(n *tree.Node) int {
	if !w.visible(n) {
		return 0
	}
	if v, ok := w.widths[n.Index]; ok {
		return v
	}
	total := 0
	for _, c := range n.Children {
		if w.tree.IsBackEdge(n.Index, c) {
			continue
		}
		child, _ := w.tree.Node(c)
		total += w.width(child)
	}
	total = max(total, 1)
	w.widths[n.Index] = total
	return total
}

func (w *walker) place(n *tree.Node, level, left, right int) {
	if !w.visible(n) {
		return
	}

	mid := float64(left+right) / 2
	w.res.index[n.Index] = len(w.res.Nodes)
	w.res.Nodes = append(w.res.Nodes, Node{
		Index:    n.Index,
		Value:    n.Value,
		Label:    n.Value.Display(),
		X:        mid * w.cfg.NodeSpacing,
		Y:        float64(level)*w.cfg.LevelSpacing + w.cfg.VerticalPadding,
		Radius:   w.cfg.radius(n.IsPair()),
		Depth:    level,
		Children: append([]int(nil), n.Children...),
	})

	cur := left
	for _, c := range n.Children {
		child, _ := w.tree.Node(c)
		back := w.tree.IsBackEdge(n.Index, c)
		w.res.Edges = append(w.res.Edges, Edge{
			From:     n.Index,
			To:       c,
			BackEdge: back,
			Hidden:   !w.visible(child),
		})
		if back {
			continue
		}
		cw := w.width(child)
		w.place(child, level+1, cur, cur+cw)
		cur += cw
	}
}

// hideUnplaced marks edges whose target never received a position. Build
// never produces such edges; a parsed structure with unreachable nodes can.
func (w *walker) hideUnplaced() {
	for i, e := range w.res.Edges {
		if _, ok := w.res.index[e.To]; !ok {
			w.res.Edges[i].Hidden = true
		}
	}
}

// normalize shifts nodes so the leftmost sits at HorizontalPadding and sizes
// the frame.
func (w *walker) normalize() {
	nodes := w.res.Nodes
	if len(nodes) == 0 {
		return
	}
	minX, maxX, maxY := math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = min(minX, n.X)
		maxX = max(maxX, n.X)
		maxY = max(maxY, n.Y)
	}
	shift := w.cfg.HorizontalPadding - minX
	for i := range nodes {
		nodes[i].X += shift
	}
	w.res.Width = maxX + shift + w.cfg.HorizontalPadding
	w.res.Height = maxY + w.cfg.VerticalPadding
}
