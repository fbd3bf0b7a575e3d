package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/values"
)

func layoutOf(t *testing.T, input string, kind tree.Kind, p Policy) *Result {
	t.Helper()
	tr, err := tree.Build(values.MustParse(input), kind, tree.Options{})
	require.NoError(t, err)
	res, err := New(DefaultConfig()).Layout(tr, p)
	require.NoError(t, err)
	return res
}

func xOf(t *testing.T, r *Result, index int) float64 {
	t.Helper()
	n, ok := r.Node(index)
	require.Truef(t, ok, "node %d not placed", index)
	return n.X
}

func TestLayoutBalanced(t *testing.T) {
	r := layoutOf(t, "[1,2,3,4,5,6,7]", tree.KindBinary, Policy{})

	require.Len(t, r.Nodes, 7)
	assert.Equal(t, 270.0, xOf(t, r, 0))
	assert.Equal(t, 190.0, xOf(t, r, 1))
	assert.Equal(t, 350.0, xOf(t, r, 2))
	assert.Equal(t, 150.0, xOf(t, r, 3))
	assert.Equal(t, 390.0, xOf(t, r, 6))
	assert.Equal(t, 540.0, r.Width)
	assert.Equal(t, 360.0, r.Height)

	s := r.Summary()
	assert.Equal(t, 7, s.InputLen)
	assert.Equal(t, 7, s.VisibleNodes)
	assert.Equal(t, 3, s.Depth)
	assert.Zero(t, s.Cycles)
}

func TestLayoutSingleNode(t *testing.T) {
	r := layoutOf(t, "[5]", tree.KindBinary, Policy{})
	require.Len(t, r.Nodes, 1)
	assert.Equal(t, 150.0, r.Nodes[0].X)
	assert.Equal(t, 80.0, r.Nodes[0].Y)
	assert.Equal(t, 300.0, r.Width)
	assert.Equal(t, 160.0, r.Height)
	assert.Equal(t, 1, r.Depth())
}

func TestLayoutAbsentPolicy(t *testing.T) {
	t.Run("hidden", func(t *testing.T) {
		r := layoutOf(t, "[1,null,3]", tree.KindBinary, Policy{})
		require.Len(t, r.Nodes, 2)
		assert.Equal(t, 150.0, xOf(t, r, 0))
		assert.Equal(t, 150.0, xOf(t, r, 2))
		assert.Equal(t, []Edge{{From: 0, To: 1, Hidden: true}, {From: 0, To: 2}}, r.Edges)
		_, ok := r.Node(1)
		assert.False(t, ok)
	})

	t.Run("shown", func(t *testing.T) {
		r := layoutOf(t, "[1,null,3]", tree.KindBinary, Policy{ShowAbsent: true})
		require.Len(t, r.Nodes, 3)
		assert.Equal(t, 150.0, xOf(t, r, 1))
		assert.Equal(t, 190.0, xOf(t, r, 0))
		assert.Equal(t, 230.0, xOf(t, r, 2))
		for _, e := range r.Edges {
			assert.False(t, e.Hidden)
		}
	})

	t.Run("absent root", func(t *testing.T) {
		r := layoutOf(t, "[null,1,2]", tree.KindBinary, Policy{})
		assert.True(t, r.IsEmpty())
		assert.Zero(t, r.Width)
		assert.Zero(t, r.Height)
		assert.Zero(t, r.Summary().Depth)
	})
}

func TestLayoutProperties(t *testing.T) {
	inputs := []struct {
		input string
		kind  tree.Kind
	}{
		{"[1,2,3,4,5,6,7,8,9,10,11,12,13,14,15]", tree.KindBinary},
		{"[1,2,null,3,null,4,null,5]", tree.KindBinary},
		{"[1,2,3,4,null,5,6,null,7,8,9,null,10]", tree.KindNary},
		{"[a,b,c,@0,d,@1,e,@2,f]", tree.KindGraph},
	}
	cfg := DefaultConfig()

	for _, in := range inputs {
		for _, show := range []bool{false, true} {
			t.Run(in.input, func(t *testing.T) {
				r := layoutOf(t, in.input, in.kind, Policy{ShowAbsent: show})
				require.NotEmpty(t, r.Nodes)

				minX := r.Nodes[0].X
				seen := map[int]bool{}
				byDepth := map[int][]float64{}
				for _, n := range r.Nodes {
					assert.False(t, seen[n.Index], "node %d placed twice", n.Index)
					seen[n.Index] = true
					minX = min(minX, n.X)
					assert.LessOrEqual(t, n.X+cfg.HorizontalPadding, r.Width)
					assert.LessOrEqual(t, n.Y+cfg.VerticalPadding, r.Height)
					assert.Equal(t, float64(n.Depth)*cfg.LevelSpacing+cfg.VerticalPadding, n.Y)
					byDepth[n.Depth] = append(byDepth[n.Depth], n.X)
				}
				assert.Equal(t, cfg.HorizontalPadding, minX)

				// Placement is pre-order, so each level is filled left to right.
				for depth, xs := range byDepth {
					for i := 1; i < len(xs); i++ {
						assert.GreaterOrEqualf(t, xs[i]-xs[i-1], cfg.NodeSpacing, "level %d overlaps", depth)
					}
				}
			})
		}
	}
}

func TestLayoutCycles(t *testing.T) {
	r := layoutOf(t, "[1,2,3,@0,4,@1]", tree.KindGraph, Policy{})

	assert.Len(t, r.Nodes, 4)
	assert.Equal(t, 2, r.Summary().Cycles)

	var back []Edge
	for _, e := range r.Edges {
		if e.BackEdge {
			back = append(back, e)
		}
	}
	assert.Equal(t, []Edge{{From: 1, To: 0, BackEdge: true}, {From: 2, To: 1, BackEdge: true}}, back)

	// Back-edge targets keep their tree position.
	assert.Equal(t, 0, mustNode(t, r, 0).Depth)
	assert.Equal(t, 1, mustNode(t, r, 1).Depth)
}

func TestLayoutSelfLoopTerminates(t *testing.T) {
	r := layoutOf(t, "[1,@0]", tree.KindGraph, Policy{})
	require.Len(t, r.Nodes, 1)
	assert.Equal(t, []Edge{{From: 0, To: 0, BackEdge: true}}, r.Edges)
}

func TestLayoutPairRadius(t *testing.T) {
	r := layoutOf(t, "[[a,b],1]", tree.KindBinary, Policy{})
	assert.InDelta(t, 39.0, mustNode(t, r, 0).Radius, 1e-9)
	assert.Equal(t, 30.0, mustNode(t, r, 1).Radius)
	assert.Equal(t, "a,b", mustNode(t, r, 0).Label)
}

func TestLayoutIdempotent(t *testing.T) {
	tr, err := tree.Build(values.MustParse("[1,2,3,null,4,5,@1]"), tree.KindGraph, tree.Options{})
	require.NoError(t, err)

	e := New(DefaultConfig())
	first, err := e.Layout(tr, Policy{})
	require.NoError(t, err)
	second, err := e.Layout(tr, Policy{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = e.Layout(tr, Policy{ShowAbsent: true})
	require.NoError(t, err)
	third, err := e.Layout(tr, Policy{})
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestLayoutErrors(t *testing.T) {
	_, err := New(DefaultConfig()).Layout(nil, Policy{})
	assert.True(t, errors.Is(err, errors.ErrCodeEmptyInput))
}

func TestCustomConfig(t *testing.T) {
	cfg := Config{NodeSpacing: 10, LevelSpacing: 20}
	e := New(cfg)
	assert.Equal(t, DefaultNodeRadius, e.Config().NodeRadius)
	assert.Zero(t, e.Config().HorizontalPadding)

	tr, err := tree.Build(values.MustParse("[1,2,3]"), tree.KindBinary, tree.Options{})
	require.NoError(t, err)
	r, err := e.Layout(tr, Policy{})
	require.NoError(t, err)
	assert.Equal(t, 5.0, mustNode(t, r, 0).X)
	assert.Equal(t, 20.0, mustNode(t, r, 1).Y)
	assert.Equal(t, 10.0, r.Width)
	assert.Equal(t, 20.0, r.Height)
}

func TestNodeInfo(t *testing.T) {
	r := layoutOf(t, "[1,null,3]", tree.KindBinary, Policy{})

	info, ok := r.NodeInfo(0)
	require.True(t, ok)
	assert.Equal(t, "Node Value: 1\nIndex: 0\nChildren: null, 3\nPosition: (150, 80)", info.String())

	leaf, ok := r.NodeInfo(2)
	require.True(t, ok)
	assert.Contains(t, leaf.String(), "Children: None")

	_, ok = r.NodeInfo(1)
	assert.False(t, ok)
}

func TestExport(t *testing.T) {
	r := layoutOf(t, "[1,null,[a,b],@0]", tree.KindGraph, Policy{})
	l := r.Export(graph.StyleDark)

	assert.Equal(t, "graph", l.Kind)
	assert.Equal(t, graph.StyleDark, l.Style)
	assert.Equal(t, r.Width, l.Width)
	assert.Equal(t, DefaultNodeRadius, l.NodeRadius)
	assert.Len(t, l.Nodes, len(r.Nodes))
	assert.Equal(t, r.Summary(), l.Summary)
	assert.Equal(t, []graph.Cycle{{From: 2, To: 0}}, l.Cycles)

	data, err := graph.MarshalLayout(l)
	require.NoError(t, err)
	back, err := graph.UnmarshalLayout(data)
	require.NoError(t, err)

	want, _ := r.NodeInfo(0)
	got, ok := back.NodeInfo(0)
	require.True(t, ok)
	assert.Equal(t, want.String(), got.String())
}

func mustNode(t *testing.T, r *Result, index int) Node {
	t.Helper()
	n, ok := r.Node(index)
	require.Truef(t, ok, "node %d not placed", index)
	return n
}
