package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/values"
)

func TestExportParse(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			orig := build(t, "[1,2,3,@0,null,[a,b],@2]", kind, Options{MaxChildren: 2})

			data, err := graph.MarshalGraph(orig.Export())
			require.NoError(t, err)
			g, err := graph.UnmarshalGraph(data)
			require.NoError(t, err)

			got, err := Parse(g)
			require.NoError(t, err)
			assert.Equal(t, orig.Kind(), got.Kind())
			assert.Equal(t, orig.InputLen(), got.InputLen())
			assert.Equal(t, orig.NodeCount(), got.NodeCount())
			assert.Equal(t, orig.Cycles(), got.Cycles())
			for _, n := range orig.Nodes() {
				m, ok := got.Node(n.Index)
				require.True(t, ok)
				assert.True(t, n.Value.Equal(m.Value))
				assert.Equal(t, n.Children, m.Children)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	one := values.Of(values.Num(1))

	tests := []struct {
		name string
		g    graph.Graph
		code errors.Code
	}{
		{
			name: "unknown kind",
			g:    graph.Graph{Kind: "heap", InputLen: 1, Nodes: []graph.Node{{Index: 0, Value: one}}},
			code: errors.ErrCodeInvalidKind,
		},
		{
			name: "no nodes",
			g:    graph.Graph{Kind: "binary", InputLen: 1},
			code: errors.ErrCodeEmptyInput,
		},
		{
			name: "index out of range",
			g:    graph.Graph{Kind: "binary", InputLen: 1, Nodes: []graph.Node{{Index: 0, Value: one}, {Index: 3, Value: one}}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "missing root",
			g:    graph.Graph{Kind: "binary", InputLen: 2, Nodes: []graph.Node{{Index: 1, Value: one}}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "unknown child",
			g:    graph.Graph{Kind: "binary", InputLen: 2, Nodes: []graph.Node{{Index: 0, Value: one, Children: []int{1}}}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "second parent without cycle",
			g: graph.Graph{Kind: "graph", InputLen: 3, Nodes: []graph.Node{
				{Index: 0, Value: one, Children: []int{1, 2}},
				{Index: 1, Value: one, Children: []int{2}},
				{Index: 2, Value: one},
			}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "root as child without cycle",
			g: graph.Graph{Kind: "graph", InputLen: 2, Nodes: []graph.Node{
				{Index: 0, Value: one, Children: []int{1}},
				{Index: 1, Value: one, Children: []int{0}},
			}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "dangling cycle",
			g: graph.Graph{Kind: "graph", InputLen: 2, Nodes: []graph.Node{
				{Index: 0, Value: one, Children: []int{1}},
				{Index: 1, Value: one},
			}, Cycles: []graph.Cycle{{From: 1, To: 0}}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "absent node with children",
			g: graph.Graph{Kind: "binary", InputLen: 2, Nodes: []graph.Node{
				{Index: 0, Value: values.Null(), Children: []int{1}},
				{Index: 1, Value: one},
			}},
			code: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.g)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "got %v", err)
		})
	}
}
