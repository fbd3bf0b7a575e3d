package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/observability"
	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/values"
)

// Parse converts the bracketed input text into a value array.
func Parse(opts Options) (values.Array, error) {
	return values.Parse(opts.Input)
}

// Build parses opts.Input and reconstructs the structure it encodes.
func Build(ctx context.Context, opts Options) (*tree.Tree, error) {
	vals, err := Parse(opts)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Kind, len(vals))
	start := time.Now()

	t, err := tree.Build(vals, opts.TreeKind(), tree.Options{MaxChildren: opts.MaxChildren})

	count := 0
	if t != nil {
		count = t.NodeCount()
	}
	hooks.OnBuildComplete(ctx, opts.Kind, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// BuildFromGraph restores a structure previously written with tree.Export,
// as produced by `treeviz build`.
func BuildFromGraph(g graph.Graph) (*tree.Tree, error) {
	return tree.Parse(g)
}
