package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/layout"
	"github.com/matzehuels/treeviz/pkg/observability"
	"github.com/matzehuels/treeviz/pkg/tree"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout positions t and exports the result in the serialization
// format every renderer consumes. The layout records opts.Style so a saved
// layout renders the same way later.
func GenerateLayout(ctx context.Context, t *tree.Tree, opts Options) (graph.Layout, error) {
	hooks := observability.Pipeline()
	nodes := 0
	if t != nil {
		nodes = t.NodeCount()
	}
	hooks.OnLayoutStart(ctx, opts.Kind, nodes)
	start := time.Now()

	res, err := layout.New(opts.Geometry).Layout(t, layout.Policy{ShowAbsent: opts.ShowAbsent})
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.Kind, 0, time.Since(start), err)
		return graph.Layout{}, err
	}

	hooks.OnLayoutComplete(ctx, opts.Kind, len(res.Nodes), time.Since(start), nil)
	return res.Export(opts.Style), nil
}
