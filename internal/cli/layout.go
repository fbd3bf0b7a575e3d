package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/pipeline"
	"github.com/matzehuels/treeviz/pkg/tree"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		file    string
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [array | graph.json]",
		Short: "Compute node positions and save them as layout JSON",
		Long: `Compute node positions and save them as layout JSON.

The input is either a level-order array or a graph.json file produced by
'build'. The output layout.json holds the canvas size, every visible node
with its coordinates, and every edge. Render it with 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runLayout(cmd.Context(), args, file, cmd.InOrStdin(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "read the array from a file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().StringVar(&opts.Style, "style", pipeline.DefaultStyle, "visual style recorded in the layout: simple (default), dark")
	bindBuildFlags(cmd, &opts)
	registerRenderCompletion(cmd, false)
	bindLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout resolves the structure, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, args []string, file string, stdin io.Reader, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	t, src, err := c.resolveTree(ctx, runner, args, file, stdin, &opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %s...", t.Kind().Title()))
	spinner.Start()

	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, t, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = src.base + ".layout.json"
	}
	if outputPath == stdinMarker {
		data, err := graph.MarshalLayout(l)
		if err != nil {
			return err
		}
		return writeFile(outputPath, data)
	}
	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Nodes), countVisible(l.Edges), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// resolveTree builds the structure named by the command's input. A graph.json
// argument is restored as saved and its kind replaces opts.Kind.
func (c *CLI) resolveTree(ctx context.Context, runner *pipeline.Runner, args []string, file string, stdin io.Reader, opts *pipeline.Options) (*tree.Tree, source, error) {
	if file == "" && len(args) == 1 && isGraphFile(args[0]) {
		g, err := graph.ReadGraphFile(args[0])
		if err != nil {
			return nil, source{}, fmt.Errorf("load graph %s: %w", args[0], err)
		}
		t, err := pipeline.BuildFromGraph(g)
		if err != nil {
			return nil, source{}, fmt.Errorf("load graph %s: %w", args[0], err)
		}
		opts.Kind = string(t.Kind())
		c.Logger.Debug("loaded graph", "path", args[0], "nodes", t.NodeCount())
		return t, source{base: trimExt(trimExt(args[0]))}, nil
	}

	src, err := readSource(args, file, stdin)
	if err != nil {
		return nil, source{}, err
	}
	opts.Input = src.text
	t, err := runner.Build(ctx, *opts)
	if err != nil {
		return nil, source{}, err
	}
	return t, src, nil
}

// countVisible returns how many edges a renderer draws.
func countVisible(edges []graph.Edge) int {
	n := 0
	for _, e := range edges {
		if e.Visible() {
			n++
		}
	}
	return n
}
