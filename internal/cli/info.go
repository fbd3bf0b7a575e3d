package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// infoCommand creates the info command, which prints the summary of a
// structure or the detail record of one node.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		file    string
		node    int
		asJSON  bool
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "info [array | graph.json]",
		Short: "Summarize a structure or describe one node",
		Long: `Summarize a structure or describe one node.

Without --node, prints the kind, input length, visible node count, depth
and cycle count. With --node N, prints the value, children and position of
the node at array index N.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			if !cmd.Flags().Changed("node") {
				node = -1
			}
			return c.runInfo(cmd.Context(), args, file, cmd.InOrStdin(), opts, node, asJSON, noCache)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "read the array from a file")
	cmd.Flags().IntVarP(&node, "node", "n", 0, "array index of the node to describe")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	bindBuildFlags(cmd, &opts)
	bindLayoutFlags(cmd, &opts)

	return cmd
}

// runInfo lays out the structure and prints the requested view.
func (c *CLI) runInfo(ctx context.Context, args []string, file string, stdin io.Reader, opts pipeline.Options, node int, asJSON, noCache bool) error {
	l, err := c.computeLayout(ctx, args, file, stdin, opts, noCache)
	if err != nil {
		return err
	}

	if node < 0 {
		if asJSON {
			return printJSON(l.Summary)
		}
		printSummary(l.Summary)
		return nil
	}

	info, ok := l.NodeInfo(node)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no visible node at index %d", node)
	}
	if asJSON {
		return printJSON(info)
	}
	fmt.Println(info.String())
	return nil
}

// computeLayout resolves the input and lays it out through the cache.
func (c *CLI) computeLayout(ctx context.Context, args []string, file string, stdin io.Reader, opts pipeline.Options, noCache bool) (graph.Layout, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	t, _, err := c.resolveTree(ctx, runner, args, file, stdin, &opts)
	if err != nil {
		return graph.Layout{}, err
	}
	return runner.GenerateLayout(ctx, t, opts)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
