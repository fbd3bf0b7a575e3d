package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// buildCommand creates the build command, which reconstructs a structure
// and saves it for later layout.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		file   string
		output string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "build [array]",
		Short: "Reconstruct a structure and save it as graph JSON",
		Long: `Reconstruct a structure from a level-order array and save it as JSON.

The array is read from the argument, from --file, or from stdin when the
argument is "-" or missing. The resulting graph.json records every node,
absent slots included, so it can be laid out later with either visibility.

Example:
  treeviz build "[1, 2, 3, null, 4]" -o tree.graph.json
  treeviz build -k graph "[a, b, c, @0]"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			src, err := readSource(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts.Input = src.text
			return c.runBuild(cmd.Context(), opts, src, output)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "read the array from a file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.graph.json, - for stdout)")
	bindBuildFlags(cmd, &opts)

	return cmd
}

// runBuild builds the structure and writes it.
func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options, src source, output string) error {
	if err := opts.ValidateForBuild(); err != nil {
		return err
	}
	t, err := pipeline.Build(ctx, opts)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	g := t.Export()

	outputPath := output
	if outputPath == "" {
		outputPath = src.base + ".graph.json"
	}
	if outputPath == stdinMarker {
		return graph.WriteGraph(g, os.Stdout)
	}
	if err := graph.WriteGraphFile(g, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Built %s", t.Kind().Title())
	printFile(outputPath)
	printCounts(t.NodeCount(), t.EdgeCount())
	printNewline()
	printNextStep("Layout", appName+" layout "+outputPath)
	return nil
}
