package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// renderCommand creates the render command, a shortcut from array to output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		file       string
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [array]",
		Short: "Build, lay out and render an array in one step",
		Long: `Build, lay out and render an array in one step.

This is equivalent to running 'build', 'layout' and 'visualize' in sequence.
The array is read from the argument, from --file, or from stdin when the
argument is "-" or missing.

Example:
  treeviz render "[1, 2, 3, null, 4, 5]"
  treeviz render -k nary --max-children 2 "[1, 2, 3, 4, null, 5]" -f svg,ascii
  echo "[a, b, @0]" | treeviz render -k graph -f mermaid -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args, file, cmd.InOrStdin(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "read the array from a file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	bindBuildFlags(cmd, &opts)
	bindLayoutFlags(cmd, &opts)
	bindRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// runRender executes the complete pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, args []string, file string, stdin io.Reader, opts pipeline.Options, output string, noCache bool) error {
	src, err := readSource(args, file, stdin)
	if err != nil {
		return err
	}
	opts.Input = src.text
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		base:      src.base,
		output:    output,
	})
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.VisibleNodes, countVisible(result.Layout.Edges), result.CacheInfo.RenderHit)
	printNewline()
	printSummary(result.Layout.Summary)
	return nil
}
