package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/pipeline"
	"github.com/matzehuels/treeviz/pkg/tree"
)

// completionCommand prints a completion script for the named shell.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for treeviz.

Besides subcommands and flags, the scripts complete the values of --kind,
--style and --format.

  $ source <(treeviz completion bash)
  $ treeviz completion zsh > "${fpath[1]}/_treeviz"
  $ treeviz completion fish > ~/.config/fish/completions/treeviz.fish
  PS> treeviz completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeValues offers a fixed set of flag values.
func completeValues(vals ...string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return vals, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerKindCompletion completes --kind with the structure kinds.
func registerKindCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("kind", completeValues(
		string(tree.KindBinary), string(tree.KindNary), string(tree.KindGraph)))
}

// registerRenderCompletion completes --format and --style.
func registerRenderCompletion(cmd *cobra.Command, formats bool) {
	if formats {
		_ = cmd.RegisterFlagCompletionFunc("format", completeValues(pipeline.Formats...))
	}
	_ = cmd.RegisterFlagCompletionFunc("style", completeValues(graph.StyleSimple, graph.StyleDark))
}
