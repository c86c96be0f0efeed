package cli

import (
	"github.com/spf13/cobra"
)

// completionShells lists the shells cobra can generate scripts for.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a shell completion script. Seed keys and the
// --read/--format values complete as well as subcommands.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for bash, zsh, fish or powershell.

Completions cover subcommands, flags, seed keys (--seed, seeds show) and the
fixed values of wrap --read and --format.`,
		Example: `  source <(kryptos completion bash)
  kryptos completion zsh > "${fpath[1]}/_kryptos"
  kryptos completion fish > ~/.config/fish/completions/kryptos.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
