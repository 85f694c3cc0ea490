package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphbin/pkg/pipeline"
)

// Flag values offered by shell completion.
var (
	emitCompletions   = []string{string(pipeline.OutputBinEdge), string(pipeline.OutputBinAdj), string(pipeline.OutputAdjList), string(pipeline.OutputEdgeList)}
	formatCompletions = []string{"snap", "metis"}
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for graphbin.

To load completions:

Bash:
  $ source <(graphbin completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ graphbin completion bash > /etc/bash_completion.d/graphbin
  # macOS:
  $ graphbin completion bash > $(brew --prefix)/etc/bash_completion.d/graphbin

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ graphbin completion zsh > "${fpath[1]}/_graphbin"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ graphbin completion fish | source

  # To load completions for each session, execute once:
  $ graphbin completion fish > ~/.config/fish/completions/graphbin.fish

PowerShell:
  PS> graphbin completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> graphbin completion powershell > graphbin.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completeValues registers a fixed list of completions for flag on cmd.
func completeValues(cmd *cobra.Command, flag string, values []string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}
