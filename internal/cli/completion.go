package cli

import "github.com/spf13/cobra"

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for parallelstacks.

To load completions:

Bash:
  $ source <(parallelstacks completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ parallelstacks completion bash > /etc/bash_completion.d/parallelstacks
  # macOS:
  $ parallelstacks completion bash > $(brew --prefix)/etc/bash_completion.d/parallelstacks

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ parallelstacks completion zsh > "${fpath[1]}/_parallelstacks"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ parallelstacks completion fish | source

  # To load completions for each session, execute once:
  $ parallelstacks completion fish > ~/.config/fish/completions/parallelstacks.fish

PowerShell:
  PS> parallelstacks completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> parallelstacks completion powershell > parallelstacks.ps1
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
