package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/c4render/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for c4render.

Bash:
  $ source <(c4render completion bash)

Zsh:
  $ c4render completion zsh > "${fpath[1]}/_c4render"

Fish:
  $ c4render completion fish > ~/.config/fish/completions/c4render.fish

PowerShell:
  PS> c4render completion powershell | Out-String | Invoke-Expression
`,
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
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// levelCompletions lists values for --level.
var levelCompletions = []string{
	"auto\tdetect from the document keys",
	"context\tC4 level 1",
	"container\tC4 level 2",
	"component\tC4 level 3",
	"code\tC4 level 4",
}

// registerFlagCompletions wires value completion for the shared --level and
// --format flags when cmd defines them.
func registerFlagCompletions(cmd *cobra.Command) {
	if cmd.Flags().Lookup("level") != nil {
		_ = cmd.RegisterFlagCompletionFunc("level", cobra.FixedCompletions(levelCompletions, cobra.ShellCompDirectiveNoFileComp))
	}
	if cmd.Flags().Lookup("format") != nil {
		formats := make([]string, len(render.Formats))
		for i, f := range render.Formats {
			formats[i] = string(f)
		}
		_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formats, cobra.ShellCompDirectiveNoFileComp))
	}
}
