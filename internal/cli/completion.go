package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for springboard.

Besides commands and flags, the scripts complete render formats
(-f svg,p<TAB>), background colors, and .toml paths for --config, --script
and the simulate argument.

Bash:
  $ source <(springboard completion bash)

Zsh:
  $ springboard completion zsh > "${fpath[1]}/_springboard"

Fish:
  $ springboard completion fish > ~/.config/fish/completions/springboard.fish

PowerShell:
  PS> springboard completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// =============================================================================
// Completion functions
// =============================================================================

// namedBackgrounds are suggested for --background. Any "#rrggbb" is accepted.
var namedBackgrounds = []string{
	"#000000\twatch black",
	"#1c1c1e\tdark gray",
	"#ffffff\twhite",
}

// completeTOML restricts file completion to .toml files.
func completeTOML(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeScriptArg completes the single script argument of simulate.
func completeScriptArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeTOML(cmd, args, toComplete)
}

// completeFormats completes a comma-separated format list. Formats already
// listed are not offered again.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	used := make(map[string]bool)
	if prefix != "" {
		for _, f := range parseFormats(prefix) {
			used[f] = true
		}
	}

	var out []string
	for f := range validFormats {
		if !used[f] {
			out = append(out, prefix+f)
		}
	}
	sort.Strings(out)
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func completeBackground(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return namedBackgrounds, cobra.ShellCompDirectiveNoFileComp
}
