package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCompletionCmd creates a custom completion command without powershell.
// newCompletionCmd 创建不含 powershell 的自定义补全命令。
func newCompletionCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell autocompletion script",
		Long: `Generate shell autocompletion script for urlstat.
生成 urlstat 的 shell 自动补全脚本。

Examples:
  urlstat completion bash > /etc/bash_completion.d/urlstat
  urlstat completion zsh  > "${fpath[1]}/_urlstat"
  urlstat completion fish > ~/.config/fish/completions/urlstat.fish`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", args[0])
			}
		},
	}
}
