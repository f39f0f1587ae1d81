package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/urlstat/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// Short: 显示版本信息
		Long: `Show the current version of urlstat`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "urlstat %s\n", version.Version)
		},
	}
}
