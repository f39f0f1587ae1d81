package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/urlstat/internal/config"
	"github.com/livp123/urlstat/internal/runtime"
	"github.com/livp123/urlstat/internal/utils/fileutil"
)

// newInitCmd writes the default configuration file.
// newInitCmd 写入默认配置文件。
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration",
		// Short: 初始化配置
		Long: `Write the default configuration to the --config path (default: /etc/urlstat/config.yaml)`,
		Args: cobra.NoArgs,
		// The config file may not exist yet, skip loading it.
		// 配置文件可能尚不存在，跳过加载。
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			cm := config.NewConfigManager(runtime.ConfigPath)
			path := cm.GetConfigPath()
			if fileutil.Exists(path) && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			cm.UpdateConfig(config.Default())
			if err := cm.SaveConfig(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")
	return cmd
}
