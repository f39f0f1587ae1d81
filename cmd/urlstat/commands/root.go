package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/livp123/urlstat/internal/app"
	"github.com/livp123/urlstat/internal/config"
	"github.com/livp123/urlstat/internal/metrics"
	"github.com/livp123/urlstat/internal/record"
	"github.com/livp123/urlstat/internal/report"
	"github.com/livp123/urlstat/internal/runtime"
	"github.com/livp123/urlstat/internal/utils/logger"
	apperrors "github.com/livp123/urlstat/pkg/errors"
)

// analyzeOptions holds the flags of the root command.
// analyzeOptions 保存根命令的标志。
type analyzeOptions struct {
	files       []string
	reportName  string
	date        string
	where       string
	format      string
	metricsFile string
}

var RootCmd = NewRootCmd()

// NewRootCmd builds the urlstat command tree with fresh flag state.
// NewRootCmd 构建带有全新标志状态的 urlstat 命令树。
func NewRootCmd() *cobra.Command {
	opts := &analyzeOptions{}
	var cm *config.ConfigManager

	root := &cobra.Command{
		Use:   "urlstat --file <path> [<path> ...]",
		Short: "Per-URL response time report for JSON access logs",
		// Short: JSON 访问日志的按 URL 响应时间报表
		Long: `urlstat reads newline-delimited JSON access log records and reports,
for every URL, the request count, total and average response time.
urlstat 读取按行分隔的 JSON 访问日志，并按 URL 统计请求数、总响应时间与平均响应时间。`,
		Example: `  urlstat --file access.log
  urlstat --file a.log b.log --date 2024-02-01
  urlstat --file a.log --file b.log --where 'URL startsWith "/api"' --format json`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration to get logging settings
			// 加载配置以获取日志设置
			cm = config.NewConfigManager(runtime.ConfigPath)
			if err := cm.LoadConfig(); err != nil {
				return err
			}
			logger.Init(*cm.GetLoggingConfig())

			// Inject logger into context
			// 将 Logger 注入 Context
			cmd.SetContext(logger.WithContext(cmd.Context(), logger.Get(nil)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cm == nil {
				cm = config.NewConfigManager(runtime.ConfigPath)
				cm.UpdateConfig(config.Default())
			}
			return runAnalyze(cmd, opts, cm, args)
		},
	}

	flags := root.Flags()
	flags.StringArrayVar(&opts.files, "file", nil, "Log file to analyze (repeatable, further paths may follow as arguments)")
	flags.StringVar(&opts.reportName, "report", config.DefaultReportName, "Report label")
	flags.StringVar(&opts.date, "date", "", "Only count records on this date (YYYY-DD-MM)")
	flags.StringVar(&opts.where, "where", "", "Only count records matching this expression over URL, ResponseTime, Timestamp")
	flags.StringVar(&opts.format, "format", config.DefaultFormat, "Output format: grid, plain, json, csv")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write run counters in Prometheus text format to this path")

	// Config file path
	// 配置文件路径
	root.PersistentFlags().StringVarP(&runtime.ConfigPath, "config", "c", "", fmt.Sprintf("Path to configuration file (default: %s)", config.DefaultConfigPath))

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCompletionCmd(root))

	// Disable powershell completion
	// 禁用 powershell 补全
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}

/**
 * runAnalyze resolves flags over the configuration, executes the analysis run
 * and renders the report to the command output.
 * runAnalyze 以标志覆盖配置，执行分析并将报表输出到命令输出流。
 */
func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, cm *config.ConfigManager, args []string) error {
	reportCfg := cm.GetReportConfig()
	ctx := cmd.Context()
	flags := cmd.Flags()

	// Extra paths are only accepted after --file, never on their own.
	// 额外的路径只能跟在 --file 之后。
	files := append([]string{}, opts.files...)
	if flags.Changed("file") {
		files = append(files, args...)
	} else if len(args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", apperrors.ErrNoInputFiles, args)
	}

	reportName := reportCfg.Name
	if flags.Changed("report") || reportName == "" {
		reportName = opts.reportName
	}
	formatName := reportCfg.Format
	if flags.Changed("format") || formatName == "" {
		formatName = opts.format
	}
	metricsFile := cm.GetMetricsConfig().Textfile
	if flags.Changed("metrics-file") {
		metricsFile = opts.metricsFile
	}

	m := metrics.NewCollector()
	run, err := app.NewRun(app.Options{
		Files:        files,
		ReportName:   reportName,
		Date:         opts.date,
		Where:        opts.where,
		SchemaPolicy: record.SchemaPolicy(cm.GetParserConfig().SchemaErrors),
	}, logger.NewReporter(logger.Get(ctx)), m)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	stats, runErr := run.Execute(ctx)
	if err := m.WriteTextfile(metricsFile); err != nil {
		logger.Get(ctx).Warnf("Failed to write metrics to %s: %v", metricsFile, err)
	}
	if runErr != nil {
		return runErr
	}

	return report.Render(cmd.OutOrStdout(), reportName, stats, format)
}

func Execute() {
	defer func() { _ = logger.Sync() }()

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
