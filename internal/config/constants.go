package config

const (
	// DefaultConfigPath is the standard location for the urlstat configuration file.
	// DefaultConfigPath 是 urlstat 配置文件的标准位置。
	DefaultConfigPath = "/etc/urlstat/config.yaml"

	// DefaultReportName is the label used when --report is not given.
	// DefaultReportName 是未指定 --report 时使用的报表名称。
	DefaultReportName = "average"

	// DefaultFormat is the report rendering used when none is configured.
	DefaultFormat = "grid"

	// Schema error policies / 结构错误处理策略
	SchemaErrorsFatal = "fatal"
	SchemaErrorsSkip  = "skip"
)
