package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/livp123/urlstat/internal/utils/fileutil"
	"github.com/livp123/urlstat/internal/utils/logger"
	apperrors "github.com/livp123/urlstat/pkg/errors"
)

// GlobalConfig is the top-level urlstat configuration.
// GlobalConfig 是 urlstat 的顶层配置。
type GlobalConfig struct {
	Logging logger.LoggingConfig `yaml:"logging"`
	Report  ReportConfig         `yaml:"report"`
	Parser  ParserConfig         `yaml:"parser"`
	Metrics MetricsConfig        `yaml:"metrics"`
}

// ReportConfig controls report labelling and rendering.
// ReportConfig 控制报表名称与渲染格式。
type ReportConfig struct {
	Name   string `yaml:"name"`
	Format string `yaml:"format"` // grid, plain, json, csv
}

// ParserConfig controls record decoding.
// ParserConfig 控制日志记录解析。
type ParserConfig struct {
	// SchemaErrors is "fatal" (abort the run) or "skip" (report and drop the line).
	SchemaErrors string `yaml:"schema_errors"`
}

// MetricsConfig controls the export of run counters.
// MetricsConfig 控制运行计数器的导出。
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // Prometheus textfile output path, empty disables it
}

// Default returns the configuration used when no file is present.
// Default 返回没有配置文件时使用的默认配置。
func Default() *GlobalConfig {
	return &GlobalConfig{
		Logging: logger.LoggingConfig{
			Enabled:    false,
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
		},
		Report: ReportConfig{
			Name:   DefaultReportName,
			Format: DefaultFormat,
		},
		Parser: ParserConfig{
			SchemaErrors: SchemaErrorsFatal,
		},
	}
}

// LoadGlobalConfig reads path over the defaults and validates the result.
// LoadGlobalConfig 在默认配置之上读取 path 并校验结果。
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	data, err := os.ReadFile(safePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.NewConfigError("yaml", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when the file does not exist.
// An explicitly requested path that is missing is still an error.
// LoadOrDefault 加载 path，文件不存在时回退到默认配置；显式指定但不存在的路径仍然报错。
func LoadOrDefault(path string, explicit bool) (*GlobalConfig, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	cfg, err := LoadGlobalConfig(path)
	if errors.Is(err, apperrors.ErrConfigNotFound) && !explicit {
		return Default(), nil
	}
	return cfg, err
}

// SaveGlobalConfig writes cfg to path atomically.
// SaveGlobalConfig 以原子方式将配置写入 path。
func SaveGlobalConfig(path string, cfg *GlobalConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return fileutil.AtomicWriteFile(path, data, 0600)
}

// Validate checks enumerated fields.
// Validate 校验枚举类型的字段。
func (c *GlobalConfig) Validate() error {
	switch strings.ToLower(c.Report.Format) {
	case "", "grid", "plain", "json", "csv":
	default:
		return apperrors.NewConfigError("report.format", c.Report.Format)
	}
	switch c.Parser.SchemaErrors {
	case "", SchemaErrorsFatal, SchemaErrorsSkip:
	default:
		return apperrors.NewConfigError("parser.schema_errors", c.Parser.SchemaErrors)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return apperrors.NewConfigError("logging.level", c.Logging.Level)
	}
	return nil
}
