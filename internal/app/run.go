package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/livp123/urlstat/internal/analyzer"
	"github.com/livp123/urlstat/internal/filter"
	"github.com/livp123/urlstat/internal/metrics"
	"github.com/livp123/urlstat/internal/record"
	"github.com/livp123/urlstat/internal/source"
	"github.com/livp123/urlstat/internal/utils/fmtutil"
	"github.com/livp123/urlstat/internal/utils/logger"
	apperrors "github.com/livp123/urlstat/pkg/errors"
)

// Options describes one analysis run.
// Options 描述一次分析运行。
type Options struct {
	ID           string // run identifier, generated when empty
	Files        []string
	ReportName   string
	Date         string // YYYY-DD-MM, empty disables the date filter
	Where        string // expr predicate over URL, ResponseTime, Timestamp
	SchemaPolicy record.SchemaPolicy
}

// Run is the transient state of one analysis: inputs, retained records and stats.
// Run 是一次分析的临时状态：输入、保留的记录以及统计结果。
type Run struct {
	ID         string
	Files      []string
	ReportName string
	Date       string

	Results []record.LogRecord
	Stats   *analyzer.Stats

	reporter logger.Reporter
	metrics  *metrics.Collector
	source   *source.Source
	parser   *record.Parser
	date     *filter.DateFilter
	where    *filter.ExprFilter
	filter   filter.Filter
}

/**
 * NewRun validates the options before any file is touched.
 * It fails with ErrNoInputFiles when no file is given, and with ErrDateParse or
 * ErrInvalidExpression when a filter cannot be built.
 * NewRun 在读取任何文件之前校验参数。
 */
func NewRun(opts Options, reporter logger.Reporter, m *metrics.Collector) (*Run, error) {
	if len(opts.Files) == 0 {
		return nil, apperrors.ErrNoInputFiles
	}
	if reporter == nil {
		reporter = logger.NewReporter(nil)
	}

	dateFilter, err := filter.NewDateFilter(opts.Date)
	if err != nil {
		return nil, err
	}
	exprFilter, err := filter.NewExprFilter(opts.Where)
	if err != nil {
		return nil, err
	}

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	files := make([]string, len(opts.Files))
	copy(files, opts.Files)

	return &Run{
		ID:         id,
		Files:      files,
		ReportName: opts.ReportName,
		Date:       opts.Date,
		Results:    []record.LogRecord{},
		reporter:   reporter,
		metrics:    m,
		source:     source.New(reporter, m),
		parser:     record.NewParser(reporter, m, opts.SchemaPolicy),
		date:       dateFilter,
		where:      exprFilter,
		filter:     filter.NewChain(dateFilter, exprFilter),
	}, nil
}

/**
 * ParseLogs reads every file in order and appends the records that parse and
 * pass the filters to Results. Unreadable files and malformed lines are
 * reported and skipped; schema, date and expression errors abort the run.
 * ParseLogs 按顺序读取所有文件，将解析成功且通过过滤的记录追加到 Results。
 */
func (r *Run) ParseLogs() error {
	for _, path := range r.Files {
		for _, line := range r.source.Lines(path) {
			rec, ok, err := r.parser.ParseLine(path, line)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			allowed, err := r.filter.Allow(rec)
			if err != nil {
				return err
			}
			if !allowed {
				r.metrics.Filtered()
				continue
			}
			r.metrics.Retained()
			r.Results = append(r.Results, rec)
		}
	}
	return nil
}

// AnalyzeURLs aggregates Results into Stats.
// AnalyzeURLs 将 Results 聚合为 Stats。
func (r *Run) AnalyzeURLs() *analyzer.Stats {
	r.Stats = analyzer.Aggregate(r.Results)
	r.metrics.SetURLs(r.Stats.Len())
	return r.Stats
}

// Execute runs ParseLogs then AnalyzeURLs and logs a summary.
// Execute 依次执行 ParseLogs 与 AnalyzeURLs 并记录摘要日志。
func (r *Run) Execute(ctx context.Context) (*analyzer.Stats, error) {
	log := logger.Get(ctx)
	start := time.Now()

	log.Debugw("Analysis started",
		"run", r.ID,
		"files", r.Files,
		"report", r.ReportName,
		"date", r.date.Target(),
		"where", r.where.Source(),
	)
	if err := r.ParseLogs(); err != nil {
		return nil, err
	}
	stats := r.AnalyzeURLs()

	log.Infow("Analysis finished",
		"run", r.ID,
		"records", fmtutil.FormatNumberWithComma(uint64(len(r.Results))),
		"urls", stats.Len(),
		"elapsed", fmtutil.FormatDuration(time.Since(start)),
	)
	return stats, nil
}
