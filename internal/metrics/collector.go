package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// File read outcomes used as the "status" label of urlstat_files_total.
const (
	FileOK       = "ok"
	FileNotFound = "not_found"
	FileError    = "error"
)

// Collector holds the counters of a single analysis run.
// Every method is safe to call on a nil *Collector.
// Collector 保存单次分析运行的计数器，nil 接收者上的方法调用是安全的。
type Collector struct {
	registry *prometheus.Registry

	Files           *prometheus.CounterVec
	LinesRead       prometheus.Counter
	RecordsParsed   prometheus.Counter
	MalformedLines  prometheus.Counter
	SchemaErrors    prometheus.Counter
	RecordsFiltered prometheus.Counter
	RecordsRetained prometheus.Counter
	URLs            prometheus.Gauge
}

// NewCollector registers the run counters on a fresh registry.
// NewCollector 在新的注册表上注册运行计数器。
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		Files: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urlstat_files_total",
				Help: "Input files processed, by read outcome",
			},
			[]string{"status"},
		),
		LinesRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "urlstat_lines_read_total",
			Help: "Raw lines read from input files",
		}),
		RecordsParsed: factory.NewCounter(prometheus.CounterOpts{
			Name: "urlstat_records_parsed_total",
			Help: "Lines decoded into log records",
		}),
		MalformedLines: factory.NewCounter(prometheus.CounterOpts{
			Name: "urlstat_malformed_lines_total",
			Help: "Lines skipped because they are not valid JSON",
		}),
		SchemaErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "urlstat_schema_errors_total",
			Help: "JSON lines missing or mistyping a required field",
		}),
		RecordsFiltered: factory.NewCounter(prometheus.CounterOpts{
			Name: "urlstat_records_filtered_total",
			Help: "Records rejected by the date or expression filter",
		}),
		RecordsRetained: factory.NewCounter(prometheus.CounterOpts{
			Name: "urlstat_records_retained_total",
			Help: "Records admitted into the result set",
		}),
		URLs: factory.NewGauge(prometheus.GaugeOpts{
			Name: "urlstat_urls",
			Help: "Distinct URLs in the report",
		}),
	}
}

// Registry exposes the underlying registry as a Gatherer.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) FileRead(status string, lines int) {
	if c == nil {
		return
	}
	c.Files.WithLabelValues(status).Inc()
	c.LinesRead.Add(float64(lines))
}

func (c *Collector) Parsed() {
	if c != nil {
		c.RecordsParsed.Inc()
	}
}

func (c *Collector) Malformed() {
	if c != nil {
		c.MalformedLines.Inc()
	}
}

func (c *Collector) SchemaError() {
	if c != nil {
		c.SchemaErrors.Inc()
	}
}

func (c *Collector) Filtered() {
	if c != nil {
		c.RecordsFiltered.Inc()
	}
}

func (c *Collector) Retained() {
	if c != nil {
		c.RecordsRetained.Inc()
	}
}

func (c *Collector) SetURLs(n int) {
	if c != nil {
		c.URLs.Set(float64(n))
	}
}

// WriteTextfile writes the current counters in Prometheus text format,
// suitable for the node_exporter textfile collector.
// WriteTextfile 以 Prometheus 文本格式写出当前计数器。
func (c *Collector) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.Registry())
}
