// Package record decodes JSON log lines into typed records.
package record

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap/zapcore"

	"github.com/livp123/urlstat/internal/metrics"
	"github.com/livp123/urlstat/internal/utils/logger"
	apperrors "github.com/livp123/urlstat/pkg/errors"
)

// LogRecord is one decoded log line.
type LogRecord struct {
	Timestamp    string  `json:"@timestamp"`
	URL          string  `json:"url"`
	ResponseTime float64 `json:"response_time"`
}

// wire mirrors LogRecord with pointers so absent fields can be told apart from zero values.
type wire struct {
	Timestamp    *string  `json:"@timestamp"`
	URL          *string  `json:"url"`
	ResponseTime *float64 `json:"response_time"`
}

var errInvalidUTF8 = errors.New("invalid UTF-8")

// SchemaPolicy selects what happens to a well-formed JSON line with a bad shape.
type SchemaPolicy string

const (
	// SchemaFatal aborts the run on the first schema error.
	SchemaFatal SchemaPolicy = "fatal"
	// SchemaSkip reports the line and skips it, like malformed JSON.
	SchemaSkip SchemaPolicy = "skip"
)

// Parse decodes a single raw line.
// Lines that are not valid UTF-8 JSON fail with ErrMalformedRecord; JSON that is not an
// object or misses/mistypes a required field fails with ErrSchema.
func Parse(line string) (LogRecord, error) {
	if !utf8.ValidString(line) {
		return LogRecord{}, apperrors.NewMalformedRecordError(strings.ToValidUTF8(strings.TrimSpace(line), "\uFFFD"), errInvalidUTF8)
	}
	raw := []byte(line)
	if !json.Valid(raw) {
		var v interface{}
		err := json.Unmarshal(raw, &v)
		return LogRecord{}, apperrors.NewMalformedRecordError(strings.TrimSpace(line), err)
	}

	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "(root)"
			}
			return LogRecord{}, apperrors.NewSchemaError(field, "expected "+typeErr.Type.String()+", got "+typeErr.Value)
		}
		return LogRecord{}, apperrors.NewSchemaError("(root)", err.Error())
	}

	switch {
	case w.Timestamp == nil:
		return LogRecord{}, apperrors.NewSchemaError("@timestamp", "missing")
	case w.URL == nil:
		return LogRecord{}, apperrors.NewSchemaError("url", "missing")
	case w.ResponseTime == nil:
		return LogRecord{}, apperrors.NewSchemaError("response_time", "missing")
	}

	return LogRecord{
		Timestamp:    *w.Timestamp,
		URL:          *w.URL,
		ResponseTime: *w.ResponseTime,
	}, nil
}

// Parser applies Parse to the lines of one file and reports the lines it drops.
type Parser struct {
	reporter logger.Reporter
	metrics  *metrics.Collector
	policy   SchemaPolicy
}

// NewParser creates a Parser. An empty policy means SchemaFatal.
func NewParser(reporter logger.Reporter, m *metrics.Collector, policy SchemaPolicy) *Parser {
	if reporter == nil {
		reporter = logger.NewReporter(nil)
	}
	if policy == "" {
		policy = SchemaFatal
	}
	return &Parser{reporter: reporter, metrics: m, policy: policy}
}

// ParseLine decodes line read from path.
// ok is false when the line was reported and skipped; err is non-nil only
// for failures that must abort the run.
func (p *Parser) ParseLine(path, line string) (rec LogRecord, ok bool, err error) {
	rec, err = Parse(line)
	if err == nil {
		p.metrics.Parsed()
		return rec, true, nil
	}

	if errors.Is(err, apperrors.ErrMalformedRecord) {
		p.metrics.Malformed()
		p.reporter.Report(zapcore.ErrorLevel, apperrors.ErrMalformedRecord.Error(),
			"path", path, "line", strings.TrimSpace(line))
		return LogRecord{}, false, nil
	}

	p.metrics.SchemaError()
	if p.policy == SchemaSkip {
		p.reporter.Report(zapcore.ErrorLevel, apperrors.ErrSchema.Error(),
			"path", path, "line", strings.TrimSpace(line), "error", err)
		return LogRecord{}, false, nil
	}
	return LogRecord{}, false, err
}
