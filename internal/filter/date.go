package filter

import (
	"time"

	"github.com/livp123/urlstat/internal/record"
	apperrors "github.com/livp123/urlstat/pkg/errors"
)

// ReportDateLayout is the --date format: year, then day, then month (YYYY-DD-MM).
// Day and month may be given with one or two digits.
// ReportDateLayout 是 --date 的格式：年-日-月，日和月可以是一位或两位数字。
const ReportDateLayout = "2006-2-1"

// timestampLayouts are the ISO-8601 forms accepted for record timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
	// basic format
	"20060102T150405.999999999Z07:00",
	"20060102T150405.999999999Z0700",
	"20060102T150405.999999999Z07",
	"20060102T150405.999999999",
	"20060102",
}

// DateFilter admits records whose timestamp falls on one calendar date.
type DateFilter struct {
	raw   string
	year  int
	month time.Month
	day   int
}

// NewDateFilter parses target in ReportDateLayout. An empty target returns a
// nil filter, which admits everything.
func NewDateFilter(target string) (*DateFilter, error) {
	if target == "" {
		return nil, nil
	}
	d, err := time.Parse(ReportDateLayout, target)
	if err != nil {
		return nil, apperrors.NewDateError(target, err)
	}
	return &DateFilter{raw: target, year: d.Year(), month: d.Month(), day: d.Day()}, nil
}

// Target returns the date string the filter was built from.
func (f *DateFilter) Target() string {
	if f == nil {
		return ""
	}
	return f.raw
}

// Match reports whether timestamp falls on the target date. The date is taken
// in the timestamp's own offset, time of day is ignored.
func (f *DateFilter) Match(timestamp string) (bool, error) {
	if f == nil {
		return true, nil
	}
	ts, err := ParseTimestamp(timestamp)
	if err != nil {
		return false, err
	}
	y, m, d := ts.Date()
	return y == f.year && m == f.month && d == f.day, nil
}

func (f *DateFilter) Allow(rec record.LogRecord) (bool, error) {
	return f.Match(rec.Timestamp)
}

// ParseTimestamp parses an ISO-8601 date or date-time, with or without offset.
func ParseTimestamp(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, apperrors.NewDateError(s, firstErr)
}
