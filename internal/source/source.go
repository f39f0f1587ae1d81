// Package source turns input file paths into raw log lines.
package source

import (
	"errors"
	"os"

	"go.uber.org/zap/zapcore"

	"github.com/livp123/urlstat/internal/metrics"
	"github.com/livp123/urlstat/internal/utils/fileutil"
	"github.com/livp123/urlstat/internal/utils/logger"
	apperrors "github.com/livp123/urlstat/pkg/errors"
)

// Source reads input files once, fully and synchronously.
// Read failures are reported and absorbed: the file contributes no lines.
type Source struct {
	reporter logger.Reporter
	metrics  *metrics.Collector
}

// New creates a Source. A nil reporter falls back to the global logger.
func New(reporter logger.Reporter, m *metrics.Collector) *Source {
	if reporter == nil {
		reporter = logger.NewReporter(nil)
	}
	return &Source{reporter: reporter, metrics: m}
}

// Lines returns the raw lines of path, terminators included, or an empty
// slice when the file cannot be read.
func (s *Source) Lines(path string) []string {
	lines, err := Read(path)
	if err != nil {
		if errors.Is(err, apperrors.ErrFileNotFound) {
			s.reporter.Report(zapcore.ErrorLevel, apperrors.ErrFileNotFound.Error(), "path", path)
			s.metrics.FileRead(metrics.FileNotFound, 0)
		} else {
			s.reporter.Report(zapcore.ErrorLevel, apperrors.ErrFileAccess.Error(), "path", path, "error", err)
			s.metrics.FileRead(metrics.FileError, 0)
		}
		return []string{}
	}
	s.metrics.FileRead(metrics.FileOK, len(lines))
	return lines
}

// Read is the unguarded form of Lines: it returns the underlying error
// wrapped in ErrFileNotFound or ErrFileAccess.
func Read(path string) ([]string, error) {
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewFileError(path, err)
		}
		return nil, apperrors.NewFileAccessError(path, err)
	}
	return lines, nil
}
