package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/livp123/urlstat/internal/record"
	apperrors "github.com/livp123/urlstat/pkg/errors"
)

// Env is the environment a --where expression is evaluated against.
// Example: `ResponseTime > 0.5 && URL startsWith "/api"`.
type Env struct {
	URL          string
	ResponseTime float64
	Timestamp    string
}

// ExprFilter admits records for which a compiled boolean expression holds.
type ExprFilter struct {
	src     string
	program *vm.Program
}

// NewExprFilter compiles src. An empty src returns a nil filter.
func NewExprFilter(src string) (*ExprFilter, error) {
	if src == "" {
		return nil, nil
	}
	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, apperrors.NewExpressionError(src, err)
	}
	return &ExprFilter{src: src, program: program}, nil
}

// Source returns the expression text.
func (f *ExprFilter) Source() string {
	if f == nil {
		return ""
	}
	return f.src
}

func (f *ExprFilter) Allow(rec record.LogRecord) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, err := expr.Run(f.program, Env{
		URL:          rec.URL,
		ResponseTime: rec.ResponseTime,
		Timestamp:    rec.Timestamp,
	})
	if err != nil {
		return false, apperrors.NewExpressionError(f.src, err)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, apperrors.NewExpressionError(f.src, fmt.Errorf("result is %T, not bool", out))
	}
	return matched, nil
}
