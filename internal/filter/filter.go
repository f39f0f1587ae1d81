// Package filter decides which parsed records are admitted into the result set.
package filter

import "github.com/livp123/urlstat/internal/record"

// Filter admits or rejects a record. An error aborts the run.
type Filter interface {
	Allow(rec record.LogRecord) (bool, error)
}

// Chain admits a record only when every filter does. Nil entries are skipped.
type Chain []Filter

// NewChain builds a Chain from the non-nil filters given.
func NewChain(filters ...Filter) Chain {
	var c Chain
	for _, f := range filters {
		if f == nil || isNilFilter(f) {
			continue
		}
		c = append(c, f)
	}
	return c
}

func (c Chain) Allow(rec record.LogRecord) (bool, error) {
	for _, f := range c {
		ok, err := f.Allow(rec)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// isNilFilter catches typed nil pointers stored in the interface.
func isNilFilter(f Filter) bool {
	switch v := f.(type) {
	case *DateFilter:
		return v == nil
	case *ExprFilter:
		return v == nil
	}
	return false
}
