// Package analyzer aggregates per-URL response-time statistics.
package analyzer

import (
	"math"
	"strconv"

	"github.com/livp123/urlstat/internal/record"
)

// UrlStat is the aggregate for one URL.
type UrlStat struct {
	TotalTime   float64 `json:"total_time"`
	Count       int     `json:"count"`
	AverageTime float64 `json:"average_time"`
}

// Row is one line of the report. ID is the URL's 0-based first-seen position.
type Row struct {
	ID          int     `json:"id"`
	URL         string  `json:"url"`
	TotalTime   float64 `json:"total_time"`
	AverageTime float64 `json:"average_time"`
}

// Stats maps URL to UrlStat and iterates in first-seen order.
type Stats struct {
	order []string
	byURL map[string]*UrlStat
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{byURL: make(map[string]*UrlStat)}
}

// Len returns the number of distinct URLs.
func (s *Stats) Len() int {
	return len(s.order)
}

// URLs returns the URLs in first-seen order.
func (s *Stats) URLs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns a copy of the stat for url.
func (s *Stats) Get(url string) (UrlStat, bool) {
	st, ok := s.byURL[url]
	if !ok {
		return UrlStat{}, false
	}
	return *st, true
}

// Rows returns the report rows in first-seen order.
func (s *Stats) Rows() []Row {
	rows := make([]Row, 0, len(s.order))
	for i, url := range s.order {
		st := s.byURL[url]
		rows = append(rows, Row{
			ID:          i,
			URL:         url,
			TotalTime:   st.TotalTime,
			AverageTime: st.AverageTime,
		})
	}
	return rows
}

// add accumulates an already rounded time for url.
func (s *Stats) add(url string, total float64, count int) {
	st, ok := s.byURL[url]
	if !ok {
		st = &UrlStat{}
		s.byURL[url] = st
		s.order = append(s.order, url)
	}
	st.TotalTime += total
	st.Count += count
}

// Merge folds the totals and counts of other into s. URLs new to s are
// appended in other's order. Averages are stale until Finalize runs again.
func (s *Stats) Merge(other *Stats) {
	if other == nil {
		return
	}
	for _, url := range other.order {
		st := other.byURL[url]
		s.add(url, st.TotalTime, st.Count)
	}
}

// Finalize derives AverageTime = Round3(TotalTime / Count) for every URL.
func (s *Stats) Finalize() *Stats {
	for _, st := range s.byURL {
		if st.Count > 0 {
			st.AverageTime = Round3(st.TotalTime / float64(st.Count))
		}
	}
	return s
}

// Aggregator is the single-writer accumulator of one run.
type Aggregator struct {
	stats *Stats
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{stats: NewStats()}
}

// Add rounds the record's response time to 3 decimals and accumulates it.
func (a *Aggregator) Add(rec record.LogRecord) {
	a.stats.add(rec.URL, Round3(rec.ResponseTime), 1)
}

// Finalize runs the averaging pass and returns the result.
func (a *Aggregator) Finalize() *Stats {
	return a.stats.Finalize()
}

// Aggregate is the batch form: accumulate every record, then derive averages.
func Aggregate(records []record.LogRecord) *Stats {
	a := NewAggregator()
	for _, rec := range records {
		a.Add(rec)
	}
	return a.Finalize()
}

// Round3 rounds v to 3 decimal places, ties to even on the exact binary value.
func Round3(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 3, 64), 64)
	if err != nil {
		return v
	}
	return r
}
