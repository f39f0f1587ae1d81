// Package report renders aggregated URL statistics.
// Package report 渲染按 URL 聚合的统计结果。
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/livp123/urlstat/internal/analyzer"
	"github.com/livp123/urlstat/internal/utils/fmtutil"
	apperrors "github.com/livp123/urlstat/pkg/errors"
)

// Format selects the rendering of a report.
type Format string

const (
	FormatGrid  Format = "grid"
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// Columns is the fixed column set of every report, in order.
var Columns = []string{"id", "url", "total_time", "average_time"}

// ParseFormat validates a format name. An empty name means FormatGrid.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatGrid, nil
	case FormatGrid, FormatPlain, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", apperrors.NewFormatError(name)
	}
}

// Render writes the report for stats to w. name is the report label and
// only appears in the JSON document.
func Render(w io.Writer, name string, stats *analyzer.Stats, format Format) error {
	rows := stats.Rows()
	switch format {
	case FormatGrid, "":
		return writeGrid(w, rows)
	case FormatPlain:
		return writePlain(w, rows)
	case FormatJSON:
		return writeJSON(w, name, rows)
	case FormatCSV:
		return writeCSV(w, rows)
	default:
		return apperrors.NewFormatError(string(format))
	}
}

func cells(row analyzer.Row) []string {
	return []string{
		strconv.Itoa(row.ID),
		row.URL,
		fmtutil.FormatSeconds(row.TotalTime),
		fmtutil.FormatSeconds(row.AverageTime),
	}
}

func writeGrid(w io.Writer, rows []analyzer.Row) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	for _, row := range rows {
		table.Append(cells(row))
	}
	table.Render()
	return nil
}

func writePlain(w io.Writer, rows []analyzer.Row) error {
	urlWidth := len("url")
	for _, row := range rows {
		if len(row.URL) > urlWidth {
			urlWidth = len(row.URL)
		}
	}

	line := fmt.Sprintf("%%-4s  %%-%ds  %%12s  %%12s\n", urlWidth)
	if _, err := fmt.Fprintf(w, line, "id", "url", "total_time", "average_time"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 4+2+urlWidth+2+12+2+12)); err != nil {
		return err
	}
	for _, row := range rows {
		c := cells(row)
		if _, err := fmt.Fprintf(w, line, c[0], c[1], c[2], c[3]); err != nil {
			return err
		}
	}
	return nil
}

type jsonReport struct {
	Report string    `json:"report"`
	Rows   []jsonRow `json:"rows"`
}

type jsonRow struct {
	ID          int         `json:"id"`
	URL         string      `json:"url"`
	TotalTime   jsonSeconds `json:"total_time"`
	AverageTime jsonSeconds `json:"average_time"`
}

// jsonSeconds encodes non-finite values, e.g. an overflowed total, as null.
type jsonSeconds float64

func (s jsonSeconds) MarshalJSON() ([]byte, error) {
	v := float64(s)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func writeJSON(w io.Writer, name string, rows []analyzer.Row) error {
	out := make([]jsonRow, len(rows))
	for i, row := range rows {
		out[i] = jsonRow{
			ID:          row.ID,
			URL:         row.URL,
			TotalTime:   jsonSeconds(analyzer.Round3(row.TotalTime)),
			AverageTime: jsonSeconds(row.AverageTime),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Report: name, Rows: out})
}

func writeCSV(w io.Writer, rows []analyzer.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(cells(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
