package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livp123/urlstat/internal/analyzer"
	"github.com/livp123/urlstat/internal/record"
	apperrors "github.com/livp123/urlstat/pkg/errors"
)

func sampleStats() *analyzer.Stats {
	return analyzer.Aggregate([]record.LogRecord{
		{URL: "/test", ResponseTime: 1.0},
		{URL: "/api/context/", ResponseTime: 0.1},
		{URL: "/test", ResponseTime: 2.0},
		{URL: "/api/context/", ResponseTime: 0.2},
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatGrid},
		{"grid", FormatGrid},
		{"PLAIN", FormatPlain},
		{" json ", FormatJSON},
		{"csv", FormatCSV},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFormat))
}

func TestRenderGrid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "average", sampleStats(), FormatGrid))
	out := buf.String()

	for _, col := range Columns {
		assert.Contains(t, out, col)
	}
	assert.Contains(t, out, "/test")
	assert.Contains(t, out, "1.5")
	assert.Contains(t, out, "0.3")
	assert.Less(t, strings.Index(out, "/test"), strings.Index(out, "/api/context/"))
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "average", sampleStats(), FormatPlain))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"id", "url", "total_time", "average_time"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "/test", "3", "1.5"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"1", "/api/context/", "0.3", "0.15"}, strings.Fields(lines[3]))
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "average", sampleStats(), FormatJSON))

	var doc struct {
		Report string         `json:"report"`
		Rows   []analyzer.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "average", doc.Report)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, analyzer.Row{ID: 0, URL: "/test", TotalTime: 3, AverageTime: 1.5}, doc.Rows[0])
	assert.Equal(t, 0.3, doc.Rows[1].TotalTime)
}

func TestRenderNonFiniteTotals(t *testing.T) {
	stats := analyzer.Aggregate([]record.LogRecord{
		{URL: "/big", ResponseTime: 1e308},
		{URL: "/big", ResponseTime: 1e308},
		{URL: "/ok", ResponseTime: 0.5},
	})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "average", stats, FormatJSON))
	assert.Contains(t, buf.String(), `"total_time": null`)
	assert.Contains(t, buf.String(), `"average_time": 0.5`)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	buf.Reset()
	require.NoError(t, Render(&buf, "average", stats, FormatCSV))
	assert.Contains(t, buf.String(), "0,/big,inf,inf\n")
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "average", sampleStats(), FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "url", "total_time", "average_time"},
		{"0", "/test", "3", "1.5"},
		{"1", "/api/context/", "0.3", "0.15"},
	}, records)
}

func TestRenderEmpty(t *testing.T) {
	expect := map[Format]string{
		FormatGrid:  "average_time",
		FormatPlain: "average_time",
		FormatJSON:  `"rows": []`,
		FormatCSV:   "id,url,total_time,average_time",
	}
	for f, want := range expect {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, "average", analyzer.NewStats(), f), f)
		assert.Contains(t, buf.String(), want, f)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, "average", sampleStats(), Format("xml"))
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFormat))
}
