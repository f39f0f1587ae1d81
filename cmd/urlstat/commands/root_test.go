package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livp123/urlstat/internal/config"
	apperrors "github.com/livp123/urlstat/pkg/errors"
)

// executeCommand executes a cobra command and returns output.
// executeCommand 执行 cobra 命令并返回输出。
func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// testConfig writes a default configuration into a temp dir so the tests never read /etc.
// testConfig 在临时目录写入默认配置，测试不会读取 /etc。
func testConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.SaveGlobalConfig(path, config.Default()))
	return path
}

func writeLog(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600))
	return path
}

const (
	lineA1 = `{"@timestamp": "2024-01-01T12:00:00", "url": "/test", "response_time": 1.0}`
	lineA2 = `{"@timestamp": "2024-01-01T12:01:00", "url": "/test", "response_time": 2.0}`
	lineB  = `{"@timestamp": "2024-01-02T08:00:00", "url": "/other", "response_time": 0.25}`
)

// TestRootCommandHelp tests root command help output.
// TestRootCommandHelp 测试根命令帮助输出。
func TestRootCommandHelp(t *testing.T) {
	output, err := executeCommand(NewRootCmd(), "--help")
	assert.NoError(t, err)
	assert.Contains(t, output, "urlstat")
	assert.Contains(t, output, "--file")
	assert.Contains(t, output, "--date")
	assert.Contains(t, output, "Available Commands:")
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand(NewRootCmd(), "version", "-c", testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "urlstat dev\n", output)
}

func TestAnalyzeGrid(t *testing.T) {
	path := writeLog(t, "test_log.json", lineA1, lineA2)

	output, err := executeCommand(NewRootCmd(), "--file", path, "-c", testConfig(t))
	require.NoError(t, err)
	assert.Contains(t, output, "average_time")
	assert.Contains(t, output, "/test")
	assert.Contains(t, output, "1.5")
	assert.Contains(t, output, "+")
}

func TestAnalyzeJSON(t *testing.T) {
	path := writeLog(t, "test_log.json", lineA1, lineA2, lineB)

	output, err := executeCommand(NewRootCmd(), "--file", path, "--format", "json", "--report", "latency", "-c", testConfig(t))
	require.NoError(t, err)
	assert.Contains(t, output, `"report": "latency"`)
	assert.Contains(t, output, `"url": "/test"`)
	assert.Contains(t, output, `"average_time": 1.5`)
	assert.Less(t, strings.Index(output, "/test"), strings.Index(output, "/other"))
}

func TestAnalyzeFileForms(t *testing.T) {
	a := writeLog(t, "a.json", lineA1)
	b := writeLog(t, "b.json", lineA2)
	c := writeLog(t, "c.json", lineB)
	cfg := testConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{"Positional", []string{"--file", a, b, c}},
		{"Repeated", []string{"--file", a, "--file", b, "--file", c}},
		{"Mixed", []string{"--file", a, b, "--file", c}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--format", "csv", "-c", cfg)
			output, err := executeCommand(NewRootCmd(), args...)
			require.NoError(t, err)
			assert.Equal(t, "id,url,total_time,average_time\n0,/test,3,1.5\n1,/other,0.25,0.25\n", output)
		})
	}
}

func TestAnalyzeCommaInPath(t *testing.T) {
	path := writeLog(t, "a,b.json", lineA1, lineA2)

	output, err := executeCommand(NewRootCmd(), "--file", path, "--format", "csv", "-c", testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "id,url,total_time,average_time\n0,/test,3,1.5\n", output)
}

func TestAnalyzeDateFilter(t *testing.T) {
	path := writeLog(t, "test_log.json", lineA1, lineA2, lineB)

	output, err := executeCommand(NewRootCmd(), "--file", path, "--date", "2024-02-01", "--format", "csv", "-c", testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "id,url,total_time,average_time\n0,/other,0.25,0.25\n", output)
}

func TestAnalyzeErrors(t *testing.T) {
	path := writeLog(t, "test_log.json", lineA1)
	cfg := testConfig(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"NoFiles", []string{"-c", cfg}, apperrors.ErrNoInputFiles},
		{"NoFlagPositionalOnly", []string{path, "-c", cfg}, apperrors.ErrNoInputFiles},
		{"NoFilesBadDate", []string{"--date", "nope", "-c", cfg}, apperrors.ErrNoInputFiles},
		{"BadDate", []string{"--file", path, "--date", "01-01-2024", "-c", cfg}, apperrors.ErrDateParse},
		{"BadWhere", []string{"--file", path, "--where", "URL ==", "-c", cfg}, apperrors.ErrInvalidExpression},
		{"BadFormat", []string{"--file", path, "--format", "xml", "-c", cfg}, apperrors.ErrUnsupportedFormat},
		{"MissingConfig", []string{"--file", path, "-c", filepath.Join(t.TempDir(), "none.yaml")}, apperrors.ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeCommand(NewRootCmd(), tt.args...)
			assert.ErrorIs(t, err, tt.want)
			assert.NotContains(t, output, "average_time")
		})
	}
}

func TestAnalyzeMissingFileStillReports(t *testing.T) {
	path := writeLog(t, "test_log.json", lineA1)

	output, err := executeCommand(NewRootCmd(), "--file", filepath.Join(t.TempDir(), "gone.json"), path, "--format", "csv", "-c", testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "id,url,total_time,average_time\n0,/test,1,1\n", output)
}

func TestAnalyzeMetricsFile(t *testing.T) {
	path := writeLog(t, "test_log.json", lineA1, "garbage", lineA2)
	metricsPath := filepath.Join(t.TempDir(), "urlstat.prom")

	_, err := executeCommand(NewRootCmd(), "--file", path, "--metrics-file", metricsPath, "-c", testConfig(t))
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "urlstat_records_retained_total 2")
	assert.Contains(t, text, "urlstat_malformed_lines_total 1")
	assert.Contains(t, text, `urlstat_files_total{status="ok"} 1`)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etc", "config.yaml")

	output, err := executeCommand(NewRootCmd(), "init", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, output, path)

	cfg, err := config.LoadGlobalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = executeCommand(NewRootCmd(), "init", "-c", path)
	assert.Error(t, err)

	_, err = executeCommand(NewRootCmd(), "init", "-c", path, "--force")
	assert.NoError(t, err)
}

func TestCompletionCommand(t *testing.T) {
	output, err := executeCommand(NewRootCmd(), "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, output, "urlstat")

	_, err = executeCommand(NewRootCmd(), "completion", "powershell")
	assert.Error(t, err)
}
