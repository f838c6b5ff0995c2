package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRow defines a simple test data structure
type TestRow struct {
	ID    int64  `parquet:"id"`
	Name  string `parquet:"name"`
	Major string `parquet:"major"`
}

// createTestParquetFile creates a parquet file with test data in dir
func createTestParquetFile(t *testing.T, dir, filename string, rows []TestRow) string {
	t.Helper()
	testFile := filepath.Join(dir, filename)

	f, err := os.Create(testFile)
	require.NoError(t, err)

	writer := parquet.NewGenericWriter[TestRow](f)
	_, err = writer.Write(rows)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, f.Close())

	return testFile
}

// setup runs the test from an empty directory with no config files or
// ROWSQL_* variables in effect.
func setup(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	prevWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	t.Setenv("HOME", t.TempDir())
	homedir.DisableCache = true
	for _, key := range []string{"ROWSQL_SOURCE", "ROWSQL_TABLE", "ROWSQL_FORMAT", "ROWSQL_LOG_LEVEL", "ROWSQL_LOG_FORMAT", "ROWSQL_NO_COLOR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), append([]string{"--no-color"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func decodeLines(t *testing.T, out string) []map[string]string {
	t.Helper()

	var rows []map[string]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var row map[string]string
		require.NoError(t, json.Unmarshal([]byte(line), &row))
		rows = append(rows, row)
	}
	return rows
}

func TestExecute_SampleTable(t *testing.T) {
	setup(t)

	res := runCLI(t, "", "SELECT name FROM student WHERE major = 'CS'")

	assert.Equal(t, exitValid, res.code)
	assert.Equal(t, []map[string]string{{"name": "Alice"}, {"name": "Charlie"}}, decodeLines(t, res.stdout))
	assert.Contains(t, res.stderr, "Query Output:")
	assert.Contains(t, res.stderr, "2 row(s) returned.")
	assert.Contains(t, res.stderr, "Query is correct")
}

func TestExecute_InvalidQuery(t *testing.T) {
	setup(t)

	tests := []struct {
		name  string
		query string
	}{
		{"wrong table", "SELECT * FROM teachers"},
		{"not a select", "DELETE FROM student"},
		{"syntax error", "SELEC * FROM student"},
		{"join", "SELECT * FROM student, teachers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", tt.query)

			assert.Equal(t, exitInvalid, res.code)
			assert.Empty(t, strings.TrimSpace(res.stdout))
			assert.Contains(t, res.stderr, "0 row(s) returned.")
			assert.Contains(t, res.stderr, "Query is incorrect")
			assert.NotContains(t, res.stderr, "Error:")
		})
	}
}

func TestExecute_QueryFromStdin(t *testing.T) {
	setup(t)

	res := runCLI(t, "SELECT id FROM student WHERE name != 'Bob'\n")

	assert.Equal(t, exitValid, res.code)
	assert.Contains(t, res.stderr, "Enter your SQL query:")
	assert.Equal(t, []map[string]string{{"id": "1"}, {"id": "3"}}, decodeLines(t, res.stdout))
}

func TestExecute_EmptyStdin(t *testing.T) {
	setup(t)

	res := runCLI(t, "")
	assert.Equal(t, exitInvalid, res.code)
}

func TestExecute_CSVSource(t *testing.T) {
	dir := setup(t)

	path := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,Ada\n2,Grace\n"), 0o644))

	res := runCLI(t, "", "--source", path, "--format", "csv", "SELECT * FROM people WHERE id = '2'")

	assert.Equal(t, exitValid, res.code)
	assert.Equal(t, "id,name\n2,Grace\n", res.stdout)
}

func TestExecute_TableOverride(t *testing.T) {
	dir := setup(t)

	path := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,Ada\n"), 0o644))

	res := runCLI(t, "", "-s", path, "-t", "staff", "SELECT name FROM staff")
	assert.Equal(t, exitValid, res.code)
	assert.Equal(t, []map[string]string{{"name": "Ada"}}, decodeLines(t, res.stdout))

	res = runCLI(t, "", "-s", path, "-t", "staff", "SELECT name FROM people")
	assert.Equal(t, exitInvalid, res.code)
}

func TestExecute_ParquetSource(t *testing.T) {
	dir := setup(t)

	path := createTestParquetFile(t, dir, "student.parquet", []TestRow{
		{ID: 1, Name: "Alice", Major: "CS"},
		{ID: 2, Name: "Bob", Major: "Math"},
	})

	res := runCLI(t, "", "--source", path, "--format", "json", "SELECT id, name FROM student WHERE major = 'Math'")
	assert.Equal(t, exitValid, res.code)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &rows))
	assert.Equal(t, []map[string]string{{"id": "2", "name": "Bob"}}, rows)
}

func TestExecute_ConfigFile(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rowsql.yaml"), []byte("format: table\n"), 0o644))

	res := runCLI(t, "", "SELECT name FROM student WHERE id = '2'")

	assert.Equal(t, exitValid, res.code)
	assert.Contains(t, res.stdout, "name")
	assert.Contains(t, res.stdout, "Bob")
}

func TestExecute_Errors(t *testing.T) {
	dir := setup(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown format", []string{"--format", "xml", "SELECT * FROM student"}, "unsupported format"},
		{"missing file", []string{"--source", filepath.Join(dir, "missing.csv"), "SELECT * FROM missing"}, "missing.csv"},
		{"unsupported source", []string{"--source", filepath.Join(dir, "data.txt"), "SELECT * FROM data"}, "unsupported table source"},
		{"too many args", []string{"SELECT * FROM student", "extra"}, "accepts at most 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", tt.args...)

			assert.Equal(t, exitError, res.code)
			assert.Contains(t, res.stderr, "Error:")
			assert.Contains(t, res.stderr, tt.wantErr)
		})
	}
}

func TestExecute_JSONLogs(t *testing.T) {
	setup(t)

	res := runCLI(t, "", "--log-level", "info", "--log-format", "json", "SELECT * FROM student")
	require.Equal(t, exitValid, res.code)

	var found bool
	for _, line := range strings.Split(res.stderr, "\n") {
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var record map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		if record["msg"] == "query evaluated" {
			found = true
			assert.NotEmpty(t, record["query_id"])
			assert.Equal(t, true, record["valid"])
			assert.Equal(t, float64(3), record["rows"])
		}
	}
	assert.True(t, found, "expected a query evaluated log record")
}
