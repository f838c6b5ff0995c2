package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/rowsql/query"
)

var studentRows = []query.Row{
	{"id": "1", "name": "Alice", "major": "CS"},
	{"id": "3", "name": "Charlie", "major": "CS"},
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name string
		want Formatter
	}{
		{"", &JSONFormatter{}},
		{"jsonl", &JSONFormatter{}},
		{"json", &JSONArrayFormatter{}},
		{"csv", &CSVFormatter{}},
		{"table", &TableFormatter{}},
	}

	for _, tt := range tests {
		f, err := New(tt.name, &buf)
		require.NoError(t, err, tt.name)
		assert.IsType(t, tt.want, f, tt.name)
	}

	_, err := New("xml", &buf)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestJSONFormatter_Format(t *testing.T) {
	tests := []struct {
		name      string
		rows      []query.Row
		wantLines []string
	}{
		{
			name:      "empty rows",
			rows:      []query.Row{},
			wantLines: nil,
		},
		{
			name:      "multiple rows",
			rows:      studentRows,
			wantLines: []string{`{"id":"1","major":"CS","name":"Alice"}`, `{"id":"3","major":"CS","name":"Charlie"}`},
		},
		{
			name:      "empty projected rows",
			rows:      []query.Row{{}, {}},
			wantLines: []string{`{}`, `{}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewJSONFormatter(&buf).Format(tt.rows))

			output := strings.TrimSpace(buf.String())
			if tt.wantLines == nil {
				assert.Empty(t, output)
				return
			}
			assert.Equal(t, tt.wantLines, strings.Split(output, "\n"))
		})
	}
}

func TestJSONArrayFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONArrayFormatter(&buf).Format(studentRows))

	var got []query.Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, studentRows, got)

	buf.Reset()
	require.NoError(t, NewJSONArrayFormatter(&buf).Format(nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestCSVFormatter_Format(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewCSVFormatter(&buf).Format(studentRows))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"id", "major", "name"},
			{"1", "CS", "Alice"},
			{"3", "CS", "Charlie"},
		}, records)
	})

	t.Run("heterogeneous rows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewCSVFormatter(&buf).Format([]query.Row{{"id": "1"}, {"name": "Bob"}}))
		assert.Equal(t, "id,name\n1,\n,Bob\n", buf.String())
	})

	t.Run("no columns", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewCSVFormatter(&buf).Format([]query.Row{{}, {}}))
		assert.Empty(t, buf.String())
	})

	t.Run("formula injection", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewCSVFormatter(&buf).Format([]query.Row{{"f": "=SUM(A1)"}}))
		assert.Equal(t, "f\n'=SUM(A1)\n", buf.String())
	})
}

func TestCSVFormatter_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	f := NewCSVFormatter(&first)
	f.SetOutput(&second)
	require.NoError(t, f.Format(studentRows))
	assert.Empty(t, first.String())
	assert.NotEmpty(t, second.String())
}

func TestTableFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(studentRows))

	output := buf.String()
	for _, want := range []string{"id", "major", "name", "Alice", "Charlie", "CS"} {
		assert.Contains(t, output, want)
	}
	assert.Less(t, strings.Index(output, "Alice"), strings.Index(output, "Charlie"))

	buf.Reset()
	require.NoError(t, NewTableFormatter(&buf).Format([]query.Row{{}}))
	assert.Empty(t, buf.String())
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, &query.Result{Rows: studentRows, Valid: true}, false))
	assert.Equal(t, "\n2 row(s) returned.\n\nQuery is correct\n", buf.String())

	buf.Reset()
	require.NoError(t, Summary(&buf, &query.Result{Rows: []query.Row{}}, false))
	assert.Equal(t, "\n0 row(s) returned.\n\nQuery is incorrect\n", buf.String())

	buf.Reset()
	require.NoError(t, Summary(&buf, &query.Result{Valid: true}, true))
	assert.Contains(t, buf.String(), "\x1b[")
}
