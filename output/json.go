package output

import (
	"encoding/json"
	"io"

	"github.com/vegasq/rowsql/query"
)

// JSONFormatter outputs rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as JSON Lines (one JSON object per line)
func (j *JSONFormatter) Format(rows []query.Row) error {
	encoder := json.NewEncoder(j.writer)
	for _, row := range rows {
		if err := encoder.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

// JSONArrayFormatter outputs all rows as one indented JSON array
type JSONArrayFormatter struct {
	writer io.Writer
}

// NewJSONArrayFormatter creates a new JSON array formatter
func NewJSONArrayFormatter(w io.Writer) *JSONArrayFormatter {
	return &JSONArrayFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONArrayFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as a JSON array; no rows is written as []
func (j *JSONArrayFormatter) Format(rows []query.Row) error {
	if rows == nil {
		rows = []query.Row{}
	}
	encoder := json.NewEncoder(j.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}
