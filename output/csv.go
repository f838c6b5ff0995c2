package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/rowsql/query"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes rows as CSV.
//
// The header is the sorted union of columns across all rows, since rows
// need not share a column set; a row missing a column gets an empty cell.
// Nothing is written when there are no columns at all.
func (c *CSVFormatter) Format(rows []query.Row) error {
	columns := query.ColumnNames(rows)
	if len(columns) == 0 {
		return nil
	}

	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write(columns); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatValue(row[col])
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// formatValue guards a cell against CSV injection by prefixing characters
// that could trigger formula execution in spreadsheet applications
func formatValue(val string) string {
	if len(val) > 0 {
		switch val[0] {
		case '=', '+', '-', '@', '\t', '\r', '\n', '|':
			return "'" + strings.ReplaceAll(val, "'", "''")
		}
	}
	return val
}
