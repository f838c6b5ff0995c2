package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/rowsql/query"
)

// TableFormatter outputs rows as an aligned ASCII table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders rows under a header of the sorted column union. Nothing is
// written when there are no columns at all.
func (t *TableFormatter) Format(rows []query.Row) error {
	columns := query.ColumnNames(rows)
	if len(columns) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = row[col]
		}
		table.Append(record)
	}

	table.Render()
	return nil
}
