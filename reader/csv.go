package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/vegasq/rowsql/query"
)

// ReadCSV reads comma-separated records. The first record names the
// columns; a record shorter than the header leaves the trailing columns out
// of its row.
func ReadCSV(r io.Reader) ([]query.Row, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []query.Row{}, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	for _, col := range header {
		if err := query.ValidateColumnName(col); err != nil {
			return nil, err
		}
	}

	rows := make([]query.Row, 0)
	for line := 2; ; line++ {
		record, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record %d: %w", line, err)
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("record %d has %d fields, header has %d", line, len(record), len(header))
		}

		row := make(query.Row, len(record))
		for i, value := range record {
			row[header[i]] = value
		}
		rows = append(rows, row)
	}

	return rows, nil
}
