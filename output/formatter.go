// Package output provides formatters for query results.
//
// Currently supported formats:
//   - jsonl: One JSON object per line
//   - json: A single JSON array
//   - csv: Comma-separated values with header row
//   - table: An aligned ASCII table
//
// Example usage:
//
//	formatter, err := output.New("table", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(res.Rows); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/vegasq/rowsql/query"
)

// ErrUnknownFormat is returned by New for an unsupported format name
var ErrUnknownFormat = errors.New("unsupported format")

// Formats lists the names accepted by New
var Formats = []string{"jsonl", "json", "csv", "table"}

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to convert rows to the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rows []query.Row) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter registered under name, writing to w
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "jsonl", "":
		return NewJSONFormatter(w), nil
	case "json":
		return NewJSONArrayFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "table":
		return NewTableFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownFormat, name, Formats)
	}
}
