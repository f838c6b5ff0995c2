package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/vegasq/rowsql/query"
)

// Summary writes the row count and the validity verdict of res. Colors are
// used only when colored is true.
func Summary(w io.Writer, res *query.Result, colored bool) error {
	verdict := color.New(color.FgGreen, color.Bold)
	text := "Query is correct"
	if !res.Valid {
		verdict = color.New(color.FgRed, color.Bold)
		text = "Query is incorrect"
	}
	if colored {
		verdict.EnableColor()
	} else {
		verdict.DisableColor()
	}

	if _, err := fmt.Fprintf(w, "\n%d row(s) returned.\n\n", len(res.Rows)); err != nil {
		return err
	}
	_, err := verdict.Fprintln(w, text)
	return err
}
