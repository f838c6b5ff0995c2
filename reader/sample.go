package reader

import "github.com/vegasq/rowsql/query"

// SampleTableName is the name of the built-in demonstration table
const SampleTableName = "student"

// SampleTable returns a fresh copy of the built-in student table.
func SampleTable() *query.Table {
	return &query.Table{
		Name: SampleTableName,
		Rows: []query.Row{
			{"id": "1", "name": "Alice", "major": "CS"},
			{"id": "2", "name": "Bob", "major": "Math"},
			{"id": "3", "name": "Charlie", "major": "CS"},
		},
	}
}
