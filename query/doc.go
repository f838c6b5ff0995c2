// Package query evaluates single-table SQL SELECT statements against
// in-memory tables of string-valued rows.
//
// The supported query shape is:
//
//	SELECT <* | column, ...> FROM <table> [WHERE <predicate>]
//
// where a predicate is built from column = 'literal', column != 'literal',
// AND, OR and parentheses.
//
// # Basic Usage
//
// Parse and execute a query in one step:
//
//	table := &query.Table{
//	    Name: "student",
//	    Rows: []query.Row{
//	        {"id": "1", "name": "Alice", "major": "CS"},
//	        {"id": "2", "name": "Bob", "major": "Math"},
//	    },
//	}
//
//	res := query.Run(table, "SELECT name FROM student WHERE major = 'CS'")
//	if !res.Valid {
//	    log.Printf("rejected: %v", res.Err)
//	}
//
// Or parse once and evaluate the statement against several tables:
//
//	stmt, err := query.Parse("SELECT * FROM student")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rows, valid := query.Evaluate(table, stmt)
//
// # Validity
//
// A result is invalid only for structural problems: the statement is not a
// SELECT, its FROM clause does not name exactly one relation, or that
// relation is not the given table (compared ignoring case). Parse failures
// are invalid too. Invalid results never carry rows.
//
// Everything else degrades without invalidating the query:
//
//   - An unsupported predicate shape (an unknown operator, a literal on the
//     left of a comparison, a function call) is false for every row.
//   - A projected column the row does not have is omitted from that output
//     row, which may leave the row empty.
//
// # Predicates
//
// Predicates can also be built by hand and applied with ApplyFilter:
//
//	pred := &query.BinaryOp{
//	    Left:     &query.Identifier{Name: "major"},
//	    Operator: query.OpEqual,
//	    Right:    &query.Literal{Value: "'CS'"},
//	}
//	cs := query.ApplyFilter(table.Rows, pred)
//
// Comparisons are exact and case-sensitive. A row without the column never
// equals a literal and always differs from one.
//
// # Concurrency
//
// Nothing in this package mutates its inputs or keeps state between calls,
// so a table may be queried from many goroutines at once.
package query
