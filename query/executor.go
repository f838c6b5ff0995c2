package query

import (
	"fmt"
	"strings"
)

// Execute evaluates stmt against table.
//
// The statement must be a SELECT whose FROM clause names exactly one
// relation, and that relation must match the table name ignoring case.
// Any of these failing yields an invalid result with no rows. Otherwise the
// result is valid, even when no rows survive the WHERE clause or none of
// the projected columns exist.
//
// A nil stmt stands for a statement that failed to parse upstream.
func Execute(table *Table, stmt Statement) *Result {
	if stmt == nil {
		return invalid(ErrNoStatement)
	}

	sel, ok := stmt.(*Select)
	if !ok {
		kind := "unknown"
		if other, ok := stmt.(*OtherStatement); ok {
			kind = other.Kind
		}
		return invalid(fmt.Errorf("%w: got %s", ErrNotSelect, kind))
	}

	switch len(sel.From) {
	case 0:
		return invalid(ErrNoTable)
	case 1:
	default:
		return invalid(fmt.Errorf("%w: %d relations", ErrMultipleTables, len(sel.From)))
	}

	name := sel.From[0].Name
	if table == nil || !strings.EqualFold(name, table.Name) {
		return invalid(fmt.Errorf("%w: query names %q", ErrTableMismatch, name))
	}

	rows := ApplyFilter(table.Rows, sel.Where)
	return &Result{
		Rows:  ApplyProjection(rows, sel.Projection),
		Valid: true,
	}
}

// Evaluate is Execute reduced to its rows and validity flag.
func Evaluate(table *Table, stmt Statement) ([]Row, bool) {
	res := Execute(table, stmt)
	return res.Rows, res.Valid
}

// Run parses sql and executes it against table. A query that does not
// parse is reported as invalid, with Err wrapping ErrParse.
func Run(table *Table, sql string) *Result {
	stmt, err := Parse(sql)
	if err != nil {
		return invalid(err)
	}
	return Execute(table, stmt)
}
