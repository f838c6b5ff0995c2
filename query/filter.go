package query

import "sort"

// Matches reports whether row satisfies expr.
//
// Only two shapes are understood: a comparison with a column on the left
// and a literal on the right (operators = and !=), and AND/OR over nested
// predicates. Every other shape evaluates to false, so the row is dropped
// rather than the query rejected. A literal on the left of a comparison is
// not recognized.
func Matches(expr Expression, row Row) bool {
	op, ok := expr.(*BinaryOp)
	if !ok {
		return false
	}

	if id, ok := op.Left.(*Identifier); ok {
		if lit, ok := op.Right.(*Literal); ok {
			return compare(row, id.Name, op.Operator, lit.Text())
		}
	}

	switch op.Operator {
	case OpAnd:
		return Matches(op.Left, row) && Matches(op.Right, row)
	case OpOr:
		return Matches(op.Left, row) || Matches(op.Right, row)
	default:
		return false
	}
}

// compare applies a comparison operator to a row's column. A missing
// column is never equal to anything and always different from everything.
func compare(row Row, column string, operator Operator, want string) bool {
	got, exists := row[column]

	switch operator {
	case OpEqual:
		return exists && got == want
	case OpNotEqual:
		return !exists || got != want
	default:
		return false
	}
}

// ApplyFilter returns the rows that satisfy filter, in their original
// order. A nil filter keeps every row.
func ApplyFilter(rows []Row, filter Expression) []Row {
	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		if filter == nil || Matches(filter, row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// ApplyProjection builds a new row per input row from the select list.
//
// A Wildcard copies every column; a Column copies its value only when the
// source row has it. Columns named more than once collapse to one entry.
func ApplyProjection(rows []Row, items []SelectItem) []Row {
	projected := make([]Row, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, project(row, items))
	}
	return projected
}

func project(row Row, items []SelectItem) Row {
	out := make(Row)
	for _, item := range items {
		switch it := item.(type) {
		case *Wildcard:
			for k, v := range row {
				out[k] = v
			}
		case *Column:
			if v, ok := row[it.Name]; ok {
				out[it.Name] = v
			}
		}
	}
	return out
}

// ColumnNames returns the sorted union of column names across rows.
func ColumnNames(rows []Row) []string {
	if len(rows) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	columns := make([]string, 0)

	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}

	sort.Strings(columns)
	return columns
}
