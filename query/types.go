package query

import "strings"

// Row is a single record: column name to column value.
type Row map[string]string

// Table is a named, ordered collection of rows.
//
// Tables are borrowed read-only by the evaluator; nothing in this package
// mutates a table or any of its rows.
type Table struct {
	Name string
	Rows []Row
}

// Operator is the operator text of a BinaryOp.
type Operator string

const (
	OpEqual    Operator = "="
	OpNotEqual Operator = "!="
	OpAnd      Operator = "AND"
	OpOr       Operator = "OR"
)

// Expression is a node of a WHERE predicate tree.
//
// The set of node types is closed: Identifier, Literal, BinaryOp and
// Unsupported.
type Expression interface {
	expressionNode()
}

// Identifier references a column by name.
type Identifier struct {
	Name string
}

// Literal is a constant value. Surrounding quote markers are ignored when
// the literal is compared against a row.
type Literal struct {
	Value string
}

// BinaryOp combines two operands. Comparisons (=, !=) expect an Identifier
// on the left and a Literal on the right; AND and OR take any operands.
type BinaryOp struct {
	Left     Expression
	Operator Operator
	Right    Expression
}

// Unsupported holds an expression shape the evaluator does not interpret,
// such as a function call or a qualified column. It never matches a row.
type Unsupported struct {
	SQL string
}

func (*Identifier) expressionNode()  {}
func (*Literal) expressionNode()     {}
func (*BinaryOp) expressionNode()    {}
func (*Unsupported) expressionNode() {}

// Text returns the literal value with surrounding quote markers removed.
func (l *Literal) Text() string {
	return strings.Trim(l.Value, `'"`)
}

// SelectItem is one entry of a SELECT list: Wildcard or Column.
type SelectItem interface {
	selectItem()
}

// Wildcard selects every column of the source row.
type Wildcard struct{}

// Column selects a single named column.
type Column struct {
	Name string
}

func (*Wildcard) selectItem() {}
func (*Column) selectItem()   {}

// TableRef is a relation named in a FROM clause.
type TableRef struct {
	Name string
}

// Statement is a parsed SQL statement: *Select or *OtherStatement.
type Statement interface {
	statementNode()
}

// Select is a single SELECT query body.
type Select struct {
	Projection []SelectItem
	From       []TableRef
	Where      Expression // nil when there is no WHERE clause
}

// OtherStatement is any parsed statement that is not a single SELECT,
// e.g. a UNION, an INSERT or a SHOW.
type OtherStatement struct {
	Kind string
}

func (*Select) statementNode()         {}
func (*OtherStatement) statementNode() {}

// Result is the outcome of evaluating a statement against a table.
type Result struct {
	Rows  []Row
	Valid bool
	// Err explains why the statement was rejected. It is nil when Valid is
	// true.
	Err error
}

func invalid(err error) *Result {
	return &Result{Rows: []Row{}, Valid: false, Err: err}
}
