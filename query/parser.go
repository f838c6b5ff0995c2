package query

import (
	"fmt"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// Parser translates a sqlparser syntax tree into a Statement
type Parser struct {
	depthCounter *ExpressionDepthCounter
}

// NewParser creates a new parser
func NewParser() *Parser {
	return &Parser{
		depthCounter: NewExpressionDepthCounter(),
	}
}

// Parse parses a single SQL statement.
//
// Every error returned wraps ErrParse.
func Parse(query string) (Statement, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if err := ValidateTokens(countTokens(query)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	stmt, err := sqlparser.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if stmt == nil {
		return nil, fmt.Errorf("%w: empty statement", ErrParse)
	}

	parsed, err := NewParser().statement(stmt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return parsed, nil
}

// countTokens scans query with the sqlparser tokenizer
func countTokens(query string) int {
	tokenizer := sqlparser.NewStringTokenizer(query)
	count := 0
	for {
		typ, _ := tokenizer.Scan()
		if typ == 0 {
			return count
		}
		count++
		if count > MaxTokens {
			return count
		}
	}
}

func (p *Parser) statement(stmt sqlparser.Statement) (Statement, error) {
	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return &OtherStatement{Kind: statementKind(stmt)}, nil
	}

	projection, err := p.selectList(sel.SelectExprs)
	if err != nil {
		return nil, err
	}

	from, err := p.tableRefs(sel.From)
	if err != nil {
		return nil, err
	}

	out := &Select{
		Projection: projection,
		From:       from,
	}

	if sel.Where != nil && sel.Where.Expr != nil {
		where, err := p.expression(sel.Where.Expr)
		if err != nil {
			return nil, err
		}
		out.Where = where
	}

	return out, nil
}

// statementKind names a non-SELECT statement, e.g. "union" or "insert"
func statementKind(stmt sqlparser.Statement) string {
	return strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", stmt), "*sqlparser."))
}

// selectList keeps unqualified * and plain, unaliased column references.
// Anything else in the list contributes no columns.
func (p *Parser) selectList(exprs sqlparser.SelectExprs) ([]SelectItem, error) {
	items := make([]SelectItem, 0, len(exprs))
	for _, expr := range exprs {
		switch e := expr.(type) {
		case *sqlparser.StarExpr:
			if e.TableName.IsEmpty() {
				items = append(items, &Wildcard{})
			}
		case *sqlparser.AliasedExpr:
			col, ok := e.Expr.(*sqlparser.ColName)
			if !ok || !e.As.IsEmpty() || !col.Qualifier.IsEmpty() {
				continue
			}
			name := col.Name.String()
			if err := ValidateColumnName(name); err != nil {
				return nil, err
			}
			items = append(items, &Column{Name: name})
		}
	}
	return items, nil
}

// tableRefs flattens the FROM clause into the relations it names. A join
// names one relation per side.
func (p *Parser) tableRefs(exprs sqlparser.TableExprs) ([]TableRef, error) {
	refs := make([]TableRef, 0, len(exprs))
	for _, expr := range exprs {
		switch e := expr.(type) {
		case *sqlparser.AliasedTableExpr:
			ref, err := tableRef(e)
			if err != nil {
				return nil, err
			}
			refs = append(refs, ref)
		case *sqlparser.ParenTableExpr:
			nested, err := p.tableRefs(e.Exprs)
			if err != nil {
				return nil, err
			}
			refs = append(refs, nested...)
		case *sqlparser.JoinTableExpr:
			nested, err := p.tableRefs(sqlparser.TableExprs{e.LeftExpr, e.RightExpr})
			if err != nil {
				return nil, err
			}
			refs = append(refs, nested...)
		}
	}
	return refs, nil
}

func tableRef(expr *sqlparser.AliasedTableExpr) (TableRef, error) {
	tn, ok := expr.Expr.(sqlparser.TableName)
	if !ok {
		// Derived table; its SQL text never matches a table name.
		return TableRef{Name: sqlparser.String(expr.Expr)}, nil
	}

	name := tn.Name.String()
	if !tn.Qualifier.IsEmpty() {
		name = tn.Qualifier.String() + "." + name
	}
	if err := ValidateTableName(name); err != nil {
		return TableRef{}, err
	}
	return TableRef{Name: name}, nil
}

// expression translates a WHERE expression. Parentheses only group, so
// they are dropped.
func (p *Parser) expression(expr sqlparser.Expr) (Expression, error) {
	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	switch e := expr.(type) {
	case *sqlparser.ParenExpr:
		return p.expression(e.Expr)
	case *sqlparser.AndExpr:
		return p.binary(e.Left, OpAnd, e.Right)
	case *sqlparser.OrExpr:
		return p.binary(e.Left, OpOr, e.Right)
	case *sqlparser.ComparisonExpr:
		if e.Escape != nil {
			return &Unsupported{SQL: sqlparser.String(e)}, nil
		}
		return p.binary(e.Left, Operator(e.Operator), e.Right)
	case *sqlparser.ColName:
		if !e.Qualifier.IsEmpty() {
			return &Unsupported{SQL: sqlparser.String(e)}, nil
		}
		name := e.Name.String()
		if err := ValidateColumnName(name); err != nil {
			return nil, err
		}
		return &Identifier{Name: name}, nil
	case *sqlparser.SQLVal:
		switch e.Type {
		case sqlparser.StrVal, sqlparser.IntVal, sqlparser.FloatVal:
			return &Literal{Value: string(e.Val)}, nil
		}
	case *sqlparser.NullVal:
		return &Literal{Value: "NULL"}, nil
	case sqlparser.BoolVal:
		if e {
			return &Literal{Value: "true"}, nil
		}
		return &Literal{Value: "false"}, nil
	}

	return &Unsupported{SQL: sqlparser.String(expr)}, nil
}

func (p *Parser) binary(left sqlparser.Expr, op Operator, right sqlparser.Expr) (Expression, error) {
	l, err := p.expression(left)
	if err != nil {
		return nil, err
	}
	r, err := p.expression(right)
	if err != nil {
		return nil, err
	}
	return &BinaryOp{Left: l, Operator: op, Right: r}, nil
}
