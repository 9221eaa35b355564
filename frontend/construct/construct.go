// Package construct has short constructors for AST nodes, for building
// trees by hand in tests and tooling. Nodes built here have no location.
package construct

import (
	"github.com/cottand/streamql/frontend/ast"
	"github.com/shopspring/decimal"
)

// Expressions

// Column reference: `Q.NAME`, or `NAME` if qualifier is empty
func Col(qualifier, name string) *ast.ColumnRef {
	return &ast.ColumnRef{Qualifier: qualifier, Name: name}
}

// Dereference: `base->field`
func Deref(base ast.Expr, field string) *ast.Dereference {
	return &ast.Dereference{Base: base, Field: field}
}

// DerefPath chains dereferences: DerefPath(a, "B", "C") is `a->B->C`
func DerefPath(base ast.Expr, fields ...string) ast.Expr {
	e := base
	for _, f := range fields {
		e = Deref(e, f)
	}
	return e
}

// Subscript: `base[index]`
func Subscript(base, index ast.Expr) *ast.Subscript {
	return &ast.Subscript{Base: base, Index: index}
}

// Function call: `NAME(args...)`
func Call(name string, args ...ast.Expr) *ast.FunctionCall {
	return &ast.FunctionCall{Name: name, Args: args}
}

// Cast: `CAST(e AS typeName)`
func Cast(e ast.Expr, typeName string) *ast.Cast {
	return &ast.Cast{Expr: e, Type: ast.Type{Name: typeName}}
}

func Str(v string) *ast.StringLiteral     { return &ast.StringLiteral{Value: v} }
func Int(v int32) *ast.IntegerLiteral     { return &ast.IntegerLiteral{Value: v} }
func Long(v int64) *ast.LongLiteral       { return &ast.LongLiteral{Value: v} }
func Double(v float64) *ast.DoubleLiteral { return &ast.DoubleLiteral{Value: v} }
func Bool(v bool) *ast.BooleanLiteral     { return &ast.BooleanLiteral{Value: v} }
func Null() *ast.NullLiteral              { return &ast.NullLiteral{} }

// Decimal panics if v is not a valid decimal number
func Decimal(v string) *ast.DecimalLiteral {
	return &ast.DecimalLiteral{Value: decimal.RequireFromString(v)}
}

func Arith(op ast.ArithmeticOp, left, right ast.Expr) *ast.ArithmeticBinary {
	return &ast.ArithmeticBinary{Op: op, Left: left, Right: right}
}

func Neg(e ast.Expr) *ast.ArithmeticUnary {
	return &ast.ArithmeticUnary{Sign: ast.SignMinus, Value: e}
}

func Compare(op ast.ComparisonOp, left, right ast.Expr) *ast.Comparison {
	return &ast.Comparison{Op: op, Left: left, Right: right}
}

func And(left, right ast.Expr) *ast.LogicalBinary {
	return &ast.LogicalBinary{Op: ast.OpAnd, Left: left, Right: right}
}

func Or(left, right ast.Expr) *ast.LogicalBinary {
	return &ast.LogicalBinary{Op: ast.OpOr, Left: left, Right: right}
}

func Not(e ast.Expr) *ast.Not { return &ast.Not{Value: e} }

func When(operand, result ast.Expr) ast.WhenClause {
	return ast.WhenClause{Operand: operand, Result: result}
}

// Searched case: `CASE WHEN ... END`, def may be nil
func Case(def ast.Expr, whens ...ast.WhenClause) *ast.SearchedCase {
	return &ast.SearchedCase{Whens: whens, Default: def}
}

// Statements

// Projected column: `e AS alias`, alias may be empty
func Item(e ast.Expr, alias string) *ast.SingleColumn {
	return &ast.SingleColumn{Expr: e, Alias: alias}
}

// Query: `SELECT items FROM from`
func Query(from ast.Relation, items ...ast.SelectItem) *ast.Query {
	return &ast.Query{Select: ast.Select{Items: items}, From: from}
}

// Query selecting one unaliased item per expression from the table named from
func SelectFrom(from string, exprs ...ast.Expr) *ast.Query {
	items := make([]ast.SelectItem, len(exprs))
	for i, e := range exprs {
		items[i] = Item(e, "")
	}
	return Query(Table(from), items...)
}

func Table(name string) *ast.Table { return &ast.Table{Name: name} }

func Aliased(r ast.Relation, alias string) *ast.AliasedRelation {
	return &ast.AliasedRelation{Relation: r, Alias: alias}
}

func Join(joinType ast.JoinType, left, right ast.Relation, criteria ast.Expr) *ast.Join {
	return &ast.Join{Type: joinType, Left: left, Right: right, Criteria: criteria}
}

func Props(kv map[string]ast.Literal) ast.Properties {
	return ast.NewProperties(kv)
}
