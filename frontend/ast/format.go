package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ExprString renders expr as canonical SQL text.
func ExprString(expr Expr) string {
	ctx := newShowContext()
	ctx.showExpr(expr)
	return ctx.String()
}

// StatementString renders stmt as canonical SQL text, one clause per line.
func StatementString(stmt Statement) string {
	ctx := newShowContext()
	ctx.showStatement(stmt)
	return ctx.String()
}

type showContext struct {
	*strings.Builder
}

func newShowContext() *showContext {
	return &showContext{Builder: &strings.Builder{}}
}

func (ctx *showContext) showExprList(exprs []Expr) {
	for i, e := range exprs {
		if i > 0 {
			ctx.WriteString(", ")
		}
		ctx.showExpr(e)
	}
}

func (ctx *showContext) showExpr(expr Expr) {
	if expr == nil {
		ctx.WriteString("nil")
		return
	}
	switch expr := expr.(type) {
	case Literal:
		ctx.WriteString(expr.Syntax())
	case *ColumnRef:
		if expr.Qualifier != "" {
			ctx.WriteString(expr.Qualifier)
			ctx.WriteString(".")
		}
		ctx.WriteString(expr.Name)
	case *Dereference:
		ctx.showExpr(expr.Base)
		ctx.WriteString("->")
		ctx.WriteString(expr.Field)
	case *Subscript:
		ctx.showExpr(expr.Base)
		ctx.WriteString("[")
		ctx.showExpr(expr.Index)
		ctx.WriteString("]")
	case *FunctionCall:
		ctx.WriteString(expr.Name)
		ctx.WriteString("(")
		ctx.showExprList(expr.Args)
		ctx.WriteString(")")
	case *Cast:
		ctx.WriteString("CAST(")
		ctx.showExpr(expr.Expr)
		ctx.WriteString(" AS ")
		ctx.WriteString(expr.Type.Name)
		ctx.WriteString(")")
	case *ArithmeticBinary:
		ctx.showBinary(expr.Left, string(expr.Op), expr.Right)
	case *ArithmeticUnary:
		ctx.WriteString(string(expr.Sign))
		ctx.showExpr(expr.Value)
	case *Comparison:
		ctx.showBinary(expr.Left, string(expr.Op), expr.Right)
	case *LogicalBinary:
		ctx.showBinary(expr.Left, string(expr.Op), expr.Right)
	case *Not:
		ctx.WriteString("(NOT ")
		ctx.showExpr(expr.Value)
		ctx.WriteString(")")
	case *IsNull:
		ctx.WriteString("(")
		ctx.showExpr(expr.Value)
		ctx.WriteString(" IS NULL)")
	case *IsNotNull:
		ctx.WriteString("(")
		ctx.showExpr(expr.Value)
		ctx.WriteString(" IS NOT NULL)")
	case *Between:
		ctx.WriteString("(")
		ctx.showExpr(expr.Value)
		ctx.WriteString(" BETWEEN ")
		ctx.showExpr(expr.Min)
		ctx.WriteString(" AND ")
		ctx.showExpr(expr.Max)
		ctx.WriteString(")")
	case *InPredicate:
		ctx.WriteString("(")
		ctx.showExpr(expr.Value)
		ctx.WriteString(" IN (")
		ctx.showExprList(expr.List)
		ctx.WriteString("))")
	case *Like:
		ctx.showBinary(expr.Value, "LIKE", expr.Pattern)
	case *SearchedCase:
		ctx.WriteString("(CASE")
		ctx.showWhens(expr.Whens, expr.Default)
	case *SimpleCase:
		ctx.WriteString("(CASE ")
		ctx.showExpr(expr.Operand)
		ctx.showWhens(expr.Whens, expr.Default)
	default:
		panic(fmt.Sprintf("unhandled expression kind %T", expr))
	}
}

func (ctx *showContext) showBinary(left Expr, op string, right Expr) {
	ctx.WriteString("(")
	ctx.showExpr(left)
	ctx.WriteString(" " + op + " ")
	ctx.showExpr(right)
	ctx.WriteString(")")
}

func (ctx *showContext) showWhens(whens []WhenClause, def Expr) {
	for _, w := range whens {
		ctx.WriteString(" WHEN ")
		ctx.showExpr(w.Operand)
		ctx.WriteString(" THEN ")
		ctx.showExpr(w.Result)
	}
	if def != nil {
		ctx.WriteString(" ELSE ")
		ctx.showExpr(def)
	}
	ctx.WriteString(" END)")
}

func (ctx *showContext) showStatement(stmt Statement) {
	switch stmt := stmt.(type) {
	case *Query:
		ctx.showQuery(stmt)
	case *CreateStreamAsSelect:
		ctx.WriteString("CREATE STREAM ")
		ctx.showCreateHead(stmt.NotExists, stmt.Name, stmt.Properties)
		ctx.WriteString(" AS ")
		ctx.showQuery(stmt.Query)
		ctx.showPartitionBy(stmt.PartitionBy)
	case *CreateTableAsSelect:
		ctx.WriteString("CREATE TABLE ")
		ctx.showCreateHead(stmt.NotExists, stmt.Name, stmt.Properties)
		ctx.WriteString(" AS ")
		ctx.showQuery(stmt.Query)
	case *InsertInto:
		ctx.WriteString("INSERT INTO ")
		ctx.WriteString(stmt.Target)
		ctx.WriteString(" ")
		ctx.showQuery(stmt.Query)
		ctx.showPartitionBy(stmt.PartitionBy)
	case *CreateStream:
		ctx.WriteString("CREATE STREAM ")
		ctx.showCreateSource(stmt.NotExists, stmt.Name, stmt.Elements, stmt.Properties)
	case *CreateTable:
		ctx.WriteString("CREATE TABLE ")
		ctx.showCreateSource(stmt.NotExists, stmt.Name, stmt.Elements, stmt.Properties)
	case *DropStream:
		ctx.WriteString("DROP STREAM ")
		ctx.showDrop(stmt.IfExists, stmt.Name, stmt.DeleteTopic)
	case *DropTable:
		ctx.WriteString("DROP TABLE ")
		ctx.showDrop(stmt.IfExists, stmt.Name, stmt.DeleteTopic)
	case *TerminateQuery:
		ctx.WriteString("TERMINATE ")
		ctx.WriteString(stmt.QueryID.String())
	default:
		panic(fmt.Sprintf("unhandled statement kind %T", stmt))
	}
}

func (ctx *showContext) showQuery(q *Query) {
	if q == nil {
		ctx.WriteString("nil")
		return
	}
	ctx.WriteString("SELECT ")
	if q.Select.Distinct {
		ctx.WriteString("DISTINCT ")
	}
	for i, item := range q.Select.Items {
		if i > 0 {
			ctx.WriteString(", ")
		}
		switch item := item.(type) {
		case *SingleColumn:
			ctx.showExpr(item.Expr)
			if item.Alias != "" {
				ctx.WriteString(" AS ")
				ctx.WriteString(item.Alias)
			}
		case *AllColumns:
			if item.Prefix != "" {
				ctx.WriteString(item.Prefix)
				ctx.WriteString(".")
			}
			ctx.WriteString("*")
		}
	}
	if q.From != nil {
		ctx.WriteString("\nFROM ")
		ctx.showRelation(q.From)
	}
	if q.Window != nil {
		ctx.WriteString("\nWINDOW ")
		ctx.showWindow(q.Window)
	}
	if q.Where != nil {
		ctx.WriteString("\nWHERE ")
		ctx.showExpr(q.Where)
	}
	if len(q.GroupBy) > 0 {
		ctx.WriteString("\nGROUP BY ")
		ctx.showExprList(q.GroupBy)
	}
	if q.Having != nil {
		ctx.WriteString("\nHAVING ")
		ctx.showExpr(q.Having)
	}
	if q.Limit != nil {
		ctx.WriteString("\nLIMIT ")
		ctx.WriteString(strconv.Itoa(*q.Limit))
	}
}

func (ctx *showContext) showRelation(r Relation) {
	switch r := r.(type) {
	case *Table:
		ctx.WriteString(r.Name)
	case *AliasedRelation:
		ctx.showRelation(r.Relation)
		ctx.WriteString(" ")
		ctx.WriteString(r.Alias)
	case *Join:
		ctx.showRelation(r.Left)
		ctx.WriteString(" " + string(r.Type) + " JOIN ")
		ctx.showRelation(r.Right)
		if r.Within != nil {
			ctx.WriteString(" WITHIN ")
			if r.Within.After == (TimeSpan{}) {
				ctx.showTimeSpan(r.Within.Before)
			} else {
				ctx.WriteString("(")
				ctx.showTimeSpan(r.Within.Before)
				ctx.WriteString(", ")
				ctx.showTimeSpan(r.Within.After)
				ctx.WriteString(")")
			}
		}
		if r.Criteria != nil {
			ctx.WriteString(" ON ")
			ctx.showExpr(r.Criteria)
		}
	default:
		panic(fmt.Sprintf("unhandled relation kind %T", r))
	}
}

func (ctx *showContext) showTimeSpan(span TimeSpan) {
	ctx.WriteString(strconv.FormatInt(span.Size, 10))
	ctx.WriteString(" ")
	ctx.WriteString(string(span.Unit))
}

func (ctx *showContext) showWindow(w *WindowExpression) {
	ctx.WriteString(string(w.Kind))
	switch w.Kind {
	case Session:
		ctx.WriteString(" (")
		ctx.showTimeSpan(w.Size)
		ctx.WriteString(")")
	case Hopping:
		ctx.WriteString(" (SIZE ")
		ctx.showTimeSpan(w.Size)
		ctx.WriteString(", ADVANCE BY ")
		ctx.showTimeSpan(w.Advance)
		ctx.WriteString(")")
	default:
		ctx.WriteString(" (SIZE ")
		ctx.showTimeSpan(w.Size)
		ctx.WriteString(")")
	}
}

func (ctx *showContext) showPartitionBy(e Expr) {
	if e == nil {
		return
	}
	ctx.WriteString("\nPARTITION BY ")
	ctx.showExpr(e)
}

func (ctx *showContext) showCreateHead(notExists bool, name string, props Properties) {
	if notExists {
		ctx.WriteString("IF NOT EXISTS ")
	}
	ctx.WriteString(name)
	ctx.showProperties(props)
}

func (ctx *showContext) showCreateSource(notExists bool, name string, elements []TableElement, props Properties) {
	if notExists {
		ctx.WriteString("IF NOT EXISTS ")
	}
	ctx.WriteString(name)
	if len(elements) > 0 {
		ctx.WriteString(" (")
		for i, el := range elements {
			if i > 0 {
				ctx.WriteString(", ")
			}
			ctx.WriteString(el.Name)
			ctx.WriteString(" ")
			ctx.WriteString(el.Type.Name)
		}
		ctx.WriteString(")")
	}
	ctx.showProperties(props)
}

func (ctx *showContext) showProperties(props Properties) {
	if props.Len() == 0 {
		return
	}
	ctx.WriteString(" WITH (")
	i := 0
	for name, value := range props.All() {
		if i > 0 {
			ctx.WriteString(", ")
		}
		ctx.WriteString(name)
		ctx.WriteString("=")
		ctx.showExpr(value)
		i++
	}
	ctx.WriteString(")")
}

func (ctx *showContext) showDrop(ifExists bool, name string, deleteTopic bool) {
	if ifExists {
		ctx.WriteString("IF EXISTS ")
	}
	ctx.WriteString(name)
	if deleteTopic {
		ctx.WriteString(" DELETE TOPIC")
	}
}
