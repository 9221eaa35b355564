package frontend

import (
	"github.com/cottand/streamql/frontend/ast"
	"github.com/pkg/errors"
)

// FetchFieldFromStruct is the accessor function every dereference is lowered to.
// It takes the struct-valued expression and the field name as a string literal.
const FetchFieldFromStruct = "FETCH_FIELD_FROM_STRUCT"

// RequiresStructRewrite reports whether stmt has a projection which may hold
// `->` dereferences that must be lowered before planning.
func RequiresStructRewrite(stmt ast.Statement) bool {
	switch stmt.(type) {
	case *ast.Query, *ast.CreateStreamAsSelect, *ast.CreateTableAsSelect, *ast.InsertInto:
		return true
	case *ast.CreateStream, *ast.CreateTable, *ast.DropStream, *ast.DropTable, *ast.TerminateQuery, nil:
		return false
	default:
		panic(errors.Errorf("unhandled statement kind %T", stmt))
	}
}

// DesugarStructAccess lowers every `base->field` in stmt to
// FETCH_FIELD_FROM_STRUCT(base, 'field').
//
// Statements for which RequiresStructRewrite is false are returned as is.
// Otherwise the result is a statement of the same kind where only expressions
// changed; when no expression held a dereference the result is stmt itself.
func DesugarStructAccess(stmt ast.Statement) ast.Statement {
	if !RequiresStructRewrite(stmt) {
		return stmt
	}
	return transformStatementExprs(stmt, RewriteStructExpr)
}

// RewriteStructExpr lowers every dereference in expr, innermost first.
// A nil expr is returned as nil.
func RewriteStructExpr(expr ast.Expr) ast.Expr {
	if expr == nil {
		return nil
	}
	return expr.Transform(lowerStructAccess)
}

// lowerStructAccess is called by Transform on every node after its children
// have been lowered already.
func lowerStructAccess(expr ast.Expr) ast.Expr {
	switch e := expr.(type) {
	case *ast.Dereference:
		return fetchFieldFromStruct(e)

	// subscripts stay syntactic: arr[i]->f becomes FETCH_FIELD_FROM_STRUCT(arr[i], 'f')
	case *ast.Subscript, *ast.FunctionCall, *ast.Cast:
		return e

	case *ast.ColumnRef, ast.Literal:
		return e

	case *ast.ArithmeticBinary, *ast.ArithmeticUnary, *ast.Comparison, *ast.LogicalBinary,
		*ast.Not, *ast.IsNull, *ast.IsNotNull, *ast.Between, *ast.InPredicate, *ast.Like,
		*ast.SearchedCase, *ast.SimpleCase:
		return e

	default:
		panic(errors.Errorf("no struct access lowering rule for expression kind %T", expr))
	}
}

func fetchFieldFromStruct(deref *ast.Dereference) *ast.FunctionCall {
	if deref.Base == nil {
		panic(errors.Errorf("malformed dereference at %v: missing base expression", deref.Location()))
	}
	if deref.Field == "" {
		panic(errors.Errorf("malformed dereference of %s at %v: missing field name",
			ast.ExprString(deref.Base), deref.Location()))
	}
	return &ast.FunctionCall{
		Name: FetchFieldFromStruct,
		Args: []ast.Expr{
			deref.Base,
			&ast.StringLiteral{Value: deref.Field, NodeLocation: deref.NodeLocation},
		},
		NodeLocation: deref.NodeLocation,
	}
}

// transformStatementExprs applies f to every expression slot of stmt which
// holds an expression, and rebuilds stmt around the results. Nodes are only
// copied on the path to a changed expression.
func transformStatementExprs(stmt ast.Statement, f func(ast.Expr) ast.Expr) ast.Statement {
	switch s := stmt.(type) {
	case *ast.Query:
		return transformQuery(s, f)
	case *ast.CreateStreamAsSelect:
		q := transformQuery(s.Query, f)
		partitionBy, partitionChanged := transformSlot(s.PartitionBy, f)
		if q == s.Query && !partitionChanged {
			return s
		}
		copied := *s
		copied.Query = q
		copied.PartitionBy = partitionBy
		return &copied
	case *ast.CreateTableAsSelect:
		q := transformQuery(s.Query, f)
		if q == s.Query {
			return s
		}
		copied := *s
		copied.Query = q
		return &copied
	case *ast.InsertInto:
		q := transformQuery(s.Query, f)
		partitionBy, partitionChanged := transformSlot(s.PartitionBy, f)
		if q == s.Query && !partitionChanged {
			return s
		}
		copied := *s
		copied.Query = q
		copied.PartitionBy = partitionBy
		return &copied
	case *ast.CreateStream, *ast.CreateTable, *ast.DropStream, *ast.DropTable, *ast.TerminateQuery:
		// no expression slots
		return s
	default:
		panic(errors.Errorf("unhandled statement kind %T", stmt))
	}
}

func transformQuery(q *ast.Query, f func(ast.Expr) ast.Expr) *ast.Query {
	if q == nil {
		return nil
	}
	items, itemsChanged := transformSelectItems(q.Select.Items, f)
	from, fromChanged := transformRelation(q.From, f)
	where, whereChanged := transformSlot(q.Where, f)
	groupBy, groupByChanged := transformSlots(q.GroupBy, f)
	having, havingChanged := transformSlot(q.Having, f)
	if !itemsChanged && !fromChanged && !whereChanged && !groupByChanged && !havingChanged {
		return q
	}
	copied := *q
	copied.Select.Items = items
	copied.From = from
	copied.Where = where
	copied.GroupBy = groupBy
	copied.Having = having
	return &copied
}

func transformSelectItems(items []ast.SelectItem, f func(ast.Expr) ast.Expr) ([]ast.SelectItem, bool) {
	var transformed []ast.SelectItem
	for i, item := range items {
		next := item
		if column, ok := item.(*ast.SingleColumn); ok {
			if e, changed := transformSlot(column.Expr, f); changed {
				copied := *column
				copied.Expr = e
				next = &copied
			}
		}
		if next != item && transformed == nil {
			transformed = make([]ast.SelectItem, len(items))
			copy(transformed, items[:i])
		}
		if transformed != nil {
			transformed[i] = next
		}
	}
	if transformed == nil {
		return items, false
	}
	return transformed, true
}

func transformRelation(r ast.Relation, f func(ast.Expr) ast.Expr) (ast.Relation, bool) {
	switch r := r.(type) {
	case *ast.AliasedRelation:
		inner, changed := transformRelation(r.Relation, f)
		if !changed {
			return r, false
		}
		copied := *r
		copied.Relation = inner
		return &copied, true
	case *ast.Join:
		left, leftChanged := transformRelation(r.Left, f)
		right, rightChanged := transformRelation(r.Right, f)
		criteria, criteriaChanged := transformSlot(r.Criteria, f)
		if !leftChanged && !rightChanged && !criteriaChanged {
			return r, false
		}
		copied := *r
		copied.Left = left
		copied.Right = right
		copied.Criteria = criteria
		return &copied, true
	default:
		// *ast.Table and absent FROM clauses hold no expressions
		return r, false
	}
}

func transformSlot(e ast.Expr, f func(ast.Expr) ast.Expr) (ast.Expr, bool) {
	if e == nil {
		return nil, false
	}
	next := f(e)
	return next, next != e
}

func transformSlots(exprs []ast.Expr, f func(ast.Expr) ast.Expr) ([]ast.Expr, bool) {
	var transformed []ast.Expr
	for i, e := range exprs {
		next, changed := transformSlot(e, f)
		if changed && transformed == nil {
			transformed = make([]ast.Expr, len(exprs))
			copy(transformed, exprs[:i])
		}
		if transformed != nil {
			transformed[i] = next
		}
	}
	if transformed == nil {
		return exprs, false
	}
	return transformed, true
}
