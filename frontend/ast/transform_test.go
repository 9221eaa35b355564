package ast_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/cottand/streamql/frontend/ast"
	c "github.com/cottand/streamql/frontend/construct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(e ast.Expr) ast.Expr { return e }

// upperColumns renames every column to upper case
func upperColumns(e ast.Expr) ast.Expr {
	col, ok := e.(*ast.ColumnRef)
	if !ok || col.Name == strings.ToUpper(col.Name) {
		return e
	}
	copied := *col
	copied.Name = strings.ToUpper(col.Name)
	return &copied
}

func TestTransformIdentitySharesTree(t *testing.T) {
	exprs := []ast.Expr{
		c.Col("", "A"),
		c.Deref(c.Subscript(c.Col("", "A"), c.Int(0)), "F"),
		c.Call("F", c.Col("", "A"), c.Neg(c.Col("", "B"))),
		c.Cast(c.Arith(ast.OpAdd, c.Col("", "A"), c.Double(1)), "DOUBLE"),
		c.Or(c.Not(&ast.IsNull{Value: c.Col("", "A")}), &ast.IsNotNull{Value: c.Col("", "B")}),
		&ast.Between{Value: c.Col("", "A"), Min: c.Int(1), Max: c.Int(2)},
		&ast.InPredicate{Value: c.Col("", "A"), List: []ast.Expr{c.Int(1), c.Int(2)}},
		&ast.Like{Value: c.Col("", "A"), Pattern: c.Str("%x")},
		c.Case(c.Null(), c.When(c.Bool(true), c.Col("", "A"))),
		&ast.SimpleCase{Operand: c.Col("", "A"), Whens: []ast.WhenClause{c.When(c.Int(1), c.Str("one"))}},
	}

	for _, e := range exprs {
		t.Run(e.NodeName(), func(t *testing.T) {
			assert.Same(t, e, e.Transform(identity))
		})
	}
}

func TestTransformCopiesOnlyChangedPath(t *testing.T) {
	untouched := c.Call("F", c.Col("", "X"))
	changed := c.Col("", "b")
	root := c.And(untouched, c.Compare(ast.OpEqual, changed, c.Int(1)))

	transformed := root.Transform(upperColumns)

	require.IsType(t, &ast.LogicalBinary{}, transformed)
	got := transformed.(*ast.LogicalBinary)
	assert.NotSame(t, root, got)
	assert.Same(t, untouched, got.Left)
	assert.Equal(t, "(F(X) AND (B = 1))", ast.ExprString(got))
	// receiver untouched
	assert.Equal(t, "(F(X) AND (b = 1))", ast.ExprString(root))
}

func TestTransformIsBottomUp(t *testing.T) {
	e := c.Deref(c.Subscript(c.Col("", "A"), c.Int(0)), "F")
	var visited []string
	e.Transform(func(e ast.Expr) ast.Expr {
		visited = append(visited, e.NodeName())
		return e
	})
	assert.Equal(t, []string{"column", "integer", "subscript", "deref"}, visited)
}

func TestTransformRewritesCaseBranches(t *testing.T) {
	simple := &ast.SimpleCase{
		Operand: c.Col("", "a"),
		Whens:   []ast.WhenClause{c.When(c.Int(1), c.Col("", "x")), c.When(c.Int(2), c.Str("y"))},
		Default: c.Col("", "z"),
	}

	transformed := simple.Transform(upperColumns)

	assert.Equal(t, "(CASE A WHEN 1 THEN X WHEN 2 THEN 'y' ELSE Z END)", ast.ExprString(transformed))
	assert.Equal(t, "(CASE a WHEN 1 THEN x WHEN 2 THEN 'y' ELSE z END)", ast.ExprString(simple))
}

func TestInspect(t *testing.T) {
	e := c.Call("F", c.Deref(c.Col("", "A"), "X"), c.Subscript(c.Col("", "B"), c.Int(1)))

	var all []string
	ast.Inspect(e, func(e ast.Expr) bool {
		all = append(all, e.NodeName())
		return true
	})
	assert.Equal(t, []string{"call", "deref", "column", "subscript", "column", "integer"}, all)

	var pruned []string
	ast.Inspect(e, func(e ast.Expr) bool {
		pruned = append(pruned, e.NodeName())
		return e.NodeName() != "subscript"
	})
	assert.Equal(t, []string{"call", "deref", "column", "subscript"}, pruned)

	assert.NotPanics(t, func() { ast.Inspect(nil, func(ast.Expr) bool { return true }) })
}

func TestChildren(t *testing.T) {
	assert.Empty(t, c.Col("", "A").Children())
	assert.Empty(t, c.Str("a").Children())
	assert.Len(t, c.Deref(nil, "F").Children(), 0)
	assert.Len(t, c.Case(nil, c.When(c.Bool(true), c.Int(1))).Children(), 2)
	assert.Len(t, c.Case(c.Int(0), c.When(c.Bool(true), c.Int(1))).Children(), 3)
}

func TestNodeLoggerRendersNodesLazily(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := ast.NodeLogger(slog.New(slog.NewTextHandler(buf, nil)))

	logger.Info("lowered", "expr", c.Deref(c.Col("O", "ADDRESS"), "CITY"))
	logger.With("statement", c.SelectFrom("O", c.Col("", "ID"))).Info("desugared")

	assert.Contains(t, buf.String(), `expr=O.ADDRESS->CITY`)
	assert.Contains(t, buf.String(), `statement="SELECT ID\nFROM O"`)
}
