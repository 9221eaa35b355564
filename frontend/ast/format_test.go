package ast_test

import (
	"testing"

	"github.com/cottand/streamql/frontend/ast"
	c "github.com/cottand/streamql/frontend/construct"
	"github.com/cottand/streamql/query"
	"github.com/stretchr/testify/assert"
)

func TestExprString(t *testing.T) {
	cases := map[string]struct {
		expr     ast.Expr
		expected string
	}{
		"unqualified column":  {c.Col("", "ID"), "ID"},
		"qualified column":    {c.Col("ORDERS", "ID"), "ORDERS.ID"},
		"dereference chain":   {c.DerefPath(c.Col("O", "ITEMINFO"), "CATEGORY", "NAME"), "O.ITEMINFO->CATEGORY->NAME"},
		"string escaping":     {c.Str("it's"), "'it''s'"},
		"integer":             {c.Int(-3), "-3"},
		"long":                {c.Long(9000000000), "9000000000"},
		"integral double":     {c.Double(2), "2.0"},
		"double":              {c.Double(0.25), "0.25"},
		"decimal":             {c.Decimal("10.50"), "DECIMAL '10.5'"},
		"boolean":             {c.Bool(true), "true"},
		"null":                {c.Null(), "null"},
		"call without args":   {c.Call("NOW"), "NOW()"},
		"subscript":           {c.Subscript(c.Col("", "M"), c.Str("k")), "M['k']"},
		"cast":                {c.Cast(c.Col("", "X"), "BIGINT"), "CAST(X AS BIGINT)"},
		"arithmetic":          {c.Arith(ast.OpModulus, c.Col("", "A"), c.Int(2)), "(A % 2)"},
		"distinct from":       {c.Compare(ast.OpIsDistinctFrom, c.Col("", "A"), c.Null()), "(A IS DISTINCT FROM null)"},
		"and":                 {c.And(c.Bool(true), c.Bool(false)), "(true AND false)"},
		"case without else":   {c.Case(nil, c.When(c.Bool(true), c.Int(1))), "(CASE WHEN true THEN 1 END)"},
		"nested subscripting": {c.Subscript(c.Subscript(c.Col("", "A"), c.Int(0)), c.Int(1)), "A[0][1]"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ast.ExprString(tc.expr))
		})
	}
}

func TestStatementString(t *testing.T) {
	props := c.Props(map[string]ast.Literal{
		"VALUE_FORMAT": c.Str("JSON"),
		"KAFKA_TOPIC":  c.Str("orders"),
		"PARTITIONS":   c.Int(4),
	})

	cases := map[string]struct {
		stmt     ast.Statement
		expected string
	}{
		"create stream": {
			&ast.CreateStream{
				Name: "ORDERS",
				Elements: []ast.TableElement{
					{Name: "ORDERID", Type: ast.Type{Name: "BIGINT"}},
					{Name: "ADDRESS", Type: ast.Type{Name: "STRUCT<CITY STRING, STATE STRING>"}},
				},
				Properties: props,
			},
			"CREATE STREAM ORDERS (ORDERID BIGINT, ADDRESS STRUCT<CITY STRING, STATE STRING>) WITH (KAFKA_TOPIC='orders', PARTITIONS=4, VALUE_FORMAT='JSON')",
		},
		"create table if not exists": {
			&ast.CreateTable{Name: "USERS", NotExists: true},
			"CREATE TABLE IF NOT EXISTS USERS",
		},
		"drop stream": {
			&ast.DropStream{Name: "ORDERS", IfExists: true, DeleteTopic: true},
			"DROP STREAM IF EXISTS ORDERS DELETE TOPIC",
		},
		"drop table": {
			&ast.DropTable{Name: "USERS"},
			"DROP TABLE USERS",
		},
		"terminate": {
			&ast.TerminateQuery{QueryID: query.NewID("CSAS_ORDERS_0")},
			"TERMINATE CSAS_ORDERS_0",
		},
		"distinct hopping window": {
			&ast.Query{
				Select: ast.Select{Distinct: true, Items: []ast.SelectItem{&ast.AllColumns{}}},
				From:   c.Table("ORDERS"),
				Window: &ast.WindowExpression{
					Kind:    ast.Hopping,
					Size:    ast.TimeSpan{Size: 1, Unit: ast.Minutes},
					Advance: ast.TimeSpan{Size: 10, Unit: ast.Seconds},
				},
			},
			"SELECT DISTINCT *\nFROM ORDERS\nWINDOW HOPPING (SIZE 1 MINUTES, ADVANCE BY 10 SECONDS)",
		},
		"session window": {
			&ast.Query{
				Select: ast.Select{Items: []ast.SelectItem{c.Item(c.Call("COUNT", c.Col("", "ID")), "N")}},
				From:   c.Table("ORDERS"),
				Window: &ast.WindowExpression{Kind: ast.Session, Size: ast.TimeSpan{Size: 5, Unit: ast.Minutes}},
			},
			"SELECT COUNT(ID) AS N\nFROM ORDERS\nWINDOW SESSION (5 MINUTES)",
		},
		"join within": {
			c.Query(
				&ast.Join{
					Type:     ast.JoinInner,
					Left:     c.Table("A"),
					Right:    c.Table("B"),
					Within:   &ast.WithinExpression{Before: ast.TimeSpan{Size: 1, Unit: ast.Hours}, After: ast.TimeSpan{Size: 2, Unit: ast.Hours}},
					Criteria: c.Compare(ast.OpEqual, c.Col("A", "ID"), c.Col("B", "ID")),
				},
				&ast.AllColumns{Prefix: "A"},
			),
			"SELECT A.*\nFROM A INNER JOIN B WITHIN (1 HOURS, 2 HOURS) ON (A.ID = B.ID)",
		},
		"insert into with partition": {
			&ast.InsertInto{
				Target:      "ALL_ORDERS",
				Query:       c.SelectFrom("ORDERS", c.Col("", "ID")),
				PartitionBy: c.Col("", "ID"),
			},
			"INSERT INTO ALL_ORDERS SELECT ID\nFROM ORDERS\nPARTITION BY ID",
		},
		"create table as select": {
			&ast.CreateTableAsSelect{Name: "T", Query: c.SelectFrom("ORDERS", c.Col("", "ID"))},
			"CREATE TABLE T AS SELECT ID\nFROM ORDERS",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ast.StatementString(tc.stmt))
		})
	}
}

func TestNodeLocation(t *testing.T) {
	assert.Equal(t, "unknown", ast.NodeLocation{}.String())
	assert.False(t, ast.NodeLocation{}.IsKnown())
	assert.Equal(t, "4:12", ast.NodeLocation{Line: 4, Column: 12}.String())

	col := &ast.ColumnRef{Name: "ID", NodeLocation: ast.NodeLocation{Line: 1, Column: 8}}
	assert.Equal(t, ast.NodeLocation{Line: 1, Column: 8}, ast.LocationOf(col))
	assert.Equal(t, ast.NodeLocation{}, ast.LocationOf(nil))
}
