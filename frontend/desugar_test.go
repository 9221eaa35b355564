package frontend

import (
	"slices"
	"testing"

	"github.com/cottand/streamql/frontend/ast"
	c "github.com/cottand/streamql/frontend/construct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesugarPhaseReports(t *testing.T) {
	q := c.SelectFrom("ORDERS",
		c.DerefPath(c.Col("ORDERS", "ITEMINFO"), "CATEGORY", "NAME"),
		c.Deref(c.Col("ORDERS", "ADDRESS"), "STATE"),
	)
	q.Where = c.Compare(ast.OpEqual, c.Deref(c.Col("ORDERS", "ADDRESS"), "STATE"), c.Str("CA"))
	ctas := &ast.CreateTableAsSelect{Name: "IDS", Query: c.SelectFrom("ORDERS", c.Col("ORDERS", "ID"))}
	table := &ast.CreateTable{Name: "USERS"}

	desugared, reports := DesugarPhase([]ast.Statement{q, table, ctas})

	require.Len(t, desugared, 3)
	require.Len(t, reports, 3)

	assert.Equal(t, "query", reports[0].Kind)
	assert.True(t, reports[0].Required)
	assert.Equal(t, 4, reports[0].Lowered)
	fields := reports[0].Fields.Slice()
	slices.Sort(fields)
	assert.Equal(t, []string{"CATEGORY", "NAME", "STATE"}, fields)
	assert.Equal(t, "SELECT FETCH_FIELD_FROM_STRUCT(FETCH_FIELD_FROM_STRUCT(ORDERS.ITEMINFO, 'CATEGORY'), 'NAME'), FETCH_FIELD_FROM_STRUCT(ORDERS.ADDRESS, 'STATE')\n"+
		"FROM ORDERS\n"+
		"WHERE (FETCH_FIELD_FROM_STRUCT(ORDERS.ADDRESS, 'STATE') = 'CA')",
		ast.StatementString(desugared[0]))

	assert.Equal(t, "createTable", reports[1].Kind)
	assert.False(t, reports[1].Required)
	assert.Zero(t, reports[1].Lowered)
	assert.Zero(t, reports[1].Fields.Size())
	assert.Same(t, table, desugared[1])

	assert.True(t, reports[2].Required)
	assert.Zero(t, reports[2].Lowered)
	assert.Same(t, ctas, desugared[2])
}

func TestDesugarPhaseLeavesInputAlone(t *testing.T) {
	q := c.SelectFrom("ORDERS", c.Deref(c.Col("ORDERS", "ADDRESS"), "CITY"))
	stmts := []ast.Statement{q}

	desugared, _ := DesugarPhase(stmts)

	assert.Same(t, q, stmts[0])
	assert.NotSame(t, q, desugared[0])
	assert.Equal(t, "SELECT ORDERS.ADDRESS->CITY\nFROM ORDERS", ast.StatementString(stmts[0]))
}

func TestDesugarPhaseEmpty(t *testing.T) {
	desugared, reports := DesugarPhase(nil)

	assert.Empty(t, desugared)
	assert.Empty(t, reports)
}
