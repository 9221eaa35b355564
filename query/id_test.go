package query_test

import (
	"testing"

	"github.com/cottand/streamql/query"
	"github.com/stretchr/testify/assert"
)

func TestIDEquality(t *testing.T) {
	a := query.NewID("CSAS_ORDERS_0")
	b := query.NewID("CSAS_ORDERS_0")
	c := query.NewID("CTAS_USERS_1")

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.Equal(t, "CSAS_ORDERS_0", a.String())
}

func TestIDAsMapKey(t *testing.T) {
	running := map[query.ID]string{
		query.NewID("CSAS_ORDERS_0"): "orders",
	}

	name, ok := running[query.NewID("CSAS_ORDERS_0")]
	assert.True(t, ok)
	assert.Equal(t, "orders", name)

	_, ok = running[query.NewID("csas_orders_0")]
	assert.False(t, ok, "IDs are case sensitive")
}

func TestZeroID(t *testing.T) {
	var zero query.ID
	assert.True(t, zero.IsZero())
	assert.Equal(t, zero, query.NewID(""))
	assert.False(t, query.NewID("q").IsZero())
}
