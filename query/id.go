// Package query holds identifiers of running streaming queries.
package query

import (
	"hash/fnv"
)

// ID names a running persistent query, for example `CSAS_ORDERS_0`.
//
// An ID is opaque: two IDs are equal exactly when the strings they wrap are
// equal, and the zero ID wraps the empty string. ID is comparable, so it can be
// used as a map key directly.
type ID struct {
	id string
}

func NewID(id string) ID {
	return ID{id: id}
}

func (q ID) String() string { return q.id }

// IsZero reports whether q wraps the empty string.
func (q ID) IsZero() bool { return q.id == "" }

// Hash returns a hash value for the ID, based on the wrapped string only
func (q ID) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(q.id))
	return h.Sum64()
}
