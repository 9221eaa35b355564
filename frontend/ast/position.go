package ast

import (
	"fmt"
)

// Locator allows finding the location of a node in the original statement text.
type Locator interface {
	Location() NodeLocation
}

// NodeLocation is the line and column where a node starts in the statement text.
// The zero value means the node has no known location, which is the case for
// nodes synthesised by a rewrite or built by hand.
type NodeLocation struct {
	Line   int
	Column int
}

// Location returns l, so that any node embedding a NodeLocation is a Locator.
func (l NodeLocation) Location() NodeLocation { return l }

// IsKnown reports whether l points somewhere in the original text.
func (l NodeLocation) IsKnown() bool { return l.Line > 0 }

// String returns "line:column", or "unknown" for the zero NodeLocation.
func (l NodeLocation) String() string {
	if !l.IsKnown() {
		return "unknown"
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// LocationOf returns the location of n, or the zero NodeLocation if n is nil.
func LocationOf(n Locator) NodeLocation {
	if n == nil {
		return NodeLocation{}
	}
	return n.Location()
}
