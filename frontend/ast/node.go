package ast

// Node is the base interface for all AST nodes.
type Node interface {
	Locator
	// NodeName is the name of the syntax-type of the node, as used in logs
	// and in the YAML document format.
	NodeName() string
}

// Expr is the interface for all expression nodes in the AST.
//
// The set of expressions is closed: every implementation lives in this package
// and is listed in expressions.go and literals.go.
type Expr interface {
	Node

	// Transform should, in order:
	//  - call Transform(f) on any child expressions
	//  - if no child changed, call f on this Expr
	//  - otherwise call f on a shallow copy of this Expr holding the new children
	// The receiver is never modified, and subtrees which f leaves alone are
	// shared with the result rather than copied.
	Transform(f func(Expr) Expr) Expr

	// Children returns the direct child expressions, in source order.
	Children() []Expr

	exprNode() // Marker method to distinguish expressions
}

// Statement is the interface for all statement nodes in the AST.
//
// The set of statements is closed: every implementation lives in statements.go.
type Statement interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// Inspect traverses expr depth-first, parents before children. If f returns false
// the children of the current node are skipped. Inspect does not modify anything.
func Inspect(expr Expr, f func(Expr) bool) {
	if expr == nil || !f(expr) {
		return
	}
	for _, child := range expr.Children() {
		Inspect(child, f)
	}
}

// transformAll applies Transform(f) to each of exprs. It returns exprs itself
// when no element changed, so that callers can keep sharing the slice.
func transformAll(exprs []Expr, f func(Expr) Expr) ([]Expr, bool) {
	var transformed []Expr
	for i, e := range exprs {
		next := e.Transform(f)
		if next != e && transformed == nil {
			transformed = make([]Expr, len(exprs))
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

// transformOptional is Transform for child slots which may be left empty.
func transformOptional(e Expr, f func(Expr) Expr) (Expr, bool) {
	if e == nil {
		return nil, false
	}
	next := e.Transform(f)
	return next, next != e
}

// nonNil filters out empty optional child slots.
func nonNil(exprs ...Expr) []Expr {
	children := make([]Expr, 0, len(exprs))
	for _, e := range exprs {
		if e != nil {
			children = append(children, e)
		}
	}
	return children
}
