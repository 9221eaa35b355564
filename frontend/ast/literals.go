package ast

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Literal is an Expr holding a constant value. Literals are leaves, and they are
// the only expressions allowed as statement property values.
type Literal interface {
	Expr
	// Syntax is the canonical SQL rendering of the value.
	Syntax() string
	isLiteral()
}

var (
	_ Literal = (*StringLiteral)(nil)
	_ Literal = (*IntegerLiteral)(nil)
	_ Literal = (*LongLiteral)(nil)
	_ Literal = (*DoubleLiteral)(nil)
	_ Literal = (*DecimalLiteral)(nil)
	_ Literal = (*BooleanLiteral)(nil)
	_ Literal = (*NullLiteral)(nil)
)

// StringLiteral: `'key'`
type StringLiteral struct {
	Value string
	NodeLocation
}

// IntegerLiteral: `0`
type IntegerLiteral struct {
	Value int32
	NodeLocation
}

// LongLiteral is an integer literal too wide for an IntegerLiteral.
type LongLiteral struct {
	Value int64
	NodeLocation
}

// DoubleLiteral: `1.5`
type DoubleLiteral struct {
	Value float64
	NodeLocation
}

// DecimalLiteral is an exact numeric literal: `DECIMAL '10.25'`
type DecimalLiteral struct {
	Value decimal.Decimal
	NodeLocation
}

// BooleanLiteral: `true`
type BooleanLiteral struct {
	Value bool
	NodeLocation
}

// NullLiteral: `null`
type NullLiteral struct {
	NodeLocation
}

func (e *StringLiteral) NodeName() string  { return "string" }
func (e *IntegerLiteral) NodeName() string { return "integer" }
func (e *LongLiteral) NodeName() string    { return "long" }
func (e *DoubleLiteral) NodeName() string  { return "double" }
func (e *DecimalLiteral) NodeName() string { return "decimal" }
func (e *BooleanLiteral) NodeName() string { return "boolean" }
func (e *NullLiteral) NodeName() string    { return "null" }

// Syntax quotes the value, doubling any embedded single quote.
func (e *StringLiteral) Syntax() string {
	return "'" + strings.ReplaceAll(e.Value, "'", "''") + "'"
}
func (e *IntegerLiteral) Syntax() string { return strconv.FormatInt(int64(e.Value), 10) }
func (e *LongLiteral) Syntax() string    { return strconv.FormatInt(e.Value, 10) }
func (e *DoubleLiteral) Syntax() string {
	s := strconv.FormatFloat(e.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		// keep doubles distinguishable from integers when rendered
		s += ".0"
	}
	return s
}
func (e *DecimalLiteral) Syntax() string { return "DECIMAL '" + e.Value.String() + "'" }
func (e *BooleanLiteral) Syntax() string { return strconv.FormatBool(e.Value) }
func (e *NullLiteral) Syntax() string    { return "null" }

func (e *StringLiteral) Transform(f func(Expr) Expr) Expr  { return f(e) }
func (e *IntegerLiteral) Transform(f func(Expr) Expr) Expr { return f(e) }
func (e *LongLiteral) Transform(f func(Expr) Expr) Expr    { return f(e) }
func (e *DoubleLiteral) Transform(f func(Expr) Expr) Expr  { return f(e) }
func (e *DecimalLiteral) Transform(f func(Expr) Expr) Expr { return f(e) }
func (e *BooleanLiteral) Transform(f func(Expr) Expr) Expr { return f(e) }
func (e *NullLiteral) Transform(f func(Expr) Expr) Expr    { return f(e) }

func (e *StringLiteral) Children() []Expr  { return nil }
func (e *IntegerLiteral) Children() []Expr { return nil }
func (e *LongLiteral) Children() []Expr    { return nil }
func (e *DoubleLiteral) Children() []Expr  { return nil }
func (e *DecimalLiteral) Children() []Expr { return nil }
func (e *BooleanLiteral) Children() []Expr { return nil }
func (e *NullLiteral) Children() []Expr    { return nil }

func (*StringLiteral) exprNode()  {}
func (*IntegerLiteral) exprNode() {}
func (*LongLiteral) exprNode()    {}
func (*DoubleLiteral) exprNode()  {}
func (*DecimalLiteral) exprNode() {}
func (*BooleanLiteral) exprNode() {}
func (*NullLiteral) exprNode()    {}

func (*StringLiteral) isLiteral()  {}
func (*IntegerLiteral) isLiteral() {}
func (*LongLiteral) isLiteral()    {}
func (*DoubleLiteral) isLiteral()  {}
func (*DecimalLiteral) isLiteral() {}
func (*BooleanLiteral) isLiteral() {}
func (*NullLiteral) isLiteral()    {}
