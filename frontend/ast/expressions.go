package ast

var (
	_ Expr = (*ColumnRef)(nil)
	_ Expr = (*Dereference)(nil)
	_ Expr = (*Subscript)(nil)
	_ Expr = (*FunctionCall)(nil)
	_ Expr = (*Cast)(nil)
	_ Expr = (*ArithmeticBinary)(nil)
	_ Expr = (*ArithmeticUnary)(nil)
	_ Expr = (*Comparison)(nil)
	_ Expr = (*LogicalBinary)(nil)
	_ Expr = (*Not)(nil)
	_ Expr = (*IsNull)(nil)
	_ Expr = (*IsNotNull)(nil)
	_ Expr = (*Between)(nil)
	_ Expr = (*InPredicate)(nil)
	_ Expr = (*Like)(nil)
	_ Expr = (*SearchedCase)(nil)
	_ Expr = (*SimpleCase)(nil)
)

func (e *ColumnRef) NodeName() string        { return "column" }
func (e *Dereference) NodeName() string      { return "deref" }
func (e *Subscript) NodeName() string        { return "subscript" }
func (e *FunctionCall) NodeName() string     { return "call" }
func (e *Cast) NodeName() string             { return "cast" }
func (e *ArithmeticBinary) NodeName() string { return "arithmetic" }
func (e *ArithmeticUnary) NodeName() string  { return "negate" }
func (e *Comparison) NodeName() string       { return "comparison" }
func (e *LogicalBinary) NodeName() string    { return "logical" }
func (e *Not) NodeName() string              { return "not" }
func (e *IsNull) NodeName() string           { return "isNull" }
func (e *IsNotNull) NodeName() string        { return "isNotNull" }
func (e *Between) NodeName() string          { return "between" }
func (e *InPredicate) NodeName() string      { return "in" }
func (e *Like) NodeName() string             { return "like" }
func (e *SearchedCase) NodeName() string     { return "case" }
func (e *SimpleCase) NodeName() string       { return "simpleCase" }

func (*ColumnRef) exprNode()        {}
func (*Dereference) exprNode()      {}
func (*Subscript) exprNode()        {}
func (*FunctionCall) exprNode()     {}
func (*Cast) exprNode()             {}
func (*ArithmeticBinary) exprNode() {}
func (*ArithmeticUnary) exprNode()  {}
func (*Comparison) exprNode()       {}
func (*LogicalBinary) exprNode()    {}
func (*Not) exprNode()              {}
func (*IsNull) exprNode()           {}
func (*IsNotNull) exprNode()        {}
func (*Between) exprNode()          {}
func (*InPredicate) exprNode()      {}
func (*Like) exprNode()             {}
func (*SearchedCase) exprNode()     {}
func (*SimpleCase) exprNode()       {}

// ColumnRef is a possibly qualified column: `ORDERS.ORDERID`
type ColumnRef struct {
	// Qualifier is the source relation or its alias. Empty if unqualified.
	Qualifier string
	Name      string
	NodeLocation
}

func (e *ColumnRef) Transform(f func(Expr) Expr) Expr { return f(e) }
func (e *ColumnRef) Children() []Expr                 { return nil }

// Dereference selects a named field of a struct-typed value: `ITEMINFO->CATEGORY`
type Dereference struct {
	Base  Expr
	Field string
	NodeLocation
}

func (e *Dereference) Transform(f func(Expr) Expr) Expr {
	base, changed := transformOptional(e.Base, f)
	if !changed {
		return f(e)
	}
	copied := *e
	copied.Base = base
	return f(&copied)
}
func (e *Dereference) Children() []Expr { return nonNil(e.Base) }

// Subscript is array or map element access: `ARRAYCOL[0]`, `MAPCOL['key']`
type Subscript struct {
	Base  Expr
	Index Expr
	NodeLocation
}

func (e *Subscript) Transform(f func(Expr) Expr) Expr {
	base, baseChanged := transformOptional(e.Base, f)
	index, indexChanged := transformOptional(e.Index, f)
	if !baseChanged && !indexChanged {
		return f(e)
	}
	copied := *e
	copied.Base = base
	copied.Index = index
	return f(&copied)
}
func (e *Subscript) Children() []Expr { return nonNil(e.Base, e.Index) }

// FunctionCall is a call to a scalar or aggregate function: `SUBSTRING(NAME, 1, 2)`
type FunctionCall struct {
	Name string
	Args []Expr
	NodeLocation
}

func (e *FunctionCall) Transform(f func(Expr) Expr) Expr {
	args, changed := transformAll(e.Args, f)
	if !changed {
		return f(e)
	}
	copied := *e
	copied.Args = args
	return f(&copied)
}
func (e *FunctionCall) Children() []Expr { return e.Args }

// Cast converts Expr to Type: `CAST(ID AS INTEGER)`
type Cast struct {
	Expr Expr
	Type Type
	NodeLocation
}

func (e *Cast) Transform(f func(Expr) Expr) Expr {
	inner, changed := transformOptional(e.Expr, f)
	if !changed {
		return f(e)
	}
	copied := *e
	copied.Expr = inner
	return f(&copied)
}
func (e *Cast) Children() []Expr { return nonNil(e.Expr) }

// ArithmeticOp is the operator of an ArithmeticBinary, stored as its SQL symbol.
type ArithmeticOp string

const (
	OpAdd      ArithmeticOp = "+"
	OpSubtract ArithmeticOp = "-"
	OpMultiply ArithmeticOp = "*"
	OpDivide   ArithmeticOp = "/"
	OpModulus  ArithmeticOp = "%"
)

// ArithmeticBinary: `PRICE * QUANTITY`
type ArithmeticBinary struct {
	Op    ArithmeticOp
	Left  Expr
	Right Expr
	NodeLocation
}

func (e *ArithmeticBinary) Transform(f func(Expr) Expr) Expr {
	left, leftChanged := transformOptional(e.Left, f)
	right, rightChanged := transformOptional(e.Right, f)
	if !leftChanged && !rightChanged {
		return f(e)
	}
	copied := *e
	copied.Left = left
	copied.Right = right
	return f(&copied)
}
func (e *ArithmeticBinary) Children() []Expr { return nonNil(e.Left, e.Right) }

// Sign of an ArithmeticUnary.
type Sign string

const (
	SignPlus  Sign = "+"
	SignMinus Sign = "-"
)

// ArithmeticUnary: `-PRICE`
type ArithmeticUnary struct {
	Sign  Sign
	Value Expr
	NodeLocation
}

func (e *ArithmeticUnary) Transform(f func(Expr) Expr) Expr {
	value, changed := transformOptional(e.Value, f)
	if !changed {
		return f(e)
	}
	copied := *e
	copied.Value = value
	return f(&copied)
}
func (e *ArithmeticUnary) Children() []Expr { return nonNil(e.Value) }

// ComparisonOp is the operator of a Comparison, stored as its SQL syntax.
type ComparisonOp string

const (
	OpEqual              ComparisonOp = "="
	OpNotEqual           ComparisonOp = "<>"
	OpLessThan           ComparisonOp = "<"
	OpLessThanOrEqual    ComparisonOp = "<="
	OpGreaterThan        ComparisonOp = ">"
	OpGreaterThanOrEqual ComparisonOp = ">="
	OpIsDistinctFrom     ComparisonOp = "IS DISTINCT FROM"
)

// Comparison: `ORDERUNITS > 5`
type Comparison struct {
	Op    ComparisonOp
	Left  Expr
	Right Expr
	NodeLocation
}

func (e *Comparison) Transform(f func(Expr) Expr) Expr {
	left, leftChanged := transformOptional(e.Left, f)
	right, rightChanged := transformOptional(e.Right, f)
	if !leftChanged && !rightChanged {
		return f(e)
	}
	copied := *e
	copied.Left = left
	copied.Right = right
	return f(&copied)
}
func (e *Comparison) Children() []Expr { return nonNil(e.Left, e.Right) }

// LogicalOp is AND or OR.
type LogicalOp string

const (
	OpAnd LogicalOp = "AND"
	OpOr  LogicalOp = "OR"
)

// LogicalBinary: `A AND B`
type LogicalBinary struct {
	Op    LogicalOp
	Left  Expr
	Right Expr
	NodeLocation
}

func (e *LogicalBinary) Transform(f func(Expr) Expr) Expr {
	left, leftChanged := transformOptional(e.Left, f)
	right, rightChanged := transformOptional(e.Right, f)
	if !leftChanged && !rightChanged {
		return f(e)
	}
	copied := *e
	copied.Left = left
	copied.Right = right
	return f(&copied)
}
func (e *LogicalBinary) Children() []Expr { return nonNil(e.Left, e.Right) }

// Not: `NOT A`
type Not struct {
	Value Expr
	NodeLocation
}

func (e *Not) Transform(f func(Expr) Expr) Expr {
	value, changed := transformOptional(e.Value, f)
	if !changed {
		return f(e)
	}
	copied := *e
	copied.Value = value
	return f(&copied)
}
func (e *Not) Children() []Expr { return nonNil(e.Value) }

// IsNull: `A IS NULL`
type IsNull struct {
	Value Expr
	NodeLocation
}

func (e *IsNull) Transform(f func(Expr) Expr) Expr {
	value, changed := transformOptional(e.Value, f)
	if !changed {
		return f(e)
	}
	copied := *e
	copied.Value = value
	return f(&copied)
}
func (e *IsNull) Children() []Expr { return nonNil(e.Value) }

// IsNotNull: `A IS NOT NULL`
type IsNotNull struct {
	Value Expr
	NodeLocation
}

func (e *IsNotNull) Transform(f func(Expr) Expr) Expr {
	value, changed := transformOptional(e.Value, f)
	if !changed {
		return f(e)
	}
	copied := *e
	copied.Value = value
	return f(&copied)
}
func (e *IsNotNull) Children() []Expr { return nonNil(e.Value) }

// Between: `A BETWEEN MIN AND MAX`
type Between struct {
	Value Expr
	Min   Expr
	Max   Expr
	NodeLocation
}

func (e *Between) Transform(f func(Expr) Expr) Expr {
	value, valueChanged := transformOptional(e.Value, f)
	low, minChanged := transformOptional(e.Min, f)
	high, maxChanged := transformOptional(e.Max, f)
	if !valueChanged && !minChanged && !maxChanged {
		return f(e)
	}
	copied := *e
	copied.Value = value
	copied.Min = low
	copied.Max = high
	return f(&copied)
}
func (e *Between) Children() []Expr { return nonNil(e.Value, e.Min, e.Max) }

// InPredicate: `A IN (1, 2, 3)`
type InPredicate struct {
	Value Expr
	List  []Expr
	NodeLocation
}

func (e *InPredicate) Transform(f func(Expr) Expr) Expr {
	value, valueChanged := transformOptional(e.Value, f)
	list, listChanged := transformAll(e.List, f)
	if !valueChanged && !listChanged {
		return f(e)
	}
	copied := *e
	copied.Value = value
	copied.List = list
	return f(&copied)
}
func (e *InPredicate) Children() []Expr { return append(nonNil(e.Value), e.List...) }

// Like: `NAME LIKE '%a'`
type Like struct {
	Value   Expr
	Pattern Expr
	NodeLocation
}

func (e *Like) Transform(f func(Expr) Expr) Expr {
	value, valueChanged := transformOptional(e.Value, f)
	pattern, patternChanged := transformOptional(e.Pattern, f)
	if !valueChanged && !patternChanged {
		return f(e)
	}
	copied := *e
	copied.Value = value
	copied.Pattern = pattern
	return f(&copied)
}
func (e *Like) Children() []Expr { return nonNil(e.Value, e.Pattern) }

// WhenClause is one `WHEN Operand THEN Result` arm of a CASE expression.
type WhenClause struct {
	Operand Expr
	Result  Expr
	NodeLocation
}

func (w WhenClause) transform(f func(Expr) Expr) (WhenClause, bool) {
	operand, operandChanged := transformOptional(w.Operand, f)
	result, resultChanged := transformOptional(w.Result, f)
	w.Operand = operand
	w.Result = result
	return w, operandChanged || resultChanged
}

func transformWhens(whens []WhenClause, f func(Expr) Expr) ([]WhenClause, bool) {
	var transformed []WhenClause
	for i, w := range whens {
		next, changed := w.transform(f)
		if changed && transformed == nil {
			transformed = make([]WhenClause, len(whens))
			copy(transformed, whens[:i])
		}
		if transformed != nil {
			transformed[i] = next
		}
	}
	if transformed == nil {
		return whens, false
	}
	return transformed, true
}

func whenChildren(whens []WhenClause) []Expr {
	var children []Expr
	for _, w := range whens {
		children = append(children, nonNil(w.Operand, w.Result)...)
	}
	return children
}

// SearchedCase: `CASE WHEN A THEN B ELSE C END`
type SearchedCase struct {
	Whens   []WhenClause
	Default Expr
	NodeLocation
}

func (e *SearchedCase) Transform(f func(Expr) Expr) Expr {
	whens, whensChanged := transformWhens(e.Whens, f)
	def, defaultChanged := transformOptional(e.Default, f)
	if !whensChanged && !defaultChanged {
		return f(e)
	}
	copied := *e
	copied.Whens = whens
	copied.Default = def
	return f(&copied)
}
func (e *SearchedCase) Children() []Expr {
	return append(whenChildren(e.Whens), nonNil(e.Default)...)
}

// SimpleCase: `CASE X WHEN 1 THEN B ELSE C END`
type SimpleCase struct {
	Operand Expr
	Whens   []WhenClause
	Default Expr
	NodeLocation
}

func (e *SimpleCase) Transform(f func(Expr) Expr) Expr {
	operand, operandChanged := transformOptional(e.Operand, f)
	whens, whensChanged := transformWhens(e.Whens, f)
	def, defaultChanged := transformOptional(e.Default, f)
	if !operandChanged && !whensChanged && !defaultChanged {
		return f(e)
	}
	copied := *e
	copied.Operand = operand
	copied.Whens = whens
	copied.Default = def
	return f(&copied)
}
func (e *SimpleCase) Children() []Expr {
	children := append(nonNil(e.Operand), whenChildren(e.Whens)...)
	return append(children, nonNil(e.Default)...)
}
