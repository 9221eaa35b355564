package ast

// Type is a SQL type as written in a CAST or a column definition,
// for example `INTEGER`, `ARRAY<STRING>` or `DECIMAL(10, 2)`.
//
// Types are opaque to this package: they are carried and printed,
// never interpreted. Resolving them is left to semantic analysis.
type Type struct {
	Name string
}

func (t Type) String() string { return t.Name }
