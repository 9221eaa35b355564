// Package astdoc reads and writes statements as YAML documents.
//
// A document holds a list of statements. Every statement, relation, select item
// and expression is a mapping with a `kind` key naming the node, as returned by
// its NodeName:
//
//	statements:
//	  - kind: query
//	    select:
//	      - kind: column
//	        expr:
//	          kind: deref
//	          base: {kind: column, qualifier: ORDERS, name: ADDRESS}
//	          field: STATE
//	    from: {kind: table, name: ORDERS}
//
// Any node may carry `line` and `column` keys with its location in the
// statement text.
package astdoc

import (
	"github.com/cottand/streamql/frontend/ast"
	"gopkg.in/yaml.v3"
)

type document struct {
	Statements []*statementDoc `yaml:"statements"`
}

// position is where a node was found in the YAML document, and what it
// was when it was not a mapping.
type position struct {
	at    ast.NodeLocation
	found string
}

func (p *position) record(node *yaml.Node) bool {
	p.at = ast.NodeLocation{Line: node.Line, Column: node.Column}
	if node.Kind != yaml.MappingNode {
		p.found = nodeKindName(node)
		return false
	}
	return true
}

func nodeKindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar " + node.ShortTag()
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}

// location is the statement text location a node may carry
type location struct {
	Line   int `yaml:"line,omitempty"`
	Column int `yaml:"column,omitempty"`
}

func (l location) nodeLocation() ast.NodeLocation {
	return ast.NodeLocation{Line: l.Line, Column: l.Column}
}

func locationOf(n ast.Locator) location {
	loc := n.Location()
	return location{Line: loc.Line, Column: loc.Column}
}

type statementDoc struct {
	Kind string `yaml:"kind"`

	queryDoc `yaml:",inline"`
	location `yaml:",inline"`

	Name        string       `yaml:"name,omitempty"`
	Target      string       `yaml:"target,omitempty"`
	NotExists   bool         `yaml:"notExists,omitempty"`
	IfExists    bool         `yaml:"ifExists,omitempty"`
	DeleteTopic bool         `yaml:"deleteTopic,omitempty"`
	Elements    []elementDoc `yaml:"elements,omitempty"`
	Query       *queryDoc    `yaml:"query,omitempty"`
	PartitionBy *exprDoc     `yaml:"partitionBy,omitempty"`
	Properties  yaml.Node    `yaml:"properties,omitempty"`
	QueryID     string       `yaml:"queryId,omitempty"`

	pos position
}

func (d *statementDoc) UnmarshalYAML(node *yaml.Node) error {
	if !d.pos.record(node) {
		return nil
	}
	type plain statementDoc
	return node.Decode((*plain)(d))
}

type queryDoc struct {
	Distinct bool         `yaml:"distinct,omitempty"`
	Select   []*itemDoc   `yaml:"select,omitempty"`
	From     *relationDoc `yaml:"from,omitempty"`
	Window   *windowDoc   `yaml:"window,omitempty"`
	Where    *exprDoc     `yaml:"where,omitempty"`
	GroupBy  []*exprDoc   `yaml:"groupBy,omitempty"`
	Having   *exprDoc     `yaml:"having,omitempty"`
	Limit    *int         `yaml:"limit,omitempty"`
}

type elementDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type itemDoc struct {
	Kind   string   `yaml:"kind"`
	Expr   *exprDoc `yaml:"expr,omitempty"`
	Alias  string   `yaml:"alias,omitempty"`
	Prefix string   `yaml:"prefix,omitempty"`

	location `yaml:",inline"`

	pos position
}

func (d *itemDoc) UnmarshalYAML(node *yaml.Node) error {
	if !d.pos.record(node) {
		return nil
	}
	type plain itemDoc
	return node.Decode((*plain)(d))
}

type relationDoc struct {
	Kind     string       `yaml:"kind"`
	Name     string       `yaml:"name,omitempty"`
	Relation *relationDoc `yaml:"relation,omitempty"`
	Alias    string       `yaml:"alias,omitempty"`
	Type     string       `yaml:"type,omitempty"`
	Left     *relationDoc `yaml:"left,omitempty"`
	Right    *relationDoc `yaml:"right,omitempty"`
	Within   *withinDoc   `yaml:"within,omitempty"`
	Criteria *exprDoc     `yaml:"criteria,omitempty"`

	location `yaml:",inline"`

	pos position
}

func (d *relationDoc) UnmarshalYAML(node *yaml.Node) error {
	if !d.pos.record(node) {
		return nil
	}
	type plain relationDoc
	return node.Decode((*plain)(d))
}

type timeSpanDoc struct {
	Size int64  `yaml:"size"`
	Unit string `yaml:"unit"`
}

type withinDoc struct {
	Before timeSpanDoc  `yaml:"before"`
	After  *timeSpanDoc `yaml:"after,omitempty"`
}

type windowDoc struct {
	Kind    string       `yaml:"kind"`
	Size    timeSpanDoc  `yaml:"size"`
	Advance *timeSpanDoc `yaml:"advance,omitempty"`
}

// exprDoc is the union of the fields of every expression kind. Value holds
// the scalar of a literal, or the operand of unary expressions.
type exprDoc struct {
	Kind      string     `yaml:"kind"`
	Qualifier string     `yaml:"qualifier,omitempty"`
	Name      string     `yaml:"name,omitempty"`
	Base      *exprDoc   `yaml:"base,omitempty"`
	Field     string     `yaml:"field,omitempty"`
	Index     *exprDoc   `yaml:"index,omitempty"`
	Args      []*exprDoc `yaml:"args,omitempty"`
	Expr      *exprDoc   `yaml:"expr,omitempty"`
	Type      string     `yaml:"type,omitempty"`
	Op        string     `yaml:"op,omitempty"`
	Left      *exprDoc   `yaml:"left,omitempty"`
	Right     *exprDoc   `yaml:"right,omitempty"`
	Value     yaml.Node  `yaml:"value,omitempty"`
	Min       *exprDoc   `yaml:"min,omitempty"`
	Max       *exprDoc   `yaml:"max,omitempty"`
	List      []*exprDoc `yaml:"list,omitempty"`
	Pattern   *exprDoc   `yaml:"pattern,omitempty"`
	Operand   *exprDoc   `yaml:"operand,omitempty"`
	Whens     []whenDoc  `yaml:"whens,omitempty"`
	Default   *exprDoc   `yaml:"default,omitempty"`

	location `yaml:",inline"`

	pos position
}

func (d *exprDoc) UnmarshalYAML(node *yaml.Node) error {
	if !d.pos.record(node) {
		return nil
	}
	type plain exprDoc
	return node.Decode((*plain)(d))
}

type whenDoc struct {
	When *exprDoc `yaml:"when"`
	Then *exprDoc `yaml:"then"`
}
