package ast

import (
	"github.com/cottand/streamql/query"
)

// All statement types implement the Statement interface

var (
	_ Statement = (*Query)(nil)
	_ Statement = (*CreateStreamAsSelect)(nil)
	_ Statement = (*CreateTableAsSelect)(nil)
	_ Statement = (*InsertInto)(nil)
	_ Statement = (*CreateStream)(nil)
	_ Statement = (*CreateTable)(nil)
	_ Statement = (*DropStream)(nil)
	_ Statement = (*DropTable)(nil)
	_ Statement = (*TerminateQuery)(nil)
)

func (s *Query) NodeName() string                { return "query" }
func (s *CreateStreamAsSelect) NodeName() string { return "createStreamAsSelect" }
func (s *CreateTableAsSelect) NodeName() string  { return "createTableAsSelect" }
func (s *InsertInto) NodeName() string           { return "insertInto" }
func (s *CreateStream) NodeName() string         { return "createStream" }
func (s *CreateTable) NodeName() string          { return "createTable" }
func (s *DropStream) NodeName() string           { return "dropStream" }
func (s *DropTable) NodeName() string            { return "dropTable" }
func (s *TerminateQuery) NodeName() string       { return "terminate" }

func (*Query) stmtNode()                {}
func (*CreateStreamAsSelect) stmtNode() {}
func (*CreateTableAsSelect) stmtNode()  {}
func (*InsertInto) stmtNode()           {}
func (*CreateStream) stmtNode()         {}
func (*CreateTable) stmtNode()          {}
func (*DropStream) stmtNode()           {}
func (*DropTable) stmtNode()            {}
func (*TerminateQuery) stmtNode()       {}

// Query is a SELECT over a stream or table.
type Query struct {
	Select  Select
	From    Relation
	Window  *WindowExpression // optional
	Where   Expr              // optional
	GroupBy []Expr
	Having  Expr // optional
	Limit   *int // optional
	NodeLocation
}

// Select is the projection of a Query.
type Select struct {
	Distinct bool
	Items    []SelectItem
	NodeLocation
}

// SelectItem is either a SingleColumn or AllColumns.
type SelectItem interface {
	Node
	selectItem()
}

var (
	_ SelectItem = (*SingleColumn)(nil)
	_ SelectItem = (*AllColumns)(nil)
)

// SingleColumn is one projected expression: `ITEMINFO->NAME AS N`
type SingleColumn struct {
	Expr  Expr
	Alias string // empty if not aliased
	NodeLocation
}

// AllColumns is `*`, or `O.*` when Prefix is set.
type AllColumns struct {
	Prefix string
	NodeLocation
}

func (i *SingleColumn) NodeName() string { return "column" }
func (i *AllColumns) NodeName() string   { return "all" }
func (*SingleColumn) selectItem()        {}
func (*AllColumns) selectItem()          {}

// Relation is a source of rows in a FROM clause.
type Relation interface {
	Node
	relation()
}

var (
	_ Relation = (*Table)(nil)
	_ Relation = (*AliasedRelation)(nil)
	_ Relation = (*Join)(nil)
)

// Table is a named stream or table.
type Table struct {
	Name string
	NodeLocation
}

// AliasedRelation: `ORDERS O`
type AliasedRelation struct {
	Relation Relation
	Alias    string
	NodeLocation
}

type JoinType string

const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinOuter JoinType = "FULL OUTER"
)

// Join: `ORDERS O INNER JOIN USERS U WITHIN 1 HOUR ON O.USERID = U.ID`
type Join struct {
	Type     JoinType
	Left     Relation
	Right    Relation
	Within   *WithinExpression // optional, stream-stream joins only
	Criteria Expr
	NodeLocation
}

func (r *Table) NodeName() string           { return "table" }
func (r *AliasedRelation) NodeName() string { return "aliased" }
func (r *Join) NodeName() string            { return "join" }
func (*Table) relation()                    {}
func (*AliasedRelation) relation()          {}
func (*Join) relation()                     {}

// TimeUnit is the SQL spelling of a time unit: SECONDS, MINUTES, ...
type TimeUnit string

const (
	Milliseconds TimeUnit = "MILLISECONDS"
	Seconds      TimeUnit = "SECONDS"
	Minutes      TimeUnit = "MINUTES"
	Hours        TimeUnit = "HOURS"
	Days         TimeUnit = "DAYS"
)

// TimeSpan: `10 SECONDS`
type TimeSpan struct {
	Size int64
	Unit TimeUnit
}

// WithinExpression bounds a stream-stream join. After is zero for the
// symmetric form `WITHIN 10 SECONDS`.
type WithinExpression struct {
	Before TimeSpan
	After  TimeSpan
	NodeLocation
}

type WindowKind string

const (
	Tumbling WindowKind = "TUMBLING"
	Hopping  WindowKind = "HOPPING"
	Session  WindowKind = "SESSION"
)

// WindowExpression: `WINDOW HOPPING (SIZE 30 SECONDS, ADVANCE BY 10 SECONDS)`
//
// Size is the inactivity gap for session windows. Advance is only set for
// hopping windows.
type WindowExpression struct {
	Kind    WindowKind
	Size    TimeSpan
	Advance TimeSpan
	NodeLocation
}

// CreateStreamAsSelect: `CREATE STREAM X WITH (...) AS SELECT ... PARTITION BY E`
type CreateStreamAsSelect struct {
	Name        string
	Query       *Query
	PartitionBy Expr // optional
	Properties  Properties
	NotExists   bool
	NodeLocation
}

// CreateTableAsSelect: `CREATE TABLE X WITH (...) AS SELECT ...`
type CreateTableAsSelect struct {
	Name       string
	Query      *Query
	Properties Properties
	NotExists  bool
	NodeLocation
}

// InsertInto: `INSERT INTO X SELECT ... PARTITION BY E`
type InsertInto struct {
	Target      string
	Query       *Query
	PartitionBy Expr // optional
	NodeLocation
}

// TableElement is a column definition: `ITEMINFO STRUCT<NAME STRING>`
type TableElement struct {
	Name string
	Type Type
	NodeLocation
}

// CreateStream: `CREATE STREAM X (A INT, B STRING) WITH (...)`
type CreateStream struct {
	Name       string
	Elements   []TableElement
	Properties Properties
	NotExists  bool
	NodeLocation
}

// CreateTable: `CREATE TABLE X (A INT, B STRING) WITH (...)`
type CreateTable struct {
	Name       string
	Elements   []TableElement
	Properties Properties
	NotExists  bool
	NodeLocation
}

// DropStream: `DROP STREAM IF EXISTS X DELETE TOPIC`
type DropStream struct {
	Name        string
	IfExists    bool
	DeleteTopic bool
	NodeLocation
}

// DropTable: `DROP TABLE IF EXISTS X DELETE TOPIC`
type DropTable struct {
	Name        string
	IfExists    bool
	DeleteTopic bool
	NodeLocation
}

// TerminateQuery stops the running persistent query named QueryID.
type TerminateQuery struct {
	QueryID query.ID
	NodeLocation
}
