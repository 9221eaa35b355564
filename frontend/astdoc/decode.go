package astdoc

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/cottand/streamql/frontend/ast"
	"github.com/cottand/streamql/frontend/ilerr"
	"github.com/cottand/streamql/internal/log"
	"github.com/cottand/streamql/query"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var logger = ast.NodeLogger(log.DefaultLogger).With("section", "astdoc")

// Decode reads a document of statements from r.
//
// When the document is malformed the returned error is an *ilerr.Errors
// holding every problem found, each with its path in the document.
// An empty document holds no statements.
func Decode(r io.Reader) ([]ast.Statement, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		var typeErr *yaml.TypeError
		if !errors.As(err, &typeErr) {
			return nil, errors.Wrap(err, "failed to read statement document")
		}
		var errs *ilerr.Errors
		for _, msg := range typeErr.Errors {
			errs = errs.With(ilerr.New(ilerr.Unclassified{From: errors.New(msg)}))
		}
		return nil, errs
	}

	d := &decoder{}
	stmts := make([]ast.Statement, 0, len(doc.Statements))
	for i, stmtDoc := range doc.Statements {
		stmt := d.statement(stmtDoc, fmt.Sprintf("statements[%d]", i))
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if d.errs.HasError() {
		logger.Debug("rejected statement document", "errors", d.errs)
		return nil, d.errs
	}
	logger.Debug("decoded statement document", "statements", len(stmts))
	return stmts, nil
}

type decoder struct {
	errs *ilerr.Errors
}

func (d *decoder) fail(err ilerr.CodedError) {
	d.errs = d.errs.With(ilerr.New(err))
}

func (d *decoder) missing(path, kind, field string, at ast.NodeLocation) {
	d.fail(ilerr.NewMissingField{Path: path, Kind: kind, Field: field, NodeLocation: at})
}

// mapping reports an error and returns false if the node at path was not a mapping
func (d *decoder) mapping(pos position, path string) bool {
	if pos.found == "" {
		return true
	}
	d.fail(ilerr.NewUnexpectedNode{Path: path, Expected: "mapping", Found: pos.found, NodeLocation: pos.at})
	return false
}

func (d *decoder) statement(doc *statementDoc, path string) ast.Statement {
	if doc == nil {
		d.fail(ilerr.NewUnexpectedNode{Path: path, Expected: "mapping", Found: "null"})
		return nil
	}
	if !d.mapping(doc.pos, path) {
		return nil
	}
	loc := doc.nodeLocation()
	at := doc.pos.at

	requireName := func(field, value string) string {
		if value == "" {
			d.missing(path, doc.Kind, field, at)
		}
		return value
	}
	selectQuery := func() *ast.Query {
		if doc.Query == nil {
			d.missing(path, doc.Kind, "query", at)
			return nil
		}
		return d.query(doc.Query, path+".query", ast.NodeLocation{}, at)
	}

	switch doc.Kind {
	case "query":
		return d.query(&doc.queryDoc, path, loc, at)
	case "createStreamAsSelect":
		return &ast.CreateStreamAsSelect{
			Name:         requireName("name", doc.Name),
			Query:        selectQuery(),
			PartitionBy:  d.expr(doc.PartitionBy, path+".partitionBy"),
			Properties:   d.properties(&doc.Properties, path+".properties"),
			NotExists:    doc.NotExists,
			NodeLocation: loc,
		}
	case "createTableAsSelect":
		return &ast.CreateTableAsSelect{
			Name:         requireName("name", doc.Name),
			Query:        selectQuery(),
			Properties:   d.properties(&doc.Properties, path+".properties"),
			NotExists:    doc.NotExists,
			NodeLocation: loc,
		}
	case "insertInto":
		return &ast.InsertInto{
			Target:       requireName("target", doc.Target),
			Query:        selectQuery(),
			PartitionBy:  d.expr(doc.PartitionBy, path+".partitionBy"),
			NodeLocation: loc,
		}
	case "createStream":
		return &ast.CreateStream{
			Name:         requireName("name", doc.Name),
			Elements:     d.elements(doc.Elements, path+".elements", at),
			Properties:   d.properties(&doc.Properties, path+".properties"),
			NotExists:    doc.NotExists,
			NodeLocation: loc,
		}
	case "createTable":
		return &ast.CreateTable{
			Name:         requireName("name", doc.Name),
			Elements:     d.elements(doc.Elements, path+".elements", at),
			Properties:   d.properties(&doc.Properties, path+".properties"),
			NotExists:    doc.NotExists,
			NodeLocation: loc,
		}
	case "dropStream":
		return &ast.DropStream{
			Name:         requireName("name", doc.Name),
			IfExists:     doc.IfExists,
			DeleteTopic:  doc.DeleteTopic,
			NodeLocation: loc,
		}
	case "dropTable":
		return &ast.DropTable{
			Name:         requireName("name", doc.Name),
			IfExists:     doc.IfExists,
			DeleteTopic:  doc.DeleteTopic,
			NodeLocation: loc,
		}
	case "terminate":
		return &ast.TerminateQuery{
			QueryID:      query.NewID(requireName("queryId", doc.QueryID)),
			NodeLocation: loc,
		}
	default:
		d.fail(ilerr.NewUnknownKind{Path: path, Category: "statement", Kind: doc.Kind, NodeLocation: at})
		return nil
	}
}

func (d *decoder) query(doc *queryDoc, path string, loc, at ast.NodeLocation) *ast.Query {
	if len(doc.Select) == 0 {
		d.missing(path, "query", "select", at)
	}
	items := make([]ast.SelectItem, 0, len(doc.Select))
	for i, itemDoc := range doc.Select {
		if item := d.selectItem(itemDoc, fmt.Sprintf("%s.select[%d]", path, i)); item != nil {
			items = append(items, item)
		}
	}
	q := &ast.Query{
		Select:       ast.Select{Distinct: doc.Distinct, Items: items},
		Window:       d.window(doc.Window, path+".window", at),
		Where:        d.expr(doc.Where, path+".where"),
		Having:       d.expr(doc.Having, path+".having"),
		Limit:        doc.Limit,
		NodeLocation: loc,
	}
	if doc.From != nil {
		q.From = d.relation(doc.From, path+".from")
	}
	for i, e := range doc.GroupBy {
		q.GroupBy = append(q.GroupBy, d.required(e, fmt.Sprintf("%s.groupBy[%d]", path, i)))
	}
	return q
}

func (d *decoder) selectItem(doc *itemDoc, path string) ast.SelectItem {
	if doc == nil || !d.mapping(doc.pos, path) {
		return nil
	}
	loc := doc.nodeLocation()
	switch doc.Kind {
	case "column":
		if doc.Expr == nil {
			d.missing(path, doc.Kind, "expr", doc.pos.at)
			return nil
		}
		return &ast.SingleColumn{Expr: d.expr(doc.Expr, path+".expr"), Alias: doc.Alias, NodeLocation: loc}
	case "all":
		return &ast.AllColumns{Prefix: doc.Prefix, NodeLocation: loc}
	default:
		d.fail(ilerr.NewUnknownKind{Path: path, Category: "select item", Kind: doc.Kind, NodeLocation: doc.pos.at})
		return nil
	}
}

func (d *decoder) relation(doc *relationDoc, path string) ast.Relation {
	if !d.mapping(doc.pos, path) {
		return nil
	}
	loc := doc.nodeLocation()
	at := doc.pos.at
	child := func(r *relationDoc, field string) ast.Relation {
		if r == nil {
			d.missing(path, doc.Kind, field, at)
			return nil
		}
		return d.relation(r, path+"."+field)
	}

	switch doc.Kind {
	case "table":
		if doc.Name == "" {
			d.missing(path, doc.Kind, "name", at)
		}
		return &ast.Table{Name: doc.Name, NodeLocation: loc}
	case "aliased":
		if doc.Alias == "" {
			d.missing(path, doc.Kind, "alias", at)
		}
		return &ast.AliasedRelation{Relation: child(doc.Relation, "relation"), Alias: doc.Alias, NodeLocation: loc}
	case "join":
		join := &ast.Join{
			Type:         d.joinType(doc.Type, path+".type", at),
			Left:         child(doc.Left, "left"),
			Right:        child(doc.Right, "right"),
			Criteria:     d.expr(doc.Criteria, path+".criteria"),
			NodeLocation: loc,
		}
		if doc.Within != nil {
			join.Within = &ast.WithinExpression{Before: d.timeSpan(doc.Within.Before, path+".within.before", at)}
			if doc.Within.After != nil {
				join.Within.After = d.timeSpan(*doc.Within.After, path+".within.after", at)
			}
		}
		return join
	default:
		d.fail(ilerr.NewUnknownKind{Path: path, Category: "relation", Kind: doc.Kind, NodeLocation: at})
		return nil
	}
}

func (d *decoder) joinType(t, path string, at ast.NodeLocation) ast.JoinType {
	switch joinType := ast.JoinType(strings.ToUpper(t)); joinType {
	case ast.JoinInner, ast.JoinLeft, ast.JoinOuter:
		return joinType
	case "":
		return ast.JoinInner
	default:
		d.fail(ilerr.NewUnknownKind{Path: path, Category: "join type", Kind: t, NodeLocation: at})
		return joinType
	}
}

func (d *decoder) timeSpan(doc timeSpanDoc, path string, at ast.NodeLocation) ast.TimeSpan {
	unit := ast.TimeUnit(strings.ToUpper(doc.Unit))
	switch unit {
	case ast.Milliseconds, ast.Seconds, ast.Minutes, ast.Hours, ast.Days:
	case "":
		d.missing(path, "time span", "unit", at)
	default:
		d.fail(ilerr.NewUnknownKind{Path: path + ".unit", Category: "time unit", Kind: doc.Unit, NodeLocation: at})
	}
	if doc.Size <= 0 {
		d.fail(ilerr.NewInvalidLiteral{Path: path + ".size", Kind: "time span", Value: fmt.Sprint(doc.Size), Reason: "must be positive", NodeLocation: at})
	}
	return ast.TimeSpan{Size: doc.Size, Unit: unit}
}

func (d *decoder) window(doc *windowDoc, path string, at ast.NodeLocation) *ast.WindowExpression {
	if doc == nil {
		return nil
	}
	w := &ast.WindowExpression{
		Kind: ast.WindowKind(strings.ToUpper(doc.Kind)),
		Size: d.timeSpan(doc.Size, path+".size", at),
	}
	switch w.Kind {
	case ast.Hopping:
		if doc.Advance == nil {
			d.missing(path, "hopping window", "advance", at)
		} else {
			w.Advance = d.timeSpan(*doc.Advance, path+".advance", at)
		}
	case ast.Tumbling, ast.Session:
	default:
		d.fail(ilerr.NewUnknownKind{Path: path, Category: "window", Kind: doc.Kind, NodeLocation: at})
	}
	return w
}

func (d *decoder) elements(docs []elementDoc, path string, at ast.NodeLocation) []ast.TableElement {
	var elements []ast.TableElement
	for i, doc := range docs {
		elementPath := fmt.Sprintf("%s[%d]", path, i)
		if doc.Name == "" {
			d.missing(elementPath, "element", "name", at)
		}
		if doc.Type == "" {
			d.missing(elementPath, "element", "type", at)
		}
		elements = append(elements, ast.TableElement{Name: doc.Name, Type: ast.Type{Name: doc.Type}})
	}
	return elements
}

// properties reads a mapping of property names to values. Values are YAML
// scalars, typed by their tag, or literal expressions.
func (d *decoder) properties(node *yaml.Node, path string) ast.Properties {
	var props ast.Properties
	if node.Kind == 0 {
		return props
	}
	at := ast.NodeLocation{Line: node.Line, Column: node.Column}
	if node.Kind != yaml.MappingNode {
		d.fail(ilerr.NewUnexpectedNode{Path: path, Expected: "mapping", Found: nodeKindName(node), NodeLocation: at})
		return props
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if value := d.propertyValue(node.Content[i+1], path+"."+name); value != nil {
			props = props.With(name, value)
		}
	}
	return props
}

func (d *decoder) propertyValue(node *yaml.Node, path string) ast.Literal {
	at := ast.NodeLocation{Line: node.Line, Column: node.Column}
	switch node.Kind {
	case yaml.ScalarNode:
		return d.scalar(node, path)
	case yaml.MappingNode:
		var doc exprDoc
		if err := node.Decode(&doc); err != nil {
			d.fail(ilerr.Unclassified{From: err, Path: path, NodeLocation: at})
			return nil
		}
		e := d.expr(&doc, path)
		if e == nil {
			return nil
		}
		lit, ok := e.(ast.Literal)
		if !ok {
			d.fail(ilerr.NewInvalidLiteral{Path: path, Kind: doc.Kind, Value: doc.Kind, Reason: "property values must be literals", NodeLocation: at})
			return nil
		}
		return lit
	default:
		d.fail(ilerr.NewUnexpectedNode{Path: path, Expected: "scalar or literal", Found: nodeKindName(node), NodeLocation: at})
		return nil
	}
}

// scalar maps a plain YAML scalar to the literal matching its tag
func (d *decoder) scalar(node *yaml.Node, path string) ast.Literal {
	at := ast.NodeLocation{Line: node.Line, Column: node.Column}
	switch tag := node.ShortTag(); tag {
	case "!!str":
		return &ast.StringLiteral{Value: node.Value}
	case "!!int":
		var v int64
		if err := node.Decode(&v); err != nil {
			d.fail(ilerr.NewInvalidLiteral{Path: path, Kind: "integer", Value: node.Value, Reason: err.Error(), NodeLocation: at})
			return nil
		}
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return &ast.IntegerLiteral{Value: int32(v)}
		}
		return &ast.LongLiteral{Value: v}
	case "!!float":
		var v float64
		if err := node.Decode(&v); err != nil {
			d.fail(ilerr.NewInvalidLiteral{Path: path, Kind: "double", Value: node.Value, Reason: err.Error(), NodeLocation: at})
			return nil
		}
		return &ast.DoubleLiteral{Value: v}
	case "!!bool":
		var v bool
		if err := node.Decode(&v); err != nil {
			d.fail(ilerr.NewInvalidLiteral{Path: path, Kind: "boolean", Value: node.Value, Reason: err.Error(), NodeLocation: at})
			return nil
		}
		return &ast.BooleanLiteral{Value: v}
	case "!!null":
		return &ast.NullLiteral{}
	default:
		d.fail(ilerr.NewInvalidLiteral{Path: path, Kind: tag, Value: node.Value, Reason: "unsupported scalar tag", NodeLocation: at})
		return nil
	}
}

// required is expr for child slots which must be present
func (d *decoder) required(doc *exprDoc, path string) ast.Expr {
	if doc == nil {
		d.fail(ilerr.NewUnexpectedNode{Path: path, Expected: "expression", Found: "null"})
		return nil
	}
	return d.expr(doc, path)
}

// expr converts doc, or returns nil if doc is nil
func (d *decoder) expr(doc *exprDoc, path string) ast.Expr {
	if doc == nil || !d.mapping(doc.pos, path) {
		return nil
	}
	loc := doc.nodeLocation()
	at := doc.pos.at
	child := func(e *exprDoc, field string) ast.Expr {
		if e == nil {
			d.missing(path, doc.Kind, field, at)
			return nil
		}
		return d.expr(e, path+"."+field)
	}
	list := func(exprs []*exprDoc, field string) []ast.Expr {
		if len(exprs) == 0 {
			return nil
		}
		converted := make([]ast.Expr, len(exprs))
		for i, e := range exprs {
			converted[i] = d.required(e, fmt.Sprintf("%s.%s[%d]", path, field, i))
		}
		return converted
	}
	// value is the operand of unary expressions
	value := func() ast.Expr {
		if doc.Value.Kind == 0 {
			d.missing(path, doc.Kind, "value", at)
			return nil
		}
		var operand exprDoc
		if err := doc.Value.Decode(&operand); err != nil {
			d.fail(ilerr.Unclassified{From: err, Path: path + ".value", NodeLocation: at})
			return nil
		}
		return d.expr(&operand, path+".value")
	}
	requireString := func(field, v string) string {
		if v == "" {
			d.missing(path, doc.Kind, field, at)
		}
		return v
	}

	switch doc.Kind {
	case "column":
		return &ast.ColumnRef{Qualifier: doc.Qualifier, Name: requireString("name", doc.Name), NodeLocation: loc}
	case "deref":
		return &ast.Dereference{Base: child(doc.Base, "base"), Field: requireString("field", doc.Field), NodeLocation: loc}
	case "subscript":
		return &ast.Subscript{Base: child(doc.Base, "base"), Index: child(doc.Index, "index"), NodeLocation: loc}
	case "call":
		return &ast.FunctionCall{Name: requireString("name", doc.Name), Args: list(doc.Args, "args"), NodeLocation: loc}
	case "cast":
		return &ast.Cast{Expr: child(doc.Expr, "expr"), Type: ast.Type{Name: requireString("type", doc.Type)}, NodeLocation: loc}
	case "arithmetic":
		op := ast.ArithmeticOp(doc.Op)
		switch op {
		case ast.OpAdd, ast.OpSubtract, ast.OpMultiply, ast.OpDivide, ast.OpModulus:
		default:
			d.unknownOperator(path, doc.Op, at)
		}
		return &ast.ArithmeticBinary{Op: op, Left: child(doc.Left, "left"), Right: child(doc.Right, "right"), NodeLocation: loc}
	case "negate":
		sign := ast.Sign(doc.Op)
		switch sign {
		case ast.SignMinus, ast.SignPlus:
		case "":
			sign = ast.SignMinus
		default:
			d.unknownOperator(path, doc.Op, at)
		}
		return &ast.ArithmeticUnary{Sign: sign, Value: value(), NodeLocation: loc}
	case "comparison":
		op := ast.ComparisonOp(strings.ToUpper(doc.Op))
		switch op {
		case ast.OpEqual, ast.OpNotEqual, ast.OpLessThan, ast.OpLessThanOrEqual,
			ast.OpGreaterThan, ast.OpGreaterThanOrEqual, ast.OpIsDistinctFrom:
		default:
			d.unknownOperator(path, doc.Op, at)
		}
		return &ast.Comparison{Op: op, Left: child(doc.Left, "left"), Right: child(doc.Right, "right"), NodeLocation: loc}
	case "logical":
		op := ast.LogicalOp(strings.ToUpper(doc.Op))
		switch op {
		case ast.OpAnd, ast.OpOr:
		default:
			d.unknownOperator(path, doc.Op, at)
		}
		return &ast.LogicalBinary{Op: op, Left: child(doc.Left, "left"), Right: child(doc.Right, "right"), NodeLocation: loc}
	case "not":
		return &ast.Not{Value: value(), NodeLocation: loc}
	case "isNull":
		return &ast.IsNull{Value: value(), NodeLocation: loc}
	case "isNotNull":
		return &ast.IsNotNull{Value: value(), NodeLocation: loc}
	case "between":
		return &ast.Between{Value: value(), Min: child(doc.Min, "min"), Max: child(doc.Max, "max"), NodeLocation: loc}
	case "in":
		return &ast.InPredicate{Value: value(), List: list(doc.List, "list"), NodeLocation: loc}
	case "like":
		return &ast.Like{Value: value(), Pattern: child(doc.Pattern, "pattern"), NodeLocation: loc}
	case "case":
		return &ast.SearchedCase{Whens: d.whens(doc, path), Default: d.expr(doc.Default, path+".default"), NodeLocation: loc}
	case "simpleCase":
		return &ast.SimpleCase{
			Operand:      child(doc.Operand, "operand"),
			Whens:        d.whens(doc, path),
			Default:      d.expr(doc.Default, path+".default"),
			NodeLocation: loc,
		}
	case "string", "integer", "long", "double", "decimal", "boolean", "null":
		return d.literal(doc, path)
	default:
		d.fail(ilerr.NewUnknownKind{Path: path, Category: "expression", Kind: doc.Kind, NodeLocation: at})
		return nil
	}
}

func (d *decoder) unknownOperator(path, op string, at ast.NodeLocation) {
	d.fail(ilerr.NewUnknownKind{Path: path + ".op", Category: "operator", Kind: op, NodeLocation: at})
}

func (d *decoder) whens(doc *exprDoc, path string) []ast.WhenClause {
	if len(doc.Whens) == 0 {
		d.missing(path, doc.Kind, "whens", doc.pos.at)
	}
	whens := make([]ast.WhenClause, len(doc.Whens))
	for i, w := range doc.Whens {
		whenPath := fmt.Sprintf("%s.whens[%d]", path, i)
		whens[i] = ast.WhenClause{
			Operand: d.required(w.When, whenPath+".when"),
			Result:  d.required(w.Then, whenPath+".then"),
		}
	}
	return whens
}

func (d *decoder) literal(doc *exprDoc, path string) ast.Literal {
	loc := doc.nodeLocation()
	at := doc.pos.at
	if doc.Kind == "null" {
		return &ast.NullLiteral{NodeLocation: loc}
	}
	if doc.Value.Kind == 0 {
		d.missing(path, doc.Kind, "value", at)
		return nil
	}
	if doc.Value.Kind != yaml.ScalarNode {
		d.fail(ilerr.NewUnexpectedNode{Path: path + ".value", Expected: "scalar", Found: nodeKindName(&doc.Value), NodeLocation: at})
		return nil
	}
	invalid := func(err error) ast.Literal {
		d.fail(ilerr.NewInvalidLiteral{Path: path + ".value", Kind: doc.Kind, Value: doc.Value.Value, Reason: err.Error(), NodeLocation: at})
		return nil
	}

	switch doc.Kind {
	case "string":
		return &ast.StringLiteral{Value: doc.Value.Value, NodeLocation: loc}
	case "integer":
		var v int32
		if err := doc.Value.Decode(&v); err != nil {
			return invalid(err)
		}
		return &ast.IntegerLiteral{Value: v, NodeLocation: loc}
	case "long":
		var v int64
		if err := doc.Value.Decode(&v); err != nil {
			return invalid(err)
		}
		return &ast.LongLiteral{Value: v, NodeLocation: loc}
	case "double":
		var v float64
		if err := doc.Value.Decode(&v); err != nil {
			return invalid(err)
		}
		return &ast.DoubleLiteral{Value: v, NodeLocation: loc}
	case "decimal":
		v, err := decimal.NewFromString(doc.Value.Value)
		if err != nil {
			return invalid(err)
		}
		return &ast.DecimalLiteral{Value: v, NodeLocation: loc}
	case "boolean":
		var v bool
		if err := doc.Value.Decode(&v); err != nil {
			return invalid(err)
		}
		return &ast.BooleanLiteral{Value: v, NodeLocation: loc}
	default:
		panic(errors.Errorf("not a literal kind: %s", doc.Kind))
	}
}
