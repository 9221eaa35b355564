package astdoc

import (
	"io"
	"math"
	"strconv"

	"github.com/cottand/streamql/frontend/ast"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Encode writes stmts to w as a document which Decode reads back into
// equal statements.
func Encode(w io.Writer, stmts []ast.Statement) error {
	doc := document{Statements: make([]*statementDoc, len(stmts))}
	for i, stmt := range stmts {
		doc.Statements[i] = encodeStatement(stmt)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return errors.Wrap(err, "failed to write statement document")
	}
	return errors.Wrap(enc.Close(), "failed to write statement document")
}

func encodeStatement(stmt ast.Statement) *statementDoc {
	doc := &statementDoc{Kind: stmt.NodeName(), location: locationOf(stmt)}
	switch s := stmt.(type) {
	case *ast.Query:
		doc.queryDoc = *encodeQuery(s)
	case *ast.CreateStreamAsSelect:
		doc.Name = s.Name
		doc.NotExists = s.NotExists
		doc.Query = encodeQuery(s.Query)
		doc.PartitionBy = encodeExpr(s.PartitionBy)
		doc.Properties = encodeProperties(s.Properties)
	case *ast.CreateTableAsSelect:
		doc.Name = s.Name
		doc.NotExists = s.NotExists
		doc.Query = encodeQuery(s.Query)
		doc.Properties = encodeProperties(s.Properties)
	case *ast.InsertInto:
		doc.Target = s.Target
		doc.Query = encodeQuery(s.Query)
		doc.PartitionBy = encodeExpr(s.PartitionBy)
	case *ast.CreateStream:
		doc.Name = s.Name
		doc.NotExists = s.NotExists
		doc.Elements = encodeElements(s.Elements)
		doc.Properties = encodeProperties(s.Properties)
	case *ast.CreateTable:
		doc.Name = s.Name
		doc.NotExists = s.NotExists
		doc.Elements = encodeElements(s.Elements)
		doc.Properties = encodeProperties(s.Properties)
	case *ast.DropStream:
		doc.Name = s.Name
		doc.IfExists = s.IfExists
		doc.DeleteTopic = s.DeleteTopic
	case *ast.DropTable:
		doc.Name = s.Name
		doc.IfExists = s.IfExists
		doc.DeleteTopic = s.DeleteTopic
	case *ast.TerminateQuery:
		doc.QueryID = s.QueryID.String()
	default:
		panic(errors.Errorf("unhandled statement kind %T", stmt))
	}
	return doc
}

func encodeQuery(q *ast.Query) *queryDoc {
	if q == nil {
		return nil
	}
	doc := &queryDoc{
		Distinct: q.Select.Distinct,
		From:     encodeRelation(q.From),
		Window:   encodeWindow(q.Window),
		Where:    encodeExpr(q.Where),
		GroupBy:  encodeExprs(q.GroupBy),
		Having:   encodeExpr(q.Having),
		Limit:    q.Limit,
	}
	for _, item := range q.Select.Items {
		itemDoc := &itemDoc{Kind: item.NodeName(), location: locationOf(item)}
		switch item := item.(type) {
		case *ast.SingleColumn:
			itemDoc.Expr = encodeExpr(item.Expr)
			itemDoc.Alias = item.Alias
		case *ast.AllColumns:
			itemDoc.Prefix = item.Prefix
		}
		doc.Select = append(doc.Select, itemDoc)
	}
	return doc
}

func encodeRelation(r ast.Relation) *relationDoc {
	if r == nil {
		return nil
	}
	doc := &relationDoc{Kind: r.NodeName(), location: locationOf(r)}
	switch r := r.(type) {
	case *ast.Table:
		doc.Name = r.Name
	case *ast.AliasedRelation:
		doc.Relation = encodeRelation(r.Relation)
		doc.Alias = r.Alias
	case *ast.Join:
		doc.Type = string(r.Type)
		doc.Left = encodeRelation(r.Left)
		doc.Right = encodeRelation(r.Right)
		doc.Criteria = encodeExpr(r.Criteria)
		if r.Within != nil {
			doc.Within = &withinDoc{Before: encodeTimeSpan(r.Within.Before)}
			if r.Within.After != (ast.TimeSpan{}) {
				after := encodeTimeSpan(r.Within.After)
				doc.Within.After = &after
			}
		}
	default:
		panic(errors.Errorf("unhandled relation kind %T", r))
	}
	return doc
}

func encodeTimeSpan(span ast.TimeSpan) timeSpanDoc {
	return timeSpanDoc{Size: span.Size, Unit: string(span.Unit)}
}

func encodeWindow(w *ast.WindowExpression) *windowDoc {
	if w == nil {
		return nil
	}
	doc := &windowDoc{Kind: string(w.Kind), Size: encodeTimeSpan(w.Size)}
	if w.Kind == ast.Hopping {
		advance := encodeTimeSpan(w.Advance)
		doc.Advance = &advance
	}
	return doc
}

func encodeElements(elements []ast.TableElement) []elementDoc {
	var docs []elementDoc
	for _, el := range elements {
		docs = append(docs, elementDoc{Name: el.Name, Type: el.Type.Name})
	}
	return docs
}

// encodeProperties writes plain scalars for the literals whose kind their YAML
// tag recovers, and literal mappings for the others.
func encodeProperties(props ast.Properties) yaml.Node {
	if props.Len() == 0 {
		return yaml.Node{}
	}
	node := yaml.Node{Kind: yaml.MappingNode}
	for name, value := range props.All() {
		var valueNode *yaml.Node
		switch value.(type) {
		case *ast.StringLiteral, *ast.IntegerLiteral, *ast.DoubleLiteral, *ast.BooleanLiteral, *ast.NullLiteral:
			valueNode = scalarNode(value)
		default:
			valueNode = exprNode(encodeExpr(value))
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, valueNode)
	}
	return node
}

func scalarNode(lit ast.Literal) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode}
	switch lit := lit.(type) {
	case *ast.StringLiteral:
		node.Tag, node.Value = "!!str", lit.Value
	case *ast.IntegerLiteral:
		node.Tag, node.Value = "!!int", strconv.FormatInt(int64(lit.Value), 10)
	case *ast.LongLiteral:
		node.Tag, node.Value = "!!int", strconv.FormatInt(lit.Value, 10)
	case *ast.DoubleLiteral:
		node.Tag, node.Value = "!!float", yamlFloat(lit.Value)
	case *ast.DecimalLiteral:
		node.Tag, node.Value = "!!str", lit.Value.String()
	case *ast.BooleanLiteral:
		node.Tag, node.Value = "!!bool", strconv.FormatBool(lit.Value)
	case *ast.NullLiteral:
		node.Tag, node.Value = "!!null", "null"
	default:
		panic(errors.Errorf("unhandled literal kind %T", lit))
	}
	return node
}

func yamlFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ".nan"
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	default:
		return (&ast.DoubleLiteral{Value: v}).Syntax()
	}
}

func exprNode(doc *exprDoc) *yaml.Node {
	node := &yaml.Node{}
	if err := node.Encode(doc); err != nil {
		// exprDoc holds only strings, numbers and nodes
		panic(errors.Wrap(err, "failed to encode expression"))
	}
	return node
}

func encodeExprs(exprs []ast.Expr) []*exprDoc {
	var docs []*exprDoc
	for _, e := range exprs {
		docs = append(docs, encodeExpr(e))
	}
	return docs
}

func encodeExpr(expr ast.Expr) *exprDoc {
	if expr == nil {
		return nil
	}
	doc := &exprDoc{Kind: expr.NodeName(), location: locationOf(expr)}
	switch e := expr.(type) {
	case ast.Literal:
		if _, isNull := e.(*ast.NullLiteral); !isNull {
			doc.Value = *scalarNode(e)
		}
	case *ast.ColumnRef:
		doc.Qualifier = e.Qualifier
		doc.Name = e.Name
	case *ast.Dereference:
		doc.Base = encodeExpr(e.Base)
		doc.Field = e.Field
	case *ast.Subscript:
		doc.Base = encodeExpr(e.Base)
		doc.Index = encodeExpr(e.Index)
	case *ast.FunctionCall:
		doc.Name = e.Name
		doc.Args = encodeExprs(e.Args)
	case *ast.Cast:
		doc.Expr = encodeExpr(e.Expr)
		doc.Type = e.Type.Name
	case *ast.ArithmeticBinary:
		doc.Op = string(e.Op)
		doc.Left = encodeExpr(e.Left)
		doc.Right = encodeExpr(e.Right)
	case *ast.ArithmeticUnary:
		doc.Op = string(e.Sign)
		doc.Value = *exprNode(encodeExpr(e.Value))
	case *ast.Comparison:
		doc.Op = string(e.Op)
		doc.Left = encodeExpr(e.Left)
		doc.Right = encodeExpr(e.Right)
	case *ast.LogicalBinary:
		doc.Op = string(e.Op)
		doc.Left = encodeExpr(e.Left)
		doc.Right = encodeExpr(e.Right)
	case *ast.Not:
		doc.Value = *exprNode(encodeExpr(e.Value))
	case *ast.IsNull:
		doc.Value = *exprNode(encodeExpr(e.Value))
	case *ast.IsNotNull:
		doc.Value = *exprNode(encodeExpr(e.Value))
	case *ast.Between:
		doc.Value = *exprNode(encodeExpr(e.Value))
		doc.Min = encodeExpr(e.Min)
		doc.Max = encodeExpr(e.Max)
	case *ast.InPredicate:
		doc.Value = *exprNode(encodeExpr(e.Value))
		doc.List = encodeExprs(e.List)
	case *ast.Like:
		doc.Value = *exprNode(encodeExpr(e.Value))
		doc.Pattern = encodeExpr(e.Pattern)
	case *ast.SearchedCase:
		doc.Whens = encodeWhens(e.Whens)
		doc.Default = encodeExpr(e.Default)
	case *ast.SimpleCase:
		doc.Operand = encodeExpr(e.Operand)
		doc.Whens = encodeWhens(e.Whens)
		doc.Default = encodeExpr(e.Default)
	default:
		panic(errors.Errorf("unhandled expression kind %T", expr))
	}
	return doc
}

func encodeWhens(whens []ast.WhenClause) []whenDoc {
	docs := make([]whenDoc, len(whens))
	for i, w := range whens {
		docs[i] = whenDoc{When: encodeExpr(w.Operand), Then: encodeExpr(w.Result)}
	}
	return docs
}
