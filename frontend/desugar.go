package frontend

import (
	"iter"

	"github.com/cottand/streamql/frontend/ast"
	"github.com/cottand/streamql/internal/log"
	"github.com/cottand/streamql/util"
	"github.com/hashicorp/go-set/v3"
)

var logger = ast.NodeLogger(log.DefaultLogger).With("section", "desugar")

// StructReport describes what DesugarPhase did to one statement.
type StructReport struct {
	// Kind is the NodeName of the statement
	Kind string
	// Required is the result of RequiresStructRewrite
	Required bool
	// Lowered counts the dereferences turned into FETCH_FIELD_FROM_STRUCT calls
	Lowered int
	// Fields holds the distinct field names which were lowered
	Fields *set.Set[string]
}

// DesugarPhase lowers struct access in every statement of stmts, and returns
// the desugared statements along with one StructReport per statement.
// stmts is not modified.
func DesugarPhase(stmts []ast.Statement) ([]ast.Statement, []StructReport) {
	desugared := make([]ast.Statement, len(stmts))
	reports := make([]StructReport, len(stmts))

	for i, stmt := range stmts {
		report := StructReport{
			Kind:     stmt.NodeName(),
			Required: RequiresStructRewrite(stmt),
			Fields:   set.New[string](0),
		}
		if report.Required {
			accesses := structAccesses(stmt)
			report.Lowered = util.CountIter(accesses)
			report.Fields = util.SetFromSeq(util.MapIter(accesses, func(d *ast.Dereference) string {
				return d.Field
			}), report.Lowered)
		}

		desugared[i] = DesugarStructAccess(stmt)
		reports[i] = report

		logger.Debug("desugared struct access",
			"index", i,
			"kind", report.Kind,
			"lowered", report.Lowered,
			"statement", desugared[i],
		)
	}
	return desugared, reports
}

// structAccesses yields every dereference found in the expression slots of stmt,
// parents before children.
func structAccesses(stmt ast.Statement) iter.Seq[*ast.Dereference] {
	return util.FilterMapIter(statementNodes(stmt), func(e ast.Expr) (*ast.Dereference, bool) {
		deref, ok := e.(*ast.Dereference)
		return deref, ok
	})
}

func statementNodes(stmt ast.Statement) iter.Seq[ast.Expr] {
	return func(yield func(ast.Expr) bool) {
		stopped := false
		transformStatementExprs(stmt, func(e ast.Expr) ast.Expr {
			ast.Inspect(e, func(node ast.Expr) bool {
				if stopped {
					return false
				}
				if !yield(node) {
					stopped = true
					return false
				}
				return true
			})
			return e
		})
	}
}
