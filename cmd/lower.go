package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cottand/streamql/frontend"
	"github.com/cottand/streamql/frontend/ast"
	"github.com/cottand/streamql/frontend/astdoc"
	"github.com/cottand/streamql/internal/config"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newLowerCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lower FILE",
		Short: "Rewrite struct field access into " + frontend.FetchFieldFromStruct + " calls",
		Long: `Reads a YAML statement document (or stdin when FILE is -), rewrites every
struct dereference base->FIELD into ` + frontend.FetchFieldFromStruct + `(base, 'FIELD')
and prints the result as SQL, as a YAML document, or as a table.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := readStatements(cmd, args[0])
			if err != nil {
				return err
			}
			desugared, reports := frontend.DesugarPhase(stmts)
			return writeLowered(cmd.OutOrStdout(), opts.cfg.Output, desugared, reports)
		},
	}
}

func writeLowered(w io.Writer, output string, stmts []ast.Statement, reports []frontend.StructReport) error {
	switch output {
	case config.OutputSQL:
		for _, stmt := range stmts {
			if _, err := fmt.Fprintf(w, "%s;\n", ast.StatementString(stmt)); err != nil {
				return errors.Wrap(err, "could not write statement")
			}
		}
		return nil
	case config.OutputYAML:
		return astdoc.Encode(w, stmts)
	case config.OutputTable:
		renderReports(w, stmts, reports)
		return nil
	default:
		return errors.Errorf("unknown output %q", output)
	}
}

func renderReports(w io.Writer, stmts []ast.Statement, reports []frontend.StructReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Kind", "Rewrite", "Lowered", "Fields", "SQL"})

	for i, report := range reports {
		fields := report.Fields.Slice()
		slices.Sort(fields)
		t.AppendRow(table.Row{
			i,
			report.Kind,
			report.Required,
			report.Lowered,
			strings.Join(fields, ", "),
			ast.StatementString(stmts[i]),
		})
	}
	t.Render()
}
