package cmd

import (
	"fmt"
	"io"

	"github.com/cottand/streamql/frontend"
	"github.com/cottand/streamql/frontend/ast"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newCheckCmd(_ *options) *cobra.Command {
	return &cobra.Command{
		Use:          "check FILE",
		Short:        "Validate a statement document and list which statements need struct access lowering",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := readStatements(cmd, args[0])
			if err != nil {
				return err
			}
			return writeChecks(cmd.OutOrStdout(), stmts)
		},
	}
}

func writeChecks(w io.Writer, stmts []ast.Statement) error {
	for i, stmt := range stmts {
		verdict := "unchanged"
		if frontend.RequiresStructRewrite(stmt) {
			verdict = "requires struct rewrite"
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", i, stmt.NodeName(), verdict); err != nil {
			return errors.Wrap(err, "could not write check result")
		}
	}
	return nil
}
