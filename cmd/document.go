package cmd

import (
	"strings"

	"github.com/cottand/streamql/frontend"
	"github.com/cottand/streamql/frontend/astdoc"
	"github.com/cottand/streamql/internal/config"
)

// LowerDocument decodes a YAML statement document and returns its statements
// as SQL, with struct access lowered, one `;` terminated statement per line.
// Decoding failures are returned as an *ilerr.Errors.
func LowerDocument(doc string) (string, error) {
	stmts, err := astdoc.Decode(strings.NewReader(doc))
	if err != nil {
		return "", err
	}
	desugared, reports := frontend.DesugarPhase(stmts)
	sb := &strings.Builder{}
	if err := writeLowered(sb, config.OutputSQL, desugared, reports); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// CheckDocument decodes a YAML statement document and lists, for each of
// its statements, whether it needs struct access lowering.
func CheckDocument(doc string) (string, error) {
	stmts, err := astdoc.Decode(strings.NewReader(doc))
	if err != nil {
		return "", err
	}
	sb := &strings.Builder{}
	if err := writeChecks(sb, stmts); err != nil {
		return "", err
	}
	return sb.String(), nil
}
