package ilerr

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/cottand/streamql/frontend/ast"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCode(t *testing.T) {
	withLocation := New(NewUnknownKind{
		Path:         "statements[0].select[1].expr",
		Category:     "expression",
		Kind:         "dref",
		NodeLocation: ast.NodeLocation{Line: 7, Column: 15},
	})
	assert.Equal(t, "7:15: (E001) statements[0].select[1].expr: unknown expression kind 'dref'", FormatWithCode(withLocation))

	withoutLocation := New(NewMissingField{Path: "statements[2]", Kind: "dropStream", Field: "name"})
	assert.Equal(t, "(E002) statements[2]: dropStream is missing required field 'name'", FormatWithCode(withoutLocation))
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err      CodedError
		code     ErrCode
		expected string
	}{
		{
			NewUnknownKind{Path: "statements[0]", Category: "statement"},
			UnknownKind,
			"statements[0]: statement is missing its kind",
		},
		{
			NewInvalidLiteral{Path: "statements[0].where.right", Kind: "integer", Value: "x", Reason: "not a number"},
			InvalidLiteral,
			"statements[0].where.right: invalid integer literal 'x': not a number",
		},
		{
			NewUnexpectedNode{Path: "statements", Expected: "sequence", Found: "scalar"},
			UnexpectedNode,
			"statements: expected sequence, but found scalar",
		},
		{
			Unclassified{From: errors.New("boom"), Path: "statements[1]"},
			None,
			"statements[1]: unclassified error: boom",
		},
	}

	for _, tc := range cases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
			assert.Equal(t, tc.code, tc.err.Code())
			assert.NotEmpty(t, tc.err.DocPath())
		})
	}
}

func TestErrorsAggregation(t *testing.T) {
	var errs *Errors
	assert.False(t, errs.HasError())
	assert.Empty(t, errs.Errors())

	errs = errs.Merge(nil)
	assert.False(t, errs.HasError())

	errs = errs.With(New(NewMissingField{Path: "statements[0]", Kind: "table", Field: "name"}))
	other := (&Errors{}).With(New(NewUnexpectedNode{Path: "statements[1]", Expected: "mapping", Found: "sequence"}))
	errs = errs.Merge(other).Merge(&Errors{})

	assert.True(t, errs.HasError())
	assert.Len(t, errs.Errors(), 2)
	assert.Equal(t,
		"(E002) statements[0]: table is missing required field 'name'\n(E004) statements[1]: expected mapping, but found sequence",
		errs.Error())
}

func TestErrorsLogValue(t *testing.T) {
	errs := (&Errors{}).With(New(NewInvalidLiteral{
		Path:         "statements[0].properties.PARTITIONS",
		Kind:         "integer",
		Value:        "two",
		Reason:       "not a number",
		NodeLocation: ast.NodeLocation{Line: 3, Column: 17},
	}))
	buf := &bytes.Buffer{}

	slog.New(slog.NewTextHandler(buf, nil)).Error("decode failed", "errors", errs)

	assert.Contains(t, buf.String(), "errors.e0.at=3:17")
	assert.Contains(t, buf.String(), "(E003)")
}
