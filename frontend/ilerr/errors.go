package ilerr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cottand/streamql/frontend/ast"
)

// enableDebugErrorPrinting makes errors include the frame that created them when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None        ErrCode = iota
	UnknownKind ErrCode = iota
	MissingField
	InvalidLiteral
	UnexpectedNode
)

// CodedError is an error found in a statement document. Path is where in the
// document the error is, like `statements[0].select[1].expr.base`.
type CodedError interface {
	Error() string
	Code() ErrCode
	DocPath() string
	ast.Locator

	withStack([]byte) CodedError
	getStack() []byte
}

func FormatWithCode(e CodedError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if lines := strings.Split(stack, "\n"); !enableDebugFullStacktrace && len(lines) > 6 {
			stack = lines[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	if loc := e.Location(); loc.IsKnown() {
		return fmt.Sprintf("%v: (E%03d) %s", loc, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E CodedError](err E) CodedError {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From error
	Path string
	ast.NodeLocation
	stack []byte
}

func (e Unclassified) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unclassified error: %v", e.From)
	}
	return fmt.Sprintf("%s: unclassified error: %v", e.Path, e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) DocPath() string  { return e.Path }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) CodedError {
	e.stack = stack
	return e
}

// NewUnknownKind is returned when a `kind` tag names no node of the expected
// Category (statement, expression, relation...).
type NewUnknownKind struct {
	Path     string
	Category string
	Kind     string
	ast.NodeLocation
	stack []byte
}

func (e NewUnknownKind) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%s: %s is missing its kind", e.Path, e.Category)
	}
	return fmt.Sprintf("%s: unknown %s kind '%s'", e.Path, e.Category, e.Kind)
}
func (e NewUnknownKind) Code() ErrCode    { return UnknownKind }
func (e NewUnknownKind) DocPath() string  { return e.Path }
func (e NewUnknownKind) getStack() []byte { return e.stack }
func (e NewUnknownKind) withStack(stack []byte) CodedError {
	e.stack = stack
	return e
}

type NewMissingField struct {
	Path  string
	Kind  string
	Field string
	ast.NodeLocation
	stack []byte
}

func (e NewMissingField) Error() string {
	return fmt.Sprintf("%s: %s is missing required field '%s'", e.Path, e.Kind, e.Field)
}
func (e NewMissingField) Code() ErrCode    { return MissingField }
func (e NewMissingField) DocPath() string  { return e.Path }
func (e NewMissingField) getStack() []byte { return e.stack }
func (e NewMissingField) withStack(stack []byte) CodedError {
	e.stack = stack
	return e
}

type NewInvalidLiteral struct {
	Path   string
	Kind   string
	Value  string
	Reason string
	ast.NodeLocation
	stack []byte
}

func (e NewInvalidLiteral) Error() string {
	return fmt.Sprintf("%s: invalid %s literal '%s': %s", e.Path, e.Kind, e.Value, e.Reason)
}
func (e NewInvalidLiteral) Code() ErrCode    { return InvalidLiteral }
func (e NewInvalidLiteral) DocPath() string  { return e.Path }
func (e NewInvalidLiteral) getStack() []byte { return e.stack }
func (e NewInvalidLiteral) withStack(stack []byte) CodedError {
	e.stack = stack
	return e
}

// NewUnexpectedNode is returned when the YAML node at Path does not have
// the expected shape, like a scalar where a mapping is required.
type NewUnexpectedNode struct {
	Path     string
	Expected string
	Found    string
	ast.NodeLocation
	stack []byte
}

func (e NewUnexpectedNode) Error() string {
	return fmt.Sprintf("%s: expected %s, but found %s", e.Path, e.Expected, e.Found)
}
func (e NewUnexpectedNode) Code() ErrCode    { return UnexpectedNode }
func (e NewUnexpectedNode) DocPath() string  { return e.Path }
func (e NewUnexpectedNode) getStack() []byte { return e.stack }
func (e NewUnexpectedNode) withStack(stack []byte) CodedError {
	e.stack = stack
	return e
}
