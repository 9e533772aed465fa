package sema

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/royleibov/minic/internal/ast"
)

// Kind enumerates the fatal error kinds spec.md §7 defines for the semantic
// analyzer.
type Kind int

const (
	// KindRedeclaration: a name was declared twice in the same scope.
	KindRedeclaration Kind = iota
	// KindUndeclaredVariable: a Var referenced a name not visible in any
	// active scope.
	KindUndeclaredVariable
	// KindMalformedIf: an If was missing its condition or its then-block.
	KindMalformedIf
	// KindMalformedStatement: a statement node was nil or otherwise did not
	// match any known shape.
	KindMalformedStatement
)

func (k Kind) String() string {
	switch k {
	case KindRedeclaration:
		return "Redeclaration"
	case KindUndeclaredVariable:
		return "UndeclaredVariable"
	case KindMalformedIf:
		return "MalformedIf"
	case KindMalformedStatement:
		return "MalformedStatement"
	default:
		return "UnknownError"
	}
}

// Error is the fatal error the analyzer returns on the first violation it
// finds. Name is the offending identifier where one applies (empty for
// MalformedIf/MalformedStatement). Pos is the source location of the node
// that triggered the failure.
type Error struct {
	Kind Kind
	Name string
	Pos  ast.Position
}

func (e *Error) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s at %d:%d", e.Kind, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("%s: %s at %d:%d", e.Kind, e.Name, e.Pos.Line, e.Pos.Column)
}

func newError(kind Kind, name string, pos ast.Position) error {
	return errors.WithStack(&Error{Kind: kind, Name: name, Pos: pos})
}

// AsSemaError unwraps err (which may have been wrapped by errors.WithStack
// or errors.Wrap along the way) down to the underlying *Error, if any.
func AsSemaError(err error) (*Error, bool) {
	se, ok := errors.Cause(err).(*Error)
	return se, ok
}
