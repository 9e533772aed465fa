// Package sema implements the MiniC semantic analyzer: a single
// depth-first walk of the AST that resolves every name against a
// block-structured scope stack, rejecting redeclaration and undeclared use.
package sema

import (
	"github.com/royleibov/minic/internal/ast"
	"github.com/royleibov/minic/internal/scope"
)

// Analyzer resolves names against a scope stack for the duration of a
// single Analyze call. It holds no state across calls.
type Analyzer struct {
	scopes scope.Stack
}

// New creates an Analyzer ready to analyze one Program.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze runs the single recursive pass described in spec.md §4.1 and
// returns nil on success, or the first fatal *Error (wrapped) encountered.
// Scopes pushed along the way are popped on every exit path, including the
// one caused by the returned error.
func Analyze(prog *ast.Program) error {
	return New().analyzeProgram(prog)
}

func (a *Analyzer) analyzeProgram(prog *ast.Program) error {
	if prog == nil || prog.Function == nil {
		return newError(KindMalformedStatement, "", ast.Position{})
	}
	// Externs carry no symbol-table state (frontend.c: ast_extern is a
	// pass-through with no error paths).
	return a.analyzeFunction(prog.Function)
}

func (a *Analyzer) analyzeFunction(fn *ast.Function) error {
	return a.scopes.With(func() error {
		if fn.Param != "" {
			if !a.scopes.Declare(fn.Param) {
				return newError(KindRedeclaration, fn.Param, fn.Pos)
			}
		}
		if fn.Body == nil {
			// A function with no parameters still has a single scope
			// created for its body (spec.md §4.1); an absent body has no
			// statements to walk, which is not itself an error.
			return nil
		}
		// The body's own Block does NOT push a second scope: function
		// parameters and body locals share the outermost scope (the
		// "extend" behavior of frontend.c:131, passed extend=1).
		return a.analyzeStmts(fn.Body.Stmts)
	})
}

// analyzeBlock pushes a fresh scope for an ordinary nested block (If/While
// bodies), recurses over its statements, and pops on every exit path.
func (a *Analyzer) analyzeBlock(b *ast.Block) error {
	return a.scopes.With(func() error {
		if b == nil {
			return nil
		}
		return a.analyzeStmts(b.Stmts)
	})
}

func (a *Analyzer) analyzeStmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := a.analyzeStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Decl:
		if !a.scopes.Declare(n.Name) {
			return newError(KindRedeclaration, n.Name, n.Pos)
		}
		return nil

	case *ast.Assign:
		if err := a.analyzeExpr(n.RHS); err != nil {
			return err
		}
		if !a.scopes.Lookup(n.LHS) {
			return newError(KindUndeclaredVariable, n.LHS, n.Pos)
		}
		return nil

	case *ast.If:
		if n.Cond == nil {
			return newError(KindMalformedIf, "", n.Pos)
		}
		if n.Then == nil {
			return newError(KindMalformedIf, "", n.Pos)
		}
		if err := a.analyzeExpr(n.Cond); err != nil {
			return err
		}
		if err := a.analyzeBlock(n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			if err := a.analyzeBlock(n.Else); err != nil {
				return err
			}
		}
		return nil

	case *ast.While:
		if n.Cond == nil || n.Body == nil {
			return newError(KindMalformedStatement, "", n.Pos)
		}
		if err := a.analyzeExpr(n.Cond); err != nil {
			return err
		}
		return a.analyzeBlock(n.Body)

	case *ast.Return:
		if n.Value == nil {
			return nil
		}
		return a.analyzeExpr(n.Value)

	case *ast.ExprStmt:
		if n.Call == nil {
			return newError(KindMalformedStatement, "", n.Pos)
		}
		return a.analyzeExpr(n.Call)

	case nil:
		return newError(KindMalformedStatement, "", ast.Position{})

	default:
		return newError(KindMalformedStatement, "", s.Position())
	}
}

func (a *Analyzer) analyzeExpr(e ast.Expr) error {
	switch n := e.(type) {
	case nil:
		return nil // callers that require a non-nil expr check before recursing

	case *ast.Var:
		if !a.scopes.Lookup(n.Name) {
			return newError(KindUndeclaredVariable, n.Name, n.Pos)
		}
		return nil

	case *ast.Const:
		return nil

	case *ast.UnaryExpr:
		return a.analyzeExpr(n.Operand)

	case *ast.BinaryExpr:
		if err := a.analyzeExpr(n.LHS); err != nil {
			return err
		}
		return a.analyzeExpr(n.RHS)

	case *ast.RelExpr:
		if err := a.analyzeExpr(n.LHS); err != nil {
			return err
		}
		return a.analyzeExpr(n.RHS)

	case *ast.Call:
		// A Call with no argument is legal (spec.md §4.1 edge case).
		if n.Arg == nil {
			return nil
		}
		return a.analyzeExpr(n.Arg)

	default:
		return newError(KindMalformedStatement, "", e.Position())
	}
}
