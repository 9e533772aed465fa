package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/royleibov/minic/internal/ast"
)

func toPos(p lexer.Position) ast.Position {
	return ast.Position{Line: p.Line, Column: p.Column}
}

func convertProgram(p *program) *ast.Program {
	out := &ast.Program{Pos: toPos(p.Function.Pos)}
	for _, e := range p.Externs {
		out.Externs = append(out.Externs, &ast.ExternDecl{
			Name:      e.Name,
			Signature: e.Sig,
			Pos:       toPos(e.Pos),
		})
	}
	out.Function = convertFunction(p.Function)
	return out
}

func convertFunction(f *function) *ast.Function {
	return &ast.Function{
		Name:  f.Name,
		Param: f.Param,
		Body:  convertBlock(f.Body),
		Pos:   toPos(f.Pos),
	}
}

func convertBlock(b *block) *ast.Block {
	if b == nil {
		return nil
	}
	out := &ast.Block{Pos: toPos(b.Pos)}
	for _, s := range b.Stmts {
		out.Stmts = append(out.Stmts, convertStmt(s))
	}
	return out
}

func convertStmt(s *stmt) ast.Stmt {
	switch {
	case s.Decl != nil:
		return &ast.Decl{Name: s.Decl.Name, Pos: toPos(s.Decl.Pos)}
	case s.If != nil:
		n := &ast.If{Pos: toPos(s.If.Pos)}
		if s.If.Cond != nil {
			n.Cond = convertRelExpr(s.If.Cond)
		}
		n.Then = convertBlock(s.If.Then)
		if s.If.Else != nil {
			n.Else = convertBlock(s.If.Else)
		}
		return n
	case s.While != nil:
		n := &ast.While{Pos: toPos(s.While.Pos)}
		if s.While.Cond != nil {
			n.Cond = convertRelExpr(s.While.Cond)
		}
		n.Body = convertBlock(s.While.Body)
		return n
	case s.Return != nil:
		n := &ast.Return{Pos: toPos(s.Return.Pos)}
		if s.Return.Value != nil {
			n.Value = convertExpr(s.Return.Value)
		}
		return n
	case s.Assign != nil:
		return &ast.Assign{
			LHS: s.Assign.Name,
			RHS: convertExpr(s.Assign.Value),
			Pos: toPos(s.Assign.Pos),
		}
	case s.Expr != nil:
		return &ast.ExprStmt{
			Call: convertCall(s.Expr.Call),
			Pos:  toPos(s.Expr.Pos),
		}
	default:
		return nil
	}
}

func convertRelExpr(r *relExpr) *ast.RelExpr {
	op, ok := relOps[r.Op]
	if !ok {
		op = ast.RelEq
	}
	return &ast.RelExpr{
		Op:  op,
		LHS: convertExpr(r.Left),
		RHS: convertExpr(r.Right),
		Pos: toPos(r.Pos),
	}
}

var relOps = map[string]ast.RelOp{
	"==": ast.RelEq,
	"!=": ast.RelNe,
	"<":  ast.RelLt,
	"<=": ast.RelLe,
	">":  ast.RelGt,
	">=": ast.RelGe,
}

var addOps = map[string]ast.BinaryOp{
	"+": ast.OpAdd,
	"-": ast.OpSub,
}

var mulOps = map[string]ast.BinaryOp{
	"*": ast.OpMul,
	"/": ast.OpDiv,
}

func convertExpr(e *expr) ast.Expr {
	out := convertTerm(e.Left)
	for _, op := range e.Ops {
		out = &ast.BinaryExpr{
			Op:  addOps[op.Op],
			LHS: out,
			RHS: convertTerm(op.Right),
			Pos: toPos(op.Pos),
		}
	}
	return out
}

func convertTerm(t *term) ast.Expr {
	out := convertFactor(t.Left)
	for _, op := range t.Ops {
		out = &ast.BinaryExpr{
			Op:  mulOps[op.Op],
			LHS: out,
			RHS: convertFactor(op.Right),
			Pos: toPos(op.Pos),
		}
	}
	return out
}

func convertFactor(f *factor) ast.Expr {
	p := convertPrimary(f.Primary)
	if !f.Negate {
		return p
	}
	return &ast.UnaryExpr{Op: ast.OpNegate, Operand: p, Pos: toPos(f.Pos)}
}

func convertPrimary(p *primary) ast.Expr {
	switch {
	case p.Call != nil:
		return convertCall(p.Call)
	case p.Number != nil:
		return &ast.Const{Value: *p.Number, Pos: toPos(p.Pos)}
	case p.Ident != nil:
		return &ast.Var{Name: *p.Ident, Pos: toPos(p.Pos)}
	case p.Paren != nil:
		return convertExpr(p.Paren)
	default:
		return nil
	}
}

func convertCall(c *callExpr) *ast.Call {
	n := &ast.Call{Callee: c.Callee, Pos: toPos(c.Pos)}
	if c.Arg != nil {
		n.Arg = convertExpr(c.Arg)
	}
	return n
}
