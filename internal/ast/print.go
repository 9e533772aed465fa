package ast

import (
	"fmt"
	"io"
	"strings"
)

var binaryOpText = map[BinaryOp]string{OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/"}
var relOpText = map[RelOp]string{RelEq: "==", RelNe: "!=", RelLt: "<", RelLe: "<=", RelGt: ">", RelGe: ">="}

// PrintNode writes a nested, indented textual rendering of a Program to w,
// one statement per line. For scenario 1 of §8 it prints Decl(x),
// Assign(Var(x), Binary(+, Const(1), Const(2))) and Return(Var(x)).
func PrintNode(w io.Writer, p *Program) {
	if p == nil {
		fmt.Fprintln(w, "<nil program>")
		return
	}
	for _, ext := range p.Externs {
		fmt.Fprintf(w, "Extern(%s, %s)\n", ext.Name, ext.Signature)
	}
	if p.Function == nil {
		fmt.Fprintln(w, "<missing function>")
		return
	}
	fn := p.Function
	if fn.Param != "" {
		fmt.Fprintf(w, "Function(%s, param=%s)\n", fn.Name, fn.Param)
	} else {
		fmt.Fprintf(w, "Function(%s)\n", fn.Name)
	}
	printBlock(w, fn.Body, 1)
}

func printBlock(w io.Writer, b *Block, depth int) {
	if b == nil {
		fmt.Fprintf(w, "%s<missing block>\n", indent(depth))
		return
	}
	for _, s := range b.Stmts {
		printStmt(w, s, depth)
	}
}

func indent(depth int) string { return strings.Repeat("  ", depth) }

func printStmt(w io.Writer, s Stmt, depth int) {
	pad := indent(depth)
	switch n := s.(type) {
	case *Decl:
		fmt.Fprintf(w, "%sDecl(%s)\n", pad, n.Name)
	case *Assign:
		fmt.Fprintf(w, "%sAssign(Var(%s), %s)\n", pad, n.LHS, exprString(n.RHS))
	case *If:
		fmt.Fprintf(w, "%sIf(%s)\n", pad, exprString(n.Cond))
		fmt.Fprintf(w, "%sThen:\n", pad)
		printBlock(w, n.Then, depth+1)
		if n.Else != nil {
			fmt.Fprintf(w, "%sElse:\n", pad)
			printBlock(w, n.Else, depth+1)
		}
	case *While:
		fmt.Fprintf(w, "%sWhile(%s)\n", pad, exprString(n.Cond))
		printBlock(w, n.Body, depth+1)
	case *Return:
		if n.Value == nil {
			fmt.Fprintf(w, "%sReturn()\n", pad)
		} else {
			fmt.Fprintf(w, "%sReturn(%s)\n", pad, exprString(n.Value))
		}
	case *ExprStmt:
		fmt.Fprintf(w, "%s%s\n", pad, exprString(n.Call))
	default:
		fmt.Fprintf(w, "%s<unknown statement>\n", pad)
	}
}

func exprString(e Expr) string {
	switch n := e.(type) {
	case nil:
		return "<none>"
	case *Var:
		return fmt.Sprintf("Var(%s)", n.Name)
	case *Const:
		return fmt.Sprintf("Const(%d)", n.Value)
	case *UnaryExpr:
		return fmt.Sprintf("Unary(negate, %s)", exprString(n.Operand))
	case *BinaryExpr:
		return fmt.Sprintf("Binary(%s, %s, %s)", binaryOpText[n.Op], exprString(n.LHS), exprString(n.RHS))
	case *RelExpr:
		return fmt.Sprintf("Rel(%s, %s, %s)", relOpText[n.Op], exprString(n.LHS), exprString(n.RHS))
	case *Call:
		if n.Arg == nil {
			return fmt.Sprintf("Call(%s)", n.Callee)
		}
		return fmt.Sprintf("Call(%s, %s)", n.Callee, exprString(n.Arg))
	default:
		return "<unknown expr>"
	}
}
