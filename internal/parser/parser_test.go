package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/royleibov/minic/internal/ast"
	"github.com/royleibov/minic/internal/sema"
)

func TestParseScenario1(t *testing.T) {
	src := `int func(){ int x; x = 1+2; return x; }`
	prog, err := Parse("scenario1.c", src)
	require.NoError(t, err)
	require.NoError(t, sema.Analyze(prog))

	require.NotNil(t, prog.Function)
	assert.Equal(t, "func", prog.Function.Name)
	require.Len(t, prog.Function.Body.Stmts, 3)

	decl, ok := prog.Function.Body.Stmts[0].(*ast.Decl)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)

	assign, ok := prog.Function.Body.Stmts[1].(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.LHS)
	bin, ok := assign.RHS.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)

	ret, ok := prog.Function.Body.Stmts[2].(*ast.Return)
	require.True(t, ok)
	v, ok := ret.Value.(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)
}

func TestParseScenario2UndeclaredVariable(t *testing.T) {
	src := `int f(){ y = 1; }`
	prog, err := Parse("scenario2.c", src)
	require.NoError(t, err)

	err = sema.Analyze(prog)
	require.Error(t, err)
	se, ok := sema.AsSemaError(err)
	require.True(t, ok)
	assert.Equal(t, sema.KindUndeclaredVariable, se.Kind)
	assert.Equal(t, "y", se.Name)
}

func TestParseScenario3Redeclaration(t *testing.T) {
	src := `int f(){ int x; int x; }`
	prog, err := Parse("scenario3.c", src)
	require.NoError(t, err)

	err = sema.Analyze(prog)
	require.Error(t, err)
	se, ok := sema.AsSemaError(err)
	require.True(t, ok)
	assert.Equal(t, sema.KindRedeclaration, se.Kind)
	assert.Equal(t, "x", se.Name)
}

func TestParseFunctionWithParameter(t *testing.T) {
	src := `int f(n){ return n; }`
	prog, err := Parse("param.c", src)
	require.NoError(t, err)
	assert.Equal(t, "n", prog.Function.Param)
	assert.NoError(t, sema.Analyze(prog))
}

func TestParseIfElseAndWhile(t *testing.T) {
	src := `int f(){
		int x;
		x = 0;
		while (x < 10) {
			x = x + 1;
		}
		if (x == 10) {
			return x;
		} else {
			return 0;
		}
	}`
	prog, err := Parse("ifwhile.c", src)
	require.NoError(t, err)
	require.NoError(t, sema.Analyze(prog))

	stmts := prog.Function.Body.Stmts
	require.Len(t, stmts, 4)
	while, ok := stmts[2].(*ast.While)
	require.True(t, ok)
	rel, ok := while.Cond.(*ast.RelExpr)
	require.True(t, ok)
	assert.Equal(t, ast.RelLt, rel.Op)

	ifStmt, ok := stmts[3].(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)
}

func TestParseCallWithAndWithoutArgument(t *testing.T) {
	src := `int f(){
		g();
		h(1);
	}`
	prog, err := Parse("calls.c", src)
	require.NoError(t, err)
	assert.NoError(t, sema.Analyze(prog))

	first := prog.Function.Body.Stmts[0].(*ast.ExprStmt)
	assert.Equal(t, "g", first.Call.Callee)
	assert.Nil(t, first.Call.Arg)

	second := prog.Function.Body.Stmts[1].(*ast.ExprStmt)
	assert.Equal(t, "h", second.Call.Callee)
	assert.NotNil(t, second.Call.Arg)
}

func TestParseExternDecl(t *testing.T) {
	src := `extern printf(str); int f(){ return 0; }`
	prog, err := Parse("extern.c", src)
	require.NoError(t, err)
	require.Len(t, prog.Externs, 1)
	assert.Equal(t, "printf", prog.Externs[0].Name)
	assert.Equal(t, "str", prog.Externs[0].Signature)
}

func TestParseRejectsMalformedSource(t *testing.T) {
	_, err := Parse("bad.c", `int f() { int ; }`)
	assert.Error(t, err)
}
