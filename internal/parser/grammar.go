package parser

import "github.com/alecthomas/participle/v2/lexer"

// The grammar below is MiniC's concrete syntax: a single function, optional
// extern declarations, block-structured statements, and a standard
// precedence-climbing expression grammar (RelExpr over Expr, Expr over Term
// over Factor). Disjunctions that share a leading Ident token (CallExpr vs.
// a bare variable reference) are ordered call-first, mirroring
// kanso-lang-kanso's PrimaryExpr.

type program struct {
	Externs  []*externDecl `@@*`
	Function *function     `@@`
}

// externDecl declares an externally defined function; the signature tag is
// a free-form identifier carried for information only (spec.md §3).
type externDecl struct {
	Pos  lexer.Position
	Name string `"extern" @Ident "("`
	Sig  string `[ @Ident ] ")" ";"`
}

type function struct {
	Pos   lexer.Position
	Name  string `"int" @Ident "("`
	Param string `[ @Ident ] ")"`
	Body  *block `@@`
}

type block struct {
	Pos   lexer.Position
	Stmts []*stmt `"{" @@* "}"`
}

type stmt struct {
	Pos    lexer.Position
	Decl   *declStmt   `  @@`
	If     *ifStmt     `| @@`
	While  *whileStmt  `| @@`
	Return *returnStmt `| @@`
	Assign *assignStmt `| @@`
	Expr   *exprStmt   `| @@`
}

type declStmt struct {
	Pos  lexer.Position
	Name string `"int" @Ident ";"`
}

type assignStmt struct {
	Pos   lexer.Position
	Name  string `@Ident "="`
	Value *expr  `@@ ";"`
}

type ifStmt struct {
	Pos  lexer.Position
	Cond *relExpr `"if" "(" @@ ")"`
	Then *block   `@@`
	Else *block   `[ "else" @@ ]`
}

type whileStmt struct {
	Pos  lexer.Position
	Cond *relExpr `"while" "(" @@ ")"`
	Body *block   `@@`
}

type returnStmt struct {
	Pos   lexer.Position
	Value *expr `"return" [ @@ ] ";"`
}

// exprStmt is MiniC's only expression-as-statement form: a bare call.
type exprStmt struct {
	Pos  lexer.Position
	Call *callExpr `@@ ";"`
}

type relExpr struct {
	Pos   lexer.Position
	Left  *expr  `@@`
	Op    string `@("==" | "!=" | "<=" | ">=" | "<" | ">")`
	Right *expr  `@@`
}

type expr struct {
	Pos  lexer.Position
	Left *term    `@@`
	Ops  []*addOp `{ @@ }`
}

type addOp struct {
	Pos   lexer.Position
	Op    string `@("+" | "-")`
	Right *term  `@@`
}

type term struct {
	Pos  lexer.Position
	Left *factor  `@@`
	Ops  []*mulOp `{ @@ }`
}

type mulOp struct {
	Pos   lexer.Position
	Op    string  `@("*" | "/")`
	Right *factor `@@`
}

type factor struct {
	Pos     lexer.Position
	Negate  bool     `[ @"-" ]`
	Primary *primary `@@`
}

type primary struct {
	Pos    lexer.Position
	Call   *callExpr `  @@`
	Number *int64    `| @Integer`
	Ident  *string   `| @Ident`
	Paren  *expr     `| "(" @@ ")"`
}

type callExpr struct {
	Pos    lexer.Position
	Callee string `@Ident "("`
	Arg    *expr  `[ @@ ] ")"`
}
