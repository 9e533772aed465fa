package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// miniCLexer tokenizes MiniC source text. Rule order matters: keywords are
// matched by the grammar as literal string patterns against Ident tokens
// (participle's usual approach), so Ident must come before the narrower
// Integer/Operator rules only where ambiguity would otherwise arise.
var miniCLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `[0-9]+`, nil},
		{"Operator", `(==|!=|<=|>=|[-+*/=<>])`, nil},
		{"Punctuation", `[{}()[\];,]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
