// Package parser is the external parser/lexer collaborator §1 treats as out
// of scope for the core spec, implemented here with
// github.com/alecthomas/participle/v2 so the rest of the toolchain has a
// concrete front end to drive. It produces internal/ast trees the semantic
// analyzer consumes.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"github.com/royleibov/minic/internal/ast"
)

var build = participle.MustBuild[program](
	participle.Lexer(miniCLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// Parse parses MiniC source text into an AST. name is used only in
// diagnostics (typically the source file path).
func Parse(name, source string) (*ast.Program, error) {
	p, err := build.ParseString(name, source)
	if err != nil {
		return nil, err
	}
	return convertProgram(p), nil
}

// ReportParseError prints a caret-style diagnostic for a participle parse
// error to the error stream, in the teacher-adjacent style kanso-lang-kanso
// uses for its own front end.
func ReportParseError(w io.Writer, src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		fmt.Fprintln(w, color.RedString("unexpected error: %s", err))
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		fmt.Fprintln(w, color.RedString("syntax error at unknown location: %s", err))
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	fmt.Fprintln(w, color.RedString("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column))
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, color.HiRedString(caret))
	fmt.Fprintf(w, "→ %s\n", pe.Message())
}
