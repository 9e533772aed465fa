// Command minic-parser runs the MiniC front end: it parses a source file,
// runs semantic analysis over the result, and prints the resulting AST.
// It exits 0 and prints the tree on success, or exits 1 and prints a
// diagnostic to stderr on a parse or semantic error.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/royleibov/minic/internal/ast"
	"github.com/royleibov/minic/internal/parser"
	"github.com/royleibov/minic/internal/sema"
)

func main() {
	var input string
	var dumpAST bool
	var noColor bool
	flag.StringVar(&input, "file", "", "MiniC source file to parse (reads from stdin if not provided)")
	flag.BoolVar(&dumpAST, "dump-ast", true, "print the parsed AST on success")
	flag.BoolVar(&noColor, "no-color", false, "disable colorized syntax-error diagnostics")
	flag.Parse()

	if noColor {
		color.NoColor = true
	}

	var data []byte
	var err error
	name := input

	if input == "" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading from stdin: %v\n", err)
			os.Exit(1)
		}
		name = "<stdin>"
	} else {
		data, err = os.ReadFile(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", input, err)
			os.Exit(1)
		}
	}

	src := string(data)
	prog, err := parser.Parse(name, src)
	if err != nil {
		parser.ReportParseError(os.Stderr, src, err)
		os.Exit(1)
	}

	if err := sema.Analyze(prog); err != nil {
		fmt.Fprintf(os.Stderr, "Semantic analysis failed: %v\n", err)
		os.Exit(1)
	}

	if dumpAST {
		ast.PrintNode(os.Stdout, prog)
	} else {
		fmt.Println("OK")
	}
}
