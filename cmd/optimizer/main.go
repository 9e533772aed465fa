// Command optimizer runs the MiniC IR optimizer over an LLVM IR module: it
// loads a .ll file, drives CSE, DCE, constant folding and constant
// propagation to fixpoint, and prints the optimized module.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/llir/llvm/asm"

	"github.com/royleibov/minic/internal/optimizer"
	"github.com/royleibov/minic/internal/ssa"
)

func main() {
	var input, output string
	var optLevel int
	flag.StringVar(&input, "file", "", "LLVM IR (.ll) file to optimize")
	flag.StringVar(&output, "o", "", "Output file for the optimized module (default: standard output)")
	flag.IntVar(&optLevel, "opt-level", 1, "0 disables all passes; 1 runs CSE/DCE/fold/propagate to fixpoint")
	flag.Parse()

	if input == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		os.Exit(1)
	}

	m, err := asm.ParseFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading module %s: %v\n", input, err)
		os.Exit(1)
	}

	if optLevel > 0 {
		mgr := optimizer.NewManager(os.Stderr)
		mgr.Run(ssa.NewModule(m))
	}

	if output == "" {
		fmt.Println(m.String())
		return
	}
	if err := os.WriteFile(output, []byte(m.String()), 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output %s: %v\n", output, err)
		os.Exit(1)
	}
}
