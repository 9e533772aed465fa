package ssa

import (
	"github.com/llir/llvm/ir/value"
)

// Uses returns every instruction in fn whose operand list references v — the
// use-list of v. A use by a block terminator is reported as an entry with no
// wrapped instruction. The optimizer passes call HasUses instead. llir/llvm
// keeps no explicit use-list field (unlike the C API §6 is modeled on), so
// this derives one by scanning, the same way the teacher's
// findInstructionByValue/isValueUsed pair do.
func Uses(fn *Func, v value.Value) []Instruction {
	var out []Instruction
	for _, block := range fn.F.Blocks {
		b := &Block{B: block, fn: fn}
		for _, inst := range block.Insts {
			for _, operand := range inst.Operands() {
				if *operand == v {
					out = append(out, Instruction{inst: inst, block: b})
					break
				}
			}
		}
		if block.Term != nil {
			for _, operand := range block.Term.Operands() {
				if *operand == v {
					out = append(out, Instruction{inst: nil, block: b})
					break
				}
			}
		}
	}
	return out
}

// HasUses reports whether v has at least one use anywhere in fn — the
// use-list-head getter §6 requires, reduced to a boolean since the passes
// only ever ask "empty or not" or "at least one".
func HasUses(fn *Func, v value.Value) bool {
	for _, block := range fn.F.Blocks {
		for _, inst := range block.Insts {
			for _, operand := range inst.Operands() {
				if *operand == v {
					return true
				}
			}
		}
		if block.Term != nil {
			for _, operand := range block.Term.Operands() {
				if *operand == v {
					return true
				}
			}
		}
	}
	return false
}
