package optimizer

import "github.com/royleibov/minic/internal/ssa"

// cseIneligible is the set of opcodes §4.2 excludes from consideration as
// the earlier instruction i in a redundant pair: comparisons, calls,
// allocations, and stores carry side effects or identity that redundancy
// elimination must not paper over.
func cseIneligible(op ssa.Opcode) bool {
	switch op {
	case ssa.OpICmp, ssa.OpCall, ssa.OpAlloca, ssa.OpStore:
		return true
	default:
		return false
	}
}

// CSE eliminates locally redundant instructions within each basic block of
// fn, replacing uses of a later equivalent instruction with the earlier one.
// It does not cross basic-block boundaries. Returns true if any replacement
// occurred.
func CSE(fn *ssa.Func) bool {
	changed := false
	for _, block := range fn.Blocks() {
		if cseBlock(fn, block) {
			changed = true
		}
	}
	return changed
}

func cseBlock(fn *ssa.Func, block *ssa.Block) bool {
	insts := block.Insts()
	changed := false

	for i := 0; i < len(insts); i++ {
		iv, ok := insts[i].Value()
		if !ok || cseIneligible(insts[i].Opcode()) {
			continue
		}

		for j := i + 1; j < len(insts); j++ {
			if insts[i].IsLoad() && insts[j].IsStore() && ssa.SameValue(insts[j].StoreAddr(), insts[i].LoadAddr()) {
				// A store to the same address invalidates any further
				// equivalence for this load; stop scanning for i.
				break
			}

			if !sameExpression(insts[i], insts[j]) {
				continue
			}
			jv, ok := insts[j].Value()
			if !ok {
				continue
			}
			ssa.ReplaceAllUsesWith(fn, jv, iv)
			changed = true
		}
	}
	return changed
}

// sameExpression reports whether j is a redundant recomputation of i: same
// opcode, same arity, and operands matching positionally (or, for
// commutative opcodes, in reversed order).
func sameExpression(i, j ssa.Instruction) bool {
	if i.Opcode() != j.Opcode() {
		return false
	}
	ops1 := i.Operands()
	ops2 := j.Operands()
	if len(ops1) != len(ops2) {
		return false
	}

	if operandsMatch(ops1, ops2) {
		return true
	}
	if i.Opcode().Commutative() && len(ops1) == 2 {
		return ssa.SameValue(*ops1[0], *ops2[1]) && ssa.SameValue(*ops1[1], *ops2[0])
	}
	return false
}

func operandsMatch(ops1, ops2 []*ssa.Value) bool {
	for k := range ops1 {
		if !ssa.SameValue(*ops1[k], *ops2[k]) {
			return false
		}
	}
	return true
}
