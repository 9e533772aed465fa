package optimizer

import "github.com/royleibov/minic/internal/ssa"

// dceIneligible is the set of opcodes §4.3 exempts from removal even with an
// empty use-list: terminators, stores, and calls are observable side
// effects, and alloca defines an address that may be referenced by a store
// with no load in between.
func dceIneligible(op ssa.Opcode) bool {
	switch op {
	case ssa.OpStore, ssa.OpCall, ssa.OpAlloca:
		return true
	default:
		return false
	}
}

// DCE erases every instruction in fn with an empty use-list whose opcode is
// not in the ineligible set, collecting the deletion list per block before
// mutating it (§5's "collect, then mutate" rule). Returns true if any
// erasure occurred.
func DCE(fn *ssa.Func) bool {
	changed := false
	for _, block := range fn.Blocks() {
		var dead []ssa.Instruction
		for _, inst := range block.Insts() {
			if dceIneligible(inst.Opcode()) {
				continue
			}
			v, ok := inst.Value()
			if !ok {
				continue
			}
			if !ssa.HasUses(fn, v) {
				dead = append(dead, inst)
			}
		}
		for _, inst := range dead {
			block.Erase(inst)
			changed = true
		}
	}
	return changed
}
