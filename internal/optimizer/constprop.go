package optimizer

import "github.com/royleibov/minic/internal/ssa"

// storeSet is an insertion-ordered set of store instructions. A plain map
// would do for membership, but GEN/OUT/IN sets are unioned and diffed
// repeatedly during the fixpoint below, and a stable iteration order keeps
// the rewrite pass (Step D) deterministic across runs of the same module.
type storeSet struct {
	order []ssa.Instruction
	index map[ssa.Instruction]int
}

func newStoreSet() *storeSet {
	return &storeSet{index: make(map[ssa.Instruction]int)}
}

func (s *storeSet) has(inst ssa.Instruction) bool {
	_, ok := s.index[inst]
	return ok
}

func (s *storeSet) add(inst ssa.Instruction) {
	if s.has(inst) {
		return
	}
	s.index[inst] = len(s.order)
	s.order = append(s.order, inst)
}

func (s *storeSet) remove(inst ssa.Instruction) {
	if !s.has(inst) {
		return
	}
	delete(s.index, inst)
	for i, cur := range s.order {
		if cur == inst {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *storeSet) removeWhereAddr(addr ssa.Value) {
	for _, inst := range s.snapshot() {
		if ssa.SameValue(inst.StoreAddr(), addr) {
			s.remove(inst)
		}
	}
}

func (s *storeSet) snapshot() []ssa.Instruction {
	out := make([]ssa.Instruction, len(s.order))
	copy(out, s.order)
	return out
}

func (s *storeSet) equal(other *storeSet) bool {
	if len(s.index) != len(other.index) {
		return false
	}
	for inst := range s.index {
		if !other.has(inst) {
			return false
		}
	}
	return true
}

func (s *storeSet) unionInto(dst *storeSet) {
	for _, inst := range s.order {
		dst.add(inst)
	}
}

type blockFlow struct {
	gen, kill, in, out *storeSet
}

// ConstantProp runs the reaching-definitions dataflow analysis described in
// §4.5 and rewrites loads whose address is reached by a single-valued set of
// constant stores. Returns true if any load was replaced.
func ConstantProp(fn *ssa.Func) bool {
	blocks := fn.Blocks()

	// Step A: collect every store in the function up front, so KILL sets in
	// Step B see stores from every block, including later ones. Step B's own
	// allStores.add is then a no-op on an already-present store.
	allStores := newStoreSet()
	for _, b := range blocks {
		for _, inst := range b.Insts() {
			if inst.IsStore() {
				allStores.add(inst)
			}
		}
	}

	flows := make(map[*ssa.Block]*blockFlow, len(blocks))
	for _, b := range blocks {
		flows[b] = &blockFlow{gen: newStoreSet(), kill: newStoreSet(), in: newStoreSet(), out: newStoreSet()}
	}

	// Step B: per-block GEN/KILL.
	for _, b := range blocks {
		flow := flows[b]
		for _, inst := range b.Insts() {
			if !inst.IsStore() {
				continue
			}
			addr := inst.StoreAddr()
			flow.gen.removeWhereAddr(addr)
			for _, prev := range allStores.snapshot() {
				if prev != inst && ssa.SameValue(prev.StoreAddr(), addr) {
					flow.kill.add(prev)
				}
			}
			flow.gen.add(inst)
			allStores.add(inst)
		}
	}

	// Step C: iterate IN/OUT to fixpoint. The entry block's IN is never fed
	// (stays empty throughout), matching "IN(entry) = ∅".
	setsChanged := true
	for setsChanged {
		setsChanged = false
		for _, b := range blocks {
			flow := flows[b]
			newOut := newStoreSet()
			flow.gen.unionInto(newOut)
			for _, inStore := range flow.in.order {
				if !flow.kill.has(inStore) {
					newOut.add(inStore)
				}
			}
			if !newOut.equal(flow.out) {
				setsChanged = true
				flow.out = newOut
				for _, succ := range b.Term().Succs() {
					if succFlow := flows[findBlock(blocks, succ)]; succFlow != nil {
						newOut.unionInto(succFlow.in)
					}
				}
			} else {
				flow.out = newOut
			}
		}
	}

	// Step D: rewrite loads.
	changed := false
	for _, b := range blocks {
		r := newStoreSet()
		flows[b].in.unionInto(r)

		var toDelete []ssa.Instruction
		for _, inst := range b.Insts() {
			switch {
			case inst.IsStore():
				addr := inst.StoreAddr()
				r.removeWhereAddr(addr)
				r.add(inst)

			case inst.IsLoad():
				addr := inst.LoadAddr()
				var matching []ssa.Instruction
				for _, s := range r.snapshot() {
					if ssa.SameValue(s.StoreAddr(), addr) {
						matching = append(matching, s)
					}
				}
				if len(matching) == 0 {
					continue
				}
				first, ok := ssa.SignedInt(matching[0].StoreValue())
				if !ok {
					continue
				}
				allSame := true
				for _, s := range matching[1:] {
					v, ok := ssa.SignedInt(s.StoreValue())
					if !ok || v != first {
						allSame = false
						break
					}
				}
				if !allSame {
					continue
				}
				loadVal, ok := inst.Value()
				if !ok {
					continue
				}
				ssa.ReplaceAllUsesWith(fn, loadVal, matching[0].StoreValue())
				toDelete = append(toDelete, inst)
				changed = true
			}
		}
		for _, inst := range toDelete {
			b.Erase(inst)
		}
	}

	return changed
}

// findBlock returns the member of blocks that wraps the same underlying
// block as target — Term().Succs() allocates fresh *ssa.Block wrappers each
// call, so the flow map (keyed by the original fn.Blocks() wrappers) must be
// looked up by underlying identity rather than *ssa.Block pointer identity.
func findBlock(blocks []*ssa.Block, target *ssa.Block) *ssa.Block {
	for _, b := range blocks {
		if b.B == target.B {
			return b
		}
	}
	return nil
}
