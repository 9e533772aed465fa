// Package ssa is the IR model façade §6 requires the optimizer be written
// against: abstract capabilities over modules, functions, basic blocks and
// instructions, backed concretely by github.com/llir/llvm. The optimizer
// passes import only this package, never llir/llvm directly, so the
// capability surface stays the single point of contact with the library.
package ssa

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"
)

// Opcode enumerates the instruction kinds the optimizer reasons about. Kinds
// the passes never need to distinguish (phi, the various terminators beyond
// ret/br/condbr) still classify correctly through the predicates below even
// though they share OpOther here.
type Opcode int

const (
	OpOther Opcode = iota
	OpAlloca
	OpLoad
	OpStore
	OpAdd
	OpSub
	OpMul
	OpSDiv
	OpICmp
	OpCall
	OpRet
	OpBr
	OpCondBr
	OpPhi
)

// Commutative reports whether opcode op's result is invariant under operand
// swap — the CSE commutative-retry table §9 calls out as {add, mul}.
func (op Opcode) Commutative() bool {
	return op == OpAdd || op == OpMul
}

// Value is anything that can appear as an instruction operand: the result of
// another Instruction, a ConstantInt, or a function/global reference.
type Value = value.Value

// Module wraps an *ir.Module, giving access to the functions it defines.
type Module struct {
	M *ir.Module
}

func NewModule(m *ir.Module) *Module { return &Module{M: m} }

// Funcs enumerates the functions defined in the module.
func (m *Module) Funcs() []*Func {
	out := make([]*Func, 0, len(m.M.Funcs))
	for _, f := range m.M.Funcs {
		out = append(out, &Func{F: f})
	}
	return out
}

// String dumps the module in its textual IR form (the external printer
// collaborator §1/§6 defers to).
func (m *Module) String() string { return m.M.String() }

// Func wraps an *ir.Func.
type Func struct {
	F *ir.Func
}

// Blocks enumerates the function's basic blocks, entry first.
func (f *Func) Blocks() []*Block {
	out := make([]*Block, 0, len(f.F.Blocks))
	for _, b := range f.F.Blocks {
		out = append(out, &Block{B: b, fn: f})
	}
	return out
}

func (f *Func) Name() string { return f.F.Name() }

// Block wraps an *ir.Block.
type Block struct {
	B  *ir.Block
	fn *Func
}

// Insts returns the block's non-terminator instructions, in program order.
func (b *Block) Insts() []Instruction {
	out := make([]Instruction, 0, len(b.B.Insts))
	for _, i := range b.B.Insts {
		out = append(out, Instruction{inst: i, block: b})
	}
	return out
}

// Erase removes inst from the block's instruction list. The caller must have
// already verified its use-list is empty (DCE's precondition per §5).
func (b *Block) Erase(inst Instruction) {
	insts := b.B.Insts
	for i, cur := range insts {
		if cur == inst.inst {
			b.B.Insts = append(insts[:i], insts[i+1:]...)
			return
		}
	}
}

// Term is the block's single terminator instruction.
func (b *Block) Term() Terminator { return Terminator{term: b.B.Term, fn: b.fn} }

// Terminator wraps an ir.Terminator: the exactly-one terminator per block.
type Terminator struct {
	term ir.Terminator
	fn   *Func
}

// Operands returns the terminator's operand slots (mutable in place, the
// same replace-all-uses-with mechanism as an ordinary instruction).
func (t Terminator) Operands() []*value.Value {
	if t.term == nil {
		return nil
	}
	return t.term.Operands()
}

// Succs enumerates the terminator's successor blocks, wrapped as façade
// Blocks belonging to the same function — br, br-conditional, and any other
// multi-way terminator all satisfy ir.Terminator.Succs().
func (t Terminator) Succs() []*Block {
	if t.term == nil {
		return nil
	}
	raw := t.term.Succs()
	out := make([]*Block, 0, len(raw))
	for _, rb := range raw {
		out = append(out, &Block{B: rb, fn: t.fn})
	}
	return out
}

// Instruction wraps a concrete ir.Instruction together with the block that
// owns it, so callers can classify, inspect operands, and erase it without
// importing llir/llvm themselves.
type Instruction struct {
	inst  ir.Instruction
	block *Block
}

func (i Instruction) Raw() ir.Instruction { return i.inst }

// Value returns i as an operand Value, for instructions that produce a
// result (everything but store, which has no result).
func (i Instruction) Value() (Value, bool) {
	v, ok := i.inst.(value.Value)
	return v, ok
}

// Opcode classifies the wrapped instruction.
func (i Instruction) Opcode() Opcode {
	switch i.inst.(type) {
	case *ir.InstAlloca:
		return OpAlloca
	case *ir.InstLoad:
		return OpLoad
	case *ir.InstStore:
		return OpStore
	case *ir.InstAdd:
		return OpAdd
	case *ir.InstSub:
		return OpSub
	case *ir.InstMul:
		return OpMul
	case *ir.InstSDiv:
		return OpSDiv
	case *ir.InstICmp:
		return OpICmp
	case *ir.InstCall:
		return OpCall
	default:
		return OpOther
	}
}

func (i Instruction) IsTerminator() bool { return false } // Insts() never yields the terminator itself
func (i Instruction) IsStore() bool      { _, ok := i.inst.(*ir.InstStore); return ok }
func (i Instruction) IsLoad() bool       { _, ok := i.inst.(*ir.InstLoad); return ok }
func (i Instruction) IsCall() bool       { _, ok := i.inst.(*ir.InstCall); return ok }
func (i Instruction) IsAlloca() bool     { _, ok := i.inst.(*ir.InstAlloca); return ok }

func (i Instruction) IsBinaryOp() bool {
	switch i.Opcode() {
	case OpAdd, OpSub, OpMul, OpSDiv:
		return true
	default:
		return false
	}
}

func (i Instruction) IsCmp() bool { return i.Opcode() == OpICmp }

// Operands returns the instruction's operand slots. Each slot is a pointer
// into the instruction's own field, so overwriting *slot is how
// replace-all-uses-with's callers (and this package's own ReplaceAllUsesWith)
// rewrite an operand in place.
func (i Instruction) Operands() []*value.Value {
	return i.inst.Operands()
}

// StoreAddr returns the destination address of a store instruction.
func (i Instruction) StoreAddr() value.Value {
	s, ok := i.inst.(*ir.InstStore)
	if !ok {
		return nil
	}
	return s.Dst
}

// StoreValue returns the value a store instruction writes.
func (i Instruction) StoreValue() value.Value {
	s, ok := i.inst.(*ir.InstStore)
	if !ok {
		return nil
	}
	return s.Src
}

// LoadAddr returns the source address of a load instruction.
func (i Instruction) LoadAddr() value.Value {
	l, ok := i.inst.(*ir.InstLoad)
	if !ok {
		return nil
	}
	return l.Src
}

// IsConstantInt reports whether v is a ConstantInt — a signed integer of
// known bit-width, as opposed to an instruction result or function/global
// reference.
func IsConstantInt(v value.Value) bool {
	_, ok := v.(*constant.Int)
	return ok
}

// SignedInt returns the sign-extended integer value of a ConstantInt. ok is
// false if v is not a ConstantInt.
func SignedInt(v value.Value) (int64, bool) {
	c, ok := v.(*constant.Int)
	if !ok {
		return 0, false
	}
	return c.X.Int64(), true
}

// NewConstInt builds a new ConstantInt of the same type as like, carrying
// value x — the "insert constant" mutator §5 names.
func NewConstInt(like value.Value, x int64) value.Value {
	c := like.(*constant.Int)
	return constant.NewInt(c.Typ, x)
}

// SameValue reports operand identity: pointer identity for instruction
// results and function/global references, integer-constant value equality as
// the fallback — the operand-identity-only comparison §3/§9 specifies in
// place of alias analysis.
func SameValue(a, b value.Value) bool {
	if a == b {
		return true
	}
	av, aok := SignedInt(a)
	bv, bok := SignedInt(b)
	return aok && bok && av == bv
}

// ReplaceAllUsesWith rewrites every operand slot across fn that currently
// holds oldVal so it holds newVal instead — instruction operands and
// terminator operands alike. It does not erase oldVal's defining instruction;
// DCE reclaims it once its use-list is empty.
func ReplaceAllUsesWith(fn *Func, oldVal, newVal value.Value) {
	for _, block := range fn.F.Blocks {
		for _, inst := range block.Insts {
			for _, operand := range inst.Operands() {
				if *operand == oldVal {
					*operand = newVal
				}
			}
		}
		if block.Term != nil {
			for _, operand := range block.Term.Operands() {
				if *operand == oldVal {
					*operand = newVal
				}
			}
		}
	}
}
