package ssa

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAddFunc builds `define i32 @f() { entry: %a = add i32 2, 3; ret i32 %a }`.
func buildAddFunc() (*ir.Module, *ir.Func, *ir.InstAdd) {
	m := ir.NewModule()
	f := m.NewFunc("f", types.I32)
	entry := f.NewBlock("entry")
	add := entry.NewAdd(constant.NewInt(types.I32, 2), constant.NewInt(types.I32, 3))
	entry.NewRet(add)
	return m, f, add
}

func TestOpcodeClassification(t *testing.T) {
	_, f, add := buildAddFunc()
	fn := &Func{F: f}
	insts := fn.Blocks()[0].Insts()
	require.Len(t, insts, 1)
	assert.Equal(t, OpAdd, insts[0].Opcode())
	assert.True(t, insts[0].IsBinaryOp())
	assert.False(t, insts[0].IsCmp())
	assert.Same(t, add, insts[0].Raw())
}

func TestCommutativeTable(t *testing.T) {
	assert.True(t, OpAdd.Commutative())
	assert.True(t, OpMul.Commutative())
	assert.False(t, OpSub.Commutative())
	assert.False(t, OpICmp.Commutative())
}

func TestSignedIntAndIsConstantInt(t *testing.T) {
	c := constant.NewInt(types.I32, 7)
	assert.True(t, IsConstantInt(c))
	v, ok := SignedInt(c)
	require.True(t, ok)
	assert.EqualValues(t, 7, v)

	_, ok = SignedInt(nil)
	assert.False(t, ok)
}

func TestSameValueOperandIdentity(t *testing.T) {
	a := constant.NewInt(types.I32, 4)
	b := constant.NewInt(types.I32, 4)
	assert.True(t, SameValue(a, b), "value-equal constants are the same operand by identity fallback")

	c := constant.NewInt(types.I32, 5)
	assert.False(t, SameValue(a, c))
}

func TestReplaceAllUsesWithRewritesInstructionAndTerminatorOperands(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunc("f", types.I32)
	entry := f.NewBlock("entry")
	x := ir.NewParam("x", types.I32)
	f.Params = append(f.Params, x)
	add := entry.NewAdd(x, constant.NewInt(types.I32, 1))
	entry.NewRet(add)

	fn := &Func{F: f}
	five := constant.NewInt(types.I32, 5)
	ReplaceAllUsesWith(fn, add, five)

	term := entry.Term.(*ir.TermRet)
	assert.Same(t, value.Value(five), term.X)
	_ = m
}

func TestUsesAndHasUses(t *testing.T) {
	m, f, add := buildAddFunc()
	fn := &Func{F: f}
	assert.True(t, HasUses(fn, add), "add feeds the ret terminator")

	unused := constant.NewInt(types.I32, 9)
	assert.False(t, HasUses(fn, unused))
	_ = m
}

func TestEraseRemovesInstructionFromBlock(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunc("f", types.I32)
	entry := f.NewBlock("entry")
	dead := entry.NewAdd(constant.NewInt(types.I32, 1), constant.NewInt(types.I32, 1))
	entry.NewRet(constant.NewInt(types.I32, 0))

	fn := &Func{F: f}
	b := fn.Blocks()[0]
	require.Len(t, b.Insts(), 1)
	b.Erase(Instruction{inst: dead, block: b})
	assert.Len(t, b.Insts(), 0)
	_ = m
}

func TestTerminatorSuccessors(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunc("f", types.I32)
	entry := f.NewBlock("entry")
	thenBlk := f.NewBlock("then")
	elseBlk := f.NewBlock("else")
	cond := entry.NewICmp(enum.IPredEQ, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 0))
	entry.NewCondBr(cond, thenBlk, elseBlk)
	thenBlk.NewRet(constant.NewInt(types.I32, 1))
	elseBlk.NewRet(constant.NewInt(types.I32, 2))

	fn := &Func{F: f}
	succs := fn.Blocks()[0].Term().Succs()
	require.Len(t, succs, 2)
	assert.Same(t, thenBlk, succs[0].B)
	assert.Same(t, elseBlk, succs[1].B)
}
