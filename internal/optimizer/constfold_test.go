package optimizer

import (
	"bytes"
	"io"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/royleibov/minic/internal/ssa"
)

// TestConstantFoldScenario4 mirrors §8 scenario 4: `%a = add i32 2, 3`
// followed by a use of %a; after folding, %a is replaced by the constant 5.
func TestConstantFoldScenario4(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunc("f", types.I32)
	entry := f.NewBlock("entry")
	add := entry.NewAdd(constant.NewInt(types.I32, 2), constant.NewInt(types.I32, 3))
	entry.NewRet(add)

	fn := &ssa.Func{F: f}
	changed := ConstantFold(fn, Diagnostics{W: io.Discard})
	require.True(t, changed)

	term := entry.Term.(*ir.TermRet)
	v, ok := ssa.SignedInt(term.X)
	require.True(t, ok, "ret operand should now be a ConstantInt")
	assert.EqualValues(t, 5, v)
}

func TestConstantFoldSkipsDivWithDiagnostic(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunc("f", types.I32)
	entry := f.NewBlock("entry")
	div := entry.NewSDiv(constant.NewInt(types.I32, 6), constant.NewInt(types.I32, 2))
	entry.NewRet(div)

	fn := &ssa.Func{F: f}
	var buf bytes.Buffer
	changed := ConstantFold(fn, Diagnostics{W: &buf})
	assert.False(t, changed)
	assert.Contains(t, buf.String(), "UnsupportedFoldOpcode")
}

func TestConstantFoldSkipsInstructionWithNoUses(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunc("f", types.I32)
	entry := f.NewBlock("entry")
	entry.NewAdd(constant.NewInt(types.I32, 1), constant.NewInt(types.I32, 1))
	entry.NewRet(constant.NewInt(types.I32, 0))

	fn := &ssa.Func{F: f}
	changed := ConstantFold(fn, Diagnostics{W: io.Discard})
	assert.False(t, changed, "folding an unused instruction is pointless; DCE removes it instead")
}

func TestConstantFoldIsIdempotentOnNonConstantOperands(t *testing.T) {
	m := ir.NewModule()
	f := m.NewFunc("f", types.I32)
	entry := f.NewBlock("entry")
	x := ir.NewParam("x", types.I32)
	f.Params = append(f.Params, x)
	add := entry.NewAdd(x, constant.NewInt(types.I32, 1))
	entry.NewRet(add)

	fn := &ssa.Func{F: f}
	assert.False(t, ConstantFold(fn, Diagnostics{W: io.Discard}))
}
