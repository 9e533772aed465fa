package optimizer

import (
	"fmt"
	"io"

	"github.com/royleibov/minic/internal/ssa"
)

// Diagnostics collects the non-fatal diagnostics a pass may emit — currently
// only UnsupportedFoldOpcode from ConstantFold. Callers that don't care can
// pass io.Discard.
type Diagnostics struct {
	W io.Writer
}

func (d Diagnostics) unsupportedFoldOpcode(fnName string, op ssa.Opcode) {
	if d.W == nil {
		return
	}
	fmt.Fprintf(d.W, "UnsupportedFoldOpcode: %s in function %s\n", opcodeName(op), fnName)
}

func opcodeName(op ssa.Opcode) string {
	switch op {
	case ssa.OpSDiv:
		return "sdiv"
	case ssa.OpICmp:
		return "icmp"
	default:
		return "unknown"
	}
}

// ConstantFold folds binary arithmetic instructions (add, sub, mul — sdiv is
// unsupported and skipped with a diagnostic; other opcodes are skipped
// without one) whose operands
// are both ConstantInt and which have at least one use, replacing all uses
// with the computed constant. The folded instruction is left in the block
// for DCE to reclaim. Returns true if any fold occurred.
func ConstantFold(fn *ssa.Func, diag Diagnostics) bool {
	changed := false
	for _, block := range fn.Blocks() {
		for _, inst := range block.Insts() {
			op := inst.Opcode()
			if op == ssa.OpSDiv {
				diag.unsupportedFoldOpcode(fn.Name(), op)
				continue
			}
			if op != ssa.OpAdd && op != ssa.OpSub && op != ssa.OpMul {
				continue
			}

			v, ok := inst.Value()
			if !ok || !ssa.HasUses(fn, v) {
				continue
			}

			ops := inst.Operands()
			if len(ops) != 2 {
				continue
			}
			x, xok := ssa.SignedInt(*ops[0])
			y, yok := ssa.SignedInt(*ops[1])
			if !xok || !yok {
				continue
			}

			result := fold(op, x, y)
			folded := ssa.NewConstInt(*ops[0], result)
			ssa.ReplaceAllUsesWith(fn, v, folded)
			changed = true
		}
	}
	return changed
}

func fold(op ssa.Opcode, x, y int64) int64 {
	switch op {
	case ssa.OpAdd:
		return x + y
	case ssa.OpSub:
		return x - y
	case ssa.OpMul:
		return x * y
	default:
		return 0
	}
}
