// Package optimizer implements the four classical local/intra-procedural
// optimization passes — CSE, DCE, constant folding, constant propagation —
// and the fixpoint driver that composes them, all written against the
// internal/ssa façade rather than github.com/llir/llvm directly.
package optimizer

import (
	"io"

	"github.com/royleibov/minic/internal/ssa"
)

// Manager drives the outer/inner fixpoint loop of §4.6 over each function of
// a module, one function at a time. Diagnostics from ConstantFold
// (UnsupportedFoldOpcode) are written to Diag.W; pass io.Discard to silence
// them.
type Manager struct {
	Diag Diagnostics
}

// NewManager creates a Manager that writes non-fatal diagnostics to w.
func NewManager(w io.Writer) *Manager {
	return &Manager{Diag: Diagnostics{W: w}}
}

// Run applies the pass sequence to every function in m until no pass
// reports a change:
//
//  1. CSE
//  2. DCE
//  3. inner fixpoint: constant folding, then constant propagation, repeated
//     until both report "unchanged" in the same sweep.
//
// It loops while any of the three reported a change in the sweep just run.
func (mgr *Manager) Run(m *ssa.Module) {
	for _, fn := range m.Funcs() {
		mgr.runFunc(fn)
	}
}

func (mgr *Manager) runFunc(fn *ssa.Func) {
	if len(fn.Blocks()) == 0 {
		return // external function declaration: no body to optimize
	}
	for {
		c1 := CSE(fn)
		c2 := DCE(fn)
		c3 := mgr.innerFixpoint(fn)
		if !(c1 || c2 || c3) {
			return
		}
	}
}

func (mgr *Manager) innerFixpoint(fn *ssa.Func) bool {
	anyChange := false
	for {
		foldChanged := ConstantFold(fn, mgr.Diag)
		propChanged := ConstantProp(fn)
		if foldChanged || propChanged {
			anyChange = true
			continue
		}
		return anyChange
	}
}
