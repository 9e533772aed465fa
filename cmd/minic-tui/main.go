// Command minic-tui is an interactive visualizer for the pass manager: it
// loads an LLVM IR module, lets the user step one optimizer pass at a time
// over a chosen function, and renders the module dump after each step so
// the effect of CSE, DCE, constant folding and constant propagation can be
// inspected individually rather than only at fixpoint.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/llir/llvm/asm"

	"github.com/royleibov/minic/internal/optimizer"
	"github.com/royleibov/minic/internal/ssa"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	changedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	unchangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
)

// step is one pass application in the round-robin CSE->DCE->Fold->Propagate
// cycle the model replays whenever the user asks for the next step.
type step struct {
	pass    string
	changed bool
	dump    string
}

type model struct {
	fn       *ssa.Func
	mod      *ssa.Module
	diag     optimizer.Diagnostics
	steps    []step
	cursor   int
	viewport viewport.Model
}

func initialModel(mod *ssa.Module, fn *ssa.Func) model {
	vp := viewport.New(100, 24)
	m := model{
		mod:  mod,
		fn:   fn,
		diag: optimizer.Diagnostics{W: &bytes.Buffer{}},
	}
	m.steps = append(m.steps, step{pass: "initial", changed: false, dump: mod.String()})
	m.viewport = vp
	m.viewport.SetContent(m.steps[0].dump)
	return m
}

var passCycle = []string{"CSE", "DCE", "ConstantFold", "ConstantProp"}

func (m *model) runNextPass() {
	// steps[0] is the initial dump, so the first pass run is passCycle[0].
	name := passCycle[(len(m.steps)-1)%len(passCycle)]
	var changed bool
	switch name {
	case "CSE":
		changed = optimizer.CSE(m.fn)
	case "DCE":
		changed = optimizer.DCE(m.fn)
	case "ConstantFold":
		changed = optimizer.ConstantFold(m.fn, m.diag)
	case "ConstantProp":
		changed = optimizer.ConstantProp(m.fn)
	}
	m.steps = append(m.steps, step{pass: name, changed: changed, dump: m.mod.String()})
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "n", " ":
			m.runNextPass()
			m.cursor = len(m.steps) - 1
			m.viewport.SetContent(m.steps[m.cursor].dump)
		case "p":
			if m.cursor > 0 {
				m.cursor--
				m.viewport.SetContent(m.steps[m.cursor].dump)
			}
		}
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 6
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var history string
	for i, s := range m.steps {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		if s.changed {
			history += marker + changedStyle.Render(fmt.Sprintf("%s (changed)", s.pass)) + "\n"
		} else {
			history += marker + unchangedStyle.Render(s.pass) + "\n"
		}
	}

	return titleStyle.Render(" MiniC pass manager ") + "\n\n" +
		history + "\n" +
		m.viewport.View() + "\n" +
		helpStyle.Render("n: next pass  p: previous step  q: quit")
}

func main() {
	var input, fnName string
	flag.StringVar(&input, "file", "", "LLVM IR (.ll) file to visualize")
	flag.StringVar(&fnName, "func", "", "function to step through (default: first function with a body)")
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

	mod := ssa.NewModule(m)
	var target *ssa.Func
	for _, fn := range mod.Funcs() {
		if len(fn.Blocks()) == 0 {
			continue
		}
		if fnName == "" || fn.Name() == fnName {
			target = fn
			break
		}
	}
	if target == nil {
		fmt.Fprintln(os.Stderr, "Error: no matching function with a body found")
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(mod, target))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		os.Exit(1)
	}
}
