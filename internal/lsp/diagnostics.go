package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/royleibov/minic/internal/ast"
	"github.com/royleibov/minic/internal/sema"
)

// convertSemaError turns a semantic analysis failure into a single LSP
// diagnostic spanning the offending token.
func convertSemaError(err *sema.Error) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(err.Pos.Line - 1),
				Character: uint32(err.Pos.Column - 1),
			},
			End: protocol.Position{
				Line:      uint32(err.Pos.Line - 1),
				Character: uint32(err.Pos.Column + 5),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("minic-sema"),
		Message:  err.Error(),
	}
}

// convertParseError turns a parser failure into a diagnostic anchored at
// line 1 when no position information is recoverable from err.
func convertParseError(pos ast.Position, message string) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(max0(pos.Line - 1)),
				Character: uint32(max0(pos.Column - 1)),
			},
			End: protocol.Position{
				Line:      uint32(max0(pos.Line - 1)),
				Character: uint32(max0(pos.Column + 5)),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("minic-parser"),
		Message:  message,
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func ptrBool(b bool) *bool { return &b }
func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}
func ptrString(s string) *string { return &s }
