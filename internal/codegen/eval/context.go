// Package eval implements the AST Evaluator: the tree walker that type
// checks and lowers AST nodes to LLVM IR text, one family of node kinds
// per file (literals, arithmetic, control flow, declarations, I/O,
// functions), mirroring how the teacher splits codegen by concern.
package eval

import (
	"github.com/iley/llvmgen/internal/codegen/ir"
	"github.com/iley/llvmgen/internal/codegen/scope"
)

// CompileContext bundles the process-wide state a single compilation
// shares: the IR buffer (with its id counter and string table) and the
// function table. Encapsulating this in a value rather than package
// globals makes the compiler reentrant and testable, per spec.md §9's
// explicit recommendation.
type CompileContext struct {
	Emitter   *ir.Emitter
	Functions *scope.FunctionTable
}

// NewCompileContext returns a fresh, empty CompileContext ready for one
// compilation.
func NewCompileContext() *CompileContext {
	return &CompileContext{
		Emitter:   ir.New(),
		Functions: scope.NewFunctionTable(),
	}
}

// Reset restores ctx to a fresh empty state, so a long-lived process
// (a test harness, a language server) can run another compilation
// without restarting.
func (ctx *CompileContext) Reset() {
	ctx.Emitter.Reset()
	ctx.Functions = scope.NewFunctionTable()
}
