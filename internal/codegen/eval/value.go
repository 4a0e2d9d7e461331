package eval

import (
	"github.com/iley/llvmgen/internal/ast"
	"github.com/iley/llvmgen/internal/diagnostics"
	"github.com/iley/llvmgen/internal/types"
)

// Value is the value handle spec.md §3 describes: an IR register
// currently holding a value, plus its language type.
type Value struct {
	Reg  string
	Type types.Type
}

// Evaluator walks an AST and emits IR into its CompileContext. It carries
// no per-function state itself; every exported entry point takes the
// current scope explicitly.
type Evaluator struct {
	Ctx *CompileContext
}

// New returns an Evaluator bound to ctx.
func New(ctx *CompileContext) *Evaluator {
	return &Evaluator{Ctx: ctx}
}

// fail aborts the current compilation with a CompileError. The evaluator
// raises errors by panicking with *diagnostics.CompileError; the public
// EvalProgram entry point recovers this panic and returns it as an error,
// matching the teacher's two-return (value, []error) convention while
// keeping deeply nested recursive evaluation code free of error-threading
// boilerplate — appropriate here because spec.md mandates fatal,
// first-error-aborts semantics with no partial-emission contract.
func fail(kind diagnostics.ErrorKind, loc ast.Location, format string, args ...any) {
	panic(diagnostics.Newf(kind, loc, format, args...))
}
