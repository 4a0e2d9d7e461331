package eval

import (
	"fmt"
	"strings"

	"github.com/iley/llvmgen/internal/ast"
	"github.com/iley/llvmgen/internal/codegen/scope"
	"github.com/iley/llvmgen/internal/diagnostics"
	"github.com/iley/llvmgen/internal/types"
)

// evalPrintStatement interns the format string and calls printf with the
// evaluated operands, in source order. Zero operands omit the trailing
// comma after the format global.
func (e *Evaluator) evalPrintStatement(n *ast.PrintStatement, env *scope.Env) {
	fmtGlobal := e.Ctx.Emitter.InternString(n.Format)

	args := make([]Value, len(n.Args))
	for i, arg := range n.Args {
		args[i] = e.Eval(arg, env)
	}

	var b strings.Builder
	b.WriteString("call i32 (i8*, ...) @printf(i8* ")
	b.WriteString(fmtGlobal)
	for _, a := range args {
		b.WriteString(", ")
		b.WriteString(a.Type.IrType())
		b.WriteString(" ")
		b.WriteString(a.Reg)
	}
	b.WriteString(")")
	e.Ctx.Emitter.Emit(b.String())
}

// evalScanStatement interns the format string and calls scanf with the
// pointer of each target, in source order. Array targets must be indexed;
// non-array targets are scanned through their variable pointer directly.
func (e *Evaluator) evalScanStatement(n *ast.ScanStatement, env *scope.Env) {
	fmtGlobal := e.Ctx.Emitter.InternString(n.Format)

	type target struct {
		ptr string
		typ types.Type
	}
	targets := make([]target, len(n.Targets))
	for i, t := range n.Targets {
		if t.Index != nil {
			arrPtr, elemType := e.resolveArrayTarget(t.Name, t.Loc, env)
			idx := e.Eval(t.Index, env)
			if !idx.Type.Equals(types.IntType) {
				fail(diagnostics.IndexMustBeInt, t.Loc, "array index must be int, got %s", idx.Type)
			}
			// A distinct prefix per target index, combined with the scan
			// statement's own node id, keeps this name from colliding with
			// the "arrayPtr.<id>" GEPs evalIndexExpr/evalAssignment derive
			// from their own node ids, and from other targets in this same
			// scan statement (which all share n.Id).
			elemPtr := regName(fmt.Sprintf("arrayPtr.scan%d", i), n.Id)
			e.Ctx.Emitter.Emitf("%s = getelementptr %s, ptr %s, i64 %s", elemPtr, elemType.IrType(), arrPtr, idx.Reg)
			targets[i] = target{ptr: elemPtr, typ: elemType}
			continue
		}
		v, ok := env.Lookup(t.Name)
		if !ok {
			fail(diagnostics.UndefinedVariable, t.Loc, "variable %s is not declared", t.Name)
		}
		if v.Type.IsArray() {
			fail(diagnostics.CannotScanArray, t.Loc, "cannot scan into array %s without an index", t.Name)
		}
		targets[i] = target{ptr: v.PtrName, typ: v.Type}
	}

	var b strings.Builder
	b.WriteString("call i32 (i8*, ...) @scanf(i8* ")
	b.WriteString(fmtGlobal)
	for _, t := range targets {
		b.WriteString(", ")
		b.WriteString(t.typ.IrType())
		b.WriteString("* ")
		b.WriteString(t.ptr)
	}
	b.WriteString(")")
	e.Ctx.Emitter.Emit(b.String())
}
