package eval

import (
	"github.com/iley/llvmgen/internal/ast"
	"github.com/iley/llvmgen/internal/codegen/scope"
	"github.com/iley/llvmgen/internal/diagnostics"
	"github.com/iley/llvmgen/internal/types"
)

func (e *Evaluator) evalIntLiteral(n *ast.IntLiteral) Value {
	reg := regName("val", n.Id)
	e.Ctx.Emitter.Emitf("%s = add i64 0, %d", reg, n.Value)
	return Value{Reg: reg, Type: types.IntType}
}

func (e *Evaluator) evalFloatLiteral(n *ast.FloatLiteral) Value {
	reg := regName("val", n.Id)
	e.Ctx.Emitter.Emitf("%s = fadd double 0.0, %s", reg, formatFloat(n.Value))
	return Value{Reg: reg, Type: types.FloatType}
}

// evalIdentifier resolves a plain identifier read (rvalue position).
// Arrays are passed/manipulated by pointer: reading an array identifier
// returns its pointer directly with no load.
func (e *Evaluator) evalIdentifier(n *ast.Identifier, env *scope.Env) Value {
	v, ok := env.Lookup(n.Name)
	if !ok {
		fail(diagnostics.UndefinedVariable, n.Loc, "variable %s is not declared", n.Name)
	}
	if v.Type.IsArray() {
		return Value{Reg: v.PtrName, Type: v.Type}
	}
	reg := regName("var", n.Id)
	e.Ctx.Emitter.Emitf("%s = load %s, ptr %s", reg, v.Type.IrType(), v.PtrName)
	return Value{Reg: reg, Type: types.NewPrimitive(v.Type.ElementKind())}
}

// evalIndexExpr resolves a[e] as an rvalue: look up the array, evaluate
// the index, compute the element pointer, and load through it. Must not
// be reused by assignment — see evalAssignment, which computes its own
// GEP for the store and never calls this function, so the index
// expression is evaluated exactly once per occurrence.
func (e *Evaluator) evalIndexExpr(n *ast.IndexExpr, env *scope.Env) Value {
	arrPtr, elemType := e.resolveArrayTarget(n.Array, n.Loc, env)
	idx := e.Eval(n.Index, env)
	if !idx.Type.Equals(types.IntType) {
		fail(diagnostics.IndexMustBeInt, n.Loc, "array index must be int, got %s", idx.Type)
	}

	elemPtr := regName("arrayPtr", n.Id)
	e.Ctx.Emitter.Emitf("%s = getelementptr %s, ptr %s, i64 %s", elemPtr, elemType.IrType(), arrPtr, idx.Reg)
	reg := regName("var", n.Id)
	e.Ctx.Emitter.Emitf("%s = load %s, ptr %s", reg, elemType.IrType(), elemPtr)
	return Value{Reg: reg, Type: elemType}
}

// resolveArrayTarget looks up name and requires it to be an array,
// returning its base pointer and element (primitive) type.
func (e *Evaluator) resolveArrayTarget(name string, loc ast.Location, env *scope.Env) (string, types.Type) {
	v, ok := env.Lookup(name)
	if !ok {
		fail(diagnostics.UndefinedVariable, loc, "variable %s is not declared", name)
	}
	if !v.Type.IsArray() {
		fail(diagnostics.NotAnArray, loc, "%s is not an array", name)
	}
	return v.PtrName, types.NewPrimitive(v.Type.ElementKind())
}
