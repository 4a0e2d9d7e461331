package eval

import (
	"github.com/iley/llvmgen/internal/ast"
	"github.com/iley/llvmgen/internal/codegen/scope"
	"github.com/iley/llvmgen/internal/diagnostics"
	"github.com/iley/llvmgen/internal/types"
)

// evalVarDecl allocates storage for a new local and binds it in env.
func (e *Evaluator) evalVarDecl(n *ast.VarDecl, env *scope.Env) {
	ptrName := regName("ptr."+n.Name, n.Id)

	if arr, ok := n.Type.(types.Array); ok {
		if n.ArraySize == nil {
			fail(diagnostics.MissingArraySize, n.Loc, "array declaration of %s is missing a size expression", n.Name)
		}
		size := e.Eval(n.ArraySize, env)
		if !size.Type.Equals(types.IntType) {
			fail(diagnostics.TypeMismatch, n.Loc, "array size must be int, got %s", size.Type)
		}
		elemTy := types.NewPrimitive(arr.Kind).IrType()
		rawPtr := regName("arrayptr", n.Id)
		e.Ctx.Emitter.Emitf("%s = alloca %s, i64 %s", rawPtr, elemTy, size.Reg)
		e.Ctx.Emitter.Emitf("%s = getelementptr %s, ptr %s, i64 0", ptrName, elemTy, rawPtr)
		if !env.Declare(n.Name, scope.Variable{PtrName: ptrName, Type: n.Type}) {
			fail(diagnostics.DuplicateVariable, n.Loc, "variable %s already declared in this scope", n.Name)
		}
		return
	}

	prim := n.Type.(types.Primitive)
	e.Ctx.Emitter.Emitf("%s = alloca %s", ptrName, prim.IrType())
	if !env.Declare(n.Name, scope.Variable{PtrName: ptrName, Type: n.Type}) {
		fail(diagnostics.DuplicateVariable, n.Loc, "variable %s already declared in this scope", n.Name)
	}
	if n.Initializer != nil {
		init := e.Eval(n.Initializer, env)
		if !init.Type.Equals(prim) {
			fail(diagnostics.TypeMismatch, n.Loc, "initializer for %s must be %s, got %s", n.Name, prim, init.Type)
		}
		e.Ctx.Emitter.Emitf("store %s %s, ptr %s", prim.IrType(), init.Reg, ptrName)
	}
}

// evalAssignment handles both plain and indexed assignment targets. The
// indexed case computes its own getelementptr for the store and does not
// call evalIndexExpr, so the index expression is evaluated exactly once.
func (e *Evaluator) evalAssignment(n *ast.Assignment, env *scope.Env) {
	if n.Target.Index == nil {
		v, ok := env.Lookup(n.Target.Name)
		if !ok {
			fail(diagnostics.UndefinedVariable, n.Loc, "variable %s is not declared", n.Target.Name)
		}
		if v.Type.IsArray() {
			fail(diagnostics.CannotAssignArray, n.Loc, "cannot assign to array %s as a whole", n.Target.Name)
		}
		value := e.Eval(n.Value, env)
		if !value.Type.Equals(v.Type) {
			fail(diagnostics.TypeMismatch, n.Loc, "cannot assign %s to %s of type %s", value.Type, n.Target.Name, v.Type)
		}
		e.Ctx.Emitter.Emitf("store %s %s, ptr %s", v.Type.IrType(), value.Reg, v.PtrName)
		return
	}

	arrPtr, elemType := e.resolveArrayTarget(n.Target.Name, n.Loc, env)
	idx := e.Eval(n.Target.Index, env)
	if !idx.Type.Equals(types.IntType) {
		fail(diagnostics.IndexMustBeInt, n.Loc, "array index must be int, got %s", idx.Type)
	}
	value := e.Eval(n.Value, env)
	if !value.Type.Equals(elemType) {
		fail(diagnostics.TypeMismatch, n.Loc, "cannot assign %s to %s element of type %s", value.Type, n.Target.Name, elemType)
	}

	elemPtr := regName("arrayPtr", n.Id)
	e.Ctx.Emitter.Emitf("%s = getelementptr %s, ptr %s, i64 %s", elemPtr, elemType.IrType(), arrPtr, idx.Reg)
	e.Ctx.Emitter.Emitf("store %s %s, ptr %s", elemType.IrType(), value.Reg, elemPtr)
}
