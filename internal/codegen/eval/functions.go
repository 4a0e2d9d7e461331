package eval

import (
	"strings"

	"github.com/iley/llvmgen/internal/ast"
	"github.com/iley/llvmgen/internal/codegen/scope"
	"github.com/iley/llvmgen/internal/diagnostics"
	"github.com/iley/llvmgen/internal/types"
)

// EvalProgram registers every function, emits the printf/scanf header
// prelude, evaluates each function body in order, and returns the
// rendered IR text. Fatal semantic errors raised anywhere during
// evaluation surface here as a returned error rather than a panic.
func (e *Evaluator) EvalProgram(prog *ast.Program) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*diagnostics.CompileError); ok {
				err = ce
				return
			}
			panic(r)
		}
	}()

	e.Ctx.Emitter.EmitHeader("declare i32 @scanf(i8*, ...)")
	e.Ctx.Emitter.EmitHeader("declare i32 @printf(i8*, ...)")

	for _, fn := range prog.Functions {
		if regErr := e.Ctx.Functions.Register(scope.Function{
			Name:       fn.Name,
			Params:     fn.Params,
			ReturnType: fn.ReturnType,
		}); regErr != nil {
			fail(diagnostics.DuplicateFunction, fn.Loc, "function %s already declared", fn.Name)
		}
	}

	for _, fn := range prog.Functions {
		e.evalFunction(fn)
	}

	return e.Ctx.Emitter.String(), nil
}

// evalFunction lowers one function declaration: signature, a fresh root
// scope with parameters bound, the body, and a trailing return unless the
// body already ends in a terminator.
func (e *Evaluator) evalFunction(fn *ast.Function) {
	var params []string
	for _, p := range fn.Params {
		params = append(params, p.Type.IrType()+" %"+p.Name)
	}
	e.Ctx.Emitter.EmitRaw("define " + fn.ReturnType.IrType() + " @" + fn.Name + "(" + strings.Join(params, ", ") + ") {")
	e.Ctx.Emitter.EmitLabel("entry")

	root := scope.NewRoot()
	funcID := e.Ctx.Emitter.FreshID()
	for _, p := range fn.Params {
		if p.Type.IsArray() {
			if !root.Declare(p.Name, scope.Variable{PtrName: "%" + p.Name, Type: p.Type}) {
				fail(diagnostics.DuplicateVariable, p.Loc, "duplicate parameter name %s", p.Name)
			}
			continue
		}
		ptrName := regName("ptr."+p.Name, funcID)
		e.Ctx.Emitter.Emitf("%s = alloca %s", ptrName, p.Type.IrType())
		e.Ctx.Emitter.Emitf("store %s %%%s, ptr %s", p.Type.IrType(), p.Name, ptrName)
		if !root.Declare(p.Name, scope.Variable{PtrName: ptrName, Type: p.Type}) {
			fail(diagnostics.DuplicateVariable, p.Loc, "duplicate parameter name %s", p.Name)
		}
	}

	e.evalBlock(fn.Body, root)

	// Guard paths that lack an explicit return. LLVM forbids an
	// instruction after a block's terminator, so elide this synthetic
	// return when the body's last emitted line is already one (ret/br) —
	// the same problem the teacher's own generator solves for its own IR
	// by checking the last emitted op before appending an implicit return.
	if !e.Ctx.Emitter.LastLineIsTerminator() {
		zero := "0"
		if fn.ReturnType.ElementKind() == types.Float {
			zero = "0.0"
		}
		e.Ctx.Emitter.Emitf("ret %s %s", fn.ReturnType.IrType(), zero)
	}

	e.Ctx.Emitter.CloseLabel()
	e.Ctx.Emitter.EmitRaw("}")
}

// evalCallExpr evaluates a function call: an arity check, then the
// arguments left to right, each type checked as it is evaluated (no
// implicit promotion — an argument's type must equal the parameter's
// declared type exactly), then the call instruction.
func (e *Evaluator) evalCallExpr(n *ast.CallExpr, env *scope.Env) Value {
	fn, ok := e.Ctx.Functions.Lookup(n.Callee)
	if !ok {
		fail(diagnostics.UndefinedFunction, n.Loc, "call to undefined function %s", n.Callee)
	}
	if len(n.Args) != len(fn.Params) {
		fail(diagnostics.ArityMismatch, n.Loc, "%s expects %d argument(s), got %d", n.Callee, len(fn.Params), len(n.Args))
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.Eval(a, env)
		if !args[i].Type.Equals(fn.Params[i].Type) {
			fail(diagnostics.TypeMismatch, n.Loc, "argument %d to %s must be %s, got %s", i+1, n.Callee, fn.Params[i].Type, args[i].Type)
		}
	}

	var argStrs []string
	for _, a := range args {
		argStrs = append(argStrs, a.Type.IrType()+" "+a.Reg)
	}

	reg := regName("call", n.Id)
	e.Ctx.Emitter.Emitf("%s = call %s @%s(%s)", reg, fn.ReturnType.IrType(), n.Callee, strings.Join(argStrs, ", "))
	return Value{Reg: reg, Type: fn.ReturnType}
}
