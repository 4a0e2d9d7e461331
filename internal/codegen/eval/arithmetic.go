package eval

import (
	"github.com/iley/llvmgen/internal/ast"
	"github.com/iley/llvmgen/internal/codegen/scope"
	"github.com/iley/llvmgen/internal/diagnostics"
	"github.com/iley/llvmgen/internal/types"
)

var arithmeticOps = map[string]struct{ intOp, floatOp string }{
	"+": {"add", "fadd"},
	"-": {"sub", "fsub"},
	"*": {"mul", "fmul"},
	"/": {"sdiv", "fdiv"},
	"%": {"srem", ""},
}

var relationalOps = map[string]struct{ intPred, floatPred string }{
	"==": {"eq", "oeq"},
	"!=": {"ne", "one"},
	"<":  {"slt", "olt"},
	">":  {"sgt", "ogt"},
	"<=": {"sle", "ole"},
	">=": {"sge", "oge"},
}

// evalUnaryExpr handles "+x", "-x" (arithmetic) and "!x" (logical),
// dispatched on the operator.
func (e *Evaluator) evalUnaryExpr(n *ast.UnaryExpr, env *scope.Env) Value {
	if n.Operator == "!" {
		return e.evalLogicalNot(n, env)
	}

	operand := e.Eval(n.Operand, env)
	if operand.Type.IsArray() {
		fail(diagnostics.ArrayOperandForbidden, n.Loc, "unary %s cannot be applied to an array", n.Operator)
	}

	if n.Operator == "+" {
		return operand
	}

	reg := regName("unOp", n.Id)
	if operand.Type.ElementKind() == types.Float {
		e.Ctx.Emitter.Emitf("%s = fsub double 0.0, %s", reg, operand.Reg)
	} else {
		e.Ctx.Emitter.Emitf("%s = sub i64 0, %s", reg, operand.Reg)
	}
	return Value{Reg: reg, Type: operand.Type}
}

func (e *Evaluator) evalLogicalNot(n *ast.UnaryExpr, env *scope.Env) Value {
	operand := e.Eval(n.Operand, env)
	if !operand.Type.Equals(types.IntType) {
		fail(diagnostics.LogicalOperandMustBeInt, n.Loc, "! operand must be int, got %s", operand.Type)
	}
	isZero := regName("boolIsZero", n.Id)
	e.Ctx.Emitter.Emitf("%s = icmp eq i64 %s, 0", isZero, operand.Reg)
	result := regName("boolUnOp", n.Id)
	e.Ctx.Emitter.Emitf("%s = zext i1 %s to i64", result, isZero)
	return Value{Reg: result, Type: types.IntType}
}

// evalBinaryExpr dispatches "+ - * / %" (arithmetic), "== != < > <= >="
// (relational), and "&& ||" (logical) by operator.
func (e *Evaluator) evalBinaryExpr(n *ast.BinaryExpr, env *scope.Env) Value {
	if n.Operator == "&&" || n.Operator == "||" {
		return e.evalLogicalBinary(n, env)
	}
	if _, ok := relationalOps[n.Operator]; ok {
		return e.evalRelational(n, env)
	}
	return e.evalArithmetic(n, env)
}

// promote takes both already-evaluated operands (the caller evaluates
// left then right, in source order), rejects array operands, and if
// exactly one side is Int and the other Float, promotes the Int side to
// Float. Returns the (possibly-converted) register for
// each side and the common type both now share.
func (e *Evaluator) promote(left, right Value, id int, loc ast.Location) (lReg, rReg string, common types.Type) {
	if left.Type.IsArray() || right.Type.IsArray() {
		fail(diagnostics.ArrayOperandForbidden, loc, "operator cannot be applied to an array operand")
	}
	lReg, rReg = left.Reg, right.Reg
	if left.Type.ElementKind() == right.Type.ElementKind() {
		return lReg, rReg, left.Type
	}
	if left.Type.ElementKind() == types.Int {
		converted := regName("conv", id)
		e.Ctx.Emitter.Emitf("%s = sitofp i64 %s to double", converted, lReg)
		return converted, rReg, types.FloatType
	}
	converted := regName("conv", id)
	e.Ctx.Emitter.Emitf("%s = sitofp i64 %s to double", converted, rReg)
	return lReg, converted, types.FloatType
}

func (e *Evaluator) evalArithmetic(n *ast.BinaryExpr, env *scope.Env) Value {
	left := e.Eval(n.Left, env)
	right := e.Eval(n.Right, env)
	lReg, rReg, common := e.promote(left, right, n.Id, n.Loc)

	ops, ok := arithmeticOps[n.Operator]
	if !ok {
		fail(diagnostics.UnknownOperator, n.Loc, "unknown binary operator %q", n.Operator)
	}

	reg := regName("binOp", n.Id)
	if common.ElementKind() == types.Float {
		if ops.floatOp == "" {
			fail(diagnostics.TypeMismatch, n.Loc, "operator %q is not supported on float operands", n.Operator)
		}
		e.Ctx.Emitter.Emitf("%s = %s double %s, %s", reg, ops.floatOp, lReg, rReg)
	} else {
		e.Ctx.Emitter.Emitf("%s = %s i64 %s, %s", reg, ops.intOp, lReg, rReg)
	}
	return Value{Reg: reg, Type: common}
}

func (e *Evaluator) evalRelational(n *ast.BinaryExpr, env *scope.Env) Value {
	left := e.Eval(n.Left, env)
	right := e.Eval(n.Right, env)
	lReg, rReg, common := e.promote(left, right, n.Id, n.Loc)

	preds := relationalOps[n.Operator]
	temp := regName("temp", n.Id)
	if common.ElementKind() == types.Float {
		e.Ctx.Emitter.Emitf("%s = fcmp %s double %s, %s", temp, preds.floatPred, lReg, rReg)
	} else {
		e.Ctx.Emitter.Emitf("%s = icmp %s i64 %s, %s", temp, preds.intPred, lReg, rReg)
	}
	reg := regName("relOp", n.Id)
	e.Ctx.Emitter.Emitf("%s = zext i1 %s to i64", reg, temp)
	return Value{Reg: reg, Type: types.IntType}
}

// evalLogicalBinary evaluates both operands unconditionally in source
// order — this language's && and || are deliberately not short-circuit
// (spec decision, preserved exactly: side effects on the right-hand
// operand always execute).
func (e *Evaluator) evalLogicalBinary(n *ast.BinaryExpr, env *scope.Env) Value {
	left := e.Eval(n.Left, env)
	right := e.Eval(n.Right, env)
	if !left.Type.Equals(types.IntType) || !right.Type.Equals(types.IntType) {
		fail(diagnostics.LogicalOperandMustBeInt, n.Loc, "%s operands must be int", n.Operator)
	}

	bitOp := "and"
	if n.Operator == "||" {
		bitOp = "or"
	}
	and := regName("and", n.Id)
	e.Ctx.Emitter.Emitf("%s = %s i64 %s, %s", and, bitOp, left.Reg, right.Reg)
	logic := regName("logic", n.Id)
	e.Ctx.Emitter.Emitf("%s = icmp ne i64 %s, 0", logic, and)
	reg := regName("boolBinOp", n.Id)
	e.Ctx.Emitter.Emitf("%s = zext i1 %s to i64", reg, logic)
	return Value{Reg: reg, Type: types.IntType}
}

// evalCastExpr handles explicit "(int)e" / "(float)e" casts. A cast to
// the operand's own type is a no-op (cast idempotence).
func (e *Evaluator) evalCastExpr(n *ast.CastExpr, env *scope.Env) Value {
	operand := e.Eval(n.Operand, env)
	if operand.Type.IsArray() {
		fail(diagnostics.ArrayOperandForbidden, n.Loc, "cannot cast an array")
	}
	if operand.Type.ElementKind() == n.Target.Kind {
		return Value{Reg: operand.Reg, Type: n.Target}
	}

	reg := regName("conv", n.Id)
	if n.Target.Kind == types.Float {
		e.Ctx.Emitter.Emitf("%s = sitofp i64 %s to double", reg, operand.Reg)
	} else {
		e.Ctx.Emitter.Emitf("%s = fptosi double %s to i64", reg, operand.Reg)
	}
	return Value{Reg: reg, Type: n.Target}
}
