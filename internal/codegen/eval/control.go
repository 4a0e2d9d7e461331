package eval

import (
	"github.com/iley/llvmgen/internal/ast"
	"github.com/iley/llvmgen/internal/codegen/scope"
	"github.com/iley/llvmgen/internal/diagnostics"
	"github.com/iley/llvmgen/internal/types"
)

// evalBlock evaluates each statement in a fresh child scope, which is
// discarded on exit — names declared inside are not visible afterward.
func (e *Evaluator) evalBlock(b *ast.Block, env *scope.Env) {
	child := scope.NewChild(env)
	for _, stmt := range b.Statements {
		e.EvalStmt(stmt, child)
	}
}

func (e *Evaluator) evalIfStatement(n *ast.IfStatement, env *scope.Env) {
	cond := e.Eval(n.Condition, env)
	if !cond.Type.Equals(types.IntType) {
		fail(diagnostics.ConditionMustBeInt, n.Loc, "if condition must be int, got %s", cond.Type)
	}

	condCast := regName("conditionCast", n.Id)
	e.Ctx.Emitter.Emitf("%s = icmp ne i64 %s, 0", condCast, cond.Reg)

	thenLabel := labelName("then", n.Id)
	elseLabel := labelName("else", n.Id)
	endLabel := labelName("end", n.Id)
	e.Ctx.Emitter.Emitf("br i1 %s, label %%%s, label %%%s", condCast, thenLabel, elseLabel)

	e.Ctx.Emitter.EmitLabel(thenLabel)
	e.evalBlock(n.Then, env)
	e.Ctx.Emitter.Emitf("br label %%%s", endLabel)
	e.Ctx.Emitter.CloseLabel()

	e.Ctx.Emitter.EmitLabel(elseLabel)
	if n.Else != nil {
		e.evalBlock(n.Else, env)
	}
	e.Ctx.Emitter.Emitf("br label %%%s", endLabel)
	e.Ctx.Emitter.CloseLabel()

	e.Ctx.Emitter.Emit(endLabel + ":")
}

func (e *Evaluator) evalWhileStatement(n *ast.WhileStatement, env *scope.Env) {
	whileLabel := labelName("while", n.Id)
	blockLabel := labelName("block", n.Id)
	endLabel := labelName("end", n.Id)

	e.Ctx.Emitter.Emitf("br label %%%s", whileLabel)
	e.Ctx.Emitter.EmitLabel(whileLabel)

	cond := e.Eval(n.Condition, env)
	if !cond.Type.Equals(types.IntType) {
		fail(diagnostics.ConditionMustBeInt, n.Loc, "while condition must be int, got %s", cond.Type)
	}
	condCast := regName("conditionCast", n.Id)
	e.Ctx.Emitter.Emitf("%s = icmp ne i64 %s, 0", condCast, cond.Reg)
	e.Ctx.Emitter.Emitf("br i1 %s, label %%%s, label %%%s", condCast, blockLabel, endLabel)
	e.Ctx.Emitter.CloseLabel()

	e.Ctx.Emitter.EmitLabel(blockLabel)
	e.evalBlock(n.Body, env)
	e.Ctx.Emitter.Emitf("br label %%%s", whileLabel)
	e.Ctx.Emitter.CloseLabel()

	e.Ctx.Emitter.Emit(endLabel + ":")
}

func (e *Evaluator) evalReturnStatement(n *ast.ReturnStatement, env *scope.Env) {
	value := e.Eval(n.Value, env)
	e.Ctx.Emitter.Emitf("ret %s %s", value.Type.IrType(), value.Reg)
}
