package eval

import (
	"fmt"

	"github.com/iley/llvmgen/internal/ast"
	"github.com/iley/llvmgen/internal/codegen/scope"
)

// Eval evaluates an expression node and returns its value handle. Every
// expression-producing node variant is listed here; this is the
// counterpart to EvalStmt, kept as a separate entry point per spec.md
// §9's guidance not to smuggle "no result" through the expression path.
func (e *Evaluator) Eval(expr ast.Expression, env *scope.Env) Value {
	if n, ok := expr.(*ast.IntLiteral); ok {
		return e.evalIntLiteral(n)
	} else if n, ok := expr.(*ast.FloatLiteral); ok {
		return e.evalFloatLiteral(n)
	} else if n, ok := expr.(*ast.Identifier); ok {
		return e.evalIdentifier(n, env)
	} else if n, ok := expr.(*ast.IndexExpr); ok {
		return e.evalIndexExpr(n, env)
	} else if n, ok := expr.(*ast.UnaryExpr); ok {
		return e.evalUnaryExpr(n, env)
	} else if n, ok := expr.(*ast.BinaryExpr); ok {
		return e.evalBinaryExpr(n, env)
	} else if n, ok := expr.(*ast.CastExpr); ok {
		return e.evalCastExpr(n, env)
	} else if n, ok := expr.(*ast.CallExpr); ok {
		return e.evalCallExpr(n, env)
	}
	panic(fmt.Sprintf("eval: unsupported expression type %T", expr))
}

// EvalStmt evaluates a statement node for its effect on the IR buffer and
// the current scope; it never returns a value.
func (e *Evaluator) EvalStmt(stmt ast.Statement, env *scope.Env) {
	if n, ok := stmt.(*ast.VarDecl); ok {
		e.evalVarDecl(n, env)
	} else if n, ok := stmt.(*ast.Assignment); ok {
		e.evalAssignment(n, env)
	} else if n, ok := stmt.(*ast.ExprStatement); ok {
		e.Eval(n.Expression, env)
	} else if n, ok := stmt.(*ast.BlockStatement); ok {
		e.evalBlock(n.Block, env)
	} else if n, ok := stmt.(*ast.IfStatement); ok {
		e.evalIfStatement(n, env)
	} else if n, ok := stmt.(*ast.WhileStatement); ok {
		e.evalWhileStatement(n, env)
	} else if n, ok := stmt.(*ast.ReturnStatement); ok {
		e.evalReturnStatement(n, env)
	} else if n, ok := stmt.(*ast.PrintStatement); ok {
		e.evalPrintStatement(n, env)
	} else if n, ok := stmt.(*ast.ScanStatement); ok {
		e.evalScanStatement(n, env)
	} else {
		panic(fmt.Sprintf("eval: unsupported statement type %T", stmt))
	}
}
