// Package parser implements a recursive-descent parser that turns a token
// stream from internal/lexer into an internal/ast tree. Operator precedence
// (low to high) is: logical-or, logical-and, relational, additive,
// multiplicative, unary, cast, primary.
package parser

import (
	"fmt"

	"github.com/iley/llvmgen/internal/ast"
	"github.com/iley/llvmgen/internal/lexer"
	"github.com/iley/llvmgen/internal/types"
)

// Parser consumes lexemes from lex, buffering a small queue of pending
// tokens so it can peek two tokens ahead (needed to tell a cast
// "(int)expr" apart from a parenthesized grouping "(expr)"), and builds an
// ast.Program.
type Parser struct {
	lex     *lexer.Lexer
	pending []lexer.Lexeme
	current lexer.Lexeme
	nextId  int
}

// New creates a Parser reading from lex. The first lexeme is primed
// immediately so Parse can inspect p.current right away.
func New(lex *lexer.Lexer) (*Parser, error) {
	p := &Parser{lex: lex}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) readLexeme() (lexer.Lexeme, error) {
	if len(p.pending) > 0 {
		tok := p.pending[0]
		p.pending = p.pending[1:]
		return tok, nil
	}
	return p.lex.Next()
}

// peek returns the token n positions after p.current (peek(1) is the token
// immediately following p.current) without consuming it.
func (p *Parser) peek(n int) (lexer.Lexeme, error) {
	for len(p.pending) < n {
		tok, err := p.lex.Next()
		if err != nil {
			return lexer.Lexeme{}, err
		}
		p.pending = append(p.pending, tok)
	}
	return p.pending[n-1], nil
}

func (p *Parser) advance() error {
	tok, err := p.readLexeme()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *Parser) id() int {
	p.nextId++
	return p.nextId
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: %s", p.current.Loc, fmt.Sprintf(format, args...))
}

func (p *Parser) expectPunctuation(v string) (lexer.Location, error) {
	if !p.current.IsPunctuation(v) {
		return lexer.Location{}, p.errorf("expected %q, got %s", v, p.current)
	}
	loc := p.current.Loc
	return loc, p.advance()
}

func (p *Parser) expectKeyword(v string) (lexer.Location, error) {
	if !p.current.IsKeyword(v) {
		return lexer.Location{}, p.errorf("expected %q, got %s", v, p.current)
	}
	loc := p.current.Loc
	return loc, p.advance()
}

func (p *Parser) expectIdent() (string, lexer.Location, error) {
	if p.current.Type != lexer.LEX_IDENT {
		return "", lexer.Location{}, p.errorf("expected identifier, got %s", p.current)
	}
	name, loc := p.current.Str, p.current.Loc
	return name, loc, p.advance()
}

// Parse parses an entire compilation unit: a sequence of function
// declarations terminated by end of file.
func Parse(lex *lexer.Lexer) (*ast.Program, error) {
	p, err := New(lex)
	if err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	loc := p.current.Loc
	prog := &ast.Program{Loc: loc}
	for p.current.Type != lexer.LEX_EOF {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	return prog, nil
}

func (p *Parser) parseTypeName() (types.Primitive, error) {
	if p.current.Type != lexer.LEX_KEYWORD {
		return types.Primitive{}, p.errorf("expected a type, got %s", p.current)
	}
	typ, err := types.ParseTypeName(p.current.Str)
	if err != nil {
		return types.Primitive{}, p.errorf("%s", err)
	}
	return typ, p.advance()
}

// parseFunction parses "type name(params) { block }".
func (p *Parser) parseFunction() (*ast.Function, error) {
	loc := p.current.Loc
	retType, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunctuation("("); err != nil {
		return nil, err
	}
	var params []*ast.Param
	for !p.current.IsPunctuation(")") {
		if len(params) > 0 {
			if _, err := p.expectPunctuation(","); err != nil {
				return nil, err
			}
		}
		paramLoc := p.current.Loc
		paramType, err := p.parseVarType()
		if err != nil {
			return nil, err
		}
		paramName, _, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.Param{Loc: paramLoc, Name: paramName, Type: paramType})
	}
	if _, err := p.expectPunctuation(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Function{Loc: loc, Name: name, Params: params, ReturnType: retType, Body: body}, nil
}

// parseVarType parses "int", "float", "int[]" or "float[]" as used in
// parameter lists. Variable declarations carry the array size inside the
// brackets ("int[3] a;") and are parsed by parseVarDecl.
func (p *Parser) parseVarType() (types.Type, error) {
	base, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if p.current.IsPunctuation("[") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expectPunctuation("]"); err != nil {
			return nil, err
		}
		return types.NewArray(base.Kind), nil
	}
	return base, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	loc, err := p.expectPunctuation("{")
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Loc: loc}
	for !p.current.IsPunctuation("}") {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if _, err := p.expectPunctuation("}"); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.current.IsKeyword("if"):
		return p.parseIf()
	case p.current.IsKeyword("while"):
		return p.parseWhile()
	case p.current.IsKeyword("return"):
		return p.parseReturn()
	case p.current.IsKeyword("print"):
		return p.parsePrint()
	case p.current.IsKeyword("scan"):
		return p.parseScan()
	case p.current.IsKeyword("int") || p.current.IsKeyword("float"):
		return p.parseVarDecl()
	case p.current.IsPunctuation("{"):
		loc := p.current.Loc
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{Loc: loc, Block: block}, nil
	default:
		return p.parseAssignmentStatement()
	}
}

func (p *Parser) parseVarDecl() (ast.Statement, error) {
	loc := p.current.Loc
	base, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	var varType types.Type = base
	var size ast.Expression
	if p.current.IsPunctuation("[") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if size, err = p.parseExpression(); err != nil {
			return nil, err
		}
		if _, err := p.expectPunctuation("]"); err != nil {
			return nil, err
		}
		varType = types.NewArray(base.Kind)
	}
	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	decl := &ast.VarDecl{Id: p.id(), Loc: loc, Name: name, Type: varType, ArraySize: size}

	if !varType.IsArray() && p.current.IsOperator("=") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Initializer = init
	}

	if _, err := p.expectPunctuation(";"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	loc, err := p.expectKeyword("if")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunctuation("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunctuation(")"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Id: p.id(), Loc: loc, Condition: cond, Then: then}
	if p.current.IsKeyword("else") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBlock
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	loc, err := p.expectKeyword("while")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunctuation("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunctuation(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Id: p.id(), Loc: loc, Condition: cond, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	loc, err := p.expectKeyword("return")
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunctuation(";"); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Loc: loc, Value: value}, nil
}

// parsePrint parses `print("fmt", arg, arg, ...);`.
func (p *Parser) parsePrint() (ast.Statement, error) {
	loc, err := p.expectKeyword("print")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunctuation("("); err != nil {
		return nil, err
	}
	if p.current.Type != lexer.LEX_STRING {
		return nil, p.errorf("expected a format string, got %s", p.current)
	}
	format := p.current.Str
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for p.current.IsPunctuation(",") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.expectPunctuation(")"); err != nil {
		return nil, err
	}
	if _, err := p.expectPunctuation(";"); err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Id: p.id(), Loc: loc, Format: format, Args: args}, nil
}

// parseScan parses `scan("fmt", x, a[i], ...);`.
func (p *Parser) parseScan() (ast.Statement, error) {
	loc, err := p.expectKeyword("scan")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunctuation("("); err != nil {
		return nil, err
	}
	if p.current.Type != lexer.LEX_STRING {
		return nil, p.errorf("expected a format string, got %s", p.current)
	}
	format := p.current.Str
	if err := p.advance(); err != nil {
		return nil, err
	}
	var targets []ast.ScanTarget
	for p.current.IsPunctuation(",") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		target, err := p.parseScanTarget()
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	if _, err := p.expectPunctuation(")"); err != nil {
		return nil, err
	}
	if _, err := p.expectPunctuation(";"); err != nil {
		return nil, err
	}
	return &ast.ScanStatement{Id: p.id(), Loc: loc, Format: format, Targets: targets}, nil
}

// parseScanTarget parses an lvalue naming a scan target: a plain or
// indexed identifier. The core's scan evaluation resolves array-ness and
// takes the element or variable pointer directly; there is no address-of
// sigil in this language's surface syntax.
func (p *Parser) parseScanTarget() (ast.ScanTarget, error) {
	loc := p.current.Loc
	name, _, err := p.expectIdent()
	if err != nil {
		return ast.ScanTarget{}, err
	}
	target := ast.ScanTarget{Loc: loc, Name: name}
	if p.current.IsPunctuation("[") {
		if err := p.advance(); err != nil {
			return ast.ScanTarget{}, err
		}
		index, err := p.parseExpression()
		if err != nil {
			return ast.ScanTarget{}, err
		}
		if _, err := p.expectPunctuation("]"); err != nil {
			return ast.ScanTarget{}, err
		}
		target.Index = index
	}
	return target, nil
}

// parseAssignmentStatement parses "ident = expr;" or "ident[idx] = expr;".
// A bare call used for its side effects, e.g. "log(x);", is also accepted
// here and wrapped as an ExprStatement with its result discarded.
func (p *Parser) parseAssignmentStatement() (ast.Statement, error) {
	loc := p.current.Loc
	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if p.current.IsPunctuation("(") {
		call, err := p.parseCallTail(name, loc)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunctuation(";"); err != nil {
			return nil, err
		}
		return &ast.ExprStatement{Loc: loc, Expression: call}, nil
	}

	target := ast.AssignTarget{Loc: loc, Name: name}
	if p.current.IsPunctuation("[") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunctuation("]"); err != nil {
			return nil, err
		}
		target.Index = index
	}
	if p.current.Type != lexer.LEX_OPERATOR || p.current.Str != "=" {
		return nil, p.errorf("expected '=', got %s", p.current)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunctuation(";"); err != nil {
		return nil, err
	}
	return &ast.Assignment{Id: p.id(), Loc: loc, Target: target, Value: value}, nil
}

// parseCallTail parses the "(args)" tail of a call expression whose callee
// name and location have already been consumed.
func (p *Parser) parseCallTail(name string, loc lexer.Location) (ast.Expression, error) {
	if _, err := p.expectPunctuation("("); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !p.current.IsPunctuation(")") {
		if len(args) > 0 {
			if _, err := p.expectPunctuation(","); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.expectPunctuation(")"); err != nil {
		return nil, err
	}
	return &ast.CallExpr{Id: p.id(), Loc: loc, Callee: name, Args: args}, nil
}

// --- expressions, lowest to highest precedence ---

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.current.IsOperator("||") {
		loc := p.current.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Id: p.id(), Loc: loc, Operator: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.current.IsOperator("&&") {
		loc := p.current.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Id: p.id(), Loc: loc, Operator: "&&", Left: left, Right: right}
	}
	return left, nil
}

var relationalOps = map[string]bool{"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true}

func (p *Parser) parseRelational() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.current.Type == lexer.LEX_OPERATOR && relationalOps[p.current.Str] {
		op, loc := p.current.Str, p.current.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Id: p.id(), Loc: loc, Operator: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.current.IsOperator("+") || p.current.IsOperator("-") {
		op, loc := p.current.Str, p.current.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Id: p.id(), Loc: loc, Operator: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.current.IsOperator("*") || p.current.IsOperator("/") || p.current.IsOperator("%") {
		op, loc := p.current.Str, p.current.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Id: p.id(), Loc: loc, Operator: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.current.IsOperator("+") || p.current.IsOperator("-") || p.current.IsOperator("!") {
		op, loc := p.current.Str, p.current.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Id: p.id(), Loc: loc, Operator: op, Operand: operand}, nil
	}
	return p.parseCast()
}

// parseCast recognizes "(int)expr" and "(float)expr". Any other
// parenthesized construct is a grouping and falls through to parsePrimary.
func (p *Parser) parseCast() (ast.Expression, error) {
	if p.current.IsPunctuation("(") && p.lookaheadIsCastType() {
		loc := p.current.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		target, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunctuation(")"); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{Id: p.id(), Loc: loc, Target: target, Operand: operand}, nil
	}
	return p.parsePrimary()
}

// lookaheadIsCastType reports whether the parser is positioned at "(" and
// a cast-type keyword is next, followed by ")" — distinguishing a cast
// "(int)expr" from a parenthesized grouping "(expr)".
func (p *Parser) lookaheadIsCastType() bool {
	first, err := p.peek(1)
	if err != nil || first.Type != lexer.LEX_KEYWORD {
		return false
	}
	if first.Str != "int" && first.Str != "float" {
		return false
	}
	second, err := p.peek(2)
	if err != nil {
		return false
	}
	return second.IsPunctuation(")")
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch {
	case p.current.Type == lexer.LEX_INT:
		return p.parseIntLiteral()
	case p.current.Type == lexer.LEX_FLOAT:
		return p.parseFloatLiteral()
	case p.current.IsPunctuation("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunctuation(")"); err != nil {
			return nil, err
		}
		return expr, nil
	case p.current.Type == lexer.LEX_IDENT:
		return p.parseIdentifierExpr()
	default:
		return nil, p.errorf("unexpected token %s", p.current)
	}
}

func (p *Parser) parseIntLiteral() (ast.Expression, error) {
	loc := p.current.Loc
	var value int64
	if _, err := fmt.Sscanf(p.current.Str, "%d", &value); err != nil {
		return nil, p.errorf("invalid integer literal %q", p.current.Str)
	}
	return &ast.IntLiteral{Id: p.id(), Loc: loc, Value: value}, p.advance()
}

func (p *Parser) parseFloatLiteral() (ast.Expression, error) {
	loc := p.current.Loc
	var value float64
	if _, err := fmt.Sscanf(p.current.Str, "%g", &value); err != nil {
		return nil, p.errorf("invalid float literal %q", p.current.Str)
	}
	return &ast.FloatLiteral{Id: p.id(), Loc: loc, Value: value}, p.advance()
}

func (p *Parser) parseIdentifierExpr() (ast.Expression, error) {
	name, loc, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if p.current.IsPunctuation("[") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunctuation("]"); err != nil {
			return nil, err
		}
		return &ast.IndexExpr{Id: p.id(), Loc: loc, Array: name, Index: index}, nil
	}
	if p.current.IsPunctuation("(") {
		return p.parseCallTail(name, loc)
	}
	return &ast.Identifier{Id: p.id(), Loc: loc, Name: name}, nil
}
