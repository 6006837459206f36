// Package parser implements a PEG-style recursive-descent parser with a
// precedence-climbing expression parser, per spec.md §4.1. It consumes the
// token stream produced by pkg/lexer and produces the pkg/ast parse tree
// that pkg/eval walks directly — there is no separate AST-lowering pass.
package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/kristofer/quest/pkg/ast"
	"github.com/kristofer/quest/pkg/lexer"
	"github.com/kristofer/quest/pkg/token"
)

// ParseError carries the source position of a syntax error for
// human-readable diagnostics.
type ParseError struct {
	Pos token.Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

// Parser turns a token stream into an *ast.Program.
type Parser struct {
	toks []token.Token
	pos  int
	errs []error
}

// New creates a Parser over the full token stream of src.
func New(src string) *Parser {
	l := lexer.New(src)
	return &Parser{toks: l.Tokenize()}
}

func (p *Parser) cur() token.Token { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}
func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}
func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) expect(k token.Kind) token.Token {
	if !p.at(k) {
		p.errorf("unexpected token %q", p.cur().Literal)
		return p.cur()
	}
	return p.advance()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, &ParseError{Pos: p.cur().Pos, Msg: fmt.Sprintf(format, args...)})
}

// Errors returns every syntax error accumulated while parsing.
func (p *Parser) Errors() []error { return p.errs }

// ParseProgram parses the whole token stream into a Program node.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	if len(p.errs) > 0 {
		return prog, p.errs[0]
	}
	return prog, nil
}

// --------------------------------------------------------------- Statements

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Kind {
	case token.LET, token.CONST:
		return p.parseLetStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.BREAK:
		pos := p.advance().Pos
		return ast.NewBreakStmt(pos)
	case token.CONTINUE:
		pos := p.advance().Pos
		return ast.NewContinueStmt(pos)
	case token.RETURN:
		return p.parseReturnStmt()
	case token.RAISE:
		return p.parseRaiseStmt()
	case token.TRY:
		return p.parseTryStmt()
	case token.WITH:
		return p.parseWithStmt()
	case token.USE:
		return p.parseUseStmt()
	case token.TYPE:
		return p.parseTypeDecl()
	case token.TRAIT:
		return p.parseTraitDecl()
	case token.FUN:
		return p.parseFunDecl(false)
	case token.PUB:
		p.advance()
		if p.at(token.FUN) {
			return p.parseFunDecl(true)
		}
		p.errorf("expected 'fun' after 'pub'")
		return nil
	case token.DEL:
		return p.parseDelStmt()
	case token.MATCH:
		return p.parseMatchStmt()
	default:
		return p.parseExpressionStmt()
	}
}

// parseBlockUntil parses statements until one of the given terminator
// keywords is the current token (without consuming it).
func (p *Parser) parseBlockUntil(terms ...token.Kind) *ast.BlockStmt {
	pos := p.cur().Pos
	var stmts []ast.Statement
	for !p.at(token.EOF) {
		done := false
		for _, t := range terms {
			if p.at(t) {
				done = true
				break
			}
		}
		if done {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return ast.NewBlockStmt(pos, stmts)
}

func (p *Parser) parseLetStmt() ast.Statement {
	pos := p.cur().Pos
	isConst := p.at(token.CONST)
	p.advance()

	var names []string
	var typeAnn []string
	for {
		name := p.expect(token.IDENT).Literal
		names = append(names, name)
		ty := ""
		if p.at(token.COLON) {
			p.advance()
			ty = p.expect(token.IDENT).Literal
		}
		typeAnn = append(typeAnn, ty)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.ASSIGN)
	var values []ast.Expression
	for {
		values = append(values, p.parseExpression())
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return ast.NewLetStmt(pos, names, values, isConst, typeAnn)
}

func (p *Parser) parseIfStmt() ast.Statement {
	pos := p.advance().Pos // 'if'
	cond := p.parseExpression()
	then := p.parseBlockUntil(token.ELIF, token.ELSE, token.END)
	var elifs []ast.ElifClause
	for p.at(token.ELIF) {
		p.advance()
		c := p.parseExpression()
		body := p.parseBlockUntil(token.ELIF, token.ELSE, token.END)
		elifs = append(elifs, ast.ElifClause{Cond: c, Body: body})
	}
	var elseBlk *ast.BlockStmt
	if p.at(token.ELSE) {
		p.advance()
		elseBlk = p.parseBlockUntil(token.END)
	}
	p.expect(token.END)
	return ast.NewIfStmt(pos, cond, then, elifs, elseBlk)
}

func (p *Parser) parseWhileStmt() ast.Statement {
	pos := p.advance().Pos
	cond := p.parseExpression()
	body := p.parseBlockUntil(token.END)
	p.expect(token.END)
	return ast.NewWhileStmt(pos, cond, body)
}

func (p *Parser) parseForStmt() ast.Statement {
	pos := p.advance().Pos // 'for'
	first := p.expect(token.IDENT).Literal
	second := ""
	if p.at(token.COMMA) {
		p.advance()
		second = p.expect(token.IDENT).Literal
	}
	p.expect(token.IN)
	start := p.parseExpression()

	if p.at(token.TO) || p.at(token.UNTIL) {
		inclusive := p.at(token.TO)
		p.advance()
		end := p.parseExpression()
		var step ast.Expression
		if p.at(token.STEP) {
			p.advance()
			step = p.parseExpression()
		}
		body := p.parseBlockUntil(token.END)
		p.expect(token.END)
		return ast.NewForRangeStmt(pos, first, start, end, step, inclusive, body)
	}

	body := p.parseBlockUntil(token.END)
	p.expect(token.END)
	return ast.NewForInStmt(pos, first, second, start, body)
}

func (p *Parser) parseReturnStmt() ast.Statement {
	pos := p.advance().Pos
	if p.atStmtEnd() {
		return ast.NewReturnStmt(pos, nil)
	}
	return ast.NewReturnStmt(pos, p.parseExpression())
}

// atStmtEnd reports whether the current token cannot begin an expression,
// i.e. a bare `return`/`break` terminates here.
func (p *Parser) atStmtEnd() bool {
	switch p.cur().Kind {
	case token.END, token.ELIF, token.ELSE, token.CATCH, token.ENSURE, token.EOF, token.IN:
		return true
	}
	return false
}

func (p *Parser) parseRaiseStmt() ast.Statement {
	pos := p.advance().Pos
	val := p.parseExpression()
	var cause ast.Expression
	if p.at(token.AS) {
		p.advance()
		cause = p.parseExpression()
	}
	return ast.NewRaiseStmt(pos, val, cause)
}

func (p *Parser) parseTryStmt() ast.Statement {
	pos := p.advance().Pos
	body := p.parseBlockUntil(token.CATCH, token.ENSURE, token.END)
	var catches []ast.CatchClause
	for p.at(token.CATCH) {
		p.advance()
		clause := ast.CatchClause{}
		if p.at(token.IDENT) {
			clause.Name = p.advance().Literal
			if p.at(token.COLON) {
				p.advance()
				clause.Type = p.expect(token.IDENT).Literal
			}
		}
		clause.Body = p.parseBlockUntil(token.CATCH, token.ENSURE, token.END)
		catches = append(catches, clause)
	}
	var ensure *ast.BlockStmt
	if p.at(token.ENSURE) {
		p.advance()
		ensure = p.parseBlockUntil(token.END)
	}
	p.expect(token.END)
	return ast.NewTryStmt(pos, body, catches, ensure)
}

func (p *Parser) parseWithStmt() ast.Statement {
	pos := p.advance().Pos
	var items []ast.WithItem
	for {
		item := ast.WithItem{Expr: p.parseExpression()}
		if p.at(token.AS) {
			p.advance()
			item.As = p.expect(token.IDENT).Literal
		}
		items = append(items, item)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	body := p.parseBlockUntil(token.END)
	p.expect(token.END)
	return ast.NewWithStmt(pos, items, body)
}

func (p *Parser) parseUseStmt() ast.Statement {
	pos := p.advance().Pos
	pathTok := p.expect(token.STRING)
	as := ""
	var members []string
	if p.at(token.AS) {
		p.advance()
		as = p.expect(token.IDENT).Literal
	} else if p.at(token.LBRACE) {
		p.advance()
		for !p.at(token.RBRACE) && !p.at(token.EOF) {
			members = append(members, p.expect(token.IDENT).Literal)
			if p.at(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RBRACE)
	}
	return ast.NewUseStmt(pos, pathTok.Literal, as, members)
}

func (p *Parser) parseDelStmt() ast.Statement {
	pos := p.advance().Pos
	name := p.expect(token.IDENT).Literal
	return ast.NewDelStmt(pos, name)
}

func (p *Parser) parseMatchStmt() ast.Statement {
	pos := p.advance().Pos
	subject := p.parseExpression()
	var arms []ast.MatchArm
	for p.at(token.IN) {
		p.advance()
		arm := ast.MatchArm{}
		first := p.parseExpression()
		if p.at(token.TO) || p.at(token.UNTIL) {
			inclusive := p.at(token.TO)
			p.advance()
			end := p.parseExpression()
			var step ast.Expression
			if p.at(token.STEP) {
				p.advance()
				step = p.parseExpression()
			}
			arm.Range = ast.NewRangeExpr(first.Span(), first, end, step, inclusive)
		} else {
			arm.Values = append(arm.Values, first)
			for p.at(token.COMMA) {
				p.advance()
				arm.Values = append(arm.Values, p.parseExpression())
			}
		}
		p.expect(token.ARROW)
		arm.Body = p.parseSingleOrBlockArm()
		arms = append(arms, arm)
	}
	if p.at(token.ELSE) {
		p.advance()
		p.expect(token.ARROW)
		arms = append(arms, ast.MatchArm{IsElse: true, Body: p.parseSingleOrBlockArm()})
	}
	p.expect(token.END)
	return ast.NewMatchStmt(pos, subject, arms)
}

// parseSingleOrBlockArm parses a match-arm body; stops at the next `in`,
// `else`, or `end`.
func (p *Parser) parseSingleOrBlockArm() *ast.BlockStmt {
	pos := p.cur().Pos
	var stmts []ast.Statement
	for !p.at(token.IN) && !p.at(token.ELSE) && !p.at(token.END) && !p.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return ast.NewBlockStmt(pos, stmts)
}

func (p *Parser) parseExpressionStmt() ast.Statement {
	pos := p.cur().Pos
	expr := p.parseExpression()
	return ast.NewExpressionStmt(pos, expr)
}

// ------------------------------------------------------------- Type/Trait

func (p *Parser) parseTypeDecl() ast.Statement {
	pos := p.advance().Pos
	name := p.expect(token.IDENT).Literal
	var fields []ast.FieldDecl
	var methods []ast.MethodDecl
	var traits []string
	for !p.at(token.END) && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.FUN:
			methods = append(methods, p.parseMethodDecl())
		case token.IMPL:
			p.advance()
			traits = append(traits, p.expect(token.IDENT).Literal)
			for !p.at(token.END) && !p.at(token.EOF) && p.at(token.FUN) {
				methods = append(methods, p.parseMethodDecl())
			}
		case token.PUB:
			p.advance()
			fields = append(fields, p.parseFieldDecl(true))
		case token.IDENT:
			fields = append(fields, p.parseFieldDecl(false))
		default:
			p.errorf("unexpected token in type body: %q", p.cur().Literal)
			p.advance()
		}
	}
	p.expect(token.END)
	return ast.NewTypeDecl(pos, name, fields, methods, traits)
}

func (p *Parser) parseFieldDecl(pub bool) ast.FieldDecl {
	name := p.expect(token.IDENT).Literal
	f := ast.FieldDecl{Name: name, Pub: pub}
	if p.at(token.COLON) {
		p.advance()
		f.TypeName = p.expect(token.IDENT).Literal
	}
	if p.at(token.ASSIGN) {
		p.advance()
		f.Default = p.parseExpression()
	}
	return f
}

func (p *Parser) parseMethodDecl() ast.MethodDecl {
	fn, isStatic := p.parseFunctionLiteralHeader()
	return ast.MethodDecl{Fn: fn, IsStatic: isStatic}
}

func (p *Parser) parseTraitDecl() ast.Statement {
	pos := p.advance().Pos
	name := p.expect(token.IDENT).Literal
	var required []string
	for !p.at(token.END) && !p.at(token.EOF) {
		p.expect(token.FUN)
		mname := p.expect(token.IDENT).Literal
		p.expect(token.LPAREN)
		for !p.at(token.RPAREN) && !p.at(token.EOF) {
			p.advance()
		}
		p.expect(token.RPAREN)
		required = append(required, mname)
	}
	p.expect(token.END)
	return ast.NewTraitDecl(pos, name, required)
}

func (p *Parser) parseFunDecl(pub bool) ast.Statement {
	pos := p.cur().Pos
	fn, _ := p.parseFunctionLiteralHeader()
	return ast.NewFunDecl(pos, fn, pub)
}

// parseFunctionLiteralHeader parses `fun [self.]name(params) body end`
// and reports whether it was declared as a class method (`fun self.m`).
func (p *Parser) parseFunctionLiteralHeader() (*ast.FunctionLiteral, bool) {
	pos := p.advance().Pos // 'fun'
	isStatic := false
	name := ""
	if p.at(token.IDENT) || p.at(token.SELF) {
		name = p.advance().Literal
	}
	if p.at(token.DOT) {
		if name == "self" {
			isStatic = true
		}
		p.advance()
		name = p.expect(token.IDENT).Literal
	}
	params := p.parseParamList()
	body := p.parseBlockUntil(token.END)
	p.expect(token.END)
	return ast.NewFunctionLiteral(pos, name, params, body), isStatic
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		param := ast.Param{}
		if p.at(token.STAR) {
			p.advance()
			if p.at(token.STAR) {
				p.advance()
				param.Kwargs = true
			} else {
				param.Variadic = true
			}
			param.Name = p.expect(token.IDENT).Literal
		} else if p.at(token.SELF) {
			param.Name = p.advance().Literal
		} else {
			param.Name = p.expect(token.IDENT).Literal
		}
		if p.at(token.COLON) {
			p.advance()
			param.TypeName = p.expect(token.IDENT).Literal
		}
		if p.at(token.ASSIGN) {
			p.advance()
			param.Default = p.parseExpression()
		}
		params = append(params, param)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return params
}

// -------------------------------------------------------------- Expressions

func (p *Parser) parseExpression() ast.Expression {
	return p.parseLambda()
}

func (p *Parser) parseLambda() ast.Expression {
	if p.at(token.FUN) {
		fn, _ := p.parseFunctionLiteralHeader()
		return fn
	}
	return p.parseAssignOrElvis()
}

// parseAssignOrElvis parses a full elvis-precedence expression, then checks
// for a trailing assignment operator — assignment binds loosest of all,
// matching spec.md's treatment of it as a statement-shaped construct built
// from ordinary expression targets.
func (p *Parser) parseAssignOrElvis() ast.Expression {
	left := p.parseElvis()
	switch p.cur().Kind {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN, token.PERCENT_ASSIGN:
		op := p.advance().Literal
		value := p.parseExpression()
		return ast.NewAssignExpr(left.Span(), left, op, value)
	}
	return left
}

func (p *Parser) parseElvis() ast.Expression {
	left := p.parseTernary()
	for p.at(token.ELVIS) {
		p.advance()
		right := p.parseTernary()
		left = ast.NewElvisExpr(left.Span(), left, right)
	}
	return left
}

func (p *Parser) parseTernary() ast.Expression {
	cond := p.parseLogicalOr()
	if p.at(token.QUESTION) {
		p.advance()
		then := p.parseExpression()
		p.expect(token.COLON)
		els := p.parseTernary()
		return ast.NewTernaryExpr(cond.Span(), cond, then, els)
	}
	return cond
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for p.at(token.OR) {
		p.advance()
		right := p.parseLogicalAnd()
		left = ast.NewLogicalExpr(left.Span(), "or", left, right)
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseLogicalNot()
	for p.at(token.AND) {
		p.advance()
		right := p.parseLogicalNot()
		left = ast.NewLogicalExpr(left.Span(), "and", left, right)
	}
	return left
}

func (p *Parser) parseLogicalNot() ast.Expression {
	if p.at(token.NOT) {
		pos := p.advance().Pos
		operand := p.parseLogicalNot()
		return ast.NewUnaryExpr(pos, "not", operand)
	}
	return p.parseBitwiseOr()
}

func (p *Parser) parseBitwiseOr() ast.Expression {
	left := p.parseBitwiseXor()
	for p.at(token.BITOR) {
		p.advance()
		right := p.parseBitwiseXor()
		left = ast.NewBinaryExpr(left.Span(), "|", left, right)
	}
	return left
}

func (p *Parser) parseBitwiseXor() ast.Expression {
	left := p.parseBitwiseAnd()
	for p.at(token.BITXOR) {
		p.advance()
		right := p.parseBitwiseAnd()
		left = ast.NewBinaryExpr(left.Span(), "^", left, right)
	}
	return left
}

func (p *Parser) parseBitwiseAnd() ast.Expression {
	left := p.parseShift()
	for p.at(token.BITAND) {
		p.advance()
		right := p.parseShift()
		left = ast.NewBinaryExpr(left.Span(), "&", left, right)
	}
	return left
}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseComparison()
	for p.at(token.SHL) || p.at(token.SHR) {
		op := p.advance().Literal
		right := p.parseComparison()
		left = ast.NewBinaryExpr(left.Span(), op, left, right)
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseConcat()
	for {
		switch p.cur().Kind {
		case token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE, token.IN:
			// An `in` that begins a new line opens a match arm rather than
			// testing membership.
			if p.at(token.IN) && p.cur().Pos.Line > p.toks[p.pos-1].Pos.Line {
				return left
			}
			op := p.advance().Literal
			right := p.parseConcat()
			left = ast.NewBinaryExpr(left.Span(), op, left, right)
			continue
		}
		return left
	}
}

func (p *Parser) parseConcat() ast.Expression {
	left := p.parseAddition()
	for p.at(token.CONCAT) {
		p.advance()
		right := p.parseAddition()
		left = ast.NewBinaryExpr(left.Span(), "..", left, right)
	}
	return left
}

func (p *Parser) parseAddition() ast.Expression {
	left := p.parseMultiplication()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.advance().Literal
		right := p.parseMultiplication()
		left = ast.NewBinaryExpr(left.Span(), op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplication() ast.Expression {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		op := p.advance().Literal
		right := p.parseUnary()
		left = ast.NewBinaryExpr(left.Span(), op, left, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.at(token.MINUS) || p.at(token.BITNOT) {
		pos := p.cur().Pos
		op := p.advance().Literal
		operand := p.parseUnary()
		return ast.NewUnaryExpr(pos, op, operand)
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.LPAREN:
			expr = p.parseCall(expr)
		case token.LBRACKET:
			pos := p.advance().Pos
			idx := p.parseExpression()
			p.expect(token.RBRACKET)
			expr = ast.NewIndexExpr(pos, expr, idx)
		case token.DOT:
			pos := p.advance().Pos
			name := p.expect(token.IDENT).Literal
			expr = ast.NewMemberExpr(pos, expr, name)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	pos := p.advance().Pos // '('
	var args []ast.Arg
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		arg := ast.Arg{}
		if p.at(token.STAR) {
			p.advance()
			if p.at(token.STAR) {
				p.advance()
				arg.SplatDict = true
			} else {
				arg.SplatArray = true
			}
			arg.Value = p.parseExpression()
		} else if p.at(token.IDENT) && p.peek().Kind == token.COLON {
			arg.Name = p.advance().Literal
			p.advance() // ':'
			arg.Value = p.parseExpression()
		} else {
			arg.Value = p.parseExpression()
		}
		args = append(args, arg)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return ast.NewCallExpr(pos, callee, args)
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Kind {
	case token.INT:
		p.advance()
		v, _ := strconv.ParseInt(tok.Literal, 0, 64)
		return ast.NewIntLiteral(tok.Pos, v)
	case token.BIGINT:
		p.advance()
		n := new(big.Int)
		n.SetString(tok.Literal, 0)
		return ast.NewBigIntLiteral(tok.Pos, n.String())
	case token.FLOAT:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Literal, 64)
		return ast.NewFloatLiteral(tok.Pos, v)
	case token.FSTRING:
		p.advance()
		return p.parseInterpolated(tok)
	case token.STRING:
		p.advance()
		return ast.NewStringLiteral(tok.Pos, tok.Literal, false)
	case token.TRUE:
		p.advance()
		return ast.NewBoolLiteral(tok.Pos, true)
	case token.FALSE:
		p.advance()
		return ast.NewBoolLiteral(tok.Pos, false)
	case token.NIL:
		p.advance()
		return ast.NewNilLiteral(tok.Pos)
	case token.SELF:
		p.advance()
		return ast.NewSelfExpr(tok.Pos)
	case token.IDENT:
		p.advance()
		return ast.NewIdentifier(tok.Pos, tok.Literal)
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseDictOrSetLiteral()
	default:
		p.errorf("unexpected token %q", tok.Literal)
		p.advance()
		return ast.NewNilLiteral(tok.Pos)
	}
}

// parseInterpolated splits an f"...{{expr}}..." literal's raw text into
// alternating Parts/Exprs, re-lexing each {{...}} span with a nested
// Parser instance.
func (p *Parser) parseInterpolated(tok token.Token) ast.Expression {
	var parts []string
	var exprs []ast.Expression
	text := tok.Literal
	for {
		idx := strings.Index(text, "{{")
		if idx < 0 {
			parts = append(parts, text)
			break
		}
		parts = append(parts, text[:idx])
		rest := text[idx+2:]
		end := strings.Index(rest, "}}")
		if end < 0 {
			parts = append(parts, "")
			break
		}
		exprSrc := rest[:end]
		sub := New(exprSrc)
		exprs = append(exprs, sub.parseExpression())
		text = rest[end+2:]
	}
	return ast.NewInterpolatedString(tok.Pos, parts, exprs)
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	pos := p.advance().Pos // '['
	var elems []ast.Expression
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpression())
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACKET)
	return ast.NewArrayLiteral(pos, elems)
}

// parseDictOrSetLiteral disambiguates `{}`/`{1, 2}` (Set) from
// `{k: v}` (Dict) by looking ahead for a colon after the first element.
func (p *Parser) parseDictOrSetLiteral() ast.Expression {
	pos := p.advance().Pos // '{'
	if p.at(token.RBRACE) {
		p.advance()
		return ast.NewDictLiteral(pos, nil)
	}
	first := p.parseExpression()
	if p.at(token.COLON) {
		p.advance()
		val := p.parseExpression()
		entries := []ast.DictEntry{{Key: first, Value: val}}
		for p.at(token.COMMA) {
			p.advance()
			if p.at(token.RBRACE) {
				break
			}
			k := p.parseExpression()
			p.expect(token.COLON)
			v := p.parseExpression()
			entries = append(entries, ast.DictEntry{Key: k, Value: v})
		}
		p.expect(token.RBRACE)
		return ast.NewDictLiteral(pos, entries)
	}
	elems := []ast.Expression{first}
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.RBRACE) {
			break
		}
		elems = append(elems, p.parseExpression())
	}
	p.expect(token.RBRACE)
	return ast.NewSetLiteral(pos, elems)
}
