package parser

import (
	"strconv"

	"github.com/equalang/equa/internal/ast"
	"github.com/equalang/equa/internal/diagnostics"
	"github.com/equalang/equa/internal/pipeline"
	"github.com/equalang/equa/internal/token"
)

// Operator precedence levels (higher binds tighter).
const (
	LOWEST = iota
	SUM     // + -
	PRODUCT // * /
	PREFIX  // -x
	POWER   // ^ (right-assoc)
)

var precedences = map[token.TokenType]int{
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.CARET:    POWER,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	stream []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	ctx *pipeline.PipelineContext

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(stream []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{stream: stream, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.NUMBER: p.parseNumberLiteral,
		token.IDENT:  p.parseIdentifierOrCall,
		token.MINUS:  p.parsePrefixExpression,
		token.LPAREN: p.parseGroupedExpression,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.CARET:    p.parseInfixExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.stream) {
		p.peekToken = p.stream[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	err := diagnostics.NewError(code, tok, format, args...)
	err.File = p.ctx.FilePath
	p.ctx.Errors = append(p.ctx.Errors, err)
}

// ParseProgram parses the token stream into a Program. Statements are
// separated by semicolons or newlines.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{File: p.ctx.FilePath}

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.skipToStatementBoundary()
		}
		p.nextToken()
	}

	return program
}

// parseStatement handles the three statement forms:
//
//	IDENT = expr        assignment
//	expr = expr         equation
//	expr                bare expression
//
// A bare identifier directly followed by '=' always parses as an
// assignment; every other left-hand shape makes the '=' an equation.
func (p *Parser) parseStatement() ast.Statement {
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) && !p.isFunctionName(p.curToken.Literal) {
		name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
		p.nextToken() // onto '='
		eqToken := p.curToken
		p.nextToken() // onto the value expression
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.addError(diagnostics.ErrP005, p.peekToken, "chained '=' is not allowed")
			return nil
		}
		return &ast.AssignmentStatement{Token: eqToken, Name: name, Value: value}
	}

	firstToken := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken() // onto '='
		eqToken := p.curToken
		p.nextToken() // onto the right-hand side
		rhs := p.parseExpression(LOWEST)
		if rhs == nil {
			return nil
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.addError(diagnostics.ErrP005, p.peekToken, "chained '=' is not allowed")
			return nil
		}
		return &ast.ExpressionStatement{
			Token:      firstToken,
			Expression: &ast.Equation{Token: eqToken, Lhs: expr, Rhs: rhs},
		}
	}

	return &ast.ExpressionStatement{Token: firstToken, Expression: expr}
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(diagnostics.ErrP002, p.curToken, "unexpected token %q", p.curToken.Lexeme)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(diagnostics.ErrP001, p.curToken, "could not parse %q as a number", p.curToken.Lexeme)
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: value}
}

// isFunctionName reports whether name is one of the built-in math
// functions. Those parse as calls, never as assignment targets.
func (p *Parser) isFunctionName(name string) bool {
	switch name {
	case "sin", "cos", "log", "sqrt":
		return true
	}
	return false
}

func (p *Parser) parseIdentifierOrCall() ast.Expression {
	nameToken := p.curToken

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken() // onto '('
		p.nextToken() // onto the argument expression
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		if !p.peekTokenIs(token.RPAREN) {
			p.addError(diagnostics.ErrP004, p.peekToken, "expected ')' after argument of %s", nameToken.Literal)
			return nil
		}
		p.nextToken() // onto ')'
		return &ast.FunctionCall{Token: nameToken, Name: nameToken.Literal, Arg: arg}
	}

	return &ast.Identifier{Token: nameToken, Value: nameToken.Literal}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}
	precedence := precedences[p.curToken.Type]
	if p.curTokenIs(token.CARET) {
		// '^' is right-associative: a^b^c parses as a^(b^c).
		precedence--
	}
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	lparen := p.curToken
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.peekTokenIs(token.RPAREN) {
		p.addError(diagnostics.ErrP003, lparen, "unterminated '('")
		return nil
	}
	p.nextToken()
	return exp
}

// skipToStatementBoundary consumes tokens up to the next statement
// separator to avoid a cascade of errors after a parse failure.
func (p *Parser) skipToStatementBoundary() {
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}
