package ast

import (
	"github.com/equalang/equa/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression. Expressions are
// immutable once built; Clone returns a deep structural copy so that a
// subtree can appear in several derivative-rule outputs without sharing.
type Expression interface {
	Node
	expressionNode()
	Clone() Expression
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// NumberLiteral represents a numeric constant, e.g. 3.14
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()        {}
func (nl *NumberLiteral) TokenLiteral() string   { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token  { return nl.Token }
func (nl *NumberLiteral) Clone() Expression      { c := *nl; return &c }

// Identifier represents a variable reference, e.g. x
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }
func (i *Identifier) Clone() Expression     { c := *i; return &c }

// PrefixExpression represents a unary operator, e.g. -x
type PrefixExpression struct {
	Token    token.Token // The operator token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }
func (pe *PrefixExpression) Clone() Expression {
	return &PrefixExpression{Token: pe.Token, Operator: pe.Operator, Right: pe.Right.Clone()}
}

// InfixExpression represents a binary operator, e.g. a + b
type InfixExpression struct {
	Token    token.Token // The operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }
func (ie *InfixExpression) Clone() Expression {
	return &InfixExpression{
		Token:    ie.Token,
		Operator: ie.Operator,
		Left:     ie.Left.Clone(),
		Right:    ie.Right.Clone(),
	}
}

// FunctionCall represents a unary math function application, e.g. sin(x).
// The recognized names are sin, cos, log and sqrt; anything else is a
// construction-time contract violation surfaced at evaluation.
type FunctionCall struct {
	Token token.Token // The function name token
	Name  string
	Arg   Expression
}

func (fc *FunctionCall) expressionNode()       {}
func (fc *FunctionCall) TokenLiteral() string  { return fc.Token.Lexeme }
func (fc *FunctionCall) GetToken() token.Token { return fc.Token }
func (fc *FunctionCall) Clone() Expression {
	return &FunctionCall{Token: fc.Token, Name: fc.Name, Arg: fc.Arg.Clone()}
}

// Equation represents lhs = rhs, the input to the solver.
type Equation struct {
	Token token.Token // The '=' token
	Lhs   Expression
	Rhs   Expression
}

func (eq *Equation) expressionNode()       {}
func (eq *Equation) TokenLiteral() string  { return eq.Token.Lexeme }
func (eq *Equation) GetToken() token.Token { return eq.Token }
func (eq *Equation) Clone() Expression {
	return &Equation{Token: eq.Token, Lhs: eq.Lhs.Clone(), Rhs: eq.Rhs.Clone()}
}

// AssignmentStatement binds the value of an expression to a name, e.g.
// a = 3. Only a bare identifier on the left of '=' parses as an
// assignment; any other shape is an Equation.
type AssignmentStatement struct {
	Token token.Token // The '=' token
	Name  *Identifier
	Value Expression
}

func (as *AssignmentStatement) statementNode()        {}
func (as *AssignmentStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AssignmentStatement) GetToken() token.Token { return as.Token }

// ExpressionStatement is a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }
