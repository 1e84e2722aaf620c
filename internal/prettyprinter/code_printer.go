// Package prettyprinter renders expression trees back to source form,
// with the minimal parentheses the operator precedences require. Used
// by the CLI's AST dump and by solver output when echoing equations.
package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/equalang/equa/internal/ast"
)

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"+": 1,
	"-": 1,
	"*": 2,
	"/": 2,
	"^": 3,
}

// Right-associative operators
var rightAssoc = map[string]bool{
	"^": true,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 4 // atoms and function calls
}

type CodePrinter struct {
	buf bytes.Buffer
}

func New() *CodePrinter { return &CodePrinter{} }

// Print renders a single expression.
func (cp *CodePrinter) Print(expr ast.Expression) string {
	cp.buf.Reset()
	cp.printExpression(expr, 0)
	return cp.buf.String()
}

// PrintStatement renders a statement, including the assignment form.
func (cp *CodePrinter) PrintStatement(stmt ast.Statement) string {
	switch node := stmt.(type) {
	case *ast.AssignmentStatement:
		cp.buf.Reset()
		cp.buf.WriteString(node.Name.Value)
		cp.buf.WriteString(" = ")
		cp.printExpression(node.Value, 0)
		return cp.buf.String()
	case *ast.ExpressionStatement:
		return cp.Print(node.Expression)
	default:
		return ""
	}
}

func (cp *CodePrinter) printExpression(expr ast.Expression, parentPrecedence int) {
	switch node := expr.(type) {
	case *ast.NumberLiteral:
		if node.Value < 0 {
			// A negative constant inside a larger expression needs
			// parentheses to survive re-parsing.
			if parentPrecedence > 0 {
				cp.buf.WriteByte('(')
				cp.buf.WriteString(strconv.FormatFloat(node.Value, 'g', -1, 64))
				cp.buf.WriteByte(')')
				return
			}
		}
		cp.buf.WriteString(strconv.FormatFloat(node.Value, 'g', -1, 64))

	case *ast.Identifier:
		cp.buf.WriteString(node.Value)

	case *ast.PrefixExpression:
		needParens := parentPrecedence > getPrecedence("-")
		if needParens {
			cp.buf.WriteByte('(')
		}
		cp.buf.WriteString(node.Operator)
		cp.printExpression(node.Right, getPrecedence("-")+1)
		if needParens {
			cp.buf.WriteByte(')')
		}

	case *ast.InfixExpression:
		precedence := getPrecedence(node.Operator)
		needParens := precedence < parentPrecedence
		if needParens {
			cp.buf.WriteByte('(')
		}
		leftPrec, rightPrec := precedence, precedence+1
		if rightAssoc[node.Operator] {
			leftPrec, rightPrec = precedence+1, precedence
		}
		cp.printExpression(node.Left, leftPrec)
		cp.buf.WriteString(" " + node.Operator + " ")
		cp.printExpression(node.Right, rightPrec)
		if needParens {
			cp.buf.WriteByte(')')
		}

	case *ast.FunctionCall:
		cp.buf.WriteString(node.Name)
		cp.buf.WriteByte('(')
		cp.printExpression(node.Arg, 0)
		cp.buf.WriteByte(')')

	case *ast.Equation:
		cp.printExpression(node.Lhs, 0)
		cp.buf.WriteString(" = ")
		cp.printExpression(node.Rhs, 0)
	}
}
