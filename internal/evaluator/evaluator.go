// Package evaluator computes the numeric value of expression trees
// against a set of variable bindings.
package evaluator

import (
	"fmt"
	"math"

	"github.com/equalang/equa/internal/ast"
	"github.com/equalang/equa/internal/config"
)

// Eval evaluates an expression tree. Every variable it references must
// be present in bindings. '^' is real-exponent power and may produce a
// non-finite result for a negative base with a fractional exponent;
// that propagates as NaN rather than an error.
func Eval(expr ast.Expression, bindings Bindings) (float64, error) {
	switch node := expr.(type) {
	case *ast.NumberLiteral:
		return node.Value, nil

	case *ast.Identifier:
		value, ok := bindings[node.Value]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUndefinedVariable, node.Value)
		}
		return value, nil

	case *ast.PrefixExpression:
		right, err := Eval(node.Right, bindings)
		if err != nil {
			return 0, err
		}
		if node.Operator != "-" {
			return 0, fmt.Errorf("%w: %s", ErrUnknownOperator, node.Operator)
		}
		return -right, nil

	case *ast.InfixExpression:
		left, err := Eval(node.Left, bindings)
		if err != nil {
			return 0, err
		}
		right, err := Eval(node.Right, bindings)
		if err != nil {
			return 0, err
		}
		return evalInfix(node.Operator, left, right)

	case *ast.FunctionCall:
		arg, err := Eval(node.Arg, bindings)
		if err != nil {
			return 0, err
		}
		return evalFunction(node.Name, arg)

	case *ast.Equation:
		return 0, fmt.Errorf("%w: %s = %s", ErrNotAValue, node.Lhs.TokenLiteral(), node.Rhs.TokenLiteral())

	default:
		return 0, fmt.Errorf("%w: unexpected node %T", ErrUnknownOperator, expr)
	}
}

func evalInfix(operator string, left, right float64) (float64, error) {
	switch operator {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	case "^":
		return math.Pow(left, right), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownOperator, operator)
	}
}

func evalFunction(name string, arg float64) (float64, error) {
	switch name {
	case config.SinFuncName:
		return math.Sin(arg), nil
	case config.CosFuncName:
		return math.Cos(arg), nil
	case config.LogFuncName:
		if arg <= 0 {
			return 0, fmt.Errorf("%w: log of non-positive number %g", ErrDomain, arg)
		}
		return math.Log(arg), nil
	case config.SqrtFuncName:
		if arg < 0 {
			return 0, fmt.Errorf("%w: sqrt of negative number %g", ErrDomain, arg)
		}
		return math.Sqrt(arg), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
}

// Assign evaluates an assignment statement's value and writes it into
// bindings. This is the only evaluation path that mutates a context.
func Assign(stmt *ast.AssignmentStatement, bindings Bindings) (float64, error) {
	value, err := Eval(stmt.Value, bindings)
	if err != nil {
		return 0, err
	}
	bindings[stmt.Name.Value] = value
	return value, nil
}
