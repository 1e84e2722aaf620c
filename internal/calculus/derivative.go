// Package calculus implements symbolic differentiation of expression
// trees. Results are always freshly built trees; input subtrees that
// appear in a rule's output more than once are deep-cloned, so no two
// trees ever share nodes.
package calculus

import (
	"errors"
	"fmt"

	"github.com/equalang/equa/internal/ast"
	"github.com/equalang/equa/internal/config"
)

// ErrUnsupportedDerivative is returned for constructs without an
// implemented differentiation rule, notably '^' with a non-constant
// exponent.
var ErrUnsupportedDerivative = errors.New("unsupported derivative")

// Derivative returns the derivative of expr with respect to variable.
// Differentiating an equation differentiates both sides.
func Derivative(expr ast.Expression, variable string) (ast.Expression, error) {
	switch node := expr.(type) {
	case *ast.NumberLiteral:
		return number(0), nil

	case *ast.Identifier:
		if node.Value == variable {
			return number(1), nil
		}
		return number(0), nil

	case *ast.PrefixExpression:
		if node.Operator != "-" {
			return nil, fmt.Errorf("%w: operator %s", ErrUnsupportedDerivative, node.Operator)
		}
		d, err := Derivative(node.Right, variable)
		if err != nil {
			return nil, err
		}
		return neg(d), nil

	case *ast.InfixExpression:
		return derivativeInfix(node, variable)

	case *ast.FunctionCall:
		return derivativeFunction(node, variable)

	case *ast.Equation:
		dl, err := Derivative(node.Lhs, variable)
		if err != nil {
			return nil, err
		}
		dr, err := Derivative(node.Rhs, variable)
		if err != nil {
			return nil, err
		}
		return &ast.Equation{Lhs: dl, Rhs: dr}, nil

	default:
		return nil, fmt.Errorf("%w: unexpected node %T", ErrUnsupportedDerivative, expr)
	}
}

func derivativeInfix(node *ast.InfixExpression, variable string) (ast.Expression, error) {
	switch node.Operator {
	case "+", "-":
		dl, err := Derivative(node.Left, variable)
		if err != nil {
			return nil, err
		}
		dr, err := Derivative(node.Right, variable)
		if err != nil {
			return nil, err
		}
		return infix(node.Operator, dl, dr), nil

	case "*":
		// Product rule: (f*g)' = f'*g + f*g'
		dl, err := Derivative(node.Left, variable)
		if err != nil {
			return nil, err
		}
		dr, err := Derivative(node.Right, variable)
		if err != nil {
			return nil, err
		}
		return add(
			mul(dl, node.Right.Clone()),
			mul(node.Left.Clone(), dr),
		), nil

	case "/":
		// Quotient rule: (f/g)' = (f'*g - f*g') / g^2
		dl, err := Derivative(node.Left, variable)
		if err != nil {
			return nil, err
		}
		dr, err := Derivative(node.Right, variable)
		if err != nil {
			return nil, err
		}
		numerator := infix("-",
			mul(dl, node.Right.Clone()),
			mul(node.Left.Clone(), dr),
		)
		denominator := pow(node.Right.Clone(), number(2))
		return infix("/", numerator, denominator), nil

	case "^":
		// Power rule for a constant exponent: (f^n)' = n * f^(n-1) * f'
		exponent, ok := node.Right.(*ast.NumberLiteral)
		if !ok {
			return nil, fmt.Errorf("%w: '^' with non-constant exponent", ErrUnsupportedDerivative)
		}
		dbase, err := Derivative(node.Left, variable)
		if err != nil {
			return nil, err
		}
		return mul(
			mul(
				number(exponent.Value),
				pow(node.Left.Clone(), number(exponent.Value-1)),
			),
			dbase,
		), nil

	default:
		return nil, fmt.Errorf("%w: operator %s", ErrUnsupportedDerivative, node.Operator)
	}
}

func derivativeFunction(node *ast.FunctionCall, variable string) (ast.Expression, error) {
	darg, err := Derivative(node.Arg, variable)
	if err != nil {
		return nil, err
	}

	switch node.Name {
	case config.SinFuncName:
		// sin(f)' = cos(f) * f'
		return mul(call(config.CosFuncName, node.Arg.Clone()), darg), nil

	case config.CosFuncName:
		// cos(f)' = -sin(f) * f'
		return mul(neg(call(config.SinFuncName, node.Arg.Clone())), darg), nil

	case config.LogFuncName:
		// log(f)' = f' / f
		return infix("/", darg, node.Arg.Clone()), nil

	case config.SqrtFuncName:
		// sqrt(f)' = f' / (2*sqrt(f))
		return infix("/", darg, mul(number(2), call(config.SqrtFuncName, node.Arg.Clone()))), nil

	default:
		return nil, fmt.Errorf("%w: function %s", ErrUnsupportedDerivative, node.Name)
	}
}

// Node constructors for synthesized trees. Synthesized nodes carry zero
// tokens; positions only matter for parsed source.

func number(value float64) *ast.NumberLiteral {
	return &ast.NumberLiteral{Value: value}
}

func infix(operator string, left, right ast.Expression) *ast.InfixExpression {
	return &ast.InfixExpression{Operator: operator, Left: left, Right: right}
}

func add(left, right ast.Expression) *ast.InfixExpression { return infix("+", left, right) }
func mul(left, right ast.Expression) *ast.InfixExpression { return infix("*", left, right) }
func pow(left, right ast.Expression) *ast.InfixExpression { return infix("^", left, right) }

func neg(expr ast.Expression) *ast.PrefixExpression {
	return &ast.PrefixExpression{Operator: "-", Right: expr}
}

func call(name string, arg ast.Expression) *ast.FunctionCall {
	return &ast.FunctionCall{Name: name, Arg: arg}
}
