package solver

import (
	"fmt"

	"github.com/equalang/equa/internal/ast"
	"github.com/equalang/equa/internal/evaluator"
)

// LinearForm represents an expression reduced to Σ coeff·var + Constant.
// An absent key means a coefficient of zero.
type LinearForm struct {
	Terms    map[string]float64
	Constant float64
}

func newLinearForm() LinearForm {
	return LinearForm{Terms: make(map[string]float64)}
}

func (lf LinearForm) isConstant() bool { return len(lf.Terms) == 0 }

// ExtractLinear reduces an expression tree to a LinearForm, or fails
// with ErrNonLinear when the tree contains non-linear structure:
// a product of two variable-carrying sides, a variable divisor, any
// function application, or '^'.
func ExtractLinear(expr ast.Expression) (LinearForm, error) {
	switch node := expr.(type) {
	case *ast.NumberLiteral:
		lf := newLinearForm()
		lf.Constant = node.Value
		return lf, nil

	case *ast.Identifier:
		lf := newLinearForm()
		lf.Terms[node.Value] = 1
		return lf, nil

	case *ast.PrefixExpression:
		if node.Operator != "-" {
			return LinearForm{}, fmt.Errorf("%w: operator %s", ErrNonLinear, node.Operator)
		}
		right, err := ExtractLinear(node.Right)
		if err != nil {
			return LinearForm{}, err
		}
		return right.scale(-1), nil

	case *ast.InfixExpression:
		return extractLinearInfix(node)

	case *ast.FunctionCall:
		return LinearForm{}, fmt.Errorf("%w: function %s", ErrNonLinear, node.Name)

	default:
		return LinearForm{}, fmt.Errorf("%w: unexpected node %T", ErrNonLinear, expr)
	}
}

func extractLinearInfix(node *ast.InfixExpression) (LinearForm, error) {
	left, err := ExtractLinear(node.Left)
	if err != nil {
		return LinearForm{}, err
	}
	right, err := ExtractLinear(node.Right)
	if err != nil {
		return LinearForm{}, err
	}

	switch node.Operator {
	case "+":
		return left.combine(right, 1), nil
	case "-":
		return left.combine(right, -1), nil
	case "*":
		// Legal only when at least one side is a pure constant.
		if left.isConstant() {
			return right.scale(left.Constant), nil
		}
		if right.isConstant() {
			return left.scale(right.Constant), nil
		}
		return LinearForm{}, fmt.Errorf("%w: product of two variable expressions", ErrNonLinear)
	case "/":
		if !right.isConstant() {
			return LinearForm{}, fmt.Errorf("%w: variable divisor", ErrNonLinear)
		}
		if right.Constant == 0 {
			return LinearForm{}, evaluator.ErrDivisionByZero
		}
		return left.scale(1 / right.Constant), nil
	default:
		return LinearForm{}, fmt.Errorf("%w: operator %s", ErrNonLinear, node.Operator)
	}
}

// combine adds other (multiplied by sign) into a fresh form.
func (lf LinearForm) combine(other LinearForm, sign float64) LinearForm {
	out := newLinearForm()
	for name, coeff := range lf.Terms {
		out.Terms[name] = coeff
	}
	for name, coeff := range other.Terms {
		out.Terms[name] += sign * coeff
	}
	out.Constant = lf.Constant + sign*other.Constant
	return out
}

func (lf LinearForm) scale(factor float64) LinearForm {
	out := newLinearForm()
	for name, coeff := range lf.Terms {
		out.Terms[name] = coeff * factor
	}
	out.Constant = lf.Constant * factor
	return out
}

// SolveLinear solves lhs = rhs by extracting lhs - rhs as a LinearForm.
// The form must contain exactly one variable term; a term that cancelled
// to a zero coefficient still counts as present (x - x = 5 is
// ErrZeroCoefficient, not ErrNoVariables).
func SolveLinear(eq *ast.Equation) (string, float64, error) {
	lhs, err := ExtractLinear(eq.Lhs)
	if err != nil {
		return "", 0, err
	}
	rhs, err := ExtractLinear(eq.Rhs)
	if err != nil {
		return "", 0, err
	}

	form := lhs.combine(rhs, -1)

	switch len(form.Terms) {
	case 0:
		return "", 0, ErrNoVariables
	case 1:
		for name, coeff := range form.Terms {
			if coeff == 0 {
				return "", 0, fmt.Errorf("%w: %s", ErrZeroCoefficient, name)
			}
			return name, -form.Constant / coeff, nil
		}
		panic("unreachable")
	default:
		return "", 0, fmt.Errorf("%w: %d found", ErrMultipleVariables, len(form.Terms))
	}
}
