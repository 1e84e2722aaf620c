// Package solver turns an equation tree into numeric solutions. The
// dispatcher tries a fixed sequence of strategies (power-equation
// shortcut, linear extraction, Newton-Raphson over seeds, bisection
// scan) and keeps the first one that yields roots; a strategy's internal
// failure is never surfaced while a later strategy can still succeed.
package solver

import (
	"fmt"
	"math"

	"github.com/equalang/equa/internal/ast"
	"github.com/equalang/equa/internal/calculus"
	"github.com/equalang/equa/internal/config"
	"github.com/equalang/equa/internal/evaluator"
)

// Solution is one named root. The name is the solved variable for the
// first root, "<var>_neg" for the mirrored root of an even power
// equation, and "<var>_<n>" (n from 1) for additional numeric roots in
// discovery order.
type Solution struct {
	Name  string
	Value float64
}

type Solver struct {
	cfg config.SolverConfig
}

func New(cfg config.SolverConfig) *Solver {
	return &Solver{cfg: cfg}
}

// Solve solves an equation for its single variable. The bindings supply
// values for any other names referenced by the tree and are never
// mutated. The equation's variable set is consulted per strategy; only
// exhaustion of every strategy is an error.
func (s *Solver) Solve(expr ast.Expression, bindings evaluator.Bindings) ([]Solution, error) {
	eq, ok := expr.(*ast.Equation)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotAnEquation, expr)
	}

	if solutions, ok := s.solvePower(eq, bindings); ok {
		return solutions, nil
	}

	if name, root, err := SolveLinear(eq); err == nil {
		return []Solution{{Name: name, Value: root}}, nil
	}

	variables := freeVariables(eq, bindings)
	if len(variables) == 0 {
		// Every name is bound. A session may still solve for a name it
		// assigned earlier; the residual shadows the binding with trial
		// values in a private copy.
		variables = ast.Variables(eq)
	}
	if len(variables) != 1 {
		return nil, fmt.Errorf("%w: %d present", ErrUnsupportedArity, len(variables))
	}
	variable := variables[0]

	f := s.residual(eq, variable, bindings)

	if roots := s.solveNewtonSeeds(eq, variable, f, bindings); len(roots) > 0 {
		return nameRoots(variable, roots), nil
	}

	roots, err := ScanRoots(f, s.cfg.ScanStart, s.cfg.ScanEnd, s.cfg.ScanStep, s.cfg.Tolerance)
	if err != nil {
		// The last strategy could not even sample the function (for
		// example a divisor that is identically zero). That evaluation
		// error is the honest verdict, not "no roots".
		return nil, err
	}
	if len(roots) == 0 {
		return nil, ErrNoRootsFound
	}
	return nameRoots(variable, roots), nil
}

// residual builds f(x) = lhs(x) - rhs(x). Trial values go into a
// private copy of the bindings, so the caller's context stays intact.
func (s *Solver) residual(eq *ast.Equation, variable string, bindings evaluator.Bindings) Func {
	local := bindings.Clone()
	return func(x float64) (float64, error) {
		local[variable] = x
		lhs, err := evaluator.Eval(eq.Lhs, local)
		if err != nil {
			return 0, err
		}
		rhs, err := evaluator.Eval(eq.Rhs, local)
		if err != nil {
			return 0, err
		}
		return lhs - rhs, nil
	}
}

// solveNewtonSeeds runs Newton-Raphson from every fixed seed. A failed
// seed (flat derivative, no convergence, evaluation error) is skipped.
// Returns the deduplicated roots in discovery order, or nil when the
// symbolic derivative itself is unavailable.
func (s *Solver) solveNewtonSeeds(eq *ast.Equation, variable string, f Func, bindings evaluator.Bindings) []float64 {
	diff := &ast.InfixExpression{Operator: "-", Left: eq.Lhs.Clone(), Right: eq.Rhs.Clone()}
	derivative, err := calculus.Derivative(diff, variable)
	if err != nil {
		return nil
	}

	local := bindings.Clone()
	df := func(x float64) (float64, error) {
		local[variable] = x
		return evaluator.Eval(derivative, local)
	}

	var roots []float64
	for _, seed := range config.NewtonSeeds {
		root, err := NewtonRaphson(f, df, seed, s.cfg.Tolerance, s.cfg.MaxIterations)
		if err != nil || !isFinite(root) {
			continue
		}
		// Seeds stop as soon as the residual drops under the tolerance,
		// so two seeds chasing the same root can land up to tolerance
		// apart. Deduplicate at that radius, not at Epsilon.
		roots = appendRoot(roots, root, s.cfg.Tolerance)
	}
	return roots
}

// solvePower recognizes "variable ^ constant = constant" (in either
// orientation) and solves it directly: root = c^(1/n). An even integer
// exponent contributes the mirrored negative root as well.
func (s *Solver) solvePower(eq *ast.Equation, bindings evaluator.Bindings) ([]Solution, bool) {
	variable, exponent, other, ok := matchPowerShape(eq)
	if !ok {
		return nil, false
	}
	// The other side may reference bound names, but not the unknown.
	if len(freeVariables(other, bindings)) != 0 {
		return nil, false
	}

	c, err := evaluator.Eval(other, bindings.Clone())
	if err != nil || exponent == 0 {
		return nil, false
	}

	root := math.Pow(c, 1/exponent)
	if c < 0 && isOddInteger(exponent) {
		// math.Pow yields NaN for a negative base with a fractional
		// exponent; the real odd root exists and is the mirrored root
		// of |c|.
		root = -math.Pow(-c, 1/exponent)
	}
	if !isFinite(root) {
		return nil, false
	}

	solutions := []Solution{{Name: variable, Value: root}}
	if isEvenInteger(exponent) && root != 0 {
		solutions = append(solutions, Solution{Name: variable + "_neg", Value: -root})
	}
	return solutions, true
}

// matchPowerShape returns (variable, exponent, otherSide) when one side
// of the equation is exactly Identifier ^ NumberLiteral.
func matchPowerShape(eq *ast.Equation) (string, float64, ast.Expression, bool) {
	if variable, exponent, ok := asPower(eq.Lhs); ok {
		return variable, exponent, eq.Rhs, true
	}
	if variable, exponent, ok := asPower(eq.Rhs); ok {
		return variable, exponent, eq.Lhs, true
	}
	return "", 0, nil, false
}

func asPower(expr ast.Expression) (string, float64, bool) {
	infix, ok := expr.(*ast.InfixExpression)
	if !ok || infix.Operator != "^" {
		return "", 0, false
	}
	base, ok := infix.Left.(*ast.Identifier)
	if !ok {
		return "", 0, false
	}
	exponent, ok := infix.Right.(*ast.NumberLiteral)
	if !ok {
		return "", 0, false
	}
	return base.Value, exponent.Value, true
}

// freeVariables returns the variables of expr with no value in
// bindings. Only those are candidates for the unknown.
func freeVariables(expr ast.Expression, bindings evaluator.Bindings) []string {
	var free []string
	for _, name := range ast.Variables(expr) {
		if _, bound := bindings[name]; !bound {
			free = append(free, name)
		}
	}
	return free
}

func nameRoots(variable string, roots []float64) []Solution {
	solutions := make([]Solution, 0, len(roots))
	for i, root := range roots {
		name := variable
		if i > 0 {
			name = fmt.Sprintf("%s_%d", variable, i)
		}
		solutions = append(solutions, Solution{Name: name, Value: root})
	}
	return solutions
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func isEvenInteger(x float64) bool {
	return x == math.Trunc(x) && math.Mod(x, 2) == 0
}

func isOddInteger(x float64) bool {
	return x == math.Trunc(x) && math.Mod(x, 2) != 0
}
