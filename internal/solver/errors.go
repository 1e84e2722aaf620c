package solver

import "errors"

// Solver error kinds. The dispatcher swallows per-strategy failures and
// only surfaces an error once every strategy is exhausted; these become
// caller-visible when a direct call to a sub-solver fails, or as the
// final verdict of Solve.
var (
	ErrNotAnEquation     = errors.New("not an equation")
	ErrNonLinear         = errors.New("non-linear expression")
	ErrZeroCoefficient   = errors.New("zero coefficient, no unique solution")
	ErrNoVariables       = errors.New("no variables to solve for")
	ErrMultipleVariables = errors.New("multiple variables not supported")
	ErrUnsupportedArity  = errors.New("numeric solving requires exactly one variable")
	ErrFlatDerivative    = errors.New("derivative too close to zero")
	ErrNoConvergence     = errors.New("did not converge")
	ErrSameSignEndpoints = errors.New("endpoints must have opposite signs")
	ErrNoRootsFound      = errors.New("no roots found in the search interval")
)
