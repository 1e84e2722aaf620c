package evaluator

import "errors"

// Evaluation error kinds. Callers test with errors.Is; messages carry
// the offending name or operator.
var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrDomain            = errors.New("domain error")
	ErrUnknownOperator   = errors.New("unknown operator")
	ErrUnknownFunction   = errors.New("unknown function")

	// ErrNotAValue is returned when an equation node is evaluated as if
	// it were an expression.
	ErrNotAValue = errors.New("equation is not a value")
)
