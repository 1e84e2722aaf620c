package solver

import (
	"fmt"
	"math"

	"github.com/equalang/equa/internal/config"
)

// Func is a real-valued function of one variable. Evaluation may fail
// (undefined variable, division by zero, domain error); such failures
// abort the numeric method that called it.
type Func func(x float64) (float64, error)

// NewtonRaphson iterates x ← x - f(x)/f'(x) from guess until the
// residual or the step size drops within tol. A derivative smaller than
// Epsilon in magnitude fails with ErrFlatDerivative; exhausting maxIter
// fails with ErrNoConvergence.
func NewtonRaphson(f, df Func, guess, tol float64, maxIter int) (float64, error) {
	x := guess
	for i := 0; i < maxIter; i++ {
		fx, err := f(x)
		if err != nil {
			return 0, err
		}
		if math.Abs(fx) < tol {
			return x, nil
		}

		dfx, err := df(x)
		if err != nil {
			return 0, err
		}
		if math.Abs(dfx) < config.Epsilon {
			return 0, fmt.Errorf("%w: f'(%g) = %g", ErrFlatDerivative, x, dfx)
		}

		dx := fx / dfx
		x -= dx
		if math.Abs(dx) < tol {
			return x, nil
		}
	}
	return 0, fmt.Errorf("%w: newton-raphson after %d iterations", ErrNoConvergence, maxIter)
}

// Bisection narrows [a, b] to a root of f. The endpoint values must
// have opposite (or zero) sign.
func Bisection(f Func, a, b, tol float64) (float64, error) {
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	if fa*fb > 0 {
		return 0, fmt.Errorf("%w: f(%g) = %g, f(%g) = %g", ErrSameSignEndpoints, a, fa, b, fb)
	}
	// "Zero sign" endpoints are already roots; narrowing from them
	// would walk toward the wrong half.
	if math.Abs(fa) < tol {
		return a, nil
	}
	if math.Abs(fb) < tol {
		return b, nil
	}

	for b-a > tol {
		c := (a + b) / 2
		fc, err := f(c)
		if err != nil {
			return 0, err
		}
		if math.Abs(fc) < tol {
			return c, nil
		}
		if fa*fc < 0 {
			b = c
		} else {
			a = c
			fa = fc
		}
	}
	return (a + b) / 2, nil
}

// ScanRoots walks [start, end] in fixed steps and runs Bisection on
// every sub-bracket where consecutive samples change sign. A failing
// bracket is skipped; the scan continues. Roots within Epsilon of an
// already-found root are not added again.
func ScanRoots(f Func, start, end, step, tol float64) ([]float64, error) {
	var roots []float64

	prev, err := f(start)
	if err != nil {
		return nil, err
	}

	// Sample positions are computed from the index, not accumulated, so
	// float error cannot walk the last sample past end.
	steps := int(math.Ceil((end - start) / step))
	for i := 1; i <= steps; i++ {
		x := start + float64(i)*step
		if x > end {
			x = end
		}
		fx, err := f(x)
		if err != nil {
			return nil, err
		}

		if prev*fx <= 0 {
			root, err := Bisection(f, start+float64(i-1)*step, x, tol)
			if err == nil {
				roots = appendRoot(roots, root, config.Epsilon)
			}
		}
		prev = fx
	}

	return roots, nil
}

// appendRoot inserts root unless an existing entry is within eps.
func appendRoot(roots []float64, root, eps float64) []float64 {
	for _, r := range roots {
		if math.Abs(r-root) < eps {
			return roots
		}
	}
	return append(roots, root)
}
