package solver_test

import (
	"errors"
	"math"
	"testing"

	"github.com/equalang/equa/internal/config"
	"github.com/equalang/equa/internal/evaluator"
	"github.com/equalang/equa/internal/solver"
)

func newSolver() *solver.Solver {
	return solver.New(config.Default().Solver)
}

func solve(t *testing.T, input string, bindings evaluator.Bindings) []solver.Solution {
	t.Helper()
	solutions, err := newSolver().Solve(parseEquation(t, input), bindings)
	if err != nil {
		t.Fatalf("solve %q: %v", input, err)
	}
	return solutions
}

func assertSolution(t *testing.T, solutions []solver.Solution, name string, want float64) {
	t.Helper()
	for _, sol := range solutions {
		if sol.Name == name {
			if math.Abs(sol.Value-want) > 1e-6 {
				t.Errorf("%s = %g, want %g", name, sol.Value, want)
			}
			return
		}
	}
	t.Errorf("no solution named %s in %v", name, solutions)
}

func TestSolveLinearEquation(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2*x + 3 = 7", 2},
		{"x + 1 = 0", -1},
		{"10 - x = 4", 6},
		{"x / 3 + 1 = 2", 3},
	}

	for _, tt := range tests {
		solutions := solve(t, tt.input, nil)
		if len(solutions) != 1 {
			t.Fatalf("%q: expected 1 solution, got %v", tt.input, solutions)
		}
		assertSolution(t, solutions, "x", tt.want)
	}
}

func TestSolveEvenPowerEquation(t *testing.T) {
	solutions := solve(t, "x ^ 2 = 4", nil)
	if len(solutions) != 2 {
		t.Fatalf("expected 2 solutions, got %v", solutions)
	}
	assertSolution(t, solutions, "x", 2)
	assertSolution(t, solutions, "x_neg", -2)
}

func TestSolveOddPowerEquation(t *testing.T) {
	solutions := solve(t, "x ^ 3 = 8", nil)
	if len(solutions) != 1 {
		t.Fatalf("expected 1 solution, got %v", solutions)
	}
	assertSolution(t, solutions, "x", 2)
}

func TestSolveOddPowerNegativeConstant(t *testing.T) {
	solutions := solve(t, "x ^ 3 = -8", nil)
	if len(solutions) != 1 {
		t.Fatalf("expected 1 solution, got %v", solutions)
	}
	assertSolution(t, solutions, "x", -2)
}

func TestSolvePowerEquationFlippedSides(t *testing.T) {
	solutions := solve(t, "4 = x ^ 2", nil)
	assertSolution(t, solutions, "x", 2)
	assertSolution(t, solutions, "x_neg", -2)
}

func TestSolveNonlinearByNewton(t *testing.T) {
	// Not a pure power shape, so the numeric fallback does the work.
	solutions := solve(t, "x ^ 2 - 4 = 0", nil)
	if len(solutions) != 2 {
		t.Fatalf("expected 2 solutions, got %v", solutions)
	}
	// Seeds are tried low to high: -10 discovers -2 first.
	assertSolution(t, solutions, "x", -2)
	assertSolution(t, solutions, "x_1", 2)
}

func TestSolveDeduplicatesNewtonRoots(t *testing.T) {
	// x*x is not the power shape, so every seed runs Newton. Three seeds
	// land on -2 and three on 2; the result must hold one entry per
	// root, not one per seed.
	solutions := solve(t, "x * x = 4", nil)
	if len(solutions) != 2 {
		t.Fatalf("expected 2 solutions, got %v", solutions)
	}
	assertSolution(t, solutions, "x", -2)
	assertSolution(t, solutions, "x_1", 2)
}

func TestSolveTranscendental(t *testing.T) {
	// sin(x) = 0.5 has solutions pi/6 and 5*pi/6 inside the scan
	// interval (among others).
	solutions := solve(t, "sin(x) = 0.5", nil)
	found := false
	for _, sol := range solutions {
		if math.Abs(sol.Value-math.Pi/6) < 1e-6 {
			found = true
		}
	}
	if !found {
		t.Errorf("pi/6 not among solutions %v", solutions)
	}
}

func TestSolveWithBoundConstantOnOneSide(t *testing.T) {
	// The constant side of a power equation may reference bound names.
	solutions := solve(t, "x ^ 2 = a + 1", evaluator.Bindings{"a": 3})
	assertSolution(t, solutions, "x", 2)
	assertSolution(t, solutions, "x_neg", -2)
}

func TestSolveShadowsBoundUnknown(t *testing.T) {
	// A session that assigned x earlier can still solve for x: the
	// binding is shadowed by trial values, not an arity error.
	bindings := evaluator.Bindings{"x": 3}

	solutions := solve(t, "sin(x) = 0.5", bindings)
	found := false
	for _, sol := range solutions {
		if math.Abs(sol.Value-math.Pi/6) < 1e-6 {
			found = true
		}
	}
	if !found {
		t.Errorf("pi/6 not among solutions %v", solutions)
	}

	// The linear stage resolves the same way.
	linear := solve(t, "2 * x = 4", bindings)
	assertSolution(t, linear, "x", 2)

	if bindings["x"] != 3 {
		t.Errorf("caller binding changed: %v", bindings)
	}
}

func TestSolveDoesNotMutateBindings(t *testing.T) {
	bindings := evaluator.Bindings{"a": 3}
	solve(t, "x ^ 2 = a + 1", bindings)
	if len(bindings) != 1 || bindings["a"] != 3 {
		t.Errorf("caller bindings mutated: %v", bindings)
	}
}

func TestSolveDivisionByZeroSurfaces(t *testing.T) {
	_, err := newSolver().Solve(parseEquation(t, "1 / (x - x) = 5"), nil)
	if !errors.Is(err, evaluator.ErrDivisionByZero) {
		t.Errorf("got %v, want ErrDivisionByZero", err)
	}
}

func TestSolveTwoVariablesFails(t *testing.T) {
	_, err := newSolver().Solve(parseEquation(t, "x + y = 3"), nil)
	if !errors.Is(err, solver.ErrUnsupportedArity) {
		t.Errorf("got %v, want ErrUnsupportedArity", err)
	}
}

func TestSolveNoRoots(t *testing.T) {
	_, err := newSolver().Solve(parseEquation(t, "x ^ 2 + 10 = 0"), nil)
	if !errors.Is(err, solver.ErrNoRootsFound) {
		t.Errorf("got %v, want ErrNoRootsFound", err)
	}
}

func TestSolveNotAnEquation(t *testing.T) {
	eq := parseEquation(t, "x + 1 = 2")
	_, err := newSolver().Solve(eq.Lhs, nil)
	if !errors.Is(err, solver.ErrNotAnEquation) {
		t.Errorf("got %v, want ErrNotAnEquation", err)
	}
}

func TestSolveConstantEquationFails(t *testing.T) {
	// No variables anywhere: nothing to solve for.
	_, err := newSolver().Solve(parseEquation(t, "1 + 2 = 3"), nil)
	if err == nil {
		t.Error("expected an error for a variable-free equation")
	}
}
