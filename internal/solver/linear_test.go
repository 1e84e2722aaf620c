package solver_test

import (
	"errors"
	"math"
	"testing"

	"github.com/equalang/equa/internal/ast"
	"github.com/equalang/equa/internal/evaluator"
	"github.com/equalang/equa/internal/lexer"
	"github.com/equalang/equa/internal/parser"
	"github.com/equalang/equa/internal/pipeline"
	"github.com/equalang/equa/internal/solver"
)

func parseEquation(t *testing.T, input string) *ast.Equation {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: input}
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse error for %q: %v", input, ctx.Errors[0])
	}
	program := ctx.AstRoot.(*ast.Program)
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("%q is not an expression statement", input)
	}
	eq, ok := stmt.Expression.(*ast.Equation)
	if !ok {
		t.Fatalf("%q is not an equation", input)
	}
	return eq
}

func TestSolveLinear(t *testing.T) {
	tests := []struct {
		input    string
		variable string
		want     float64
	}{
		{"2*x + 3 = 7", "x", 2},
		{"7 = 2*x + 3", "x", 2},
		{"x + 1 = 0", "x", -1},
		{"x / 4 = 2", "x", 8},
		{"3 * (x + 1) = 9", "x", 2},
		{"-x = 5", "x", -5},
		{"x - 2*x = 6", "x", -6},
		{"2*x + x = 9", "x", 3},
		{"0.5 * rate = 10", "rate", 20},
	}

	for _, tt := range tests {
		name, root, err := solver.SolveLinear(parseEquation(t, tt.input))
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.input, err)
			continue
		}
		if name != tt.variable {
			t.Errorf("%q: solved for %s, want %s", tt.input, name, tt.variable)
		}
		if math.Abs(root-tt.want) > 1e-9 {
			t.Errorf("%q: %s = %g, want %g", tt.input, name, root, tt.want)
		}
	}
}

func TestSolveLinearErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"x * x = 4", solver.ErrNonLinear},
		{"x ^ 2 = 4", solver.ErrNonLinear},
		{"1 / x = 2", solver.ErrNonLinear},
		{"sin(x) = 0", solver.ErrNonLinear},
		{"x + y = 3", solver.ErrMultipleVariables},
		{"1 + 2 = 3", solver.ErrNoVariables},
		{"x - x = 5", solver.ErrZeroCoefficient},
		{"x / 0 = 1", evaluator.ErrDivisionByZero},
	}

	for _, tt := range tests {
		_, _, err := solver.SolveLinear(parseEquation(t, tt.input))
		if !errors.Is(err, tt.want) {
			t.Errorf("%q: got %v, want %v", tt.input, err, tt.want)
		}
	}
}

func TestExtractLinearForm(t *testing.T) {
	eq := parseEquation(t, "2*x + 3*y - 1 = 0")
	form, err := solver.ExtractLinear(eq.Lhs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Terms["x"] != 2 || form.Terms["y"] != 3 {
		t.Errorf("wrong coefficients: %v", form.Terms)
	}
	if form.Constant != -1 {
		t.Errorf("wrong constant: %g", form.Constant)
	}
}
