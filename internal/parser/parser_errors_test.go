package parser_test

import (
	"testing"

	"github.com/equalang/equa/internal/diagnostics"
	"github.com/equalang/equa/internal/lexer"
	"github.com/equalang/equa/internal/parser"
	"github.com/equalang/equa/internal/pipeline"
)

// parseWithErrors runs the lexer+parser and returns all diagnostic errors.
func parseWithErrors(input string) []*diagnostics.DiagnosticError {
	ctx := &pipeline.PipelineContext{SourceCode: input}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	return ctx.Errors
}

// expectError asserts at least one error with the given code.
func expectError(t *testing.T, input string, code diagnostics.ErrorCode) {
	t.Helper()
	errs := parseWithErrors(input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return
		}
	}
	t.Fatalf("expected error %s, got %v\ninput: %s", code, errs[0], input)
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
	}{
		{"dangling operator", "1 +", diagnostics.ErrP002},
		{"empty operand", "* 2", diagnostics.ErrP002},
		{"unterminated paren", "(1 + 2", diagnostics.ErrP003},
		{"unterminated call", "sin(x", diagnostics.ErrP004},
		{"chained equals", "x = y = 3", diagnostics.ErrP005},
		{"chained equation equals", "1 + x = y = 3", diagnostics.ErrP005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.input, tt.code)
		})
	}
}

func TestErrorRecoveryContinuesAtNextStatement(t *testing.T) {
	errs := parseWithErrors("1 +\nx = 2")
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
}

func TestErrorCarriesPosition(t *testing.T) {
	errs := parseWithErrors("1 + *")
	if len(errs) == 0 {
		t.Fatal("expected an error")
	}
	if errs[0].Line != 1 || errs[0].Column == 0 {
		t.Errorf("missing position: line %d column %d", errs[0].Line, errs[0].Column)
	}
}
