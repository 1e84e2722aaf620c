package parser

import (
	"github.com/equalang/equa/internal/diagnostics"
	"github.com/equalang/equa/internal/pipeline"
	"github.com/equalang/equa/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// Should not happen when the lexer runs first, but as a safeguard:
		err := diagnostics.NewError(diagnostics.ErrP000, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	ctx.AstRoot = parser.ParseProgram()

	// Ensure all errors have the file path set.
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}

	return ctx
}
