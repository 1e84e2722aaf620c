package lexer

import (
	"github.com/equalang/equa/internal/diagnostics"
	"github.com/equalang/equa/internal/pipeline"
	"github.com/equalang/equa/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)

	var stream []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			// A lone '.' is the number scanner giving up, not a stray
			// character.
			err := diagnostics.NewError(diagnostics.ErrL001, tok, "illegal character %q", tok.Lexeme)
			if tok.Lexeme == "." {
				err = diagnostics.NewError(diagnostics.ErrL002, tok, "malformed number literal %q", tok.Lexeme)
			}
			err.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, err)
			continue
		}
		stream = append(stream, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	ctx.TokenStream = stream
	return ctx
}
