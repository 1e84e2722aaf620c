package pipeline

import (
	"github.com/equalang/equa/internal/diagnostics"
	"github.com/equalang/equa/internal/token"
)

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the artifacts of one compilation unit between
// stages. AstRoot is left as interface{} so the pipeline package does not
// depend on the ast package; the parser stores an *ast.Program there.
type PipelineContext struct {
	FilePath    string
	SourceCode  string
	TokenStream []token.Token
	AstRoot     interface{}
	Errors      []*diagnostics.DiagnosticError
}
