package parser

import (
	"github.com/ShihHsuanChen/gocomp/internal/diagnostics"
	"github.com/ShihHsuanChen/gocomp/internal/pipeline"
	"github.com/ShihHsuanChen/gocomp/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// This case should ideally not be hit if the lexer runs first, but as a safeguard:
		err := diagnostics.NewError(diagnostics.ErrC000, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	ctx.Comp = parser.ParseComprehension()

	// Ensure all errors have file path set
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}

	return ctx
}
