package lexer

import (
	"github.com/ShihHsuanChen/gocomp/internal/pipeline"
	"github.com/ShihHsuanChen/gocomp/internal/token"
)

// NewTokenStream wraps a Lexer in a buffered lookahead stream.
func NewTokenStream(l *Lexer) *token.TokenStream {
	return token.NewTokenStream(l)
}

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = NewTokenStream(New(ctx.SourceCode))
	return ctx
}
