package emitter

import (
	"github.com/ShihHsuanChen/gocomp/internal/pipeline"
)

// EmitterProcessor implements pipeline.Processor to run the Emitter.
type EmitterProcessor struct {
	Options Options
}

func NewEmitterProcessor(opts Options) *EmitterProcessor {
	return &EmitterProcessor{Options: opts}
}

func (ep *EmitterProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous stages failed, don't emit
	if ctx.Comp == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	result := New(ep.Options).Emit(ctx.Comp)
	ctx.Output = result.Expr
	ctx.Imports = result.Imports

	return ctx
}
